package huffman

// Symbol is the constraint satisfied by every symbol type.  Text is usually
// coded as rune, binary data as byte, but any comparable type will do.
type Symbol interface {
	comparable
}

// NodeID identifies a node within a Tree.  Negative IDs are not valid.
type NodeID int32

// InvalidNode is returned by some methods to clearly indicate that no node is
// being returned.
const InvalidNode = NodeID(-1)
