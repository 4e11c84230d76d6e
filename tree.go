package huffman

import (
	"bytes"
	"container/heap"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// maxLeaves is the largest alphabet for which every node of the tree has a
// valid NodeID.
const maxLeaves = (math.MaxInt32 + 1) / 2

// Tree is a Huffman code tree.  Nodes live in a single arena and refer to
// their children by NodeID.  A node is either a leaf, holding a symbol, or an
// internal node with exactly two children.  The weight of a leaf is the
// frequency of its symbol, and the weight of an internal node is the sum of
// the weights of its children.
//
// A Tree is never modified after construction and is safe for concurrent
// reads.  A nil *Tree represents the absence of a tree.
type Tree[S Symbol] struct {
	nodes []treeNode[S]
	root  NodeID
}

type treeNode[S Symbol] struct {
	symbol S
	weight uint64
	left   NodeID
	right  NodeID
}

func (n treeNode[S]) isLeaf() bool {
	return n.left < 0
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// An empty table has no tree, and nil is returned.  A table with a single
// symbol produces a tree consisting of a single leaf.
//
// Otherwise, the two lightest nodes are repeatedly removed from a min-heap
// and merged into a new internal node, with the first node removed becoming
// the left child.  Equal weights are removed in NodeID order: leaves are
// numbered in order of first appearance in ft, and internal nodes are
// numbered after all leaves in order of creation.
//
func BuildTree[S Symbol](ft FrequencyTable[S]) *Tree[S] {
	numLeaves := ft.Len()
	if numLeaves == 0 {
		return nil
	}
	assert.Assertf(numLeaves <= maxLeaves, "numLeaves %d > maxLeaves %d", numLeaves, maxLeaves)

	t := &Tree[S]{nodes: make([]treeNode[S], 0, 2*numLeaves-1)}
	for _, s := range ft.order {
		t.nodes = append(t.nodes, treeNode[S]{
			symbol: s,
			weight: ft.counts[s],
			left:   InvalidNode,
			right:  InvalidNode,
		})
	}

	if numLeaves == 1 {
		t.root = 0
		return t
	}

	// Step 1: build a minheap over every leaf.

	h := nodeHeap[S]{tree: t, list: make([]NodeID, numLeaves)}
	for index := range h.list {
		h.list[index] = NodeID(index)
	}
	h.Init()

	// Step 2: pop two nodes, combine them into a new internal node, and
	// push the new node back onto the heap, until only the root remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)

		// Compute weightSum using saturating addition
		weightSum := t.nodes[a].weight + t.nodes[b].weight
		if weightSum < t.nodes[a].weight {
			weightSum = math.MaxUint64
		}

		id := NodeID(len(t.nodes))
		t.nodes = append(t.nodes, treeNode[S]{weight: weightSum, left: a, right: b})
		heap.Push(&h, id)
	}

	t.root = heap.Pop(&h).(NodeID)
	assert.Assertf(int(t.root) == len(t.nodes)-1, "root %d is not the last node %d", t.root, len(t.nodes)-1)
	return t
}

// Root returns the root of the tree, or InvalidNode for a nil tree.
func (t *Tree[S]) Root() NodeID {
	if t == nil {
		return InvalidNode
	}
	return t.root
}

// Len returns the total number of nodes, leaves included.
func (t *Tree[S]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, which is the number of distinct
// symbols.
func (t *Tree[S]) NumLeaves() int {
	return (t.Len() + 1) / 2
}

// IsLeaf reports whether the node is a leaf.
func (t *Tree[S]) IsLeaf(id NodeID) bool {
	return t.node(id).isLeaf()
}

// Weight returns the weight of the node.
func (t *Tree[S]) Weight(id NodeID) uint64 {
	return t.node(id).weight
}

// Symbol returns the symbol of a leaf.  ok is false for internal nodes.
func (t *Tree[S]) Symbol(id NodeID) (s S, ok bool) {
	n := t.node(id)
	if !n.isLeaf() {
		return s, false
	}
	return n.symbol, true
}

// Left returns the left child ("0") of the node, or InvalidNode for a leaf.
func (t *Tree[S]) Left(id NodeID) NodeID {
	return t.node(id).left
}

// Right returns the right child ("1") of the node, or InvalidNode for a leaf.
func (t *Tree[S]) Right(id NodeID) NodeID {
	return t.node(id).right
}

// Depth returns the depth of the deepest leaf.  A tree consisting of a
// single leaf has depth 0.
func (t *Tree[S]) Depth() int {
	var maxDepth int
	t.walk(func(id NodeID, depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
	})
	return maxDepth
}

// WeightedPathLength returns the sum, over all leaves, of weight times code
// length.  This is the number of bits needed to encode the sequence the tree
// was built from.  A lone leaf counts as a 1-bit code.
func (t *Tree[S]) WeightedPathLength() uint64 {
	var sum uint64
	t.walk(func(id NodeID, depth int) {
		n := t.nodes[id]
		if !n.isLeaf() {
			return
		}
		if depth == 0 {
			depth = 1
		}
		sum += n.weight * uint64(depth)
	})
	return sum
}

// Fingerprint returns a 64-bit xxHash of the shape, weights and symbols of
// the tree.  Identical trees have identical fingerprints.  A nil tree has a
// fingerprint of 0.
func (t *Tree[S]) Fingerprint() uint64 {
	if t == nil {
		return 0
	}
	d := xxhash.New()
	var scratch [9]byte
	t.walk(func(id NodeID, depth int) {
		n := t.nodes[id]
		scratch[0] = 'I'
		if n.isLeaf() {
			scratch[0] = 'L'
		}
		binary.BigEndian.PutUint64(scratch[1:], n.weight)
		_, _ = d.Write(scratch[:])
		if n.isLeaf() {
			fmt.Fprintf(d, "%#v", n.symbol)
		}
	})
	return d.Sum64()
}

// Dump writes a programmer-readable debugging dump of the Tree's current
// state to the given writer.
func (t *Tree[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	if t != nil {
		fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
		for id, n := range t.nodes {
			if n.isLeaf() {
				fmt.Fprintf(&buf, "\tNode(%d) = Leaf{%#v, %d}\n", id, n.symbol, n.weight)
			} else {
				fmt.Fprintf(&buf, "\tNode(%d) = Internal{%d, %d, %d}\n", id, n.weight, n.left, n.right)
			}
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree[S]) node(id NodeID) treeNode[S] {
	assert.Assertf(t != nil, "nil *Tree")
	assert.Assertf(id >= 0 && int(id) < len(t.nodes), "NodeID %d out of range [0, %d)", id, len(t.nodes))
	return t.nodes[id]
}

// walk visits every node in depth-first order, left before right, using an
// explicit stack.  The stack never holds more than Depth()+1 entries.
func (t *Tree[S]) walk(fn func(id NodeID, depth int)) {
	if t == nil {
		return
	}

	type stackItem struct {
		id    NodeID
		depth int
	}

	stack := make([]stackItem, 0, log2int(len(t.nodes))+1)
	stack = append(stack, stackItem{t.root, 0})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.id, top.depth)
		if n := t.nodes[top.id]; !n.isLeaf() {
			stack = append(stack, stackItem{n.right, top.depth + 1})
			stack = append(stack, stackItem{n.left, top.depth + 1})
		}
	}
}

// type nodeHeap {{{

type nodeHeap[S Symbol] struct {
	tree *Tree[S]
	list []NodeID
}

func (h *nodeHeap[S]) Init() {
	heap.Init(h)
}

func (h *nodeHeap[S]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[S]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[S]) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.nodes[a].weight, h.tree.nodes[b].weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap[S]) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap[S]) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[rune])(nil)

// }}}
