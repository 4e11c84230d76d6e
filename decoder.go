package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder is the bit-at-a-time state machine that walks a Tree.  It starts
// at the root, moves left on 0 and right on 1, and yields a symbol whenever
// it reaches a leaf, after which it returns to the root.
//
// If the root is itself a leaf, every bit yields the root's symbol.
type Decoder[S Symbol] struct {
	tree    *Tree[S]
	current NodeID
	pending int
}

// NewDecoder returns a Decoder positioned at the root of t.
func NewDecoder[S Symbol](t *Tree[S]) (*Decoder[S], error) {
	if t == nil {
		return nil, ErrMissingTree
	}
	return &Decoder[S]{tree: t, current: t.root}, nil
}

// WriteBit feeds one bit to the Decoder.  If the bit completes a code, the
// decoded symbol is returned with ok set to true.
func (d *Decoder[S]) WriteBit(bit uint8) (s S, ok bool) {
	nodes := d.tree.nodes
	if root := nodes[d.tree.root]; root.isLeaf() {
		return root.symbol, true
	}

	n := nodes[d.current]
	if bit == 0 {
		d.current = n.left
	} else {
		d.current = n.right
	}
	d.pending++

	if n = nodes[d.current]; n.isLeaf() {
		d.current = d.tree.root
		d.pending = 0
		return n.symbol, true
	}
	return s, false
}

// Pending returns the number of bits consumed since the last symbol.  It is
// 0 exactly when the Decoder is at the root.
func (d *Decoder[S]) Pending() int {
	return d.pending
}

// Reset returns the Decoder to the root, discarding any pending bits.
func (d *Decoder[S]) Reset() {
	d.current = d.tree.root
	d.pending = 0
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tCurrent() = %d\n", d.current)
	fmt.Fprintf(&buf, "\tPending() = %d\n", d.pending)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Decode reconstructs the symbol sequence of stream by walking t.
//
// An empty stream decodes to an empty sequence, whether or not t is nil.  A
// non-empty stream with a nil t fails with ErrMissingTree.  If the stream
// ends anywhere but at the root, Decode returns a *TruncatedStreamError and
// no symbols.
//
func Decode[S Symbol](stream Bits, t *Tree[S]) ([]S, error) {
	numBits := stream.Len()
	if numBits == 0 {
		return []S{}, nil
	}

	d, err := NewDecoder(t)
	if err != nil {
		return nil, err
	}

	out := make([]S, 0, numBits/(t.Depth()+1)+1)
	for i := 0; i < numBits; i++ {
		if s, ok := d.WriteBit(stream.At(i)); ok {
			out = append(out, s)
		}
	}

	if d.Pending() != 0 {
		return nil, &TruncatedStreamError{
			Length:  numBits,
			Start:   numBits - d.Pending(),
			Decoded: len(out),
		}
	}
	return out, nil
}
