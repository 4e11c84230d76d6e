package huffman

import (
	"fmt"
	"math"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Canonical returns the canonical form of the table: every symbol keeps the
// length of its code, but the codes themselves are reassigned in order of
// (length, symbol), with less ordering symbols of equal length.  Only the
// lengths need to be transmitted to rebuild a canonical table.
//
// The result is no longer consistent with the tree the table came from; use
// TreeFromCodes to build a matching tree before decoding.
//
func (ct CodeTable[S]) Canonical(less func(a, b S) bool) CodeTable[S] {
	out := CodeTable[S]{
		codes: make(map[S]Bits, len(ct.codes)),
		order: make([]S, 0, len(ct.order)),
	}
	if len(ct.order) == 0 {
		return out
	}

	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := make([]symbolAndSize[S], 0, len(ct.order))
	for _, s := range ct.order {
		sorted = append(sorted, symbolAndSize[S]{s, ct.codes[s].Len()})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.size != b.size {
			return a.size < b.size
		}
		return less(a.symbol, b.symbol)
	})

	// Step 2: assign the codes sequentially, per the algorithm detailed at
	// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.

	var nextCode Bits
	for index, item := range sorted {
		for nextCode.Len() < item.size {
			nextCode.Append(0)
		}
		out.add(item.symbol, nextCode)

		overflow := nextCode.increment()
		assert.Assertf(!overflow || index == len(sorted)-1, "canonical code overflow at symbol %d of %d", index, len(sorted))
	}
	return out
}

// TreeFromCodes rebuilds the decoding tree of a code table.  Leaf weights are
// taken from ft, or 0 for symbols missing from it, and internal weights are
// the sums of their children.
//
// Every internal node must end up with two children; a table that leaves a
// branch unused cannot be walked safely and is rejected with ErrInvalidCode.
// A table with a single symbol must assign it the code "0", which yields a
// tree consisting of a single leaf.  An empty table yields a nil tree.
//
func TreeFromCodes[S Symbol](ct CodeTable[S], ft FrequencyTable[S]) (*Tree[S], error) {
	numLeaves := len(ct.order)
	assert.Assertf(numLeaves <= maxLeaves, "numLeaves %d > maxLeaves %d", numLeaves, maxLeaves)

	switch numLeaves {
	case 0:
		return nil, nil
	case 1:
		s := ct.order[0]
		if code := ct.codes[s]; code.String() != "0" {
			return nil, fmt.Errorf("%w: lone symbol %v must have code \"0\", got %q", ErrInvalidCode, s, code)
		}
		leaf := treeNode[S]{symbol: s, weight: ft.Count(s), left: InvalidNode, right: InvalidNode}
		return &Tree[S]{nodes: []treeNode[S]{leaf}}, nil
	}

	t := &Tree[S]{nodes: make([]treeNode[S], 1, 2*numLeaves-1)}
	t.nodes[0] = treeNode[S]{left: InvalidNode, right: InvalidNode}
	internal := make([]bool, 1, 2*numLeaves-1)
	internal[0] = true

	for _, s := range ct.order {
		code := ct.codes[s]
		cur := NodeID(0)
		for i := 0; i < code.Len(); i++ {
			if !internal[cur] {
				return nil, fmt.Errorf("%w: code %s of symbol %v passes through a leaf", ErrInvalidCode, code, s)
			}

			bit := code.At(i)
			last := i == code.Len()-1
			next := t.nodes[cur].left
			if bit != 0 {
				next = t.nodes[cur].right
			}

			if next == InvalidNode {
				next = NodeID(len(t.nodes))
				t.nodes = append(t.nodes, treeNode[S]{left: InvalidNode, right: InvalidNode})
				internal = append(internal, !last)
				if bit == 0 {
					t.nodes[cur].left = next
				} else {
					t.nodes[cur].right = next
				}
				if last {
					t.nodes[next].symbol = s
					t.nodes[next].weight = ft.Count(s)
				}
			} else if last {
				return nil, fmt.Errorf("%w: code %s of symbol %v is already in use", ErrInvalidCode, code, s)
			}
			cur = next
		}
	}

	// Children are always created after their parents, so a reverse scan
	// sums weights bottom-up.
	for id := len(t.nodes) - 1; id >= 0; id-- {
		if !internal[id] {
			continue
		}
		n := &t.nodes[id]
		if n.left == InvalidNode || n.right == InvalidNode {
			return nil, fmt.Errorf("%w: incomplete code, node %d has a single child", ErrInvalidCode, id)
		}
		lw, rw := t.nodes[n.left].weight, t.nodes[n.right].weight
		n.weight = lw + rw
		if n.weight < lw {
			n.weight = math.MaxUint64
		}
	}

	t.root = 0
	return t, nil
}

// increment adds 1 to b, read as a big-endian binary number of fixed width.
// It reports true if the addition overflowed, leaving b all zeros.  b moves
// to fresh storage first, so copies taken earlier keep their value.
func (b *Bits) increment() (overflow bool) {
	b.buf = newBitBuffer(b.bytes(), b.n, 0)
	data := b.buf.data
	for i := b.n - 1; i >= 0; i-- {
		mask := byte(0x80) >> uint(i&7)
		if data[i>>3]&mask == 0 {
			data[i>>3] |= mask
			return false
		}
		data[i>>3] &^= mask
	}
	return true
}

type symbolAndSize[S Symbol] struct {
	symbol S
	size   int
}
