package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// CodeTable maps each symbol to its code.  No code is a prefix of another.
type CodeTable[S Symbol] struct {
	codes   map[S]Bits
	order   []S
	minSize int
	maxSize int
}

// GenerateCodes derives the CodeTable of a tree by walking from the root to
// every leaf, appending 0 for each left edge and 1 for each right edge.
//
// A tree consisting of a single leaf assigns the code "0" to its symbol.  A
// nil tree produces an empty table.
//
func GenerateCodes[S Symbol](t *Tree[S]) CodeTable[S] {
	numLeaves := t.NumLeaves()
	ct := CodeTable[S]{
		codes: make(map[S]Bits, numLeaves),
		order: make([]S, 0, numLeaves),
	}
	if t == nil {
		return ct
	}

	if root := t.nodes[t.root]; root.isLeaf() {
		ct.add(root.symbol, MustParseBits("0"))
		return ct
	}

	// Walk the tree with an explicit stack of (node, code so far) pairs.
	// The right child is pushed first so that the left subtree is finished
	// first, which keeps ct.order in left-to-right leaf order.

	type stackItem struct {
		id   NodeID
		code Bits
	}

	stack := make([]stackItem, 0, log2int(len(t.nodes))+1)
	stack = append(stack, stackItem{id: t.root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[top.id]
		if n.isLeaf() {
			ct.add(n.symbol, top.code)
			continue
		}
		stack = append(stack, stackItem{n.right, top.code.With(1)})
		stack = append(stack, stackItem{n.left, top.code.With(0)})
	}
	return ct
}

// NewCodeTable builds a CodeTable from an arbitrary set of codes, such as
// one received from elsewhere.  Codes must be non-empty and prefix-free.
func NewCodeTable[S Symbol](codes map[S]Bits) (CodeTable[S], error) {
	symbols := make([]S, 0, len(codes))
	for s, code := range codes {
		if code.Len() == 0 {
			return CodeTable[S]{}, fmt.Errorf("%w: symbol %v has an empty code", ErrInvalidCode, s)
		}
		symbols = append(symbols, s)
	}
	sortByCode(symbols, codes)

	ct := CodeTable[S]{
		codes: make(map[S]Bits, len(codes)),
		order: make([]S, 0, len(codes)),
	}
	for _, s := range symbols {
		ct.add(s, codes[s])
	}
	if a, b, ok := ct.findPrefix(); ok {
		return CodeTable[S]{}, fmt.Errorf("%w: code %s of symbol %v is a prefix of code %s of symbol %v",
			ErrInvalidCode, ct.codes[a], a, ct.codes[b], b)
	}
	return ct, nil
}

// Len returns the number of symbols in the table.
func (ct CodeTable[S]) Len() int {
	return len(ct.order)
}

// Code returns the code of s.  ok is false if s has no code.
func (ct CodeTable[S]) Code(s S) (code Bits, ok bool) {
	code, ok = ct.codes[s]
	return
}

// Symbols returns the symbols of the table in lexicographic order of their
// codes, which for a generated table is the left-to-right order of the
// leaves.  The returned slice is a copy.
func (ct CodeTable[S]) Symbols() []S {
	out := make([]S, len(ct.order))
	copy(out, ct.order)
	return out
}

// MinSize is the bit length of the shortest code.
func (ct CodeTable[S]) MinSize() int {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct CodeTable[S]) MaxSize() int {
	return ct.maxSize
}

// IsPrefixFree reports whether no code is a prefix of another.  This is
// always true for tables built by this package.
func (ct CodeTable[S]) IsPrefixFree() bool {
	_, _, found := ct.findPrefix()
	return !found
}

// Reversed returns a map from the string form of each code to its symbol.
// It is a lookup aid only; Decode walks the tree.
func (ct CodeTable[S]) Reversed() map[string]S {
	out := make(map[string]S, len(ct.codes))
	for s, code := range ct.codes {
		out[code.String()] = s
	}
	return out
}

// EncodedLength returns the number of bits that Encode would produce for a
// sequence with the given frequencies, without encoding it.
func (ct CodeTable[S]) EncodedLength(ft FrequencyTable[S]) (uint64, error) {
	var sum uint64
	for index, s := range ft.order {
		code, found := ct.codes[s]
		if !found {
			return 0, &UnknownSymbolError[S]{Symbol: s, Index: index}
		}
		sum += ft.counts[s] * uint64(code.Len())
	}
	return sum, nil
}

// Dump writes a programmer-readable debugging dump of the CodeTable's
// current state to the given writer.
func (ct CodeTable[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, s := range ct.order {
		fmt.Fprintf(&buf, "\tCode(%#v) = %s\n", s, strconv.Quote(ct.codes[s].String()))
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (ct *CodeTable[S]) add(s S, code Bits) {
	size := code.Len()
	if len(ct.order) == 0 {
		ct.minSize = size
		ct.maxSize = size
	} else if ct.minSize > size {
		ct.minSize = size
	} else if ct.maxSize < size {
		ct.maxSize = size
	}
	ct.codes[s] = code
	ct.order = append(ct.order, s)
}

// findPrefix relies on ct.order being sorted by code: if any code is a
// prefix of another, it is a prefix of its immediate successor.
func (ct CodeTable[S]) findPrefix() (a S, b S, found bool) {
	for i := 1; i < len(ct.order); i++ {
		a, b = ct.order[i-1], ct.order[i]
		if ct.codes[b].HasPrefix(ct.codes[a]) {
			return a, b, true
		}
	}
	return a, b, false
}

func sortByCode[S Symbol](symbols []S, codes map[S]Bits) {
	sort.Slice(symbols, func(i, j int) bool {
		return lessBits(codes[symbols[i]], codes[symbols[j]])
	})
}

// lessBits orders bit sequences lexicographically, a prefix sorting first.
func lessBits(a, b Bits) bool {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	for i := 0; i < n; i++ {
		if x, y := a.At(i), b.At(i); x != y {
			return x < y
		}
	}
	return a.Len() < b.Len()
}
