package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/huffman-tree/internal/options"
)

// Codec is an encode/decode session.  Encode builds a fresh tree from its
// input and keeps it, so that a later Decode can walk the same tree.
//
// A Codec must not be shared between goroutines without synchronization;
// independent callers should each use their own.
type Codec[S Symbol] struct {
	cfg   codecConfig
	tree  *Tree[S]
	table CodeTable[S]
	freq  FrequencyTable[S]
}

// Result is the output of Codec.Encode.
type Result[S Symbol] struct {
	Stream      Bits
	Table       CodeTable[S]
	Frequencies FrequencyTable[S]

	symbolWidth int
}

// Stats summarizes the size of an encoding.
type Stats struct {
	// Symbols is the length of the input sequence.
	Symbols uint64

	// Distinct is the number of distinct symbols.
	Distinct int

	// OriginalBits is Symbols times the fixed symbol width.
	OriginalBits uint64

	// EncodedBits is the length of the encoded stream.
	EncodedBits uint64
}

// NewCodec returns a Codec with no tree.
func NewCodec[S Symbol](opts ...Option) (*Codec[S], error) {
	cfg := defaultCodecConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	return &Codec[S]{cfg: cfg}, nil
}

// Encode counts the symbols of seq, builds their tree and code table, and
// encodes seq.  The tree replaces any tree held from a previous call.
//
// An empty seq yields an empty stream, table and frequencies, and leaves the
// Codec without a tree.
func (c *Codec[S]) Encode(seq []S) (Result[S], error) {
	ft := CountFrequencies(seq)
	tree := BuildTree(ft)
	table := GenerateCodes(tree)

	stream, err := Encode(seq, table)
	if err != nil {
		return Result[S]{}, fmt.Errorf("encoding %d symbols: %w", len(seq), err)
	}

	if c.cfg.roundTrip {
		if err := checkRoundTrip(seq, stream, tree); err != nil {
			return Result[S]{}, err
		}
	}

	c.tree, c.table, c.freq = tree, table, ft
	return Result[S]{
		Stream:      stream,
		Table:       table,
		Frequencies: ft,
		symbolWidth: c.cfg.symbolWidth,
	}, nil
}

// Decode decodes stream with the tree of the most recent Encode, or the tree
// given to SetTree.  See the package-level Decode for error conditions.
func (c *Codec[S]) Decode(stream Bits) ([]S, error) {
	return Decode(stream, c.tree)
}

// SetTree replaces the session's tree, e.g. with one rebuilt by
// TreeFromCodes, and regenerates the code table from it.  The frequencies
// are taken from the leaf weights; leaves of weight 0 have a code but no
// frequency.
func (c *Codec[S]) SetTree(t *Tree[S]) {
	var symbols []S
	var counts []uint64
	t.walk(func(id NodeID, depth int) {
		if n := t.nodes[id]; n.isLeaf() && n.weight != 0 {
			symbols = append(symbols, n.symbol)
			counts = append(counts, n.weight)
		}
	})
	freq, err := NewFrequencyTable(symbols, counts)
	assert.Assertf(err == nil, "leaf weights of tree: %v", err)

	c.tree = t
	c.table = GenerateCodes(t)
	c.freq = freq
}

// Tree returns the session's tree, or nil if there is none.
func (c *Codec[S]) Tree() *Tree[S] {
	return c.tree
}

// Table returns the session's code table.
func (c *Codec[S]) Table() CodeTable[S] {
	return c.table
}

// Frequencies returns the session's frequency table.
func (c *Codec[S]) Frequencies() FrequencyTable[S] {
	return c.freq
}

// Stats returns the size summary of r.
func (r Result[S]) Stats() Stats {
	width := r.symbolWidth
	if width == 0 {
		width = DefaultSymbolWidth
	}
	return Stats{
		Symbols:      r.Frequencies.Total(),
		Distinct:     r.Frequencies.Len(),
		OriginalBits: r.Frequencies.Total() * uint64(width),
		EncodedBits:  uint64(r.Stream.Len()),
	}
}

// Ratio returns EncodedBits / OriginalBits, or 0 for an empty input.  Values
// below 1 indicate compression.
func (s Stats) Ratio() float64 {
	if s.OriginalBits == 0 {
		return 0
	}
	return float64(s.EncodedBits) / float64(s.OriginalBits)
}

// Factor returns OriginalBits / EncodedBits, or 0 for an empty input.
func (s Stats) Factor() float64 {
	if s.EncodedBits == 0 {
		return 0
	}
	return float64(s.OriginalBits) / float64(s.EncodedBits)
}

// SpaceSavings returns the percentage of bits saved relative to the
// fixed-width baseline.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalBits == 0 {
		return 0
	}
	return (1.0 - s.Ratio()) * 100.0
}

// checkRoundTrip decodes stream with tree and compares the result with seq.
func checkRoundTrip[S Symbol](seq []S, stream Bits, tree *Tree[S]) error {
	decoded, err := Decode(stream, tree)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if index := firstDifference(seq, decoded); index >= 0 {
		return fmt.Errorf("%w: first difference at index %d", ErrRoundTrip, index)
	}
	return nil
}

func firstDifference[S Symbol](a, b []S) int {
	for i := range a {
		if i >= len(b) || a[i] != b[i] {
			return i
		}
	}
	if len(b) > len(a) {
		return len(a)
	}
	return -1
}
