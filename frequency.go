package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable counts the occurrences of each distinct symbol in a
// sequence.  Every symbol in the table has a count of at least 1.
//
// The table also remembers the order in which symbols first appeared, which
// BuildTree uses to break ties between equal weights.
type FrequencyTable[S Symbol] struct {
	counts map[S]uint64
	order  []S
	total  uint64
}

// CountFrequencies builds the FrequencyTable of seq.  An empty seq produces
// an empty table.
func CountFrequencies[S Symbol](seq []S) FrequencyTable[S] {
	ft := FrequencyTable[S]{counts: make(map[S]uint64)}
	for _, s := range seq {
		if ft.counts[s] == 0 {
			ft.order = append(ft.order, s)
		}
		ft.counts[s]++
	}
	ft.total = uint64(len(seq))
	return ft
}

// NewFrequencyTable builds a FrequencyTable from parallel lists of symbols
// and counts.  The order of symbols is kept as given.  Counts must be
// positive and symbols must be distinct.
func NewFrequencyTable[S Symbol](symbols []S, counts []uint64) (FrequencyTable[S], error) {
	if len(symbols) != len(counts) {
		return FrequencyTable[S]{}, fmt.Errorf("%w: %d symbols but %d counts", ErrInvalidFrequencies, len(symbols), len(counts))
	}
	ft := FrequencyTable[S]{
		counts: make(map[S]uint64, len(symbols)),
		order:  make([]S, 0, len(symbols)),
	}
	for i, s := range symbols {
		count := counts[i]
		if count == 0 {
			return FrequencyTable[S]{}, fmt.Errorf("%w: symbol %v has a count of 0", ErrInvalidFrequencies, s)
		}
		if _, found := ft.counts[s]; found {
			return FrequencyTable[S]{}, fmt.Errorf("%w: symbol %v appears more than once", ErrInvalidFrequencies, s)
		}
		ft.counts[s] = count
		ft.order = append(ft.order, s)
		ft.total += count
	}
	return ft, nil
}

// Len returns the number of distinct symbols.
func (ft FrequencyTable[S]) Len() int {
	return len(ft.order)
}

// Count returns the number of occurrences of s, or 0 if s never occurred.
func (ft FrequencyTable[S]) Count(s S) uint64 {
	return ft.counts[s]
}

// Has reports whether s occurred at least once.
func (ft FrequencyTable[S]) Has(s S) bool {
	_, found := ft.counts[s]
	return found
}

// Total returns the sum of all counts, i.e. the length of the counted
// sequence.
func (ft FrequencyTable[S]) Total() uint64 {
	return ft.total
}

// Symbols returns the distinct symbols in order of first appearance.  The
// returned slice is a copy.
func (ft FrequencyTable[S]) Symbols() []S {
	out := make([]S, len(ft.order))
	copy(out, ft.order)
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft FrequencyTable[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, s := range ft.order {
		fmt.Fprintf(&buf, "\tCount(%#v) = %d\n", s, ft.counts[s])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
