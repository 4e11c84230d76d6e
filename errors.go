package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSymbol is matched by errors returned from Encode when the
	// input contains a symbol that has no code.
	ErrUnknownSymbol = errors.New("symbol has no code in the code table")

	// ErrTruncatedStream is matched by errors returned from Decode when the
	// stream ends between the root and a leaf.
	ErrTruncatedStream = errors.New("encoded stream ends in the middle of a code")

	// ErrMissingTree is returned when a non-empty stream is decoded without
	// a tree.
	ErrMissingTree = errors.New("no Huffman tree available for decoding")

	ErrInvalidBit         = errors.New("invalid bit")
	ErrInvalidCode        = errors.New("invalid code table")
	ErrInvalidFrequencies = errors.New("invalid frequency table")
	ErrRoundTrip          = errors.New("decoded output differs from the input")
	ErrInvalidOption      = errors.New("invalid option")
)

// UnknownSymbolError reports the first symbol that Encode could not find in
// its CodeTable.
type UnknownSymbolError[S Symbol] struct {
	Symbol S
	Index  int
}

func (err *UnknownSymbolError[S]) Error() string {
	return fmt.Sprintf("%v: %#v at index %d", ErrUnknownSymbol, err.Symbol, err.Index)
}

// Is reports true for ErrUnknownSymbol.
func (err *UnknownSymbolError[S]) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// TruncatedStreamError reports how far Decode got before running out of
// bits.
type TruncatedStreamError struct {
	// Length is the bit length of the stream.
	Length int

	// Start is the offset of the first bit of the incomplete code.
	Start int

	// Decoded is the number of symbols that were complete.
	Decoded int
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("%v: %d trailing bits starting at bit %d (of %d) after %d symbols",
		ErrTruncatedStream, err.Length-err.Start, err.Start, err.Length, err.Decoded)
}

// Is reports true for ErrTruncatedStream.
func (err *TruncatedStreamError) Is(target error) bool {
	return target == ErrTruncatedStream
}

var (
	_ error = (*UnknownSymbolError[rune])(nil)
	_ error = (*TruncatedStreamError)(nil)
)
