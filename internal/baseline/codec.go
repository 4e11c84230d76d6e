// Package baseline measures general-purpose compressors on the same input
// as a Huffman encoding, so that reports can put the Huffman result in
// context.
package baseline

import (
	"errors"
	"fmt"
)

// ErrIncompressible is returned by a Codec that declines to compress its
// input.  Measure reports such inputs at their original size.
var ErrIncompressible = errors.New("input is not compressible")

// Algorithm names a baseline compressor.
type Algorithm string

const (
	Zstd Algorithm = "zstd"
	S2   Algorithm = "s2"
	LZ4  Algorithm = "lz4"
)

// Algorithms lists every baseline, in report order.
var Algorithms = [...]Algorithm{Zstd, S2, LZ4}

// Codec compresses and decompresses whole buffers.
//
// Implementations are safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Algorithm]Codec{
	Zstd: zstdCodec{},
	S2:   s2Codec{},
	LZ4:  lz4Codec{},
}

// GetCodec returns the Codec for the given algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("unsupported baseline algorithm: %q", algorithm)
}

// Result is the outcome of compressing one input with one algorithm.
type Result struct {
	Algorithm      Algorithm
	OriginalSize   int
	CompressedSize int
}

// Ratio returns CompressedSize / OriginalSize, or 0 for an empty input.
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (r Result) SpaceSavings() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return (1.0 - r.Ratio()) * 100.0
}

// Measure compresses data with every algorithm in Algorithms.
func Measure(data []byte) ([]Result, error) {
	out := make([]Result, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		codec, err := GetCodec(algorithm)
		if err != nil {
			return nil, err
		}
		compressed, err := codec.Compress(data)
		size := len(compressed)
		switch {
		case errors.Is(err, ErrIncompressible):
			size = len(data)
		case err != nil:
			return nil, fmt.Errorf("%s: %w", algorithm, err)
		}
		out = append(out, Result{
			Algorithm:      algorithm,
			OriginalSize:   len(data),
			CompressedSize: size,
		})
	}
	return out, nil
}
