package baseline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleData() []byte {
	return bytes.Repeat([]byte("ABRACADABRAMISSISSIPPIBANANAA "), 200)
}

func TestCodecs_RoundTrip(t *testing.T) {
	data := sampleData()
	for _, algorithm := range Algorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			codec, err := GetCodec(algorithm)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, decompressed)
		})
	}
}

func TestCodecs_EmptyDecompress(t *testing.T) {
	for _, algorithm := range Algorithms {
		codec, err := GetCodec(algorithm)
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec("brotli")
	require.Error(t, err)
	require.Contains(t, err.Error(), "brotli")
}

func TestMeasure(t *testing.T) {
	data := sampleData()
	results, err := Measure(data)
	require.NoError(t, err)
	require.Len(t, results, len(Algorithms))

	for i, r := range results {
		require.Equal(t, Algorithms[i], r.Algorithm)
		require.Equal(t, len(data), r.OriginalSize)
		require.Positive(t, r.CompressedSize)
		require.Less(t, r.Ratio(), 1.0)
		require.Greater(t, r.SpaceSavings(), 0.0)
	}
}

func TestResult_Empty(t *testing.T) {
	r := Result{Algorithm: Zstd}
	require.Equal(t, 0.0, r.Ratio())
	require.Equal(t, 0.0, r.SpaceSavings())
}
