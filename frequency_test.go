package huffman

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFrequencies(t *testing.T) {
	ft := CountFrequencies([]rune("ABRACADABRA"))

	assert.Equal(t, 5, ft.Len())
	assert.Equal(t, uint64(11), ft.Total())
	assert.Equal(t, []rune("ABRCD"), ft.Symbols())
	for r, count := range map[rune]uint64{'A': 5, 'B': 2, 'R': 2, 'C': 1, 'D': 1} {
		assert.Equal(t, count, ft.Count(r), "Count(%q)", r)
		assert.True(t, ft.Has(r))
	}
	assert.Equal(t, uint64(0), ft.Count('Z'))
	assert.False(t, ft.Has('Z'))
}

func TestCountFrequencies_Empty(t *testing.T) {
	ft := CountFrequencies([]rune(""))
	assert.Equal(t, 0, ft.Len())
	assert.Equal(t, uint64(0), ft.Total())
	assert.Empty(t, ft.Symbols())
}

func TestFrequencyTable_SymbolsIsCopy(t *testing.T) {
	ft := CountFrequencies([]byte("abc"))
	symbols := ft.Symbols()
	symbols[0] = 'z'
	assert.Equal(t, []byte("abc"), ft.Symbols())
}

func TestNewFrequencyTable(t *testing.T) {
	ft, err := NewFrequencyTable([]string{"the", "a", "of"}, []uint64{7, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a", "of"}, ft.Symbols())
	assert.Equal(t, uint64(12), ft.Total())
	assert.Equal(t, uint64(3), ft.Count("a"))

	_, err = NewFrequencyTable([]string{"a"}, []uint64{1, 2})
	assert.True(t, errors.Is(err, ErrInvalidFrequencies))

	_, err = NewFrequencyTable([]string{"a", "b"}, []uint64{1, 0})
	assert.True(t, errors.Is(err, ErrInvalidFrequencies))

	_, err = NewFrequencyTable([]string{"a", "a"}, []uint64{1, 1})
	assert.True(t, errors.Is(err, ErrInvalidFrequencies))
}

func TestFrequencyTable_Dump(t *testing.T) {
	ft := CountFrequencies([]byte("AAB"))

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\tTotal() = 3\n",
		"\tCount(0x41) = 2\n",
		"\tCount(0x42) = 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ft.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}
