package huffman

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestCodeTable(text string) CodeTable[rune] {
	return GenerateCodes(BuildTree(CountFrequencies([]rune(text))))
}

func TestGenerateCodes_Abracadabra(t *testing.T) {
	ct := makeTestCodeTable("ABRACADABRA")

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 3\n",
		"\tCode(65) = \"0\"\n",
		"\tCode(67) = \"100\"\n",
		"\tCode(68) = \"101\"\n",
		"\tCode(66) = \"110\"\n",
		"\tCode(82) = \"111\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = ct.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	assert.Equal(t, 5, ct.Len())
	assert.Equal(t, []rune("ACDBR"), ct.Symbols())
	assert.True(t, ct.IsPrefixFree())

	code, ok := ct.Code('A')
	assert.True(t, ok)
	assert.Equal(t, "0", code.String())
	_, ok = ct.Code('Z')
	assert.False(t, ok)
}

func TestGenerateCodes_SingleSymbol(t *testing.T) {
	ct := makeTestCodeTable("AAAA")
	assert.Equal(t, 1, ct.Len())
	code, ok := ct.Code('A')
	require.True(t, ok)
	assert.Equal(t, "0", code.String())
	assert.Equal(t, 1, ct.MinSize())
	assert.Equal(t, 1, ct.MaxSize())
}

func TestGenerateCodes_NilTree(t *testing.T) {
	ct := GenerateCodes[rune](nil)
	assert.Equal(t, 0, ct.Len())
	assert.Empty(t, ct.Symbols())
	assert.Empty(t, ct.Reversed())
	assert.True(t, ct.IsPrefixFree())
}

func TestGenerateCodes_PrefixFree(t *testing.T) {
	for _, sample := range treeSamples {
		t.Run(sample, func(t *testing.T) {
			ft := CountFrequencies([]rune(sample))
			tree := BuildTree(ft)
			ct := GenerateCodes(tree)
			require.Equal(t, ft.Len(), ct.Len())

			// Pairwise check, independent of the sorted-neighbour shortcut.
			symbols := ct.Symbols()
			for i, a := range symbols {
				codeA, _ := ct.Code(a)
				assert.NotZero(t, codeA.Len())
				for j, b := range symbols {
					if i == j {
						continue
					}
					codeB, _ := ct.Code(b)
					assert.False(t, codeB.HasPrefix(codeA), "%s (%q) is a prefix of %s (%q)", codeA, a, codeB, b)
				}
			}

			depths := leafDepths(tree)
			for _, s := range symbols {
				code, _ := ct.Code(s)
				assert.Equal(t, depths[s], code.Len(), "code length of %q", s)
			}

			length, err := ct.EncodedLength(ft)
			require.NoError(t, err)
			assert.Equal(t, tree.WeightedPathLength(), length)
		})
	}
}

func TestCodeTable_Reversed(t *testing.T) {
	ct := makeTestCodeTable("ABRACADABRA")
	assert.Equal(t, map[string]rune{
		"0":   'A',
		"100": 'C',
		"101": 'D',
		"110": 'B',
		"111": 'R',
	}, ct.Reversed())
}

func TestCodeTable_EncodedLength_Unknown(t *testing.T) {
	ct := makeTestCodeTable("ABRACADABRA")
	_, err := ct.EncodedLength(CountFrequencies([]rune("ABZ")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	var use *UnknownSymbolError[rune]
	require.True(t, errors.As(err, &use))
	assert.Equal(t, 'Z', use.Symbol)
	assert.Equal(t, 2, use.Index)
}

func TestNewCodeTable(t *testing.T) {
	ct, err := NewCodeTable(map[string]Bits{
		"x": MustParseBits("11"),
		"y": MustParseBits("0"),
		"z": MustParseBits("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z", "x"}, ct.Symbols())
	assert.Equal(t, 1, ct.MinSize())
	assert.Equal(t, 2, ct.MaxSize())
	assert.True(t, ct.IsPrefixFree())
}

func TestNewCodeTable_Invalid(t *testing.T) {
	type testRow struct {
		name  string
		codes map[string]Bits
	}

	testData := [...]testRow{
		{name: "empty code", codes: map[string]Bits{"x": {}, "y": MustParseBits("1")}},
		{name: "prefix", codes: map[string]Bits{"x": MustParseBits("1"), "y": MustParseBits("10"), "z": MustParseBits("0")}},
		{name: "duplicate", codes: map[string]Bits{"x": MustParseBits("01"), "y": MustParseBits("01")}},
		{name: "distant prefix", codes: map[string]Bits{"x": MustParseBits("0"), "y": MustParseBits("0111"), "z": MustParseBits("01")}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := NewCodeTable(row.codes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCode))
		})
	}
}
