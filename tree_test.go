package huffman

import (
	"math"
	"strings"
	"testing"

	ihuffman "github.com/icza/huffman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeSamples = []string{
	"ABRACADABRA",
	"ABRACADABRAMISSISSIPPIBANANAA",
	"hello world",
	"AAB",
	"the quick brown fox jumps over the lazy dog",
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaabbbbbbbbbbbbbbbbccccccccddddeef",
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(CountFrequencies([]rune("")))
	assert.Nil(t, tree)
	assert.Equal(t, InvalidNode, tree.Root())
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.NumLeaves())
	assert.Equal(t, uint64(0), tree.Fingerprint())
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	tree := BuildTree(CountFrequencies([]rune("AAAA")))
	require.NotNil(t, tree)

	root := tree.Root()
	assert.Equal(t, 1, tree.Len())
	assert.True(t, tree.IsLeaf(root))
	assert.Equal(t, uint64(4), tree.Weight(root))
	assert.Equal(t, InvalidNode, tree.Left(root))
	assert.Equal(t, InvalidNode, tree.Right(root))
	assert.Equal(t, 0, tree.Depth())
	assert.Equal(t, uint64(4), tree.WeightedPathLength())

	s, ok := tree.Symbol(root)
	assert.True(t, ok)
	assert.Equal(t, 'A', s)
}

func TestBuildTree_Abracadabra(t *testing.T) {
	tree := BuildTree(CountFrequencies([]rune("ABRACADABRA")))
	require.NotNil(t, tree)

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tRoot() = 8\n",
		"\tNode(0) = Leaf{65, 5}\n",
		"\tNode(1) = Leaf{66, 2}\n",
		"\tNode(2) = Leaf{82, 2}\n",
		"\tNode(3) = Leaf{67, 1}\n",
		"\tNode(4) = Leaf{68, 1}\n",
		"\tNode(5) = Internal{2, 3, 4}\n",
		"\tNode(6) = Internal{4, 1, 2}\n",
		"\tNode(7) = Internal{6, 5, 6}\n",
		"\tNode(8) = Internal{11, 0, 7}\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	depths := leafDepths(tree)
	assert.Equal(t, 1, depths['A'])
	assert.Equal(t, 3, depths['C'])
	assert.Equal(t, 3, depths['D'])
	for _, depth := range depths {
		assert.LessOrEqual(t, depth, depths['C'])
	}
	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, uint64(23), tree.WeightedPathLength())
}

func TestBuildTree_WeightInvariant(t *testing.T) {
	for _, sample := range treeSamples {
		t.Run(sample, func(t *testing.T) {
			ft := CountFrequencies([]rune(sample))
			tree := BuildTree(ft)
			require.NotNil(t, tree)
			assert.Equal(t, 2*ft.Len()-1, tree.Len())
			assert.Equal(t, ft.Len(), tree.NumLeaves())
			assert.Equal(t, ft.Total(), tree.Weight(tree.Root()))

			seen := make(map[rune]bool)
			tree.walk(func(id NodeID, depth int) {
				if tree.IsLeaf(id) {
					s, ok := tree.Symbol(id)
					require.True(t, ok)
					assert.False(t, seen[s], "symbol %q appears twice", s)
					seen[s] = true
					assert.Equal(t, ft.Count(s), tree.Weight(id))
					return
				}
				_, ok := tree.Symbol(id)
				assert.False(t, ok)
				left, right := tree.Left(id), tree.Right(id)
				assert.Equal(t, tree.Weight(left)+tree.Weight(right), tree.Weight(id))
			})
			assert.Len(t, seen, ft.Len())
		})
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	for _, sample := range treeSamples {
		a := BuildTree(CountFrequencies([]rune(sample)))
		b := BuildTree(CountFrequencies([]rune(sample)))
		assert.Equal(t, a.Fingerprint(), b.Fingerprint(), sample)

		var da, db strings.Builder
		_, _ = a.Dump(&da)
		_, _ = b.Dump(&db)
		assert.Equal(t, da.String(), db.String(), sample)
	}

	x := BuildTree(CountFrequencies([]rune("AAB")))
	y := BuildTree(CountFrequencies([]rune("ABB")))
	assert.NotEqual(t, x.Fingerprint(), y.Fingerprint())
}

// TestBuildTree_Optimal checks the weighted path length against an
// independent Huffman implementation.  Tie-breaking differs between the two,
// but every Huffman tree of an alphabet has the same cost.
func TestBuildTree_Optimal(t *testing.T) {
	for _, sample := range treeSamples {
		t.Run(sample, func(t *testing.T) {
			ft := CountFrequencies([]rune(sample))
			tree := BuildTree(ft)

			var leaves []*ihuffman.Node
			for index, s := range ft.Symbols() {
				leaves = append(leaves, &ihuffman.Node{
					Value: ihuffman.ValueType(index),
					Count: int(ft.Count(s)),
				})
			}
			ihuffman.Build(leaves)

			var expect uint64
			for _, leaf := range leaves {
				_, bits := leaf.Code()
				expect += uint64(leaf.Count) * uint64(bits)
			}
			assert.Equal(t, expect, tree.WeightedPathLength())
		})
	}
}

func TestBuildTree_SaturatingWeights(t *testing.T) {
	ft, err := NewFrequencyTable([]rune("xyz"), []uint64{math.MaxUint64 - 1, math.MaxUint64 - 1, 1})
	require.NoError(t, err)

	tree := BuildTree(ft)
	require.NotNil(t, tree)
	assert.Equal(t, uint64(math.MaxUint64), tree.Weight(tree.Root()))
}

func TestTree_InvalidNode(t *testing.T) {
	tree := BuildTree(CountFrequencies([]rune("AB")))
	assert.Panics(t, func() { tree.Weight(InvalidNode) })
	assert.Panics(t, func() { tree.IsLeaf(NodeID(tree.Len())) })
}

func leafDepths[S Symbol](tree *Tree[S]) map[S]int {
	out := make(map[S]int)
	tree.walk(func(id NodeID, depth int) {
		if s, ok := tree.Symbol(id); ok {
			out[s] = depth
		}
	})
	return out
}
