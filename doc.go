// Package huffman implements tree-based Huffman coding over arbitrary
// comparable symbols.
//
// The pipeline is:
//
//     CountFrequencies → BuildTree → GenerateCodes → Encode
//                                  ↘ Decode (walks the Tree)
//
// Decoding always walks the Tree, never the CodeTable.  A Codec bundles the
// pipeline into a session that retains the tree between Encode and Decode.
//
// Equal-weight nodes are merged in NodeID order: leaves are numbered in the
// order their symbols first appear in the input, and merged nodes are
// numbered as they are created.  The resulting codes are therefore
// reproducible for a given input.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
