package huffman

// Encode concatenates the codes of every symbol of seq, in order.
//
// The result is not self-delimiting: decoding it requires the Tree the table
// was generated from.  An empty seq produces an empty stream.  If a symbol
// has no code, Encode returns an *UnknownSymbolError for the first such
// symbol.
//
func Encode[S Symbol](seq []S, table CodeTable[S]) (Bits, error) {
	var out Bits
	out.Grow(len(seq) * table.minSize)
	for index, s := range seq {
		code, found := table.codes[s]
		if !found {
			return Bits{}, &UnknownSymbolError[S]{Symbol: s, Index: index}
		}
		out.AppendBits(code)
	}
	return out, nil
}
