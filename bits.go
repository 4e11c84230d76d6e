package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/icza/bitio"
)

// Bits is a sequence of bits of arbitrary length.  It is used both for
// individual codes and for whole encoded streams.
//
// Bits are packed most significant bit first.  The zero value is an empty
// sequence.
//
// Bits is a value type: copies may share storage, but appending to one copy
// never changes another.  Only the copy that has appended the most bits may
// extend the shared storage in place; any other copy moves its bits to fresh
// storage before its first append.
type Bits struct {
	buf *bitBuffer
	n   int
}

// bitBuffer is the storage shared by copies of a Bits.  data holds the first
// n bits ever appended to it, and the unused bits of its final byte are
// zero.  Shorter views may see foreign bits beyond their own length.
type bitBuffer struct {
	data []byte
	n    int
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(str string) (Bits, error) {
	var b Bits
	b.Grow(len(str))
	for i := 0; i < len(str); i++ {
		switch ch := str[i]; ch {
		case '0':
			b.Append(0)
		case '1':
			b.Append(1)
		default:
			return Bits{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidBit, ch, i)
		}
	}
	return b, nil
}

// MustParseBits is like ParseBits but panics on error.
func MustParseBits(str string) Bits {
	b, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return b
}

// BitsFromBytes constructs a sequence of n bits from packed data, such as
// the output of Bytes or WriteTo.  Bits beyond n are ignored.
func BitsFromBytes(data []byte, n int) (Bits, error) {
	if n < 0 || n > 8*len(data) {
		return Bits{}, fmt.Errorf("%w: bit length %d out of range for %d bytes", ErrInvalidBit, n, len(data))
	}
	return Bits{buf: newBitBuffer(data, n, 0), n: n}, nil
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return b.n
}

// At returns the i'th bit, 0 or 1.
func (b Bits) At(i int) uint8 {
	if i < 0 || i >= b.n {
		panic(fmt.Errorf("bit index %d out of range [0, %d)", i, b.n))
	}
	return (b.buf.data[i>>3] >> (7 - uint(i&7))) & 1
}

// Grow makes room for at least n more bits without reallocating.
func (b *Bits) Grow(n int) {
	b.reserve(n)
}

// Append appends a single bit.  Any non-zero value is treated as 1.
func (b *Bits) Append(bit uint8) {
	b.reserve(1)
	d := b.buf
	if b.n&7 == 0 {
		d.data = append(d.data, 0)
	}
	if bit != 0 {
		d.data[b.n>>3] |= 0x80 >> uint(b.n&7)
	}
	b.n++
	d.n = b.n
}

// AppendBits appends all bits of other.
func (b *Bits) AppendBits(other Bits) {
	if other.n == 0 {
		return
	}
	b.reserve(other.n)
	if b.n&7 != 0 {
		for i := 0; i < other.n; i++ {
			b.Append(other.At(i))
		}
		return
	}
	d := b.buf
	d.data = append(d.data, other.bytes()...)
	b.n += other.n
	d.n = b.n
	clearTail(d.data, d.n)
}

// With returns a copy of b with one more bit appended.  b is not modified
// and the result does not share storage with it.
func (b Bits) With(bit uint8) Bits {
	out := Bits{buf: newBitBuffer(b.bytes(), b.n, 1), n: b.n}
	out.Append(bit)
	return out
}

// Equal reports whether b and other hold the same bits.
func (b Bits) Equal(other Bits) bool {
	if b.n != other.n {
		return false
	}
	full := b.n >> 3
	if !bytes.Equal(b.bytes()[:full], other.bytes()[:full]) {
		return false
	}
	for i := full << 3; i < b.n; i++ {
		if b.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of b.
func (b Bits) HasPrefix(prefix Bits) bool {
	if prefix.n > b.n {
		return false
	}
	full := prefix.n >> 3
	if !bytes.Equal(b.bytes()[:full], prefix.bytes()[:full]) {
		return false
	}
	for i := full << 3; i < prefix.n; i++ {
		if b.At(i) != prefix.At(i) {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the packed representation, padded with zero bits
// to a whole number of bytes.  Len is needed to recover the exact sequence.
func (b Bits) Bytes() []byte {
	out := make([]byte, byteLen(b.n))
	copy(out, b.bytes())
	clearTail(out, b.n)
	return out
}

// String returns the bits as a string of '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.At(i))
	}
	return sb.String()
}

// GoString returns a Go expression that reconstructs b.
func (b Bits) GoString() string {
	return "huffman.MustParseBits(" + strconv.Quote(b.String()) + ")"
}

// WriteTo writes the packed bits to w, padding the final byte with zero
// bits.  Only the bits themselves are written; the caller must carry Len
// separately in order to read them back.
func (b Bits) WriteTo(w io.Writer) (int64, error) {
	bw := bitio.NewWriter(w)
	data := b.bytes()
	full := b.n >> 3
	if _, err := bw.Write(data[:full]); err != nil {
		return 0, err
	}
	if rem := uint8(b.n & 7); rem != 0 {
		if err := bw.WriteBits(uint64(data[full]>>(8-rem)), rem); err != nil {
			return int64(full), err
		}
	}
	if err := bw.Close(); err != nil {
		return int64(full), err
	}
	return int64(byteLen(b.n)), nil
}

// ReadBits reads exactly n bits, as written by Bits.WriteTo, from r.  The
// padding of the final byte is consumed and discarded.  r may be read past
// the final byte if it is not an io.ByteReader.
func ReadBits(r io.Reader, n int) (Bits, error) {
	if n < 0 {
		return Bits{}, fmt.Errorf("%w: negative bit length %d", ErrInvalidBit, n)
	}
	br := bitio.NewReader(r)
	data := make([]byte, 0, byteLen(n))
	read := 0
	for read+8 <= n {
		x, err := br.ReadByte()
		if err != nil {
			return Bits{}, fmt.Errorf("reading bit %d of %d: %w", read, n, noEOF(err))
		}
		data = append(data, x)
		read += 8
	}
	if rem := uint8(n - read); rem != 0 {
		x, err := br.ReadBits(rem)
		if err != nil {
			return Bits{}, fmt.Errorf("reading bit %d of %d: %w", read, n, noEOF(err))
		}
		data = append(data, byte(x<<(8-rem)))
		br.Align()
	}
	return Bits{buf: &bitBuffer{data: data, n: n}, n: n}, nil
}

var (
	_ fmt.Stringer   = Bits{}
	_ fmt.GoStringer = Bits{}
	_ io.WriterTo    = Bits{}
)

// bytes returns the packed bytes covering b.  Bits of the final byte beyond
// b.n may belong to another copy.
func (b Bits) bytes() []byte {
	if b.buf == nil {
		return nil
	}
	return b.buf.data[:byteLen(b.n)]
}

// reserve makes b the sole writer of its storage, with room for at least
// extra more bits.
func (b *Bits) reserve(extra int) {
	need := byteLen(b.n + extra)
	if b.buf == nil || b.buf.n != b.n {
		b.buf = newBitBuffer(b.bytes(), b.n, extra)
		return
	}
	if need > cap(b.buf.data) {
		data := make([]byte, len(b.buf.data), max(need, 2*cap(b.buf.data)))
		copy(data, b.buf.data)
		b.buf.data = data
	}
}

// newBitBuffer copies the first n bits of src into fresh storage with room
// for extra more bits.
func newBitBuffer(src []byte, n, extra int) *bitBuffer {
	data := make([]byte, byteLen(n), byteLen(n+extra))
	copy(data, src)
	clearTail(data, n)
	return &bitBuffer{data: data, n: n}
}

// clearTail zeroes the bits of data beyond the first n.
func clearTail(data []byte, n int) {
	if rem := n & 7; rem != 0 {
		data[n>>3] &= byte(0xff << (8 - rem))
	}
}

func byteLen(nbits int) int {
	return (nbits + 7) >> 3
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
