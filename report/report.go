// Package report renders Huffman encodings for humans: a per-symbol
// frequency and code table, a drawing of the tree, and a comparison with
// general-purpose compressors.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	huffman "github.com/chronos-tachyon/huffman-tree"
	"github.com/chronos-tachyon/huffman-tree/internal/baseline"
)

// Printer writes reports about sequences of S.
type Printer[S huffman.Symbol] struct {
	// Name renders one symbol.  If nil, symbols are rendered with %v.
	Name func(S) string

	// NoColor disables ANSI colors even when the terminal supports them.
	NoColor bool

	// MaxText limits how many symbols of a sequence are shown; longer
	// sequences are cut short with "...".  Zero means no limit.
	MaxText int
}

type palette struct {
	heading *color.Color
	branch  *color.Color
	symbol  *color.Color
	code    *color.Color
	number  *color.Color
}

func (p *Printer[S]) palette() palette {
	pal := palette{
		heading: color.New(color.Bold),
		branch:  color.New(color.FgBlue),
		symbol:  color.New(color.FgGreen, color.Bold),
		code:    color.New(color.FgYellow),
		number:  color.New(color.FgCyan),
	}
	if p.NoColor {
		for _, c := range []*color.Color{pal.heading, pal.branch, pal.symbol, pal.code, pal.number} {
			c.DisableColor()
		}
	}
	return pal
}

func (p *Printer[S]) name(s S) string {
	if p.Name == nil {
		return fmt.Sprint(s)
	}
	return p.Name(s)
}

func (p *Printer[S]) text(seq []S) string {
	var sb strings.Builder
	for i, s := range seq {
		if p.MaxText > 0 && i >= p.MaxText {
			sb.WriteString("...")
			break
		}
		sb.WriteString(p.name(s))
	}
	return sb.String()
}

// WriteDetails writes the original sequence, the frequency and code of each
// symbol in code-table order, the encoded stream, the decoded sequence, and
// the compression ratio.
func (p *Printer[S]) WriteDetails(w io.Writer, original []S, res huffman.Result[S], decoded []S) (int64, error) {
	pal := p.palette()
	stats := res.Stats()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\n%s : %s\n", pal.heading.Sprint(padLeft("Original Text", 20)), p.text(original))

	fmt.Fprintf(&buf, "\n\t%s\t%s\t%s\n", pal.heading.Sprint("Char"), pal.heading.Sprint("Frequency"), pal.heading.Sprint("Code"))
	for _, s := range res.Table.Symbols() {
		code, _ := res.Table.Code(s)
		fmt.Fprintf(&buf, "\t%s\t%s\t%s\n",
			pal.symbol.Sprint(center(p.name(s), 6)),
			pal.number.Sprint(center(strconv.FormatUint(res.Frequencies.Count(s), 10), 9)),
			pal.code.Sprint(fmt.Sprintf("%-9s", code.String())))
	}

	encoded := res.Stream.String()
	if p.MaxText > 0 && len(encoded) > p.MaxText {
		encoded = encoded[:p.MaxText] + "..."
	}
	fmt.Fprintf(&buf, "\n%s : %s\n", pal.heading.Sprint(padLeft("Encoded Text", 20)), pal.code.Sprint(encoded))
	fmt.Fprintf(&buf, "%s : %s\n", pal.heading.Sprint(padLeft("Decoded Text", 20)), p.text(decoded))
	fmt.Fprintf(&buf, "%s = %d / %d = %s\n",
		pal.heading.Sprint(padLeft("Compression ratio", 20)),
		stats.OriginalBits, stats.EncodedBits,
		pal.number.Sprint(fmt.Sprintf("%.2f", stats.Factor())))
	return buf.WriteTo(w)
}

// WriteTree draws t sideways, right branch above left, with every leaf
// labelled by its symbol and its code in table.
func (p *Printer[S]) WriteTree(w io.Writer, t *huffman.Tree[S], table huffman.CodeTable[S]) (int64, error) {
	pal := p.palette()

	var buf bytes.Buffer
	if t == nil {
		buf.WriteString("Tree is empty\n")
		return buf.WriteTo(w)
	}

	leaf := func(id huffman.NodeID) {
		s, _ := t.Symbol(id)
		code, _ := table.Code(s)
		fmt.Fprintf(&buf, "  (%s, %s)\n", pal.symbol.Sprint(p.name(s)), pal.code.Sprint(code.String()))
	}

	fmt.Fprintf(&buf, "\n  %s\n    |\n", pal.heading.Sprint("Root"))
	root := t.Root()
	if t.IsLeaf(root) {
		buf.WriteString("   ")
		leaf(root)
		return buf.WriteTo(w)
	}

	type stackItem struct {
		id     huffman.NodeID
		indent int
		label  string
	}

	stack := []stackItem{
		{t.Left(root), 4, "L:"},
		{t.Right(root), 4, "R:"},
	}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		buf.WriteString(strings.Repeat(" ", top.indent))
		buf.WriteString(pal.branch.Sprint(top.label))
		if t.IsLeaf(top.id) {
			leaf(top.id)
			continue
		}
		buf.WriteByte('\n')
		stack = append(stack, stackItem{t.Left(top.id), top.indent + 3, "L:"})
		stack = append(stack, stackItem{t.Right(top.id), top.indent + 3, "R:"})
	}
	return buf.WriteTo(w)
}

// WriteBaselines writes the size of the Huffman encoding described by stats
// next to the sizes achieved by general-purpose compressors.  Sizes are in
// bytes; the Huffman size is rounded up to a whole byte and excludes the
// code table.
func (p *Printer[S]) WriteBaselines(w io.Writer, stats huffman.Stats, results []baseline.Result) (int64, error) {
	pal := p.palette()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\n%s\n", pal.heading.Sprintf("%-10s %12s %12s %8s", "Algorithm", "Original", "Compressed", "Ratio"))

	row := func(name string, original, compressed uint64, ratio float64) {
		fmt.Fprintf(&buf, "%-10s %12d %12d %s\n", name, original, compressed,
			pal.number.Sprintf("%8.3f", ratio))
	}

	original := (stats.OriginalBits + 7) / 8
	encoded := (stats.EncodedBits + 7) / 8
	row("huffman", original, encoded, stats.Ratio())
	for _, r := range results {
		row(string(r.Algorithm), uint64(r.OriginalSize), uint64(r.CompressedSize), r.Ratio())
	}
	return buf.WriteTo(w)
}

// RuneName renders r as itself if it is graphic, or as a Go escape
// sequence otherwise.
func RuneName(r rune) string {
	if unicode.IsGraphic(r) {
		return string(r)
	}
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}

// ByteName renders b as an ASCII character if it is printable, or as a \x
// escape otherwise.
func ByteName(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf(`\x%02x`, b)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
