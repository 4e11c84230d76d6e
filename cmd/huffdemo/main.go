// Command huffdemo Huffman-encodes a string or a file, decodes the result,
// and prints the code table, the tree, and how the encoding compares with
// general-purpose compressors.
//
// Usage:
//
//	huffdemo [-text TEXT | -file PATH] [-tree] [-baseline] [-width BITS] [-no-color] [-out PATH]
//
// Text is encoded one rune at a time; files are encoded one byte at a time.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	pb "github.com/cheggaaa/pb/v3"

	huffman "github.com/chronos-tachyon/huffman-tree"
	"github.com/chronos-tachyon/huffman-tree/internal/baseline"
	"github.com/chronos-tachyon/huffman-tree/report"
)

const defaultText = "ABRACADABRAMISSISSIPPIBANANAA"

// maxFileText limits how much of a file's contents is echoed in the report.
const maxFileText = 256

type flags struct {
	text     string
	file     string
	tree     bool
	baseline bool
	width    int
	noColor  bool
	out      string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffdemo: ")

	var f flags
	flag.StringVar(&f.text, "text", defaultText, "text to encode, one rune per symbol")
	flag.StringVar(&f.file, "file", "", "file to encode, one byte per symbol (overrides -text)")
	flag.BoolVar(&f.tree, "tree", true, "draw the Huffman tree")
	flag.BoolVar(&f.baseline, "baseline", false, "compare with zstd, s2 and lz4")
	flag.IntVar(&f.width, "width", huffman.DefaultSymbolWidth, "bits per symbol in the uncompressed representation")
	flag.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	flag.StringVar(&f.out, "out", "", "write the packed encoded stream to this file")
	flag.Parse()

	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	if f.file != "" {
		var data []byte
		data, err = readFile(f.file)
		if err == nil {
			p := &report.Printer[byte]{Name: report.ByteName, NoColor: f.noColor, MaxText: maxFileText}
			err = run(os.Stdout, f, data, data, p)
		}
	} else {
		p := &report.Printer[rune]{Name: report.RuneName, NoColor: f.noColor}
		err = run(os.Stdout, f, []rune(f.text), []byte(f.text), p)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// run encodes seq, decodes it again, and reports on both.  raw is the
// serialized form of seq, used for the baseline comparison.
func run[S huffman.Symbol](w io.Writer, f flags, seq []S, raw []byte, p *report.Printer[S]) error {
	codec, err := huffman.NewCodec[S](
		huffman.WithSymbolWidth(f.width),
		huffman.WithRoundTripCheck(true),
	)
	if err != nil {
		return err
	}

	res, err := codec.Encode(seq)
	if err != nil {
		return err
	}

	decoded, err := codec.Decode(res.Stream)
	if err != nil {
		return err
	}

	if _, err := p.WriteDetails(w, seq, res, decoded); err != nil {
		return err
	}

	// The code table alone must be enough to rebuild the decoding tree.
	rebuilt, err := huffman.TreeFromCodes(res.Table, res.Frequencies)
	if err != nil {
		return err
	}
	fingerprint := codec.Tree().Fingerprint()
	if rebuilt.Fingerprint() != fingerprint {
		return fmt.Errorf("tree rebuilt from codes differs: fingerprint %016x, want %016x", rebuilt.Fingerprint(), fingerprint)
	}

	if f.tree {
		if _, err := fmt.Fprintf(w, "\n%20s : %016x\n", "Tree fingerprint", fingerprint); err != nil {
			return err
		}
		if _, err := p.WriteTree(w, codec.Tree(), res.Table); err != nil {
			return err
		}
	}

	if f.baseline {
		results, err := baseline.Measure(raw)
		if err != nil {
			return err
		}
		if _, err := p.WriteBaselines(w, res.Stats(), results); err != nil {
			return err
		}
	}

	if f.out != "" {
		if err := writeStream(f.out, res.Stream); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.Full.Start64(fi.Size())
	bar.Set(pb.Bytes, true)
	defer bar.Finish()

	data, err := io.ReadAll(bar.NewProxyReader(file))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func writeStream(path string, stream huffman.Bits) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	n, err := stream.WriteTo(file)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("wrote %d bits (%d bytes) to %s", stream.Len(), n, path)
	return nil
}
