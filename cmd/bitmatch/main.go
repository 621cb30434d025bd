package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/internal/wordio"
	"github.com/wippyai/bitmatch/pattern"
	"github.com/wippyai/bitmatch/table"
)

type options struct {
	order   binary.ByteOrder
	pattern string
	table   string
	in      string
	words   []string
	width   uint
	dynamic bool
	color   bool
}

func main() {
	var (
		patternText = flag.String("pattern", "", "Bit pattern, most significant bit first (0, 1, ? or a field tag)")
		wordList    = flag.String("word", "", "Words to match, comma-separated (0x, 0o and 0b prefixes accepted)")
		width       = flag.Uint("width", 32, "Word width in bits: 8, 16, 32 or 64")
		dynamic     = flag.Bool("dynamic", false, "Compile the pattern in dynamic mode (may be shorter than the word)")
		tablePath   = flag.String("table", "", "Path to a YAML decode table")
		inPath      = flag.String("in", "", "Binary file to decode with -table (- for stdin)")
		orderName   = flag.String("order", "be", "Byte order of -in words: le or be")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		pattern.SetLogger(logger)
		table.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*patternText, *wordList, *width, *dynamic); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *patternText == "" && *tablePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitmatch -pattern <bits> [-word w1,w2] [-width 32] [-dynamic]")
		fmt.Fprintln(os.Stderr, "       bitmatch -table <file.yaml> [-word w1,w2 | -in <file> [-order le|be]] [-width 32]")
		fmt.Fprintln(os.Stderr, "       bitmatch -i  (interactive mode)")
		os.Exit(1)
	}

	order, err := wordio.ParseOrder(*orderName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		pattern: *patternText,
		words:   splitWords(*wordList),
		width:   *width,
		dynamic: *dynamic,
		table:   *tablePath,
		in:      *inPath,
		order:   order,
		color:   term.IsTerminal(int(os.Stdout.Fd())),
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(out, opts)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, opts options) error {
	if opts.table == "" {
		rows, err := describeWidth(newCaches(), opts.width, opts.pattern, opts.dynamic, opts.words)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, renderRows(rows, opts.color))
		return err
	}

	switch opts.width {
	case 8:
		return runTable[uint8](out, opts)
	case 16:
		return runTable[uint16](out, opts)
	case 32:
		return runTable[uint32](out, opts)
	case 64:
		return runTable[uint64](out, opts)
	default:
		return unsupportedWidth(opts.width)
	}
}

func runTable[T bits.Word](out io.Writer, opts options) error {
	f, err := os.Open(opts.table)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}
	tbl, err := table.LoadYAML[T](f)
	f.Close()
	if err != nil {
		return err
	}

	if opts.in != "" {
		return decodeFile(out, tbl, opts)
	}

	words, err := parseWords[T](opts.words)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return listTable(out, tbl, opts.color)
	}

	rows := make([]row, len(words))
	size := int(bits.Width[T]() / 8)
	for i, w := range words {
		d, ok := tbl.Decode(w)
		rows[i] = formatDecoded(i*size, d, ok)
	}
	_, err = io.WriteString(out, renderRows(rows, opts.color))
	return err
}

func decodeFile[T bits.Word](out io.Writer, tbl *table.Table[T], opts options) error {
	in := io.Reader(os.Stdin)
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	unknown := 0
	err := tbl.DecodeStream(bufio.NewReader(in), opts.order, func(offset int, d table.Decoded[T], ok bool) error {
		if !ok {
			unknown++
		}
		_, err := io.WriteString(out, renderRows([]row{formatDecoded(offset, d, ok)}, opts.color))
		return err
	})
	if err != nil {
		return err
	}
	if unknown > 0 {
		table.Logger().Debug("unmatched words", zap.Int("count", unknown))
	}
	return nil
}

func listTable[T bits.Word](out io.Writer, tbl *table.Table[T], color bool) error {
	var rows []row
	for _, e := range tbl.Entries() {
		rows = append(rows, row{e.Name, e.Pattern.String() + "  " + formatFields(e.Pattern.Fields()), fieldStyle})
	}
	for _, o := range tbl.Overlaps() {
		rows = append(rows, row{"overlap", o.First + " matches before " + o.Second, errorStyle})
	}
	_, err := io.WriteString(out, renderRows(rows, color))
	return err
}
