package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
	"github.com/wippyai/bitmatch/pattern"
	"github.com/wippyai/bitmatch/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	plainStyle = lipgloss.NewStyle()
)

type row struct {
	label string
	value string
	style lipgloss.Style
}

// caches holds one compile cache per supported width.
type caches struct {
	c8  *pattern.Cache[uint8]
	c16 *pattern.Cache[uint16]
	c32 *pattern.Cache[uint32]
	c64 *pattern.Cache[uint64]
}

func newCaches() *caches {
	return &caches{
		c8:  pattern.NewCache[uint8](),
		c16: pattern.NewCache[uint16](),
		c32: pattern.NewCache[uint32](),
		c64: pattern.NewCache[uint64](),
	}
}

// describeWidth compiles text for a word of the given width and reports its
// mask, value and fields, followed by the match result for each word.
func describeWidth(c *caches, width uint, text string, dynamic bool, words []string) ([]row, error) {
	switch width {
	case 8:
		return describe(c.c8, text, dynamic, words)
	case 16:
		return describe(c.c16, text, dynamic, words)
	case 32:
		return describe(c.c32, text, dynamic, words)
	case 64:
		return describe(c.c64, text, dynamic, words)
	default:
		return nil, unsupportedWidth(width)
	}
}

func unsupportedWidth(width uint) error {
	return errors.Unsupported(errors.PhaseParse, fmt.Sprintf("word width %d (want 8, 16, 32 or 64)", width))
}

func describe[T bits.Word](c *pattern.Cache[T], text string, dynamic bool, words []string) ([]row, error) {
	p, err := compileWith(c, text, dynamic)
	if err != nil {
		return nil, err
	}
	parsed, err := parseWords[T](words)
	if err != nil {
		return nil, err
	}

	mode := "build-time"
	if p.Dynamic() {
		mode = "dynamic"
	}
	rows := []row{
		{"pattern", fmt.Sprintf("%s  (%d of %d bits, %s)", text, p.Len(), bits.Width[T](), mode), plainStyle},
		{"mask", formatWord(p.Mask()), plainStyle},
		{"value", formatWord(p.Value()), plainStyle},
		{"fields", formatFields(p.Fields()), fieldStyle},
	}

	for _, w := range parsed {
		if !p.Match(w) {
			rows = append(rows, row{"word", formatWord(w) + "  no match", errorStyle})
			continue
		}
		rows = append(rows, row{"word", formatWord(w) + "  match", matchStyle})
		values := p.Extract(w)
		for i, f := range p.Fields() {
			rows = append(rows, row{"  " + string(f.Tag), fmt.Sprintf("%d (%#x)", uint64(values[i]), uint64(values[i])), fieldStyle})
		}
	}
	return rows, nil
}

func compileWith[T bits.Word](c *pattern.Cache[T], text string, dynamic bool) (*pattern.Pattern[T], error) {
	if !dynamic {
		return c.Get(text)
	}
	if n, w := uint(utf8.RuneCountInString(text)), bits.Width[T](); n > w {
		return nil, errors.LengthMismatch(errors.PhaseCompile, text, n, w)
	}
	return c.GetDynamic(text), nil
}

func parseWords[T bits.Word](words []string) ([]T, error) {
	out := make([]T, 0, len(words))
	for _, s := range words {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseUint(s, 0, int(bits.Width[T]()))
		if err != nil {
			return nil, errors.ParseFailed("word "+strconv.Quote(s), err)
		}
		out = append(out, T(v))
	}
	return out, nil
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func formatWord[T bits.Word](v T) string {
	w := int(bits.Width[T]())
	return fmt.Sprintf("0x%0*x  %0*b", w/4, uint64(v), w, uint64(v))
}

func formatFields(fields []pattern.Field) string {
	if len(fields) == 0 {
		return "none"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Count == 1 {
			parts[i] = fmt.Sprintf("%c[%d]", f.Tag, f.Lowest)
		} else {
			parts[i] = fmt.Sprintf("%c[%d:%d]", f.Tag, f.Lowest+f.Count-1, f.Lowest)
		}
	}
	return strings.Join(parts, " ")
}

func formatDecoded[T bits.Word](offset int, d table.Decoded[T], ok bool) row {
	label := fmt.Sprintf("%08x", offset)
	hex := fmt.Sprintf("0x%0*x", int(bits.Width[T]()/4), uint64(d.Word))
	if !ok {
		return row{label, hex + "  ??", errorStyle}
	}
	return row{label, hex + "  " + d.String(), matchStyle}
}

func renderRows(rows []row, color bool) string {
	width := 0
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.label); n > width {
			width = n
		}
	}

	var b strings.Builder
	for _, r := range rows {
		label := r.label + strings.Repeat(" ", width-utf8.RuneCountInString(r.label))
		if color {
			b.WriteString(labelStyle.Render(label))
			b.WriteString("  ")
			b.WriteString(r.style.Render(r.value))
		} else {
			b.WriteString(label)
			b.WriteString("  ")
			b.WriteString(r.value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
