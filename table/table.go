package table

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/segmentio/asm/ascii"
	"go.uber.org/zap"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
	"github.com/wippyai/bitmatch/internal/wordio"
	"github.com/wippyai/bitmatch/pattern"
)

// Entry is one named pattern of a table.
type Entry[T bits.Word] struct {
	Pattern *pattern.Pattern[T]
	names   []string // per field, in scan order
	Name    string
}

// FieldNames returns the name of each field of the entry in scan order.
// Untitled fields are named by their tag.
func (e Entry[T]) FieldNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Value is one decoded field.
type Value[T bits.Word] struct {
	Name  string
	Field pattern.Field
	Value T
}

// Decoded is the result of decoding a word with a table.
type Decoded[T bits.Word] struct {
	Name   string
	Fields []Value[T]
	Word   T
}

// Get returns the value of the field called name.
func (d Decoded[T]) Get(name string) (T, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// String formats the entry name followed by name=value pairs.
func (d Decoded[T]) String() string {
	var b strings.Builder
	b.WriteString(d.Name)
	for _, f := range d.Fields {
		fmt.Fprintf(&b, " %s=%d", f.Name, uint64(f.Value))
	}
	return b.String()
}

// Overlap names two entries that can both match some word. First is the
// entry tried first.
type Overlap struct {
	First  string
	Second string
}

// Table is an ordered list of named patterns for words of type T.
type Table[T bits.Word] struct {
	byName  map[string]int
	entries []Entry[T]
}

// New creates an empty table.
func New[T bits.Word]() *Table[T] {
	return &Table[T]{byName: make(map[string]int)}
}

// Add compiles text with pattern.Compile and appends it under name.
// names maps field tags to field names and may be nil.
func (t *Table[T]) Add(name, text string, names map[rune]string) error {
	p, err := pattern.Compile[T](text)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = []string{name}
		}
		return err
	}
	return t.AddPattern(name, p, names)
}

// AddDynamic compiles text with pattern.CompileDynamic and appends it.
// A pattern longer than the word is reported as an error.
func (t *Table[T]) AddDynamic(name, text string, names map[rune]string) error {
	if n, w := uint(utf8.RuneCountInString(text)), bits.Width[T](); n > w {
		e := errors.LengthMismatch(errors.PhaseCompile, text, n, w)
		e.Path = []string{name}
		return e
	}
	return t.AddPattern(name, pattern.CompileDynamic[T](text), names)
}

// AddPattern appends a compiled pattern under name.
func (t *Table[T]) AddPattern(name string, p *pattern.Pattern[T], names map[rune]string) error {
	if _, dup := t.byName[name]; dup {
		return errors.Duplicate(errors.PhaseLoad, "entry", name)
	}

	fields := p.Fields()
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = string(f.Tag)
		if n, ok := names[f.Tag]; ok && n != "" {
			fieldNames[i] = n
		}
	}
	for tag := range names {
		if _, ok := p.Field(tag); !ok {
			return errors.FieldUnknown(errors.PhaseLoad, []string{name}, string(tag))
		}
	}

	t.byName[name] = len(t.entries)
	t.entries = append(t.entries, Entry[T]{Name: name, Pattern: p, names: fieldNames})
	return nil
}

// Len returns the number of entries.
func (t *Table[T]) Len() int { return len(t.entries) }

// Entries returns the entries in match order.
func (t *Table[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds an entry by name. An exact match is preferred; otherwise
// names are compared case-insensitively.
func (t *Table[T]) Lookup(name string) (Entry[T], bool) {
	if i, ok := t.byName[name]; ok {
		return t.entries[i], true
	}
	for _, e := range t.entries {
		if ascii.EqualFoldString(e.Name, name) {
			return e, true
		}
	}
	return Entry[T]{}, false
}

// Classify returns the first entry matching word.
func (t *Table[T]) Classify(word T) (Entry[T], bool) {
	for _, e := range t.entries {
		if e.Pattern.Match(word) {
			return e, true
		}
	}
	return Entry[T]{}, false
}

// Decode classifies word and extracts the fields of the matching entry.
func (t *Table[T]) Decode(word T) (Decoded[T], bool) {
	e, ok := t.Classify(word)
	if !ok {
		return Decoded[T]{Word: word}, false
	}
	return e.decode(word), true
}

func (e Entry[T]) decode(word T) Decoded[T] {
	d := Decoded[T]{Name: e.Name, Word: word}
	fields := e.Pattern.Fields()
	values := e.Pattern.Extract(word)
	d.Fields = make([]Value[T], len(fields))
	for i, f := range fields {
		d.Fields[i] = Value[T]{Name: e.names[i], Field: f, Value: values[i]}
	}
	return d
}

// Encode builds a word for the named entry from field values in scan order.
func (t *Table[T]) Encode(name string, values ...T) (T, error) {
	e, ok := t.Lookup(name)
	if !ok {
		return 0, errors.NotFound(errors.PhaseEncode, "entry", name)
	}
	return e.Pattern.Encode(values...)
}

// Overlaps returns every pair of entries that can match a common word.
func (t *Table[T]) Overlaps() []Overlap {
	var out []Overlap
	for i, a := range t.entries {
		for _, b := range t.entries[i+1:] {
			if a.Pattern.Overlaps(b.Pattern) {
				out = append(out, Overlap{First: a.Name, Second: b.Name})
			}
		}
	}
	return out
}

// StreamFunc receives each word of a stream with its byte offset. ok is
// false when no entry matched.
type StreamFunc[T bits.Word] func(offset int, d Decoded[T], ok bool) error

// DecodeStream reads words from r in the given byte order and decodes each
// one. It stops at the end of the stream, at a partial trailing word, or
// when fn returns an error.
func (t *Table[T]) DecodeStream(r io.Reader, order binary.ByteOrder, fn StreamFunc[T]) error {
	wr := wordio.NewReader[T](r, order)
	words := 0
	for {
		offset := wr.Position()
		word, err := wr.Next()
		if err == io.EOF {
			Logger().Debug("stream decoded", zap.Int("words", words))
			return nil
		}
		if err != nil {
			return err
		}
		words++

		d, ok := t.Decode(word)
		if err := fn(offset, d, ok); err != nil {
			return err
		}
	}
}
