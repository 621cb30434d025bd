package pattern

import (
	"unicode/utf8"

	"github.com/segmentio/asm/ascii"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// Field describes one field of a compiled pattern.
type Field struct {
	Tag    rune
	Lowest uint // least significant bit of the field in the word
	Count  uint // number of bits
}

// Pattern is a compiled bit pattern for words of type T.
type Pattern[T bits.Word] struct {
	text    string
	fields  []Field
	length  uint
	mask    T
	value   T
	dynamic bool
}

// Compile compiles text into a pattern for T.
// The pattern must have exactly bits.Width[T]() positions.
func Compile[T bits.Word](text string) (*Pattern[T], error) {
	width := bits.Width[T]()
	if n := uint(utf8.RuneCountInString(text)); n != width {
		return nil, errors.LengthMismatch(errors.PhaseCompile, text, n, width)
	}
	return compile[T](text, width), nil
}

// MustCompile is like Compile but panics if the pattern length is wrong.
func MustCompile[T bits.Word](text string) *Pattern[T] {
	p, err := Compile[T](text)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileDynamic compiles a pattern that may be shorter than the word.
//
// The positions are weighted as if the pattern were full width and the
// resulting mask, value and field positions are then shifted right by the
// number of missing positions, so the pattern lands on the low bits and the
// high bits are wildcards. A pattern longer than the word panics.
func CompileDynamic[T bits.Word](text string) *Pattern[T] {
	width := bits.Width[T]()
	n := uint(utf8.RuneCountInString(text))
	if n > width {
		panic(errors.Contract("pattern.CompileDynamic", "pattern %q has %d positions, word has %d bits", text, n, width))
	}

	p := compile[T](text, width)
	shift := width - n
	if shift > 0 {
		p.mask >>= shift
		p.value >>= shift
		for i := range p.fields {
			p.fields[i].Lowest -= shift
		}
	}
	p.dynamic = true
	return p
}

type symbol interface {
	byte | rune
}

func compile[T bits.Word](text string, width uint) *Pattern[T] {
	p := &Pattern[T]{text: text}
	if ascii.ValidString(text) {
		scan(p, []byte(text), width)
	} else {
		scan(p, []rune(text), width)
	}
	return p
}

// scan walks the pattern once, position i carrying weight 2^(width-i-1).
// A field descriptor is emitted at the end of every run of one tag.
func scan[T bits.Word, S symbol](p *Pattern[T], syms []S, width uint) {
	n := uint(len(syms))
	p.length = n

	var start uint
	for i := uint(0); i < n; i++ {
		c := syms[i]
		weight := T(1) << (width - i - 1)

		switch c {
		case '0':
			p.mask |= weight
		case '1':
			p.mask |= weight
			p.value |= weight
		}

		if i+1 < n && syms[i+1] == c {
			continue
		}
		if isTag(rune(c)) {
			p.fields = append(p.fields, Field{
				Tag:    rune(c),
				Lowest: width - i - 1,
				Count:  i - start + 1,
			})
		}
		start = i + 1
	}
}

func isTag(c rune) bool {
	return c != '0' && c != '1' && c != '?'
}
