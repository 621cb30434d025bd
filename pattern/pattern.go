package pattern

import (
	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// String returns the pattern text.
func (p *Pattern[T]) String() string { return p.text }

// Mask returns the bits constrained by literal positions.
func (p *Pattern[T]) Mask() T { return p.mask }

// Value returns the required value of the masked bits.
func (p *Pattern[T]) Value() T { return p.value }

// Len returns the number of positions in the pattern text.
func (p *Pattern[T]) Len() uint { return p.length }

// Dynamic reports whether the pattern was built by CompileDynamic.
func (p *Pattern[T]) Dynamic() bool { return p.dynamic }

// NumFields returns the number of fields.
func (p *Pattern[T]) NumFields() int { return len(p.fields) }

// Fields returns a copy of the field descriptors in scan order.
func (p *Pattern[T]) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// Field returns the first field tagged tag.
func (p *Pattern[T]) Field(tag rune) (Field, bool) {
	for _, f := range p.fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// Match reports whether word agrees with every literal position.
func (p *Pattern[T]) Match(word T) bool {
	return word&p.mask == p.value
}

// Overlaps reports whether some word matches both p and other.
func (p *Pattern[T]) Overlaps(other *Pattern[T]) bool {
	return (p.value^other.value)&p.mask&other.mask == 0
}

// Extract returns the field values of word in scan order.
// It does not check Match.
func (p *Pattern[T]) Extract(word T) []T {
	return p.AppendFields(make([]T, 0, len(p.fields)), word)
}

// AppendFields appends the field values of word to dst and returns the
// extended slice.
func (p *Pattern[T]) AppendFields(dst []T, word T) []T {
	for _, f := range p.fields {
		dst = append(dst, bits.GetField(word, f.Lowest, f.Count))
	}
	return dst
}

// Get returns the value of the first field tagged tag.
func (p *Pattern[T]) Get(tag rune, word T) (T, bool) {
	f, ok := p.Field(tag)
	if !ok {
		return 0, false
	}
	return bits.GetField(word, f.Lowest, f.Count), true
}

// Encode builds a word from the literal bits of p and one value per field,
// in scan order. Wildcard positions are zero.
func (p *Pattern[T]) Encode(values ...T) (T, error) {
	if len(values) != len(p.fields) {
		return 0, errors.Arity(errors.PhaseEncode, p.text, len(values), len(p.fields))
	}
	word := p.value
	for i, f := range p.fields {
		v := values[i]
		if v&^bits.LowMask[T](f.Count) != 0 {
			return 0, errors.New(errors.PhaseEncode, errors.KindOverflow).
				Pattern(p.text).
				Path(string(f.Tag)).
				Value(v).
				Detail("value %d overflows %d-bit field", uint64(v), f.Count).
				Build()
		}
		word |= v << f.Lowest
	}
	return word, nil
}

// Apply extracts the fields of word and passes them to fn in scan order.
// fn is called exactly once, with no arguments when p has no fields.
func Apply[T bits.Word, R any](p *Pattern[T], word T, fn func(fields ...T) R) R {
	var buf [8]T
	return fn(p.AppendFields(buf[:0], word)...)
}

// Decode calls Apply if word matches p.
func Decode[T bits.Word, R any](p *Pattern[T], word T, fn func(fields ...T) R) (R, bool) {
	if !p.Match(word) {
		var zero R
		return zero, false
	}
	return Apply(p, word, fn), true
}
