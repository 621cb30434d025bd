package bitmatch

import (
	"github.com/wippyai/bitmatch/bits"
)

// Word is the set of unsigned integer types a pattern can describe.
type Word = bits.Word

// Matcher tests and takes apart words of type T. *pattern.Pattern[T]
// implements it.
type Matcher[T Word] interface {
	Match(word T) bool
	Extract(word T) []T
}

// First returns the index of the first matcher that accepts word, or -1.
func First[T Word](word T, matchers ...Matcher[T]) int {
	for i, m := range matchers {
		if m.Match(word) {
			return i
		}
	}
	return -1
}
