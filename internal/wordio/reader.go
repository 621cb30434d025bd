// Package wordio reads and writes streams of fixed-width words.
package wordio

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// Reader reads words of type T from a byte stream, tracking the byte position.
type Reader[T bits.Word] struct {
	r     io.Reader
	order binary.ByteOrder
	pos   int
	buf   [8]byte
}

// NewReader creates a Reader decoding words in the given byte order.
func NewReader[T bits.Word](r io.Reader, order binary.ByteOrder) *Reader[T] {
	return &Reader[T]{r: r, order: order}
}

// Position returns the current byte position.
func (r *Reader[T]) Position() int {
	return r.pos
}

// Next reads one word. It returns io.EOF when the stream ends on a word
// boundary and an error wrapping io.ErrUnexpectedEOF on a partial word.
func (r *Reader[T]) Next() (T, error) {
	size := int(bits.Width[T]() / 8)
	n, err := io.ReadFull(r.r, r.buf[:size])
	start := r.pos
	r.pos += n
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, r.wrapError(start, err)
	}

	switch size {
	case 1:
		return T(r.buf[0]), nil
	case 2:
		return T(r.order.Uint16(r.buf[:2])), nil
	case 4:
		return T(r.order.Uint32(r.buf[:4])), nil
	default:
		return T(r.order.Uint64(r.buf[:8])), nil
	}
}

func (r *Reader[T]) wrapError(pos int, err error) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Cause(err).
		Value(pos).
		Detail("read %d-bit word at byte %d", bits.Width[T](), pos).
		Build()
}

// ParseOrder maps "le"/"little" and "be"/"big" to a byte order.
func ParseOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "le", "little":
		return binary.LittleEndian, nil
	case "be", "big", "":
		return binary.BigEndian, nil
	}
	return nil, errors.ParseFailed("byte order", fmt.Errorf("unknown byte order %q", s))
}
