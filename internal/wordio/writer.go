package wordio

import (
	"bytes"
	"encoding/binary"

	"github.com/wippyai/bitmatch/bits"
)

// Writer buffers words of type T in a byte order.
type Writer[T bits.Word] struct {
	buf   *bytes.Buffer
	order binary.ByteOrder
}

// NewWriter creates a new Writer.
func NewWriter[T bits.Word](order binary.ByteOrder) *Writer[T] {
	return &Writer[T]{buf: &bytes.Buffer{}, order: order}
}

// Bytes returns the written bytes.
func (w *Writer[T]) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer[T]) Len() int {
	return w.buf.Len()
}

// Write appends one word.
func (w *Writer[T]) Write(word T) {
	var tmp [8]byte
	switch bits.Width[T]() {
	case 8:
		tmp[0] = byte(word)
		w.buf.Write(tmp[:1])
	case 16:
		w.order.PutUint16(tmp[:2], uint16(word))
		w.buf.Write(tmp[:2])
	case 32:
		w.order.PutUint32(tmp[:4], uint32(word))
		w.buf.Write(tmp[:4])
	default:
		w.order.PutUint64(tmp[:8], uint64(word))
		w.buf.Write(tmp[:8])
	}
}
