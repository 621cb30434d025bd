package wordio

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"io"
	"testing"

	"github.com/wippyai/bitmatch/errors"
)

func TestReader_Widths(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}

	r8 := NewReader[uint8](bytes.NewReader(data), binary.BigEndian)
	for i, want := range data {
		got, err := r8.Next()
		if err != nil {
			t.Fatalf("word %d: %v", i, err)
		}
		if got != want {
			t.Errorf("word %d: got %#x, want %#x", i, got, want)
		}
	}

	r16 := NewReader[uint16](bytes.NewReader(data), binary.LittleEndian)
	if got, _ := r16.Next(); got != 0x3412 {
		t.Errorf("u16 le: got %#x, want 0x3412", got)
	}

	r32 := NewReader[uint32](bytes.NewReader(data), binary.BigEndian)
	if got, _ := r32.Next(); got != 0x12345678 {
		t.Errorf("u32 be: got %#x, want 0x12345678", got)
	}
	if got, _ := r32.Next(); got != 0x9ABCDEF0 {
		t.Errorf("u32 be: got %#x, want 0x9abcdef0", got)
	}
	if r32.Position() != 8 {
		t.Errorf("position = %d, want 8", r32.Position())
	}

	r64 := NewReader[uint64](bytes.NewReader(data), binary.LittleEndian)
	if got, _ := r64.Next(); got != 0xF0DEBC9A78563412 {
		t.Errorf("u64 le: got %#x", got)
	}
}

func TestReader_EOF(t *testing.T) {
	r := NewReader[uint16](bytes.NewReader([]byte{0x01, 0x02}), binary.BigEndian)
	if _, err := r.Next(); err != nil {
		t.Fatalf("first word: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("clean end: got %v, want io.EOF", err)
	}
}

func TestReader_PartialWord(t *testing.T) {
	r := NewReader[uint32](bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}), binary.BigEndian)
	if _, err := r.Next(); err != nil {
		t.Fatalf("first word: %v", err)
	}
	_, err := r.Next()
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("partial word: got %v, want ErrUnexpectedEOF", err)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidData}) {
		t.Errorf("partial word error should be a decode error: %v", err)
	}
	var e *errors.Error
	if stderrors.As(err, &e) && e.Value != 4 {
		t.Errorf("error position = %v, want 4", e.Value)
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	words := []uint32{0, 1, 0xDEADBEEF, 0x80000000}
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		w := NewWriter[uint32](order)
		for _, v := range words {
			w.Write(v)
		}
		if w.Len() != 16 {
			t.Fatalf("%v: len = %d, want 16", order, w.Len())
		}

		r := NewReader[uint32](bytes.NewReader(w.Bytes()), order)
		for i, want := range words {
			got, err := r.Next()
			if err != nil {
				t.Fatalf("%v word %d: %v", order, i, err)
			}
			if got != want {
				t.Errorf("%v word %d: got %#x, want %#x", order, i, got, want)
			}
		}
	}

	w8 := NewWriter[uint8](binary.BigEndian)
	w8.Write(0xAB)
	if !bytes.Equal(w8.Bytes(), []byte{0xAB}) {
		t.Errorf("u8 writer: got %v", w8.Bytes())
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want binary.ByteOrder
	}{
		{"le", binary.LittleEndian},
		{"LITTLE", binary.LittleEndian},
		{"be", binary.BigEndian},
		{"big", binary.BigEndian},
		{"", binary.BigEndian},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		if err != nil {
			t.Errorf("ParseOrder(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrder(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseOrder("middle"); err == nil {
		t.Error("ParseOrder(middle) should fail")
	}
}
