package bitrange

import (
	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// View is a window of length bits starting at bit within *data.
type View[T bits.Word] struct {
	data   *T
	mask   T
	bit    uint
	length uint
}

// New returns a view of bits [bit, bit+length) of *data.
// It panics if data is nil, length is zero, or the range does not fit in T.
func New[T bits.Word](data *T, bit, length uint) View[T] {
	w := bits.Width[T]()
	if data == nil {
		panic(errors.Contract("bitrange.New", "nil backing integer"))
	}
	if length == 0 || bit >= w || length > w-bit {
		panic(errors.Contract("bitrange.New", "range [%d,%d) does not fit %d-bit word", bit, bit+length, w))
	}
	return View[T]{
		data:   data,
		mask:   bits.Ones[T]() >> (w - length) << bit,
		bit:    bit,
		length: length,
	}
}

// Bit returns the position of the lowest bit of the range.
func (v View[T]) Bit() uint { return v.bit }

// Len returns the number of bits in the range.
func (v View[T]) Len() uint { return v.length }

// Mask returns the range as a mask over the backing integer.
func (v View[T]) Mask() T { return v.mask }

// Get returns the range shifted down to bit 0.
func (v View[T]) Get() T {
	return (*v.data & v.mask) >> v.bit
}

// Set replaces the range with the low Len() bits of value.
func (v View[T]) Set(value T) {
	*v.data = (*v.data &^ v.mask) | ((value << v.bit) & v.mask)
}

// GetBitAt reports whether bit index of the range is set.
func (v View[T]) GetBitAt(index uint) bool {
	v.checkIndex("bitrange.GetBitAt", index)
	return *v.data&(T(1)<<(v.bit+index)) != 0
}

// SetBitAt sets or clears bit index of the range.
func (v View[T]) SetBitAt(index uint, set bool) {
	v.checkIndex("bitrange.SetBitAt", index)
	b := T(1) << (v.bit + index)
	if set {
		*v.data |= b
	} else {
		*v.data &^= b
	}
}

func (v View[T]) checkIndex(op string, index uint) {
	if index >= v.length {
		panic(errors.Contract(op, "index %d out of range for %d-bit view", index, v.length))
	}
}

// Equal reports whether the value of v, converted to U, equals rhs.
func Equal[U bits.Integer, T bits.Word](v View[T], rhs U) bool {
	return U(v.Get()) == rhs
}
