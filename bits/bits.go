package bits

import (
	"unsafe"

	"github.com/wippyai/bitmatch/errors"
)

// Word is the set of unsigned integer types a pattern or view can operate on.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integer is any Go integer type. Used where a result is converted for comparison.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Width returns the number of bits in T.
func Width[T Word]() uint {
	var zero T
	return 8 * uint(unsafe.Sizeof(zero))
}

// Ones returns a T with every bit set.
func Ones[T Word]() T {
	var zero T
	return ^zero
}

// LowMask returns a T with the low count bits set.
// A count equal to the word width yields Ones without shifting by the full width.
func LowMask[T Word](count uint) T {
	w := Width[T]()
	if count > w {
		panic(errors.Contract("bits.LowMask", "count %d exceeds %d-bit word", count, w))
	}
	if count == w {
		return Ones[T]()
	}
	return T(1)<<count - 1
}

// GetBit returns bit of value as 0 or 1.
func GetBit[T Word](value T, bit uint) T {
	if w := Width[T](); bit >= w {
		panic(errors.Contract("bits.GetBit", "bit %d out of range for %d-bit word", bit, w))
	}
	return (value >> bit) & 1
}

// GetField returns the count-bit field of value whose least significant bit is lowest.
func GetField[T Word](value T, lowest, count uint) T {
	if w := Width[T](); lowest >= w {
		panic(errors.Contract("bits.GetField", "lowest bit %d out of range for %d-bit word", lowest, w))
	}
	return (value >> lowest) & LowMask[T](count)
}

// RotateRight rotates value right by amount bits.
// Amounts of a full word or more wrap around.
func RotateRight[T Word](value T, amount uint) T {
	w := Width[T]()
	amount %= w
	if amount == 0 {
		return value
	}
	return (value >> amount) | (value << (w - amount))
}
