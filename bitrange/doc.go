// Package bitrange provides View, an accessor for a contiguous range of bits
// inside a caller-owned integer.
//
// A View does not own storage. It holds a pointer to the backing integer and
// reads or writes it in place:
//
//	var reg uint8 = 0x5A
//	v := bitrange.New(&reg, 2, 3)
//	v.Get()  // 6
//	v.Set(5) // reg == 0x56
//
// Writes preserve every bit outside the range. Views are not synchronized;
// concurrent writers to one integer need the same locking as any shared
// variable.
package bitrange
