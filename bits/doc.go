// Package bits provides width-generic primitives over unsigned words.
//
// All functions are generic over Word (uint8, uint16, uint32, uint64 and
// types derived from them). Bit positions count from the least significant
// bit, starting at zero.
//
// Preconditions are checked: a bit position or field width that does not fit
// the word panics with an *errors.Error of kind contract_violation. These are
// programmer errors, not conditions to recover from.
package bits
