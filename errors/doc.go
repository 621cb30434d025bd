// Package errors provides structured error types for the bitmatch library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: field path, pattern text, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindLengthMismatch).
//		Pattern("11aabb0").
//		Detail("pattern has %d bits, word has %d", 7, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.LengthMismatch(errors.PhaseCompile, "11aabb0", 7, 8)
//	err := errors.Overflow(errors.PhaseEncode, path, 9, 3)
//
// Precondition failures (a bit index outside the word, a dynamic pattern
// longer than the word) are not returned. They panic with an *Error of
// KindContract built by Contract.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
