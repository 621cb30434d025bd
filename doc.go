// Package bitmatch matches fixed-width machine words against textual bit
// patterns and extracts the fields the patterns name.
//
// A pattern is a string read most significant bit first, one character per
// bit: '0' and '1' must match, '?' matches anything and every other
// character tags a field. "11aabb00" over a byte matches 0xD8 and extracts
// a=1, b=2.
//
// # Architecture Overview
//
//	bitmatch/            Root package with the Matcher interface
//	├── bits/            Width, masks, bit and field reads, rotation
//	├── pattern/         Pattern compiler, match, extract, encode, struct codec
//	├── bitrange/        Read-write view onto a run of bits of an integer
//	├── table/           Named pattern tables, YAML loading, stream decoding
//	├── errors/          Structured error types
//	└── cmd/bitmatch/    Command line and interactive explorer
//
// # Quick Start
//
// Compile patterns once, usually into package-level variables:
//
//	var addImm = pattern.MustCompile[uint32]("100100010siiiiiiiiiiiinnnnnddddd")
//
//	if addImm.Match(word) {
//	    f := addImm.Extract(word) // s, i, n, d in pattern order
//	    fmt.Println(f[1], f[2], f[3])
//	}
//
// or hand the fields straight to a function:
//
//	insn, ok := pattern.Decode(addImm, word, func(f ...uint32) Insn {
//	    return Insn{Shift: f[0] == 1, Imm: f[1], Rn: f[2], Rd: f[3]}
//	})
//
// Struct members can be bound to fields with tags:
//
//	type AddImm struct {
//	    Rd  uint8  `bits:"d"`
//	    Imm uint16 `bits:"i"`
//	}
//	err := pattern.Unmarshal(addImm, word, &insn)
//
// # Error Handling
//
// Malformed patterns are reported as *errors.Error values with the compile
// phase. Violated preconditions of the bit primitives and views panic with an
// *errors.Error of kind contract_violation.
//
// # Thread Safety
//
// Compiled patterns and loaded tables are immutable and safe for concurrent
// use. bitrange views alias caller memory and are not synchronized.
package bitmatch
