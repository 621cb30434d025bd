// Package pattern compiles textual bit patterns and uses them to classify and
// decode fixed-width words.
//
// A pattern is read most significant bit first. Each position is one of:
//
//	'0', '1'   literal bit, the word must have this value here
//	'?'        wildcard, any value
//	other      field tag; a maximal run of one tag is one field
//
// For example "11aabb00" on a uint8 fixes the top two and bottom two bits and
// declares two 2-bit fields, a at bits [4,6) and b at bits [2,4):
//
//	p := pattern.MustCompile[uint8]("11aabb00")
//	p.Mask()  // 0xC3
//	p.Value() // 0xC0
//	p.Match(0xD8)   // true
//	p.Extract(0xD8) // [1 2]
//
// Two adjacent runs of different tags are separate fields, and the same tag
// may appear in more than one run, each run being its own field. Fields are
// reported in scan order, most significant first.
//
// # Compiling
//
// Compile requires the pattern to have exactly as many positions as the word
// has bits and returns an error otherwise. MustCompile panics instead and is
// meant for package-level decode tables:
//
//	var addImm = pattern.MustCompile[uint32]("1?0100010?iiiiiiiiiiiinnnnnddddd")
//
// CompileDynamic accepts shorter patterns supplied at run time. The positions
// it is given cover the low bits of the word and every higher bit is a
// wildcard. Nothing checks that a short pattern was intended, so a truncated
// pattern silently matches on a subset of the word.
//
// A compiled Pattern is immutable and may be shared between goroutines.
// Cache compiles each distinct text once.
//
// # Decoding
//
// Match tests the literal positions. Extract, AppendFields and Apply read the
// fields without checking Match; Decode does both:
//
//	name, ok := pattern.Decode(p, word, func(f ...uint8) string {
//	    return fmt.Sprintf("a=%d b=%d", f[0], f[1])
//	})
//
// Unmarshal and Marshal map fields to struct members tagged with `bits:"a"`,
// and Encode builds a word from field values.
package pattern
