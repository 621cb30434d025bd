// Package table classifies and decodes words against an ordered list of
// named patterns.
//
// Entries are tried in insertion order and the first matching entry wins, so
// specific encodings go before the general ones they overlap. Overlaps lists
// the pairs of entries that can both match some word.
//
// Tables can be built in code:
//
//	t := table.New[uint8]()
//	_ = t.Add("ld", "01dddsss", map[rune]string{'d': "dst", 's': "src"})
//	d, ok := t.Decode(0x78) // ld dst=7 src=0
//
// or loaded from YAML:
//
//	width: 8
//	entries:
//	  - name: ld
//	    pattern: "01dddsss"
//	    fields: {d: dst, s: src}
//	  - name: rst
//	    pattern: "11nnn111"
//	  - name: short
//	    pattern: "1?0"
//	    dynamic: true
//
// Entries marked dynamic are compiled with pattern.CompileDynamic and may be
// shorter than the word. A Table must not be modified while other goroutines
// decode with it.
package table
