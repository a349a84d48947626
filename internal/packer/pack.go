/*
Package packer converts glyph matrices into the packed column layout of
package bitmapfont.

Every column of a glyph becomes one byte, row 0 in the least significant bit:

	row 0   . X .        column 0 = 0x00
	row 1   . . .        column 1 = 0x81
	 ...                 column 2 = 0x00
	row 7   . X .

Blank columns at either edge carry no information (spacing is decided at
render time) and are trimmed before the glyph is stored.
*/
package packer

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/maribu/business-card/internal/bitfont"
)

// tracer traces with key 'fontgen.packer'.
func tracer() tracing.Trace {
	return tracing.Select("fontgen.packer")
}

// Pack converts m into one byte per column, left to right. Bit k of a column
// byte is set iff row k of the matrix is on in that column.
func Pack(m bitfont.Matrix) []byte {
	packed := make([]byte, m.Width())
	for idx := range packed {
		var col byte
		for k := 0; k < bitfont.Height && k < len(m); k++ {
			if m[k][idx] {
				col |= 1 << uint(k)
			}
		}
		packed[idx] = col
	}
	return packed
}

// Trim strips all-zero columns from both ends of packed. A glyph without any
// pixel set trims to an empty slice.
func Trim(packed []byte) []byte {
	for len(packed) > 0 && packed[0] == 0 {
		packed = packed[1:]
	}
	for len(packed) > 0 && packed[len(packed)-1] == 0 {
		packed = packed[:len(packed)-1]
	}
	return packed
}
