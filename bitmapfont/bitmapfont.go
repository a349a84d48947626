// Package bitmapfont reads the packed 8 pixel high fonts produced by fontgen.
//
// A Font stores the glyphs of the codepoints ' ' through '}' column by column,
// one byte per column with the top row in the least significant bit. Glyphs
// are laid out back to back in Data and Offsets[i] is the start of glyph i.
// The width of a glyph is the distance to the next offset, for the last glyph
// the distance to the end of Data.
//
//	Data    [00 00 00|81|...]
//	Offsets [0       |3 |...]
//	         ' '      '!'
package bitmapfont

import (
	"errors"
	"fmt"
)

const (
	// First is the codepoint of the first glyph, the blank space glyph.
	First = ' '
	// SpaceWidth is the number of blank columns reserved for the space glyph.
	SpaceWidth = 3
	// Fallback is drawn for codepoints the font does not cover.
	Fallback = '?'
)

// Font is a packed bitmap font.
type Font struct {
	Data    []byte
	Offsets []uint16
}

// Glyph is a view into the data of a font.
type Glyph struct {
	Data []byte
}

// Width is the number of columns of the glyph.
func (g Glyph) Width() int {
	return len(g.Data)
}

// At reports whether the pixel at column x and row y (0 is the top) is set.
func (g Glyph) At(x, y int) bool {
	if x < 0 || x >= len(g.Data) || y < 0 || y >= 8 {
		return false
	}
	return g.Data[x]&(1<<uint(y)) != 0
}

// DataSize is the number of bytes in Data. Consumers need it to compute the
// width of the last glyph.
func (f *Font) DataSize() int {
	return len(f.Data)
}

// Last is the highest codepoint the font covers.
func (f *Font) Last() rune {
	return First + rune(len(f.Offsets)) - 1
}

func (f *Font) covers(r rune) bool {
	return r >= First && r <= f.Last()
}

// Glyph returns the glyph for r. Codepoints outside of the font map to '?'.
func (f *Font) Glyph(r rune) Glyph {
	if !f.covers(r) {
		if !f.covers(Fallback) {
			return Glyph{}
		}
		r = Fallback
	}
	idx := int(r - First)
	start := int(f.Offsets[idx])
	end := len(f.Data)
	if idx+1 < len(f.Offsets) {
		end = int(f.Offsets[idx+1])
	}
	return Glyph{Data: f.Data[start:end]}
}

// SpaceBetween reports whether a blank column is needed between left and
// right, which is the case when the touching columns have set pixels in the
// same or in adjacent rows.
func SpaceBetween(left, right Glyph) bool {
	if left.Width() == 0 || right.Width() == 0 {
		return false
	}
	l, r := left.Data[left.Width()-1], right.Data[0]
	return l&(r|r<<1|r>>1) != 0
}

// RenderWidth is the number of columns text occupies when drawn with f.
func (f *Font) RenderWidth(text string) int {
	width := 0
	var left Glyph
	for i, r := range []rune(text) {
		right := f.Glyph(r)
		if i > 0 && SpaceBetween(left, right) {
			width++
		}
		width += right.Width()
		left = right
	}
	return width
}

var (
	errNoGlyphs     = errors.New("font has no glyphs")
	errSpaceGlyph   = errors.New("space glyph must be 3 blank columns at offset 0")
	errOffsetOrder  = errors.New("offsets must not decrease")
	errOffsetBounds = errors.New("offset beyond end of data")
)

// Validate checks the layout invariants of f.
func (f *Font) Validate() error {
	if len(f.Offsets) == 0 {
		return errNoGlyphs
	}
	if f.Offsets[0] != 0 || len(f.Data) < SpaceWidth {
		return errSpaceGlyph
	}
	for _, b := range f.Data[:SpaceWidth] {
		if b != 0 {
			return errSpaceGlyph
		}
	}
	if len(f.Offsets) > 1 && f.Offsets[1] != SpaceWidth {
		return errSpaceGlyph
	}
	for i := 1; i < len(f.Offsets); i++ {
		if f.Offsets[i] < f.Offsets[i-1] {
			return fmt.Errorf("%w: entry %d", errOffsetOrder, i)
		}
	}
	if int(f.Offsets[len(f.Offsets)-1]) > len(f.Data) {
		return errOffsetBounds
	}
	return nil
}
