package bitmapfont

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyFont covers ' ' through '?' and uses made-up glyphs:
// '!' is a full column, '"' two half columns, '$' a single pixel in row 1,
// '?' a single pixel in row 3, everything in between is a single column with
// the top pixel set.
func tinyFont() *Font {
	f := &Font{
		Data:    []byte{0, 0, 0},
		Offsets: []uint16{0},
	}
	for r := '!'; r <= '?'; r++ {
		var g []byte
		switch r {
		case '!':
			g = []byte{0xff}
		case '"':
			g = []byte{0x0f, 0x0f}
		case '$':
			g = []byte{0x02}
		case '?':
			g = []byte{0x08}
		default:
			g = []byte{0x01}
		}
		f.Offsets = append(f.Offsets, uint16(len(f.Data)))
		f.Data = append(f.Data, g...)
	}
	return f
}

func TestGlyphLookup(t *testing.T) {
	f := tinyFont()
	require.NoError(t, f.Validate())
	assert.Equal(t, '?', f.Last())

	space := f.Glyph(' ')
	assert.Equal(t, 3, space.Width())
	assert.Equal(t, []byte{0xff}, f.Glyph('!').Data)
	assert.Equal(t, []byte{0x0f, 0x0f}, f.Glyph('"').Data)

	// the last glyph ends at the end of data
	assert.Equal(t, []byte{0x08}, f.Glyph('?').Data)
	assert.Equal(t, f.DataSize(), int(f.Offsets[len(f.Offsets)-1])+f.Glyph('?').Width())

	// out of range codepoints fall back to '?'
	for _, r := range []rune{'\n', '~', 'A', 0x7f, 'ü'} {
		assert.Equal(t, []byte{0x08}, f.Glyph(r).Data, "codepoint %q", r)
	}
}

func TestGlyphAt(t *testing.T) {
	g := Glyph{Data: []byte{0x81, 0x00}}
	assert.True(t, g.At(0, 0))
	assert.True(t, g.At(0, 7))
	assert.False(t, g.At(0, 1))
	assert.False(t, g.At(1, 0))
	assert.False(t, g.At(2, 0))
	assert.False(t, g.At(0, 8))
	assert.False(t, g.At(-1, 0))
}

func TestSpaceBetween(t *testing.T) {
	f := tinyFont()
	assert.True(t, SpaceBetween(f.Glyph('!'), f.Glyph('!')))
	assert.True(t, SpaceBetween(f.Glyph('!'), f.Glyph('?')))
	assert.False(t, SpaceBetween(f.Glyph(' '), f.Glyph('!')))
	assert.False(t, SpaceBetween(f.Glyph('?'), f.Glyph('#')))
	assert.False(t, SpaceBetween(Glyph{}, f.Glyph('!')))

	// diagonal neighbours touch as well
	assert.True(t, SpaceBetween(Glyph{Data: []byte{0x01}}, Glyph{Data: []byte{0x02}}))
	assert.True(t, SpaceBetween(Glyph{Data: []byte{0x02}}, Glyph{Data: []byte{0x01}}))
	assert.True(t, SpaceBetween(Glyph{Data: []byte{0x80}}, Glyph{Data: []byte{0x40}}))
	assert.False(t, SpaceBetween(Glyph{Data: []byte{0x01}}, Glyph{Data: []byte{0x04}}))
	assert.False(t, SpaceBetween(Glyph{Data: []byte{0x80}}, Glyph{Data: []byte{0x01}}))
}

func TestRenderWidth(t *testing.T) {
	f := tinyFont()
	assert.Equal(t, 0, f.RenderWidth(""))
	assert.Equal(t, 1, f.RenderWidth("!"))
	assert.Equal(t, 3, f.RenderWidth("!!"))   // touching columns get a gap
	assert.Equal(t, 2, f.RenderWidth("?#"))   // distant rows do not
	assert.Equal(t, 3, f.RenderWidth("#$"))   // diagonal contact does
	assert.Equal(t, 3, f.RenderWidth("$#"))
	assert.Equal(t, 6, f.RenderWidth("! \"")) // 1 + 3 + 2, no gaps around space
}

func TestDraw(t *testing.T) {
	f := tinyFont()
	assert.Equal(t, []string{
		"X XX X",
		"X XX X",
		"X XX X",
		"X XX X",
		"X    X",
		"X    X",
		"X    X",
		"X    X",
	}, f.Draw("!\"!"))

	banner := f.Banner("?", "// ")
	assert.Equal(t, "//\n//\n//\n// X\n//\n//\n//\n//\n", banner)
}
