package packer

import (
	"errors"
	"fmt"
	"math"

	"github.com/maribu/business-card/bitmapfont"
	"github.com/maribu/business-card/internal/bitfont"
)

// The glyphs rasterized by default. The space glyph in front of '!' is not
// rasterized: a blank glyph would trim to nothing, so it is reserved as
// bitmapfont.SpaceWidth zero columns instead.
const (
	FirstCodepoint = '!'
	LastCodepoint  = '}'
)

// ErrTooLarge is returned when the packed data no longer fits 16 bit offsets.
var ErrTooLarge = errors.New("font data exceeds 16 bit offsets")

type options struct {
	blankWidth int
	last       rune
}

// Option configures Assemble.
type Option func(*options)

// WithBlankWidth stores glyphs without any pixel set as n blank columns.
// By default such glyphs fail the run with bitfont.ErrBlankGlyph.
func WithBlankWidth(n int) Option {
	return func(o *options) {
		o.blankWidth = n
	}
}

// WithLast sets the last codepoint to rasterize. The font always starts at
// ' ' so that glyph lookup stays a plain index computation.
func WithLast(r rune) Option {
	return func(o *options) {
		o.last = r
	}
}

// Assemble rasterizes the codepoints '!' through '}' (see WithLast), packs
// and trims every glyph and lays them out behind the reserved space glyph.
// Any glyph failure aborts the whole run: offsets are cumulative, so
// skipping a glyph would shift every glyph after it.
func Assemble(r bitfont.Rasterizer, opts ...Option) (*bitmapfont.Font, error) {
	o := options{last: LastCodepoint}
	for _, opt := range opts {
		opt(&o)
	}
	if o.last < FirstCodepoint || o.last > '~' {
		return nil, fmt.Errorf("last codepoint 0x%02x outside of printable ASCII", o.last)
	}
	if o.blankWidth < 0 {
		return nil, fmt.Errorf("negative blank glyph width %d", o.blankWidth)
	}

	data := make([]byte, bitmapfont.SpaceWidth, 8*int(o.last-FirstCodepoint+1))
	offsets := make([]uint16, 1, int(o.last-FirstCodepoint)+2)
	offset := uint16(len(data))
	for c := FirstCodepoint; c <= o.last; c++ {
		glyph, err := packGlyph(r, c, o.blankWidth)
		if err != nil {
			tracer().Errorf("cannot pack glyph %q: %v", c, err)
			return nil, err
		}
		var at uint16
		if data, offset, at, err = appendGlyph(data, offset, glyph); err != nil {
			return nil, &bitfont.GlyphError{Codepoint: c, Err: err}
		}
		offsets = append(offsets, at)
		tracer().Debugf("glyph %q at offset %d, width %d", c, at, len(glyph))
	}
	tracer().Infof("packed %d glyphs into %d bytes", len(offsets), len(data))
	return &bitmapfont.Font{Data: data, Offsets: offsets}, nil
}

// appendGlyph is one step of the layout fold: it appends glyph to data at
// the running offset and returns the new data, the next offset and the
// offset recorded for the glyph.
func appendGlyph(data []byte, offset uint16, glyph []byte) ([]byte, uint16, uint16, error) {
	next := int(offset) + len(glyph)
	if next > math.MaxUint16 {
		return data, offset, offset, ErrTooLarge
	}
	return append(data, glyph...), uint16(next), offset, nil
}

func packGlyph(r bitfont.Rasterizer, c rune, blankWidth int) ([]byte, error) {
	m, err := r.Rasterize(c)
	if err != nil {
		return nil, glyphError(c, err)
	}
	if err = m.Validate(); err != nil {
		return nil, glyphError(c, err)
	}
	glyph := Trim(Pack(m))
	if len(glyph) == 0 {
		if blankWidth == 0 {
			return nil, glyphError(c, bitfont.ErrBlankGlyph)
		}
		glyph = make([]byte, blankWidth)
	}
	return glyph, nil
}

// glyphError makes sure err names the codepoint, without wrapping twice.
func glyphError(c rune, err error) error {
	var gerr *bitfont.GlyphError
	if errors.As(err, &gerr) {
		return err
	}
	return &bitfont.GlyphError{Codepoint: c, Err: err}
}
