// Package face rasterizes glyphs of any golang.org/x/image/font.Face into
// 8 pixel high matrices.
package face

import (
	"fmt"
	"image"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/maribu/business-card/internal/bitfont"
)

// tracer traces with key 'fontgen.face'.
func tracer() tracing.Trace {
	return tracing.Select("fontgen.face")
}

// Threshold is the minimum alpha value of a pixel to count as set.
const Threshold = 0x80

// Rasterizer draws single glyphs of a face onto an 8 pixel high cell. The
// baseline sits at the ascent of the face, measured from the top row.
type Rasterizer struct {
	face   font.Face
	ascent int
}

var _ bitfont.Rasterizer = &Rasterizer{}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithAscent places the baseline below the given number of rows, instead of
// taking the ascent from the face metrics.
func WithAscent(ascent int) Option {
	return func(r *Rasterizer) {
		r.ascent = ascent
	}
}

// New creates a rasterizer for f. The face must be exactly bitfont.Height
// pixels high, unless the baseline is set with WithAscent.
func New(f font.Face, opts ...Option) (*Rasterizer, error) {
	r := &Rasterizer{face: f, ascent: -1}
	for _, opt := range opts {
		opt(r)
	}
	if r.ascent < 0 {
		m := f.Metrics()
		ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
		if ascent+descent != bitfont.Height {
			return nil, fmt.Errorf("%w: face is %d pixels high (ascent %d, descent %d)",
				bitfont.ErrMalformedMatrix, ascent+descent, ascent, descent)
		}
		r.ascent = ascent
	}
	if r.ascent > bitfont.Height {
		return nil, fmt.Errorf("ascent %d exceeds glyph height", r.ascent)
	}
	tracer().Debugf("rasterizing face with baseline at row %d", r.ascent)
	return r, nil
}

// Rasterize draws the glyph for c. The cell covers the advance width of the
// glyph and any ink outside of it; pixels above or below the 8 rows are
// clipped.
func (r *Rasterizer) Rasterize(c rune) (bitfont.Matrix, error) {
	dot := fixed.P(0, r.ascent)
	dr, mask, maskp, advance, ok := r.face.Glyph(dot, c)
	if !ok {
		return nil, bitfont.ErrMissingGlyph
	}
	cell := image.Rect(0, 0, advance.Ceil(), bitfont.Height)
	if !dr.Empty() {
		cell.Min.X = min(cell.Min.X, dr.Min.X)
		cell.Max.X = max(cell.Max.X, dr.Max.X)
	}
	if cell.Dx() == 0 {
		return nil, fmt.Errorf("%w: glyph has neither advance nor ink", bitfont.ErrMalformedMatrix)
	}

	dst := image.NewAlpha(cell)
	if mask != nil {
		draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)
	}

	m := bitfont.NewMatrix(cell.Dx())
	for y := 0; y < bitfont.Height; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			m[y][x-cell.Min.X] = dst.AlphaAt(x, y).A >= Threshold
		}
	}
	return m, nil
}
