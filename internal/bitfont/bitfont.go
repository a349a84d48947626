// Package bitfont holds the glyph model shared by the font sources and the
// packer: an 8-row pixel matrix per glyph and the capability that produces it.
package bitfont

import (
	"errors"
	"fmt"
	"strings"
)

// Height is the fixed glyph height in pixels. One packed column is one byte.
const Height = 8

var (
	// ErrMissingGlyph is returned when the font source has no glyph for a codepoint.
	ErrMissingGlyph = errors.New("missing glyph")
	// ErrMalformedMatrix is returned for a matrix that is not 8 rows of equal, non-zero width.
	ErrMalformedMatrix = errors.New("malformed glyph matrix")
	// ErrBlankGlyph is returned for a glyph without a single pixel set.
	ErrBlankGlyph = errors.New("blank glyph")
)

// Matrix is a glyph bitmap indexed as [row][column]. Row 0 is the top row.
type Matrix [][]bool

// NewMatrix allocates an all-off matrix of Height rows and the given width.
func NewMatrix(width int) Matrix {
	m := make(Matrix, Height)
	for y := range m {
		m[y] = make([]bool, width)
	}
	return m
}

// Width is the number of columns of the first row.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks the rasterizer contract: exactly Height rows, all of the
// same width, and at least one column.
func (m Matrix) Validate() error {
	if len(m) != Height {
		return fmt.Errorf("%w: height %d, expected %d", ErrMalformedMatrix, len(m), Height)
	}
	w := len(m[0])
	if w == 0 {
		return fmt.Errorf("%w: zero width", ErrMalformedMatrix)
	}
	for y, row := range m {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has width %d, expected %d", ErrMalformedMatrix, y, len(row), w)
		}
	}
	return nil
}

// String draws the matrix with one line per row, X for pixels that are on.
func (m Matrix) String() string {
	var sb strings.Builder
	for y, row := range m {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				sb.WriteByte('X')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// Rasterizer produces the pixel matrix for a single codepoint.
type Rasterizer interface {
	Rasterize(r rune) (Matrix, error)
}

// RasterizerFunc adapts a plain function to the Rasterizer interface.
type RasterizerFunc func(r rune) (Matrix, error)

func (f RasterizerFunc) Rasterize(r rune) (Matrix, error) {
	return f(r)
}

// GlyphError attaches the failing codepoint to an error.
type GlyphError struct {
	Codepoint rune
	Err       error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("glyph %q (0x%02x): %v", e.Codepoint, e.Codepoint, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
