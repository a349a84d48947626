// Package image extracts glyphs from a picture of a font: a single strip of
// glyphs in the order of an alphabet, single-color pixels on a solid
// background.
package image

import (
	"image"
	"image/color"
	"io"
	"unicode/utf8"

	// formats understood by Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/maribu/business-card/internal/bitfont"
)

type Options struct {
	// Offset and Size select a window of the image. A zero size extends
	// the window to the edge of the image.
	Offset image.Point
	Size   image.Point
	// CellWidth cuts the strip into cells of this many columns. By default
	// glyphs are separated by blank columns, which does not work for glyphs
	// with a blank column inside, like '"'.
	CellWidth int
}

// Font holds the glyphs found in an image.
type Font struct {
	Width, Height int
	Glyphs        map[rune]bitfont.Matrix
}

var _ bitfont.Rasterizer = &Font{}

// Rasterize returns the glyph for r as it was cut from the image.
func (f *Font) Rasterize(r rune) (bitfont.Matrix, error) {
	m, ok := f.Glyphs[r]
	if !ok {
		return nil, bitfont.ErrMissingGlyph
	}
	return m, nil
}

func Decode(r io.Reader, alphabet string, options *Options) (*Font, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	var opts Options
	if options != nil {
		opts = *options
	}

	bounds := img.Bounds()
	bounds.Min = bounds.Min.Add(opts.Offset)
	if opts.Size.X != 0 {
		bounds.Max.X = bounds.Min.X + opts.Size.X
	}
	if opts.Size.Y != 0 {
		bounds.Max.Y = bounds.Min.Y + opts.Size.Y
	}
	bounds = bounds.Intersect(img.Bounds())

	isInk := inkClassifier(img)
	column := func(x int) (col []bool, empty bool) {
		col = make([]bool, bounds.Dy())
		empty = true
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			if isInk(img.At(x, y)) {
				col[y-bounds.Min.Y] = true
				empty = false
			}
		}
		return col, empty
	}

	// scan across the image in the crop region, collecting columns as we go.
	// a blank column ends the current glyph, unless cells have a fixed width.
	var cells [][][]bool
	var cur [][]bool
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		col, empty := column(x)
		if opts.CellWidth > 0 {
			cur = append(cur, col)
			if len(cur) == opts.CellWidth {
				cells = append(cells, cur)
				cur = nil
			}
			continue
		}
		if empty {
			if len(cur) != 0 {
				cells = append(cells, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, col)
	}
	// the strip may end without a blank column after the last glyph
	if len(cur) != 0 {
		cells = append(cells, cur)
	}

	glyphs := make(map[rune]bitfont.Matrix)
	maxWidth := 0
	curAlpha := alphabet
	for _, cell := range cells {
		if len(curAlpha) == 0 {
			break
		}
		r, nbytes := utf8.DecodeRuneInString(curAlpha)
		curAlpha = curAlpha[nbytes:]
		glyphs[r] = transpose(cell, bounds.Dy())
		maxWidth = max(maxWidth, len(cell))
	}

	return &Font{
		Width:  maxWidth,
		Height: bounds.Dy(),
		Glyphs: glyphs,
	}, nil
}

// inkClassifier tells font pixels from background pixels by how often their
// grey level occurs. The background is assumed to be fairly solid, so its
// colors occur much more often than font colors.
func inkClassifier(img image.Image) func(color.Color) bool {
	// generate a greyscale histogram of the image
	b := img.Bounds()
	pxc := 0
	clrs := make(map[uint8]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gc := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			clrs[gc.Y]++
			pxc++
		}
	}

	// find a threshold pixel count for what colors to ignore as background
	pxt := pxc
	pxd := 0
	for pxd < (pxc/2) && pxt > 0 {
		pxt /= 2
		pxd = 0
		for _, n := range clrs {
			if n > pxt {
				pxd += n
			}
		}
	}

	return func(c color.Color) bool {
		gc := color.GrayModel.Convert(c).(color.Gray)
		return clrs[gc.Y] <= pxt
	}
}

func transpose(columns [][]bool, height int) bitfont.Matrix {
	m := make(bitfont.Matrix, height)
	for y := range m {
		m[y] = make([]bool, len(columns))
		for x, col := range columns {
			m[y][x] = col[y]
		}
	}
	return m
}
