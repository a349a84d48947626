// Package text reads glyph sheets written as plain text, one pixel row per
// line. Every line starts with the character the row belongs to, then two
// spaces and the row in brackets, X for a set pixel:
//
//	!  [ X ]
//	!  [ X ]
//	...
//
// Consecutive lines of the same character form one glyph.
package text

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/maribu/business-card/internal/bitfont"
)

var errSyntax = errors.New("text sheet: malformed row")

// Font holds the glyphs of a text sheet.
type Font struct {
	Width, Height int
	Glyphs        map[rune]bitfont.Matrix
}

var _ bitfont.Rasterizer = &Font{}

// Rasterize returns the glyph for r as it appeared on the sheet.
func (f *Font) Rasterize(r rune) (bitfont.Matrix, error) {
	m, ok := f.Glyphs[r]
	if !ok {
		return nil, bitfont.ErrMissingGlyph
	}
	return m, nil
}

// Transforms a string of spaces and Xs into a row of pixels
func textRepresentationToRow(t string) []bool {
	row := make([]bool, len(t))
	for i := 0; i < len(t); i++ {
		row[i] = t[i] == 'X'
	}
	return row
}

func Decode(r io.Reader) (*Font, error) {
	maxHeight, maxWidth := 0, 0
	lastCh := rune(0)

	glyphs := make(map[rune]bitfont.Matrix)
	flush := func(ch rune, m bitfont.Matrix) {
		// rows of one glyph may differ in length, pad them to the widest
		w := 0
		for _, row := range m {
			w = max(w, len(row))
		}
		for y, row := range m {
			if len(row) < w {
				m[y] = append(row, make([]bool, w-len(row))...)
			}
		}
		maxHeight = max(maxHeight, len(m))
		glyphs[ch] = m
	}

	scanner := bufio.NewScanner(r)
	var m bitfont.Matrix
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		c, pixoffs := utf8.DecodeRuneInString(line)
		pixoffs += 3
		if len(line) < pixoffs || line[pixoffs-1] != '[' {
			return nil, fmt.Errorf("%w at line %d: %q", errSyntax, lineno, line)
		}
		ww := strings.IndexRune(line[pixoffs:], ']')
		if ww < 0 {
			return nil, fmt.Errorf("%w at line %d: missing ']'", errSyntax, lineno)
		}

		if c != lastCh {
			if lastCh != 0 {
				flush(lastCh, m)
				m = nil
			}
			if _, dup := glyphs[c]; dup {
				return nil, fmt.Errorf("%w at line %d: glyph %q defined twice", errSyntax, lineno, c)
			}
		}

		maxWidth = max(maxWidth, ww)
		m = append(m, textRepresentationToRow(line[pixoffs:pixoffs+ww]))
		lastCh = c
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if lastCh != 0 {
		// this may be left over from the last character
		flush(lastCh, m)
	}

	return &Font{
		Width:  maxWidth,
		Height: maxHeight,
		Glyphs: glyphs,
	}, nil
}
