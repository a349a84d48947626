// Package bdf loads glyphs from X11 Glyph Bitmap Distribution Format fonts.
package bdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	gobdf "github.com/zachomedia/go-bdf"

	"github.com/maribu/business-card/internal/bitfont"
	"github.com/maribu/business-card/internal/bitfont/face"
)

// tracer traces with key 'fontgen.bdf'.
func tracer() tracing.Trace {
	return tracing.Select("fontgen.bdf")
}

// Font is a parsed BDF font, ready to be rasterized glyph by glyph.
type Font struct {
	*face.Rasterizer
	// Path is the file the font was loaded from, if any.
	Path string
	// DefaultChar is the glyph the font suggests for missing codepoints.
	// It is never substituted, but named when a glyph is missing.
	DefaultChar rune
	chars       map[rune]*gobdf.Character
}

var _ bitfont.Rasterizer = &Font{}

// Rasterize draws the glyph for c. Codepoints without a character in the
// font are reported as missing, even though the face of the font would
// draw DefaultChar for them.
func (f *Font) Rasterize(c rune) (bitfont.Matrix, error) {
	if _, ok := f.chars[c]; !ok {
		return nil, fmt.Errorf("%w: font has no character %d (would fall back to %q)",
			bitfont.ErrMissingGlyph, c, f.DefaultChar)
	}
	return f.Rasterizer.Rasterize(c)
}

// Decode parses a BDF font. The font must be 8 pixels high
// (FONT_ASCENT + FONT_DESCENT), or the baseline must be given with
// face.WithAscent.
func Decode(r io.Reader, opts ...face.Option) (*Font, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	bf, err := gobdf.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bdf: %w", err)
	}
	rast, err := face.New(bf.NewFace(), opts...)
	if err != nil {
		return nil, fmt.Errorf("bdf: %w", err)
	}
	return &Font{
		Rasterizer:  rast,
		DefaultChar: bf.DefaultChar,
		chars:       bf.CharMap,
	}, nil
}

// Open reads the BDF font at path.
func Open(path string, opts ...face.Option) (*Font, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	font, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	font.Path = path
	tracer().Infof("loaded BDF font %s", path)
	return font, nil
}

// Resolve opens name as a file or, if there is no such file, looks it up in
// the user and system font directories. A name without extension is looked
// up as name.bdf.
func Resolve(name string, opts ...face.Option) (*Font, error) {
	if _, err := os.Stat(name); err == nil {
		return Open(name, opts...)
	}
	lookup := name
	if filepath.Ext(lookup) == "" {
		lookup += ".bdf"
	}
	path, err := findfont.Find(lookup)
	if err != nil {
		return nil, fmt.Errorf("bdf: cannot find font %q: %w", name, err)
	}
	tracer().Debugf("resolved font %q to %s", name, path)
	return Open(path, opts...)
}
