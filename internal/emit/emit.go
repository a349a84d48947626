// Package emit renders packed fonts as source code: C for the bitmap_fonts
// module of the firmware, Go for package bitmapfont.
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/maribu/business-card/bitmapfont"
)

// tracer traces with key 'fontgen.emit'.
func tracer() tracing.Trace {
	return tracing.Select("fontgen.emit")
}

// Format selects the output language.
type Format string

const (
	FormatC  Format = "c"
	FormatGo Format = "go"
)

// ParseFormat checks a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatC, FormatGo:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatC, FormatGo)
}

// CGlyphs is the number of offsets in the C bitmap_font_t struct: the space
// glyph and '!' through '}'.
const CGlyphs = 94

// ErrLayout is returned when a font does not fit the target declaration.
var ErrLayout = errors.New("font layout does not match output format")

// perLine is the number of array elements per line of output.
const perLine = 8

// Config describes the declaration to generate.
type Config struct {
	Format Format
	// Name is the identifier of the font, see Identifier.
	Name string
	// Package is the Go package of the generated file. It defaults to a
	// package name derived from Name.
	Package string
}

// Write renders font in the configured format.
func Write(w io.Writer, font *bitmapfont.Font, cfg Config) error {
	if err := font.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrLayout, err)
	}
	if cfg.Name == "" {
		cfg.Name = "font"
	}
	tracer().Debugf("writing %s font %s, %d bytes", cfg.Format, cfg.Name, font.DataSize())
	switch cfg.Format {
	case FormatC, "":
		return C(w, cfg.Name, font)
	case FormatGo:
		pkg := cfg.Package
		if pkg == "" {
			pkg = packageName(cfg.Name)
		}
		return Go(w, pkg, cfg.Name, font)
	}
	return fmt.Errorf("unknown output format %q", cfg.Format)
}

// C writes font as a bitmap_font_t definition named name, together with its
// static data array.
func C(w io.Writer, name string, font *bitmapfont.Font) error {
	if len(font.Offsets) != CGlyphs {
		return fmt.Errorf("%w: C fonts have %d glyphs, font has %d", ErrLayout, CGlyphs, len(font.Offsets))
	}
	if font.DataSize() > 0xffff {
		return fmt.Errorf("%w: data size %d exceeds uint16_t", ErrLayout, font.DataSize())
	}
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "/* This file is auto generated using fontgen */")
	fmt.Fprintln(&buf, "/*")
	buf.WriteString(font.Banner(name, " * "))
	fmt.Fprintln(&buf, " */")
	fmt.Fprintln(&buf, "#include <stdint.h>")
	fmt.Fprintln(&buf, `#include "bitmap_fonts.h"`)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "static const uint8_t bitmap_data[] = {")
	writeRows(&buf, "    ", len(font.Data), func(i int) string {
		return fmt.Sprintf("0x%02x,", font.Data[i])
	})
	fmt.Fprintln(&buf, "};")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "const bitmap_font_t %s = {\n", name)
	fmt.Fprintf(&buf, "    .data_size = 0x%04x,\n", font.DataSize())
	fmt.Fprintln(&buf, "    .data = bitmap_data,")
	fmt.Fprintln(&buf, "    .offsets = {")
	writeRows(&buf, "        ", len(font.Offsets), func(i int) string {
		return fmt.Sprintf("0x%04x,", font.Offsets[i])
	})
	fmt.Fprintln(&buf, "    },")
	fmt.Fprintln(&buf, "};")
	_, err := w.Write(buf.Bytes())
	return err
}

// Go writes font as a *bitmapfont.Font variable in package pkg. The variable
// is the exported form of name.
func Go(w io.Writer, pkg, name string, font *bitmapfont.Font) error {
	template := `// Code generated by fontgen. DO NOT EDIT.

%s
package %s

import "github.com/maribu/business-card/bitmapfont"

// %s is the %s bitmap font.
var %s = &bitmapfont.Font{
	Data: []byte{
%s	},
	Offsets: []uint16{
%s	},
}
`
	var data, offsets bytes.Buffer
	writeRows(&data, "", len(font.Data), func(i int) string {
		return fmt.Sprintf("0x%02x,", font.Data[i])
	})
	writeRows(&offsets, "", len(font.Offsets), func(i int) string {
		return fmt.Sprintf("0x%04x,", font.Offsets[i])
	})
	goName := exportedName(name)
	code := fmt.Sprintf(template, font.Banner(name, "// "), pkg,
		goName, name, goName, data.String(), offsets.String())

	// create the code from the template and go fmt it
	bcode, err := format.Source([]byte(code))
	if err != nil {
		return fmt.Errorf("generated Go code does not parse: %w", err)
	}
	_, err = w.Write(bcode)
	return err
}

// writeRows writes n array elements, perLine of them per line.
func writeRows(buf *bytes.Buffer, indent string, n int, elem func(int) string) {
	for i := 0; i < n; i += perLine {
		buf.WriteString(indent)
		for j := i; j < n && j < i+perLine; j++ {
			if j > i {
				buf.WriteByte(' ')
			}
			buf.WriteString(elem(j))
		}
		buf.WriteByte('\n')
	}
}
