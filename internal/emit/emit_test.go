package emit

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maribu/business-card/bitmapfont"
	"github.com/maribu/business-card/internal/bitfont"
	"github.com/maribu/business-card/internal/packer"
)

// testFont packs a full font where every glyph is a column of width
// 1 + c%3 with a single pixel in row c%8.
func testFont(t *testing.T, opts ...packer.Option) *bitmapfont.Font {
	font, err := packer.Assemble(bitfont.RasterizerFunc(func(c rune) (bitfont.Matrix, error) {
		m := bitfont.NewMatrix(1 + int(c)%3)
		for x := range m[0] {
			m[int(c)%8][x] = true
		}
		return m, nil
	}), opts...)
	require.NoError(t, err)
	return font
}

var hexLiteral = regexp.MustCompile(`0x[0-9a-f]+`)

// arrayValues collects the hex literals between the line starting with
// open and the next line starting with close.
func arrayValues(t *testing.T, src, open, close string) []int {
	start := strings.Index(src, open)
	require.GreaterOrEqual(t, start, 0, "missing %q", open)
	body := src[start+len(open):]
	end := strings.Index(body, close)
	require.GreaterOrEqual(t, end, 0, "missing %q", close)
	var values []int
	for _, lit := range hexLiteral.FindAllString(body[:end], -1) {
		v, err := strconv.ParseInt(lit[2:], 16, 32)
		require.NoError(t, err)
		values = append(values, int(v))
	}
	return values
}

func TestC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontgen.emit")
	defer teardown()
	//
	font := testFont(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, font, Config{Format: FormatC, Name: "matrix_light8"}))
	src := buf.String()

	assert.True(t, strings.HasPrefix(src, "/* This file is auto generated using fontgen */\n/*\n"))
	assert.Contains(t, src, "#include \"bitmap_fonts.h\"\n")
	assert.Contains(t, src, "\nconst bitmap_font_t matrix_light8 = {\n")
	assert.Contains(t, src, "\nstatic const uint8_t bitmap_data[] = {\n    0x00, 0x00, 0x00, ")
	assert.Contains(t, src, "\n    .offsets = {\n        0x0000, 0x0003, ")
	assert.Contains(t, src, fmt.Sprintf("\n    .data_size = 0x%04x,\n", font.DataSize()))

	data := arrayValues(t, src, "bitmap_data[] = {\n", "\n};")
	require.Len(t, data, font.DataSize())
	for i, b := range font.Data {
		assert.Equal(t, int(b), data[i], "data byte %d", i)
	}
	offsets := arrayValues(t, src, ".offsets = {\n", "\n    },")
	require.Len(t, offsets, CGlyphs)
	for i, o := range font.Offsets {
		assert.Equal(t, int(o), offsets[i], "offset %d", i)
	}

	for _, line := range strings.Split(src, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line, "trailing blanks")
		assert.LessOrEqual(t, strings.Count(line, "0x"), perLine)
	}
}

func TestCLayout(t *testing.T) {
	var buf bytes.Buffer
	err := C(&buf, "short", testFont(t, packer.WithLast('A')))
	assert.ErrorIs(t, err, ErrLayout)
	assert.Zero(t, buf.Len(), "nothing may be written for a rejected font")

	err = Write(&buf, &bitmapfont.Font{Data: []byte{1, 0, 0}, Offsets: []uint16{0}}, Config{})
	assert.ErrorIs(t, err, ErrLayout)
}

func TestGo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontgen.emit")
	defer teardown()
	//
	font := testFont(t, packer.WithLast('~'))
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, font, Config{Format: FormatGo, Name: "matrix_light8"}))
	src := buf.String()

	assert.True(t, strings.HasPrefix(src, "// Code generated by fontgen. DO NOT EDIT.\n"))
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "font.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	assert.Equal(t, "matrixlight8", file.Name.Name)
	require.Len(t, file.Imports, 1)
	assert.Equal(t, `"github.com/maribu/business-card/bitmapfont"`, file.Imports[0].Path.Value)

	var declared []string
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.VAR {
			for _, spec := range gen.Specs {
				for _, n := range spec.(*ast.ValueSpec).Names {
					declared = append(declared, n.Name)
				}
			}
		}
	}
	assert.Equal(t, []string{"MatrixLight8"}, declared)

	data := arrayValues(t, src, "Data: []byte{", "},")
	require.Len(t, data, font.DataSize())
	offsets := arrayValues(t, src, "Offsets: []uint16{", "},")
	require.Len(t, offsets, len(font.Offsets))
	assert.Equal(t, int(font.Offsets[len(font.Offsets)-1]), offsets[len(offsets)-1])

	buf.Reset()
	require.NoError(t, Write(&buf, font, Config{Format: FormatGo, Name: "x", Package: "fonts"}))
	assert.Contains(t, buf.String(), "\npackage fonts\n")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("C")
	require.NoError(t, err)
	assert.Equal(t, FormatC, f)
	f, err = ParseFormat("go")
	require.NoError(t, err)
	assert.Equal(t, FormatGo, f)
	_, err = ParseFormat("rust")
	assert.Error(t, err)
}

func TestIdentifier(t *testing.T) {
	for in, out := range map[string]string{
		"fonts/MatrixLight8.bdf": "matrixlight8",
		"Matrix-Light 8.txt":     "matrix_light_8",
		"/tmp/8x8.png":           "_8x8",
		"bitmap_font_tiny":       "bitmap_font_tiny",
		"Größe.bdf":              "gr__e",
		"":                       "font",
	} {
		assert.Equal(t, out, Identifier(in), "identifier for %q", in)
	}
}

func TestGoNames(t *testing.T) {
	assert.Equal(t, "BitmapFontMatrixLight8", exportedName("bitmap_font_matrix_light8"))
	assert.Equal(t, "Font8Bit", exportedName("_8_bit"))
	assert.Equal(t, "matrixlight8", packageName("matrix_light8"))
	assert.Equal(t, "font8x8", packageName("_8x8"))
}
