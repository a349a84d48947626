// fontgen is a commandline tool for converting 8 pixel high bitmap fonts into
// the packed format of the bitmap_fonts firmware module. Fonts can be read
// from BDF files, from text glyph sheets or from an image of the font:
//
//	./fontgen -bdf MatrixLight8.bdf -o matrix_light8.c
//	./fontgen -txt myfont.txt -format go -o myfont.go
//	./fontgen -img myfont.png -cw 6 -o myfont.c
//
// The glyphs '!' through '}' are required, the space glyph is added
// automatically. Without -o a text glyph sheet of the packed font is printed
// to stdout, which can be edited and fed back in with -txt.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/maribu/business-card/bitmapfont"
	"github.com/maribu/business-card/internal/bitfont"
	"github.com/maribu/business-card/internal/bitfont/bdf"
	"github.com/maribu/business-card/internal/bitfont/face"
	pimg "github.com/maribu/business-card/internal/bitfont/image"
	ptext "github.com/maribu/business-card/internal/bitfont/text"
	"github.com/maribu/business-card/internal/emit"
	"github.com/maribu/business-card/internal/packer"
)

var (
	bdfName = flag.String("bdf", "", "BDF font file or installed font name to convert")
	ascent  = flag.Int("ascent", -1, "baseline row for BDF fonts that are not 8 pixels high")

	imageName = flag.String("img", "", "image file to extract pixel font from")
	startY    = flag.Int("y", 0, "starting Y position")
	height    = flag.Int("h", 0, "chop height")
	startX    = flag.Int("x", 0, "starting X position")
	width     = flag.Int("w", 0, "chop width")
	cellWidth = flag.Int("cw", 0, "fixed glyph cell width (default: glyphs are separated by blank columns)")
	alphabet  = flag.String("a", defaultAlphabet(), "alphabet to extract")

	textName = flag.String("txt", "", "text file to extract pixel font from")

	outName    = flag.String("o", "", "file to create (default: print the glyph sheet to stdout)")
	formatName = flag.String("format", "c", "output format, c or go")
	identName  = flag.String("name", "", "identifier of the font (default: derived from the input file name)")
	pkgName    = flag.String("pkg", "", "package of generated Go code (default: derived from the identifier)")
	blankWidth = flag.Int("blank", 0, "store blank glyphs as this many empty columns instead of failing")
	traceLevel = flag.String("trace", "Info", "trace level [Debug|Info|Error]")
)

// traceKeys lists the tracers of all packages taking part in a conversion.
var traceKeys = []string{
	"fontgen", "fontgen.bdf", "fontgen.face", "fontgen.packer", "fontgen.emit",
}

// tracer traces with key 'fontgen'.
func tracer() tracing.Trace {
	return tracing.Select("fontgen")
}

func defaultAlphabet() string {
	var sb strings.Builder
	for c := packer.FirstCodepoint; c <= packer.LastCodepoint; c++ {
		sb.WriteRune(c)
	}
	return sb.String()
}

func setTraceLevel(name string) {
	level := tracing.LevelInfo
	switch strings.ToLower(name) {
	case "debug":
		level = tracing.LevelDebug
	case "error":
		level = tracing.LevelError
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// openSource selects the glyph source given on the command line. It returns
// the rasterizer and the file name the font identifier is derived from.
func openSource() (bitfont.Rasterizer, string, error) {
	switch {
	case *bdfName != "":
		var opts []face.Option
		if *ascent >= 0 {
			opts = append(opts, face.WithAscent(*ascent))
		}
		font, err := bdf.Resolve(*bdfName, opts...)
		if err != nil {
			return nil, "", err
		}
		return font, font.Path, nil
	case *imageName != "":
		f, err := os.Open(*imageName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		font, err := pimg.Decode(f, *alphabet, &pimg.Options{
			Offset:    image.Point{X: *startX, Y: *startY},
			Size:      image.Point{X: *width, Y: *height},
			CellWidth: *cellWidth,
		})
		if err != nil {
			return nil, "", fmt.Errorf("error parsing file: %w", err)
		}
		return font, *imageName, nil
	case *textName != "":
		f, err := os.Open(*textName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		font, err := ptext.Decode(f)
		if err != nil {
			return nil, "", fmt.Errorf("error parsing file: %w", err)
		}
		return font, *textName, nil
	}
	return nil, "", nil
}

// writeFont renders font into the file at path. Nothing is written if
// rendering fails.
func writeFont(path string, font *bitmapfont.Font, cfg emit.Config) error {
	var buf bytes.Buffer
	if err := emit.Write(&buf, font, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func bitsToString(g bitmapfont.Glyph, y int) string {
	s := ""
	for x := 0; x < g.Width(); x++ {
		if g.At(x, y) {
			s += "X"
		} else {
			s += " "
		}
	}
	return s
}

// dumpFont prints the packed glyphs as a text glyph sheet.
func dumpFont(w io.Writer, font *bitmapfont.Font) {
	for ch := bitmapfont.First; ch <= font.Last(); ch++ {
		g := font.Glyph(ch)
		for y := 0; y < bitfont.Height; y++ {
			fmt.Fprintf(w, "%c  [%s]\n", ch, bitsToString(g, y))
		}
	}
}

// convert packs the glyphs of rast and writes them to the -o file, or dumps
// them to stdout. Nothing is written if any glyph fails to convert.
func convert(rast bitfont.Rasterizer, filename string, format emit.Format, stdout io.Writer) error {
	font, err := packer.Assemble(rast, packer.WithBlankWidth(*blankWidth))
	if err != nil {
		return fmt.Errorf("error converting font: %w", err)
	}

	if *outName == "" {
		// dump a text representation of the font to stdout
		dumpFont(stdout, font)
		return nil
	}

	name := *identName
	if name == "" {
		name = emit.Identifier(filename)
	}
	cfg := emit.Config{Format: format, Name: name, Package: *pkgName}
	if err := writeFont(*outName, font, cfg); err != nil {
		return fmt.Errorf("error writing font: %w", err)
	}
	tracer().Infof("%s: %d glyphs, %d bytes", name, len(font.Offsets), font.DataSize())
	fmt.Fprintln(os.Stderr, "Created file:", *outName)
	return nil
}

func main() {
	flag.Parse()
	setTraceLevel(*traceLevel)

	format, err := emit.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	rast, filename, err := openSource()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if rast == nil {
		fmt.Fprintln(os.Stderr, "-bdf, -img or -txt should be provided")
		flag.Usage()
		os.Exit(2)
	}

	if err := convert(rast, filename, format, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
