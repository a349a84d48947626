package emit

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier derives a C identifier from the file name of a font: the base
// name without extension, lower case, with everything but letters, digits
// and underscores replaced by '_'.
//
//	fonts/MatrixLight8.bdf  ->  matrixlight8
//	Matrix-Light 8.txt      ->  matrix_light_8
func Identifier(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = cases.Lower(language.Und).String(base)
	ident := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return '_'
	}, base)
	if ident == "" {
		return "font"
	}
	if ident[0] >= '0' && ident[0] <= '9' {
		ident = "_" + ident
	}
	return ident
}

// exportedName turns a C style identifier into an exported Go name,
// e.g. bitmap_font_matrix_light8 into BitmapFontMatrixLight8.
func exportedName(ident string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, part := range strings.Split(ident, "_") {
		sb.WriteString(title.String(part))
	}
	name := sb.String()
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		name = "Font" + name
	}
	return name
}

// packageName turns an identifier into a Go package name: lower case
// letters and digits only.
func packageName(ident string) string {
	name := strings.ReplaceAll(ident, "_", "")
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "font" + name
	}
	return name
}
