package bitmapfont

import "strings"

// Draw renders text into 8 lines of 'X' and ' ', one line per pixel row.
// Glyphs are separated by a blank column wherever SpaceBetween asks for one.
func (f *Font) Draw(text string) []string {
	var rows [8]strings.Builder
	var left Glyph
	for i, r := range []rune(text) {
		right := f.Glyph(r)
		if i > 0 && SpaceBetween(left, right) {
			for y := range rows {
				rows[y].WriteByte(' ')
			}
		}
		for x := 0; x < right.Width(); x++ {
			for y := range rows {
				if right.At(x, y) {
					rows[y].WriteByte('X')
				} else {
					rows[y].WriteByte(' ')
				}
			}
		}
		left = right
	}
	lines := make([]string, len(rows))
	for y := range rows {
		lines[y] = strings.TrimRight(rows[y].String(), " ")
	}
	return lines
}

// Banner draws text like Draw and puts prefix in front of every line, which
// makes it usable as a comment block in generated source.
func (f *Font) Banner(text, prefix string) string {
	var sb strings.Builder
	for _, line := range f.Draw(text) {
		sb.WriteString(strings.TrimRight(prefix+line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
