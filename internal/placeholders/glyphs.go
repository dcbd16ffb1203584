package placeholders

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// First and last code rendered into the placeholder font.
const (
	FirstGlyph = 33
	LastGlyph  = 126
)

// RenderGlyph draws one character of basicfont's 7x13 face onto a
// transparent image as wide as its advance.
func RenderGlyph(r rune) *image.RGBA {
	face := basicfont.Face7x13
	w := font.MeasureString(face, string(r)).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, face.Height))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ColorPalette.Glyph),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(r))
	return img
}

// GlyphName is the bundle entry name of a glyph.
func GlyphName(code int) string {
	return fmt.Sprintf("%03d.png", code)
}

// fontLinks map codes the face lacks onto glyphs that look close enough.
var fontLinks = []struct {
	from, to int
}{
	{0xC0, 'A'}, {0xC1, 'A'}, {0xC2, 'A'}, {0xC4, 'A'},
	{0xC8, 'E'}, {0xC9, 'E'}, {0xCA, 'E'},
	{0xE0, 'a'}, {0xE1, 'a'}, {0xE2, 'a'}, {0xE4, 'a'},
	{0xE8, 'e'}, {0xE9, 'e'}, {0xEA, 'e'},
	{0x03A9, 'O'}, // Ω
}

// FontDescriptor returns the font.ini of the placeholder font.
func FontDescriptor() string {
	var b strings.Builder
	b.WriteString("; quickgfx placeholder font, basicfont 7x13\n")
	for _, l := range fontLinks {
		fmt.Fprintf(&b, "\n[%04X]\nLINK=%04X\n", l.from, l.to)
	}
	// The bar sits on the baseline of the neighbouring text
	b.WriteString("\n[007C]\nHOTY=1\n")
	return b.String()
}
