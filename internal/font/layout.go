package font

import (
	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/render"
)

// Canvas is what text is drawn on. *gfx.Context satisfies it: positions are
// virtual coordinates and the current color, alpha and blend mode apply.
// Panic is the hook fatal layout errors are reported to.
type Canvas interface {
	DrawImage(img render.Image, x, y int)
	SetColor(r, g, b uint8)
	Color() (r, g, b uint8)
	Panic(msg string)
}

// Align positions text relative to the point it is drawn at.
type Align int

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
)

// Horizontal and vertical names for the alignments.
const (
	AlignLeft   = AlignStart
	AlignTop    = AlignStart
	AlignRight  = AlignEnd
	AlignBottom = AlignEnd
)

// run makes one pass over text starting at (x, y) and returns the size of
// the area it covered. Glyphs are drawn only when c is not nil. A silent
// pass stops on a fatal error without reporting it, so a call made of
// several passes reports once.
//
// Bytes 0x01 to 0x07 are ignored and a zero byte ends the text. A "|" is
// followed by two bytes forming a 16 bit code, high byte first.
func (f *Font) run(c Canvas, text string, x, y int, silent bool) (w, h int) {
	if !silent {
		f.lastErr = ""
	}
	cx, cy := x, y
	maxX := x
	lineH := 0

	glyph := func(code uint16) {
		g := f.Resolve(code)
		if c != nil && g.Image != nil {
			c.DrawImage(g.Image, cx-g.HotX, cy-g.HotY)
		}
		cx += g.W
		if g.H > lineH {
			lineH = g.H
		}
	}

loop:
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == 0:
			break loop
		case ch >= 1 && ch <= 7:
			continue
		case ch == '\t':
			if f.opts.TabWidth > 0 {
				cx++
				for (cx-x)%f.opts.TabWidth != 0 {
					cx++
				}
			}
		case ch == '\n':
			cy += lineH
			lineH = 0
			cx = x
		case ch == '\r':
			cx = x
		case ch == '|':
			if i+2 >= len(text) {
				msg := "Malformed two-byte glyph escape at the end of the text"
				if silent {
					if f.opts.SkipMalformedEscapes {
						continue
					}
					break loop
				}
				if !f.opts.SkipMalformedEscapes {
					f.panic(c, msg)
					break loop
				}
				logging.Logger().Warn("skipping malformed glyph escape", "offset", i)
				f.lastErr = msg
				continue
			}
			code := uint16(text[i+1])<<8 | uint16(text[i+2])
			i += 2
			glyph(code)
		case ch == ' ':
			cx += f.SpaceAdvance()
		default:
			glyph(uint16(ch))
		}
		if cx > maxX {
			maxX = cx
		}
	}
	return maxX - x, cy + lineH - y
}

// Width returns the width text would cover when drawn.
func (f *Font) Width(text string) int {
	w, _ := f.run(nil, text, 0, 0, false)
	return w
}

// Height returns the height text would cover when drawn.
func (f *Font) Height(text string) int {
	_, h := f.run(nil, text, 0, 0, false)
	return h
}

// Measure returns the width and height text would cover when drawn.
func (f *Font) Measure(text string) (w, h int) {
	return f.run(nil, text, 0, 0, false)
}

// Text draws text with its top-left corner on (x, y).
func (f *Font) Text(c Canvas, text string, x, y int) {
	f.run(c, text, x, y, false)
}

// origin returns the top-left corner of text aligned on (x, y).
func (f *Font) origin(text string, x, y int, ax, ay Align) (int, int) {
	if ax == AlignStart && ay == AlignStart {
		return x, y
	}
	w, h := f.run(nil, text, 0, 0, true)
	switch ax {
	case AlignEnd:
		x -= w
	case AlignCenter:
		x -= w / 2
	}
	switch ay {
	case AlignEnd:
		y -= h
	case AlignCenter:
		y -= h / 2
	}
	return x, y
}

// DrawAligned draws text aligned on (x, y).
func (f *Font) DrawAligned(c Canvas, text string, x, y int, ax, ay Align) {
	x, y = f.origin(text, x, y, ax, ay)
	f.run(c, text, x, y, false)
}

// DrawOutline draws text aligned on (x, y) with a one pixel black outline:
// the text is drawn in black at the eight neighbouring offsets, then in the
// current color on top.
func (f *Font) DrawOutline(c Canvas, text string, x, y int, ax, ay Align) {
	x, y = f.origin(text, x, y, ax, ay)

	r, g, b := c.Color()
	c.SetColor(0, 0, 0)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			f.run(c, text, x+dx, y+dy, true)
		}
	}
	c.SetColor(r, g, b)
	f.run(c, text, x, y, false)
}
