package font

import (
	"fmt"

	"chosenoffset.com/quickgfx/internal/render"
)

// Glyph is the bitmap and metrics of one character code. A glyph without an
// image is a placeholder: it takes part in layout but draws nothing.
type Glyph struct {
	Code  uint16
	Image render.Image

	HotX, HotY int

	// Advance and line metrics. They default to the bitmap size.
	W, H int

	// owners: the code that loaded the glyph plus every code linked to it
	refs int
}

// Refs returns the number of codes sharing the glyph.
func (g *Glyph) Refs() int {
	return g.refs
}

func (g *Glyph) String() string {
	return fmt.Sprintf("glyph %04X (%dx%d, hot %d,%d, refs %d)", g.Code, g.W, g.H, g.HotX, g.HotY, g.refs)
}

// candidates lists the bundle entries probed for a code, in priority order.
func candidates(dir string, code uint16) []string {
	names := []string{
		fmt.Sprintf("%d.png", code),
		fmt.Sprintf("%03d.png", code),
		fmt.Sprintf("%d.bmp", code),
		fmt.Sprintf("%03d.bmp", code),
	}
	if code > 255 {
		hi, lo := code/256, code%256
		names = append(names,
			fmt.Sprintf("%d.%d.png", hi, lo),
			fmt.Sprintf("%03d.%03d.png", hi, lo),
			fmt.Sprintf("%d.%d.bmp", hi, lo),
			fmt.Sprintf("%03d.%03d.bmp", hi, lo),
		)
	}

	out := names[:0]
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, entryPath(dir, n))
	}
	return out
}
