// Package input turns the per-tick input state of the backend into the
// polling calls game code is written against: held keys, counted hits,
// mouse position in virtual coordinates and the close request.
package input

import (
	"chosenoffset.com/quickgfx/internal/render"
	"chosenoffset.com/quickgfx/internal/viewport"
)

// Poller accumulates input between the calls that read it. Call Poll once
// per tick, from Game.Update.
type Poller struct {
	in     render.InputManager
	mapper *viewport.Mapper

	keyHits       [render.KeyCount]int
	mouseHits     [render.MouseButtonCount]int
	mouseReleases [render.MouseButtonCount]int

	wheelY    float64
	x, y      int
	terminate bool
}

// NewPoller creates a poller. When mapper is not nil the mouse position is
// reported in its virtual coordinates.
func NewPoller(in render.InputManager, mapper *viewport.Mapper) *Poller {
	return &Poller{in: in, mapper: mapper}
}

// Poll samples the backend.
func (p *Poller) Poll() {
	for k := render.Key(1); k < render.KeyCount; k++ {
		if p.in.IsKeyJustPressed(k) {
			p.keyHits[k]++
		}
	}
	for b := render.MouseButton(0); b < render.MouseButtonCount; b++ {
		if p.in.IsMouseButtonJustPressed(b) {
			p.mouseHits[b]++
		}
		if p.in.IsMouseButtonJustReleased(b) {
			p.mouseReleases[b]++
		}
	}

	_, wy := p.in.Wheel()
	p.wheelY += wy

	p.x, p.y = p.in.GetCursorPosition()
	if p.mapper != nil {
		p.x = p.mapper.UnmapX(p.x)
		p.y = p.mapper.UnmapY(p.y)
	}

	if p.in.IsWindowClosing() {
		p.terminate = true
	}
}

func validKey(k render.Key) bool {
	return k > render.KeyUnknown && k < render.KeyCount
}

func validButton(b render.MouseButton) bool {
	return b >= 0 && b < render.MouseButtonCount
}

// KeyDown reports whether a key is held.
func (p *Poller) KeyDown(k render.Key) bool {
	return validKey(k) && p.in.IsKeyPressed(k)
}

// KeyHit returns how often a key went down since the last call for that key.
func (p *Poller) KeyHit(k render.Key) int {
	if !validKey(k) {
		return 0
	}
	n := p.keyHits[k]
	p.keyHits[k] = 0
	return n
}

// MouseDown reports whether a button is held.
func (p *Poller) MouseDown(b render.MouseButton) bool {
	return validButton(b) && p.in.IsMouseButtonPressed(b)
}

// MouseHit returns how often a button went down since the last call for it.
func (p *Poller) MouseHit(b render.MouseButton) int {
	if !validButton(b) {
		return 0
	}
	n := p.mouseHits[b]
	p.mouseHits[b] = 0
	return n
}

// MouseReleased returns how often a button went up since the last call for it.
func (p *Poller) MouseReleased(b render.MouseButton) int {
	if !validButton(b) {
		return 0
	}
	n := p.mouseReleases[b]
	p.mouseReleases[b] = 0
	return n
}

// MouseX returns the cursor x position of the last Poll.
func (p *Poller) MouseX() int {
	return p.x
}

// MouseY returns the cursor y position of the last Poll.
func (p *Poller) MouseY() int {
	return p.y
}

// MouseWheelY returns the vertical wheel movement since the last call.
func (p *Poller) MouseWheelY() float64 {
	w := p.wheelY
	p.wheelY = 0
	return w
}

// AppTerminate reports whether closing the window was requested.
func (p *Poller) AppTerminate() bool {
	return p.terminate
}

// Flush forgets every pending hit, release and wheel movement.
func (p *Poller) Flush() {
	p.keyHits = [render.KeyCount]int{}
	p.mouseHits = [render.MouseButtonCount]int{}
	p.mouseReleases = [render.MouseButtonCount]int{}
	p.wheelY = 0
}
