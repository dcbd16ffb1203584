package input

import (
	"testing"

	"chosenoffset.com/quickgfx/internal/render"
	"chosenoffset.com/quickgfx/internal/render/rendertest"
	"chosenoffset.com/quickgfx/internal/viewport"
)

func TestKeyHitCountsEdges(t *testing.T) {
	in := rendertest.NewInput()
	p := NewPoller(in, nil)

	in.Press(render.KeySpace)
	p.Poll()
	in.ClearEdges()
	p.Poll() // still held, no new edge
	in.Press(render.KeySpace)
	p.Poll()

	if !p.KeyDown(render.KeySpace) {
		t.Error("Expected space to be held")
	}
	if got := p.KeyHit(render.KeySpace); got != 2 {
		t.Errorf("Expected 2 hits, got %d", got)
	}
	if got := p.KeyHit(render.KeySpace); got != 0 {
		t.Errorf("Expected hits to reset after reading, got %d", got)
	}
	if got := p.KeyHit(render.KeyCount); got != 0 {
		t.Errorf("Expected 0 for an invalid key, got %d", got)
	}
}

func TestMouseHitsAndReleases(t *testing.T) {
	in := rendertest.NewInput()
	p := NewPoller(in, nil)

	in.Click(render.MouseButtonLeft)
	in.Buttons[render.MouseButtonRight] = true
	p.Poll()

	if got := p.MouseHit(render.MouseButtonLeft); got != 1 {
		t.Errorf("Expected 1 hit, got %d", got)
	}
	if got := p.MouseReleased(render.MouseButtonLeft); got != 1 {
		t.Errorf("Expected 1 release, got %d", got)
	}
	if !p.MouseDown(render.MouseButtonRight) || p.MouseDown(render.MouseButtonLeft) {
		t.Error("Unexpected held buttons")
	}
	if p.MouseDown(render.MouseButton(-1)) {
		t.Error("Expected an invalid button to be up")
	}
}

func TestMousePositionIsVirtual(t *testing.T) {
	in := rendertest.NewInput()
	m := viewport.NewMapper(640, 480)
	m.SetVirtualSize(320, 240)
	p := NewPoller(in, m)

	in.X, in.Y = 101, 50
	p.Poll()

	if p.MouseX() != 50 || p.MouseY() != 25 {
		t.Errorf("Expected (50, 25), got (%d, %d)", p.MouseX(), p.MouseY())
	}
}

func TestWheelAccumulates(t *testing.T) {
	in := rendertest.NewInput()
	p := NewPoller(in, nil)

	in.WheelY = 1
	p.Poll()
	in.WheelY = 2
	p.Poll()

	if got := p.MouseWheelY(); got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
	if got := p.MouseWheelY(); got != 0 {
		t.Errorf("Expected 0 after reading, got %v", got)
	}
}

func TestFlushAndTerminate(t *testing.T) {
	in := rendertest.NewInput()
	p := NewPoller(in, nil)

	in.Press(render.KeyA)
	in.Click(render.MouseButtonMiddle)
	in.WheelY = 4
	p.Poll()
	p.Flush()

	if p.KeyHit(render.KeyA) != 0 || p.MouseHit(render.MouseButtonMiddle) != 0 || p.MouseWheelY() != 0 {
		t.Error("Expected Flush to forget pending input")
	}
	if p.AppTerminate() {
		t.Error("Expected no termination request yet")
	}

	in.Closing = true
	p.Poll()
	if !p.AppTerminate() {
		t.Error("Expected the close request to be reported")
	}
}
