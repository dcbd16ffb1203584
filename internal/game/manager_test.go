package game

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"chosenoffset.com/quickgfx/internal/bundle"
	"chosenoffset.com/quickgfx/internal/font"
	"chosenoffset.com/quickgfx/internal/gfx"
	"chosenoffset.com/quickgfx/internal/input"
	"chosenoffset.com/quickgfx/internal/render"
	"chosenoffset.com/quickgfx/internal/render/rendertest"
	"chosenoffset.com/quickgfx/internal/viewport"
)

// letterSource serves a 6x8 bitmap for every glyph the showcase prints.
type letterSource struct{}

func (letterSource) EntryExists(entry string) bool { return true }
func (letterSource) ReadFile(entry string) ([]byte, error) {
	return []byte(entry), nil
}

type letterLoader struct{}

func (letterLoader) LoadBitmap(name string, data []byte) (render.Image, error) {
	return rendertest.NewImage(6, 8), nil
}

func newTestManager(t *testing.T) (*Manager, *rendertest.Input) {
	t.Helper()
	m := viewport.NewMapper(640, 480)
	m.SetVirtualSize(320, 240)
	ctx := gfx.NewContext(m)
	ctx.SetPanic(func(msg string) {
		t.Fatalf("Unexpected panic %q", msg)
	})

	in := rendertest.NewInput()
	f := font.New(letterSource{}, letterLoader{}, "", nil, font.DefaultOptions())
	assets := Assets{
		Font: f,
		Tile: gfx.NewImage("tile", rendertest.NewImage(32, 32)),
		Orb:  gfx.NewImage("orb", rendertest.NewImage(32, 32), rendertest.NewImage(32, 32)),
	}
	return NewManager(ctx, input.NewPoller(in, m), assets), in
}

func TestUpdateTerminates(t *testing.T) {
	mgr, in := newTestManager(t)
	if err := mgr.Update(); err != nil {
		t.Fatalf("Unexpected error %v", err)
	}

	in.Press(render.KeyEscape)
	if err := mgr.Update(); err != render.ErrTerminate {
		t.Errorf("Expected ErrTerminate on Escape, got %v", err)
	}

	mgr, in = newTestManager(t)
	in.Closing = true
	if err := mgr.Update(); err != render.ErrTerminate {
		t.Errorf("Expected ErrTerminate on close, got %v", err)
	}
}

func TestUpdateTogglesBlendAndCountsClicks(t *testing.T) {
	mgr, in := newTestManager(t)

	in.Press(render.KeySpace)
	in.Click(render.MouseButtonLeft)
	in.WheelY = 5
	if err := mgr.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if mgr.ctx.Blend() != render.BlendAdditive {
		t.Errorf("Expected additive blending, got %v", mgr.ctx.Blend())
	}
	if mgr.clicks != 1 {
		t.Errorf("Expected 1 click, got %d", mgr.clicks)
	}
	if mgr.Scale() != 1.5 {
		t.Errorf("Expected scale 1.5, got %v", mgr.Scale())
	}
}

func TestDrawCoversScreen(t *testing.T) {
	mgr, _ := newTestManager(t)
	screen := rendertest.NewImage(640, 480)

	mgr.Draw(screen)

	if len(screen.Filled) != 1 {
		t.Errorf("Expected the screen to be cleared once, got %d", len(screen.Filled))
	}
	// 320x240 virtual with a 32x32 tile and no phase: 10x8 tiles, plus the
	// orb and the text.
	tiles := 0
	for _, call := range screen.Calls {
		if call.Src.Root().Bounds().Dx() == 32 {
			tiles++
		}
	}
	if tiles != 10*8+1 {
		t.Errorf("Expected 81 tile and sprite blits, got %d", tiles)
	}
	if len(screen.Calls) <= tiles {
		t.Error("Expected text to be drawn")
	}
	if mgr.ctx.Target() != nil {
		t.Error("Expected the render target to be released after Draw")
	}
}

func TestLayoutResizesMapper(t *testing.T) {
	mgr, _ := newTestManager(t)

	w, h := mgr.Layout(960, 720)

	if w != 960 || h != 720 {
		t.Errorf("Expected 960x720, got %dx%d", w, h)
	}
	if rx, ry := mgr.ctx.Mapper().Ratio(); rx != 3 || ry != 3 {
		t.Errorf("Expected ratio 3, got (%v, %v)", rx, ry)
	}
}

func loadOrbSheet(t *testing.T) *gfx.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 24, 8))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	b, err := bundle.New("test", fstest.MapFS{
		"orb.json": {Data: []byte(`{"image_path": "orb.png", "tile_width": 8, "tile_height": 8, "frames": [
			{"name": "rest", "atlas_x": 0, "properties": {"duration": 3}},
			{"name": "flash", "atlas_x": 1, "properties": {"duration": 2}},
			{"name": "fade", "atlas_x": 2, "properties": {"duration": 5}}
		]}`)},
		"orb.png": {Data: buf.Bytes()},
	})
	if err != nil {
		t.Fatalf("bundle.New: %v", err)
	}
	orb, err := gfx.NewLoader(rendertest.NewRenderer()).LoadSheet(b, "orb.json")
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	return orb
}

func TestOrbFollowsSheetDurations(t *testing.T) {
	mgr, in := newTestManager(t)
	mgr.assets.Orb = loadOrbSheet(t)
	mgr.assets.OrbFlash = "flash"

	update := func(n int) {
		for i := 0; i < n; i++ {
			if err := mgr.Update(); err != nil {
				t.Fatalf("Update: %v", err)
			}
		}
	}

	update(2)
	if mgr.OrbFrame() != 0 {
		t.Errorf("Expected frame 0 after 2 ticks, got %d", mgr.OrbFrame())
	}
	update(1)
	if mgr.OrbFrame() != 1 {
		t.Errorf("Expected frame 1 after 3 ticks, got %d", mgr.OrbFrame())
	}
	update(2)
	if mgr.OrbFrame() != 2 {
		t.Errorf("Expected frame 2 after 5 ticks, got %d", mgr.OrbFrame())
	}

	in.Click(render.MouseButtonLeft)
	update(1)
	if mgr.OrbFrame() != 1 {
		t.Errorf("Expected a click to jump to the flash frame, got %d", mgr.OrbFrame())
	}
}

func TestOrbWithoutSheetUsesDefaultDuration(t *testing.T) {
	mgr, _ := newTestManager(t)

	for i := 0; i < orbTicks; i++ {
		if err := mgr.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if mgr.OrbFrame() != 1 {
		t.Errorf("Expected frame 1 after %d ticks, got %d", orbTicks, mgr.OrbFrame())
	}
}
