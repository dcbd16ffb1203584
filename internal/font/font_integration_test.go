package font_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"chosenoffset.com/quickgfx/internal/bundle"
	"chosenoffset.com/quickgfx/internal/font"
	"chosenoffset.com/quickgfx/internal/gfx"
	"chosenoffset.com/quickgfx/internal/render/rendertest"
	"chosenoffset.com/quickgfx/internal/viewport"
)

func pngOf(t *testing.T, w, h int) *fstest.MapFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

func TestTextThroughContext(t *testing.T) {
	b, err := bundle.New("mem", fstest.MapFS{
		"fonts/mini/065.png":  pngOf(t, 5, 7),
		"fonts/mini/066.png":  pngOf(t, 6, 7),
		"fonts/mini/font.ini": {Data: []byte("[0061]\nLINK=0041\n")},
	})
	if err != nil {
		t.Fatalf("bundle.New: %v", err)
	}

	f, err := font.Load(b, gfx.NewLoader(rendertest.NewRenderer()), "fonts/mini", font.DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx := gfx.NewContext(viewport.NewMapper(0, 0))
	ctx.SetVirtualSize(320, 240)
	screen := rendertest.NewImage(640, 480)
	ctx.Begin(screen)
	ctx.SetColor(0, 255, 0)

	f.Text(ctx, "AaB", 10, 20)

	if len(screen.Calls) != 3 {
		t.Fatalf("Expected 3 draw calls, got %d", len(screen.Calls))
	}
	want := []image.Rectangle{
		image.Rect(20, 40, 30, 54),
		image.Rect(30, 40, 40, 54),
		image.Rect(40, 40, 52, 54),
	}
	for i, call := range screen.Calls {
		if got := call.DstRect(); got != want[i] {
			t.Errorf("Glyph %d: expected %v, got %v", i, want[i], got)
		}
		if call.Tint.G != 255 || call.Tint.R != 0 {
			t.Errorf("Glyph %d: expected a green tint, got %v", i, call.Tint)
		}
	}
	if screen.Calls[0].Src != screen.Calls[1].Src {
		t.Error("Expected a and A to share one bitmap")
	}
}

func TestMalformedEscapeUsesContextHook(t *testing.T) {
	b, err := bundle.New("mem", fstest.MapFS{
		"fonts/mini/065.png": pngOf(t, 5, 7),
	})
	if err != nil {
		t.Fatalf("bundle.New: %v", err)
	}
	opts := font.DefaultOptions()
	opts.SkipMalformedEscapes = false
	f, err := font.Load(b, gfx.NewLoader(rendertest.NewRenderer()), "fonts/mini", opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx := gfx.NewContext(nil)
	var panics []string
	ctx.SetPanic(func(msg string) {
		panics = append(panics, msg)
	})
	screen := rendertest.NewImage(320, 240)
	ctx.Begin(screen)

	f.DrawAligned(ctx, "A|", 100, 50, font.AlignCenter, font.AlignTop)

	if len(panics) != 1 {
		t.Fatalf("Expected one call to the context hook, got %v", panics)
	}
	if len(screen.Calls) != 1 {
		t.Errorf("Expected A to be drawn before the escape, got %d draw calls", len(screen.Calls))
	}
	if ctx.LastError() != "FATAL ERROR: "+panics[0] {
		t.Errorf("Unexpected context error %q", ctx.LastError())
	}
	if f.LastError() != ctx.LastError() {
		t.Errorf("Expected font error %q, got %q", ctx.LastError(), f.LastError())
	}
}
