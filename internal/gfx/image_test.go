package gfx

import (
	"image"
	"testing"

	"chosenoffset.com/quickgfx/internal/render/rendertest"
)

func TestDrawSubtractsHotspot(t *testing.T) {
	ctx, screen, _ := newTestContext(100, 100)
	img := NewImage("ball", rendertest.NewImage(10, 10))
	img.HotCenter()

	img.Draw(ctx, 10, 10, 0)

	if got := screen.Calls[0].DstRect(); got != image.Rect(5, 5, 15, 15) {
		t.Errorf("Expected dst (5,5)-(15,15), got %v", got)
	}
}

func TestDrawRotates(t *testing.T) {
	ctx, screen, _ := newTestContext(100, 100)
	ctx.SetRotation(90)
	img := NewImage("bar", rendertest.NewImage(10, 20))

	img.Draw(ctx, 50, 50, 0)

	if got := screen.Calls[0].DstRect(); got != image.Rect(30, 50, 50, 60) {
		t.Errorf("Expected dst (30,50)-(50,60), got %v", got)
	}
}

func TestHotBottomCenter(t *testing.T) {
	img := NewImage("man", rendertest.NewImage(16, 24))
	img.HotBottomCenter()
	if x, y := img.HotSpot(); x != 8 || y != 24 {
		t.Errorf("Expected hotspot (8, 24), got (%d, %d)", x, y)
	}
}

func TestFrameOutOfRangePanics(t *testing.T) {
	ctx, screen, panics := newTestContext(100, 100)
	img := NewImage("ball", rendertest.NewImage(10, 10))

	img.Draw(ctx, 0, 0, 3)

	if len(*panics) != 1 || (*panics)[0] != "Frame exceeds max. (3) (there are 1 frames)" {
		t.Fatalf("Unexpected panics %v", *panics)
	}
	if len(screen.Calls) != 0 {
		t.Errorf("Expected nothing drawn, got %d calls", len(screen.Calls))
	}
}

func TestStretchShiftsByScaledHotspot(t *testing.T) {
	ctx, screen, _ := newTestContext(100, 100)
	img := NewImage("ball", rendertest.NewImage(10, 10))
	img.Hot(5, 5)

	img.Stretch(ctx, 20, 20, 40, 40, 0)

	if got := screen.Calls[0].DstRect(); got != image.Rect(0, 0, 40, 40) {
		t.Errorf("Expected dst (0,0)-(40,40), got %v", got)
	}
}

func TestTileCoversRectangleThroughMapper(t *testing.T) {
	ctx, screen, _ := newTestContext(200, 200)
	ctx.SetVirtualSize(100, 100)
	img := NewImage("tile", rendertest.NewImage(32, 32))

	img.Tile(ctx, 0, 0, 100, 70, 0, 0, 0)

	if ctx.LastError() != "" {
		t.Fatalf("Unexpected error %q", ctx.LastError())
	}
	if len(screen.Calls) != 12 {
		t.Fatalf("Expected 12 blits, got %d", len(screen.Calls))
	}

	bounds := image.Rect(0, 0, 200, 140)
	area := 0
	for i, call := range screen.Calls {
		r := call.DstRect()
		if !r.In(bounds) {
			t.Errorf("Blit %d lands outside the rectangle: %v", i, r)
		}
		area += r.Dx() * r.Dy()
	}
	if area != bounds.Dx()*bounds.Dy() {
		t.Errorf("Expected covered area %d, got %d", bounds.Dx()*bounds.Dy(), area)
	}

	last := screen.Calls[11]
	if got := last.Src.Bounds(); got != image.Rect(0, 0, 4, 6) {
		t.Errorf("Expected last source (0,0)-(4,6), got %v", got)
	}
	if got := last.DstRect(); got != image.Rect(192, 128, 200, 140) {
		t.Errorf("Expected last dst (192,128)-(200,140), got %v", got)
	}
}

func TestTileFrameFromSheetKeepsSourceOffset(t *testing.T) {
	ctx, screen, _ := newTestContext(100, 100)
	sheet := rendertest.NewImage(64, 32)
	img := NewImage("sheet", sheet.SubImage(image.Rect(32, 0, 64, 32)))

	img.Tile(ctx, 0, 0, 40, 10, 0, 0, 0)

	if len(screen.Calls) != 2 {
		t.Fatalf("Expected 2 blits, got %d", len(screen.Calls))
	}
	if got := screen.Calls[0].Src.Bounds(); got != image.Rect(32, 0, 64, 10) {
		t.Errorf("Expected first source (32,0)-(64,10), got %v", got)
	}
	if got := screen.Calls[1].Src.Bounds(); got != image.Rect(32, 0, 40, 10) {
		t.Errorf("Expected second source (32,0)-(40,10), got %v", got)
	}
	if screen.Calls[1].Src.Root() != sheet {
		t.Error("Expected blits to be cut from the sheet")
	}
}

func TestTileDegenerateRectangle(t *testing.T) {
	ctx, screen, panics := newTestContext(100, 100)
	img := NewImage("tile", rendertest.NewImage(8, 8))

	img.Tile(ctx, 0, 0, 0, 10, 0, 0, 0)

	if ctx.LastError() != "Tile: rectangle degenerates to zero area" {
		t.Errorf("Unexpected error %q", ctx.LastError())
	}
	if len(screen.Calls) != 0 || len(*panics) != 0 {
		t.Errorf("Expected no drawing and no panic, got %d calls, %v", len(screen.Calls), *panics)
	}
}

func TestTileWithoutTargetPanics(t *testing.T) {
	ctx, _, panics := newTestContext(100, 100)
	ctx.End()
	img := NewImage("tile", rendertest.NewImage(8, 8))

	img.Tile(ctx, 0, 0, 10, 10, 0, 0, 0)

	if len(*panics) != 1 {
		t.Fatalf("Expected one panic, got %v", *panics)
	}
}

func TestDisposeReleasesFrames(t *testing.T) {
	a := rendertest.NewImage(4, 4)
	b := rendertest.NewImage(4, 4)
	img := NewImage("pair", a, b)

	img.Dispose()

	if !a.Disposed || !b.Disposed {
		t.Error("Expected every frame to be disposed")
	}
	if img.Frames() != 0 {
		t.Errorf("Expected no frames after Dispose, got %d", img.Frames())
	}
}
