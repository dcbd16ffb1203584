package gfx

import (
	"fmt"

	"chosenoffset.com/quickgfx/internal/atlas"
	"chosenoffset.com/quickgfx/internal/render"
	"chosenoffset.com/quickgfx/internal/viewport"
)

// Image is a drawable made of one or more frames sharing a hotspot.
type Image struct {
	name   string
	frames []render.Image
	hotX   int
	hotY   int

	// sheet the frames were cut from, if any
	owned render.Image
	sheet *atlas.Sheet
}

// NewImage creates an image from already loaded frames.
func NewImage(name string, frames ...render.Image) *Image {
	return &Image{name: name, frames: frames}
}

// Name returns the file or entry the image was loaded from.
func (img *Image) Name() string {
	return img.name
}

// Frames returns the number of frames.
func (img *Image) Frames() int {
	return len(img.frames)
}

// Frame returns a frame, or nil when the index is out of range.
func (img *Image) Frame(i int) render.Image {
	if i < 0 || i >= len(img.frames) {
		return nil
	}
	return img.frames[i]
}

// Sheet returns the description the image was loaded from with
// Loader.LoadSheet, or nil.
func (img *Image) Sheet() *atlas.Sheet {
	return img.sheet
}

// FrameByName returns the number of a frame named in the sheet description.
func (img *Image) FrameByName(name string) (int, bool) {
	if img.sheet == nil {
		return 0, false
	}
	i, ok := img.sheet.FrameIndex(name)
	if !ok || i >= len(img.frames) {
		return 0, false
	}
	return i, true
}

// Width returns the width of the first frame.
func (img *Image) Width() int {
	if len(img.frames) == 0 {
		return 0
	}
	w, _ := img.frames[0].Size()
	return w
}

// Height returns the height of the first frame.
func (img *Image) Height() int {
	if len(img.frames) == 0 {
		return 0
	}
	_, h := img.frames[0].Size()
	return h
}

// Hot sets the hotspot, the point of the image that lands on the drawing position.
func (img *Image) Hot(x, y int) {
	img.hotX, img.hotY = x, y
}

// HotCenter puts the hotspot in the middle of the image.
func (img *Image) HotCenter() {
	img.Hot(img.Width()/2, img.Height()/2)
}

// HotBottomCenter puts the hotspot at the middle of the bottom edge.
func (img *Image) HotBottomCenter() {
	img.Hot(img.Width()/2, img.Height())
}

// HotSpot returns the hotspot.
func (img *Image) HotSpot() (x, y int) {
	return img.hotX, img.hotY
}

func (img *Image) frame(ctx *Context, i int) render.Image {
	if i < 0 || i >= len(img.frames) {
		ctx.Panic(fmt.Sprintf("Frame exceeds max. (%d) (there are %d frames)", i, len(img.frames)))
		return nil
	}
	return img.frames[i]
}

// Draw draws a frame with its hotspot on (x, y), applying the context's
// scale and rotation.
func (img *Image) Draw(ctx *Context, x, y, frame int) {
	f := img.frame(ctx, frame)
	if f == nil {
		return
	}
	ctx.place(f, x, y, img.hotX, img.hotY, ctx.rotation)
}

// Stretch draws a frame over the rectangle (x, y, w, h). The hotspot shifts
// the rectangle proportionally to the stretch.
func (img *Image) Stretch(ctx *Context, x, y, w, h, frame int) {
	f := img.frame(ctx, frame)
	if f == nil {
		return
	}
	fw, fh := f.Size()
	if fw > 0 && fh > 0 {
		x -= img.hotX * w / fw
		y -= img.hotY * h / fh
	}
	ctx.stretch(f, viewport.Rect{X: x, Y: y, W: w, H: h})
}

// Tile repeats a frame over the rectangle (x, y, w, h). ix and iy shift the
// phase of the pattern. Tiles are clipped at the rectangle's edges.
func (img *Image) Tile(ctx *Context, x, y, w, h, ix, iy, frame int) {
	f := img.frame(ctx, frame)
	if f == nil {
		return
	}
	ctx.lastErr = ""
	if w <= 0 || h <= 0 {
		ctx.lastErr = "Tile: rectangle degenerates to zero area"
		return
	}
	if !ctx.needTarget() {
		return
	}

	fw, fh := f.Size()
	min := f.Bounds().Min
	for _, b := range viewport.PlanTiles(fw, fh, viewport.Rect{X: x, Y: y, W: w, H: h}, ix, iy) {
		src := b.Src
		src.X += min.X
		src.Y += min.Y
		ctx.stretch(f.SubImage(src.Image()), b.Dst)
	}
}

// Dispose releases every frame.
func (img *Image) Dispose() {
	for _, f := range img.frames {
		if f != nil {
			f.Dispose()
		}
	}
	img.frames = nil
	if img.owned != nil {
		img.owned.Dispose()
		img.owned = nil
	}
}
