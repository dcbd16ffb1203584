// Package rendertest provides recording implementations of the render
// interfaces for tests that must not touch a GPU.
package rendertest

import (
	"image"
	"image/color"
	"math"

	"chosenoffset.com/quickgfx/internal/render"
)

// init installs the recording GeoM the same way a real backend would.
func init() {
	render.NewGeoM = func() render.GeoM {
		return NewGeoM()
	}
}

// Renderer creates Image fakes and counts them.
type Renderer struct {
	Created int
}

// NewRenderer creates a recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewImage creates a blank fake image.
func (r *Renderer) NewImage(width, height int) render.Image {
	r.Created++
	return NewImage(width, height)
}

// NewImageFromImage creates a fake image with the bounds of src.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	r.Created++
	b := src.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

// DrawCall is one recorded DrawImage call.
type DrawCall struct {
	Src    *Image
	Matrix GeoM
	Tint   color.RGBA
	Blend  render.Blend
}

// DstRect returns the axis aligned box the source lands on, rounded to
// whole pixels.
func (c DrawCall) DstRect() image.Rectangle {
	w, h := c.Src.Size()
	corners := [][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		x, y := c.Matrix.Apply(p[0], p[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return image.Rect(int(math.Round(minX)), int(math.Round(minY)), int(math.Round(maxX)), int(math.Round(maxY)))
}

// Image records everything drawn onto it.
type Image struct {
	bounds   image.Rectangle
	parent   *Image
	Calls    []DrawCall
	Filled   []color.Color
	Disposed bool
}

// NewImage creates a fake image of the given size.
func NewImage(width, height int) *Image {
	return &Image{bounds: image.Rect(0, 0, width, height)}
}

// Root returns the image a sub-image was cut from, or the image itself.
func (i *Image) Root() *Image {
	if i.parent != nil {
		return i.parent.Root()
	}
	return i
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return i.bounds
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	return i.bounds.Dx(), i.bounds.Dy()
}

// SubImage returns a view on part of the image.
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{bounds: r.Intersect(i.bounds), parent: i}
}

// Fill records the fill color.
func (i *Image) Fill(clr color.Color) {
	i.Filled = append(i.Filled, clr)
}

// Clear records a transparent fill.
func (i *Image) Clear() {
	i.Fill(color.RGBA{})
}

// DrawImage records the call.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	call := DrawCall{Src: src.(*Image), Matrix: *NewGeoM()}
	if opts != nil {
		if opts.GeoM != nil {
			call.Matrix = *opts.GeoM.(*GeoM)
		}
		call.Tint = opts.TintOrWhite()
		call.Blend = opts.Blend
	} else {
		call.Tint = color.RGBA{255, 255, 255, 255}
	}
	i.Calls = append(i.Calls, call)
}

// Dispose marks the image as released.
func (i *Image) Dispose() {
	i.Disposed = true
}

// GeoM is a plain 2x3 affine matrix with ebiten's composition order: every
// operation is applied after the ones before it.
type GeoM struct {
	A, B, C, D, TX, TY float64
}

// NewGeoM returns the identity matrix.
func NewGeoM() *GeoM {
	return &GeoM{A: 1, D: 1}
}

// Translate shifts by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

// Scale scales by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	g.A *= sx
	g.B *= sx
	g.TX *= sx
	g.C *= sy
	g.D *= sy
	g.TY *= sy
}

// Rotate rotates by angle radians.
func (g *GeoM) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	a, b, c, d, tx, ty := g.A, g.B, g.C, g.D, g.TX, g.TY
	g.A = cos*a - sin*c
	g.B = cos*b - sin*d
	g.TX = cos*tx - sin*ty
	g.C = sin*a + cos*c
	g.D = sin*b + cos*d
	g.TY = sin*tx + cos*ty
}

// Reset restores the identity matrix.
func (g *GeoM) Reset() {
	*g = *NewGeoM()
}

// Apply transforms a point.
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return g.A*x + g.B*y + g.TX, g.C*x + g.D*y + g.TY
}

// Input is a scripted InputManager. Tests set the fields between polls.
type Input struct {
	Keys    map[render.Key]bool
	Buttons map[render.MouseButton]bool
	X, Y    int
	WheelX  float64
	WheelY  float64
	Closing bool

	// edges reported for the current tick
	KeyHits        map[render.Key]bool
	ButtonHits     map[render.MouseButton]bool
	ButtonReleases map[render.MouseButton]bool
}

// NewInput creates an input with nothing pressed.
func NewInput() *Input {
	in := &Input{
		Keys:    make(map[render.Key]bool),
		Buttons: make(map[render.MouseButton]bool),
	}
	in.ClearEdges()
	return in
}

// Press holds a key down and reports it as just pressed.
func (in *Input) Press(key render.Key) {
	in.Keys[key] = true
	in.KeyHits[key] = true
}

// Click presses and releases a button within one tick.
func (in *Input) Click(button render.MouseButton) {
	in.ButtonHits[button] = true
	in.ButtonReleases[button] = true
}

// ClearEdges forgets the edges of the current tick.
func (in *Input) ClearEdges() {
	in.KeyHits = make(map[render.Key]bool)
	in.ButtonHits = make(map[render.MouseButton]bool)
	in.ButtonReleases = make(map[render.MouseButton]bool)
}

// IsKeyPressed reports the scripted key state.
func (in *Input) IsKeyPressed(key render.Key) bool {
	return in.Keys[key]
}

// GetCursorPosition reports the scripted cursor.
func (in *Input) GetCursorPosition() (x, y int) {
	return in.X, in.Y
}

// IsMouseButtonPressed reports the scripted button state.
func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	return in.Buttons[button]
}

// Wheel reports the scripted wheel movement.
func (in *Input) Wheel() (x, y float64) {
	return in.WheelX, in.WheelY
}

// IsWindowClosing reports the scripted close request.
func (in *Input) IsWindowClosing() bool {
	return in.Closing
}

// IsKeyJustPressed reports the scripted key edge.
func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.KeyHits[key]
}

// IsMouseButtonJustPressed reports the scripted button edge.
func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return in.ButtonHits[button]
}

// IsMouseButtonJustReleased reports the scripted release edge.
func (in *Input) IsMouseButtonJustReleased(button render.MouseButton) bool {
	return in.ButtonReleases[button]
}
