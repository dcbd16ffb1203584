// Package gfx holds the drawing state and the image type built on top of
// the render backend. All coordinates passed in are virtual coordinates;
// the viewport mapper turns them into physical pixels right before drawing.
package gfx

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/render"
	"chosenoffset.com/quickgfx/internal/viewport"
)

// PanicFunc receives the message of an unrecoverable condition.
type PanicFunc func(msg string)

// exit is swapped out by tests.
var exit = os.Exit

// DefaultPanic logs and prints the message, then terminates the process.
func DefaultPanic(msg string) {
	logging.Logger().Error("fatal graphics error", "error", msg)
	fmt.Fprintf(os.Stderr, "quickgfx - fatal error!\n%s\n", msg)
	exit(255)
}

// Context carries the drawing state every draw call uses: the current
// render target, color, alpha, blend mode, origin, rotation and the viewport
// mapper. It is meant for a single render thread.
type Context struct {
	mapper *viewport.Mapper
	target render.Image

	red, green, blue uint8
	alpha            uint8
	cls              color.RGBA
	blend            render.Blend

	originX, originY int
	rotation         float64

	lastErr string
	panicFn PanicFunc
}

// NewContext creates a drawing context around a mapper. A nil mapper gets an
// identity mapper that follows the size of each render target.
func NewContext(m *viewport.Mapper) *Context {
	if m == nil {
		m = viewport.NewMapper(0, 0)
	}
	return &Context{
		mapper: m,
		red:    255,
		green:  255,
		blue:   255,
		alpha:  255,
		cls:    color.RGBA{0, 0, 0, 255},
		blend:  render.BlendAlpha,
	}
}

// Mapper returns the viewport mapper.
func (c *Context) Mapper() *viewport.Mapper {
	return c.mapper
}

// Begin makes target the render target for the following draw calls. The
// mapper follows the size of the target.
func (c *Context) Begin(target render.Image) {
	c.target = target
	if target != nil {
		w, h := target.Size()
		c.mapper.Resize(w, h)
	}
}

// End releases the render target.
func (c *Context) End() {
	c.target = nil
}

// Target returns the current render target, nil outside Begin/End.
func (c *Context) Target() render.Image {
	return c.target
}

// LastError returns the last recoverable error message, empty when the
// last operation succeeded.
func (c *Context) LastError() string {
	return c.lastErr
}

// SetError records a recoverable error.
func (c *Context) SetError(msg string) {
	c.lastErr = msg
}

// SetPanic replaces the panic hook. Passing nil restores DefaultPanic.
func (c *Context) SetPanic(fn PanicFunc) {
	c.panicFn = fn
}

// Panic reports an unrecoverable condition through the panic hook. If the
// hook returns, the condition is kept as the last error.
func (c *Context) Panic(msg string) {
	fn := c.panicFn
	if fn == nil {
		fn = DefaultPanic
	}
	fn(msg)
	c.lastErr = "FATAL ERROR: " + msg
}

func (c *Context) needTarget() bool {
	if c.target == nil {
		c.Panic("Action requiring a graphics screen")
		return false
	}
	return true
}

// SetColor sets the tint applied to everything drawn.
func (c *Context) SetColor(r, g, b uint8) {
	c.red, c.green, c.blue = r, g, b
	c.lastErr = ""
}

// Color returns the current tint.
func (c *Context) Color() (r, g, b uint8) {
	return c.red, c.green, c.blue
}

// SetAlpha sets the opacity applied to everything drawn.
func (c *Context) SetAlpha(a uint8) {
	c.alpha = a
	c.lastErr = ""
}

// Alpha returns the current opacity.
func (c *Context) Alpha() uint8 {
	return c.alpha
}

// SetBlend sets the blend mode.
func (c *Context) SetBlend(b render.Blend) {
	c.blend = b
	c.lastErr = ""
}

// Blend returns the current blend mode.
func (c *Context) Blend() render.Blend {
	return c.blend
}

// SetBlitzBlend sets the blend mode from the classic numeric constants:
// 0 and 3 select alpha blending, 4 additive blending.
func (c *Context) SetBlitzBlend(mode int) {
	c.lastErr = ""
	switch mode {
	case 0, 3:
		c.SetBlend(render.BlendAlpha)
	case 4:
		c.SetBlend(render.BlendAdditive)
	default:
		c.lastErr = fmt.Sprintf("ERROR! Unknown blitz blend (%d)", mode)
		logging.Logger().Debug("unknown blitz blend", "mode", mode)
	}
}

// SetScale sets the sprite scale.
func (c *Context) SetScale(sx, sy float64) {
	c.mapper.SetUserScale(sx, sy)
}

// SetRotation sets the rotation in degrees applied by Image.Draw.
func (c *Context) SetRotation(degrees float64) {
	c.rotation = degrees
}

// Rotation returns the rotation in degrees.
func (c *Context) Rotation() float64 {
	return c.rotation
}

// SetOrigin shifts every following draw call by (x, y) virtual pixels.
func (c *Context) SetOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// Origin returns the drawing origin.
func (c *Context) Origin() (x, y int) {
	return c.originX, c.originY
}

// SetVirtualSize sets the virtual resolution; see viewport.Mapper.
func (c *Context) SetVirtualSize(w, h int) {
	c.mapper.SetVirtualSize(w, h)
}

// ScreenWidth returns the physical width of the output.
func (c *Context) ScreenWidth() int {
	w, _ := c.mapper.PhysicalSize()
	return w
}

// ScreenHeight returns the physical height of the output.
func (c *Context) ScreenHeight() int {
	_, h := c.mapper.PhysicalSize()
	return h
}

// SetClsColor sets the color Cls clears to.
func (c *Context) SetClsColor(r, g, b uint8) {
	c.cls = color.RGBA{r, g, b, 255}
}

// Cls clears the render target.
func (c *Context) Cls() {
	c.lastErr = ""
	if c.target == nil {
		c.lastErr = "Cls(): Impossible to comply without a graphics screen"
		return
	}
	c.target.Fill(c.cls)
}

func (c *Context) options() *render.DrawImageOptions {
	return &render.DrawImageOptions{
		GeoM:  render.NewGeoM(),
		Tint:  color.RGBA{c.red, c.green, c.blue, c.alpha},
		Blend: c.blend,
	}
}

// place draws src so that its hotspot (in source pixels) lands on the
// virtual point (x, y), scaled by the mapper and the sprite scale.
func (c *Context) place(src render.Image, x, y, hotX, hotY int, degrees float64) {
	if !c.needTarget() || c.alpha == 0 {
		return
	}
	w, h := src.Size()
	if w <= 0 || h <= 0 {
		c.lastErr = "Draw: image has no area"
		return
	}

	pw := c.mapper.MapScaledWidth(w)
	ph := c.mapper.MapScaledHeight(h)
	px := c.mapper.MapX(x + c.originX)
	py := c.mapper.MapY(y + c.originY)

	opts := c.options()
	opts.GeoM.Translate(float64(-hotX), float64(-hotY))
	opts.GeoM.Scale(float64(pw)/float64(w), float64(ph)/float64(h))
	if degrees != 0 {
		opts.GeoM.Rotate(degrees * math.Pi / 180)
	}
	opts.GeoM.Translate(float64(px), float64(py))
	c.target.DrawImage(src, opts)
}

// stretch draws src over the virtual rectangle dst.
func (c *Context) stretch(src render.Image, dst viewport.Rect) {
	if !c.needTarget() || c.alpha == 0 {
		return
	}
	w, h := src.Size()
	dst.X += c.originX
	dst.Y += c.originY
	pr := c.mapper.MapRect(dst)
	if w <= 0 || h <= 0 || pr.Empty() {
		c.lastErr = "Stretch: rectangle degenerates to zero area"
		return
	}

	opts := c.options()
	opts.GeoM.Scale(float64(pr.W)/float64(w), float64(pr.H)/float64(h))
	opts.GeoM.Translate(float64(pr.X), float64(pr.Y))
	c.target.DrawImage(src, opts)
}

// DrawImage draws a whole image with its top-left corner on the virtual
// point (x, y), using the current color, alpha and blend mode.
func (c *Context) DrawImage(src render.Image, x, y int) {
	c.place(src, x, y, 0, 0, 0)
}
