// Package viewport maps a virtual drawing resolution onto the physical output
// and plans the clipped blits needed to tile an image over a rectangle.
package viewport

import "math"

// Mapper converts virtual coordinates and sizes into physical pixels.
//
// Positions are floored and extents are ceiled. Adjacent mapped rectangles
// therefore never leave a gap between them, at the price of an occasional
// one pixel overlap.
type Mapper struct {
	physW, physH       int
	virtualW, virtualH int
	refX, refY         float64

	// user sprite scale, applied on top of the virtual ratio
	scaleX, scaleY float64
}

// NewMapper creates a mapper for an output of the given physical size.
// Mapping is disabled until SetVirtualSize is called.
func NewMapper(physicalWidth, physicalHeight int) *Mapper {
	return &Mapper{
		physW:  physicalWidth,
		physH:  physicalHeight,
		refX:   1,
		refY:   1,
		scaleX: 1,
		scaleY: 1,
	}
}

// SetVirtualSize sets the virtual resolution. A width or height of zero or
// less disables mapping on that axis. The ratios are computed against the
// physical size known at the time of the call.
func (m *Mapper) SetVirtualSize(w, h int) {
	m.virtualW = w
	m.virtualH = h
	m.recompute()
}

// Resize records a new physical output size and recomputes the ratios.
func (m *Mapper) Resize(physicalWidth, physicalHeight int) {
	if physicalWidth == m.physW && physicalHeight == m.physH {
		return
	}
	m.physW = physicalWidth
	m.physH = physicalHeight
	m.recompute()
}

func (m *Mapper) recompute() {
	m.refX = 1
	if m.virtualW > 0 {
		m.refX = float64(m.physW) / float64(m.virtualW)
	}
	m.refY = 1
	if m.virtualH > 0 {
		m.refY = float64(m.physH) / float64(m.virtualH)
	}
}

// VirtualSize returns the configured virtual resolution.
func (m *Mapper) VirtualSize() (w, h int) {
	return m.virtualW, m.virtualH
}

// PhysicalSize returns the physical output size the ratios are based on.
func (m *Mapper) PhysicalSize() (w, h int) {
	return m.physW, m.physH
}

// Size returns the size of the drawing space callers work in: the virtual
// size on enabled axes, the physical size otherwise.
func (m *Mapper) Size() (w, h int) {
	w, h = m.physW, m.physH
	if m.virtualW > 0 {
		w = m.virtualW
	}
	if m.virtualH > 0 {
		h = m.virtualH
	}
	return w, h
}

// Ratio returns the physical/virtual ratios. Disabled axes report 1.
func (m *Mapper) Ratio() (x, y float64) {
	return m.refX, m.refY
}

// Enabled reports whether any axis is being remapped.
func (m *Mapper) Enabled() bool {
	return m.virtualW > 0 || m.virtualH > 0
}

// SetUserScale sets the sprite scale used by MapScaledWidth and MapScaledHeight.
func (m *Mapper) SetUserScale(sx, sy float64) {
	m.scaleX = sx
	m.scaleY = sy
}

// UserScale returns the sprite scale.
func (m *Mapper) UserScale() (sx, sy float64) {
	return m.scaleX, m.scaleY
}

// MapX maps a virtual x position to a physical one.
func (m *Mapper) MapX(x int) int {
	if m.virtualW <= 0 {
		return x
	}
	return int(math.Floor(float64(x) * m.refX))
}

// MapY maps a virtual y position to a physical one.
func (m *Mapper) MapY(y int) int {
	if m.virtualH <= 0 {
		return y
	}
	return int(math.Floor(float64(y) * m.refY))
}

// MapWidth maps a virtual width to a physical one.
func (m *Mapper) MapWidth(w int) int {
	if m.virtualW <= 0 {
		return w
	}
	return int(math.Ceil(float64(w) * m.refX))
}

// MapHeight maps a virtual height to a physical one.
func (m *Mapper) MapHeight(h int) int {
	if m.virtualH <= 0 {
		return h
	}
	return int(math.Ceil(float64(h) * m.refY))
}

// MapScaledWidth maps a width and applies the user sprite scale.
func (m *Mapper) MapScaledWidth(w int) int {
	return int(math.Ceil(float64(m.MapWidth(w)) * m.scaleX))
}

// MapScaledHeight maps a height and applies the user sprite scale.
func (m *Mapper) MapScaledHeight(h int) int {
	return int(math.Ceil(float64(m.MapHeight(h)) * m.scaleY))
}

// MapRect maps a whole virtual rectangle.
func (m *Mapper) MapRect(r Rect) Rect {
	return Rect{
		X: m.MapX(r.X),
		Y: m.MapY(r.Y),
		W: m.MapWidth(r.W),
		H: m.MapHeight(r.H),
	}
}

// UnmapX converts a physical x position (a mouse position, for example)
// back into virtual space.
func (m *Mapper) UnmapX(x int) int {
	if m.virtualW <= 0 || m.refX == 0 {
		return x
	}
	return int(math.Floor(float64(x) / m.refX))
}

// UnmapY converts a physical y position back into virtual space.
func (m *Mapper) UnmapY(y int) int {
	if m.virtualH <= 0 || m.refY == 0 {
		return y
	}
	return int(math.Floor(float64(y) / m.refY))
}
