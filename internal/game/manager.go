// Package game runs the quickgfx showcase: a scrolling tiled background,
// an animated sprite following the mouse and aligned bitmap text, all drawn
// in a virtual resolution.
package game

import (
	"fmt"

	"chosenoffset.com/quickgfx/internal/audio"
	"chosenoffset.com/quickgfx/internal/font"
	"chosenoffset.com/quickgfx/internal/gfx"
	"chosenoffset.com/quickgfx/internal/input"
	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/render"
)

// Assets are the resources the showcase draws with. Beep may be nil.
// OrbFlash names the sheet frame the orb jumps to on a click.
type Assets struct {
	Font     *font.Font
	Tile     *gfx.Image
	Orb      *gfx.Image
	OrbFlash string
	Beep     *audio.Sample
}

// orbTicks is how long an orb frame lasts when its sheet does not say.
const orbTicks = 8

// Manager implements render.Game.
type Manager struct {
	ctx    *gfx.Context
	input  *input.Poller
	assets Assets

	ScreenWidth  int
	ScreenHeight int

	scroll   int
	orbFrame int
	orbTicks int
	scale    float64
	additive bool
	outline  bool
	clicks   int
	channels []*audio.Channel
}

// NewManager creates the showcase.
func NewManager(ctx *gfx.Context, poller *input.Poller, assets Assets) *Manager {
	return &Manager{
		ctx:     ctx,
		input:   poller,
		assets:  assets,
		scale:   1,
		outline: true,
	}
}

// Update advances the animation and handles input.
func (m *Manager) Update() error {
	m.input.Poll()
	if m.input.AppTerminate() || m.input.KeyHit(render.KeyEscape) > 0 {
		return render.ErrTerminate
	}

	m.scroll++
	m.animateOrb()

	if m.input.KeyHit(render.KeySpace) > 0 {
		m.additive = !m.additive
		if m.additive {
			m.ctx.SetBlitzBlend(4)
		} else {
			m.ctx.SetBlitzBlend(3)
		}
	}
	if m.input.KeyHit(render.KeyO) > 0 {
		m.outline = !m.outline
	}
	if wheel := m.input.MouseWheelY(); wheel != 0 {
		m.scale += wheel * 0.1
		if m.scale < 0.5 {
			m.scale = 0.5
		}
	}

	if n := m.input.MouseHit(render.MouseButtonLeft); n > 0 {
		m.clicks += n
		m.flashOrb()
		m.playBeep()
	}
	m.reapChannels()
	return nil
}

// animateOrb advances the orb animation by one tick. Each frame lasts the
// duration its sheet gives it.
func (m *Manager) animateOrb() {
	orb := m.assets.Orb
	if orb == nil || orb.Frames() == 0 {
		return
	}
	m.orbTicks++
	if m.orbTicks < m.orbDuration(m.orbFrame) {
		return
	}
	m.orbTicks = 0
	m.orbFrame = (m.orbFrame + 1) % orb.Frames()
}

func (m *Manager) orbDuration(frame int) int {
	if sheet := m.assets.Orb.Sheet(); sheet != nil {
		return sheet.Duration(frame, orbTicks)
	}
	return orbTicks
}

func (m *Manager) flashOrb() {
	if m.assets.Orb == nil || m.assets.OrbFlash == "" {
		return
	}
	if i, ok := m.assets.Orb.FrameByName(m.assets.OrbFlash); ok {
		m.orbFrame = i
		m.orbTicks = 0
	}
}

// OrbFrame returns the frame of the orb drawn next.
func (m *Manager) OrbFrame() int {
	return m.orbFrame
}

func (m *Manager) playBeep() {
	if m.assets.Beep == nil {
		return
	}
	ch, err := m.assets.Beep.Play(0)
	if err != nil {
		logging.Logger().Warn("beep failed", "error", err)
		return
	}
	m.channels = append(m.channels, ch)
}

func (m *Manager) reapChannels() {
	live := m.channels[:0]
	for _, ch := range m.channels {
		if ch.Playing() {
			live = append(live, ch)
			continue
		}
		ch.Stop()
	}
	m.channels = live
}

// Draw renders one frame.
func (m *Manager) Draw(screen render.Image) {
	m.ctx.Begin(screen)
	defer m.ctx.End()

	m.ctx.Cls()
	vw, vh := m.ctx.Mapper().Size()

	// Background scrolls diagonally; the phase wraps inside Tile.
	m.ctx.SetColor(255, 255, 255)
	m.ctx.SetAlpha(255)
	if m.assets.Tile != nil {
		m.assets.Tile.Tile(m.ctx, 0, 0, vw, vh, m.scroll/2, m.scroll/3, 0)
	}

	if m.assets.Orb != nil && m.assets.Orb.Frames() > 0 {
		m.ctx.SetScale(m.scale, m.scale)
		m.assets.Orb.Draw(m.ctx, m.input.MouseX(), m.input.MouseY(), m.orbFrame)
		m.ctx.SetScale(1, 1)
	}

	f := m.assets.Font
	if f == nil {
		return
	}
	m.ctx.SetColor(255, 220, 120)
	f.DrawAligned(m.ctx, "quickgfx", vw/2, 8, font.AlignCenter, font.AlignTop)

	m.ctx.SetColor(255, 255, 255)
	status := fmt.Sprintf("Clicks:\t%d\nBlend:\t%s\nMouse:\t%d,%d", m.clicks, m.ctx.Blend(), m.input.MouseX(), m.input.MouseY())
	if m.outline {
		f.DrawOutline(m.ctx, status, 8, vh-8, font.AlignLeft, font.AlignBottom)
	} else {
		f.DrawAligned(m.ctx, status, 8, vh-8, font.AlignLeft, font.AlignBottom)
	}
	f.DrawAligned(m.ctx, font.Encode("Café | Ω"), vw-8, vh-8, font.AlignRight, font.AlignBottom)
}

// Layout keeps the logical screen at the window size; the virtual
// resolution is applied by the mapper.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.ctx.Mapper().Resize(outsideWidth, outsideHeight)
		logging.Logger().Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Scale returns the sprite scale set with the mouse wheel.
func (m *Manager) Scale() float64 {
	return m.scale
}

// Close stops every playing sound.
func (m *Manager) Close() {
	for _, ch := range m.channels {
		ch.Stop()
	}
	m.channels = nil
}
