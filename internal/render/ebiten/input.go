package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/quickgfx/internal/render"
)

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := ebitenKeys[key]
	if !ok {
		return false
	}
	return ebiten.IsKeyPressed(k)
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// Wheel returns the wheel movement since the previous tick.
func (m *EbitenInputManager) Wheel() (x, y float64) {
	return ebiten.Wheel()
}

// IsWindowClosing reports whether the user asked to close the window.
func (m *EbitenInputManager) IsWindowClosing() bool {
	return ebiten.IsWindowBeingClosed()
}

// IsKeyJustPressed reports whether the key went down during this tick.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := ebitenKeys[key]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(k)
}

// IsMouseButtonJustPressed reports whether the button went down during this tick.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustReleased reports whether the button went up during this tick.
func (m *EbitenInputManager) IsMouseButtonJustReleased(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(mouseButtonToEbiten(button))
}

var ebitenKeys = map[render.Key]ebiten.Key{
	render.KeyA:         ebiten.KeyA,
	render.KeyB:         ebiten.KeyB,
	render.KeyC:         ebiten.KeyC,
	render.KeyD:         ebiten.KeyD,
	render.KeyE:         ebiten.KeyE,
	render.KeyF:         ebiten.KeyF,
	render.KeyG:         ebiten.KeyG,
	render.KeyH:         ebiten.KeyH,
	render.KeyI:         ebiten.KeyI,
	render.KeyJ:         ebiten.KeyJ,
	render.KeyK:         ebiten.KeyK,
	render.KeyL:         ebiten.KeyL,
	render.KeyM:         ebiten.KeyM,
	render.KeyN:         ebiten.KeyN,
	render.KeyO:         ebiten.KeyO,
	render.KeyP:         ebiten.KeyP,
	render.KeyQ:         ebiten.KeyQ,
	render.KeyR:         ebiten.KeyR,
	render.KeyS:         ebiten.KeyS,
	render.KeyT:         ebiten.KeyT,
	render.KeyU:         ebiten.KeyU,
	render.KeyV:         ebiten.KeyV,
	render.KeyW:         ebiten.KeyW,
	render.KeyX:         ebiten.KeyX,
	render.KeyY:         ebiten.KeyY,
	render.KeyZ:         ebiten.KeyZ,
	render.Key0:         ebiten.KeyDigit0,
	render.Key1:         ebiten.KeyDigit1,
	render.Key2:         ebiten.KeyDigit2,
	render.Key3:         ebiten.KeyDigit3,
	render.Key4:         ebiten.KeyDigit4,
	render.Key5:         ebiten.KeyDigit5,
	render.Key6:         ebiten.KeyDigit6,
	render.Key7:         ebiten.KeyDigit7,
	render.Key8:         ebiten.KeyDigit8,
	render.Key9:         ebiten.KeyDigit9,
	render.KeyUp:        ebiten.KeyArrowUp,
	render.KeyDown:      ebiten.KeyArrowDown,
	render.KeyLeft:      ebiten.KeyArrowLeft,
	render.KeyRight:     ebiten.KeyArrowRight,
	render.KeySpace:     ebiten.KeySpace,
	render.KeyEnter:     ebiten.KeyEnter,
	render.KeyEscape:    ebiten.KeyEscape,
	render.KeyBackspace: ebiten.KeyBackspace,
	render.KeyTab:       ebiten.KeyTab,
	render.KeyShift:     ebiten.KeyShift,
	render.KeyControl:   ebiten.KeyControl,
	render.KeyAlt:       ebiten.KeyAlt,
	render.KeyF1:        ebiten.KeyF1,
	render.KeyF2:        ebiten.KeyF2,
	render.KeyF3:        ebiten.KeyF3,
	render.KeyF4:        ebiten.KeyF4,
	render.KeyF5:        ebiten.KeyF5,
	render.KeyF6:        ebiten.KeyF6,
	render.KeyF7:        ebiten.KeyF7,
	render.KeyF8:        ebiten.KeyF8,
	render.KeyF9:        ebiten.KeyF9,
	render.KeyF10:       ebiten.KeyF10,
	render.KeyF11:       ebiten.KeyF11,
	render.KeyF12:       ebiten.KeyF12,
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}
