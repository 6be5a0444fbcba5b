// Package input reads the player's intent from ebiten's keyboard, mouse and
// gamepad state.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// deadZone ignores small stick deflections.
const deadZone = 0.2

// Ebiten implements player.InputSource. It must be polled from ebiten's
// Update goroutine.
type Ebiten struct {
	gamepadIDs []ebiten.GamepadID
	lastX      int
	hasCursor  bool
}

func NewEbiten() *Ebiten {
	return &Ebiten{}
}

func axis(positive, negative bool) float64 {
	v := 0.0
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}

func stick(v float64) float64 {
	if v > -deadZone && v < deadZone {
		return 0
	}
	return v
}

func (e *Ebiten) gamepads() []ebiten.GamepadID {
	e.gamepadIDs = ebiten.AppendGamepadIDs(e.gamepadIDs[:0])
	return e.gamepadIDs
}

func (e *Ebiten) Move() (float64, float64) {
	right := axis(
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
	)
	forward := axis(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
	)
	for _, g := range e.gamepads() {
		if !ebiten.IsStandardGamepadLayoutAvailable(g) {
			continue
		}
		if right == 0 {
			right = stick(ebiten.StandardGamepadAxisValue(g, ebiten.StandardGamepadAxisLeftStickHorizontal))
		}
		if forward == 0 {
			// stick up is negative
			forward = -stick(ebiten.StandardGamepadAxisValue(g, ebiten.StandardGamepadAxisLeftStickVertical))
		}
	}
	return right, forward
}

// Look returns the horizontal mouse movement since the last call plus the
// right stick and the Q/E keys.
func (e *Ebiten) Look() float64 {
	x, _ := ebiten.CursorPosition()
	delta := 0.0
	if e.hasCursor {
		delta = float64(x - e.lastX)
	}
	e.lastX = x
	e.hasCursor = true

	delta += axis(ebiten.IsKeyPressed(ebiten.KeyE), ebiten.IsKeyPressed(ebiten.KeyQ))
	for _, g := range e.gamepads() {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			delta += stick(ebiten.StandardGamepadAxisValue(g, ebiten.StandardGamepadAxisRightStickHorizontal))
		}
	}
	return delta
}

func (e *Ebiten) Sprint() bool {
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		return true
	}
	for _, g := range e.gamepads() {
		if ebiten.IsStandardGamepadLayoutAvailable(g) && ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftStick) {
			return true
		}
	}
	return false
}

func (e *Ebiten) FlipGravity() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	for _, g := range e.gamepads() {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
		} else if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
			// The button 0 might not be A.
			return true
		}
	}
	return false
}

// PauseJustPressed reports the pause toggle.
func (e *Ebiten) PauseJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	for _, g := range e.gamepads() {
		if ebiten.IsStandardGamepadLayoutAvailable(g) && inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

// QuickSaveJustPressed and QuickLoadJustPressed report F5 and F9.
func (e *Ebiten) QuickSaveJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF5)
}

func (e *Ebiten) QuickLoadJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF9)
}
