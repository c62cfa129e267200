package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyboardInput reads movement from the keyboard and, with mouse look on,
// turning from horizontal cursor motion.
//
//	W/S, Up/Down     forward and back
//	A/D, Left/Right  turn
//	Q/E              strafe
//	Escape           quit
type KeyboardInput struct {
	pressed func(ebiten.Key) bool
	cursor  func() (int, int)

	mouseSensitivity float64
	mouseLook        bool
	lastCursorX      int
	haveCursor       bool
}

// NewKeyboardInput reads the live keyboard and cursor.
func NewKeyboardInput(mouseSensitivity float64) *KeyboardInput {
	return newKeyboardInput(ebiten.IsKeyPressed, ebiten.CursorPosition, mouseSensitivity)
}

func newKeyboardInput(pressed func(ebiten.Key) bool, cursor func() (int, int), mouseSensitivity float64) *KeyboardInput {
	return &KeyboardInput{pressed: pressed, cursor: cursor, mouseSensitivity: mouseSensitivity}
}

func (ki *KeyboardInput) anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ki.pressed(k) {
			return true
		}
	}
	return false
}

func (ki *KeyboardInput) axis(neg, pos []ebiten.Key) float64 {
	v := 0.0
	if ki.anyPressed(pos...) {
		v++
	}
	if ki.anyPressed(neg...) {
		v--
	}
	return v
}

func (ki *KeyboardInput) MovementIntent() (forward, strafe float64) {
	forward = ki.axis([]ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, []ebiten.Key{ebiten.KeyW, ebiten.KeyUp})
	strafe = ki.axis([]ebiten.Key{ebiten.KeyQ}, []ebiten.Key{ebiten.KeyE})
	return forward, strafe
}

// TurnDelta combines the turn keys with cursor motion since the last call.
func (ki *KeyboardInput) TurnDelta() float64 {
	turn := ki.axis([]ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, []ebiten.Key{ebiten.KeyD, ebiten.KeyRight})
	if !ki.mouseLook {
		return turn
	}
	x, _ := ki.cursor()
	if ki.haveCursor {
		turn += float64(x-ki.lastCursorX) * ki.mouseSensitivity
	}
	ki.lastCursorX, ki.haveCursor = x, true
	return turn
}

func (ki *KeyboardInput) QuitRequested() bool {
	return ki.pressed(ebiten.KeyEscape)
}

// MouseLook reports whether cursor motion turns the view.
func (ki *KeyboardInput) MouseLook() bool { return ki.mouseLook }

// SetMouseLook enables cursor turning. The first reading after enabling
// only establishes the reference position.
func (ki *KeyboardInput) SetMouseLook(on bool) {
	ki.mouseLook = on
	ki.haveCursor = false
}
