// Package keytracker turns Ebiten's level-triggered key state into edges.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers last frame's state of every key it was asked about.
type KeyStateTracker struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
}

// New tracks the live keyboard.
func New() *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource tracks keys as reported by pressed.
func NewWithSource(pressed func(ebiten.Key) bool) *KeyStateTracker {
	return &KeyStateTracker{pressed: pressed, prev: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if key was up on the previous call and is down now.
// Call it once per key per frame.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := k.pressed(key)
	justPressed := pressed && !k.prev[key]
	k.prev[key] = pressed
	return justPressed
}
