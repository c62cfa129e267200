package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// holdDuration is how long one key event counts as a held key. Terminals
// report presses and autorepeats but never releases.
const holdDuration = 150 * time.Millisecond

// action is a movement key after mapping runes and special keys.
type action int

const (
	actForward action = iota
	actBack
	actTurnLeft
	actTurnRight
	actStrafeLeft
	actStrafeRight
	actQuit
)

// KeyInput implements movement.InputSource from tcell key events.
type KeyInput struct {
	mu    sync.Mutex
	now   func() time.Time
	until map[action]time.Time
	quit  bool
}

// NewKeyInput creates an input source reading the wall clock.
func NewKeyInput() *KeyInput {
	return newKeyInput(time.Now)
}

func newKeyInput(now func() time.Time) *KeyInput {
	return &KeyInput{now: now, until: make(map[action]time.Time)}
}

// HandleKey records a key event. It returns the rune for keys that are not
// movement, so the caller can treat them as toggles, or 0.
func (ki *KeyInput) HandleKey(ev *tcell.EventKey) rune {
	act, ok := mapKey(ev)
	if !ok {
		if ev.Key() == tcell.KeyTab {
			return '\t'
		}
		if ev.Key() == tcell.KeyRune {
			return ev.Rune()
		}
		return 0
	}

	ki.mu.Lock()
	defer ki.mu.Unlock()
	if act == actQuit {
		ki.quit = true
		return 0
	}
	ki.until[act] = ki.now().Add(holdDuration)
	return 0
}

func mapKey(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, true
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBack, true
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return actForward, true
		case 's', 'S':
			return actBack, true
		case 'a', 'A':
			return actTurnLeft, true
		case 'd', 'D':
			return actTurnRight, true
		case 'q', 'Q':
			return actStrafeLeft, true
		case 'e', 'E':
			return actStrafeRight, true
		}
	}
	return 0, false
}

func (ki *KeyInput) held(a action) bool {
	return ki.now().Before(ki.until[a])
}

func (ki *KeyInput) axis(neg, pos action) float64 {
	v := 0.0
	if ki.held(pos) {
		v++
	}
	if ki.held(neg) {
		v--
	}
	return v
}

func (ki *KeyInput) MovementIntent() (forward, strafe float64) {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	return ki.axis(actBack, actForward), ki.axis(actStrafeLeft, actStrafeRight)
}

func (ki *KeyInput) TurnDelta() float64 {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	return ki.axis(actTurnLeft, actTurnRight)
}

func (ki *KeyInput) QuitRequested() bool {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	return ki.quit
}
