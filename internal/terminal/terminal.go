// Package terminal is the text-mode frontend. Frames are drawn with
// half-block characters in 24-bit colour.
package terminal

import (
	"context"
	"fmt"
	"time"

	"gridcaster/internal/engine"
	"gridcaster/internal/movement"

	"github.com/gdamore/tcell/v2"
)

// Runner drives an engine from a tcell screen.
type Runner struct {
	screen    tcell.Screen
	engine    *engine.Engine
	input     *KeyInput
	presenter *Presenter
	fps       int
	showHUD   bool
}

// NewRunner wraps an initialized screen. fps caps the render rate.
func NewRunner(screen tcell.Screen, e *engine.Engine, fps int) *Runner {
	if fps <= 0 {
		fps = 30
	}
	return &Runner{
		screen:    screen,
		engine:    e,
		input:     NewKeyInput(),
		presenter: NewPresenter(screen),
		fps:       fps,
		showHUD:   e.Config().Graphics.ShowFPS,
	}
}

// Run loops until Escape, Ctrl-C or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.screen.HideCursor()
	r.screen.Clear()

	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go r.pollEvents(eventChan, done)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			r.handleEvent(ev)
			if r.input.QuitRequested() {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.Tick(dt)
		}
	}
}

// Tick advances the engine by dt seconds and redraws.
func (r *Runner) Tick(dt float64) {
	r.engine.Step(movement.IntentFrom(r.input), dt)
	r.presenter.Present(r.engine.Render())
	if r.showHUD {
		cam := r.engine.Camera()
		m := r.engine.Metrics()
		r.presenter.DrawText(0, 0, fmt.Sprintf("%.0f fps  %.2f,%.2f", m.FramesPerSecond, cam.X, cam.Y))
	}
	r.screen.Show()
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed. events is closed only when the screen goes away.
func (r *Runner) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (r *Runner) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch r.input.HandleKey(ev) {
		case '\t':
			r.engine.ToggleMinimap()
		case 'f', 'F':
			r.engine.ToggleFloorCeiling()
		case 't', 'T':
			r.engine.ToggleTextured()
		case 'p', 'P':
			r.engine.ToggleSprites()
		case '/':
			r.showHUD = !r.showHUD
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
}

// Input exposes the key state, mainly for tests.
func (r *Runner) Input() *KeyInput { return r.input }
