// Package game is the windowed frontend: it feeds keyboard and mouse input
// to the engine and presents rendered frames through Ebiten.
package game

import (
	"gridcaster/internal/config"
	"gridcaster/internal/engine"
	"gridcaster/internal/game/keytracker"
	"gridcaster/internal/movement"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game.
type Game struct {
	config *config.Config
	engine *engine.Engine
	input  *KeyboardInput
	keys   *keytracker.KeyStateTracker

	view    *ebiten.Image
	showFPS bool
}

// NewGame builds the engine from cfg and opens audio.
func NewGame(cfg *config.Config) (*Game, error) {
	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	e.InitAudio()
	return &Game{
		config:  cfg,
		engine:  e,
		input:   NewKeyboardInput(cfg.Movement.MouseSensitivity),
		keys:    keytracker.New(),
		showFPS: cfg.Graphics.ShowFPS,
	}, nil
}

// Update advances one tick. Ebiten calls it TPS times per second.
func (g *Game) Update() error {
	if g.input.QuitRequested() {
		return ebiten.Termination
	}
	g.handleToggles()
	g.engine.Step(movement.IntentFrom(g.input), 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) handleToggles() {
	if g.keys.IsKeyJustPressed(ebiten.KeyTab) {
		g.engine.ToggleMinimap()
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyF) {
		g.engine.ToggleFloorCeiling()
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyT) {
		g.engine.ToggleTextured()
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyP) {
		g.engine.ToggleSprites()
	}
	// Toggle FPS counter with '/' key (slash)
	if g.keys.IsKeyJustPressed(ebiten.KeySlash) {
		g.showFPS = !g.showFPS
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyM) {
		on := !g.input.MouseLook()
		g.input.SetMouseLook(on)
		if on {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
	}
}

// Draw renders the view at plane resolution and scales it to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.engine.Render()
	if g.view == nil {
		g.view = ebiten.NewImage(frame.Width, frame.Height)
	}
	g.view.WritePixels(frame.Pix())

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(frame.Width), float64(sh)/float64(frame.Height))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.view, op)

	if g.showFPS {
		drawHUD(screen, g.hudLines())
	}
}

// Layout keeps a fixed logical screen; Ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// Close releases the engine.
func (g *Game) Close() {
	g.engine.Close()
}
