package engine

import (
	"bytes"
	"math"
	"os"
	"testing"

	"gridcaster/internal/config"
	"gridcaster/internal/movement"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Plane.Width, cfg.Plane.Height = 64, 36
	cfg.Audio.Enabled = false
	cfg.Performance.AlertIntervalSeconds = 0
	return cfg
}

func TestNewUsesConfigStart(t *testing.T) {
	e, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	x, y := e.Camera().GetPosition()
	if x != 2 || y != 3 {
		t.Errorf("start = (%v,%v), want (2,3)", x, y)
	}
	if got := e.Camera().Angle; math.Abs(got-(2*math.Pi-math.Pi/4)) > 1e-9 {
		t.Errorf("start angle = %v, want 7π/4", got)
	}
	if len(e.Sprites()) != 7 {
		t.Errorf("sprites = %d, want 7", len(e.Sprites()))
	}
}

func TestNewUsesMapFileStart(t *testing.T) {
	f, err := os.CreateTemp("", "level-*.map")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.WriteString("1111\n1+a1\n1001\n1111\n")
	f.Close()

	cfg := testConfig()
	cfg.World.MapFile = f.Name()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if x, y := e.Camera().GetPosition(); x != 1.5 || y != 1.5 {
		t.Errorf("start = (%v,%v), want (1.5,1.5)", x, y)
	}
	if len(e.Sprites()) != 1 || e.Sprites()[0].X != 2.5 {
		t.Errorf("sprites = %+v, want the one placed in the map", e.Sprites())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"missing map", func(c *config.Config) { c.World.MapFile = "/nonexistent/level.map" }},
		{"missing atlas", func(c *config.Config) { c.Graphics.Atlas.WallAtlas = "/nonexistent/walls.png" }},
		{"start in wall", func(c *config.Config) { c.Camera.StartX, c.Camera.StartY = 0.5, 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStepCountsBlockedMoves(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.StartX, cfg.Camera.StartY, cfg.Camera.StartAngle = 1.5, 1.5, 180
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	// Facing the west border wall of the built-in map.
	for i := 0; i < 10; i++ {
		e.Step(movement.Intent{Forward: 1}, 0.05)
	}
	x, _ := e.Camera().GetPosition()
	if x < 1 {
		t.Fatalf("walked into the border: x = %v", x)
	}
	if e.Metrics().BlockedMoves == 0 {
		t.Error("expected blocked moves to be recorded")
	}
}

func TestRenderAndToggles(t *testing.T) {
	cfg := testConfig()
	cfg.Graphics.ParallelColumns = true
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	f := e.Render()
	if f.Width != 64 || f.Height != 36 {
		t.Fatalf("frame %dx%d, want 64x36", f.Width, f.Height)
	}
	if e.Metrics().FrameTime <= 0 {
		t.Error("frame time not recorded")
	}

	e.ToggleMinimap()
	if !e.Pipeline().Stages().Minimap {
		t.Error("minimap should be on after toggle")
	}
	e.ToggleFloorCeiling()
	if e.Pipeline().Stages().FloorCeiling {
		t.Error("floor/ceiling should be off after toggle")
	}
	e.ToggleSprites()
	if e.Pipeline().Stages().Sprites {
		t.Error("sprites should be off after toggle")
	}
	e.ToggleTextured()
	if e.Textured() {
		t.Error("textures should be off after toggle")
	}

	// Flat mode: the top row is the flat ceiling colour.
	f = e.Render()
	if got := f.At(0, 0); got.R != 50 || got.G != 50 || got.B != 100 {
		t.Errorf("flat ceiling = %v, want (50,50,100)", got)
	}
}

func TestToggleTexturedFromFlatStart(t *testing.T) {
	cfg := testConfig()
	cfg.Graphics.Textured = false
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	flat := append([]byte(nil), e.Render().Pix()...)
	e.ToggleTextured()
	if !e.Textured() {
		t.Fatal("textures should be on after toggle")
	}
	if bytes.Equal(flat, e.Render().Pix()) {
		t.Error("enabling textures left the frame unchanged")
	}
	e.ToggleTextured()
	if !bytes.Equal(flat, e.Render().Pix()) {
		t.Error("disabling textures did not restore the flat frame")
	}
}
