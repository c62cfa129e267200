package render

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/raycast"
	"gridcaster/internal/threading/core"
	"gridcaster/internal/world"
)

func roomScene(t *testing.T) *Scene {
	m := mustMap(t, "111", "101", "111")
	return &Scene{
		Map:    m,
		Caster: raycast.NewCaster(m, 24),
		Camera: camera.NewFirstPersonCamera(1.5, 1.5, 0, math.Pi/3),
	}
}

func TestSingleRoomCentreColumn(t *testing.T) {
	proj := testProjection(61, 40)
	p := NewPipeline(proj, Shading{}, testMaterials, Options{})
	scene := roomScene(t)

	p.Render(scene)

	centre := proj.Width / 2
	if d := p.Depth()[centre]; math.Abs(d-0.5) > eps {
		t.Fatalf("centre depth = %v, want 0.5", d)
	}
	wantHeight := (64.0 / (0.5 * 64)) * proj.PlaneDistance
	if got := proj.SliceHeight(p.Depth()[centre]); math.Abs(got-wantHeight) > 1e-6 {
		t.Errorf("centre slice = %v, want %v", got, wantHeight)
	}
	hit := p.Hits()[centre]
	if hit.CellX != 2 || hit.CellY != 1 || hit.Side != raycast.SideX {
		t.Errorf("centre hit = %+v, want cell (2,1) side X", hit.Intersection)
	}

	// Slice taller than the frame fills the whole centre column with white wall.
	for y := 0; y < proj.Height; y++ {
		if c := p.Frame().At(centre, y); c != (color.RGBA{255, 255, 255, 255}) {
			t.Fatalf("row %d = %v, want white wall", y, c)
		}
	}
	for i, d := range p.Depth() {
		if d <= 0 || d > 0.5/math.Cos(math.Pi/6)+eps {
			t.Errorf("column %d depth %v outside the room", i, d)
		}
	}
}

func TestFlatWallSideShading(t *testing.T) {
	proj := testProjection(61, 400)
	p := NewPipeline(proj, Shading{}, testMaterials, Options{})
	scene := roomScene(t)
	scene.Camera.SetAngle(math.Pi / 2) // face the south wall, a Y side

	p.Render(scene)
	centre := proj.Width / 2
	if c := p.Frame().At(centre, proj.Height/2); c != (color.RGBA{127, 127, 127, 255}) {
		t.Errorf("Y-side wall = %v, want half-bright white", c)
	}
}

func TestTexturedWallUsesMaterialStrip(t *testing.T) {
	m := mustMap(t, "11111", "10002", "11111")
	proj := testProjection(61, 40)
	p := NewPipeline(proj, Shading{}, testMaterials, Options{})
	scene := &Scene{
		Map:    m,
		Caster: raycast.NewCaster(m, 24),
		Camera: camera.NewFirstPersonCamera(1.5, 1.5, 0, math.Pi/3),
		Walls:  stripTexture{tile: 64, strips: 8, height: 64, transparentStrip: -1},
	}
	p.Render(scene)

	centre := proj.Width / 2
	// Tile 2 maps to atlas strip 1.
	if got := p.Frame().At(centre, proj.Height/2).R; got != 2 {
		t.Errorf("wall texel strip = %d, want 2", got-1)
	}
}

func TestWallTextureFollowsScene(t *testing.T) {
	proj := testProjection(61, 40)
	p := NewPipeline(proj, Shading{}, testMaterials, Options{Stages: Stages{FloorCeiling: true}, FloorIndex: 6, CeilingIndex: 7})
	scene := roomScene(t)

	flat := append([]byte(nil), p.Render(scene).Pix()...)
	scene.Walls = stripTexture{tile: 64, strips: 8, height: 64, transparentStrip: -1}
	if bytes.Equal(flat, p.Render(scene).Pix()) {
		t.Fatal("frame unchanged after the scene gained a wall texture")
	}
	centre := proj.Width / 2
	if got := p.Frame().At(centre, proj.Height/2).R; got != 1 {
		t.Errorf("wall texel strip = %d, want 0", int(got)-1)
	}

	scene.Walls = nil
	if !bytes.Equal(flat, p.Render(scene).Pix()) {
		t.Error("dropping the texture did not restore flat colours")
	}
}

func TestFloorAndCeilingStrips(t *testing.T) {
	m := mustMap(t, "1111111111", "1000000001", "1000000001", "1111111111")
	proj := testProjection(61, 100)
	p := NewPipeline(proj, Shading{CeilingShade: 1}, testMaterials, Options{
		Stages:       Stages{FloorCeiling: true},
		FloorIndex:   6,
		CeilingIndex: 7,
	})
	scene := &Scene{
		Map:    m,
		Caster: raycast.NewCaster(m, 24),
		Camera: camera.NewFirstPersonCamera(1.5, 1.5, 0, math.Pi/3),
		Walls:  stripTexture{tile: 64, strips: 8, height: 64, transparentStrip: -1},
	}
	p.Render(scene)

	centre := proj.Width / 2
	if got := p.Frame().At(centre, proj.Height-1).R; got != 7 {
		t.Errorf("bottom row strip = %d, want floor strip 6", int(got)-1)
	}
	if got := p.Frame().At(centre, 0).R; got != 8 {
		t.Errorf("top row strip = %d, want ceiling strip 7", int(got)-1)
	}
}

func TestFlatFloorAndCeilingColours(t *testing.T) {
	proj := testProjection(61, 400)
	floor := color.RGBA{10, 20, 30, 255}
	ceiling := color.RGBA{40, 50, 60, 255}
	p := NewPipeline(proj, Shading{}, testMaterials, Options{FloorColor: floor, CeilingColor: ceiling})
	m := mustMap(t, "1111111111", "1000000001", "1111111111")
	scene := &Scene{Map: m, Caster: raycast.NewCaster(m, 24), Camera: camera.NewFirstPersonCamera(1.5, 1.5, 0, math.Pi/3)}
	p.Render(scene)

	if c := p.Frame().At(30, 0); c != ceiling {
		t.Errorf("top = %v, want ceiling colour", c)
	}
	if c := p.Frame().At(30, proj.Height-1); c != floor {
		t.Errorf("bottom = %v, want floor colour", c)
	}
}

func TestParallelColumnsMatchSequential(t *testing.T) {
	m := world.DefaultMap()
	newScene := func() *Scene {
		return &Scene{
			Map:         m,
			Caster:      raycast.NewCaster(m, 24),
			Camera:      camera.NewFirstPersonCamera(2, 3, -math.Pi/4, math.Pi/3),
			Sprites:     []world.Sprite{{X: 6.5, Y: 1.5}, {X: 1.5, Y: 6.5}},
			Walls:       stripTexture{tile: 64, strips: 8, height: 64, transparentStrip: -1},
			SpriteAtlas: stripTexture{tile: 64, strips: 1, height: 64, transparentStrip: -1},
		}
	}
	opts := Options{Stages: Stages{FloorCeiling: true, Sprites: true, Minimap: true}, FloorIndex: 6, CeilingIndex: 7, MinimapScale: 2}
	shading := Shading{Fog: true, FogStart: 1, FogEnd: 10, MinBrightness: 0.2, CeilingShade: 0.5}

	seq := NewPipeline(testProjection(120, 68), shading, testMaterials, opts)
	seqFrame := append([]byte(nil), seq.Render(newScene()).Pix()...)

	pool := core.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()
	par := NewPipeline(testProjection(120, 68), shading, testMaterials, opts)
	par.SetDispatcher(pool)
	parFrame := par.Render(newScene()).Pix()

	if !bytes.Equal(seqFrame, parFrame) {
		t.Error("parallel column pass produced a different frame")
	}
	for i := range seq.Depth() {
		if seq.Depth()[i] != par.Depth()[i] {
			t.Fatalf("depth[%d] differs: %v vs %v", i, seq.Depth()[i], par.Depth()[i])
		}
	}
}

func TestMinimapStage(t *testing.T) {
	proj := testProjection(61, 40)
	p := NewPipeline(proj, Shading{}, testMaterials, Options{MinimapScale: 3})
	scene := roomScene(t)

	p.Render(scene)
	before := p.Frame().At(minimapMargin+4, minimapMargin+4)

	p.SetStages(Stages{Minimap: true})
	if !p.Stages().Minimap {
		t.Fatal("SetStages did not enable the minimap")
	}
	p.Render(scene)
	// The player marker sits at the centre cell, 1.5 tiles in at 3 px per tile.
	px := minimapMargin + 4
	if got := p.Frame().At(px, px); got == before || got.R != 255 {
		t.Errorf("player marker pixel = %v", got)
	}
}

func TestRayPastMaxDistanceDrawsFoggedSliver(t *testing.T) {
	m := mustMap(t, "111111111111", "100000000001", "111111111111")
	proj := testProjection(61, 40)
	shading := Shading{Fog: true, FogStart: 1, FogEnd: 3, MinBrightness: 0.5, CeilingShade: 1}
	opts := Options{Stages: Stages{FloorCeiling: true, Minimap: true}, FloorIndex: 6, CeilingIndex: 7, MinimapScale: 2}
	scene := &Scene{
		Map:    m,
		Caster: raycast.NewCaster(m, 3),
		Camera: camera.NewFirstPersonCamera(1.5, 1.5, 0, math.Pi/3),
	}
	centre := proj.Width / 2

	p := NewPipeline(proj, shading, testMaterials, opts)
	p.Render(scene)
	hit := p.Hits()[centre]
	if hit.Hit {
		t.Fatal("centre ray should run out before the far wall")
	}
	if d := p.Depth()[centre]; d != 3 {
		t.Errorf("centre depth = %v, want the max distance 3", d)
	}
	if h := hit.Bottom - hit.Top; h <= 0 || h >= proj.Height/2 {
		t.Errorf("sliver spans rows [%d,%d), want a thin slice", hit.Top, hit.Bottom)
	}
	if c := p.Frame().At(centre, proj.Height/2); c != (color.RGBA{127, 127, 127, 255}) {
		t.Errorf("sliver = %v, want fully fogged white", c)
	}

	// The miss has no wall tile; the textured pass must stay inside the atlas.
	scene.Walls = stripTexture{tile: 64, strips: 8, height: 64, transparentStrip: -1}
	p.Render(scene)
	if got := p.Frame().At(centre, 0); got.A != 255 {
		t.Errorf("ceiling above the sliver = %v", got)
	}
}
