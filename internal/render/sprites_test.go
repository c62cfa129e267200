package render

import (
	"math"
	"testing"

	"gridcaster/internal/camera"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

func TestProjectBehindViewerIsSkipped(t *testing.T) {
	sc := NewSpriteCompositor(testProjection(61, 40), Shading{})
	cam := camera.NewFirstPersonCamera(5, 5, 0, math.Pi/3)

	if _, ok := sc.Project(cam, world.Sprite{X: 3, Y: 5}); ok {
		t.Error("sprite directly behind should be skipped")
	}
	if _, ok := sc.Project(cam, world.Sprite{X: 4.9, Y: 9}); ok {
		t.Error("sprite just behind the side should be skipped")
	}
	if _, ok := sc.Project(cam, world.Sprite{X: 10, Y: 5 + 10*math.Sin(math.Pi/3)}); ok {
		t.Error("sprite outside the field of view should be skipped")
	}
	ps, ok := sc.Project(cam, world.Sprite{X: 8, Y: 5})
	if !ok {
		t.Fatal("sprite straight ahead should be visible")
	}
	if math.Abs(ps.ScreenX-30) > eps || math.Abs(ps.Corrected-3) > eps {
		t.Errorf("ahead sprite: screenX %v corrected %v", ps.ScreenX, ps.Corrected)
	}
}

func TestProjectWrapsAcrossZero(t *testing.T) {
	proj := testProjection(61, 40)
	sc := NewSpriteCompositor(proj, Shading{})
	cam := camera.NewFirstPersonCamera(0, 0, mathutil.Radians(350), proj.FOV)

	target := mathutil.Radians(10)
	ps, ok := sc.Project(cam, world.Sprite{X: 4 * math.Cos(target), Y: 4 * math.Sin(target)})
	if !ok {
		t.Fatal("sprite 20° inside the view was skipped")
	}
	want := proj.ScreenX(mathutil.Radians(20))
	if math.Abs(ps.ScreenX-want) > 1e-9 {
		t.Errorf("screenX = %v, want %v (offset +20°)", ps.ScreenX, want)
	}
	if ps.ScreenX <= 30 {
		t.Errorf("screenX %v should be right of centre", ps.ScreenX)
	}
	if math.Abs(ps.Corrected-4*math.Cos(mathutil.Radians(20))) > 1e-9 {
		t.Errorf("corrected = %v", ps.Corrected)
	}
}

func TestProjectClampsNearDistance(t *testing.T) {
	sc := NewSpriteCompositor(testProjection(61, 40), Shading{})
	cam := camera.NewFirstPersonCamera(5, 5, 0, math.Pi/3)
	ps, ok := sc.Project(cam, world.Sprite{X: 5.001, Y: 5})
	if !ok {
		t.Fatal("sprite on top of the viewer should still draw")
	}
	if ps.Corrected != MinDistance {
		t.Errorf("corrected = %v, want MinDistance", ps.Corrected)
	}
}

func TestOrderFarToNear(t *testing.T) {
	sc := NewSpriteCompositor(testProjection(61, 40), Shading{})
	cam := camera.NewFirstPersonCamera(0, 0, 0, math.Pi/3)
	sprites := []world.Sprite{{X: 2, Y: 0, Texture: 0}, {X: 9, Y: 0.5, Texture: 1}, {X: 5, Y: -0.5, Texture: 2}, {X: -3, Y: 0, Texture: 3}}

	got := sc.Order(cam, sprites)
	if len(got) != 3 {
		t.Fatalf("visible = %d, want 3", len(got))
	}
	for i, want := range []int{1, 2, 0} {
		if got[i].Sprite.Texture != want {
			t.Errorf("order[%d] = texture %d, want %d", i, got[i].Sprite.Texture, want)
		}
	}
}

func TestCompositeRespectsDepth(t *testing.T) {
	proj := testProjection(61, 40)
	sc := NewSpriteCompositor(proj, Shading{})
	cam := camera.NewFirstPersonCamera(0, 0, 0, proj.FOV)
	f := NewFrame(proj.Width, proj.Height)

	depth := NewDepthBuffer(proj.Width)
	for i := range depth {
		if i < 30 {
			depth[i] = 1 // wall in front of the sprite
		} else {
			depth[i] = 20
		}
	}

	atlas := stripTexture{tile: 64, strips: 2, height: 64, transparentStrip: -1}
	sc.Composite(f, depth, cam, []world.Sprite{{X: 3, Y: 0, Texture: 1}}, atlas)

	ps, _ := sc.Project(cam, world.Sprite{X: 3, Y: 0})
	mid := proj.Height / 2
	for col := ps.ColStart; col < ps.ColEnd; col++ {
		drawn := f.At(col, mid).R == 2
		if want := depth.Visible(col, ps.Corrected); drawn != want {
			t.Errorf("column %d drawn=%v, want %v", col, drawn, want)
		}
	}
}

func TestCompositeSkipsTransparentTexels(t *testing.T) {
	proj := testProjection(61, 40)
	sc := NewSpriteCompositor(proj, Shading{})
	cam := camera.NewFirstPersonCamera(0, 0, 0, proj.FOV)
	f := NewFrame(proj.Width, proj.Height)
	depth := NewDepthBuffer(proj.Width)
	depth.Reset(50)

	atlas := stripTexture{tile: 64, strips: 1, height: 64, transparentStrip: 0}
	sc.Composite(f, depth, cam, []world.Sprite{{X: 3, Y: 0}}, atlas)
	for i, b := range f.Pix() {
		if b != 0 {
			t.Fatalf("transparent sprite wrote byte %d", i)
		}
	}
}
