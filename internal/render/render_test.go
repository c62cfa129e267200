package render

import (
	"image/color"
	"math"
	"os"
	"testing"

	"gridcaster/internal/config"
	"gridcaster/internal/world"
)

const eps = 1e-9

var testMaterials *world.Materials

func TestMain(m *testing.M) {
	testMaterials = world.NewMaterials(config.DefaultConfig().Materials, 0.5)
	os.Exit(m.Run())
}

// stripTexture is an atlas whose every texel in strip k has red channel k+1.
type stripTexture struct {
	tile, strips, height int
	transparentStrip     int
}

func (s stripTexture) Size() (int, int) { return s.tile * s.strips, s.height }

func (s stripTexture) Texel(x, y int) color.RGBA {
	k := x / s.tile
	if k == s.transparentStrip {
		return color.RGBA{}
	}
	return color.RGBA{R: uint8(k + 1), G: uint8(y), B: 200, A: 255}
}

func mustMap(t *testing.T, lines ...string) *world.Map {
	t.Helper()
	rows := make([][]world.Tile, len(lines))
	for y, l := range lines {
		for _, c := range l {
			rows[y] = append(rows[y], world.Tile(c-'0'))
		}
	}
	m, err := world.NewMap(rows)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func testProjection(width, height int) Projection {
	return NewProjection(width, height, math.Pi/3, 64, 64, 32)
}
