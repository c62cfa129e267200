package raycast

import (
	"math"
	"testing"

	"gridcaster/internal/world"
)

const eps = 1e-9

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

// openGrid never blocks a ray.
type openGrid struct{}

func (openGrid) IsSolid(x, y int) bool      { return false }
func (openGrid) TileAt(x, y int) world.Tile { return world.Empty }

func TestCastAxisAligned(t *testing.T) {
	c := NewCaster(mustMap(t, "121", "101", "131"), 24)

	tests := []struct {
		name     string
		angle    float64
		wantCell [2]int
		wantSide Side
		wantTile world.Tile
		wantHitX float64
		wantHitY float64
	}{
		{"east", 0, [2]int{2, 1}, SideX, 1, 2, 1.5},
		{"south", math.Pi / 2, [2]int{1, 2}, SideY, 3, 1.5, 2},
		{"west", math.Pi, [2]int{0, 1}, SideX, 1, 1, 1.5},
		{"north", 3 * math.Pi / 2, [2]int{1, 0}, SideY, 2, 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := c.CastAngle(1.5, 1.5, tt.angle, tt.angle)
			if !in.Hit {
				t.Fatal("expected a hit")
			}
			if in.CellX != tt.wantCell[0] || in.CellY != tt.wantCell[1] {
				t.Errorf("cell = (%d,%d), want %v", in.CellX, in.CellY, tt.wantCell)
			}
			if in.Side != tt.wantSide || in.Tile != tt.wantTile {
				t.Errorf("side %v tile %d, want side %v tile %d", in.Side, in.Tile, tt.wantSide, tt.wantTile)
			}
			if math.Abs(in.Distance-0.5) > eps || math.Abs(in.RawDistance-0.5) > eps {
				t.Errorf("distance = %v raw %v, want 0.5", in.Distance, in.RawDistance)
			}
			if math.Abs(in.HitX-tt.wantHitX) > eps || math.Abs(in.HitY-tt.wantHitY) > eps {
				t.Errorf("hit = (%v,%v), want (%v,%v)", in.HitX, in.HitY, tt.wantHitX, tt.wantHitY)
			}
		})
	}
}

func TestTraverseMonotonicAndEndsSolid(t *testing.T) {
	m := world.DefaultMap()
	c := NewCaster(m, 24)
	origins := [][2]float64{{2, 3}, {7.3, 8.9}, {14.5, 14.5}, {1.01, 1.99}}

	for _, o := range origins {
		for i := 0; i < 720; i++ {
			angle := float64(i) * math.Pi / 360
			prev := -1.0
			in := c.Traverse(o[0], o[1], math.Cos(angle), math.Sin(angle), func(cr Crossing) {
				if cr.Distance < prev-eps {
					t.Fatalf("origin %v angle %v: crossing distance %v after %v", o, angle, cr.Distance, prev)
				}
				prev = cr.Distance
			})
			if !in.Hit {
				t.Fatalf("origin %v angle %v: enclosed map produced a miss", o, angle)
			}
			if !m.IsSolid(in.CellX, in.CellY) {
				t.Fatalf("origin %v angle %v: final cell (%d,%d) is not solid", o, angle, in.CellX, in.CellY)
			}
			if math.Abs(in.RawDistance-prev) > eps {
				t.Fatalf("final distance %v does not match last crossing %v", in.RawDistance, prev)
			}
		}
	}
}

func TestAngleAndVectorConventionsAgree(t *testing.T) {
	c := NewCaster(world.DefaultMap(), 24)
	ox, oy := 2.0, 3.0
	view := -math.Pi / 4
	fov := math.Pi / 3

	for i := 0; i <= 40; i++ {
		offset := -fov/2 + fov*float64(i)/40
		rayAngle := view + offset

		byAngle := c.CastAngle(ox, oy, rayAngle, view)
		// Deliberately non-unit vectors.
		byVector := c.Cast(ox, oy, 3*math.Cos(rayAngle), 3*math.Sin(rayAngle), 0.5*math.Cos(view), 0.5*math.Sin(view))

		want := byAngle.RawDistance * math.Cos(rayAngle-view)
		if math.Abs(byAngle.Distance-want) > eps {
			t.Errorf("offset %v: angle distance %v, want raw·cos = %v", offset, byAngle.Distance, want)
		}
		if math.Abs(byAngle.Distance-byVector.Distance) > 1e-9 {
			t.Errorf("offset %v: angle %v vs vector %v", offset, byAngle.Distance, byVector.Distance)
		}
		if byAngle.CellX != byVector.CellX || byAngle.CellY != byVector.CellY || byAngle.Side != byVector.Side {
			t.Errorf("offset %v: conventions hit different cells", offset)
		}
	}
}

func TestFlatWallHasNoFisheye(t *testing.T) {
	// Facing a straight wall, every ray in the view reports the same
	// perpendicular distance.
	m := mustMap(t,
		"1111111111",
		"1000000001",
		"1000000001",
		"1000000001",
		"1000000001",
		"1000000001",
		"1000000001",
		"1111111111",
	)
	c := NewCaster(m, 24)
	ox, oy := 2.5, 4.0
	fov := math.Pi / 3
	for i := 0; i <= 20; i++ {
		offset := -fov/2 + fov*float64(i)/20
		in := c.CastAngle(ox, oy, offset, 0)
		if in.CellX != 9 {
			continue
		}
		if math.Abs(in.Distance-6.5) > 1e-9 {
			t.Errorf("offset %v: distance %v, want 6.5", offset, in.Distance)
		}
	}
}

func TestMissReturnsSentinel(t *testing.T) {
	c := NewCaster(openGrid{}, 12)
	in := c.CastAngle(0.5, 0.5, 0.3, 0.3)
	if in.Hit {
		t.Fatal("open grid should never be hit")
	}
	if in.Distance != 12 || in.RawDistance != 12 {
		t.Errorf("miss distance = %v/%v, want 12", in.Distance, in.RawDistance)
	}
	if math.IsInf(in.Distance, 0) || math.IsNaN(in.Distance) {
		t.Error("miss distance must be finite")
	}
}

func TestZeroDirectionIsMiss(t *testing.T) {
	c := NewCaster(world.DefaultMap(), 24)
	in := c.Cast(2, 3, 0, 0, 1, 0)
	if in.Hit || in.Distance != 24 {
		t.Errorf("zero direction = %+v, want sentinel miss", in)
	}
}

func TestOutOfRangeIsSolid(t *testing.T) {
	// A viewer standing outside the grid still terminates immediately.
	c := NewCaster(mustMap(t, "111", "101", "111"), 24)
	in := c.CastAngle(-3.5, 1.5, 0, 0)
	if !in.Hit || in.Tile != world.OutOfBounds {
		t.Errorf("outside cast = %+v, want hit on OutOfBounds", in)
	}
}

func TestTextureU(t *testing.T) {
	tests := []struct {
		in   Intersection
		want float64
	}{
		{Intersection{Side: SideX, HitX: 3, HitY: 4.25}, 0.25},
		{Intersection{Side: SideY, HitX: 7.75, HitY: 2}, 0.75},
	}
	for _, tt := range tests {
		if got := tt.in.TextureU(); math.Abs(got-tt.want) > eps {
			t.Errorf("TextureU(%+v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
