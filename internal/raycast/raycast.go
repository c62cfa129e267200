// Package raycast finds where rays leave the empty part of a tile grid.
//
// Rays are traversed with a DDA walk: at each step the ray advances to the
// nearer of the next vertical or horizontal grid line, so every cell the ray
// passes through is visited exactly once and no wall can be skipped.
package raycast

import (
	"math"

	"gridcaster/internal/world"
)

// Side tells which family of grid lines a ray crossed to enter the hit cell.
type Side int

const (
	// SideX means the ray stepped along X and hit a face parallel to the Y axis.
	SideX Side = iota
	// SideY means the ray stepped along Y and hit a face parallel to the X axis.
	SideY
)

// noCrossing stands in for 1/0 when a ray runs parallel to an axis.
const noCrossing = 1e30

// Grid is the part of the world map the caster needs.
type Grid interface {
	IsSolid(x, y int) bool
	TileAt(x, y int) world.Tile
}

// Intersection is the result of one cast.
type Intersection struct {
	CellX, CellY int     // hit cell, or the last cell visited on a miss
	HitX, HitY   float64 // exact point where the ray met the wall face
	Distance     float64 // perpendicular distance to the view plane
	RawDistance  float64 // distance along the ray
	Side         Side
	Tile         world.Tile
	Hit          bool
}

// TextureU returns the hit position along the wall face in [0, 1).
func (in Intersection) TextureU() float64 {
	var u float64
	if in.Side == SideX {
		u = in.HitY
	} else {
		u = in.HitX
	}
	return u - math.Floor(u)
}

// Crossing is one grid line crossing reported by Traverse.
type Crossing struct {
	CellX, CellY int
	Distance     float64
	Side         Side
}

// Caster casts rays against a grid up to a maximum length in tile units.
type Caster struct {
	grid        Grid
	maxDistance float64
}

// NewCaster creates a caster over grid.
func NewCaster(grid Grid, maxDistance float64) *Caster {
	return &Caster{grid: grid, maxDistance: maxDistance}
}

// MaxDistance is the ray length limit, also the distance of a miss.
func (c *Caster) MaxDistance() float64 {
	return c.maxDistance
}

// Cast traces a ray from (ox, oy) along (dirX, dirY) and corrects the
// distance against the viewer's forward direction (fwdX, fwdY). Neither
// vector needs to be unit length. A zero ray direction yields a miss.
func (c *Caster) Cast(ox, oy, dirX, dirY, fwdX, fwdY float64) Intersection {
	length := math.Hypot(dirX, dirY)
	if length < 1e-12 {
		return c.miss(ox, oy, int(math.Floor(ox)), int(math.Floor(oy)), SideX)
	}
	dx, dy := dirX/length, dirY/length

	cos := 1.0
	if fl := math.Hypot(fwdX, fwdY); fl >= 1e-12 {
		cos = (dx*fwdX + dy*fwdY) / fl
	}

	in := c.traverse(ox, oy, dx, dy, nil)
	if in.Hit {
		in.Distance = in.RawDistance * cos
	}
	return in
}

// CastAngle is Cast with absolute angles: rayAngle for the ray and viewAngle
// for the viewer heading.
func (c *Caster) CastAngle(ox, oy, rayAngle, viewAngle float64) Intersection {
	return c.Cast(ox, oy, math.Cos(rayAngle), math.Sin(rayAngle), math.Cos(viewAngle), math.Sin(viewAngle))
}

// Traverse walks a ray and reports every grid line crossing, including the
// one into the hit cell. The returned Intersection carries the raw distance
// in both distance fields.
func (c *Caster) Traverse(ox, oy, dirX, dirY float64, visit func(Crossing)) Intersection {
	length := math.Hypot(dirX, dirY)
	if length < 1e-12 {
		return c.miss(ox, oy, int(math.Floor(ox)), int(math.Floor(oy)), SideX)
	}
	in := c.traverse(ox, oy, dirX/length, dirY/length, visit)
	in.Distance = in.RawDistance
	return in
}

// traverse expects a unit direction.
func (c *Caster) traverse(ox, oy, dx, dy float64, visit func(Crossing)) Intersection {
	mapX := int(math.Floor(ox))
	mapY := int(math.Floor(oy))

	// Distance along the ray between successive vertical / horizontal lines.
	deltaX, deltaY := noCrossing, noCrossing
	if math.Abs(dx) > 1e-12 {
		deltaX = math.Abs(1 / dx)
	}
	if math.Abs(dy) > 1e-12 {
		deltaY = math.Abs(1 / dy)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if dx < 0 {
		stepX = -1
		sideDistX = (ox - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1 - ox) * deltaX
	}
	if dy < 0 {
		stepY = -1
		sideDistY = (oy - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1 - oy) * deltaY
	}

	side := SideX
	for {
		var dist float64
		if sideDistX < sideDistY {
			dist = sideDistX
			sideDistX += deltaX
			mapX += stepX
			side = SideX
		} else {
			dist = sideDistY
			sideDistY += deltaY
			mapY += stepY
			side = SideY
		}

		if dist > c.maxDistance {
			return c.miss(ox+dx*c.maxDistance, oy+dy*c.maxDistance, mapX, mapY, side)
		}
		if visit != nil {
			visit(Crossing{CellX: mapX, CellY: mapY, Distance: dist, Side: side})
		}
		if c.grid.IsSolid(mapX, mapY) {
			return Intersection{
				CellX:       mapX,
				CellY:       mapY,
				HitX:        ox + dx*dist,
				HitY:        oy + dy*dist,
				RawDistance: dist,
				Side:        side,
				Tile:        c.grid.TileAt(mapX, mapY),
				Hit:         true,
			}
		}
	}
}

// miss builds the sentinel result: the ray ran out at (hx, hy).
func (c *Caster) miss(hx, hy float64, cellX, cellY int, side Side) Intersection {
	return Intersection{
		CellX:       cellX,
		CellY:       cellY,
		HitX:        hx,
		HitY:        hy,
		Distance:    c.maxDistance,
		RawDistance: c.maxDistance,
		Side:        side,
		Tile:        world.Empty,
	}
}
