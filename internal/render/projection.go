package render

import "math"

// MinDistance is the smallest distance, in tiles, used for projection.
// Anything nearer is treated as this far so slice sizes stay finite.
const MinDistance = 0.05

// Projection holds the camera-to-screen constants for one plane size.
//
// Column i of n looks along the heading plus ColumnOffset(i), with the first
// and last columns exactly at -FOV/2 and +FOV/2. ScreenX is the inverse of
// that mapping, so sprites and walls agree on where a direction lands.
type Projection struct {
	Width, Height int
	FOV           float64 // radians
	PlaneDistance float64 // pixels from the eye to the projection plane
	TileSize      float64 // world units per tile
	WallHeight    float64 // world units
	EyeHeight     float64 // world units above the floor
}

// NewProjection derives the plane distance from the width and field of view.
func NewProjection(width, height int, fov, tileSize, wallHeight, eyeHeight float64) Projection {
	return Projection{
		Width:         width,
		Height:        height,
		FOV:           fov,
		PlaneDistance: (float64(width) / 2) / math.Tan(fov/2),
		TileSize:      tileSize,
		WallHeight:    wallHeight,
		EyeHeight:     eyeHeight,
	}
}

// ColumnOffset returns the angle of column i relative to the heading.
func (p Projection) ColumnOffset(i int) float64 {
	if p.Width < 2 {
		return 0
	}
	return -p.FOV/2 + p.FOV*float64(i)/float64(p.Width-1)
}

// ScreenX maps an angular offset from the heading to a fractional column.
func (p Projection) ScreenX(offset float64) float64 {
	n := float64(p.Width - 1)
	return offset*n/p.FOV + n/2
}

// SliceHeight is the on-screen height of a wall-high object at perpendicular
// distance d tiles.
func (p Projection) SliceHeight(d float64) float64 {
	if d < MinDistance {
		d = MinDistance
	}
	return p.WallHeight / (d * p.TileSize) * p.PlaneDistance
}

// SliceTop is the first row of a slice of height h centred on the horizon.
func (p Projection) SliceTop(h float64) float64 {
	return float64(p.Height)/2 - h/2
}

// Span converts a slice height into the visible row range [top, bottom).
func (p Projection) Span(h float64) (top, bottom int) {
	t := p.SliceTop(h)
	top = max(0, int(math.Floor(t)))
	bottom = min(p.Height, int(math.Ceil(t+h)))
	return top, bottom
}

// RowDistance returns the perpendicular distance in tiles to the floor point
// seen at the centre of row. ok is false at or above the horizon.
func (p Projection) RowDistance(row int) (d float64, ok bool) {
	offset := float64(row) + 0.5 - float64(p.Height)/2
	if offset <= 0 {
		return 0, false
	}
	return p.PlaneDistance * p.EyeHeight / offset / p.TileSize, true
}
