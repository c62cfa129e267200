package render

import (
	"image/color"
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/mathutil"
)

// FloorCeilingCaster fills the rows below and above a wall slice by
// projecting each screen row back onto the floor plane. The ceiling is the
// floor mirrored about the horizon.
type FloorCeilingCaster struct {
	proj         Projection
	shading      Shading
	floorIndex   int
	ceilingIndex int
	floorColor   color.RGBA
	ceilingColor color.RGBA
}

// NewFloorCeilingCaster creates the caster. floorIndex and ceilingIndex are
// tile-wide strips of the wall atlas. Rows use the flat colours whenever
// Render is given no texture.
func NewFloorCeilingCaster(proj Projection, shading Shading, floorIndex, ceilingIndex int,
	floorColor, ceilingColor color.RGBA) *FloorCeilingCaster {
	return &FloorCeilingCaster{
		proj:         proj,
		shading:      shading,
		floorIndex:   floorIndex,
		ceilingIndex: ceilingIndex,
		floorColor:   floorColor,
		ceilingColor: ceilingColor,
	}
}

// FloorPoint returns the world position seen at the centre of row along a
// column ray. ok is false for rows at or above the horizon.
func (fc *FloorCeilingCaster) FloorPoint(cam *camera.FirstPersonCamera, hit ColumnHit, row int) (x, y, dist float64, ok bool) {
	d, ok := fc.proj.RowDistance(row)
	if !ok {
		return 0, 0, 0, false
	}
	// d is perpendicular to the view plane; the ray itself is longer.
	straight := d / math.Cos(hit.Offset)
	return cam.X + hit.DirX*straight, cam.Y + hit.DirY*straight, d, true
}

// Render draws the floor below hit.Bottom and the ceiling above hit.Top in column col.
func (fc *FloorCeilingCaster) Render(f *Frame, col int, cam *camera.FirstPersonCamera, hit ColumnHit, tex Texture) {
	for row := hit.Bottom; row < fc.proj.Height; row++ {
		x, y, d, ok := fc.FloorPoint(cam, hit, row)
		if !ok {
			continue
		}
		f.Set(col, row, fc.sample(tex, fc.floorIndex, fc.floorColor, x, y, fc.shading.Brightness(d)))
	}

	for row := 0; row < hit.Top; row++ {
		mirror := fc.proj.Height - 1 - row
		x, y, d, ok := fc.FloorPoint(cam, hit, mirror)
		if !ok {
			continue
		}
		b := fc.shading.Brightness(d)
		if tex != nil {
			b *= fc.shading.CeilingShade
		}
		f.Set(col, row, fc.sample(tex, fc.ceilingIndex, fc.ceilingColor, x, y, b))
	}
}

func (fc *FloorCeilingCaster) sample(tex Texture, index int, flat color.RGBA, x, y, brightness float64) color.RGBA {
	if tex == nil {
		return Shade(flat, brightness)
	}
	texW, texH := tex.Size()
	texX := TextureColumn(mathutil.Frac(x), index, int(fc.proj.TileSize), texW)
	texY := mathutil.IntClamp(int(mathutil.Frac(y)*float64(texH)), 0, texH-1)
	return Shade(tex.Texel(texX, texY), brightness)
}
