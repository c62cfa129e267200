package render

import (
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
	"gridcaster/internal/world"
)

// ColumnHit is what the wall pass learned about one screen column. The floor
// pass and the minimap read it after the wall is drawn.
type ColumnHit struct {
	raycast.Intersection
	Offset     float64 // ray angle relative to the heading
	DirX, DirY float64 // unit ray direction
	Top        int     // first wall row
	Bottom     int     // one past the last wall row
}

// ColumnRenderer casts one ray per column and draws the wall slice it hits.
type ColumnRenderer struct {
	proj      Projection
	shading   Shading
	materials *world.Materials
}

// NewColumnRenderer creates a wall renderer.
func NewColumnRenderer(proj Projection, shading Shading, materials *world.Materials) *ColumnRenderer {
	return &ColumnRenderer{proj: proj, shading: shading, materials: materials}
}

// Render casts column col along (dirX, dirY), records the wall distance in
// depth and draws the slice. A nil walls texture draws the material's flat
// colour instead.
func (cr *ColumnRenderer) Render(f *Frame, depth DepthBuffer, col int, cam *camera.FirstPersonCamera,
	caster *raycast.Caster, dirX, dirY float64, walls Texture) ColumnHit {
	fwdX, fwdY := cam.GetForward()
	in := caster.Cast(cam.X, cam.Y, dirX, dirY, fwdX, fwdY)
	depth[col] = in.Distance

	h := cr.proj.SliceHeight(in.Distance)
	top, bottom := cr.proj.Span(h)
	hit := ColumnHit{
		Intersection: in,
		Offset:       cr.proj.ColumnOffset(col),
		DirX:         dirX,
		DirY:         dirY,
		Top:          top,
		Bottom:       bottom,
	}

	mat := cr.materials.Lookup(in.Tile)
	brightness := cr.shading.Brightness(in.Distance)
	if in.Side == raycast.SideY {
		brightness *= mat.SideShade
	}

	if walls == nil {
		f.FillColumn(col, top, bottom, Shade(mat.Color, brightness))
		return hit
	}

	texW, texH := walls.Size()
	texX := TextureColumn(in.TextureU(), mat.AtlasIndex, int(cr.proj.TileSize), texW)
	sliceTop := cr.proj.SliceTop(h)
	for y := top; y < bottom; y++ {
		v := (float64(y) + 0.5 - sliceTop) / h
		texY := mathutil.IntClamp(int(v*float64(texH)), 0, texH-1)
		f.Set(col, y, Shade(walls.Texel(texX, texY), brightness))
	}
	return hit
}

// TextureColumn picks the atlas column for a hit at fraction u along a wall
// face, inside the tile-wide strip atlasIndex. The result is always inside
// an atlas of the given width.
func TextureColumn(u float64, atlasIndex, tileSize, atlasWidth int) int {
	x := int(math.Floor(u*float64(tileSize))) + atlasIndex*tileSize
	return mathutil.IntClamp(x, 0, atlasWidth-1)
}
