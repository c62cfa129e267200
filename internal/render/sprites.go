package render

import (
	"math"
	"sort"

	"gridcaster/internal/camera"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/world"
)

// ProjectedSprite is a sprite placed on screen for the current frame.
type ProjectedSprite struct {
	Sprite    world.Sprite
	Distance  float64 // straight-line distance, used for ordering
	Corrected float64 // perpendicular distance, used for size and depth tests
	ScreenX   float64 // fractional column of the sprite centre
	Size      float64 // width and height in pixels
	Left      float64 // fractional column of the left edge
	Top       float64 // fractional row of the top edge
	ColStart  int     // first visible column
	ColEnd    int     // one past the last visible column
}

// SpriteCompositor draws billboards far to near, column by column, against
// the depth buffer the wall pass left behind.
type SpriteCompositor struct {
	proj    Projection
	shading Shading
	visible []ProjectedSprite
}

// NewSpriteCompositor creates a compositor for one projection.
func NewSpriteCompositor(proj Projection, shading Shading) *SpriteCompositor {
	return &SpriteCompositor{proj: proj, shading: shading}
}

// Project places one sprite. ok is false when the sprite is behind the
// viewer or entirely outside the columns.
func (sc *SpriteCompositor) Project(cam *camera.FirstPersonCamera, s world.Sprite) (ProjectedSprite, bool) {
	dx, dy := s.X-cam.X, s.Y-cam.Y
	dist := math.Hypot(dx, dy)
	offset := mathutil.WrapPi(math.Atan2(dy, dx) - cam.Angle)

	corrected := dist * math.Cos(offset)
	if corrected <= 0 {
		return ProjectedSprite{}, false
	}
	if corrected < MinDistance {
		corrected = MinDistance
	}

	size := sc.proj.SliceHeight(corrected)
	screenX := sc.proj.ScreenX(offset)
	left := screenX - size/2
	colStart := max(0, int(math.Floor(left)))
	colEnd := min(sc.proj.Width, int(math.Ceil(left+size)))
	if colStart >= colEnd {
		return ProjectedSprite{}, false
	}

	return ProjectedSprite{
		Sprite:    s,
		Distance:  dist,
		Corrected: corrected,
		ScreenX:   screenX,
		Size:      size,
		Left:      left,
		Top:       sc.proj.SliceTop(size),
		ColStart:  colStart,
		ColEnd:    colEnd,
	}, true
}

// Order projects every sprite and returns the visible ones sorted far to
// near. The slice is reused by the next call.
func (sc *SpriteCompositor) Order(cam *camera.FirstPersonCamera, sprites []world.Sprite) []ProjectedSprite {
	sc.visible = sc.visible[:0]
	for _, s := range sprites {
		if ps, ok := sc.Project(cam, s); ok {
			sc.visible = append(sc.visible, ps)
		}
	}
	sort.SliceStable(sc.visible, func(i, j int) bool {
		return sc.visible[i].Distance > sc.visible[j].Distance
	})
	return sc.visible
}

// Composite draws all sprites. A sprite column is drawn only where its
// corrected distance is strictly less than the wall depth, and fully
// transparent texels are skipped. atlas holds one tile-wide frame per
// sprite texture.
func (sc *SpriteCompositor) Composite(f *Frame, depth DepthBuffer, cam *camera.FirstPersonCamera, sprites []world.Sprite, atlas Texture) {
	if atlas == nil {
		return
	}
	texW, texH := atlas.Size()
	tile := int(sc.proj.TileSize)

	for _, ps := range sc.Order(cam, sprites) {
		brightness := sc.shading.Brightness(ps.Corrected)
		rowStart := max(0, int(math.Floor(ps.Top)))
		rowEnd := min(sc.proj.Height, int(math.Ceil(ps.Top+ps.Size)))

		for col := ps.ColStart; col < ps.ColEnd; col++ {
			if !depth.Visible(col, ps.Corrected) {
				continue
			}
			u := (float64(col) + 0.5 - ps.Left) / ps.Size
			texX := TextureColumn(mathutil.Clamp(u, 0, 0.999999), ps.Sprite.Texture, tile, texW)
			for row := rowStart; row < rowEnd; row++ {
				v := (float64(row) + 0.5 - ps.Top) / ps.Size
				texY := mathutil.IntClamp(int(v*float64(texH)), 0, texH-1)
				c := atlas.Texel(texX, texY)
				if c.A == 0 {
					continue
				}
				f.Set(col, row, Shade(c, brightness))
			}
		}
	}
}
