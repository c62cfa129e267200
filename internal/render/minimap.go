package render

import (
	"image"
	"image/color"
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/world"

	"golang.org/x/image/draw"
)

var (
	minimapFloor  = color.RGBA{0, 0, 0, 160}
	minimapRay    = color.RGBA{255, 220, 0, 255}
	minimapPlayer = color.RGBA{255, 40, 40, 255}
)

// minimapMargin is the gap between the overlay and the frame corner.
const minimapMargin = 2

// Minimap is a top-down overlay of the grid with the viewer and the points
// where this frame's rays hit.
type Minimap struct {
	scale     int
	materials *world.Materials
	img       *image.RGBA
}

// NewMinimap creates an overlay drawing scale pixels per tile.
func NewMinimap(scale int, materials *world.Materials) *Minimap {
	return &Minimap{scale: max(1, scale), materials: materials}
}

// Render draws the overlay into the top-left corner of f.
func (mm *Minimap) Render(f *Frame, m *world.Map, cam *camera.FirstPersonCamera, hits []ColumnHit) {
	w, h := m.Width()*mm.scale, m.Height()*mm.scale
	if mm.img == nil || mm.img.Bounds().Dx() != w || mm.img.Bounds().Dy() != h {
		mm.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for ty := 0; ty < m.Height(); ty++ {
		for tx := 0; tx < m.Width(); tx++ {
			c := minimapFloor
			if t := m.TileAt(tx, ty); t != world.Empty {
				c = Shade(mm.materials.Lookup(t).Color, 0.7)
				c.A = 220
			}
			draw.Draw(mm.img, image.Rect(tx*mm.scale, ty*mm.scale, (tx+1)*mm.scale, (ty+1)*mm.scale),
				image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	s := float64(mm.scale)
	for _, hit := range hits {
		if hit.Hit {
			mm.img.SetRGBA(int(hit.HitX*s), int(hit.HitY*s), minimapRay)
		}
	}

	px, py := int(cam.X*s), int(cam.Y*s)
	fx, fy := cam.GetForward()
	mm.line(px, py, int(cam.X*s+fx*s*1.5), int(cam.Y*s+fy*s*1.5), minimapPlayer)
	draw.Draw(mm.img, image.Rect(px-1, py-1, px+2, py+2), image.NewUniform(minimapPlayer), image.Point{}, draw.Src)

	dst := image.Rect(minimapMargin, minimapMargin, minimapMargin+w, minimapMargin+h)
	draw.Draw(f.Image(), dst, mm.img, image.Point{}, draw.Over)
}

// line plots a straight segment with a fixed number of samples.
func (mm *Minimap) line(x0, y0, x1, y1 int, c color.RGBA) {
	steps := int(math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))))
	if steps == 0 {
		mm.img.SetRGBA(x0, y0, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mm.img.SetRGBA(x0+int(math.Round(t*float64(x1-x0))), y0+int(math.Round(t*float64(y1-y0))), c)
	}
}
