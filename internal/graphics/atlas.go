package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"gridcaster/internal/config"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Atlas is a decoded texture sheet made of tile-wide vertical strips.
// It satisfies render.Texture.
type Atlas struct {
	img *image.RGBA
}

// NewAtlasFromImage copies any image into an RGBA atlas.
func NewAtlasFromImage(src image.Image) *Atlas {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Atlas{img: dst}
}

// LoadAtlas decodes a PNG or BMP file.
func LoadAtlas(path string) (*Atlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("atlas %s (%s) has no pixels", path, format)
	}
	return NewAtlasFromImage(img), nil
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (int, int) {
	return a.img.Rect.Dx(), a.img.Rect.Dy()
}

// Texel returns the pixel at (x, y). Coordinates outside the atlas are clamped.
func (a *Atlas) Texel(x, y int) color.RGBA {
	w, h := a.Size()
	x = min(max(x, 0), w-1)
	y = min(max(y, 0), h-1)
	i := y*a.img.Stride + x*4
	p := a.img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Image exposes the underlying pixels.
func (a *Atlas) Image() *image.RGBA {
	return a.img
}

// LoadAtlases resolves the wall and sprite atlases named in the config.
// Empty paths get procedural placeholders, with spriteFrames frames for the
// sprite atlas. A named file that cannot be loaded is an error.
func LoadAtlases(cfg *config.Config, spriteFrames int) (walls, sprites *Atlas, err error) {
	tile := cfg.World.TileSize
	if path := cfg.Graphics.Atlas.WallAtlas; path != "" {
		if walls, err = LoadAtlas(path); err != nil {
			return nil, nil, err
		}
	} else {
		strips := max(cfg.Graphics.Atlas.FloorIndex, cfg.Graphics.Atlas.CeilingIndex) + 1
		walls = PlaceholderWallAtlas(tile, strips, cfg.Graphics.Atlas.FloorIndex, cfg.Graphics.Atlas.CeilingIndex)
	}

	if path := cfg.Graphics.Atlas.SpriteAtlas; path != "" {
		if sprites, err = LoadAtlas(path); err != nil {
			return nil, nil, err
		}
	} else {
		sprites = PlaceholderSpriteAtlas(tile, max(1, spriteFrames))
	}
	return walls, sprites, nil
}
