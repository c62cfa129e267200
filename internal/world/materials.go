package world

import (
	"image/color"

	"gridcaster/internal/config"
	"gridcaster/internal/mathutil"
)

// Material describes how walls of one tile id are drawn.
type Material struct {
	Name       string
	AtlasIndex int        // tile-sized strip of the wall atlas
	Color      color.RGBA // flat-colour mode
	SideShade  float64    // brightness of Y-side faces
}

// Materials maps tile ids to materials. Tiles without an entry fall back to
// atlas strip id-1 drawn in white.
type Materials struct {
	byTile    map[Tile]Material
	sideShade float64
}

// NewMaterials builds the registry from the config materials table.
func NewMaterials(table map[int]config.MaterialConfig, sideShade float64) *Materials {
	ms := &Materials{
		byTile:    make(map[Tile]Material, len(table)),
		sideShade: sideShade,
	}
	for id, mc := range table {
		shade := mc.SideShade
		if shade <= 0 {
			shade = sideShade
		}
		ms.byTile[Tile(id)] = Material{
			Name:       mc.Name,
			AtlasIndex: mc.AtlasIndex,
			Color:      mathutil.RGB(mc.Color),
			SideShade:  shade,
		}
	}
	return ms
}

// Lookup returns the material for a tile.
func (ms *Materials) Lookup(t Tile) Material {
	if m, ok := ms.byTile[t]; ok {
		return m
	}
	index := int(t) - 1
	if index < 0 {
		index = 0
	}
	return Material{
		AtlasIndex: index,
		Color:      color.RGBA{255, 255, 255, 255},
		SideShade:  ms.sideShade,
	}
}

// Len returns the number of configured materials.
func (ms *Materials) Len() int {
	return len(ms.byTile)
}
