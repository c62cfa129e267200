package world

import (
	"errors"
	"fmt"
)

// Tile is a grid cell. Zero is walkable floor, anything else is solid and
// selects a material.
type Tile int

const (
	Empty Tile = 0
	// OutOfBounds is what TileAt reports outside the grid. It is solid.
	OutOfBounds Tile = -1
)

var (
	ErrEmptyMap       = errors.New("map has no rows")
	ErrRaggedMap      = errors.New("map rows have different widths")
	ErrBorderNotSolid = errors.New("map border is not solid")
)

// Map is a fixed rectangular grid stored row-major. It is never mutated
// after construction, so it is safe to read from several goroutines.
type Map struct {
	width  int
	height int
	tiles  []Tile
}

// NewMap copies rows into a Map. Every row must have the same width and
// every border cell must be solid.
func NewMap(rows [][]Tile) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(rows[0])
	m := &Map{width: width, height: len(rows), tiles: make([]Tile, 0, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedMap, y, len(row), width)
		}
		m.tiles = append(m.tiles, row...)
	}
	for x := 0; x < m.width; x++ {
		if !m.IsSolid(x, 0) || !m.IsSolid(x, m.height-1) {
			return nil, fmt.Errorf("%w: column %d", ErrBorderNotSolid, x)
		}
	}
	for y := 0; y < m.height; y++ {
		if !m.IsSolid(0, y) || !m.IsSolid(m.width-1, y) {
			return nil, fmt.Errorf("%w: row %d", ErrBorderNotSolid, y)
		}
	}
	return m, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) is a cell of the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// TileAt returns the tile at (x, y), or OutOfBounds.
func (m *Map) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) {
		return OutOfBounds
	}
	return m.tiles[y*m.width+x]
}

// IsSolid reports whether (x, y) blocks rays and movement. Cells outside the
// grid are solid.
func (m *Map) IsSolid(x, y int) bool {
	return m.TileAt(x, y) != Empty
}
