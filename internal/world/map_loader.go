package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MapData contains the loaded map information
type MapData struct {
	Map     *Map
	Sprites []Sprite
	// StartX and StartY are the centre of the '+' cell, or -1 when the map
	// has no start marker.
	StartX float64
	StartY float64
}

// HasStart reports whether the map file placed the viewer.
func (md *MapData) HasStart() bool {
	return md.StartX >= 0 && md.StartY >= 0
}

// LoadMap loads a map from the specified file path.
//
// A map is one row per line. Rows are either a run of single characters
// ("1000P01") or separated tokens ("1, 0, 12, 0"). Digits are tile ids,
// '.' is empty floor, '+' marks the viewer start and lowercase letters place
// a sprite whose texture is the letter's offset from 'a'. Empty lines and
// lines starting with '#' are skipped.
func LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	data, err := ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", mapPath, err)
	}
	return data, nil
}

// ParseMap reads the map text format from r.
func ParseMap(r io.Reader) (*MapData, error) {
	data := &MapData{StartX: -1, StartY: -1}
	var rows [][]Tile

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		// Skip empty lines and comment lines (lines starting with #)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		y := len(rows)
		tokens := splitTokens(line)
		row := make([]Tile, len(tokens))
		for x, tok := range tokens {
			tile, err := parseToken(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			row[x] = tile
			switch {
			case tok == "+":
				data.StartX = float64(x) + 0.5
				data.StartY = float64(y) + 0.5
			case isSpriteToken(tok):
				data.Sprites = append(data.Sprites, Sprite{
					X:       float64(x) + 0.5,
					Y:       float64(y) + 0.5,
					Texture: int(tok[0] - 'a'),
				})
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	m, err := NewMap(rows)
	if err != nil {
		return nil, err
	}
	data.Map = m
	return data, nil
}

func splitTokens(line string) []string {
	if strings.ContainsAny(line, " ,\t") {
		return strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		})
	}
	tokens := make([]string, 0, len(line))
	for _, r := range line {
		tokens = append(tokens, string(r))
	}
	return tokens
}

func isSpriteToken(tok string) bool {
	return len(tok) == 1 && tok[0] >= 'a' && tok[0] <= 'z'
}

func parseToken(tok string) (Tile, error) {
	if tok == "." || tok == "+" || isSpriteToken(tok) {
		return Empty, nil
	}
	id, err := strconv.Atoi(tok)
	if err != nil || id < 0 {
		return Empty, fmt.Errorf("unknown map symbol %q", tok)
	}
	return Tile(id), nil
}
