package world

import (
	"fmt"

	"gridcaster/internal/config"
)

// LoadFromConfig resolves the level named by the config. An empty map_file
// selects the built-in level. Sprites and the start position come from the
// map file when it defines them and from the config otherwise.
func LoadFromConfig(cfg *config.Config) (*MapData, error) {
	var data *MapData
	if cfg.World.MapFile == "" {
		data = &MapData{Map: DefaultMap(), StartX: -1, StartY: -1}
	} else {
		loaded, err := LoadMap(cfg.World.MapFile)
		if err != nil {
			return nil, err
		}
		data = loaded
	}

	if len(data.Sprites) == 0 {
		for _, sc := range cfg.Sprites {
			data.Sprites = append(data.Sprites, Sprite{X: sc.X, Y: sc.Y, Texture: sc.Texture})
		}
	}
	if !data.HasStart() {
		data.StartX, data.StartY = cfg.Camera.StartX, cfg.Camera.StartY
	}
	if data.Map.IsSolid(int(data.StartX), int(data.StartY)) {
		return nil, fmt.Errorf("start position (%.2f, %.2f) is inside a wall", data.StartX, data.StartY)
	}
	return data, nil
}
