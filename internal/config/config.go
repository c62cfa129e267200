package config

import (
	"errors"
	"fmt"
	"os"

	"gridcaster/internal/mathutil"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all renderer configuration values
type Config struct {
	Display     DisplayConfig          `yaml:"display"`
	Plane       PlaneConfig            `yaml:"plane"`
	World       WorldConfig            `yaml:"world"`
	Camera      CameraConfig           `yaml:"camera"`
	Movement    MovementConfig         `yaml:"movement"`
	Graphics    GraphicsConfig         `yaml:"graphics"`
	Materials   map[int]MaterialConfig `yaml:"materials"`
	Sprites     []SpriteConfig         `yaml:"sprites"`
	Audio       AudioConfig            `yaml:"audio"`
	Terminal    TerminalConfig         `yaml:"terminal"`
	Performance PerformanceConfig      `yaml:"performance"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

// PlaneConfig is the projection plane, the resolution the frame is rendered at.
type PlaneConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type WorldConfig struct {
	TileSize       int     `yaml:"tile_size"`
	WallHeight     float64 `yaml:"wall_height"`
	MapFile        string  `yaml:"map_file"` // empty selects the built-in grid
	MaxRayDistance float64 `yaml:"max_ray_distance"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // degrees
	EyeHeight   float64 `yaml:"eye_height"`
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
	StartAngle  float64 `yaml:"start_angle"` // degrees
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`     // tiles per second
	RotationSpeed    float64 `yaml:"rotation_speed"` // radians per second
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	MaxFrameSeconds  float64 `yaml:"max_frame_seconds"`
}

type GraphicsConfig struct {
	Textured        bool        `yaml:"textured"`
	FloorCeiling    bool        `yaml:"floor_ceiling"`
	Sprites         bool        `yaml:"sprites"`
	Minimap         bool        `yaml:"minimap"`
	MinimapScale    int         `yaml:"minimap_scale"`
	ParallelColumns bool        `yaml:"parallel_columns"`
	SideShade       float64     `yaml:"side_shade"`
	CeilingShade    float64     `yaml:"ceiling_shade"`
	Fog             FogConfig   `yaml:"fog"`
	FloorColor      [3]int      `yaml:"floor_color"`
	CeilingColor    [3]int      `yaml:"ceiling_color"`
	Atlas           AtlasConfig `yaml:"atlas"`
	ShowFPS         bool        `yaml:"show_fps"`
}

type FogConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Start         float64 `yaml:"start"`
	End           float64 `yaml:"end"`
	MinBrightness float64 `yaml:"min_brightness"`
}

// AtlasConfig points at the texture atlases. Empty paths select the
// procedural placeholder atlas.
type AtlasConfig struct {
	WallAtlas    string `yaml:"wall_atlas"`
	SpriteAtlas  string `yaml:"sprite_atlas"`
	FloorIndex   int    `yaml:"floor_index"`
	CeilingIndex int    `yaml:"ceiling_index"`
}

// MaterialConfig maps a tile id to how its walls are drawn.
type MaterialConfig struct {
	Name       string  `yaml:"name"`
	AtlasIndex int     `yaml:"atlas_index"`
	Color      [3]int  `yaml:"color"`
	SideShade  float64 `yaml:"side_shade"` // 0 uses graphics.side_shade
}

type SpriteConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Texture int     `yaml:"texture"`
}

type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Volume        float64 `yaml:"volume"`
	BumpFrequency float64 `yaml:"bump_frequency"`
	BumpMillis    int     `yaml:"bump_millis"`
}

type TerminalConfig struct {
	FPS int `yaml:"fps"`
}

type PerformanceConfig struct {
	AlertIntervalSeconds float64 `yaml:"alert_interval_seconds"`
	MinFPS               float64 `yaml:"min_fps"`
	DetailedAverages     bool    `yaml:"detailed_averages"` // moving averages behind the alerts
}

// DefaultConfig returns the built-in settings. LoadConfig overlays the YAML file on top of these.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  960,
			ScreenHeight: 540,
			WindowTitle:  "gridcaster",
			Resizable:    true,
			TPS:          60,
		},
		Plane: PlaneConfig{Width: 320, Height: 180},
		World: WorldConfig{
			TileSize:       64,
			WallHeight:     64,
			MaxRayDistance: 24,
		},
		Camera: CameraConfig{
			FieldOfView: 60,
			EyeHeight:   32,
			StartX:      2,
			StartY:      3,
			StartAngle:  -45,
		},
		Movement: MovementConfig{
			MoveSpeed:        3,
			RotationSpeed:    2.5,
			MouseSensitivity: 0.15,
			MaxFrameSeconds:  0.1,
		},
		Graphics: GraphicsConfig{
			Textured:     true,
			FloorCeiling: true,
			Sprites:      true,
			MinimapScale: 4,
			SideShade:    0.5,
			CeilingShade: 0.5,
			Fog:          FogConfig{Enabled: true, Start: 2, End: 16, MinBrightness: 0.15},
			FloorColor:   [3]int{70, 70, 70},
			CeilingColor: [3]int{50, 50, 100},
			Atlas:        AtlasConfig{FloorIndex: 6, CeilingIndex: 7},
			ShowFPS:      true,
		},
		Materials: map[int]MaterialConfig{
			1: {Name: "stone", AtlasIndex: 0, Color: [3]int{255, 255, 255}},
			2: {Name: "brick", AtlasIndex: 1, Color: [3]int{255, 255, 0}},
			3: {Name: "wood", AtlasIndex: 2, Color: [3]int{255, 0, 0}},
			4: {Name: "moss", AtlasIndex: 3, Color: [3]int{0, 255, 0}},
		},
		Sprites: []SpriteConfig{
			{X: 1.5, Y: 1.5}, {X: 6.5, Y: 1.5}, {X: 1.5, Y: 6.5},
			{X: 10.5, Y: 8.5}, {X: 9.5, Y: 9.5}, {X: 10.5, Y: 10.5},
			{X: 12.5, Y: 11.5},
		},
		Audio:       AudioConfig{Enabled: true, Volume: 0.3, BumpFrequency: 110, BumpMillis: 60},
		Terminal:    TerminalConfig{FPS: 30},
		Performance: PerformanceConfig{AlertIntervalSeconds: 5, MinFPS: 30, DetailedAverages: true},
	}
}

// LoadConfig loads the configuration from a YAML file over the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes over the defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	// A materials table in the file replaces the default table entirely.
	if hasMaterials(data) {
		config.Materials = nil
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func hasMaterials(data []byte) bool {
	var probe struct {
		Materials yaml.Node `yaml:"materials"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Materials.Kind == yaml.MappingNode
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Plane.Width < 2 || c.Plane.Height < 2:
		return fmt.Errorf("%w: plane must be at least 2x2, got %dx%d", ErrInvalid, c.Plane.Width, c.Plane.Height)
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size must be positive", ErrInvalid)
	case c.Display.TPS <= 0:
		return fmt.Errorf("%w: display.tps must be positive", ErrInvalid)
	case c.World.TileSize <= 0:
		return fmt.Errorf("%w: world.tile_size must be positive", ErrInvalid)
	case c.World.WallHeight <= 0:
		return fmt.Errorf("%w: world.wall_height must be positive", ErrInvalid)
	case c.World.MaxRayDistance <= 0:
		return fmt.Errorf("%w: world.max_ray_distance must be positive", ErrInvalid)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180:
		return fmt.Errorf("%w: camera.field_of_view must be in (0, 180), got %v", ErrInvalid, c.Camera.FieldOfView)
	case c.Movement.MaxFrameSeconds <= 0:
		return fmt.Errorf("%w: movement.max_frame_seconds must be positive", ErrInvalid)
	case c.Graphics.SideShade < 0 || c.Graphics.SideShade > 1:
		return fmt.Errorf("%w: graphics.side_shade must be in [0, 1]", ErrInvalid)
	case c.Graphics.CeilingShade < 0 || c.Graphics.CeilingShade > 1:
		return fmt.Errorf("%w: graphics.ceiling_shade must be in [0, 1]", ErrInvalid)
	case c.Graphics.Fog.Enabled && c.Graphics.Fog.End <= c.Graphics.Fog.Start:
		return fmt.Errorf("%w: graphics.fog.end must be greater than start", ErrInvalid)
	case c.Graphics.Fog.MinBrightness < 0 || c.Graphics.Fog.MinBrightness > 1:
		return fmt.Errorf("%w: graphics.fog.min_brightness must be in [0, 1]", ErrInvalid)
	case c.Terminal.FPS <= 0:
		return fmt.Errorf("%w: terminal.fps must be positive", ErrInvalid)
	case c.Graphics.Atlas.FloorIndex < 0 || c.Graphics.Atlas.CeilingIndex < 0:
		return fmt.Errorf("%w: graphics.atlas floor and ceiling indices must not be negative", ErrInvalid)
	}
	for id, m := range c.Materials {
		if id <= 0 {
			return fmt.Errorf("%w: material id %d must be positive", ErrInvalid, id)
		}
		if m.AtlasIndex < 0 {
			return fmt.Errorf("%w: material %d atlas_index %d is negative", ErrInvalid, id, m.AtlasIndex)
		}
	}
	for i, sp := range c.Sprites {
		if sp.Texture < 0 {
			return fmt.Errorf("%w: sprite %d texture %d is negative", ErrInvalid, i, sp.Texture)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetCameraFOV returns the field of view in radians.
func (c *Config) GetCameraFOV() float64 {
	return mathutil.Radians(c.Camera.FieldOfView)
}

// GetStartAngle returns the initial heading in radians.
func (c *Config) GetStartAngle() float64 {
	return mathutil.Radians(c.Camera.StartAngle)
}

func (c *Config) GetViewDistance() float64 {
	return c.World.MaxRayDistance
}
