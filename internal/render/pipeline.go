package render

import (
	"image/color"
	"math"

	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/mathutil"
	"gridcaster/internal/raycast"
	"gridcaster/internal/threading/monitoring"
	"gridcaster/internal/world"
)

// Scene is everything one frame is rendered from.
type Scene struct {
	Map         *world.Map
	Caster      *raycast.Caster
	Camera      *camera.FirstPersonCamera
	Sprites     []world.Sprite
	Walls       Texture // wall, floor and ceiling strips; nil draws flat colours
	SpriteAtlas Texture
}

// Stages selects the optional passes. Walls are always drawn.
type Stages struct {
	FloorCeiling bool
	Sprites      bool
	Minimap      bool
}

// ColumnDispatcher runs fn for every index in [start, end) and returns only
// after all calls finished. core.WorkerPool satisfies it.
type ColumnDispatcher interface {
	ParallelFor(start, end int, fn func(int))
}

// Options configures a Pipeline.
type Options struct {
	Stages       Stages
	FloorIndex   int
	CeilingIndex int
	FloorColor   color.RGBA
	CeilingColor color.RGBA
	MinimapScale int
}

// Pipeline renders frames: the column pass (walls, then floor and ceiling
// for the same column) followed by sprites and the minimap. Sprites only
// start once every column has written its depth.
type Pipeline struct {
	proj    Projection
	shading Shading
	opts    Options

	frame *Frame
	depth DepthBuffer
	hits  []ColumnHit
	dirX  []float64
	dirY  []float64

	walls   *ColumnRenderer
	floor   *FloorCeilingCaster
	sprites *SpriteCompositor
	minimap *Minimap

	dispatcher ColumnDispatcher
	monitor    *monitoring.PerformanceMonitor
}

// NewPipeline allocates the frame and per-column buffers for proj.
func NewPipeline(proj Projection, shading Shading, materials *world.Materials, opts Options) *Pipeline {
	return &Pipeline{
		proj:    proj,
		shading: shading,
		opts:    opts,
		frame:   NewFrame(proj.Width, proj.Height),
		depth:   NewDepthBuffer(proj.Width),
		hits:    make([]ColumnHit, proj.Width),
		dirX:    make([]float64, proj.Width),
		dirY:    make([]float64, proj.Width),
		walls:   NewColumnRenderer(proj, shading, materials),
		floor: NewFloorCeilingCaster(proj, shading, opts.FloorIndex, opts.CeilingIndex,
			opts.FloorColor, opts.CeilingColor),
		sprites: NewSpriteCompositor(proj, shading),
		minimap: NewMinimap(opts.MinimapScale, materials),
	}
}

// NewPipelineFromConfig builds the projection, shading and options from cfg.
func NewPipelineFromConfig(cfg *config.Config, materials *world.Materials) *Pipeline {
	proj := NewProjection(cfg.Plane.Width, cfg.Plane.Height, cfg.GetCameraFOV(),
		cfg.GetTileSize(), cfg.World.WallHeight, cfg.Camera.EyeHeight)
	g := cfg.Graphics
	shading := Shading{
		CeilingShade:  g.CeilingShade,
		Fog:           g.Fog.Enabled,
		FogStart:      g.Fog.Start,
		FogEnd:        g.Fog.End,
		MinBrightness: g.Fog.MinBrightness,
	}
	return NewPipeline(proj, shading, materials, Options{
		Stages:       Stages{FloorCeiling: g.FloorCeiling, Sprites: g.Sprites, Minimap: g.Minimap},
		FloorIndex:   g.Atlas.FloorIndex,
		CeilingIndex: g.Atlas.CeilingIndex,
		FloorColor:   mathutil.RGB(g.FloorColor),
		CeilingColor: mathutil.RGB(g.CeilingColor),
		MinimapScale: g.MinimapScale,
	})
}

// SetDispatcher runs the column pass through d. nil renders columns in order.
func (p *Pipeline) SetDispatcher(d ColumnDispatcher) {
	p.dispatcher = d
}

// SetMonitor records pass timings in m.
func (p *Pipeline) SetMonitor(m *monitoring.PerformanceMonitor) {
	p.monitor = m
}

// Stages returns the enabled optional passes.
func (p *Pipeline) Stages() Stages {
	return p.opts.Stages
}

// SetStages changes the optional passes for the next frame.
func (p *Pipeline) SetStages(s Stages) {
	p.opts.Stages = s
}

func (p *Pipeline) Projection() Projection { return p.proj }
func (p *Pipeline) Frame() *Frame          { return p.frame }
func (p *Pipeline) Depth() DepthBuffer     { return p.depth }
func (p *Pipeline) Hits() []ColumnHit      { return p.hits }

// Render draws one frame of scene and returns the pipeline's frame buffer.
func (p *Pipeline) Render(scene *Scene) *Frame {
	cam := scene.Camera
	for i := 0; i < p.proj.Width; i++ {
		a := cam.Angle + p.proj.ColumnOffset(i)
		p.dirX[i], p.dirY[i] = math.Cos(a), math.Sin(a)
	}

	var timer *monitoring.PassTimer
	if p.monitor != nil {
		timer = p.monitor.StartColumnPass()
	}
	column := func(i int) { p.renderColumn(scene, i) }
	if p.dispatcher != nil {
		p.dispatcher.ParallelFor(0, p.proj.Width, column)
	} else {
		for i := 0; i < p.proj.Width; i++ {
			column(i)
		}
	}
	if timer != nil {
		timer.End()
	}

	if p.opts.Stages.Sprites {
		if p.monitor != nil {
			timer = p.monitor.StartSpritePass()
		}
		p.sprites.Composite(p.frame, p.depth, cam, scene.Sprites, scene.SpriteAtlas)
		if timer != nil {
			timer.End()
		}
	}

	if p.opts.Stages.Minimap && scene.Map != nil {
		p.minimap.Render(p.frame, scene.Map, cam, p.hits)
	}
	return p.frame
}

// renderColumn touches only column i of the frame and slot i of the buffers.
func (p *Pipeline) renderColumn(scene *Scene, i int) {
	hit := p.walls.Render(p.frame, p.depth, i, scene.Camera, scene.Caster, p.dirX[i], p.dirY[i], scene.Walls)
	p.hits[i] = hit
	if p.opts.Stages.FloorCeiling {
		p.floor.Render(p.frame, i, scene.Camera, hit, scene.Walls)
		return
	}
	p.frame.FillColumn(i, 0, hit.Top, p.opts.CeilingColor)
	p.frame.FillColumn(i, hit.Bottom, p.proj.Height, p.opts.FloorColor)
}
