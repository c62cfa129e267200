// Package engine ties the world, camera, movement and render pipeline
// together. Both frontends drive the same Engine: poll input, Step, Render.
package engine

import (
	"fmt"
	"log"
	"time"

	"gridcaster/internal/audio"
	"gridcaster/internal/camera"
	"gridcaster/internal/config"
	"gridcaster/internal/graphics"
	"gridcaster/internal/movement"
	"gridcaster/internal/raycast"
	"gridcaster/internal/render"
	"gridcaster/internal/threading"
	"gridcaster/internal/threading/monitoring"
	"gridcaster/internal/world"
)

// Engine owns everything needed to advance and draw one viewpoint.
type Engine struct {
	config    *config.Config
	level     *world.MapData
	materials *world.Materials
	camera    *camera.FirstPersonCamera
	scene     *render.Scene
	walls     *graphics.Atlas

	controller *movement.Controller
	pipeline   *render.Pipeline
	threading  *threading.ThreadingComponents
	bump       *audio.BumpPlayer

	textured bool
}

// New loads the level and atlases named by cfg and builds the pipeline.
func New(cfg *config.Config) (*Engine, error) {
	level, err := world.LoadFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	frames := 1
	for _, s := range level.Sprites {
		frames = max(frames, s.Texture+1)
	}
	walls, sprites, err := graphics.LoadAtlases(cfg, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlases: %w", err)
	}

	materials := world.NewMaterials(cfg.Materials, cfg.Graphics.SideShade)
	cam := camera.NewFirstPersonCamera(level.StartX, level.StartY, cfg.GetStartAngle(), cfg.GetCameraFOV())

	e := &Engine{
		config:    cfg,
		level:     level,
		materials: materials,
		camera:    cam,
		walls:     walls,
		controller: movement.NewController(level.Map, cfg.GetMoveSpeed(), cfg.GetRotSpeed(),
			cfg.Movement.MaxFrameSeconds),
		pipeline:  render.NewPipelineFromConfig(cfg, materials),
		threading: threading.NewThreadingComponents(cfg),
		bump:      audio.NewBumpPlayer(cfg.Audio),
		textured:  cfg.Graphics.Textured,
	}
	e.scene = &render.Scene{
		Map:         level.Map,
		Caster:      raycast.NewCaster(level.Map, cfg.GetViewDistance()),
		Camera:      cam,
		Sprites:     level.Sprites,
		SpriteAtlas: sprites,
	}
	e.applyTextured()

	if e.threading.WorkerPool != nil {
		e.pipeline.SetDispatcher(e.threading.WorkerPool)
	}
	e.pipeline.SetMonitor(e.threading.PerformanceMonitor)
	return e, nil
}

// InitAudio opens the speaker for the wall-bump cue. Failure is logged and
// the engine stays silent.
func (e *Engine) InitAudio() {
	if err := e.bump.Init(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
}

// Step advances the camera by one frame of input. dt is in seconds.
func (e *Engine) Step(in movement.Intent, dt float64) movement.Result {
	var res movement.Result
	e.threading.PerformanceMonitor.ProfiledFunction("movement", func() {
		res = e.controller.Update(e.camera, in, dt)
	})
	if res.Blocked() {
		e.threading.PerformanceMonitor.RecordBlockedMove()
	}
	e.bump.Update(res.Blocked())
	return res
}

// Render draws the current view and returns the frame. The frame is reused
// by the next call.
func (e *Engine) Render() *render.Frame {
	timer := e.threading.PerformanceMonitor.StartFrame()
	f := e.pipeline.Render(e.scene)
	timer.EndFrame()
	e.threading.PerformanceMonitor.LogAlerts(time.Now())
	return f
}

func (e *Engine) Camera() *camera.FirstPersonCamera { return e.camera }
func (e *Engine) Map() *world.Map                   { return e.level.Map }
func (e *Engine) Sprites() []world.Sprite           { return e.level.Sprites }
func (e *Engine) Pipeline() *render.Pipeline        { return e.pipeline }
func (e *Engine) Config() *config.Config            { return e.config }

// Metrics returns the latest frame timings.
func (e *Engine) Metrics() monitoring.FrameMetrics {
	return e.threading.GetPerformanceMetrics()
}

// Textured reports whether walls, floor and ceiling sample the atlas.
func (e *Engine) Textured() bool { return e.textured }

// ToggleTextured switches between atlas sampling and flat material colours.
func (e *Engine) ToggleTextured() {
	e.textured = !e.textured
	e.applyTextured()
}

func (e *Engine) applyTextured() {
	if e.textured {
		e.scene.Walls = e.walls
	} else {
		e.scene.Walls = nil
	}
}

// ToggleFloorCeiling switches between cast floor/ceiling and flat fills.
func (e *Engine) ToggleFloorCeiling() {
	s := e.pipeline.Stages()
	s.FloorCeiling = !s.FloorCeiling
	e.pipeline.SetStages(s)
}

func (e *Engine) ToggleSprites() {
	s := e.pipeline.Stages()
	s.Sprites = !s.Sprites
	e.pipeline.SetStages(s)
}

func (e *Engine) ToggleMinimap() {
	s := e.pipeline.Stages()
	s.Minimap = !s.Minimap
	e.pipeline.SetStages(s)
}

// Close stops the worker pool and releases audio.
func (e *Engine) Close() {
	e.bump.Close()
	e.threading.Shutdown()
}
