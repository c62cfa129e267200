// Package movement moves the camera through the grid from input intent and
// elapsed time, sliding along walls instead of stopping dead.
package movement

import (
	"math"

	"gridcaster/internal/camera"
)

// maxSubstep is the longest translation, in tiles, tested in one go. Longer
// moves are split so a single frame can never pass through a wall cell.
const maxSubstep = 0.45

// TileChecker reports whether a cell blocks movement. world.Map satisfies it.
type TileChecker interface {
	IsSolid(x, y int) bool
}

// InputSource is polled once per frame by the frontends.
type InputSource interface {
	// MovementIntent returns forward and strafe amounts in [-1, 1].
	// Positive strafe is to the right.
	MovementIntent() (forward, strafe float64)
	// TurnDelta returns the turn amount for this frame in units of the
	// configured rotation speed. Positive turns right.
	TurnDelta() float64
	QuitRequested() bool
}

// Intent is one frame of requested motion.
type Intent struct {
	Forward float64
	Strafe  float64
	Turn    float64
}

// IntentFrom polls src.
func IntentFrom(src InputSource) Intent {
	f, s := src.MovementIntent()
	return Intent{Forward: f, Strafe: s, Turn: src.TurnDelta()}
}

// Result tells which axes a wall stopped during an update.
type Result struct {
	BlockedX bool
	BlockedY bool
}

// Blocked reports whether either axis hit a wall.
func (r Result) Blocked() bool {
	return r.BlockedX || r.BlockedY
}

// Controller applies intents to a camera.
type Controller struct {
	tiles           TileChecker
	moveSpeed       float64 // tiles per second
	turnSpeed       float64 // radians per second
	maxFrameSeconds float64
}

// NewController creates a controller. maxFrameSeconds caps the dt of a
// single update so a stalled frame cannot fling the camera.
func NewController(tiles TileChecker, moveSpeed, turnSpeed, maxFrameSeconds float64) *Controller {
	return &Controller{
		tiles:           tiles,
		moveSpeed:       moveSpeed,
		turnSpeed:       turnSpeed,
		maxFrameSeconds: maxFrameSeconds,
	}
}

// Update turns the camera, then translates it by the intent scaled by dt
// seconds. X and Y are tested and applied separately, X first, so moving
// diagonally into a wall keeps the component along it.
func (c *Controller) Update(cam *camera.FirstPersonCamera, in Intent, dt float64) Result {
	if dt <= 0 {
		return Result{}
	}
	if c.maxFrameSeconds > 0 && dt > c.maxFrameSeconds {
		dt = c.maxFrameSeconds
	}

	if in.Turn != 0 {
		cam.Rotate(in.Turn * c.turnSpeed * dt)
	}

	forward := clampUnit(in.Forward)
	strafe := clampUnit(in.Strafe)
	if l := math.Hypot(forward, strafe); l > 1 {
		forward /= l
		strafe /= l
	}
	if forward == 0 && strafe == 0 {
		return Result{}
	}

	fx, fy := cam.GetForward()
	rx, ry := cam.GetRight()
	step := c.moveSpeed * dt
	dx := (fx*forward + rx*strafe) * step
	dy := (fy*forward + ry*strafe) * step

	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxSubstep))
	if n < 1 {
		n = 1
	}
	dx /= float64(n)
	dy /= float64(n)

	var res Result
	for i := 0; i < n; i++ {
		if nx := cam.X + dx; dx != 0 && !c.blocked(nx, cam.Y) {
			cam.X = nx
		} else if dx != 0 {
			res.BlockedX = true
		}
		if ny := cam.Y + dy; dy != 0 && !c.blocked(cam.X, ny) {
			cam.Y = ny
		} else if dy != 0 {
			res.BlockedY = true
		}
	}
	return res
}

func (c *Controller) blocked(x, y float64) bool {
	return c.tiles.IsSolid(int(math.Floor(x)), int(math.Floor(y)))
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
