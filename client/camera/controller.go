// Package camera turns directional input into movement of the viewpoint that
// the world streams chunks around. A Controller implements
// world.ViewpointSource and never touches the world's chunks itself.
package camera

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSpeed is the speed of the camera in world units per second.
const DefaultSpeed = 200.0

// Config may be used to create a new Controller.
type Config struct {
	// Input supplies the direction of movement every tick. If nil, the camera
	// only moves through Teleport.
	Input Input
	// Speed is the distance in world units travelled per second at full input.
	// If 0 or lower, DefaultSpeed is used.
	Speed float64
	// Normalise limits the length of the direction to 1, so that moving
	// diagonally is not faster than moving along one axis.
	Normalise bool
	// DeadZone is the input length under which input is ignored. Longer input
	// is rescaled so that movement starts at 0 at the edge of the dead zone and
	// never exceeds a length of 1. Values outside of [0, 1) disable the dead
	// zone.
	DeadZone float64
	// Smoothing is the rate at which the velocity approaches the input
	// direction, per second. Higher values respond faster. If 0 or lower, the
	// velocity follows the input immediately.
	Smoothing float64
	// Position is the initial position of the camera.
	Position mgl64.Vec2
}

// New creates a Controller using the Config conf.
func (conf Config) New() *Controller {
	if conf.Input == nil {
		conf.Input = NopInput{}
	}
	if conf.Speed <= 0 {
		conf.Speed = DefaultSpeed
	}
	if conf.DeadZone < 0 || conf.DeadZone >= 1 {
		conf.DeadZone = 0
	}
	return &Controller{conf: conf, pos: conf.Position}
}

// Controller moves a camera position based on an Input. It implements
// world.ViewpointSource. A Controller is safe for concurrent use.
type Controller struct {
	conf Config

	mu       sync.Mutex
	pos      mgl64.Vec2
	velocity mgl64.Vec2
}

// Viewpoint reads the Input, moves the camera by the time passed and returns
// the new position.
func (c *Controller) Viewpoint(dt time.Duration) mgl64.Vec2 {
	target := c.direction()

	c.mu.Lock()
	defer c.mu.Unlock()
	if dt <= 0 {
		return c.pos
	}
	secs := dt.Seconds()
	if c.conf.Smoothing > 0 {
		// Exponential decay towards the target, independent of tick rate.
		t := 1 - math.Exp(-c.conf.Smoothing*secs)
		c.velocity = c.velocity.Add(target.Sub(c.velocity).Mul(t))
		if target == (mgl64.Vec2{}) && c.velocity.Len() < 1e-3 {
			c.velocity = mgl64.Vec2{}
		}
	} else {
		c.velocity = target
	}
	c.pos = c.pos.Add(c.velocity.Mul(c.conf.Speed * secs))
	return c.pos
}

// direction returns the input direction with the dead zone and normalisation
// applied.
func (c *Controller) direction() mgl64.Vec2 {
	dir := c.conf.Input.Direction()
	if math.IsNaN(dir[0]) || math.IsNaN(dir[1]) || math.IsInf(dir[0], 0) || math.IsInf(dir[1], 0) {
		return mgl64.Vec2{}
	}
	l := dir.Len()
	if l == 0 {
		return dir
	}
	if dz := c.conf.DeadZone; dz > 0 {
		if l <= dz {
			return mgl64.Vec2{}
		}
		scaled := (min(l, 1) - dz) / (1 - dz)
		dir = dir.Mul(scaled / l)
		l = dir.Len()
	}
	if c.conf.Normalise && l > 1 {
		dir = dir.Normalize()
	}
	return dir
}

// Teleport moves the camera to the position passed and stops it.
func (c *Controller) Teleport(pos mgl64.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos, c.velocity = pos, mgl64.Vec2{}
}

// Position returns the current position of the camera.
func (c *Controller) Position() mgl64.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Velocity returns the current velocity of the camera as a fraction of its
// speed.
func (c *Controller) Velocity() mgl64.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

// Speed returns the speed of the camera in world units per second.
func (c *Controller) Speed() float64 {
	return c.conf.Speed
}
