package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Input supplies the direction the camera should move in. Direction is
// called once every tick. Each axis of the vector returned is expected to lie
// in [-1, 1], with positive Y pointing up.
type Input interface {
	Direction() mgl64.Vec2
}

// InputFunc is a function that implements Input.
type InputFunc func() mgl64.Vec2

// Direction calls f().
func (f InputFunc) Direction() mgl64.Vec2 {
	return f()
}

// NopInput is an Input that never moves the camera.
type NopInput struct{}

func (NopInput) Direction() mgl64.Vec2 { return mgl64.Vec2{} }

// Keys is a snapshot of four directional keys that is polled every tick.
type Keys struct {
	Up, Down, Left, Right bool
}

// Direction returns the direction the keys point in. Opposite keys cancel each
// other out.
func (k Keys) Direction() mgl64.Vec2 {
	var v mgl64.Vec2
	if k.Right {
		v[0]++
	}
	if k.Left {
		v[0]--
	}
	if k.Up {
		v[1]++
	}
	if k.Down {
		v[1]--
	}
	return v
}

// Axis is an analog Input such as the left stick of a gamepad.
type Axis mgl64.Vec2

// Direction returns the axis value with both components clamped to [-1, 1].
// NaN components are treated as 0.
func (a Axis) Direction() mgl64.Vec2 {
	return mgl64.Vec2{axisValue(a[0]), axisValue(a[1])}
}

func axisValue(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}

// Combined is an Input that adds up the directions of multiple inputs, such as
// WASD keys, arrow keys and a gamepad stick bound to the same movement. The sum
// is clamped to [-1, 1] on both axes.
type Combined []Input

// Direction ...
func (c Combined) Direction() mgl64.Vec2 {
	var v mgl64.Vec2
	for _, in := range c {
		v = v.Add(in.Direction())
	}
	return Axis(v).Direction()
}

// Key is one of the four directional keys latched by Events.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

// Events is an Input driven by press and release callbacks instead of
// polling. It latches the state of the four directional keys and an analog
// axis between ticks. Events is safe for concurrent use, so callbacks may be
// delivered from a different goroutine than the one ticking the world.
type Events struct {
	mu   sync.Mutex
	keys [4]bool
	axis mgl64.Vec2
}

// Press marks the key passed as held down.
func (e *Events) Press(k Key) {
	e.SetKey(k, true)
}

// Release marks the key passed as released.
func (e *Events) Release(k Key) {
	e.SetKey(k, false)
}

// SetKey sets whether the key passed is held down. Unknown keys are ignored.
func (e *Events) SetKey(k Key, down bool) {
	if int(k) >= len(e.keys) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys[k] = down
}

// SetAxis sets the value of the analog axis.
func (e *Events) SetAxis(v mgl64.Vec2) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.axis = v
}

// Reset releases all keys and centres the axis.
func (e *Events) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys, e.axis = [4]bool{}, mgl64.Vec2{}
}

// Direction returns the combined direction of the latched keys and axis.
func (e *Events) Direction() mgl64.Vec2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := Keys{Up: e.keys[KeyUp], Down: e.keys[KeyDown], Left: e.keys[KeyLeft], Right: e.keys[KeyRight]}
	return Combined{keys, Axis(e.axis)}.Direction()
}
