package camera

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestKeysDirection(t *testing.T) {
	cases := []struct {
		keys Keys
		want mgl64.Vec2
	}{
		{Keys{}, mgl64.Vec2{}},
		{Keys{Up: true}, mgl64.Vec2{0, 1}},
		{Keys{Left: true, Down: true}, mgl64.Vec2{-1, -1}},
		{Keys{Left: true, Right: true, Up: true}, mgl64.Vec2{0, 1}},
	}
	for _, c := range cases {
		if got := c.keys.Direction(); got != c.want {
			t.Fatalf("%+v: expected %v, got %v", c.keys, c.want, got)
		}
	}
}

func TestCombinedClampsDirection(t *testing.T) {
	in := Combined{Keys{Right: true}, Keys{Right: true}, Axis{0.5, math.NaN()}}
	if got := in.Direction(); got != (mgl64.Vec2{1, 0}) {
		t.Fatalf("expected (1, 0), got %v", got)
	}
}

func TestEventsLatchKeys(t *testing.T) {
	var e Events
	e.Press(KeyUp)
	e.Press(KeyRight)
	if got := e.Direction(); got != (mgl64.Vec2{1, 1}) {
		t.Fatalf("expected (1, 1), got %v", got)
	}
	e.Release(KeyUp)
	e.SetAxis(mgl64.Vec2{-0.5, 0})
	if got := e.Direction(); got != (mgl64.Vec2{0.5, 0}) {
		t.Fatalf("expected (0.5, 0), got %v", got)
	}
	e.SetKey(Key(20), true)
	e.Reset()
	if got := e.Direction(); got != (mgl64.Vec2{}) {
		t.Fatalf("expected no movement after reset, got %v", got)
	}
}

func TestControllerMovesBySpeed(t *testing.T) {
	c := Config{Input: Keys{Right: true}}.New()
	pos := c.Viewpoint(time.Second / 2)
	if !pos.ApproxEqual(mgl64.Vec2{100, 0}) {
		t.Fatalf("expected (100, 0) after half a second, got %v", pos)
	}
	if c.Position() != pos {
		t.Fatalf("expected Position to return %v, got %v", pos, c.Position())
	}
}

func TestControllerNormalisesDiagonals(t *testing.T) {
	straight := Config{Input: Keys{Up: true}, Normalise: true}.New()
	diagonal := Config{Input: Keys{Up: true, Left: true}, Normalise: true}.New()
	a, b := straight.Viewpoint(time.Second).Len(), diagonal.Viewpoint(time.Second).Len()
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected diagonal movement to cover %v, got %v", a, b)
	}

	fast := Config{Input: Keys{Up: true, Left: true}}.New()
	if l := fast.Viewpoint(time.Second).Len(); l <= a {
		t.Fatalf("expected unnormalised diagonal movement to be faster than %v, got %v", a, l)
	}
}

func TestControllerDeadZone(t *testing.T) {
	c := Config{Input: Axis{0.1, 0.05}, DeadZone: 0.2}.New()
	if pos := c.Viewpoint(time.Second); pos != (mgl64.Vec2{}) {
		t.Fatalf("expected input inside the dead zone to be ignored, got %v", pos)
	}

	full := Config{Input: Axis{1, 0}, DeadZone: 0.2}.New()
	if pos := full.Viewpoint(time.Second); !pos.ApproxEqual(mgl64.Vec2{DefaultSpeed, 0}) {
		t.Fatalf("expected full input to move at full speed, got %v", pos)
	}
}

func TestControllerSmoothing(t *testing.T) {
	var e Events
	c := Config{Input: &e, Smoothing: 8}.New()
	e.Press(KeyRight)

	step := time.Second / 60
	first := c.Viewpoint(step)
	if first[0] <= 0 || first[0] >= DefaultSpeed/60 {
		t.Fatalf("expected the first step to move less than a full step, got %v", first)
	}
	for i := 0; i < 120; i++ {
		c.Viewpoint(step)
	}
	if v := c.Velocity(); math.Abs(v[0]-1) > 1e-3 {
		t.Fatalf("expected velocity to approach 1, got %v", v)
	}

	e.Release(KeyRight)
	for i := 0; i < 240; i++ {
		c.Viewpoint(step)
	}
	if v := c.Velocity(); v != (mgl64.Vec2{}) {
		t.Fatalf("expected camera to come to rest, got velocity %v", v)
	}
}

func TestControllerTeleport(t *testing.T) {
	c := Config{Input: Keys{Down: true}, Smoothing: 4}.New()
	c.Viewpoint(time.Second)
	c.Teleport(mgl64.Vec2{-500, 20})
	if c.Position() != (mgl64.Vec2{-500, 20}) || c.Velocity() != (mgl64.Vec2{}) {
		t.Fatalf("expected teleport to move and stop the camera, got %v moving %v", c.Position(), c.Velocity())
	}
	if pos := c.Viewpoint(0); pos != (mgl64.Vec2{-500, 20}) {
		t.Fatalf("expected no movement without elapsed time, got %v", pos)
	}
}

func TestControllerIgnoresInvalidInput(t *testing.T) {
	c := Config{Input: InputFunc(func() mgl64.Vec2 { return mgl64.Vec2{math.Inf(1), 0} })}.New()
	if pos := c.Viewpoint(time.Second); pos != (mgl64.Vec2{}) {
		t.Fatalf("expected infinite input to be ignored, got %v", pos)
	}
}
