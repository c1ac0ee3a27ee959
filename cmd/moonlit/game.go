package main

import (
	"fmt"

	"github.com/PizzaLvr49/moonlit/client"
	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// screenWidth and screenHeight are the size of the pixel viewport. The
	// window scales it up to fit.
	screenWidth, screenHeight = 320, 180
)

var keyBindings = map[camera.Key][]ebiten.Key{
	camera.KeyUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	camera.KeyDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	camera.KeyLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	camera.KeyRight: {ebiten.KeyD, ebiten.KeyArrowRight},
}

// game implements ebiten.Game. Every update feeds keyboard and gamepad state to
// the camera and, unless the world ticks on its own, ticks the world.
type game struct {
	c          *client.Client
	input      *camera.Events
	r          *renderer
	manualTick bool
	debug      bool
	gamepads   []ebiten.GamepadID
}

// Update ...
func (g *game) Update() error {
	for k, keys := range keyBindings {
		down := false
		for _, key := range keys {
			down = down || ebiten.IsKeyPressed(key)
		}
		g.input.SetKey(k, down)
	}
	g.input.SetAxis(g.stick())
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.manualTick {
		g.c.World().Tick()
	}
	return nil
}

// stick returns the position of the left stick of the first standard gamepad,
// with Y pointing up.
func (g *game) stick() mgl64.Vec2 {
	g.gamepads = ebiten.AppendGamepadIDs(g.gamepads[:0])
	for _, id := range g.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		return mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
	}
	return mgl64.Vec2{}
}

// Draw ...
func (g *game) Draw(screen *ebiten.Image) {
	pos := g.c.Camera().Position()
	g.r.Draw(screen, view{camera: pos, width: screenWidth, height: screenHeight})
	if g.debug {
		w := g.c.World()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f TPS %.0f\n%.0f, %.0f\nchunks %d",
			ebiten.ActualFPS(), w.TPS(), pos[0], pos[1], g.r.Len()))
	}
}

// Layout ...
func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}
