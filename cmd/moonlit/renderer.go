package main

import (
	"image/color"
	"math"
	"sync"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// palette holds the colour each tile type is drawn with.
var palette = [...]color.RGBA{
	world.Grass:      {R: 0x5b, G: 0xa1, B: 0x3c, A: 0xff},
	world.Water:      {R: 0x2f, G: 0x6f, B: 0xc4, A: 0xff},
	world.Sand:       {R: 0xe3, G: 0xd0, B: 0x8a, A: 0xff},
	world.Forest:     {R: 0x23, G: 0x5e, B: 0x2b, A: 0xff},
	world.ForestEdge: {R: 0x3d, G: 0x7d, B: 0x36, A: 0xff},
	world.Mountain:   {R: 0x7c, G: 0x76, B: 0x70, A: 0xff},
}

// tileColour returns the colour a tile type is drawn with.
func tileColour(t world.TileType) color.RGBA {
	if int(t) < len(palette) {
		return palette[t]
	}
	return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
}

// renderer is a world.Renderer that keeps the chunks materialised by the world
// and draws them onto ebiten images. Chunks are materialised on the world's
// transaction goroutine and drawn on ebiten's, so all access is guarded by mu.
type renderer struct {
	mu     sync.RWMutex
	chunks map[world.ChunkPos]renderedChunk
}

type renderedChunk struct {
	c      *world.Chunk
	origin mgl64.Vec2
}

func newRenderer() *renderer {
	return &renderer{chunks: make(map[world.ChunkPos]renderedChunk)}
}

// Materialise ...
func (r *renderer) Materialise(pos world.ChunkPos, c *world.Chunk, origin mgl64.Vec2) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks[pos] = renderedChunk{c: c, origin: origin}
}

// Destroy ...
func (r *renderer) Destroy(pos world.ChunkPos) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chunks, pos)
}

// Len returns the number of chunks the renderer currently holds.
func (r *renderer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chunks)
}

// view maps world positions to screen pixels. World Y points up, screen Y
// points down, and the camera sits in the centre of the screen.
type view struct {
	camera        mgl64.Vec2
	width, height float64
}

// screen returns the screen position of the world position passed.
func (v view) screen(pos mgl64.Vec2) (x, y float64) {
	return pos[0] - v.camera[0] + v.width/2, v.height/2 - (pos[1] - v.camera[1])
}

// visible reports if the world rectangle with its bottom left corner at corner
// and the size passed overlaps the screen.
func (v view) visible(corner, size mgl64.Vec2) bool {
	x, y := v.screen(corner)
	return x+size[0] > 0 && x < v.width && y > 0 && y-size[1] < v.height
}

// Draw draws every tile of every materialised chunk that is on screen.
func (r *renderer) Draw(screen *ebiten.Image, v view) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rc := range r.chunks {
		d := rc.c.Dimensions()
		if !v.visible(rc.origin, d.Extent()) {
			continue
		}
		for y := uint8(0); y < d.Chunk[1]; y++ {
			for x := uint8(0); x < d.Chunk[0]; x++ {
				corner := rc.origin.Add(mgl64.Vec2{float64(x) * d.Tile[0], float64(y) * d.Tile[1]})
				if !v.visible(corner, d.Tile) {
					continue
				}
				sx, sy := v.screen(corner)
				// The tile's top edge is at sy minus its height on screen.
				vector.DrawFilledRect(screen,
					float32(math.Floor(sx)), float32(math.Floor(sy-d.Tile[1])),
					float32(d.Tile[0]), float32(d.Tile[1]),
					tileColour(rc.c.Tile(world.TilePos{x, y})), false)
			}
		}
	}
}
