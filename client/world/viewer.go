package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderer is the collaborator that turns chunks into something visible. The
// World calls Materialise right after a chunk is added to its Registry and
// Destroy right after it is removed, always from the World's transaction
// goroutine.
type Renderer interface {
	// Materialise creates the visual representation of the chunk passed. origin
	// is the world position of the chunk's bottom left corner.
	Materialise(pos ChunkPos, c *Chunk, origin mgl64.Vec2)
	// Destroy removes the visual representation of the chunk at pos. Destroying
	// a chunk that was never materialised must be a no-op, and no visuals of
	// the chunk may remain afterwards.
	Destroy(pos ChunkPos)
}

// NopRenderer implements the Renderer interface but does not execute any code
// when materialising or destroying chunks.
type NopRenderer struct{}

func (NopRenderer) Materialise(ChunkPos, *Chunk, mgl64.Vec2) {}
func (NopRenderer) Destroy(ChunkPos)                         {}

// ViewpointSource supplies the position chunks are streamed around. Viewpoint
// is called once every tick with the time elapsed since the previous tick.
type ViewpointSource interface {
	Viewpoint(dt time.Duration) mgl64.Vec2
}

// FixedViewpoint is a ViewpointSource that never moves.
type FixedViewpoint mgl64.Vec2

// Viewpoint returns the fixed position.
func (v FixedViewpoint) Viewpoint(time.Duration) mgl64.Vec2 {
	return mgl64.Vec2(v)
}
