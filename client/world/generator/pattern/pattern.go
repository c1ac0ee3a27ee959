// Package pattern implements a world.Generator that picks tile types from a
// palette by hashing world tile coordinates. The result is deterministic but
// carries no meaning, which makes it useful for checking chunk seams and
// streaming without terrain getting in the way.
package pattern

import (
	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/segmentio/fasthash/fnv1a"
)

// Generator fills chunks with tile types taken from Palette, indexed by the
// FNV-1a hash of the seed and the world tile coordinates.
type Generator struct {
	seed    uint64
	palette []world.TileType
}

// New returns a Generator for the seed passed. If no palette is passed, every
// known tile type is used.
func New(seed uint64, palette ...world.TileType) *Generator {
	if len(palette) == 0 {
		palette = world.TileTypes()
	}
	return &Generator{seed: seed, palette: append([]world.TileType(nil), palette...)}
}

// GenerateChunk ...
func (g *Generator) GenerateChunk(pos world.ChunkPos, c *world.Chunk) {
	size := c.Dimensions().Chunk
	for y := uint8(0); y < size[1]; y++ {
		for x := uint8(0); x < size[0]; x++ {
			local := world.TilePos{x, y}
			c.SetTile(local, g.TileAt(pos.Tile(local, c.Dimensions())))
		}
	}
}

// TileAt returns the tile type at the world tile passed.
func (g *Generator) TileAt(x, y int64) world.TileType {
	h := fnv1a.HashUint64(g.seed)
	h = fnv1a.AddUint64(h, uint64(x))
	h = fnv1a.AddUint64(h, uint64(y))
	return g.palette[h%uint64(len(g.palette))]
}
