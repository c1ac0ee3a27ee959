// Package terrain implements a world.Generator that produces grass, sand,
// water, forest and mountain tiles from two layers of seeded fractal noise.
package terrain

import (
	"github.com/PizzaLvr49/moonlit/client/world"
)

// Generator is a world.Generator that classifies every tile of a chunk using a
// Classifier. The same seed and settings always produce the same chunks.
type Generator struct {
	seed       uint64
	classifier *Classifier
}

// New creates a terrain generator for the seed passed using DefaultSettings.
func New(seed uint64) *Generator {
	return NewWithSettings(seed, DefaultSettings())
}

// NewWithSettings creates a terrain generator for the seed and settings
// passed.
func NewWithSettings(seed uint64, s Settings) *Generator {
	return &Generator{seed: seed, classifier: NewClassifier(seed, s)}
}

// Seed returns the seed the Generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Classifier returns the Classifier used to classify tiles.
func (g *Generator) Classifier() *Classifier {
	return g.classifier
}

// GenerateChunk fills every tile of the chunk with the tile type found at its
// world tile coordinates.
func (g *Generator) GenerateChunk(pos world.ChunkPos, c *world.Chunk) {
	size := c.Dimensions().Chunk
	for y := uint8(0); y < size[1]; y++ {
		for x := uint8(0); x < size[0]; x++ {
			local := world.TilePos{x, y}
			wx, wy := pos.Tile(local, c.Dimensions())
			c.SetTile(local, g.classifier.Classify(wx, wy))
		}
	}
}

// Generate returns a new chunk at pos generated for the seed passed using
// DefaultSettings.
func Generate(pos world.ChunkPos, seed uint64, d world.Dimensions) *world.Chunk {
	c := world.NewChunk(pos, d)
	New(seed).GenerateChunk(pos, c)
	return c
}
