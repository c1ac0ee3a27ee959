package world

// Generator handles the generation of chunks that were not loaded from a
// Provider. GenerateChunk is called concurrently for different positions, so
// implementations must not share mutable state between calls.
type Generator interface {
	// GenerateChunk fills the chunk passed with the tiles found at pos. The
	// chunk passed is empty and has the Dimensions of the world.
	GenerateChunk(pos ChunkPos, c *Chunk)
}

// NopGenerator is the default generator of a World. It leaves every tile of a
// chunk set to the zero TileType.
type NopGenerator struct{}

func (NopGenerator) GenerateChunk(ChunkPos, *Chunk) {}

// GeneratorFunc is a function that implements Generator.
type GeneratorFunc func(pos ChunkPos, c *Chunk)

// GenerateChunk calls f(pos, c).
func (f GeneratorFunc) GenerateChunk(pos ChunkPos, c *Chunk) {
	f(pos, c)
}
