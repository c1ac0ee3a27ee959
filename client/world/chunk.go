package world

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Chunk is a fixed size block of tiles, the unit in which the world is
// generated, streamed and evicted. A Chunk is filled once by a Generator (or
// restored by a Provider) and is not changed afterwards.
type Chunk struct {
	pos   ChunkPos
	dims  Dimensions
	tiles []TileType
}

// NewChunk returns a chunk at the position passed with every tile set to the
// zero TileType.
func NewChunk(pos ChunkPos, d Dimensions) *Chunk {
	return &Chunk{pos: pos, dims: d, tiles: make([]TileType, d.Area())}
}

// Pos returns the position of the chunk.
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// Dimensions returns the Dimensions the chunk was created with.
func (c *Chunk) Dimensions() Dimensions {
	return c.dims
}

// Origin returns the world position of the bottom left corner of the chunk. It
// is the translation renderers should apply to the chunk's tile grid.
func (c *Chunk) Origin() mgl64.Vec2 {
	return c.pos.Origin(c.dims)
}

// Tile returns the tile type at the local position passed.
func (c *Chunk) Tile(pos TilePos) TileType {
	return c.tiles[c.index(pos)]
}

// SetTile sets the tile type at the local position passed. It should only be
// called by generators while the chunk is being filled.
func (c *Chunk) SetTile(pos TilePos, t TileType) {
	c.tiles[c.index(pos)] = t
}

// WorldTile returns the world tile coordinates of the local position passed.
func (c *Chunk) WorldTile(pos TilePos) (x, y int64) {
	return c.pos.Tile(pos, c.dims)
}

// Tiles returns the tiles of the chunk in row major order, starting at the
// bottom row. The slice returned must not be modified.
func (c *Chunk) Tiles() []TileType {
	return c.tiles
}

// SetTiles replaces all tiles of the chunk. An error is returned if the amount
// of tiles does not match the chunk's Dimensions or if an unknown tile type is
// present.
func (c *Chunk) SetTiles(tiles []TileType) error {
	if len(tiles) != len(c.tiles) {
		return fmt.Errorf("set tiles: expected %d tiles, got %d", len(c.tiles), len(tiles))
	}
	for i, t := range tiles {
		if !t.Valid() {
			return fmt.Errorf("set tiles: unknown tile type %d at index %d", t, i)
		}
	}
	copy(c.tiles, tiles)
	return nil
}

// Digest returns a 64-bit hash of the chunk's position, size and tiles. Two
// chunks with equal digests hold the same terrain.
func (c *Chunk) Digest() uint64 {
	d := xxhash.New()
	var hdr [10]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(c.pos[0]))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(c.pos[1]))
	hdr[8], hdr[9] = c.dims.Chunk[0], c.dims.Chunk[1]
	_, _ = d.Write(hdr[:])
	_, _ = d.Write(TileBytes(c.tiles))
	return d.Sum64()
}

// index returns the index in the tiles slice of the local position passed.
func (c *Chunk) index(pos TilePos) int {
	if pos[0] >= c.dims.Chunk[0] || pos[1] >= c.dims.Chunk[1] {
		panic(fmt.Sprintf("tile position %v out of bounds for chunk size %v", pos, c.dims.Chunk))
	}
	return int(pos[1])*int(c.dims.Chunk[0]) + int(pos[0])
}

// TileBytes converts a slice of tile types to their byte values.
func TileBytes(tiles []TileType) []byte {
	b := make([]byte, len(tiles))
	for i, t := range tiles {
		b[i] = byte(t)
	}
	return b
}
