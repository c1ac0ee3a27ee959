package world

import (
	"fmt"
	"math"

	"github.com/PizzaLvr49/moonlit/client/internal/satmath"
	"github.com/go-gl/mathgl/mgl64"
)

// ChunkPos holds the position of a chunk on the infinite chunk grid. The first
// value is the X coordinate and the second the Y coordinate. ChunkPos is
// comparable and is used as a map key throughout the world.
type ChunkPos [2]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 {
	return p[0]
}

// Y returns the Y coordinate of the chunk position.
func (p ChunkPos) Y() int32 {
	return p[1]
}

// Add returns the chunk position offset by dx and dy. The result saturates at
// the bounds of int32 rather than wrapping around.
func (p ChunkPos) Add(dx, dy int32) ChunkPos {
	return ChunkPos{satmath.Add(p[0], dx), satmath.Add(p[1], dy)}
}

// Origin returns the world position of the bottom left corner of the chunk.
func (p ChunkPos) Origin(d Dimensions) mgl64.Vec2 {
	ext := d.Extent()
	return mgl64.Vec2{float64(p[0]) * ext[0], float64(p[1]) * ext[1]}
}

// Centre returns the world position of the centre of the chunk.
func (p ChunkPos) Centre(d Dimensions) mgl64.Vec2 {
	return p.Origin(d).Add(d.Extent().Mul(0.5))
}

// Tile returns the world tile coordinates of the tile at the local position
// passed within the chunk.
func (p ChunkPos) Tile(local TilePos, d Dimensions) (x, y int64) {
	x = satmath.Add(satmath.Mul(int64(p[0]), int64(d.Chunk[0])), int64(local[0]))
	y = satmath.Add(satmath.Mul(int64(p[1]), int64(d.Chunk[1])), int64(local[1]))
	return x, y
}

// String implements fmt.Stringer.
func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d)", p[0], p[1])
}

// pack packs the chunk position into a single int64, X in the high 32 bits.
func (p ChunkPos) pack() int64 {
	return int64(p[0])<<32 | int64(uint32(p[1]))
}

// TilePos is the position of a tile local to the chunk it is in. Both values
// are always smaller than the chunk size of the Dimensions in use.
type TilePos [2]uint8

// Dimensions describes the size of chunks in tiles and the size of tiles in
// world units. Together they define every conversion between world positions,
// chunk positions and tile positions.
type Dimensions struct {
	// Chunk is the number of tiles along the X and Y axis of a chunk.
	Chunk [2]uint8
	// Tile is the size of a single tile in world units.
	Tile mgl64.Vec2
}

// DefaultDimensions returns chunks of 10x10 tiles of 16x16 world units each.
func DefaultDimensions() Dimensions {
	return Dimensions{Chunk: [2]uint8{10, 10}, Tile: mgl64.Vec2{16, 16}}
}

// Valid reports if the Dimensions can be used to build chunks: both chunk
// sizes must be non-zero and both tile sizes positive and finite.
func (d Dimensions) Valid() bool {
	if d.Chunk[0] == 0 || d.Chunk[1] == 0 {
		return false
	}
	for _, v := range d.Tile {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Area returns the amount of tiles in a single chunk.
func (d Dimensions) Area() int {
	return int(d.Chunk[0]) * int(d.Chunk[1])
}

// Extent returns the size of a full chunk in world units.
func (d Dimensions) Extent() mgl64.Vec2 {
	return mgl64.Vec2{float64(d.Chunk[0]) * d.Tile[0], float64(d.Chunk[1]) * d.Tile[1]}
}

// ChunkPosAt returns the position of the chunk containing the world position
// passed. Coordinates are floored, so that (-1, -1) lies in chunk (-1, -1)
// rather than (0, 0). Positions beyond the int32 chunk grid saturate.
func ChunkPosAt(pos mgl64.Vec2, d Dimensions) ChunkPos {
	ext := d.Extent()
	return ChunkPos{
		satmath.Int32(math.Floor(pos[0] / ext[0])),
		satmath.Int32(math.Floor(pos[1] / ext[1])),
	}
}

// TileAt returns the chunk position and local tile position of the world tile
// coordinates passed.
func TileAt(x, y int64, d Dimensions) (ChunkPos, TilePos) {
	cx, lx := floorDiv(x, int64(d.Chunk[0]))
	cy, ly := floorDiv(y, int64(d.Chunk[1]))
	return ChunkPos{satmath.Int32From(cx), satmath.Int32From(cy)}, TilePos{uint8(lx), uint8(ly)}
}

// floorDiv divides a by b, rounding toward negative infinity, and returns the
// quotient with the non-negative remainder. b must be positive.
func floorDiv(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
