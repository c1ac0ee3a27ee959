package memdb

import (
	"encoding/binary"
	"fmt"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

const (
	// keyChunk is the prefix of keys that hold chunk data.
	keyChunk = 'c'
	keyLen   = 9
)

// index returns the key under which the chunk at pos is stored.
func index(pos world.ChunkPos) []byte {
	b := make([]byte, keyLen)
	b[0] = keyChunk
	binary.LittleEndian.PutUint32(b[1:], uint32(pos[0]))
	binary.LittleEndian.PutUint32(b[5:], uint32(pos[1]))
	return b
}

// chunkData is the NBT representation of a chunk.
type chunkData struct {
	X      int32  `nbt:"x"`
	Y      int32  `nbt:"y"`
	Width  uint8  `nbt:"width"`
	Height uint8  `nbt:"height"`
	Tiles  []byte `nbt:"tiles"`
	Digest int64  `nbt:"digest"`
}

func encodeChunk(c *world.Chunk) ([]byte, error) {
	d := c.Dimensions()
	return nbt.MarshalEncoding(chunkData{
		X:      c.Pos().X(),
		Y:      c.Pos().Y(),
		Width:  d.Chunk[0],
		Height: d.Chunk[1],
		Tiles:  world.TileBytes(c.Tiles()),
		Digest: int64(c.Digest()),
	}, nbt.LittleEndian)
}

func decodeChunk(b []byte, d world.Dimensions) (*world.Chunk, error) {
	var data chunkData
	if err := nbt.UnmarshalEncoding(b, &data, nbt.LittleEndian); err != nil {
		return nil, fmt.Errorf("decode chunk: %w", err)
	}
	if data.Width != d.Chunk[0] || data.Height != d.Chunk[1] {
		return nil, fmt.Errorf("decode chunk: size %vx%v does not match %vx%v: %w", data.Width, data.Height, d.Chunk[0], d.Chunk[1], ErrCorrupt)
	}
	tiles := make([]world.TileType, len(data.Tiles))
	for i, t := range data.Tiles {
		tiles[i] = world.TileType(t)
	}
	c := world.NewChunk(world.ChunkPos{data.X, data.Y}, d)
	if err := c.SetTiles(tiles); err != nil {
		return nil, fmt.Errorf("decode chunk: %w", err)
	}
	if c.Digest() != uint64(data.Digest) {
		return nil, fmt.Errorf("decode chunk: digest mismatch: %w", ErrCorrupt)
	}
	return c, nil
}
