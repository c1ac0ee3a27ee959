package world

import (
	"github.com/df-mc/goleveldb/leveldb"
)

// Provider represents a store of chunks that were generated before. A World
// asks its Provider for a chunk before generating it, and hands evicted chunks
// to it. The world is fully reproducible from its seed, so a Provider only
// ever saves generation work.
type Provider interface {
	// LoadChunk loads the chunk at the position passed. If the chunk is not
	// stored, leveldb.ErrNotFound is returned.
	LoadChunk(pos ChunkPos, d Dimensions) (*Chunk, error)
	// StoreChunk stores the chunk passed so that it may be loaded later.
	StoreChunk(c *Chunk) error
	// Close releases all resources held by the Provider.
	Close() error
}

// NopProvider implements the Provider interface but never stores chunks, so
// that every chunk is generated when it comes into range.
type NopProvider struct{}

func (NopProvider) LoadChunk(ChunkPos, Dimensions) (*Chunk, error) {
	return nil, leveldb.ErrNotFound
}
func (NopProvider) StoreChunk(*Chunk) error { return nil }
func (NopProvider) Close() error            { return nil }
