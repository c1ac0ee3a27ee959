package world

import (
	"iter"

	"github.com/brentp/intintmap"
)

// Registry holds the chunks currently materialised in a world. It is the only
// source of truth for whether a chunk is loaded: a position is present if and
// only if its chunk exists, and no position is ever present twice.
//
// Chunks are kept in an arena of slots, indexed by packed chunk position. A
// Registry is not safe for concurrent use; a World only accesses it from its
// transaction goroutine.
type Registry struct {
	index *intintmap.Map
	slots []*Chunk
	free  []int
}

// NewRegistry returns an empty Registry with room for roughly capacity chunks
// before growing.
func NewRegistry(capacity int) *Registry {
	capacity = max(capacity, 16)
	return &Registry{
		index: intintmap.New(capacity, 0.6),
		slots: make([]*Chunk, 0, capacity),
	}
}

// Contains reports if a chunk at the position passed is present.
func (r *Registry) Contains(pos ChunkPos) bool {
	_, ok := r.index.Get(pos.pack())
	return ok
}

// Chunk returns the chunk at the position passed, if present.
func (r *Registry) Chunk(pos ChunkPos) (*Chunk, bool) {
	slot, ok := r.index.Get(pos.pack())
	if !ok {
		return nil, false
	}
	return r.slots[slot], true
}

// Insert adds the chunk passed to the Registry. If a chunk at the same position
// is already present, Insert leaves the Registry unchanged and returns false.
func (r *Registry) Insert(c *Chunk) bool {
	key := c.Pos().pack()
	if _, ok := r.index.Get(key); ok {
		return false
	}
	var slot int
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[slot] = c
	} else {
		slot = len(r.slots)
		r.slots = append(r.slots, c)
	}
	r.index.Put(key, int64(slot))
	return true
}

// Remove removes the chunk at the position passed and returns it. If no chunk
// was present, Remove returns false.
func (r *Registry) Remove(pos ChunkPos) (*Chunk, bool) {
	key := pos.pack()
	slot, ok := r.index.Get(key)
	if !ok {
		return nil, false
	}
	c := r.slots[slot]
	r.slots[slot] = nil
	r.free = append(r.free, int(slot))
	r.index.Del(key)
	return c, true
}

// Len returns the number of chunks present.
func (r *Registry) Len() int {
	return r.index.Size()
}

// All returns an iterator over all chunks present and their positions. Chunks
// may be removed from the Registry while iterating.
func (r *Registry) All() iter.Seq2[ChunkPos, *Chunk] {
	return func(yield func(ChunkPos, *Chunk) bool) {
		for i := 0; i < len(r.slots); i++ {
			c := r.slots[i]
			if c == nil {
				continue
			}
			if !yield(c.Pos(), c) {
				return
			}
		}
	}
}

// Positions returns the positions of all chunks present, in no particular
// order.
func (r *Registry) Positions() []ChunkPos {
	positions := make([]ChunkPos, 0, r.Len())
	for pos := range r.All() {
		positions = append(positions, pos)
	}
	return positions
}
