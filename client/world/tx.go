package world

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Tx represents a synchronised transaction performed on a World. Most
// operations on a World can only be called through a Tx. A Tx may not be used
// after the ExecFunc it was passed to returns.
type Tx struct {
	w      *World
	closed bool
}

// World returns the World of the Tx. It panics if the transaction was already
// closed.
func (tx *Tx) World() *World {
	if tx.closed {
		panic("world.Tx: use of transaction after transaction finishes is not permitted")
	}
	return tx.w
}

// Chunk returns the chunk at the position passed if it is currently loaded.
func (tx *Tx) Chunk(pos ChunkPos) (*Chunk, bool) {
	return tx.World().chunks.Chunk(pos)
}

// ChunkLoaded reports if the chunk at the position passed is loaded.
func (tx *Tx) ChunkLoaded(pos ChunkPos) bool {
	return tx.World().chunks.Contains(pos)
}

// Chunks returns an iterator over all chunks currently loaded.
func (tx *Tx) Chunks() iter.Seq2[ChunkPos, *Chunk] {
	return tx.World().chunks.All()
}

// ChunkCount returns the number of chunks currently loaded.
func (tx *Tx) ChunkCount() int {
	return tx.World().chunks.Len()
}

// Tile returns the tile at the world tile coordinates passed. If the chunk the
// tile is in is not loaded, false is returned.
func (tx *Tx) Tile(x, y int64) (TileType, bool) {
	pos, local := TileAt(x, y, tx.World().conf.Dimensions)
	c, ok := tx.Chunk(pos)
	if !ok {
		return 0, false
	}
	return c.Tile(local), true
}

// Viewpoint returns the position the World's chunks are currently streamed
// around.
func (tx *Tx) Viewpoint() mgl64.Vec2 {
	return tx.World().loader.viewpoint
}

// close finishes the Tx.
func (tx *Tx) close() {
	tx.closed = true
}

// transaction is a type that may be added to the transaction queue of a World.
// Its Run method is called when the transaction is taken out of the queue.
type transaction interface {
	Run(w *World)
}

// normalTransaction is a transaction that runs f and closes c once done.
type normalTransaction struct {
	c chan struct{}
	f ExecFunc
}

// Run creates a *Tx and calls ntx.f with it.
func (ntx normalTransaction) Run(w *World) {
	tx := &Tx{w: w}
	ntx.f(tx)
	tx.close()
	w.loaded.Store(int64(w.chunks.Len()))
	close(ntx.c)
}
