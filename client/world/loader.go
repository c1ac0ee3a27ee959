package world

import (
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Loader streams the chunks of a World around a viewpoint. Every call to Load
// evicts the chunks that went out of range of the World's RangePolicy and
// materialises the chunks that came into range. A Loader may only be used
// from within a transaction of its World.
type Loader struct {
	w         *World
	viewpoint mgl64.Vec2
}

// LoadStats describes the work done by a single call to Loader.Load.
type LoadStats struct {
	// Centre is the position of the chunk the viewpoint was in.
	Centre ChunkPos
	// Loaded is the number of chunks that were materialised.
	Loaded int
	// Generated and Restored split Loaded into chunks produced by the
	// Generator and chunks loaded from the Provider.
	Generated, Restored int
	// Evicted is the number of chunks that were removed.
	Evicted int
}

// Changed reports if any chunk was materialised or evicted.
func (s LoadStats) Changed() bool {
	return s.Loaded > 0 || s.Evicted > 0
}

// Move moves the viewpoint of the Loader to the world position passed. Chunks
// are not loaded or evicted until Load is called.
func (l *Loader) Move(_ *Tx, pos mgl64.Vec2) {
	l.viewpoint = pos
}

// Viewpoint returns the current viewpoint of the Loader.
func (l *Loader) Viewpoint(_ *Tx) mgl64.Vec2 {
	return l.viewpoint
}

// Load evicts all chunks that are no longer in range of the viewpoint and
// materialises all chunks in range that are not yet loaded. Chunks that are
// already loaded are never regenerated, so calling Load twice without moving
// the viewpoint does nothing the second time.
//
// Missing chunks are generated in parallel, but they are added to the Registry
// and materialised one by one, nearest first, after all of them are done.
func (l *Loader) Load(tx *Tx) LoadStats {
	w := tx.World()
	conf := w.conf
	stats := LoadStats{Centre: ChunkPosAt(l.viewpoint, conf.Dimensions)}

	var evict []ChunkPos
	for pos := range w.chunks.All() {
		if !conf.Policy.InRange(pos, l.viewpoint, conf.Dimensions) {
			evict = append(evict, pos)
		}
	}
	for _, pos := range evict {
		l.evict(w, pos)
	}
	stats.Evicted = len(evict)

	var missing []ChunkPos
	for _, pos := range conf.Policy.Wanted(l.viewpoint, conf.Dimensions) {
		if !w.chunks.Contains(pos) {
			missing = append(missing, pos)
		}
	}

	chunks := make([]*Chunk, len(missing))
	restored := make([]bool, len(missing))
	var g errgroup.Group
	g.SetLimit(conf.GeneratorWorkers)
	for i, pos := range missing {
		g.Go(func() error {
			chunks[i], restored[i] = l.produce(w, pos)
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range chunks {
		if !w.chunks.Insert(c) {
			// Policies never return duplicates, so this would mean the
			// Registry and the policy disagree.
			panic(fmt.Sprintf("world.Loader: chunk %v loaded twice", c.Pos()))
		}
		conf.Renderer.Materialise(c.Pos(), c, c.Origin())
		if restored[i] {
			stats.Restored++
		} else {
			stats.Generated++
		}
	}
	stats.Loaded = len(chunks)

	w.metrics.AddLoad(stats)
	if stats.Changed() {
		conf.Log.Debug("Streamed chunks.", "centre", stats.Centre, "loaded", stats.Loaded, "evicted", stats.Evicted, "total", w.chunks.Len())
	}
	return stats
}

// evict removes the chunk at pos from the Registry, destroys its visuals and
// hands it to the Provider.
func (l *Loader) evict(w *World, pos ChunkPos) {
	c, ok := w.chunks.Remove(pos)
	if !ok {
		return
	}
	w.conf.Renderer.Destroy(pos)
	if err := w.conf.Provider.StoreChunk(c); err != nil {
		w.conf.Log.Error("store chunk: "+err.Error(), "X", pos[0], "Y", pos[1])
	}
}

// produce loads the chunk at pos from the Provider, or generates it if the
// Provider does not have it. The bool returned is true if the chunk came from
// the Provider. produce is called concurrently for different positions.
func (l *Loader) produce(w *World, pos ChunkPos) (*Chunk, bool) {
	d := w.conf.Dimensions
	c, err := w.conf.Provider.LoadChunk(pos, d)
	switch {
	case err == nil && c != nil && c.Pos() == pos && c.Dimensions() == d:
		return c, true
	case err == nil:
		w.conf.Log.Error("load chunk: provider returned mismatching chunk", "X", pos[0], "Y", pos[1])
	case !errors.Is(err, leveldb.ErrNotFound):
		w.conf.Log.Error("load chunk: "+err.Error(), "X", pos[0], "Y", pos[1])
	}

	c = NewChunk(pos, d)
	l.generate(w, pos, c)
	return c, false
}

// generate runs the Generator for the chunk passed. If the Generator panics,
// the panic is logged and the chunk is reset to all Grass, so that a chunk
// committed afterwards is never partly generated.
func (l *Loader) generate(w *World, pos ChunkPos, c *Chunk) {
	defer func() {
		if r := recover(); r != nil {
			w.metrics.IncGeneratorPanics()
			w.conf.Log.Error("generate chunk: panic", "error", fmt.Sprint(r), "X", pos[0], "Y", pos[1])
			_ = c.SetTiles(make([]TileType, len(c.Tiles())))
		}
	}()
	w.conf.Generator.GenerateChunk(pos, c)
}

// unloadAll evicts every chunk of the World, regardless of the viewpoint.
func (l *Loader) unloadAll(tx *Tx) {
	w := tx.World()
	for _, pos := range w.chunks.Positions() {
		l.evict(w, pos)
	}
}
