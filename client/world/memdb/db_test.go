package memdb

import (
	"errors"
	"testing"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/PizzaLvr49/moonlit/client/world/generator/terrain"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/go-gl/mathgl/mgl64"
)

func openTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := Config{}.Open()
	if err != nil {
		t.Fatalf("failed opening provider: %v", err)
	}
	return p
}

func TestProviderStoreAndLoad(t *testing.T) {
	p := openTestProvider(t)
	defer p.Close()

	d := world.DefaultDimensions()
	c := terrain.Generate(world.ChunkPos{-4, 9}, 42, d)
	if err := p.StoreChunk(c); err != nil {
		t.Fatalf("failed storing chunk: %v", err)
	}
	loaded, err := p.LoadChunk(c.Pos(), d)
	if err != nil {
		t.Fatalf("failed loading chunk: %v", err)
	}
	if loaded.Pos() != c.Pos() || loaded.Digest() != c.Digest() {
		t.Fatalf("loaded chunk %v does not match stored chunk %v", loaded.Pos(), c.Pos())
	}
	if n, err := p.Len(); err != nil || n != 1 {
		t.Fatalf("expected 1 stored chunk, got %d (%v)", n, err)
	}
}

func TestProviderMissReturnsErrNotFound(t *testing.T) {
	p := openTestProvider(t)
	defer p.Close()

	if _, err := p.LoadChunk(world.ChunkPos{1, 1}, world.DefaultDimensions()); !errors.Is(err, leveldb.ErrNotFound) {
		t.Fatalf("expected leveldb.ErrNotFound, got %v", err)
	}

	c := world.NewChunk(world.ChunkPos{1, 1}, world.DefaultDimensions())
	_ = p.StoreChunk(c)
	if err := p.Delete(c.Pos()); err != nil {
		t.Fatalf("failed deleting chunk: %v", err)
	}
	if _, err := p.LoadChunk(c.Pos(), world.DefaultDimensions()); !errors.Is(err, leveldb.ErrNotFound) {
		t.Fatalf("expected deleted chunk to be gone, got %v", err)
	}
}

func TestProviderRejectsOtherDimensions(t *testing.T) {
	p := openTestProvider(t)
	defer p.Close()

	c := world.NewChunk(world.ChunkPos{}, world.DefaultDimensions())
	_ = p.StoreChunk(c)

	small := world.Dimensions{Chunk: [2]uint8{4, 4}, Tile: mgl64.Vec2{16, 16}}
	if _, err := p.LoadChunk(c.Pos(), small); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for mismatching dimensions, got %v", err)
	}
}

func TestProviderIndexKeepsNegativePositionsApart(t *testing.T) {
	seen := map[string]world.ChunkPos{}
	for _, pos := range []world.ChunkPos{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}, {1, -1}, {-2147483648, 2147483647}} {
		k := string(index(pos))
		if other, ok := seen[k]; ok {
			t.Fatalf("positions %v and %v share key %x", pos, other, k)
		}
		seen[k] = pos
	}
}

func TestProviderRestoresEvictedChunks(t *testing.T) {
	p := openTestProvider(t)
	w := world.Config{
		Generator: terrain.New(7),
		Provider:  p,
		Policy:    world.BoxPolicy{Radius: [2]int32{1, 1}},
	}.New()

	<-w.Exec(func(tx *world.Tx) {
		w.Loader().Move(tx, mgl64.Vec2{})
		w.Loader().Load(tx)
		w.Loader().Move(tx, mgl64.Vec2{5000, 5000})
		w.Loader().Load(tx)
		w.Loader().Move(tx, mgl64.Vec2{})
		if s := w.Loader().Load(tx); s.Restored != 9 || s.Generated != 0 {
			t.Errorf("expected all 9 chunks to be restored, got %+v", s)
		}
		c, _ := tx.Chunk(world.ChunkPos{})
		if c.Digest() != terrain.Generate(world.ChunkPos{}, 7, w.Dimensions()).Digest() {
			t.Error("expected restored chunk to match a freshly generated one")
		}
	})
	if err := w.Close(); err != nil {
		t.Fatalf("failed closing world: %v", err)
	}
}
