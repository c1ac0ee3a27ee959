// Package memdb implements a world.Provider that keeps evicted chunks in an
// in-memory LevelDB database for the rest of the session. Chunks stored in it
// are restored instead of generated when they come back into range. Nothing
// is written to disk.
package memdb

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/storage"
)

// Config holds the settings of a Provider.
type Config struct {
	// Log is the Logger used to report chunks that could not be decoded. If
	// nil, slog.Default() is used.
	Log *slog.Logger
	// Compression is the compression used for LevelDB tables. If left as the
	// zero value, opt.FlateCompression is used.
	Compression opt.Compression
	// BlockSize is the LevelDB block size. If 0 or lower, 16 KiB is used.
	BlockSize int
}

// Provider is a world.Provider backed by an in-memory LevelDB database. It is
// safe for concurrent use.
type Provider struct {
	conf Config
	ldb  *leveldb.DB
}

// ErrCorrupt is returned by LoadChunk if a stored chunk does not match its
// digest or the dimensions it is requested with.
var ErrCorrupt = errors.New("memdb: corrupt chunk")

// Open creates a new, empty Provider using the Config conf.
func (conf Config) Open() (*Provider, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Compression == opt.DefaultCompression {
		conf.Compression = opt.FlateCompression
	}
	if conf.BlockSize <= 0 {
		conf.BlockSize = 16 * opt.KiB
	}
	ldb, err := leveldb.Open(storage.NewMemStorage(), &opt.Options{
		Compression: conf.Compression,
		BlockSize:   conf.BlockSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open memdb: %w", err)
	}
	return &Provider{conf: conf, ldb: ldb}, nil
}

// LoadChunk loads the chunk at pos. leveldb.ErrNotFound is returned if the
// chunk was never stored.
func (p *Provider) LoadChunk(pos world.ChunkPos, d world.Dimensions) (*world.Chunk, error) {
	data, err := p.ldb.Get(index(pos), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, leveldb.ErrNotFound
		}
		return nil, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	c, err := decodeChunk(data, d)
	if err != nil {
		p.conf.Log.Debug("memdb: discarding stored chunk: "+err.Error(), "pos", pos.String())
		return nil, fmt.Errorf("load chunk %v: %w", pos, err)
	}
	if c.Pos() != pos {
		return nil, fmt.Errorf("load chunk %v: stored under wrong key %v: %w", pos, c.Pos(), ErrCorrupt)
	}
	return c, nil
}

// StoreChunk stores the chunk passed, replacing any chunk previously stored at
// its position.
func (p *Provider) StoreChunk(c *world.Chunk) error {
	data, err := encodeChunk(c)
	if err != nil {
		return fmt.Errorf("store chunk %v: %w", c.Pos(), err)
	}
	if err := p.ldb.Put(index(c.Pos()), data, nil); err != nil {
		return fmt.Errorf("store chunk %v: %w", c.Pos(), err)
	}
	return nil
}

// Delete removes the chunk at pos from the Provider, if it was stored.
func (p *Provider) Delete(pos world.ChunkPos) error {
	if err := p.ldb.Delete(index(pos), nil); err != nil {
		return fmt.Errorf("delete chunk %v: %w", pos, err)
	}
	return nil
}

// Len returns the number of chunks currently stored.
func (p *Provider) Len() (int, error) {
	it := p.ldb.NewIterator(nil, nil)
	defer it.Release()

	n := 0
	for it.Next() {
		if len(it.Key()) == keyLen && it.Key()[0] == keyChunk {
			n++
		}
	}
	return n, it.Error()
}

// Close closes the database and releases all chunks stored in it.
func (p *Provider) Close() error {
	return p.ldb.Close()
}
