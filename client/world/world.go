package world

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// World is an infinite tile world that streams chunks around a viewpoint. All
// state of the World is owned by a single transaction goroutine: chunks are
// only added to or removed from its Registry inside transactions, which are
// run one after another through Exec. A World is safe for simultaneous use.
type World struct {
	conf Config

	queue        chan transaction
	queueClosing chan struct{}
	queueing     sync.WaitGroup

	o sync.Once

	closing chan struct{}
	running sync.WaitGroup

	// chunks holds the chunks currently materialised. It must only be
	// accessed from within a transaction.
	chunks *Registry
	loader *Loader

	// lastTick is the time at which the previous tick started. It must only be
	// accessed from within a transaction.
	lastTick time.Time
	tps      tpsSampler

	currentTick atomic.Int64
	tpsBits     atomic.Uint64
	loaded      atomic.Int64

	metrics *Metrics
}

// ExecFunc is a function that performs a synchronised transaction on a World.
type ExecFunc func(tx *Tx)

// Exec performs a synchronised transaction f on a World. Exec returns a channel
// that is closed once the transaction is complete. If the World is closed, f
// is not run and the channel returned is closed immediately.
func (w *World) Exec(f ExecFunc) <-chan struct{} {
	c := make(chan struct{})
	select {
	case w.queue <- normalTransaction{c: c, f: f}:
	case <-w.queueClosing:
		close(c)
	}
	return c
}

// handleTransactions continuously reads transactions from the queue and runs
// them.
func (w *World) handleTransactions() {
	for {
		select {
		case tx := <-w.queue:
			tx.Run(w)
		case <-w.queueClosing:
			w.queueing.Done()
			return
		}
	}
}

// Tick performs a single tick of the World and waits for it to complete. It
// returns what the Loader did during the tick. Tick is meant for Worlds
// created with a TickInterval of 0 or lower, whose owner drives the tick rate,
// such as a render loop.
func (w *World) Tick() LoadStats {
	var stats LoadStats
	<-w.Exec(func(tx *Tx) {
		stats = ticker{interval: w.conf.TickInterval}.tick(tx)
	})
	return stats
}

// Dimensions returns the Dimensions of chunks in the World.
func (w *World) Dimensions() Dimensions {
	return w.conf.Dimensions
}

// Loader returns the Loader that streams chunks around the World's viewpoint.
func (w *World) Loader() *Loader {
	return w.loader
}

// Metrics returns the counters of the World.
func (w *World) Metrics() *Metrics {
	return w.metrics
}

// CurrentTick returns the number of ticks the World has performed.
func (w *World) CurrentTick() int64 {
	return w.currentTick.Load()
}

// TPS returns the current average ticks per second of the World. The value is
// averaged over the last tpsSampleSize ticks and is zero until enough samples
// have been recorded.
func (w *World) TPS() float64 {
	return math.Float64frombits(w.tpsBits.Load())
}

// LoadedChunkCount returns the number of chunks materialised at the end of the
// last transaction that changed it.
func (w *World) LoadedChunkCount() int {
	return int(w.loaded.Load())
}

// Close closes the World. Ticking stops, every materialised chunk is destroyed
// through the Renderer and handed to the Provider, after which the Provider is
// closed.
func (w *World) Close() error {
	var err error
	w.o.Do(func() {
		err = w.close()
	})
	return err
}

// close stops the World from ticking, unloads all chunks and closes the
// Provider.
func (w *World) close() error {
	close(w.closing)
	w.running.Wait()

	<-w.Exec(w.loader.unloadAll)

	close(w.queueClosing)
	w.queueing.Wait()

	w.conf.Log.Debug("Closing provider...")
	if err := w.conf.Provider.Close(); err != nil {
		w.conf.Log.Error("close world provider: " + err.Error())
		return err
	}
	return nil
}
