package world

import (
	"math"
	"time"
)

// ticker implements World ticking methods.
type ticker struct {
	interval time.Duration
}

const (
	tpsSampleSize = 20
	// tpsWarningRatio is the fraction of the expected tick rate below which a
	// warning is logged.
	tpsWarningRatio = 0.95
)

// tickLoop starts ticking the World at the interval of the ticker, streaming
// chunks around the viewpoint every tick.
func (t ticker) tickLoop(w *World) {
	tc := time.NewTicker(t.interval)
	defer tc.Stop()
	for {
		select {
		case <-tc.C:
			<-w.Exec(func(tx *Tx) {
				t.tick(tx)
			})
		case <-w.closing:
			// World is being closed: Stop ticking and get rid of a task.
			w.running.Done()
			return
		}
	}
}

// tick performs a tick on the World: the viewpoint is advanced by the
// ViewpointSource and the Loader streams chunks around it.
func (t ticker) tick(tx *Tx) LoadStats {
	w := tx.World()

	tickStart := time.Now()
	var dt time.Duration
	if !w.lastTick.IsZero() {
		dt = tickStart.Sub(w.lastTick)
	}
	w.lastTick = tickStart
	t.sample(w, dt)
	w.currentTick.Add(1)

	if src := w.conf.Viewpoint; src != nil {
		w.loader.Move(tx, src.Viewpoint(dt))
	}
	stats := w.loader.Load(tx)
	w.metrics.ObserveTick(time.Since(tickStart))
	return stats
}

// sample records the duration between two ticks and updates the TPS of the
// World once enough samples were collected.
func (t ticker) sample(w *World, duration time.Duration) {
	s := &w.tps
	if duration <= 0 {
		return
	}
	s.durationSum += duration
	s.ticksCount++
	if s.ticksCount < tpsSampleSize {
		return
	}
	avg := s.durationSum / time.Duration(s.ticksCount)
	s.durationSum, s.ticksCount = 0, 0

	tps := 1.0 / avg.Seconds()
	w.tpsBits.Store(math.Float64bits(tps))
	if t.interval <= 0 {
		return
	}
	expected := 1.0 / t.interval.Seconds()
	if tps < expected*tpsWarningRatio {
		if !s.warned {
			w.conf.Log.Warn("TPS dropped below threshold.", "tps", tps, "expected", expected)
			s.warned = true
		}
	} else {
		s.warned = false
	}
}

// tpsSampler holds the running state used to compute the TPS of a World.
type tpsSampler struct {
	durationSum time.Duration
	ticksCount  int
	warned      bool
}
