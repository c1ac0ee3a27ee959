package world

import (
	"sync"
	"time"
)

// Metrics tracks counters of the chunk streaming of a World.
type Metrics struct {
	mu sync.Mutex

	generated uint64
	restored  uint64
	evicted   uint64
	panics    uint64

	ticks    uint64
	lastTick time.Duration
	maxTick  time.Duration
}

// MetricsSnapshot is a copy of the counters of a Metrics value.
type MetricsSnapshot struct {
	// Generated is the number of chunks produced by the Generator.
	Generated uint64
	// Restored is the number of chunks loaded from the Provider.
	Restored uint64
	// Evicted is the number of chunks removed because they went out of range.
	Evicted uint64
	// GeneratorPanics is the number of chunk generations that panicked.
	GeneratorPanics uint64
	// Ticks is the number of ticks observed.
	Ticks uint64
	// LastTick and MaxTick are the duration of the last and the slowest tick.
	LastTick, MaxTick time.Duration
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// AddLoad adds the chunks loaded and evicted during a single Load call.
func (m *Metrics) AddLoad(s LoadStats) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.generated += uint64(s.Generated)
	m.restored += uint64(s.Restored)
	m.evicted += uint64(s.Evicted)
	m.mu.Unlock()
}

// IncGeneratorPanics increments the counter of panicking generations.
func (m *Metrics) IncGeneratorPanics() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// ObserveTick records the duration of a single tick.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.ticks++
	m.lastTick = d
	m.maxTick = max(m.maxTick, d)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Generated:       m.generated,
		Restored:        m.restored,
		Evicted:         m.evicted,
		GeneratorPanics: m.panics,
		Ticks:           m.ticks,
		LastTick:        m.lastTick,
		MaxTick:         m.maxTick,
	}
}
