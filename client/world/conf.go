package world

import (
	"log/slog"
	"runtime"
	"time"
)

// Config may be used to create a new World. It holds a variety of fields that
// influence the World.
type Config struct {
	// Log is the Logger that will be used to log errors and debug messages to.
	// If set to nil, slog.Default() is used.
	Log *slog.Logger
	// Dimensions specifies the size of chunks and tiles. If left as the zero
	// value, DefaultDimensions() is used. Config.New panics if Dimensions is
	// set but not valid.
	Dimensions Dimensions
	// Policy decides which chunks are loaded around the viewpoint. If nil, a
	// BoxPolicy with a render distance of 2 chunks along both axes is used.
	Policy RangePolicy
	// Generator is the Generator used to fill chunks that come into range. If
	// nil, NopGenerator is used.
	Generator Generator
	// Provider is consulted before generating a chunk and receives chunks that
	// are evicted. If nil, NopProvider is used.
	Provider Provider
	// Renderer materialises and destroys the visual representation of chunks.
	// If nil, NopRenderer is used.
	Renderer Renderer
	// Viewpoint supplies the position that chunks are streamed around every
	// tick. If nil, the viewpoint only changes through Loader.Move.
	Viewpoint ViewpointSource
	// GeneratorWorkers is the maximum number of chunks generated in parallel
	// during a single tick. If set to 0 or lower, runtime.NumCPU() is used.
	GeneratorWorkers int
	// TickInterval is the interval at which the World ticks on its own. If set
	// to 0 or lower, the World never ticks by itself and World.Tick must be
	// called by the owner of the World instead.
	TickInterval time.Duration
}

// New creates a new World using the Config conf. The World returned will start
// ticking as soon as it is created if TickInterval is positive.
func (conf Config) New() *World {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Dimensions == (Dimensions{}) {
		conf.Dimensions = DefaultDimensions()
	}
	if !conf.Dimensions.Valid() {
		panic("world.Config: invalid dimensions")
	}
	if conf.Policy == nil {
		conf.Policy = BoxPolicy{Radius: [2]int32{2, 2}}
	}
	if conf.Generator == nil {
		conf.Generator = NopGenerator{}
	}
	if conf.Provider == nil {
		conf.Provider = NopProvider{}
	}
	if conf.Renderer == nil {
		conf.Renderer = NopRenderer{}
	}
	if conf.GeneratorWorkers <= 0 {
		conf.GeneratorWorkers = runtime.NumCPU()
	}
	w := &World{
		conf:         conf,
		queue:        make(chan transaction),
		queueClosing: make(chan struct{}),
		closing:      make(chan struct{}),
		chunks:       NewRegistry(64),
		metrics:      NewMetrics(),
	}
	w.loader = &Loader{w: w}

	w.queueing.Add(1)
	go w.handleTransactions()

	if conf.TickInterval > 0 {
		w.running.Add(1)
		go ticker{interval: conf.TickInterval}.tickLoop(w)
	}
	return w
}
