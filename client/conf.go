package client

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/PizzaLvr49/moonlit/client/internal/satmath"
	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/PizzaLvr49/moonlit/client/world/generator/pattern"
	"github.com/PizzaLvr49/moonlit/client/world/generator/terrain"
	"github.com/PizzaLvr49/moonlit/client/world/memdb"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml"
)

// DefaultSeed is the seed used when no seed is configured.
const DefaultSeed uint64 = 42

// ErrInvalidConfig is returned by UserConfig.Config if a setting holds a value
// that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains options for starting a Moonlit client session.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default(). Every record is tagged with the session ID.
	Log *slog.Logger
	// Seed is the seed of the world. Two sessions with the same seed and
	// generator settings show the same terrain.
	Seed uint64
	// RandomSeed specifies if Seed should be ignored in favour of a seed drawn
	// at random when the session starts.
	RandomSeed bool
	// Dimensions specifies the size of chunks and tiles. If left as the zero
	// value, world.DefaultDimensions() is used.
	Dimensions world.Dimensions
	// Policy decides which chunks are loaded around the camera. If nil, a
	// render distance of 2 chunks along both axes is used.
	Policy world.RangePolicy
	// Generator returns the world.Generator to use for the seed of the
	// session. If nil, terrain generation with terrain.DefaultSettings() is
	// used.
	Generator func(seed uint64) world.Generator
	// Provider is the world.Provider that evicted chunks are handed to. If
	// nil, chunks are generated again every time they come into range.
	Provider world.Provider
	// Renderer materialises the chunks of the world. If nil, chunks are
	// streamed without being drawn.
	Renderer world.Renderer
	// Camera holds the settings of the camera. Its Input field supplies the
	// movement direction every tick.
	Camera camera.Config
	// GeneratorWorkers is the maximum number of chunks generated in parallel.
	// If 0 or lower, the number of CPUs is used.
	GeneratorWorkers int
	// TickInterval is the interval at which the world ticks on its own. If 0
	// or lower, the owner of the Client must call World().Tick() itself, for
	// example once per rendered frame.
	TickInterval time.Duration
}

// New creates a Client using fields of conf. The world starts ticking
// immediately if TickInterval is positive.
func (conf Config) New() *Client {
	id := uuid.New()
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	conf.Log = conf.Log.With("session", id.String())
	if conf.RandomSeed {
		conf.Seed = rand.Uint64()
	}
	if conf.Generator == nil {
		conf.Generator = func(seed uint64) world.Generator {
			return terrain.New(seed)
		}
	}

	c := &Client{conf: conf, id: id, seed: conf.Seed, log: conf.Log}
	c.camera = conf.Camera.New()
	c.world = world.Config{
		Log:              conf.Log,
		Dimensions:       conf.Dimensions,
		Policy:           conf.Policy,
		Generator:        conf.Generator(conf.Seed),
		Provider:         conf.Provider,
		Renderer:         conf.Renderer,
		Viewpoint:        c.camera,
		GeneratorWorkers: conf.GeneratorWorkers,
		TickInterval:     conf.TickInterval,
	}.New()
	conf.Log.Info("Session started.", "seed", conf.Seed)
	return c
}

// UserConfig is the user configuration of a Moonlit client. It holds settings
// that affect the world, its terrain and the camera. UserConfig may be
// serialised and can be converted to a Config by calling UserConfig.Config().
type UserConfig struct {
	World struct {
		// Seed is the seed of the world.
		Seed int64
		// RandomSeed specifies if a random seed should be used every session
		// instead of Seed.
		RandomSeed bool
		// ChunkWidth and ChunkHeight are the number of tiles in a chunk along
		// each axis, between 1 and 255.
		ChunkWidth, ChunkHeight int
		// TileWidth and TileHeight are the size of a tile in world units.
		TileWidth, TileHeight float64
		// RenderPolicy is the shape of the area of chunks loaded around the
		// camera, either "box" or "radial".
		RenderPolicy string
		// RenderDistanceX and RenderDistanceY are the number of chunks loaded
		// on either side of the camera's chunk if RenderPolicy is "box".
		RenderDistanceX, RenderDistanceY int
		// RenderRadius is the distance in world units from the camera within
		// which chunk centres are loaded if RenderPolicy is "radial".
		RenderRadius float64
		// Generator is the generator used for new chunks: "terrain" for noise
		// based terrain, "pattern" for hashed tiles or "flat" for grass only.
		Generator string
		// GeneratorWorkers is the number of chunks generated in parallel. Set
		// to 0 to use the number of CPUs.
		GeneratorWorkers int
		// CacheEvicted specifies if evicted chunks should be kept in memory for
		// the rest of the session, so that they do not have to be generated
		// again when they come back into range.
		CacheEvicted bool
		// TickRate is the number of ticks per second of the world. Set to 0 to
		// tick the world once per rendered frame instead.
		TickRate int
	}
	Terrain struct {
		// Noise is the noise primitive used, "simplex" or "perlin".
		Noise string
		// Scale converts tile coordinates into noise space.
		Scale float64
		// Divisor is the amount noise positions are divided by before
		// sampling. Larger values produce larger features.
		Divisor float64
		// ElevationOctaves and MoistureOctaves are the number of noise layers
		// of each channel.
		ElevationOctaves, MoistureOctaves int
		// Lacunarity and Gain are the frequency and amplitude multipliers
		// between noise layers.
		Lacunarity, Gain float64
		// MoistureOffset shifts the moisture channel away from the terrain
		// channel in noise space.
		MoistureOffset float64
		// MoistureSeedOffset is added to the seed for the moisture channel.
		MoistureSeedOffset int64
		// WaterLevel, ShoreLevel, ForestLevel and MountainLevel are the upper
		// terrain bounds of water, shores, plains and forests.
		WaterLevel, ShoreLevel, ForestLevel, MountainLevel float64
		// ShoreGrassMoisture and PlainsGrassMoisture are the moisture above
		// which shores and plains are grass instead of sand.
		ShoreGrassMoisture, PlainsGrassMoisture float64
		// ForestEdgeMoisture is the moisture under which forests thin out.
		ForestEdgeMoisture float64
	}
	Camera struct {
		// Speed is the speed of the camera in world units per second.
		Speed float64
		// Normalise prevents diagonal movement from being faster than
		// movement along one axis.
		Normalise bool
		// DeadZone is the input strength under which gamepad input is
		// ignored.
		DeadZone float64
		// Smoothing is the rate at which the camera accelerates and slows
		// down. Set to 0 to follow input immediately.
		Smoothing float64
	}
}

// Config converts a UserConfig to a Config, so that it may be used for creating
// a Client. An error wrapping ErrInvalidConfig is returned if a setting is out
// of range, and any other error if opening the chunk cache failed.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	conf := Config{
		Log:              log,
		Seed:             uint64(uc.World.Seed),
		RandomSeed:       uc.World.RandomSeed,
		GeneratorWorkers: uc.World.GeneratorWorkers,
		Camera: camera.Config{
			Speed:     uc.Camera.Speed,
			Normalise: uc.Camera.Normalise,
			DeadZone:  uc.Camera.DeadZone,
			Smoothing: uc.Camera.Smoothing,
		},
	}
	var err error
	if conf.Dimensions, err = uc.dimensions(); err != nil {
		return conf, fmt.Errorf("world: %w", err)
	}
	if conf.Policy, err = uc.policy(conf.Dimensions); err != nil {
		return conf, fmt.Errorf("world: %w", err)
	}
	if conf.Generator, err = uc.generator(); err != nil {
		return conf, fmt.Errorf("world: %w", err)
	}
	if uc.World.TickRate < 0 {
		return conf, fmt.Errorf("world: tick rate %d is negative: %w", uc.World.TickRate, ErrInvalidConfig)
	}
	if uc.World.TickRate > 0 {
		conf.TickInterval = time.Second / time.Duration(uc.World.TickRate)
	}
	if uc.World.CacheEvicted {
		conf.Provider, err = memdb.Config{Log: log}.Open()
		if err != nil {
			return conf, fmt.Errorf("create chunk cache: %w", err)
		}
	}
	return conf, nil
}

func (uc UserConfig) dimensions() (world.Dimensions, error) {
	w, h := uc.World.ChunkWidth, uc.World.ChunkHeight
	if w < 1 || w > 255 || h < 1 || h > 255 {
		return world.Dimensions{}, fmt.Errorf("chunk size %dx%d out of range [1, 255]: %w", w, h, ErrInvalidConfig)
	}
	d := world.Dimensions{
		Chunk: [2]uint8{uint8(w), uint8(h)},
		Tile:  mgl64.Vec2{uc.World.TileWidth, uc.World.TileHeight},
	}
	if !d.Valid() {
		return world.Dimensions{}, fmt.Errorf("tile size %vx%v must be positive: %w", d.Tile[0], d.Tile[1], ErrInvalidConfig)
	}
	return d, nil
}

func (uc UserConfig) policy(d world.Dimensions) (world.RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(uc.World.RenderPolicy)) {
	case "", "box":
		x, y := uc.World.RenderDistanceX, uc.World.RenderDistanceY
		if x < 0 || y < 0 || x > world.MaxRenderDistance || y > world.MaxRenderDistance {
			return nil, fmt.Errorf("render distance %dx%d out of range [0, %d]: %w", x, y, world.MaxRenderDistance, ErrInvalidConfig)
		}
		return world.BoxPolicy{Radius: [2]int32{
			satmath.Int32From(int64(uc.World.RenderDistanceX)),
			satmath.Int32From(int64(uc.World.RenderDistanceY)),
		}}, nil
	case "radial":
		r, ext := uc.World.RenderRadius, d.Extent()
		if !(r >= 0) || math.Ceil(r/ext[0]) > world.MaxRenderDistance || math.Ceil(r/ext[1]) > world.MaxRenderDistance {
			return nil, fmt.Errorf("render radius %v must span between 0 and %d chunks: %w", r, world.MaxRenderDistance, ErrInvalidConfig)
		}
		return world.RadialPolicy{Radius: uc.World.RenderRadius}, nil
	}
	return nil, fmt.Errorf("unknown render policy %q: %w", uc.World.RenderPolicy, ErrInvalidConfig)
}

func (uc UserConfig) generator() (func(seed uint64) world.Generator, error) {
	switch strings.ToLower(strings.TrimSpace(uc.World.Generator)) {
	case "", "terrain":
		s, err := uc.terrainSettings()
		if err != nil {
			return nil, err
		}
		return func(seed uint64) world.Generator {
			return terrain.NewWithSettings(seed, s)
		}, nil
	case "pattern":
		return func(seed uint64) world.Generator {
			return pattern.New(seed)
		}, nil
	case "flat":
		return func(uint64) world.Generator {
			return world.NopGenerator{}
		}, nil
	}
	return nil, fmt.Errorf("unknown generator %q: %w", uc.World.Generator, ErrInvalidConfig)
}

func (uc UserConfig) terrainSettings() (terrain.Settings, error) {
	t := uc.Terrain
	kind, err := terrain.ParseNoiseKind(t.Noise)
	if err != nil {
		return terrain.Settings{}, fmt.Errorf("terrain: %w: %w", err, ErrInvalidConfig)
	}
	if t.ElevationOctaves < 0 || t.MoistureOctaves < 0 {
		return terrain.Settings{}, fmt.Errorf("terrain: octave count is negative: %w", ErrInvalidConfig)
	}
	return terrain.Settings{
		Noise:              kind,
		Scale:              t.Scale,
		Divisor:            t.Divisor,
		Elevation:          terrain.Octaves{Count: t.ElevationOctaves, Lacunarity: t.Lacunarity, Gain: t.Gain},
		Moisture:           terrain.Octaves{Count: t.MoistureOctaves, Lacunarity: t.Lacunarity, Gain: t.Gain},
		MoistureOffset:     t.MoistureOffset,
		MoistureSeedOffset: uint64(t.MoistureSeedOffset),
		Thresholds: terrain.Thresholds{
			Water:       t.WaterLevel,
			Shore:       t.ShoreLevel,
			Forest:      t.ForestLevel,
			Mountain:    t.MountainLevel,
			ShoreGrass:  t.ShoreGrassMoisture,
			PlainsGrass: t.PlainsGrassMoisture,
			ForestEdge:  t.ForestEdgeMoisture,
		},
	}, nil
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	d := world.DefaultDimensions()
	c.World.Seed = int64(DefaultSeed)
	c.World.ChunkWidth, c.World.ChunkHeight = int(d.Chunk[0]), int(d.Chunk[1])
	c.World.TileWidth, c.World.TileHeight = d.Tile[0], d.Tile[1]
	c.World.RenderPolicy = "box"
	c.World.RenderDistanceX, c.World.RenderDistanceY = 2, 2
	c.World.RenderRadius = 400
	c.World.Generator = "terrain"

	s := terrain.DefaultSettings()
	c.Terrain.Noise = s.Noise.String()
	c.Terrain.Scale = s.Scale
	c.Terrain.Divisor = s.Divisor
	c.Terrain.ElevationOctaves, c.Terrain.MoistureOctaves = s.Elevation.Count, s.Moisture.Count
	c.Terrain.Lacunarity, c.Terrain.Gain = s.Elevation.Lacunarity, s.Elevation.Gain
	c.Terrain.MoistureOffset = s.MoistureOffset
	c.Terrain.MoistureSeedOffset = int64(s.MoistureSeedOffset)
	c.Terrain.WaterLevel = s.Thresholds.Water
	c.Terrain.ShoreLevel = s.Thresholds.Shore
	c.Terrain.ForestLevel = s.Thresholds.Forest
	c.Terrain.MountainLevel = s.Thresholds.Mountain
	c.Terrain.ShoreGrassMoisture = s.Thresholds.ShoreGrass
	c.Terrain.PlainsGrassMoisture = s.Thresholds.PlainsGrass
	c.Terrain.ForestEdgeMoisture = s.Thresholds.ForestEdge

	c.Camera.Speed = camera.DefaultSpeed
	c.Camera.Normalise = true
	c.Camera.DeadZone = 0.1
	c.Camera.Smoothing = 8
	return c
}

// LoadUserConfig reads the UserConfig stored in the TOML file at path. Settings
// missing from the file keep their default values. If the file does not exist,
// it is created with DefaultConfig().
func LoadUserConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("create default config: %w", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}
