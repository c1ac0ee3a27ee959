package terrain

import (
	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/go-gl/mathgl/mgl64"
)

// Thresholds holds the decision boundaries used to turn a terrain value and a
// moisture value into a tile type. Terrain bands are checked from low to high:
//
//	terrain < Water                      water
//	terrain < Shore     moisture > ShoreGrass    grass, else sand
//	terrain < Forest    moisture > PlainsGrass   grass, else sand
//	terrain < Mountain  moisture < ForestEdge    forest edge, else forest
//	otherwise                            mountain
type Thresholds struct {
	Water, Shore, Forest, Mountain      float64
	ShoreGrass, PlainsGrass, ForestEdge float64
}

// DefaultThresholds returns the thresholds the world is tuned for.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Water:       -0.25,
		Shore:       0,
		Forest:      0.3,
		Mountain:    0.55,
		ShoreGrass:  0.3,
		PlainsGrass: 0.1,
		ForestEdge:  -0.2,
	}
}

// Classify returns the tile type for a terrain and moisture value. It is
// defined for every pair of float64 values: anything not below the Mountain
// threshold, including a NaN terrain value, is a mountain.
func (t Thresholds) Classify(terrain, moisture float64) world.TileType {
	switch {
	case terrain < t.Water:
		return world.Water
	case terrain < t.Shore:
		if moisture > t.ShoreGrass {
			return world.Grass
		}
		return world.Sand
	case terrain < t.Forest:
		if moisture > t.PlainsGrass {
			return world.Grass
		}
		return world.Sand
	case terrain < t.Mountain:
		if moisture < t.ForestEdge {
			return world.ForestEdge
		}
		return world.Forest
	}
	return world.Mountain
}

// Settings holds all tunable parameters of terrain generation.
type Settings struct {
	// Noise is the noise primitive used by both channels.
	Noise NoiseKind
	// Scale converts world tile coordinates into noise space.
	Scale float64
	// Divisor is passed to NewField for both channels.
	Divisor float64
	// Elevation and Moisture are the octaves of the terrain and moisture
	// channel.
	Elevation, Moisture Octaves
	// MoistureOffset is added to both axes of the scaled position before the
	// moisture channel is sampled.
	MoistureOffset float64
	// MoistureSeedOffset is added to the world seed to seed the moisture
	// channel, so that it is not correlated with the terrain channel.
	MoistureSeedOffset uint64
	// Thresholds turns the two channels into tile types.
	Thresholds Thresholds
}

// DefaultSettings returns the settings the world is tuned for.
func DefaultSettings() Settings {
	return Settings{
		Noise:              NoiseSimplex,
		Scale:              0.08,
		Divisor:            DefaultDivisor,
		Elevation:          Octaves{Count: 4, Lacunarity: 2, Gain: 0.5},
		Moisture:           Octaves{Count: 3, Lacunarity: 2, Gain: 0.5},
		MoistureOffset:     100,
		MoistureSeedOffset: 1000,
		Thresholds:         DefaultThresholds(),
	}
}

// Classifier maps world tile coordinates to tile types using two independent
// noise channels, terrain and moisture. A Classifier is safe for concurrent
// use.
type Classifier struct {
	s        Settings
	terrain  *Field
	moisture *Field
}

// NewClassifier creates a Classifier for the seed and settings passed.
func NewClassifier(seed uint64, s Settings) *Classifier {
	return &Classifier{
		s:        s,
		terrain:  NewField(seed, s.Noise, s.Divisor),
		moisture: NewField(seed+s.MoistureSeedOffset, s.Noise, s.Divisor),
	}
}

// Values returns the terrain and moisture values at the world tile passed.
func (c *Classifier) Values(x, y int64) (terrain, moisture float64) {
	pos := mgl64.Vec2{float64(x) * c.s.Scale, float64(y) * c.s.Scale}
	terrain = c.terrain.Sample(pos, c.s.Elevation)
	moisture = c.moisture.Sample(pos.Add(mgl64.Vec2{c.s.MoistureOffset, c.s.MoistureOffset}), c.s.Moisture)
	return terrain, moisture
}

// Classify returns the tile type at the world tile passed.
func (c *Classifier) Classify(x, y int64) world.TileType {
	return c.s.Thresholds.Classify(c.Values(x, y))
}

// Classify returns the tile type at the world tile passed for the seed passed,
// using DefaultSettings. It builds a new Classifier on every call: callers
// classifying many tiles should create a Classifier once instead.
func Classify(x, y int64, seed uint64) world.TileType {
	return NewClassifier(seed, DefaultSettings()).Classify(x, y)
}
