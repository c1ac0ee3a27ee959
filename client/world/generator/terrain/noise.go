package terrain

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// NoiseKind selects the coherent noise primitive that a Field layers into
// fractal noise.
type NoiseKind uint8

const (
	// NoiseSimplex uses OpenSimplex noise. It is the default.
	NoiseSimplex NoiseKind = iota
	// NoisePerlin uses classic Perlin noise.
	NoisePerlin
)

// ParseNoiseKind parses the name of a noise primitive, "simplex" or "perlin".
// An empty name results in NoiseSimplex.
func ParseNoiseKind(name string) (NoiseKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "simplex", "opensimplex":
		return NoiseSimplex, nil
	case "perlin":
		return NoisePerlin, nil
	}
	return 0, fmt.Errorf("unknown noise kind %q", name)
}

// String ...
func (k NoiseKind) String() string {
	if k == NoisePerlin {
		return "perlin"
	}
	return "simplex"
}

// Octaves holds the parameters of fractal Brownian motion: the number of
// layers summed, the frequency multiplier between layers (lacunarity) and the
// amplitude multiplier between layers (gain).
type Octaves struct {
	Count      int
	Lacunarity float64
	Gain       float64
}

// DefaultDivisor is the amount positions are divided by before sampling noise.
// Larger divisors produce larger terrain features.
const DefaultDivisor = 10.0

// primitive is a seeded 2D coherent noise function.
type primitive interface {
	Eval2(x, y float64) float64
}

type perlinPrimitive struct {
	p *perlin.Perlin
}

func (p perlinPrimitive) Eval2(x, y float64) float64 {
	return p.p.Noise2D(x, y)
}

// Field is a seeded 2D fractal noise field. Sampling a Field is a pure
// function of the position and octaves passed, and a Field may be sampled
// from multiple goroutines at once.
type Field struct {
	noise   primitive
	divisor float64
}

// NewField returns a Field of the noise kind passed, seeded with seed. If
// divisor is 0 or lower, DefaultDivisor is used.
func NewField(seed uint64, kind NoiseKind, divisor float64) *Field {
	if divisor <= 0 {
		divisor = DefaultDivisor
	}
	f := &Field{divisor: divisor}
	switch kind {
	case NoisePerlin:
		f.noise = perlinPrimitive{p: perlin.NewPerlin(2, 2, 1, int64(seed))}
	default:
		f.noise = opensimplex.New(int64(seed))
	}
	return f
}

// Sample returns the fractal noise value at pos, clamped to [-1, 1]. Layer i
// is sampled at frequency lacunarity^i with amplitude gain^i. The layers are
// not bounded individually, so the sum is clamped to keep thresholds
// applied to it meaningful.
func (f *Field) Sample(pos mgl64.Vec2, o Octaves) float64 {
	scaled := pos.Mul(1 / f.divisor)

	var sum float64
	amplitude, frequency := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		p := scaled.Mul(frequency)
		sum += f.noise.Eval2(p[0], p[1]) * amplitude
		amplitude *= o.Gain
		frequency *= o.Lacunarity
	}
	return mgl64.Clamp(sum, -1, 1)
}

// Sample returns the fractal simplex noise value at pos for the seed passed,
// using DefaultDivisor. It builds a new Field on every call: callers sampling
// many positions should create a Field once with NewField instead.
func Sample(pos mgl64.Vec2, o Octaves, seed uint64) float64 {
	return NewField(seed, NoiseSimplex, DefaultDivisor).Sample(pos, o)
}
