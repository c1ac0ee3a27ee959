package terrain

import (
	"math"
	"sync"
	"testing"

	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSampleIsDeterministicAndBounded(t *testing.T) {
	o := Octaves{Count: 6, Lacunarity: 2, Gain: 0.9}
	for _, kind := range []NoiseKind{NoiseSimplex, NoisePerlin} {
		a, b := NewField(42, kind, 0), NewField(42, kind, 0)
		for i := -50; i <= 50; i++ {
			pos := mgl64.Vec2{float64(i) * 3.7, float64(i) * -1.3}
			va, vb := a.Sample(pos, o), b.Sample(pos, o)
			if va != vb {
				t.Fatalf("%v: sample at %v differs between equal fields: %v != %v", kind, pos, va, vb)
			}
			if va < -1 || va > 1 {
				t.Fatalf("%v: sample at %v out of bounds: %v", kind, pos, va)
			}
		}
	}
}

func TestSampleDependsOnSeed(t *testing.T) {
	o := Octaves{Count: 4, Lacunarity: 2, Gain: 0.5}
	differs := false
	for i := 0; i < 20 && !differs; i++ {
		pos := mgl64.Vec2{float64(i)*7.3 + 0.5, float64(i)*2.1 + 0.25}
		differs = Sample(pos, o, 1) != Sample(pos, o, 2)
	}
	if !differs {
		t.Fatal("expected different seeds to produce different fields")
	}
}

func TestSampleAtLargeCoordinates(t *testing.T) {
	f := NewField(7, NoiseSimplex, 0)
	o := DefaultSettings().Elevation
	for _, v := range []float64{1e5, -1e5, 8000, -8000} {
		s := f.Sample(mgl64.Vec2{v, -v}, o)
		if math.IsNaN(s) || s < -1 || s > 1 {
			t.Fatalf("sample at %v is not a bounded number: %v", v, s)
		}
	}
}

func TestSampleWithoutOctaves(t *testing.T) {
	if got := NewField(1, NoiseSimplex, 0).Sample(mgl64.Vec2{3, 4}, Octaves{}); got != 0 {
		t.Fatalf("expected 0 without octaves, got %v", got)
	}
}

func TestParseNoiseKind(t *testing.T) {
	for name, want := range map[string]NoiseKind{"": NoiseSimplex, "Simplex": NoiseSimplex, " perlin ": NoisePerlin} {
		got, err := ParseNoiseKind(name)
		if err != nil || got != want {
			t.Fatalf("ParseNoiseKind(%q): expected %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := ParseNoiseKind("worley"); err == nil {
		t.Fatal("expected unknown noise kind to fail")
	}
}

func TestThresholdsAreTotal(t *testing.T) {
	th := DefaultThresholds()
	for i := 0; i <= 200; i++ {
		for j := 0; j <= 200; j++ {
			terrain, moisture := -1+float64(i)/100, -1+float64(j)/100
			if tile := th.Classify(terrain, moisture); !tile.Valid() {
				t.Fatalf("classify(%v, %v) returned invalid tile %v", terrain, moisture, tile)
			}
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if tile := th.Classify(v, v); !tile.Valid() {
			t.Fatalf("classify(%v, %v) returned invalid tile %v", v, v, tile)
		}
	}
	if got := th.Classify(math.NaN(), 0); got != world.Mountain {
		t.Fatalf("expected NaN terrain to classify as mountain, got %v", got)
	}
}

func TestThresholdsDecisionTree(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		terrain, moisture float64
		want              world.TileType
	}{
		{-0.5, 0.9, world.Water},
		{-0.25, 0.31, world.Grass},
		{-0.1, 0.3, world.Sand},
		{0, 0.11, world.Grass},
		{0.2, 0.1, world.Sand},
		{0.3, -0.21, world.ForestEdge},
		{0.5, -0.2, world.Forest},
		{0.55, -1, world.Mountain},
		{1, 1, world.Mountain},
	}
	for _, c := range cases {
		if got := th.Classify(c.terrain, c.moisture); got != c.want {
			t.Fatalf("classify(%v, %v): expected %v, got %v", c.terrain, c.moisture, c.want, got)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewClassifier(99, DefaultSettings())
	for x := int64(-30); x <= 30; x += 3 {
		for y := int64(-30); y <= 30; y += 5 {
			if a, b := c.Classify(x, y), Classify(x, y, 99); a != b {
				t.Fatalf("classify(%d, %d) differs: %v != %v", x, y, a, b)
			}
		}
	}
}

func TestClassifierChannelsAreIndependent(t *testing.T) {
	c := NewClassifier(5, DefaultSettings())
	same := 0
	for x := int64(0); x < 50; x++ {
		terrain, moisture := c.Values(x, x*2)
		if terrain == moisture {
			same++
		}
	}
	if same == 50 {
		t.Fatal("expected terrain and moisture channels to differ")
	}
}

func TestGenerateMatchesClassifier(t *testing.T) {
	d := world.Dimensions{Chunk: [2]uint8{6, 6}, Tile: mgl64.Vec2{16, 16}}
	pos := world.ChunkPos{-3, 2}
	c := Generate(pos, 1234, d)
	cl := NewClassifier(1234, DefaultSettings())
	for y := uint8(0); y < 6; y++ {
		for x := uint8(0); x < 6; x++ {
			wx, wy := int64(-3*6)+int64(x), int64(2*6)+int64(y)
			if got, want := c.Tile(world.TilePos{x, y}), cl.Classify(wx, wy); got != want {
				t.Fatalf("tile (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
	if again := Generate(pos, 1234, d); again.Digest() != c.Digest() {
		t.Fatal("expected generating the same chunk twice to produce the same tiles")
	}
}

func TestGeneratorConcurrentUse(t *testing.T) {
	g := New(77)
	d := world.DefaultDimensions()

	const n = 16
	chunks := make([]*world.Chunk, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pos := world.ChunkPos{int32(i), int32(-i)}
			chunks[i] = world.NewChunk(pos, d)
			g.GenerateChunk(pos, chunks[i])
		}()
	}
	wg.Wait()
	for i, c := range chunks {
		if want := Generate(c.Pos(), 77, d); want.Digest() != c.Digest() {
			t.Fatalf("chunk %d generated concurrently differs from sequential generation", i)
		}
	}
}

func TestGeneratorProducesVariedTerrain(t *testing.T) {
	g := New(2024)
	d := world.DefaultDimensions()
	seen := map[world.TileType]bool{}
	for x := int32(-8); x < 8; x++ {
		for y := int32(-8); y < 8; y++ {
			c := world.NewChunk(world.ChunkPos{x, y}, d)
			g.GenerateChunk(c.Pos(), c)
			for _, tile := range c.Tiles() {
				seen[tile] = true
			}
		}
	}
	if len(seen) < 3 {
		t.Fatalf("expected at least 3 different tile types over 256 chunks, got %d", len(seen))
	}
}
