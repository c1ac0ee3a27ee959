package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxPolicyCoversRectangle(t *testing.T) {
	d := DefaultDimensions()
	p := BoxPolicy{Radius: [2]int32{2, 1}}
	viewpoint := mgl64.Vec2{-1, 170}

	wanted := p.Wanted(viewpoint, d)
	if len(wanted) != 5*3 {
		t.Fatalf("expected 15 chunks, got %d", len(wanted))
	}
	seen := map[ChunkPos]bool{}
	for _, pos := range wanted {
		if seen[pos] {
			t.Fatalf("position %v returned twice", pos)
		}
		seen[pos] = true
	}
	for x := int32(-3); x <= 1; x++ {
		for y := int32(0); y <= 2; y++ {
			if !seen[ChunkPos{x, y}] {
				t.Fatalf("expected chunk (%d, %d) to be wanted", x, y)
			}
		}
	}
	if wanted[0] != (ChunkPos{-1, 1}) {
		t.Fatalf("expected the viewpoint's chunk first, got %v", wanted[0])
	}
}

func TestBoxPolicyInRange(t *testing.T) {
	d := DefaultDimensions()
	p := BoxPolicy{Radius: [2]int32{2, 2}}
	if p.InRange(ChunkPos{5, 5}, mgl64.Vec2{}, d) {
		t.Fatal("expected (5, 5) to be out of range")
	}
	if !p.InRange(ChunkPos{2, 0}, mgl64.Vec2{}, d) {
		t.Fatal("expected (2, 0) to be in range")
	}
	if !p.InRange(ChunkPos{-2, -2}, mgl64.Vec2{}, d) {
		t.Fatal("expected (-2, -2) to be in range")
	}
}

func TestBoxPolicyAtGridEdge(t *testing.T) {
	d := DefaultDimensions()
	p := BoxPolicy{Radius: [2]int32{1, 1}}
	wanted := p.Wanted(mgl64.Vec2{1e300, 1e300}, d)
	if len(wanted) != 4 {
		t.Fatalf("expected 4 chunks at the corner of the grid, got %d", len(wanted))
	}
	for _, pos := range wanted {
		if pos[0] < math.MaxInt32-1 || pos[1] < math.MaxInt32-1 {
			t.Fatalf("unexpected chunk %v at the corner of the grid", pos)
		}
	}
}

func TestRadialPolicyCoversDisk(t *testing.T) {
	d := DefaultDimensions()
	p := RadialPolicy{Radius: 400}
	viewpoint := mgl64.Vec2{37, -85}

	wanted := p.Wanted(viewpoint, d)
	if len(wanted) == 0 {
		t.Fatal("expected chunks to be wanted")
	}
	seen := map[ChunkPos]bool{}
	for _, pos := range wanted {
		seen[pos] = true
	}
	// Every chunk whose centre is within the radius must be wanted, and no
	// other chunk.
	for x := int32(-10); x <= 10; x++ {
		for y := int32(-10); y <= 10; y++ {
			pos := ChunkPos{x, y}
			inside := pos.Centre(d).Sub(viewpoint).Len() <= 400
			if inside != seen[pos] {
				t.Fatalf("chunk %v: inside radius = %v, wanted = %v", pos, inside, seen[pos])
			}
			if inside != p.InRange(pos, viewpoint, d) {
				t.Fatalf("chunk %v: InRange disagrees with Wanted", pos)
			}
		}
	}
}

func TestRadialPolicyNearestFirst(t *testing.T) {
	d := DefaultDimensions()
	viewpoint := mgl64.Vec2{500, 500}
	wanted := RadialPolicy{Radius: 300}.Wanted(viewpoint, d)
	for i := 1; i < len(wanted); i++ {
		prev := wanted[i-1].Centre(d).Sub(viewpoint).Len()
		cur := wanted[i].Centre(d).Sub(viewpoint).Len()
		if cur < prev {
			t.Fatalf("chunk %v at index %d is nearer than its predecessor", wanted[i], i)
		}
	}
}

func TestRadialPolicyNegativeRadius(t *testing.T) {
	if got := (RadialPolicy{Radius: -1}).Wanted(mgl64.Vec2{}, DefaultDimensions()); len(got) != 0 {
		t.Fatalf("expected no chunks for a negative radius, got %d", len(got))
	}
}

func TestPoliciesCapRenderDistance(t *testing.T) {
	d := DefaultDimensions()
	side := 2*MaxRenderDistance + 1

	box := BoxPolicy{Radius: [2]int32{math.MaxInt32, math.MaxInt32}}
	if got := len(box.Wanted(mgl64.Vec2{}, d)); got != side*side {
		t.Fatalf("expected %d chunks for an oversized box, got %d", side*side, got)
	}
	if box.InRange(ChunkPos{MaxRenderDistance + 1, 0}, mgl64.Vec2{}, d) {
		t.Fatal("expected chunks beyond the maximum render distance to be out of range")
	}

	radial := RadialPolicy{Radius: 1e9}
	wanted := radial.Wanted(mgl64.Vec2{}, d)
	if len(wanted) == 0 || len(wanted) > side*side {
		t.Fatalf("expected at most %d chunks for an oversized radius, got %d", side*side, len(wanted))
	}
	for _, pos := range wanted {
		if !radial.InRange(pos, mgl64.Vec2{}, d) {
			t.Fatalf("wanted chunk %v is not in range", pos)
		}
	}
	if radial.InRange(ChunkPos{MaxRenderDistance + 1, 0}, mgl64.Vec2{}, d) {
		t.Fatal("expected chunks beyond the capped radius to be out of range")
	}
	if got := (RadialPolicy{Radius: math.NaN()}).Wanted(mgl64.Vec2{}, d); len(got) != 0 {
		t.Fatalf("expected no chunks for a NaN radius, got %d", len(got))
	}
}
