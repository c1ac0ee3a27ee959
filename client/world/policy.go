package world

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// RangePolicy decides which chunks should be materialised around a viewpoint.
// Implementations must be consistent: a position is returned by Wanted if and
// only if InRange reports true for it, so that a stationary viewpoint never
// loads or evicts a chunk twice.
type RangePolicy interface {
	// Wanted returns the positions of all chunks that should be loaded for the
	// viewpoint passed, nearest first.
	Wanted(viewpoint mgl64.Vec2, d Dimensions) []ChunkPos
	// InRange reports if the chunk at the position passed should stay loaded
	// for the viewpoint passed.
	InRange(pos ChunkPos, viewpoint mgl64.Vec2, d Dimensions) bool
}

// MaxRenderDistance is the largest number of chunks a RangePolicy loads on
// either side of the viewpoint's chunk along an axis. Larger radii are capped.
const MaxRenderDistance = 64

// BoxPolicy is a RangePolicy that loads every chunk within a rectangle of
// chunks centred around the chunk containing the viewpoint. Radius holds the
// render distance along the X and Y axis in chunks, capped at
// MaxRenderDistance.
type BoxPolicy struct {
	Radius [2]int32
}

// radius returns the render distance along both axes, clamped to
// [0, MaxRenderDistance].
func (b BoxPolicy) radius() (rx, ry int64) {
	return int64(min(max(b.Radius[0], 0), MaxRenderDistance)), int64(min(max(b.Radius[1], 0), MaxRenderDistance))
}

// Wanted ...
func (b BoxPolicy) Wanted(viewpoint mgl64.Vec2, d Dimensions) []ChunkPos {
	centre := ChunkPosAt(viewpoint, d)
	rx, ry := b.radius()
	positions := make([]ChunkPos, 0, (2*rx+1)*(2*ry+1))
	for y := int64(centre[1]) - ry; y <= int64(centre[1])+ry; y++ {
		for x := int64(centre[0]) - rx; x <= int64(centre[0])+rx; x++ {
			if pos, ok := chunkPosFrom(x, y); ok {
				positions = append(positions, pos)
			}
		}
	}
	sortNearest(positions, viewpoint, d)
	return positions
}

// InRange ...
func (b BoxPolicy) InRange(pos ChunkPos, viewpoint mgl64.Vec2, d Dimensions) bool {
	centre := ChunkPosAt(viewpoint, d)
	dx, dy := abs(int64(pos[0])-int64(centre[0])), abs(int64(pos[1])-int64(centre[1]))
	rx, ry := b.radius()
	return dx <= rx && dy <= ry
}

// RadialPolicy is a RangePolicy that loads every chunk whose centre lies within
// Radius world units of the viewpoint. The radius is capped at
// MaxRenderDistance chunks along the shorter chunk side.
type RadialPolicy struct {
	Radius float64
}

// radius returns the radius in world units, capped so that it spans at most
// MaxRenderDistance chunks along either axis.
func (r RadialPolicy) radius(d Dimensions) float64 {
	ext := d.Extent()
	return min(r.Radius, MaxRenderDistance*min(ext[0], ext[1]))
}

// Wanted ...
func (r RadialPolicy) Wanted(viewpoint mgl64.Vec2, d Dimensions) []ChunkPos {
	radius := r.radius(d)
	if !(radius >= 0) {
		return nil
	}
	centre, ext := ChunkPosAt(viewpoint, d), d.Extent()
	// One extra ring of chunks covers centres that lie in neighbouring chunks
	// of the bounding box edge.
	rx := int64(math.Ceil(radius/ext[0])) + 1
	ry := int64(math.Ceil(radius/ext[1])) + 1

	var positions []ChunkPos
	for y := int64(centre[1]) - ry; y <= int64(centre[1])+ry; y++ {
		for x := int64(centre[0]) - rx; x <= int64(centre[0])+rx; x++ {
			if pos, ok := chunkPosFrom(x, y); ok && r.InRange(pos, viewpoint, d) {
				positions = append(positions, pos)
			}
		}
	}
	sortNearest(positions, viewpoint, d)
	return positions
}

// InRange ...
func (r RadialPolicy) InRange(pos ChunkPos, viewpoint mgl64.Vec2, d Dimensions) bool {
	return pos.Centre(d).Sub(viewpoint).Len() <= r.radius(d)
}

// sortNearest sorts positions by the distance of their centre to the viewpoint,
// breaking ties by position so that the order is deterministic.
func sortNearest(positions []ChunkPos, viewpoint mgl64.Vec2, d Dimensions) {
	slices.SortFunc(positions, func(a, b ChunkPos) int {
		da, db := a.Centre(d).Sub(viewpoint).Len(), b.Centre(d).Sub(viewpoint).Len()
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		if c := cmp.Compare(a[1], b[1]); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
}

// chunkPosFrom returns the chunk position at x and y if both fit in an int32.
func chunkPosFrom(x, y int64) (ChunkPos, bool) {
	if x < math.MinInt32 || x > math.MaxInt32 || y < math.MinInt32 || y > math.MaxInt32 {
		return ChunkPos{}, false
	}
	return ChunkPos{int32(x), int32(y)}, true
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
