// Package satmath implements integer arithmetic that saturates at the bounds of
// the operand type instead of wrapping around.
package satmath

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// bounds returns the smallest and largest value representable by T.
func bounds[T constraints.Signed]() (lo, hi T) {
	bits := unsafe.Sizeof(lo) * 8
	hi = T(1)<<(bits-1) - 1
	lo = -hi - 1
	return lo, hi
}

// Add returns a+b, clamped to the range of T.
func Add[T constraints.Signed](a, b T) T {
	lo, hi := bounds[T]()
	s := a + b
	if b > 0 && s < a {
		return hi
	}
	if b < 0 && s > a {
		return lo
	}
	return s
}

// Sub returns a-b, clamped to the range of T.
func Sub[T constraints.Signed](a, b T) T {
	lo, hi := bounds[T]()
	s := a - b
	if b < 0 && s < a {
		return hi
	}
	if b > 0 && s > a {
		return lo
	}
	return s
}

// Mul returns a*b, clamped to the range of T.
func Mul[T constraints.Signed](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	lo, hi := bounds[T]()
	p := a * b
	overflow := p/b != a || (a == -1 && b == lo) || (b == -1 && a == lo)
	if !overflow {
		return p
	}
	if (a < 0) != (b < 0) {
		return lo
	}
	return hi
}

// Clamp returns v limited to the closed range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Int32 converts f to an int32, truncating toward zero and saturating at the
// int32 bounds. NaN converts to 0.
func Int32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// Int32From narrows v to an int32, saturating at the int32 bounds.
func Int32From(v int64) int32 {
	return int32(Clamp(v, math.MinInt32, math.MaxInt32))
}
