// Package geom provides the pure collision and reflection math shared by the
// arena simulation. Every function is total over well-formed numeric input.
package geom

import "math"

// Axis identifies a map-edge orientation for reflection.
type Axis int

const (
	AxisHorizontal Axis = iota // top/bottom walls
	AxisVertical               // left/right walls
)

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistSq returns the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CircleOverlap reports whether two circles overlap.
func CircleOverlap(ax, ay, ar, bx, by, br float64) bool {
	minDist := ar + br
	return DistSq(ax, ay, bx, by) < minDist*minDist
}

// CircleRectOverlap reports whether a circle overlaps an axis-aligned
// rectangle given by its centre and full width/height.
//
// This is deliberately the combined-half-extent test, not true closest-point
// clamping: the circle is treated as a point against a rectangle grown by the
// circle radius on each side. It over-reports near corners, which is the
// collision feel the game is tuned around.
func CircleRectOverlap(cx, cy, cr, rx, ry, rw, rh float64) bool {
	return math.Abs(cx-rx) < rw/2+cr && math.Abs(cy-ry) < rh/2+cr
}

// ReflectVelocity reflects a travel angle off a surface with unit normal
// (nx,ny): v' = v - 2(v·n)n. Returns the new travel angle.
func ReflectVelocity(angle, nx, ny float64) float64 {
	vx := math.Cos(angle)
	vy := math.Sin(angle)
	dot := vx*nx + vy*ny
	rx := vx - 2*dot*nx
	ry := vy - 2*dot*ny
	return math.Atan2(ry, rx)
}

// ReflectAxis reflects a travel angle off a map edge. A horizontal wall
// negates the vertical velocity component; a vertical wall mirrors the
// horizontal component.
func ReflectAxis(angle float64, axis Axis) float64 {
	if axis == AxisHorizontal {
		return -angle
	}
	return math.Pi - angle
}

// NormalizeAngle wraps an angle into (-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed smallest rotation from `from` to `to`,
// in (-π, π].
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
