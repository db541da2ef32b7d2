// Package physics provides collision detection and distance utilities.
package physics

import "math"

// normalizeEpsilon is the distance below which a direction is considered undefined.
const normalizeEpsilon = 1e-9

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap (strictly closer than r1+r2).
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Direction returns the unit vector from (x1,y1) towards (x2,y2) and the distance.
// ok is false when the points (nearly) coincide; callers must then skip any
// directional adjustment instead of dividing by zero.
func Direction(x1, y1, x2, y2 float64) (nx, ny, dist float64, ok bool) {
	dx := x2 - x1
	dy := y2 - y1
	dist = math.Sqrt(dx*dx + dy*dy)
	if dist < normalizeEpsilon || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 0, 0, dist, false
	}
	return dx / dist, dy / dist, dist, true
}

// Finite reports whether both coordinates are finite numbers.
func Finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

// Clamp limits v to [lo, hi]. If lo > hi the midpoint is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
