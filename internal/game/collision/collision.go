// Package collision holds stateless geometric predicates used by effects.
// All boundaries are inclusive: touching counts as overlapping.
package collision

import (
	"math"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// coneEpsilon absorbs float noise on the cone edge so a point lying exactly on
// the boundary ray is inside.
const coneEpsilon = 1e-9

// CirclesOverlap reports whether two circles touch or intersect
// (distance(c1, c2) <= r1 + r2). Squared distances avoid the square root.
func CirclesOverlap(c1 effect.Vec2, r1 float64, c2 effect.Vec2, r2 float64) bool {
	sum := r1 + r2
	if sum < 0 {
		return false
	}
	return c1.DistSq(c2) <= sum*sum
}

// PointInCircle reports whether p lies inside or on the circle (c, r).
func PointInCircle(p, c effect.Vec2, r float64) bool {
	if r < 0 {
		return false
	}
	return p.DistSq(c) <= r*r
}

// Rect is an axis-aligned rectangle, Min inclusive, Max inclusive.
type Rect struct {
	Min, Max effect.Vec2
}

// CircleRectOverlap reports whether the circle touches the rectangle.
func CircleRectOverlap(c effect.Vec2, r float64, rect Rect) bool {
	closest := effect.Vec2{
		X: clamp(c.X, rect.Min.X, rect.Max.X),
		Y: clamp(c.Y, rect.Min.Y, rect.Max.Y),
	}
	return c.DistSq(closest) <= r*r
}

// InCone reports whether point lies inside the fan that starts at origin,
// opens around facing and spans halfAngle radians to each side.
//
// The angle is taken with atan2(|cross|, dot) rather than acos(dot/len), which
// stays accurate near 0 and pi. The origin itself counts as inside. facing must
// be non-zero; a zero facing matches nothing.
func InCone(origin, facing, point effect.Vec2, halfAngle float64) bool {
	if facing.IsZero() {
		return false
	}
	d := point.Sub(origin)
	if d.IsZero() {
		return true
	}
	angle := math.Atan2(math.Abs(facing.Cross(d)), facing.Dot(d))
	return angle <= halfAngle+coneEpsilon
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
