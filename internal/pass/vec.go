// Package pass scores pass targets for a player on a bounded field and
// searches for straight passing lines clear of hostile obstacles. It keeps
// no state between calls.
package pass

import "math"

// Vec2 is a point or direction in the field frame, in millimetres.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2  { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64  { return a.X*b.Y - a.Y*b.X }
func (a Vec2) Len() float64          { return math.Hypot(a.X, a.Y) }
func (a Vec2) LenSq() float64        { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Dist(b Vec2) float64   { return a.Sub(b).Len() }
func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).LenSq() }

// degenerateLen is the length below which a direction is treated as zero.
const degenerateLen = 1e-9

// Normalize returns the unit vector along a. The bool is false when a is too
// short to carry a direction; the zero vector is returned in that case.
func (a Vec2) Normalize() (Vec2, bool) {
	l := a.Len()
	if l < degenerateLen {
		return Vec2{}, false
	}
	return Vec2{a.X / l, a.Y / l}, true
}

// Line is an infinite line through Base along Direction.
type Line struct {
	Base      Vec2
	Direction Vec2
}

// LineThrough returns the line through a and b.
func LineThrough(a, b Vec2) Line {
	return Line{Base: a, Direction: b.Sub(a)}
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line. A degenerate line collapses to its base point.
func DistanceToLine(l Line, p Vec2) float64 {
	dir, ok := l.Direction.Normalize()
	if !ok {
		return l.Base.Dist(p)
	}
	return math.Abs(dir.Cross(p.Sub(l.Base)))
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(a, b, p Vec2) float64 {
	ab := b.Sub(a)
	d := ab.LenSq()
	if d < degenerateLen*degenerateLen {
		return a.Dist(p)
	}
	t := p.Sub(a).Dot(ab) / d
	switch {
	case t <= 0:
		return a.Dist(p)
	case t >= 1:
		return b.Dist(p)
	}
	return a.Add(ab.Scale(t)).Dist(p)
}

// ClosestPointOnRay returns the point on the ray from base along dir that is
// nearest to p. Points behind the base project onto the base.
func ClosestPointOnRay(base, dir, p Vec2) Vec2 {
	d := dir.LenSq()
	if d < degenerateLen*degenerateLen {
		return base
	}
	t := p.Sub(base).Dot(dir) / d
	if t < 0 {
		t = 0
	}
	return base.Add(dir.Scale(t))
}

// mapToRange linearly maps v from [fromLo, fromHi] onto [toLo, toHi], clamping
// to the target range.
func mapToRange(v, fromLo, fromHi, toLo, toHi float64) float64 {
	if fromHi-fromLo == 0 {
		return toLo
	}
	if v <= fromLo {
		return toLo
	}
	if v >= fromHi {
		return toHi
	}
	return toLo + (v-fromLo)/(fromHi-fromLo)*(toHi-toLo)
}

// gaussian is the normal probability density at x.
func gaussian(x, variance, mean float64) float64 {
	d := x - mean
	return math.Exp(-d*d/(2*variance)) / math.Sqrt(2*math.Pi*variance)
}
