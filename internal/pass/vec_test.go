package pass

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestDistanceToLine_Perpendicular(t *testing.T) {
	l := LineThrough(Vec2{0, 0}, Vec2{10, 0})
	if d := DistanceToLine(l, Vec2{5, 3}); !near(d, 3, eps) {
		t.Fatalf("expected 3, got %.6f", d)
	}
	// The line is infinite: points beyond either end still project onto it.
	if d := DistanceToLine(l, Vec2{-50, -4}); !near(d, 4, eps) {
		t.Fatalf("expected 4 beyond the base, got %.6f", d)
	}
}

func TestDistanceToLine_DegenerateIsPointDistance(t *testing.T) {
	l := LineThrough(Vec2{1, 1}, Vec2{1, 1})
	if d := DistanceToLine(l, Vec2{4, 5}); !near(d, 5, eps) {
		t.Fatalf("expected 5, got %.6f", d)
	}
}

func TestDistanceToSegment_ClampsToEnds(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	cases := []struct {
		p    Vec2
		want float64
	}{
		{Vec2{5, 3}, 3},
		{Vec2{-3, 4}, 5},
		{Vec2{13, 4}, 5},
		{Vec2{10, 0}, 0},
	}
	for _, c := range cases {
		if d := DistanceToSegment(a, b, c.p); !near(d, c.want, eps) {
			t.Fatalf("p=%v: expected %.1f, got %.6f", c.p, c.want, d)
		}
	}
	if d := DistanceToSegment(a, a, Vec2{3, 4}); !near(d, 5, eps) {
		t.Fatalf("zero-length segment: expected 5, got %.6f", d)
	}
}

func TestClosestPointOnRay(t *testing.T) {
	base, dir := Vec2{0, 0}, Vec2{2, 0}
	if p := ClosestPointOnRay(base, dir, Vec2{5, 2}); !near(p.X, 5, eps) || !near(p.Y, 0, eps) {
		t.Fatalf("expected (5,0), got %v", p)
	}
	if p := ClosestPointOnRay(base, dir, Vec2{-5, 2}); p != base {
		t.Fatalf("point behind the ray should project onto the base, got %v", p)
	}
	if p := ClosestPointOnRay(base, Vec2{}, Vec2{7, 7}); p != base {
		t.Fatalf("zero direction should return the base, got %v", p)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	if _, ok := (Vec2{}).Normalize(); ok {
		t.Fatal("zero vector must not normalize")
	}
	u, ok := Vec2{3, 4}.Normalize()
	if !ok || !near(u.Len(), 1, eps) || !near(u.X, 0.6, eps) {
		t.Fatalf("expected (0.6,0.8), got %v ok=%v", u, ok)
	}
}

func TestMapToRange_Clamps(t *testing.T) {
	cases := []struct {
		v, want float64
	}{
		{-5, 0}, {0, 0}, {25, 0.25}, {100, 1}, {400, 1},
	}
	for _, c := range cases {
		if got := mapToRange(c.v, 0, 100, 0, 1); !near(got, c.want, eps) {
			t.Fatalf("mapToRange(%.0f): expected %.2f, got %.4f", c.v, c.want, got)
		}
	}
	if got := mapToRange(5, 3, 3, 7, 9); got != 7 {
		t.Fatalf("empty source range should map to the low end, got %.2f", got)
	}
}

func TestGaussian_PeakAtMean(t *testing.T) {
	v := 250000.0
	peak := gaussian(1000, v, 1000)
	if !near(peak, 1/math.Sqrt(2*math.Pi*v), 1e-15) {
		t.Fatalf("unexpected peak density %.8g", peak)
	}
	if gaussian(1500, v, 1000) >= peak || gaussian(500, v, 1000) >= peak {
		t.Fatal("density away from the mean must be lower than at the mean")
	}
	if !near(gaussian(1500, v, 1000), gaussian(500, v, 1000), 1e-15) {
		t.Fatal("density should be symmetric about the mean")
	}
}
