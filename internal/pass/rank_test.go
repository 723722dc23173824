package pass

import (
	"math"
	"testing"
)

func numbers(cands []Candidate) []int {
	out := make([]int, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Number)
	}
	return out
}

func TestRankCandidates_LeastExposedFirst(t *testing.T) {
	e := newTestEvaluator()
	snap := snapAt(Vec2{0, 0}, Vec2{0, 0}, hostile(900, 900))
	snap.Teammates = []Teammate{
		mate(1, 1000, 1000, 0),
		mate(2, 1000, -1000, 0),
		mate(3, -500, 0, 0), // behind the passer
	}

	got := numbers(e.RankCandidates(snap))
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("expected order [2 1], got %v", got)
	}
}

func TestRankCandidates_StableOnTies(t *testing.T) {
	e := newTestEvaluator()
	snap := snapAt(Vec2{0, 0}, Vec2{0, 0})
	snap.Teammates = []Teammate{mate(4, 500, 0, 0), mate(2, 1500, 0, 0), mate(9, 800, 300, 0)}

	got := numbers(e.RankCandidates(snap))
	want := []int{4, 2, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected input order %v on equal exposure, got %v", want, got)
		}
	}
}

func TestExposure_IgnoresHostilesAhead(t *testing.T) {
	p := Vec2{1000, 0}
	if got := exposure(p, []Obstacle{hostile(1100, 0), friendly(900, 0)}); got != math.MaxFloat64 {
		t.Fatalf("expected MaxFloat64 with no hostile behind, got %.1f", got)
	}
	if got := exposure(p, []Obstacle{hostile(1000, 300), hostile(600, 0)}); got != 90000 {
		t.Fatalf("level hostile counts: expected 90000, got %.1f", got)
	}
}

func TestRankCandidates_AttackingZoneWidensEligibility(t *testing.T) {
	e := newTestEvaluator()
	snap := snapAt(Vec2{3500, 0}, Vec2{3500, 0})
	snap.Teammates = []Teammate{mate(5, 2500, 0, 0), mate(6, 1500, 0, 0)}

	got := numbers(e.RankCandidates(snap))
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected only teammate 5 eligible, got %v", got)
	}
}

func TestPoseToPass(t *testing.T) {
	e := newTestEvaluator()
	cases := []struct {
		name     string
		passer   Vec2
		mates    []Teammate
		obs      []Obstacle
		want     Vec2
		receiver int
		ok       bool
	}{
		{
			name:     "line around blocker, led forward",
			passer:   Vec2{0, 0},
			mates:    []Teammate{mate(7, 2000, 0, 0)},
			obs:      []Obstacle{hostile(1000, 0)},
			want:     Vec2{2600, -900},
			receiver: 7,
			ok:       true,
		},
		{
			name:     "open field, led forward",
			passer:   Vec2{0, 0},
			mates:    []Teammate{mate(3, 2000, 500, 0)},
			want:     Vec2{2600, 500},
			receiver: 3,
			ok:       true,
		},
		{
			name:     "attacking passer, no lead",
			passer:   Vec2{3500, 0},
			mates:    []Teammate{mate(8, 3800, 1000, 0)},
			want:     Vec2{3800, 1000},
			receiver: 8,
			ok:       true,
		},
		{
			name:   "walled off",
			passer: Vec2{0, 0},
			mates:  []Teammate{mate(2, 2000, 0, 0)},
			obs:    wallOfHostiles(1000),
			want:   DefaultField().FarCenter(),
		},
	}
	for _, c := range cases {
		snap := snapAt(c.passer, c.passer, c.obs...)
		snap.Teammates = c.mates
		got := e.PoseToPass(snap)
		if got.HasReceiver != c.ok || (c.ok && got.Receiver != c.receiver) {
			t.Fatalf("%s: expected receiver %d (ok=%v), got %+v", c.name, c.receiver, c.ok, got)
		}
		if !near(got.Target.X, c.want.X, eps) || !near(got.Target.Y, c.want.Y, eps) {
			t.Fatalf("%s: expected target %v, got %v", c.name, c.want, got.Target)
		}
		if got.Utility < 0 || got.Utility > 1 {
			t.Fatalf("%s: utility %.4f out of [0,1]", c.name, got.Utility)
		}
	}
}

func TestPoseToPass_UtilityMatchesTarget(t *testing.T) {
	e := newTestEvaluator()
	snap := snapAt(Vec2{0, 0}, Vec2{0, 0})
	half := e.Tuning.Staleness / 2
	snap.Teammates = []Teammate{mate(3, 1400, 0, half)}

	got := e.PoseToPass(snap)
	want := e.Utility(snap, Vec2{2000, 0}, half)
	if got.Target != (Vec2{2000, 0}) || !near(got.Utility, want, 1e-12) {
		t.Fatalf("expected (2000,0) with utility %.4f, got %+v", want, got)
	}
}
