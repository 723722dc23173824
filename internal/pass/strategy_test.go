package pass

import (
	"strings"
	"testing"
)

func TestParseStrategy_RoundTrip(t *testing.T) {
	for _, s := range []Strategy{StrategyBestPassage, StrategyBestPassageSpecial, StrategyPoseToPass} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Fatalf("%v: round trip gave %v err=%v", s, got, err)
		}
	}
}

func TestParseStrategy_Unknown(t *testing.T) {
	_, err := ParseStrategy("long-ball")
	if err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
	if !strings.Contains(err.Error(), "pose-to-pass") {
		t.Fatalf("error should list the supported strategies: %v", err)
	}
	if got := Strategy(42).String(); got != "strategy(42)" {
		t.Fatalf("unexpected name for out-of-range strategy: %q", got)
	}
}

func TestEvaluate_Dispatch(t *testing.T) {
	e := newTestEvaluator()
	snap := snapAt(Vec2{0, 0}, Vec2{0, 0}, hostile(1000, 0))
	snap.Teammates = []Teammate{mate(2, 1600, 1200, 0), mate(3, 2000, -400, 0)}

	cases := []struct {
		s    Strategy
		want PassOption
	}{
		{StrategyBestPassage, e.BestPassage(snap)},
		{StrategyBestPassageSpecial, e.BestPassageSpecial(snap)},
		{StrategyPoseToPass, e.PoseToPass(snap)},
		{Strategy(-1), e.BestPassage(snap)},
	}
	for _, c := range cases {
		if got := e.Evaluate(c.s, snap); got != c.want {
			t.Fatalf("%v: expected %+v, got %+v", c.s, c.want, got)
		}
	}
}
