package main

import (
	"testing"

	"github.com/Garsondee/Pass-Sense/internal/pass"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

func defaultScenario(s pass.Strategy) scenario {
	return scenario{
		field:    pass.DefaultField(),
		tuning:   pass.DefaultTuning(),
		strategy: s,
		mates:    4,
		hostiles: 5,
		cycles:   50,
	}
}

func TestRunScenario_DeterministicPerSeed(t *testing.T) {
	sc := defaultScenario(pass.StrategyPoseToPass)
	a := runScenario(1, 42, sc)
	b := runScenario(1, 42, sc)
	if a.cycles != 50 {
		t.Fatalf("expected 50 cycles, got %d", a.cycles)
	}
	if a.meanUtility != b.meanUtility || a.fallbacks != b.fallbacks || a.receiverChanges != b.receiverChanges {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
	if a.meanUtility < 0 || a.maxUtility > 1 {
		t.Fatalf("utility out of range: mean=%.3f max=%.3f", a.meanUtility, a.maxUtility)
	}
}

func TestAggregate_WeightsByCycles(t *testing.T) {
	all := []runStats{
		{cycles: 100, fallbacks: 10, receiverChanges: 4, meanUtility: 0.5, receivers: map[string]int{"#2": 60, "#3": 30}},
		{cycles: 300, fallbacks: 30, receiverChanges: 2, meanUtility: 0.1, receivers: map[string]int{"#2": 270}},
	}
	agg := aggregate(all)
	if agg.runs != 2 {
		t.Fatalf("expected 2 runs, got %d", agg.runs)
	}
	if d := agg.meanUtility - 0.2; d > 1e-12 || d < -1e-12 {
		t.Fatalf("expected cycle-weighted mean 0.2, got %.6f", agg.meanUtility)
	}
	if agg.fallbackRate != 0.1 {
		t.Fatalf("expected fallback rate 0.1, got %.3f", agg.fallbackRate)
	}
	if agg.avgReceiverChange != 3 {
		t.Fatalf("expected 3 receiver changes per run, got %.1f", agg.avgReceiverChange)
	}
	if agg.receivers["#2"] != 330 || agg.receivers["#3"] != 30 {
		t.Fatalf("unexpected receiver totals %v", agg.receivers)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := aggregate(nil)
	if agg.runs != 0 || agg.meanUtility != 0 || agg.fallbackRate != 0 || agg.avgReceiverChange != 0 {
		t.Fatalf("expected zero aggregate, got %+v", agg)
	}
}

func TestRunScenario_SettledSkipsWarmup(t *testing.T) {
	sc := defaultScenario(pass.StrategyBestPassage)
	sc.warmup = sc.cycles - 1
	rs := runScenario(1, 7, sc)

	w := sim.NewWorld(
		sim.WithSeed(7),
		sim.WithField(sc.field),
		sim.WithTuning(sc.tuning),
		sim.WithStrategy(sc.strategy),
		sim.WithRandomPlayers(sc.mates, sc.hostiles),
	)
	w.Run(sc.cycles)
	last, ok := w.Log.Last(sim.EventChoice)
	if !ok {
		t.Fatal("expected a choice entry")
	}
	if rs.settledUtility != last.Num {
		t.Fatalf("settled utility should cover only the final cycle: %.4f vs %.4f", rs.settledUtility, last.Num)
	}
	if rs.firstFallback == 0 || rs.firstFallback > sc.cycles {
		t.Fatalf("first fallback out of range: %d", rs.firstFallback)
	}
}

func TestJoinCounts(t *testing.T) {
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := joinCounts(map[string]int{"#3": 1, "#10": 2, "#2": 5}); got != "#10=2 #2=5 #3=1" {
		t.Fatalf("unexpected %q", got)
	}
}
