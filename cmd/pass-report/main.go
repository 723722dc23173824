package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Pass-Sense/internal/cli"
	"github.com/Garsondee/Pass-Sense/internal/pass"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	cycles          int
	fallbacks       int
	searchFailures  int
	receiverChanges int
	firstFallback   int
	meanUtility     float64
	maxUtility      float64
	settledUtility  float64 // mean over the cycles after warm-up
	receivers       map[string]int
}

type scenario struct {
	field    pass.Field
	tuning   pass.Tuning
	strategy pass.Strategy
	mates    int
	hostiles int
	cycles   int
	warmup   int
}

func main() {
	var runs int
	var cycles int
	var seedBase int64
	var seedStep int64
	var mates int
	var hostiles int
	var warmup int

	flag.IntVar(&runs, "runs", 5, "number of seeded runs")
	flag.IntVar(&cycles, "cycles", 600, "decision cycles per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&mates, "mates", 4, "teammates per run")
	flag.IntVar(&hostiles, "hostiles", 5, "hostile obstacles per run")
	flag.IntVar(&warmup, "warmup", 50, "cycles left out of the settled utility")
	shared := cli.Register(flag.CommandLine)
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if cycles <= 0 {
		fmt.Println("error: -cycles must be > 0")
		return
	}
	if warmup < 0 || warmup >= cycles {
		fmt.Println("error: -warmup must be >= 0 and < -cycles")
		return
	}
	if mates < 0 || hostiles < 0 {
		fmt.Println("error: -mates and -hostiles must be >= 0")
		return
	}
	strategy, err := shared.ParseStrategy()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	field, tuning := shared.Resolve()
	sc := scenario{field: field, tuning: tuning, strategy: strategy, mates: mates, hostiles: hostiles, cycles: cycles, warmup: warmup}

	fmt.Printf("=== Headless Pass Report ===\n")
	fmt.Printf("strategy=%s runs=%d cycles=%d seed_base=%d seed_step=%d mates=%d hostiles=%d\n",
		strategy, runs, cycles, seedBase, seedStep, mates, hostiles)
	fmt.Printf("tuning: ideal=%.0f variance=%.0f clearance=%.0f min_gain=%.0f staleness=%s\n\n",
		tuning.IdealPassDistance, tuning.PassDistanceVariance, tuning.InterceptorClearance, tuning.MinForwardGain, tuning.Staleness)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, sc)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenario(runIndex int, seed int64, sc scenario) runStats {
	w := sim.NewWorld(
		sim.WithSeed(seed),
		sim.WithField(sc.field),
		sim.WithTuning(sc.tuning),
		sim.WithStrategy(sc.strategy),
		sim.WithRandomPlayers(sc.mates, sc.hostiles),
	)
	w.Run(sc.cycles)

	s := w.Log.Summary()
	firstFallback := -1
	if e, ok := w.Log.First(sim.EventFallback); ok {
		firstFallback = e.Cycle
	}
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		cycles:          s.Cycles,
		fallbacks:       s.Fallbacks,
		searchFailures:  s.SearchFallbacks,
		receiverChanges: s.ReceiverChanges,
		firstFallback:   firstFallback,
		meanUtility:     s.MeanUtility,
		maxUtility:      s.MaxUtility,
		settledUtility:  w.Log.Window(sc.warmup+1, sc.cycles).MeanUtility,
		receivers:       s.Receivers,
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("utility: mean=%.3f max=%.3f settled=%.3f\n", rs.meanUtility, rs.maxUtility, rs.settledUtility)
	fmt.Printf("event_totals: cycles=%d fallback=%d search_fallback=%d receiver_change=%d first_fallback=%d\n",
		rs.cycles, rs.fallbacks, rs.searchFailures, rs.receiverChanges, rs.firstFallback)
	fmt.Printf("receivers: %s\n\n", joinCounts(rs.receivers))
}

type aggregateStats struct {
	runs              int
	meanUtility       float64
	fallbackRate      float64
	avgReceiverChange float64
	receivers         map[string]int
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{runs: len(all), receivers: map[string]int{}}
	totalCycles := 0
	totalFallbacks := 0
	totalChanges := 0
	utilitySum := 0.0
	for _, rs := range all {
		totalCycles += rs.cycles
		totalFallbacks += rs.fallbacks
		totalChanges += rs.receiverChanges
		utilitySum += rs.meanUtility * float64(rs.cycles)
		for k, v := range rs.receivers {
			agg.receivers[k] += v
		}
	}
	if totalCycles > 0 {
		agg.meanUtility = utilitySum / float64(totalCycles)
		agg.fallbackRate = float64(totalFallbacks) / float64(totalCycles)
	}
	agg.avgReceiverChange = avg(totalChanges, len(all))
	return agg
}

func printAggregate(all []runStats) {
	agg := aggregate(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", agg.runs)
	fmt.Printf("mean_utility=%.3f fallback_rate=%.1f%% avg_receiver_changes_per_run=%.1f\n",
		agg.meanUtility, agg.fallbackRate*100, agg.avgReceiverChange)
	fmt.Printf("receivers: %s\n", joinCounts(agg.receivers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, 0, len(labels))
	for _, k := range labels {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
