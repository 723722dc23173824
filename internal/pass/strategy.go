package pass

import "fmt"

// Strategy selects one of the ranking modes.
type Strategy int

const (
	StrategyBestPassage Strategy = iota
	StrategyBestPassageSpecial
	StrategyPoseToPass
)

var strategyNames = [...]string{
	StrategyBestPassage:        "best-passage",
	StrategyBestPassageSpecial: "best-passage-special",
	StrategyPoseToPass:         "pose-to-pass",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (supported: best-passage, best-passage-special, pose-to-pass)", name)
}

// Evaluate runs the given strategy on snap. Unknown strategies fall back to
// BestPassage.
func (e *Evaluator) Evaluate(s Strategy, snap Snapshot) PassOption {
	switch s {
	case StrategyBestPassageSpecial:
		return e.BestPassageSpecial(snap)
	case StrategyPoseToPass:
		return e.PoseToPass(snap)
	default:
		return e.BestPassage(snap)
	}
}
