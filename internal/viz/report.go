package viz

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Pass-Sense/internal/pass"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

// Report renders the latest decision of w as plain text, one fact per line.
func Report(w *sim.World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cycle=%d strategy=%s\n", w.Cycle, w.Strategy)
	fmt.Fprintf(&sb, "passer=%s ball=%s\n", point(w.Passer.Position), point(w.Ball))
	if !w.HasDecision {
		sb.WriteString("decision=none\n")
		return sb.String()
	}
	opt := w.LastOption
	receiver := "none"
	if opt.HasReceiver {
		receiver = fmt.Sprintf("#%d", opt.Receiver)
	}
	fmt.Fprintf(&sb, "target=%s utility=%.3f receiver=%s\n", point(opt.Target), opt.Utility, receiver)

	snap := w.Snapshot()
	for _, o := range w.Evaluator().SpecialOptions(snap) {
		m := findMate(snap.Teammates, o.Number)
		fmt.Fprintf(&sb, "mate #%d pos=%s age=%dms direct=%.3f through=%.3f\n",
			o.Number, point(o.Direct), m.SinceUpdate.Milliseconds(), o.DirectUtility, o.ThroughUtility)
	}
	fmt.Fprintf(&sb, "hostiles=%d search_found=%v search_steps=%d\n",
		len(pass.Hostiles(snap.Obstacles)), w.LastSearch.Found, w.LastSearch.Steps)
	return sb.String()
}

func findMate(mates []pass.Teammate, number int) pass.Teammate {
	for _, m := range mates {
		if m.Number == number {
			return m
		}
	}
	return pass.Teammate{}
}

func point(p pass.Vec2) string {
	return fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y)
}
