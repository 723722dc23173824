// Package feed streams simulated pass decisions to websocket viewers.
package feed

import (
	"github.com/Garsondee/Pass-Sense/internal/pass"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

type pointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type mateDTO struct {
	Number  int      `json:"number"`
	Pos     pointDTO `json:"pos"`
	AgeMs   int64    `json:"ageMs"`
	Utility float64  `json:"utility"`
}

type searchDTO struct {
	Found bool     `json:"found"`
	Steps int      `json:"steps"`
	Left  pointDTO `json:"left"`
	Right pointDTO `json:"right"`
}

// Frame is one decision cycle as sent to viewers.
type Frame struct {
	Cycle    int        `json:"cycle"`
	Strategy string     `json:"strategy"`
	Passer   pointDTO   `json:"passer"`
	Ball     pointDTO   `json:"ball"`
	Target   pointDTO   `json:"target"`
	Utility  float64    `json:"utility"`
	Receiver *int       `json:"receiver,omitempty"`
	Mates    []mateDTO  `json:"mates"`
	Hostiles []pointDTO `json:"hostiles"`
	Search   searchDTO  `json:"search"`
}

func toPoint(v pass.Vec2) pointDTO { return pointDTO{X: v.X, Y: v.Y} }

// FrameOf captures the latest decision of w.
func FrameOf(w *sim.World) Frame {
	snap := w.Snapshot()
	opt := w.LastOption
	f := Frame{
		Cycle:    w.Cycle,
		Strategy: w.Strategy.String(),
		Passer:   toPoint(snap.Passer.Position),
		Ball:     toPoint(snap.Ball),
		Target:   toPoint(opt.Target),
		Utility:  opt.Utility,
		Mates:    make([]mateDTO, 0, len(snap.Teammates)),
		Hostiles: make([]pointDTO, 0, len(snap.Obstacles)),
		Search: searchDTO{
			Found: w.LastSearch.Found,
			Steps: w.LastSearch.Steps,
			Left:  toPoint(w.LastSearch.Left),
			Right: toPoint(w.LastSearch.Right),
		},
	}
	if opt.HasReceiver {
		n := opt.Receiver
		f.Receiver = &n
	}
	for _, m := range snap.Teammates {
		f.Mates = append(f.Mates, mateDTO{
			Number:  m.Number,
			Pos:     toPoint(m.Pose.Position),
			AgeMs:   m.SinceUpdate.Milliseconds(),
			Utility: w.Evaluator().Utility(snap, m.Pose.Position, m.SinceUpdate),
		})
	}
	for _, o := range pass.Hostiles(snap.Obstacles) {
		f.Hostiles = append(f.Hostiles, toPoint(o.Center))
	}
	return f
}
