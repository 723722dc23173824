package pass

import (
	"math"
	"sort"
)

// eligible reports whether a teammate at p can receive from passer: ahead of
// the passer, or anywhere beyond AttackRearX once the passer is in the
// attacking zone.
func (e *Evaluator) eligible(passer, p Vec2) bool {
	if e.Field.InAttackingZone(passer) && p.X > e.Field.AttackRearX {
		return true
	}
	return p.X > passer.X
}

// exposure is the squared distance from p to the nearest hostile that is
// level with or behind it. MaxFloat64 when there is none.
func exposure(p Vec2, obstacles []Obstacle) float64 {
	best := math.MaxFloat64
	for _, o := range obstacles {
		if o.Kind != ObstacleHostile || o.Center.X > p.X {
			continue
		}
		if d := p.DistSq(o.Center); d < best {
			best = d
		}
	}
	return best
}

// RankCandidates returns the eligible teammates ordered from least to most
// exposed. Equal exposures keep teammate order.
func (e *Evaluator) RankCandidates(snap Snapshot) []Candidate {
	passer := snap.Passer.Position
	var out []Candidate
	for _, m := range snap.Teammates {
		p := m.Pose.Position
		if !e.eligible(passer, p) {
			continue
		}
		out = append(out, Candidate{
			Position: p,
			Exposure: exposure(p, snap.Obstacles),
			Number:   m.Number,
			Age:      m.SinceUpdate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Exposure > out[j].Exposure
	})
	return out
}

// PoseToPass walks the ranked candidates and returns the first one with a
// clear passing line. Receivers short of the penalty mark get the target led
// forward by ForwardPassBonus unless the passer is already attacking. With no
// clear line the far-centre fallback is returned without a receiver.
func (e *Evaluator) PoseToPass(snap Snapshot) PassOption {
	passer := snap.Passer.Position
	cands := e.RankCandidates(snap)

	guards := make([]Vec2, 0, len(cands))
	for _, c := range cands {
		guards = append(guards, c.Position)
	}

	lead := e.Tuning.ForwardPassBonus
	if e.Field.InAttackingZone(passer) {
		lead = 0
	}

	for _, c := range cands {
		target, ok := FindPassingLine(e.Field, e.Tuning, passer, c.Position, snap.Obstacles, guards)
		if !ok {
			continue
		}
		if c.Position.X < e.Field.XOpponentPenaltyMark {
			target.X += lead
		}
		return PassOption{
			Target:      target,
			Utility:     e.Utility(snap, target, c.Age),
			Receiver:    c.Number,
			HasReceiver: true,
		}
	}
	return PassOption{Target: e.Field.FarCenter()}
}
