package pass

import (
	"math"
	"time"
)

// UtilityFactors breaks a pass utility into its parts. Utility is their
// product, or 0 when Vetoed.
type UtilityFactors struct {
	Vetoed    bool
	Distance  float64
	Clearance float64
	Freshness float64
	Utility   float64
}

// Evaluator scores and selects passes for one field and tuning. Build it with
// NewEvaluator; a zero Evaluator has no usable field or tuning.
type Evaluator struct {
	Field  Field
	Tuning Tuning
}

// NewEvaluator returns an evaluator with sanitized tuning. A field that
// cannot describe a pitch is replaced by DefaultField.
func NewEvaluator(f Field, t Tuning) *Evaluator {
	if !f.Valid() {
		f = DefaultField()
	}
	return &Evaluator{Field: f, Tuning: SanitizeTuning(t)}
}

// Utility returns the desirability in [0,1] of passing to position when the
// receiver's report is age old.
func (e *Evaluator) Utility(snap Snapshot, position Vec2, age time.Duration) float64 {
	return e.Factors(snap, position, age).Utility
}

// Factors is Utility with every factor exposed.
func (e *Evaluator) Factors(snap Snapshot, position Vec2, age time.Duration) UtilityFactors {
	goal := e.Field.OpponentGoal()
	if !e.progresses(position, snap.Passer.Position, goal) {
		return UtilityFactors{Vetoed: true}
	}
	uf := UtilityFactors{
		Distance:  e.distanceFactor(snap.Passer.Position.Dist(position)),
		Clearance: e.clearanceFactor(snap.Ball, position, snap.Obstacles),
		Freshness: e.freshness(age),
	}
	uf.Utility = uf.Distance * uf.Clearance * uf.Freshness
	return uf
}

// InverseUtility scores a pass to position measured from the ball rather than
// the passer, with no report-age term.
func (e *Evaluator) InverseUtility(snap Snapshot, position Vec2) float64 {
	goal := e.Field.OpponentGoal()
	if !e.progresses(position, snap.Ball, goal) {
		return 0
	}
	return e.distanceFactor(snap.Ball.Dist(position)) *
		e.clearanceFactor(snap.Ball, position, snap.Obstacles)
}

// progresses reports whether position is closer to goal than from by at
// least the configured gain.
func (e *Evaluator) progresses(position, from, goal Vec2) bool {
	return goal.Dist(position)+e.Tuning.MinForwardGain <= goal.Dist(from)
}

// distanceFactor is the Gaussian response to pass length, scaled so the
// ideal distance scores exactly 1.
func (e *Evaluator) distanceFactor(d float64) float64 {
	t := e.Tuning
	peak := gaussian(t.IdealPassDistance, t.PassDistanceVariance, t.IdealPassDistance)
	return math.Min(1, gaussian(d, t.PassDistanceVariance, t.IdealPassDistance)/peak)
}

// clearanceFactor maps the closest hostile to the ball-to-position segment
// onto [0,1]; 1 once every hostile is at least InterceptorClearance away.
func (e *Evaluator) clearanceFactor(ball, position Vec2, obstacles []Obstacle) float64 {
	closest := math.Inf(1)
	for _, o := range obstacles {
		if o.Kind != ObstacleHostile {
			continue
		}
		closest = math.Min(closest, DistanceToSegment(ball, position, o.Center))
	}
	limit := e.Tuning.InterceptorClearance
	return math.Min(closest, limit) / limit
}

// freshness falls linearly from 1 for a new report to 0 at the staleness
// interval.
func (e *Evaluator) freshness(age time.Duration) float64 {
	return 1 - mapToRange(float64(age), 0, float64(e.Tuning.Staleness), 0, 1)
}
