package pass

// specialSentinel is the starting best utility of BestPassageSpecial, below
// anything the scorer can produce.
const specialSentinel = -9999.0

// throughPoint projects lead millimetres beyond mate toward the goal-line
// centre. A mate standing on the centre has no direction; the mate's own
// position is used then.
func (e *Evaluator) throughPoint(mate Vec2, lead float64) Vec2 {
	dir, ok := e.Field.GoalLineCenter().Sub(mate).Normalize()
	if !ok {
		return mate
	}
	return mate.Add(dir.Scale(lead))
}

// BestPassage scores a through pass ahead of every teammate and returns the
// best one. Only through utilities are compared. With no teammate above 0 the
// goal-line centre is returned with utility 0 and no receiver.
func (e *Evaluator) BestPassage(snap Snapshot) PassOption {
	best := PassOption{Target: e.Field.GoalLineCenter()}
	for _, m := range snap.Teammates {
		through := e.throughPoint(m.Pose.Position, e.Tuning.ThroughDistance)
		u := e.Utility(snap, through, m.SinceUpdate)
		if u > best.Utility {
			best = PassOption{Target: through, Utility: u, Receiver: m.Number, HasReceiver: true}
		}
	}
	return best
}

// SpecialOption is the pair of options BestPassageSpecial weighs for one
// teammate.
type SpecialOption struct {
	Number         int
	Direct         Vec2
	DirectUtility  float64
	Through        Vec2
	ThroughUtility float64
}

// Best returns the better of the two options; ties go to the through pass.
func (o SpecialOption) Best() (Vec2, float64) {
	if o.DirectUtility > o.ThroughUtility {
		return o.Direct, o.DirectUtility
	}
	return o.Through, o.ThroughUtility
}

// SpecialOptions computes the direct and through options of every teammate
// in input order. The direct utility is discounted by the teammate's
// distance to the goal-line centre relative to the centre-to-corner span.
func (e *Evaluator) SpecialOptions(snap Snapshot) []SpecialOption {
	center := e.Field.GoalLineCenter()
	span := center.Dist(e.Field.LeftCorner())
	out := make([]SpecialOption, 0, len(snap.Teammates))
	for _, m := range snap.Teammates {
		pos := m.Pose.Position
		discount := 1 - mapToRange(center.Dist(pos), 0, span, 0, 1)
		through := e.throughPoint(pos, e.Tuning.ThroughDistanceSpecial)
		out = append(out, SpecialOption{
			Number:         m.Number,
			Direct:         pos,
			DirectUtility:  e.Utility(snap, pos, m.SinceUpdate) * discount,
			Through:        through,
			ThroughUtility: e.Utility(snap, through, m.SinceUpdate),
		})
	}
	return out
}

// BestPassageSpecial weighs a discounted direct pass against a short through
// pass for every teammate and keeps the best. Equal utilities go to the later
// teammate, so a world where nothing scores still names the last teammate.
// With no teammates the origin is returned with utility 0.
func (e *Evaluator) BestPassageSpecial(snap Snapshot) PassOption {
	best := PassOption{Utility: specialSentinel}
	for _, o := range e.SpecialOptions(snap) {
		pos, u := o.Best()
		if u >= best.Utility {
			best = PassOption{Target: pos, Utility: u, Receiver: o.Number, HasReceiver: true}
		}
	}
	if !best.HasReceiver {
		best.Utility = 0
	}
	return best
}
