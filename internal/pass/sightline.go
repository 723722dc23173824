package pass

import "math"

// SearchResult describes one run of the passing-line search.
type SearchResult struct {
	Target Vec2 // clear target, or the field fallback
	Found  bool
	Steps  int  // widening steps taken
	Left   Vec2 // last left probe evaluated
	Right  Vec2 // last right probe evaluated
}

// FindPassingLine returns the nearest target beside target whose straight line
// from passer keeps clear of the relevant hostiles and of the backs of mates.
// The bool is false when the search ran into the sidelines and the far-centre
// fallback was returned.
func FindPassingLine(f Field, t Tuning, passer, target Vec2, obstacles []Obstacle, mates []Vec2) (Vec2, bool) {
	res := SearchPassingLine(f, t, passer, target, obstacles, mates)
	return res.Target, res.Found
}

// SearchPassingLine is FindPassingLine with the search trace kept.
//
// Two probes start on target and move apart laterally by t.ProbeStep per
// step. A step is skipped while either probe line runs across a mate ahead of
// the passer. Otherwise the probe on the same side as the target is tried
// first, then the other one.
func SearchPassingLine(f Field, t Tuning, passer, target Vec2, obstacles []Obstacle, mates []Vec2) SearchResult {
	opponents := FilterObstacles(f, passer, target, obstacles)
	if len(opponents) == 0 {
		return SearchResult{Target: target, Found: true, Left: target, Right: target}
	}

	res := SearchResult{Target: f.FarCenter()}
	left, right := target, target
	for left.Y < f.YLeftSideline && right.Y > f.YRightSideline {
		res.Steps++
		res.Left, res.Right = left, right

		if !onMateBack(f, t, passer, left, right, mates) {
			first, second := right, left
			if target.Y > passer.Y {
				first, second = left, right
			}
			if ClearLine(passer, first, opponents, t.LineClearance) {
				res.Target, res.Found = first, true
				return res
			}
			if ClearLine(passer, second, opponents, t.LineClearance) {
				res.Target, res.Found = second, true
				return res
			}
		}

		left.Y += t.ProbeStep
		right.Y -= t.ProbeStep
	}
	return res
}

// onMateBack reports whether either probe line passes too close to a mate
// that is ahead of the passer. The margin widens with the mate's forward
// distance so long passes are not rejected for small angular errors.
func onMateBack(f Field, t Tuning, passer, left, right Vec2, mates []Vec2) bool {
	toLeft := LineThrough(passer, left)
	toRight := LineThrough(passer, right)
	for _, m := range mates {
		if m.X < passer.X {
			continue
		}
		margin := t.BackPassMargin * (1 + math.Abs(m.X-passer.X)/f.XOpponentGroundLine)
		if DistanceToLine(toLeft, m) < margin || DistanceToLine(toRight, m) < margin {
			return true
		}
	}
	return false
}

// ClearLine reports whether the line from passer through probe keeps more
// than clearance from every obstacle.
func ClearLine(passer, probe Vec2, obstacles []Obstacle, clearance float64) bool {
	return lineClear(LineThrough(passer, probe), obstacles, clearance)
}

// lineClear excuses one obstacle that keeps its distance and recurses on a
// fresh slice without it. An obstacle that can never be excused fails the
// line. Which conforming obstacle is excused first does not change the
// outcome, so the first one found is taken.
func lineClear(line Line, obstacles []Obstacle, clearance float64) bool {
	if len(obstacles) == 0 {
		return true
	}
	for i, o := range obstacles {
		if DistanceToLine(line, o.Center) <= clearance {
			continue
		}
		rest := make([]Obstacle, 0, len(obstacles)-1)
		rest = append(rest, obstacles[:i]...)
		rest = append(rest, obstacles[i+1:]...)
		return lineClear(line, rest, clearance)
	}
	return false
}
