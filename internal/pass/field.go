package pass

// Field holds the boundary coordinates the evaluator needs. The origin is the
// centre circle, +x points at the opponent goal, +y to the left sideline.
type Field struct {
	XOpponentGroundLine  float64 `json:"xOpponentGroundLine"`
	XOpponentGoal        float64 `json:"xOpponentGoal"`
	XOpponentPenaltyMark float64 `json:"xOpponentPenaltyMark"`
	YLeftSideline        float64 `json:"yLeftSideline"`
	YRightSideline       float64 `json:"yRightSideline"`
	YCenterGoal          float64 `json:"yCenterGoal"`

	// AttackRearX is the rear edge of the band of obstacles still considered
	// when the passer is already inside the attacking zone.
	AttackRearX float64 `json:"attackRearX"`
}

// DefaultField returns the dimensions of a 9 x 6 m field.
func DefaultField() Field {
	return Field{
		XOpponentGroundLine:  4500,
		XOpponentGoal:        4555,
		XOpponentPenaltyMark: 3200,
		YLeftSideline:        3000,
		YRightSideline:       -3000,
		YCenterGoal:          0,
		AttackRearX:          2000,
	}
}

// Valid reports whether f has a positive ground line and ordered sidelines.
func (f Field) Valid() bool {
	return f.XOpponentGroundLine > 0 && f.YLeftSideline > f.YRightSideline
}

// GoalLineCenter is the middle of the opponent ground line.
func (f Field) GoalLineCenter() Vec2 {
	return Vec2{f.XOpponentGroundLine, f.YCenterGoal}
}

// OpponentGoal is the scoring target used for progress checks.
func (f Field) OpponentGoal() Vec2 {
	return Vec2{f.XOpponentGoal, f.YCenterGoal}
}

// FarCenter is the canonical fallback target when no clear line exists.
func (f Field) FarCenter() Vec2 {
	return Vec2{f.XOpponentGroundLine, 0}
}

// LeftCorner is the opponent-side corner on the left sideline.
func (f Field) LeftCorner() Vec2 {
	return Vec2{f.XOpponentGroundLine, f.YLeftSideline}
}

// InAttackingZone reports whether p is past the opponent penalty mark.
func (f Field) InAttackingZone(p Vec2) bool {
	return p.X > f.XOpponentPenaltyMark
}

// Contains reports whether p lies inside the sidelines and ground lines.
func (f Field) Contains(p Vec2) bool {
	return p.X >= -f.XOpponentGroundLine && p.X <= f.XOpponentGroundLine &&
		p.Y >= f.YRightSideline && p.Y <= f.YLeftSideline
}

// Clamp moves p onto the field if it lies outside.
func (f Field) Clamp(p Vec2) Vec2 {
	p.X = clampF(p.X, -f.XOpponentGroundLine, f.XOpponentGroundLine)
	p.Y = clampF(p.Y, f.YRightSideline, f.YLeftSideline)
	return p
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
