package pass

import "time"

// ObstacleKind classifies an obstacle.
type ObstacleKind int

const (
	ObstacleUnknown ObstacleKind = iota
	ObstacleFriendly
	ObstacleHostile
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleFriendly:
		return "friendly"
	case ObstacleHostile:
		return "hostile"
	default:
		return "unknown"
	}
}

// Obstacle is one perceived body on the field. No identity is kept between
// cycles.
type Obstacle struct {
	Center Vec2
	Radius float64
	Kind   ObstacleKind
}

// Pose is a field position plus heading in radians.
type Pose struct {
	Position Vec2
	Rotation float64
}

// Teammate is the latest report received from one team member.
type Teammate struct {
	Number      int
	Pose        Pose
	SinceUpdate time.Duration // age of the report
	Goalie      bool
}

// Snapshot is the read-only world state for one decision cycle.
type Snapshot struct {
	Passer    Pose
	Ball      Vec2
	Obstacles []Obstacle
	Teammates []Teammate
}

// Candidate is a teammate being considered as a receiver. Exposure is the
// squared distance to the nearest relevant hostile; larger is safer.
type Candidate struct {
	Position Vec2
	Exposure float64
	Number   int
	Age      time.Duration
}

// PassOption is the result of one evaluation.
type PassOption struct {
	Target      Vec2
	Utility     float64
	Receiver    int
	HasReceiver bool
}

// Hostiles returns the hostile obstacles in a new slice.
func Hostiles(obstacles []Obstacle) []Obstacle {
	var out []Obstacle
	for _, o := range obstacles {
		if o.Kind == ObstacleHostile {
			out = append(out, o)
		}
	}
	return out
}
