package pass

import "testing"

func hostile(x, y float64) Obstacle {
	return Obstacle{Center: Vec2{x, y}, Radius: 150, Kind: ObstacleHostile}
}

func friendly(x, y float64) Obstacle {
	return Obstacle{Center: Vec2{x, y}, Radius: 150, Kind: ObstacleFriendly}
}

func containsCenter(obs []Obstacle, c Vec2) bool {
	for _, o := range obs {
		if o.Center == c {
			return true
		}
	}
	return false
}

func TestFilterObstacles_BetweenPasserAndTarget(t *testing.T) {
	f := DefaultField()
	obs := []Obstacle{
		hostile(1000, 500), // between: kept
		friendly(1000, 0),  // not hostile
		hostile(-500, 0),   // behind the passer
		hostile(2500, 0),   // beyond the target
		hostile(2000, 0),   // level with the target: strictly excluded
		{Center: Vec2{800, 0}, Kind: ObstacleUnknown},
	}
	got := FilterObstacles(f, Vec2{0, 0}, Vec2{2000, 0}, obs)
	if len(got) != 1 || got[0].Center != (Vec2{1000, 500}) {
		t.Fatalf("expected only the hostile at (1000,500), got %v", got)
	}
}

func TestFilterObstacles_AttackingZoneKeepsRearBand(t *testing.T) {
	f := DefaultField()
	obs := []Obstacle{
		hostile(2500, 0), // behind, but inside the rear band
		hostile(1500, 0), // behind the rear threshold
		hostile(3800, 0), // ahead, short of the target
	}
	got := FilterObstacles(f, Vec2{3500, 0}, Vec2{4000, 0}, obs)
	if len(got) != 2 {
		t.Fatalf("expected 2 obstacles, got %d: %v", len(got), got)
	}
	if !containsCenter(got, Vec2{2500, 0}) || !containsCenter(got, Vec2{3800, 0}) {
		t.Fatalf("unexpected selection %v", got)
	}
}

func TestFilterObstacles_BehindExcludedOutsideAttackingZone(t *testing.T) {
	f := DefaultField()
	got := FilterObstacles(f, Vec2{1000, 0}, Vec2{3000, 0}, []Obstacle{hostile(500, 0), hostile(-2000, 100)})
	if len(got) != 0 {
		t.Fatalf("obstacles behind the passer must be excluded, got %v", got)
	}
}

func TestFilterObstacles_DoesNotAliasInput(t *testing.T) {
	f := DefaultField()
	in := []Obstacle{hostile(1000, 0)}
	got := FilterObstacles(f, Vec2{0, 0}, Vec2{2000, 0}, in)
	got[0].Center.X = -1
	if in[0].Center.X != 1000 {
		t.Fatal("FilterObstacles must return a new slice")
	}
}
