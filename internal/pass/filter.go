package pass

// FilterObstacles returns the hostile obstacles that matter for a pass from
// passer to target. Ahead of the passer only obstacles short of the target
// count. Inside the attacking zone the band between AttackRearX and the passer
// is also kept, since back passes are allowed there.
func FilterObstacles(f Field, passer, target Vec2, obstacles []Obstacle) []Obstacle {
	var out []Obstacle
	attacking := f.InAttackingZone(passer)
	for _, o := range obstacles {
		if o.Kind != ObstacleHostile {
			continue
		}
		x := o.Center.X
		switch {
		case attacking && x < passer.X && x > f.AttackRearX:
			out = append(out, o)
		case x > passer.X && x < target.X:
			out = append(out, o)
		}
	}
	return out
}
