package physics

// Vec2 is a 2D vector: X along the travel axis, Y the lane offset.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Body is a rigid body in the world. Static bodies never move; sensor
// bodies overlap without producing collision notifications.
type Body struct {
	Label    string
	Static   bool
	Sensor   bool
	Pos      Vec2
	Vel      Vec2
	Mass     float64
	HalfW    float64
	HalfH    float64
	Friction float64
	Angle    float64

	force Vec2
}

// Overlaps reports AABB overlap between two bodies.
func (b *Body) Overlaps(o *Body) bool {
	dx := b.Pos.X - o.Pos.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Pos.Y - o.Pos.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < b.HalfW+o.HalfW && dy < b.HalfH+o.HalfH
}
