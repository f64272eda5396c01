package gaze

// Vec2 is a display-space coordinate in pixels.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Clamp limits both components to [min, max] per axis.
func (v Vec2) Clamp(minX, minY, maxX, maxY float64) Vec2 {
	return Vec2{
		X: clamp(v.X, minX, maxX),
		Y: clamp(v.Y, minY, maxY),
	}
}

// clamp limits a value to a range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
