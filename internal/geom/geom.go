package geom

import (
	"math"
	"math/rand/v2"
)

// Point is a location in scene space. Depending on context it is either
// normalized (0..1 on each axis) or absolute (viewport units).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width*Height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Intersects reports whether r and o share a region of non-zero area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Distance returns the Euclidean distance from p to the closest point of r,
// or 0 when p is inside or on the boundary.
func (r Rect) Distance(p Point) float64 {
	dx := math.Max(math.Max(r.MinX()-p.X, p.X-r.MaxX()), 0)
	dy := math.Max(math.Max(r.MinY()-p.Y, p.Y-r.MaxY()), 0)
	// Aligned on one axis: the separation is purely along the other.
	if dx == 0 || dy == 0 {
		return math.Max(dx, dy)
	}
	return math.Hypot(dx, dy)
}

// Scale multiplies the rectangle's origin and size by the given factors.
func (r Rect) Scale(s Size) Rect {
	return Rect{
		X:      r.X * s.Width,
		Y:      r.Y * s.Height,
		Width:  r.Width * s.Width,
		Height: r.Height * s.Height,
	}
}

// Normalize divides the rectangle's origin and size by the given factors.
func (r Rect) Normalize(s Size) Rect {
	return Rect{
		X:      r.X / s.Width,
		Y:      r.Y / s.Height,
		Width:  r.Width / s.Width,
		Height: r.Height / s.Height,
	}
}

// RandomPoint samples a point uniformly within r.
func (r Rect) RandomPoint(rng *rand.Rand) Point {
	return Point{
		X: r.X + rng.Float64()*r.Width,
		Y: r.Y + rng.Float64()*r.Height,
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
