// Package geom provides the 2D vector and axis-aligned rectangle primitives
// shared by movement, camera projection and the visibility engine.
package geom

import "math"

// Vector2 represents a point or direction in 2D space.
type Vector2 struct {
	X, Y float64
}

// Vec is shorthand for Vector2{X: x, Y: y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing along v.
// The zero vector normalizes to the zero vector; callers that need a
// direction must check IsZero first.
func (v Vector2) Normalize() Vector2 {
	l := v.Len()
	if l == 0 {
		return Vector2{}
	}
	return Vector2{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Perp returns v rotated by 90 degrees: (-y, x).
func (v Vector2) Perp() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Angle returns atan2(v.Y, v.X) in (-π, π].
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// AngleOf returns the angle of v, see Vector2.Angle.
func AngleOf(v Vector2) float64 {
	return v.Angle()
}

// FromAngle returns the unit vector (cos a, sin a).
func FromAngle(a float64) Vector2 {
	return Vector2{math.Cos(a), math.Sin(a)}
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Vector2) float64 {
	return b.Sub(a).Len()
}

// Rect is an axis-aligned rectangle described by its half extents around
// a local origin. It never stores a position; see Box for a placed rect.
type Rect struct {
	HalfW, HalfH float64
}

// NewRect creates a rect of the given full width and height.
// Negative dimensions are clamped to zero.
func NewRect(w, h float64) Rect {
	return Rect{HalfW: math.Max(w, 0) / 2, HalfH: math.Max(h, 0) / 2}
}

// Size returns the full width and height.
func (r Rect) Size() (w, h float64) {
	return r.HalfW * 2, r.HalfH * 2
}

// Min returns the top-left extreme in local space.
func (r Rect) Min() Vector2 {
	return Vector2{-r.HalfW, -r.HalfH}
}

// Max returns the bottom-right extreme in local space.
func (r Rect) Max() Vector2 {
	return Vector2{r.HalfW, r.HalfH}
}

// Contains reports whether p lies strictly inside the rect. Points on the
// boundary are outside.
func (r Rect) Contains(p Vector2) bool {
	return p.X > -r.HalfW && p.X < r.HalfW && p.Y > -r.HalfH && p.Y < r.HalfH
}

// Corners returns the four local-space corners in winding order:
// (min,min), (max,min), (max,max), (min,max). With y pointing down this is
// clockwise on screen and counter-clockwise in a y-up frame.
func (r Rect) Corners() [4]Vector2 {
	return [4]Vector2{
		{-r.HalfW, -r.HalfH},
		{r.HalfW, -r.HalfH},
		{r.HalfW, r.HalfH},
		{-r.HalfW, r.HalfH},
	}
}

// At places the rect with its center at c.
func (r Rect) At(c Vector2) Box {
	return Box{Center: c, Rect: r}
}

// Box is a Rect placed at a center point in some coordinate space.
type Box struct {
	Center Vector2
	Rect
}

// Contains reports whether p lies strictly inside the box.
func (b Box) Contains(p Vector2) bool {
	return b.Rect.Contains(p.Sub(b.Center))
}

// Min returns the top-left corner.
func (b Box) Min() Vector2 {
	return b.Center.Add(b.Rect.Min())
}

// Max returns the bottom-right corner.
func (b Box) Max() Vector2 {
	return b.Center.Add(b.Rect.Max())
}

// Corners returns the four corners in the same winding as Rect.Corners.
func (b Box) Corners() [4]Vector2 {
	cs := b.Rect.Corners()
	for i := range cs {
		cs[i] = cs[i].Add(b.Center)
	}
	return cs
}

// Edges returns the four boundary segments following the corner winding.
func (b Box) Edges() [4]Segment {
	cs := b.Corners()
	return [4]Segment{
		{A: cs[0], B: cs[1]},
		{A: cs[1], B: cs[2]},
		{A: cs[2], B: cs[3]},
		{A: cs[3], B: cs[0]},
	}
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vector2) Box {
	b.Center = b.Center.Add(d)
	return b
}

// Segment is a line segment from A to B.
type Segment struct {
	A, B Vector2
}
