package geom

import "math"

// Ray is a half-line starting at Origin and extending along Dir.
type Ray struct {
	Origin Vector2
	Dir    Vector2
}

// RayAt builds the ray leaving origin at angle a.
func RayAt(origin Vector2, a float64) Ray {
	return Ray{Origin: origin, Dir: FromAngle(a)}
}

// Point returns the point at parameter t along the ray.
func (r Ray) Point(t float64) Vector2 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// parallelTolerance is the cross-product magnitude under which a ray and a
// segment are treated as parallel.
const parallelTolerance = 1e-10

// IntersectSegment checks if the ray hits the segment.
// Returns: (hit bool, t float64, point Vector2), where t is the ray parameter.
// For a unit Dir, t is the distance from the origin.
func (r Ray) IntersectSegment(seg Segment) (bool, float64, Vector2) {
	// Ray: P = origin + t * dir for t >= 0
	// Segment: Q = A + u * (B - A) for 0 <= u <= 1
	segD := seg.B.Sub(seg.A)

	denominator := r.Dir.X*segD.Y - r.Dir.Y*segD.X
	if math.Abs(denominator) < parallelTolerance {
		return false, 0, Vector2{}
	}

	diff := seg.A.Sub(r.Origin)
	u := (diff.X*r.Dir.Y - diff.Y*r.Dir.X) / denominator
	t := (diff.X*segD.Y - diff.Y*segD.X) / denominator

	if u >= 0 && u <= 1 && t >= 0 {
		return true, t, r.Point(t)
	}
	return false, 0, Vector2{}
}

// IntersectBox returns the closest intersection of the ray with the box
// boundary. A ray starting inside the box reports the exit point.
func (r Ray) IntersectBox(b Box) (bool, float64, Vector2) {
	hit := false
	best := math.Inf(1)
	var point Vector2
	for _, e := range b.Edges() {
		ok, t, p := r.IntersectSegment(e)
		if ok && t < best {
			hit, best, point = true, t, p
		}
	}
	if !hit {
		return false, 0, Vector2{}
	}
	return true, best, point
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed smallest rotation from a to b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// Rotate rotates v around the origin by a radians.
func Rotate(v Vector2, a float64) Vector2 {
	s, c := math.Sincos(a)
	return Vector2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Vector2, polygon []Vector2) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}
