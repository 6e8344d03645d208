// Package visibility computes the region visible from a point among
// axis-aligned rectangular occluders, by casting rays at every occluder
// corner plus a pair of slightly rotated rays around each corner.
package visibility

import "chosenoffset.com/siderun/internal/core/geom"

// Kind classifies a cast angle.
type Kind int

const (
	// Primary rays aim exactly at a corner.
	Primary Kind = iota
	// AuxCW rays are rotated by -epsilon from a corner (clockwise in the
	// atan2 sense).
	AuxCW
	// AuxCCW rays are rotated by +epsilon from a corner.
	AuxCCW
)

func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case AuxCW:
		return "aux-cw"
	case AuxCCW:
		return "aux-ccw"
	default:
		return "unknown"
	}
}

// Turn describes how an occluder's outline turns at a corner relative to
// the ray aimed at that corner.
type Turn int

const (
	// Facing: the neighbouring corners lie on opposite sides of the ray,
	// so rays on both sides of the corner strike the occluder.
	Facing Turn = iota
	// TurnCW: the occluder lies on the clockwise side of the ray; the
	// counter-clockwise auxiliary ray passes beside it.
	TurnCW
	// TurnCCW: the occluder lies on the counter-clockwise side of the ray;
	// the clockwise auxiliary ray passes beside it.
	TurnCCW
)

func (t Turn) String() string {
	switch t {
	case Facing:
		return "facing"
	case TurnCW:
		return "cw"
	case TurnCCW:
		return "ccw"
	default:
		return "unknown"
	}
}

// Angle is one ray direction to cast.
type Angle struct {
	Radians float64 // in (-π, π]
	Kind    Kind
	Corner  geom.Vector2 // corner the angle was derived from
	Turn    Turn
	// Escapes marks the auxiliary ray that passes beside a silhouette
	// corner instead of striking its occluder.
	Escapes bool
}

// Hit is the nearest intersection found along one angle.
type Hit struct {
	Angle Angle
	Point geom.Vector2
	Dist  float64
}

// Triangle is one fan triangle; the third vertex is always the source.
type Triangle [3]geom.Vector2

// Options tunes the engine.
type Options struct {
	// AuxEpsilon is the rotation applied to auxiliary rays. It must exceed
	// floating-point intersection error but stay small enough not to
	// reveal geometry behind a corner.
	AuxEpsilon float64
	// CornerTolerance is the angular distance under which a ray is
	// considered aimed at a corner for the corner fallback.
	CornerTolerance float64
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		AuxEpsilon:      0.01,
		CornerTolerance: 1e-9,
	}
}

// Polygon is the result of one visibility computation.
type Polygon struct {
	Source geom.Vector2
	Angles []Angle
	// Hits are sorted by ascending angle.
	Hits []Hit
}

// Empty reports whether nothing is visible, e.g. when there are no
// occluders.
func (p Polygon) Empty() bool {
	return len(p.Hits) < 2
}

// Fan triangulates the polygon around its source.
func (p Polygon) Fan() []Triangle {
	return Fan(p.Source, p.Hits)
}

// Points returns the hit points in angular order.
func (p Polygon) Points() []geom.Vector2 {
	pts := make([]geom.Vector2, len(p.Hits))
	for i, h := range p.Hits {
		pts[i] = h.Point
	}
	return pts
}

// Visible reports whether p lies inside the visible polygon.
func (p Polygon) Visible(pt geom.Vector2) bool {
	if p.Empty() {
		return false
	}
	return geom.PointInPolygon(pt, p.Points())
}
