package visibility

import (
	"math"
	"sort"

	"chosenoffset.com/siderun/internal/core/geom"
)

// Compute calculates what a viewer at source can see among occluders.
// All coordinates share one space (the play scene uses screen space).
// With no occluders the polygon is empty.
func Compute(source geom.Vector2, occluders []geom.Box, opts Options) Polygon {
	angles := Angles(source, occluders, opts)
	return Polygon{
		Source: source,
		Angles: angles,
		Hits:   Cast(source, angles, occluders, opts),
	}
}

// Angles enumerates the rays to cast: for every corner of every occluder,
// the primary angle toward the corner and two auxiliary angles rotated by
// ±AuxEpsilon.
func Angles(source geom.Vector2, occluders []geom.Box, opts Options) []Angle {
	angles := make([]Angle, 0, len(occluders)*4*3)

	for _, box := range occluders {
		corners := box.Corners()
		for i, corner := range corners {
			prev := corners[(i+3)%4]
			next := corners[(i+1)%4]

			a := geom.AngleOf(corner.Sub(source))
			turn := cornerTurn(source, prev, corner, next)

			angles = append(angles,
				Angle{Radians: a, Kind: Primary, Corner: corner, Turn: turn},
				Angle{
					Radians: geom.NormalizeAngle(a - opts.AuxEpsilon),
					Kind:    AuxCW,
					Corner:  corner,
					Turn:    turn,
					Escapes: turn == TurnCCW,
				},
				Angle{
					Radians: geom.NormalizeAngle(a + opts.AuxEpsilon),
					Kind:    AuxCCW,
					Corner:  corner,
					Turn:    turn,
					Escapes: turn == TurnCW,
				},
			)
		}
	}

	return angles
}

// cornerTurn classifies the outline at corner using the sign of the dot
// product between the ray's perpendicular and the edges to the previous
// and next corners. The perpendicular points toward increasing angles.
func cornerTurn(source, prev, corner, next geom.Vector2) Turn {
	perp := corner.Sub(source).Perp()
	side := sign(perp.Dot(prev.Sub(corner))) + sign(perp.Dot(next.Sub(corner)))
	switch {
	case side > 0:
		return TurnCCW
	case side < 0:
		return TurnCW
	default:
		return Facing
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Cast finds the nearest intersection for every angle and returns the hits
// sorted by ascending angle. Angles that hit nothing are dropped.
func Cast(source geom.Vector2, angles []Angle, occluders []geom.Box, opts Options) []Hit {
	hits := make([]Hit, 0, len(angles))

	for _, a := range angles {
		if hit, ok := castOne(source, a, occluders, opts); ok {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Angle.Radians != hits[j].Angle.Radians {
			return hits[i].Angle.Radians < hits[j].Angle.Radians
		}
		return hits[i].Dist < hits[j].Dist
	})

	return hits
}

func castOne(source geom.Vector2, a Angle, occluders []geom.Box, opts Options) (Hit, bool) {
	ray := geom.RayAt(source, a.Radians)

	found := false
	best := math.Inf(1)
	var point geom.Vector2

	for _, box := range occluders {
		if ok, dist, p := ray.IntersectBox(box); ok && dist < best {
			found, best, point = true, dist, p
		}
	}

	// Rays aimed exactly at a corner can slip past it through rounding.
	// A corner lying on the ray and nearer than any edge hit is the hit.
	for _, box := range occluders {
		for _, corner := range box.Corners() {
			d := corner.Sub(source)
			if math.Abs(geom.AngleDiff(a.Radians, d.Angle())) > opts.CornerTolerance {
				continue
			}
			if dist := d.Len(); dist < best {
				found, best, point = true, dist, corner
			}
		}
	}

	if !found {
		return Hit{}, false
	}
	return Hit{Angle: a, Point: point, Dist: best}, true
}

// Fan emits one triangle per consecutive pair of hits, closed by a
// triangle from the last hit back to the first. Fewer than two hits yield
// no triangles.
func Fan(source geom.Vector2, hits []Hit) []Triangle {
	if len(hits) < 2 {
		return nil
	}
	tris := make([]Triangle, 0, len(hits))
	for i := range hits {
		next := hits[(i+1)%len(hits)]
		tris = append(tris, Triangle{hits[i].Point, next.Point, source})
	}
	return tris
}
