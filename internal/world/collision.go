package world

import "chosenoffset.com/siderun/internal/core/geom"

// Solid is a snapshot of one blocking collider taken at frame start.
type Solid struct {
	Index int
	Box   geom.Box
}

// BlockedBy builds the collision predicate for the object at index self.
// The candidate point (the moving object's center) is translated into each
// collider's local space and tested for strict containment. The object's
// own collider never blocks it.
//
// This is discrete point-versus-rectangle testing: there is no push-out and
// no swept test, so a fast object can skip over a thin collider in one step.
func BlockedBy(solids []Solid, self int) Blocker {
	return func(candidate geom.Vector2) bool {
		for _, s := range solids {
			if s.Index == self {
				continue
			}
			if s.Box.Rect.Contains(candidate.Sub(s.Box.Center)) {
				return true
			}
		}
		return false
	}
}
