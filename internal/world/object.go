// Package world holds the play session's objects and player records and
// the movement and collision rules applied to them each frame.
package world

import (
	"image/color"

	"chosenoffset.com/siderun/internal/core/geom"
)

// Physics holds the movement integration parameters.
type Physics struct {
	// Friction multiplies velocity once per integration step, in (0, 1).
	Friction float64
	// RestSpeed is the dead band: a velocity at or below this magnitude
	// is zeroed instead of integrated.
	RestSpeed float64
}

// DefaultPhysics returns the drift-to-stop movement feel.
func DefaultPhysics() Physics {
	return Physics{Friction: 0.8, RestSpeed: 0.5}
}

// Blocker decides whether an object may move to candidate.
// It returns true when the move collides.
type Blocker func(candidate geom.Vector2) bool

// NeverBlocked is the predicate used for the camera.
func NeverBlocked(geom.Vector2) bool { return false }

// Object is a positioned entity in the world. Its collider, when present,
// is axis-aligned and centered on Position regardless of Rotation.
type Object struct {
	Position geom.Vector2
	Rotation float64 // radians
	Color    color.RGBA
	Velocity geom.Vector2
	Collider *geom.Rect
	// Collides marks the object as solid: it blocks other objects.
	Collides bool
}

// NewObject creates a non-solid object without a collider.
func NewObject(pos geom.Vector2, clr color.RGBA) *Object {
	return &Object{Position: pos, Color: clr}
}

// WithCollider attaches a w x h collider and returns the object.
func (o *Object) WithCollider(w, h float64, solid bool) *Object {
	r := geom.NewRect(w, h)
	o.Collider = &r
	o.Collides = solid
	return o
}

// Box returns the collider placed at the object's position.
func (o *Object) Box() (geom.Box, bool) {
	if o.Collider == nil {
		return geom.Box{}, false
	}
	return o.Collider.At(o.Position), true
}

// MoveTo sets the velocity intent. The object does not move until the next
// UpdatePosition. A zero direction stops the object.
func (o *Object) MoveTo(direction geom.Vector2, speed float64) {
	o.Velocity = direction.Normalize().Scale(speed)
}

// UpdatePosition integrates one step. Slow objects come to rest; otherwise
// the candidate position is committed unless blocked says it collides, and
// friction is applied in either case. A blocked object stalls in place.
// It reports whether the position changed.
func (o *Object) UpdatePosition(dt float64, phys Physics, blocked Blocker) bool {
	if o.Velocity.Len() <= phys.RestSpeed {
		o.Velocity = geom.Vector2{}
		return false
	}

	moved := false
	candidate := o.Position.Add(o.Velocity.Scale(dt))
	if blocked == nil || !blocked(candidate) {
		moved = candidate != o.Position
		o.Position = candidate
	}

	o.Velocity = o.Velocity.Scale(phys.Friction)
	return moved
}

// LookAt sets Rotation to the angle of the direction from target to the
// object, i.e. pointing away from target. Renderers that want the object to
// face the target add π. When target equals the position the rotation is
// left unchanged and the zero vector is returned.
func (o *Object) LookAt(target geom.Vector2) (float64, geom.Vector2) {
	dir := o.Position.Sub(target)
	if dir.IsZero() {
		return o.Rotation, geom.Vector2{}
	}
	dir = dir.Normalize()
	o.Rotation = dir.Angle()
	return o.Rotation, dir
}
