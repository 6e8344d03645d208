// Package camera implements the viewport offset and its dead-zone follow
// controller.
package camera

import (
	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/world"
)

// Follow configures the dead-zone follow behaviour.
type Follow struct {
	// DeadZone is the per-axis distance from the viewport center within
	// which the target causes no camera motion.
	DeadZone float64
	// Speed is passed to MoveTo when the camera is pulled.
	Speed float64
}

// DefaultFollow returns the soft-follow defaults.
func DefaultFollow() Follow {
	return Follow{DeadZone: 150, Speed: 200}
}

// Camera is a non-solid object whose position is the world-space point
// shown at the top-left of the screen. It has no collider.
type Camera struct {
	world.Object
	follow Follow
}

// New creates a camera at pos.
func New(pos geom.Vector2, follow Follow) *Camera {
	return &Camera{Object: world.Object{Position: pos}, follow: follow}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p geom.Vector2) geom.Vector2 {
	return p.Sub(c.Position)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p geom.Vector2) geom.Vector2 {
	return c.Position.Add(p)
}

// Update integrates the camera's own motion. Nothing blocks the camera.
func (c *Camera) Update(dt float64, phys world.Physics) {
	c.UpdatePosition(dt, phys, world.NeverBlocked)
}

// Pull computes the follow direction for a target at screen position
// target with the viewport centered at center. Each axis on which the
// target is farther than the dead zone contributes its offset; the result
// is not normalized and is zero when the target is inside the dead zone.
func (c *Camera) Pull(target, center geom.Vector2) geom.Vector2 {
	var pull geom.Vector2

	xProbe := geom.Vec(target.X, center.Y)
	if geom.Distance(center, xProbe) > c.follow.DeadZone {
		pull.X += xProbe.X - center.X
	}

	yProbe := geom.Vec(center.X, target.Y)
	if geom.Distance(center, yProbe) > c.follow.DeadZone {
		pull.Y += yProbe.Y - center.Y
	}

	return pull
}

// Track applies the follow controller for one frame and returns the pull
// that was applied. Inside the dead zone the velocity is left to decay.
func (c *Camera) Track(target, center geom.Vector2) geom.Vector2 {
	pull := c.Pull(target, center)
	if !pull.IsZero() {
		c.MoveTo(pull.Normalize(), c.follow.Speed)
	}
	return pull
}
