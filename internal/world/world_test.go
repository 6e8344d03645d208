package world

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/core/geom"
)

var white = color.RGBA{255, 255, 255, 255}

func TestMoveToNormalizesDirection(t *testing.T) {
	obj := NewObject(geom.Vec(0, 0), white)
	obj.MoveTo(geom.Vec(3, 4), 10)
	assert.InDelta(t, 6.0, obj.Velocity.X, 1e-9)
	assert.InDelta(t, 8.0, obj.Velocity.Y, 1e-9)
	assert.Equal(t, geom.Vec(0, 0), obj.Position, "MoveTo must not move the object")

	obj.MoveTo(geom.Vector2{}, 10)
	assert.True(t, obj.Velocity.IsZero())
}

func TestUpdatePositionDeadBand(t *testing.T) {
	obj := NewObject(geom.Vec(5, 5), white)
	obj.Velocity = geom.Vec(0, -0.5)

	moved := obj.UpdatePosition(1, DefaultPhysics(), NeverBlocked)
	assert.False(t, moved)
	assert.True(t, obj.Velocity.IsZero())
	assert.Equal(t, geom.Vec(5, 5), obj.Position)
}

func TestFrictionDecayConverges(t *testing.T) {
	phys := DefaultPhysics()
	for _, v0 := range []geom.Vector2{geom.Vec(100, 0), geom.Vec(-3, 2), geom.Vec(1000, -1000), geom.Vec(0.6, 0)} {
		obj := NewObject(geom.Vec(0, 0), white)
		obj.Velocity = v0

		// |v0| * f^n <= RestSpeed after n steps, one more step zeroes it.
		n := int(math.Ceil(math.Log(phys.RestSpeed/v0.Len())/math.Log(phys.Friction))) + 1
		for i := 0; i < n; i++ {
			obj.UpdatePosition(1.0/60, phys, NeverBlocked)
		}
		assert.True(t, obj.Velocity.IsZero(), "v0=%v not at rest after %d steps: %v", v0, n, obj.Velocity)
	}
}

func TestBlockedMoveStallsButDecays(t *testing.T) {
	w := New()
	wall := w.Add(NewObject(geom.Vec(120, 100), white).WithCollider(20, 20, true))
	player := w.Add(NewObject(geom.Vec(100, 100), white))
	require.NotEqual(t, wall, player)

	obj, _ := w.Object(player)
	obj.Velocity = geom.Vec(20, 0) // candidate (120,100) is inside [110,130]x[90,110]

	moved := w.Step(1, DefaultPhysics())
	assert.Empty(t, moved)
	assert.Equal(t, geom.Vec(100, 100), obj.Position)
	assert.InDelta(t, 16.0, obj.Velocity.X, 1e-9, "velocity decays by friction only")
}

func TestCenterPointTestingCanTunnel(t *testing.T) {
	w := New()
	w.Add(NewObject(geom.Vec(120, 100), white).WithCollider(20, 20, true))
	idx := w.Add(NewObject(geom.Vec(100, 100), white))
	obj, _ := w.Object(idx)
	obj.Velocity = geom.Vec(50, 0) // candidate (150,100) lies past the wall

	w.Step(1, DefaultPhysics())
	assert.Equal(t, geom.Vec(150, 100), obj.Position)
}

func TestCollisionStallNeverEntersCollider(t *testing.T) {
	w := New()
	w.Add(NewObject(geom.Vec(120, 100), white).WithCollider(20, 20, true))
	idx := w.Add(NewObject(geom.Vec(0, 100), white))
	obj, _ := w.Object(idx)
	wallBox := geom.NewRect(20, 20).At(geom.Vec(120, 100))

	for frame := 0; frame < 300; frame++ {
		obj.MoveTo(geom.Vec(1, 0), 200)
		w.Step(1.0/60, DefaultPhysics())
		require.False(t, wallBox.Contains(obj.Position), "frame %d: %v inside wall", frame, obj.Position)
	}
	assert.LessOrEqual(t, obj.Position.X, 110.0)
	assert.Greater(t, obj.Position.X, 100.0, "object advanced up to the wall")
}

func TestOwnColliderDoesNotBlock(t *testing.T) {
	w := New()
	idx := w.Add(NewObject(geom.Vec(0, 0), white).WithCollider(40, 40, true))
	obj, _ := w.Object(idx)
	obj.Velocity = geom.Vec(5, 0)

	moved := w.Step(1, DefaultPhysics())
	assert.Equal(t, []int{idx}, moved)
	assert.Equal(t, geom.Vec(5, 0), obj.Position)
}

func TestNonSolidColliderDoesNotBlock(t *testing.T) {
	w := New()
	w.Add(NewObject(geom.Vec(500, 500), white).WithCollider(1000, 1000, false))
	idx := w.Add(NewObject(geom.Vec(100, 100), white))
	obj, _ := w.Object(idx)
	obj.Velocity = geom.Vec(10, 0)

	w.Step(1, DefaultPhysics())
	assert.Equal(t, geom.Vec(110, 100), obj.Position)
}

func TestLookAtPointsAwayFromTarget(t *testing.T) {
	obj := NewObject(geom.Vec(0, 0), white)

	angle, dir := obj.LookAt(geom.Vec(10, 0))
	assert.InDelta(t, math.Pi, angle, 1e-9, "rotation points from target to self")
	assert.InDelta(t, -1.0, dir.X, 1e-9)
	assert.Equal(t, angle, obj.Rotation)

	angle, _ = obj.LookAt(geom.Vec(0, -5))
	assert.InDelta(t, math.Pi/2, angle, 1e-9)

	before := obj.Rotation
	_, dir = obj.LookAt(obj.Position)
	assert.True(t, dir.IsZero())
	assert.Equal(t, before, obj.Rotation)
}

func TestSpawnAndLookups(t *testing.T) {
	w := New()
	w.Add(NewObject(geom.Vec(500, 500), white).WithCollider(1000, 1000, false))
	w.Add(NewObject(geom.Vec(200, 300), white).WithCollider(20, 20, true))

	idx, ok := w.Spawn(LocalToken, "Fridge", geom.Vec(400, 300), white, 20)
	require.True(t, ok)
	assert.Equal(t, 2, idx, "players are appended after static geometry")

	p, ok := w.Player(LocalToken)
	require.True(t, ok)
	assert.Equal(t, "Fridge", p.Name)

	obj, ok := w.PlayerObject(LocalToken)
	require.True(t, ok)
	assert.Equal(t, geom.Vec(400, 300), obj.Position)
	assert.False(t, obj.Collides)

	_, ok = w.Spawn(LocalToken, "Again", geom.Vec(0, 0), white, 20)
	assert.False(t, ok)
	assert.Equal(t, 3, w.Len())

	_, ok = w.PlayerObject(Token(42))
	assert.False(t, ok)
	_, ok = w.Object(-1)
	assert.False(t, ok)
	_, ok = w.Object(3)
	assert.False(t, ok)
}

func TestStalePlayerIndexIsNotFound(t *testing.T) {
	w := New()
	w.players[7] = Player{Name: "ghost", ObjectIndex: 99}
	_, ok := w.PlayerObject(7)
	assert.False(t, ok)
}

func TestTokensSorted(t *testing.T) {
	w := New()
	w.Spawn(9, "c", geom.Vec(0, 0), white, 10)
	w.Spawn(2, "a", geom.Vec(0, 0), white, 10)
	w.Spawn(5, "b", geom.Vec(0, 0), white, 10)
	assert.Equal(t, []Token{2, 5, 9}, w.Tokens())
}

func TestSolidsSnapshot(t *testing.T) {
	w := New()
	w.Add(NewObject(geom.Vec(0, 0), white).WithCollider(10, 10, false))
	w.Add(NewObject(geom.Vec(5, 5), white))
	solid := w.Add(NewObject(geom.Vec(50, 50), white).WithCollider(10, 10, true))

	solids := w.Solids()
	require.Len(t, solids, 1)
	assert.Equal(t, solid, solids[0].Index)
	assert.Equal(t, geom.Vec(50, 50), solids[0].Box.Center)
}
