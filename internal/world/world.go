package world

import (
	"image/color"
	"sort"

	"chosenoffset.com/siderun/internal/core/geom"
)

// Token identifies the connection that controls a player.
type Token uint64

// LocalToken is the token of the local player when no network session
// exists.
const LocalToken Token = 0

// Player links a token to the object it controls. ObjectIndex is a
// back-reference into the world's object list, not ownership.
type Player struct {
	Name        string
	ObjectIndex int
}

// World owns the objects of a play session. Objects are only ever
// appended, so indices handed out stay valid for the session.
type World struct {
	objects []*Object
	players map[Token]Player
}

// New creates an empty world.
func New() *World {
	return &World{players: make(map[Token]Player)}
}

// Add appends a static object and returns its index.
func (w *World) Add(obj *Object) int {
	w.objects = append(w.objects, obj)
	return len(w.objects) - 1
}

// Len returns the number of objects.
func (w *World) Len() int {
	return len(w.objects)
}

// Object returns the object at index i, or false if i is out of range.
func (w *World) Object(i int) (*Object, bool) {
	if i < 0 || i >= len(w.objects) {
		return nil, false
	}
	return w.objects[i], true
}

// Objects returns the object list in insertion order. Callers must not
// append to it.
func (w *World) Objects() []*Object {
	return w.objects
}

// Spawn appends a player object for token. A token that already has a
// player is left untouched and false is returned.
func (w *World) Spawn(token Token, name string, pos geom.Vector2, clr color.RGBA, size float64) (int, bool) {
	if _, exists := w.players[token]; exists {
		return 0, false
	}
	obj := NewObject(pos, clr).WithCollider(size, size, false)
	idx := w.Add(obj)
	w.players[token] = Player{Name: name, ObjectIndex: idx}
	return idx, true
}

// Player returns the player record for token.
func (w *World) Player(token Token) (Player, bool) {
	p, ok := w.players[token]
	return p, ok
}

// PlayerObject resolves the player's back-reference. It returns false when
// the token is unknown or the index does not resolve.
func (w *World) PlayerObject(token Token) (*Object, bool) {
	p, ok := w.players[token]
	if !ok {
		return nil, false
	}
	return w.Object(p.ObjectIndex)
}

// Tokens returns all player tokens in ascending order.
func (w *World) Tokens() []Token {
	tokens := make([]Token, 0, len(w.players))
	for t := range w.players {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}

// Solids snapshots every solid object that has a collider.
func (w *World) Solids() []Solid {
	var solids []Solid
	for i, obj := range w.objects {
		if !obj.Collides {
			continue
		}
		if box, ok := obj.Box(); ok {
			solids = append(solids, Solid{Index: i, Box: box})
		}
	}
	return solids
}

// Step integrates every object once against the solids present at the
// start of the step. It returns the indices of objects whose position
// changed.
func (w *World) Step(dt float64, phys Physics) []int {
	solids := w.Solids()
	var moved []int
	for i, obj := range w.objects {
		if obj.UpdatePosition(dt, phys, BlockedBy(solids, i)) {
			moved = append(moved, i)
		}
	}
	return moved
}
