// Package input tracks which keys are held, fed by press and release
// edges from the windowing layer.
package input

import "chosenoffset.com/siderun/internal/render"

// Tracker keeps the set of held keys. Edge events are buffered until
// Update, so the held set is stable for the rest of the frame.
type Tracker struct {
	held     map[render.Key]bool
	pending  map[render.Key]bool // last edge per key
	downs    map[render.Key]bool // keys with any press edge
	pressed  map[render.Key]bool
	released map[render.Key]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		held:     make(map[render.Key]bool),
		pending:  make(map[render.Key]bool),
		downs:    make(map[render.Key]bool),
		pressed:  make(map[render.Key]bool),
		released: make(map[render.Key]bool),
	}
}

// RegisterPress records a key-down edge.
func (t *Tracker) RegisterPress(key render.Key) {
	t.pending[key] = true
	t.downs[key] = true
}

// RegisterRelease records a key-up edge.
func (t *Tracker) RegisterRelease(key render.Key) {
	t.pending[key] = false
}

// Update applies the edges recorded since the previous call. A key pressed
// and released within one frame counts as just pressed and just released
// but not held.
func (t *Tracker) Update() {
	clear(t.pressed)
	clear(t.released)
	for key := range t.downs {
		if !t.held[key] {
			t.pressed[key] = true
		}
	}
	for key, down := range t.pending {
		if down {
			t.held[key] = true
			continue
		}
		if t.held[key] || t.pressed[key] {
			t.released[key] = true
		}
		delete(t.held, key)
	}
	clear(t.pending)
	clear(t.downs)
}

// IsHeld reports whether key was down at the last Update.
func (t *Tracker) IsHeld(key render.Key) bool {
	return t.held[key]
}

// JustPressed reports whether key went down during the last frame.
func (t *Tracker) JustPressed(key render.Key) bool {
	return t.pressed[key]
}

// JustReleased reports whether key went up during the last frame.
func (t *Tracker) JustReleased(key render.Key) bool {
	return t.released[key]
}

// Held returns the held keys in render.Keys order.
func (t *Tracker) Held() []render.Key {
	var keys []render.Key
	for _, k := range render.Keys {
		if t.held[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
