// Package scene drives the active scene and swaps scenes when one asks
// for a transition.
package scene

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/render"
)

// Scene is one screen of the game: the menu or a play session.
type Scene interface {
	// Update advances one frame. A non-nil next scene replaces this one
	// after the call returns.
	Update(dt float64) (next Scene, err error)
	Draw(screen render.Image)
	OnKeyPress(key render.Key)
	OnKeyRelease(key render.Key)
	OnCursorMove(x, y float64)
}

// Manager adapts the active Scene to render.Game.
type Manager struct {
	width, height int
	dt            float64
	input         render.InputManager
	current       Scene
	cursorX       int
	cursorY       int
	cursorSeen    bool
	log           *logrus.Entry
}

// NewManager creates a manager starting at first. Each Update advances
// the scene by 1/tps seconds.
func NewManager(first Scene, input render.InputManager, width, height, tps int) *Manager {
	if tps <= 0 {
		tps = 60
	}
	return &Manager{
		width:   width,
		height:  height,
		dt:      1 / float64(tps),
		input:   input,
		current: first,
		log:     logger.For("scene"),
	}
}

// Current returns the active scene.
func (m *Manager) Current() Scene {
	return m.current
}

// Update forwards input edges and the cursor to the active scene, then
// updates it and performs any requested transition.
func (m *Manager) Update() error {
	for _, key := range render.Keys {
		if m.input.IsKeyJustPressed(key) {
			m.current.OnKeyPress(key)
		}
		if m.input.IsKeyJustReleased(key) {
			m.current.OnKeyRelease(key)
		}
	}

	x, y := m.input.GetCursorPosition()
	if !m.cursorSeen || x != m.cursorX || y != m.cursorY {
		m.cursorX, m.cursorY, m.cursorSeen = x, y, true
		m.current.OnCursorMove(float64(x), float64(y))
	}

	next, err := m.current.Update(m.dt)
	if err != nil {
		return err
	}
	if next != nil {
		m.log.WithFields(logrus.Fields{
			"from": name(m.current),
			"to":   name(next),
		}).Info("Scene transition.")
		m.current = next
		// The new scene has not seen the cursor yet.
		next.OnCursorMove(float64(m.cursorX), float64(m.cursorY))
	}
	return nil
}

// Draw draws the active scene.
func (m *Manager) Draw(screen render.Image) {
	m.current.Draw(screen)
}

// Layout returns the fixed logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.width, m.height
}

func name(s Scene) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", s)
}
