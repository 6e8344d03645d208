package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/render/rendertest"
)

type stub struct {
	label    string
	events   []string
	dts      []float64
	next     Scene
	err      error
	drawn    int
	cursorXs []float64
}

func (s *stub) String() string { return s.label }

func (s *stub) Update(dt float64) (Scene, error) {
	s.dts = append(s.dts, dt)
	next := s.next
	s.next = nil
	return next, s.err
}

func (s *stub) Draw(render.Image) { s.drawn++ }

func (s *stub) OnKeyPress(k render.Key) { s.events = append(s.events, "press "+k.String()) }

func (s *stub) OnKeyRelease(k render.Key) { s.events = append(s.events, "release "+k.String()) }

func (s *stub) OnCursorMove(x, y float64) { s.cursorXs = append(s.cursorXs, x) }

func TestManagerForwardsInput(t *testing.T) {
	in := rendertest.NewInput()
	first := &stub{label: "first"}
	m := NewManager(first, in, 800, 600, 50)

	in.Press(render.KeyW)
	in.Release(render.KeyEnter)
	in.CursorX = 12
	require.NoError(t, m.Update())

	assert.Equal(t, []string{"press W", "release Enter"}, first.events)
	assert.Equal(t, []float64{12}, first.cursorXs)
	assert.Equal(t, []float64{0.02}, first.dts)

	in.EndFrame()
	require.NoError(t, m.Update())
	assert.Len(t, first.events, 2, "edges are delivered once")
	assert.Len(t, first.cursorXs, 1, "unchanged cursor is not re-sent")
}

func TestManagerTransitions(t *testing.T) {
	in := rendertest.NewInput()
	second := &stub{label: "second"}
	first := &stub{label: "first", next: second}
	m := NewManager(first, in, 800, 600, 60)

	in.CursorX = 33
	require.NoError(t, m.Update())
	assert.Same(t, second, m.Current())
	assert.Equal(t, []float64{33}, second.cursorXs, "new scene learns the cursor position")
	assert.Empty(t, second.dts, "new scene starts updating next frame")

	m.Draw(rendertest.NewRenderer().Screen(800, 600))
	assert.Equal(t, 1, second.drawn)
	assert.Zero(t, first.drawn)
}

func TestManagerPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewManager(&stub{err: boom}, rendertest.NewInput(), 1, 1, 60)
	assert.ErrorIs(t, m.Update(), boom)

	m = NewManager(&stub{err: render.ErrQuit}, rendertest.NewInput(), 1, 1, 60)
	assert.ErrorIs(t, m.Update(), render.ErrQuit)
}

func TestLayoutIsFixed(t *testing.T) {
	m := NewManager(&stub{}, rendertest.NewInput(), 800, 600, 60)
	w, h := m.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
