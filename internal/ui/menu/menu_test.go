package menu

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/assets"
	"chosenoffset.com/siderun/internal/config"
	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/game"
	"chosenoffset.com/siderun/internal/netconn"
	"chosenoffset.com/siderun/internal/render"
	"chosenoffset.com/siderun/internal/render/rendertest"
	"chosenoffset.com/siderun/internal/world"
)

const dt = 1.0 / 60

func newMenu(t *testing.T, files map[string]string) (*Menu, *rendertest.Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Levels.Dir = dir
	r := rendertest.NewRenderer()
	m := New(Deps{
		Config:   cfg,
		Renderer: r,
		Textures: assets.Load("missing", nil, r),
	})
	return m, r, dir
}

func tap(m *Menu, key render.Key) {
	m.OnKeyPress(key)
	m.OnKeyRelease(key)
}

func TestDefaultLevelAlwaysOffered(t *testing.T) {
	m, _, _ := newMenu(t, nil)
	assert.Equal(t, []string{"Default"}, m.Names())
	assert.Equal(t, "menu", m.String())
}

func TestScannedLevelsFollowDefault(t *testing.T) {
	m, _, _ := newMenu(t, map[string]string{
		"b.json":      `{"name": "Yard", "bounds": {"w": 500, "h": 500}}`,
		"a.json":      `{"name": "Attic", "bounds": {"w": 300, "h": 200}}`,
		"broken.json": `{"name": ""}`,
	})
	assert.Equal(t, []string{"Default", "Attic", "Yard"}, m.Names())
}

func TestNavigationClamps(t *testing.T) {
	m, _, _ := newMenu(t, map[string]string{
		"a.json": `{"name": "Attic", "bounds": {"w": 300, "h": 200}}`,
	})

	tap(m, render.KeyUp)
	_, err := m.Update(dt)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Selected())

	for i := 0; i < 3; i++ {
		tap(m, render.KeyDown)
		_, err = m.Update(dt)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, m.Selected())
}

func TestStartLoadsSelectedLevel(t *testing.T) {
	m, _, _ := newMenu(t, map[string]string{
		"a.json": `{"name": "Attic", "bounds": {"w": 300, "h": 200}}`,
	})

	tap(m, render.KeyDown)
	tap(m, render.KeyEnter)
	next, err := m.Update(dt)
	require.NoError(t, err)
	play, ok := next.(*game.Play)
	require.True(t, ok, "got %T", next)
	assert.Equal(t, "play(Attic)", play.String())

	// Escape in play returns to a fresh menu with the same selection.
	play.OnKeyPress(render.KeyEscape)
	back, err := play.Update(dt)
	require.NoError(t, err)
	again, ok := back.(*Menu)
	require.True(t, ok, "got %T", back)
	assert.NotSame(t, m, again)
	assert.Equal(t, 1, again.Selected())
}

func TestStartDefaultLevel(t *testing.T) {
	m, _, _ := newMenu(t, nil)
	tap(m, render.KeyEnter)
	next, err := m.Update(dt)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "play(Default)", next.(*game.Play).String())
	assert.Equal(t, 4, next.(*game.Play).World().Len())
}

func TestLoadFailureStaysOnMenu(t *testing.T) {
	m, r, dir := newMenu(t, map[string]string{
		"a.json": `{"name": "Attic", "bounds": {"w": 300, "h": 200}}`,
	})
	require.NoError(t, os.Remove(filepath.Join(dir, "a.json")))

	tap(m, render.KeyDown)
	tap(m, render.KeyEnter)
	next, err := m.Update(dt)
	require.NoError(t, err)
	assert.Nil(t, next)

	m.Draw(r.Screen(800, 600))
	assert.Contains(t, r.Texts(), "a.json")
}

func TestBackQuits(t *testing.T) {
	m, _, _ := newMenu(t, nil)
	tap(m, render.KeyEscape)
	_, err := m.Update(dt)
	assert.ErrorIs(t, err, render.ErrQuit)
}

func TestDrawHighlightsSelection(t *testing.T) {
	m, r, _ := newMenu(t, map[string]string{
		"a.json": `{"name": "Attic", "bounds": {"w": 300, "h": 200}}`,
	})
	tap(m, render.KeyDown)
	_, err := m.Update(dt)
	require.NoError(t, err)

	m.Draw(r.Screen(800, 600))
	require.Equal(t, "fill", r.Ops[0].Kind)
	assert.Equal(t, 1, r.Count("rect"))

	var attic rendertest.Op
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Text == "Attic" {
			attic = op
		}
	}
	assert.Equal(t, selectedColor, attic.Color)
	assert.Contains(t, r.Texts(), "Siderun")
	assert.Contains(t, r.Texts(), "Enter: start")
	assert.Contains(t, r.Texts(), "Escape: quit")
}

// queueConn serves queued events and accepts every send.
type queueConn struct {
	token uint64
	queue []netconn.Event
}

func (c *queueConn) Token() uint64 { return c.token }

func (c *queueConn) Poll() (netconn.Event, bool, error) {
	if len(c.queue) == 0 {
		return netconn.Event{}, false, nil
	}
	ev := c.queue[0]
	c.queue = c.queue[1:]
	return ev, true, nil
}

func (c *queueConn) SendSpawn(string, geom.Vector2, color.RGBA) error { return nil }

func (c *queueConn) SendUpdatePosition(geom.Vector2) error { return nil }

func TestRemotePlayersSurviveReturnToMenu(t *testing.T) {
	conn := &queueConn{token: 1}
	cfg := config.DefaultConfig()
	cfg.Levels.Dir = t.TempDir()
	r := rendertest.NewRenderer()
	m := New(Deps{
		Config:   cfg,
		Renderer: r,
		Textures: assets.Load("missing", nil, r),
		Session:  game.NewSession(conn),
	})

	tap(m, render.KeyEnter)
	next, err := m.Update(dt)
	require.NoError(t, err)
	first := next.(*game.Play)

	conn.queue = []netconn.Event{{Kind: netconn.KindSpawn, Token: 7, Name: "Oven", Position: geom.Vec(10, 20)}}
	_, err = first.Update(dt)
	require.NoError(t, err)
	_, ok := first.World().PlayerObject(7)
	require.True(t, ok)

	first.OnKeyPress(render.KeyEscape)
	back, err := first.Update(dt)
	require.NoError(t, err)
	again := back.(*Menu)

	// The player moves while the menu is open.
	conn.queue = []netconn.Event{{Kind: netconn.KindUpdatePosition, Token: 7, Position: geom.Vec(30, 40)}}
	_, err = again.Update(dt)
	require.NoError(t, err)
	assert.Empty(t, conn.queue, "the menu keeps reading the connection")

	tap(again, render.KeyEnter)
	next, err = again.Update(dt)
	require.NoError(t, err)
	second := next.(*game.Play)

	remote, ok := second.World().PlayerObject(7)
	require.True(t, ok, "remote player is restored in the new world")
	assert.Equal(t, geom.Vec(30, 40), remote.Position)
	pl, _ := second.World().Player(world.Token(7))
	assert.Equal(t, "Oven", pl.Name)
}
