package game

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/netconn"
	"chosenoffset.com/siderun/internal/world"
)

func TestOfflineSession(t *testing.T) {
	s := NewSession(nil)
	assert.False(t, s.Online())
	assert.Equal(t, world.LocalToken, s.Token())
	assert.Zero(t, s.Drain())

	_, ok := s.Poll()
	assert.False(t, ok)
	assert.ErrorIs(t, s.SendSpawn("Fridge", geom.Vec(0, 0), color.RGBA{}), netconn.ErrClosed)
	assert.ErrorIs(t, s.SendUpdatePosition(geom.Vec(0, 0)), netconn.ErrClosed)
}

func TestSessionRecordsRemotes(t *testing.T) {
	blue := color.RGBA{0, 0, 255, 255}
	conn := &fakeConn{token: 4, queue: []polled{
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 8, Name: "Sink", Position: geom.Vec(1, 2), Color: blue}, ok: true},
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 6, Name: "Oven", Position: geom.Vec(3, 4), Color: blue}, ok: true},
		{err: errors.Wrap(netconn.ErrMalformed, "garbage")},
		{ev: netconn.Event{Kind: netconn.KindUpdatePosition, Token: 8, Position: geom.Vec(9, 9)}, ok: true},
		{ev: netconn.Event{Kind: netconn.KindUpdatePosition, Token: 77, Position: geom.Vec(5, 5)}, ok: true},
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 8, Name: "Dup", Position: geom.Vec(0, 0), Color: blue}, ok: true},
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 4, Name: "Me", Position: geom.Vec(0, 0), Color: blue}, ok: true},
	}}
	s := NewSession(conn)
	require.True(t, s.Online())
	assert.Equal(t, world.Token(4), s.Token())

	assert.Equal(t, 6, s.Drain(), "malformed frames are skipped, not counted")
	assert.Empty(t, conn.queue)
	assert.Equal(t, []Remote{
		{Token: 6, Name: "Oven", Color: blue, Position: geom.Vec(3, 4)},
		{Token: 8, Name: "Sink", Color: blue, Position: geom.Vec(9, 9)},
	}, s.Remotes())
}

func TestSessionPollReturnsOneEvent(t *testing.T) {
	conn := &fakeConn{token: 1, queue: []polled{
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 2, Name: "A"}, ok: true},
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 3, Name: "B"}, ok: true},
	}}
	s := NewSession(conn)

	ev, ok := s.Poll()
	require.True(t, ok)
	assert.Equal(t, uint64(2), ev.Token)
	assert.Len(t, conn.queue, 1)
	assert.Len(t, s.Remotes(), 1)
}

func TestSessionGoesOfflineOnClose(t *testing.T) {
	conn := &fakeConn{token: 5, queue: []polled{
		{ev: netconn.Event{Kind: netconn.KindSpawn, Token: 2, Name: "A"}, ok: true},
		{err: errors.Wrap(netconn.ErrClosed, "EOF")},
	}}
	s := NewSession(conn)

	assert.Equal(t, 1, s.Drain())
	assert.False(t, s.Online())
	assert.Equal(t, world.Token(5), s.Token(), "token survives the connection")
	assert.Len(t, s.Remotes(), 1, "known players are kept")

	s.Drain()
	assert.Equal(t, 2, conn.polls, "no polling after close")
	assert.ErrorIs(t, s.SendUpdatePosition(geom.Vec(1, 1)), netconn.ErrClosed)
	assert.Empty(t, conn.updates)
}
