package game

import (
	"image/color"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/netconn"
	"chosenoffset.com/siderun/internal/world"
)

// maxDrain bounds one Drain call so a flooding server cannot stall a frame.
const maxDrain = 1024

// Remote is what the session remembers about another client's player.
type Remote struct {
	Token    world.Token
	Name     string
	Color    color.RGBA
	Position geom.Vector2
}

// Session outlives the scenes. It owns the connection and keeps every
// remote player it has heard of, so a new play scene starts with the
// players spawned before it existed.
type Session struct {
	conn    Connection
	token   world.Token
	remotes map[world.Token]Remote
	log     *logrus.Entry
}

// NewSession wraps conn. A nil conn gives an offline session.
func NewSession(conn Connection) *Session {
	s := &Session{
		conn:    conn,
		token:   world.LocalToken,
		remotes: make(map[world.Token]Remote),
		log:     logger.For("session"),
	}
	if conn != nil {
		s.token = world.Token(conn.Token())
	}
	return s
}

// Online reports whether the connection is still usable.
func (s *Session) Online() bool {
	return s.conn != nil
}

// Token is the id the server gave this client, or LocalToken offline.
func (s *Session) Token() world.Token {
	return s.token
}

// Poll reads at most one event and records it before returning it.
func (s *Session) Poll() (netconn.Event, bool) {
	ev, ok, _ := s.next()
	return ev, ok
}

// Drain records every pending event and returns how many were read.
// Scenes that do not apply events call it each frame to keep the
// connection's buffer from filling.
func (s *Session) Drain() int {
	n := 0
	for i := 0; i < maxDrain; i++ {
		_, ok, more := s.next()
		if ok {
			n++
		}
		if !more {
			break
		}
	}
	return n
}

// next polls once. more is false when nothing else is pending.
func (s *Session) next() (ev netconn.Event, ok, more bool) {
	if s.conn == nil {
		return ev, false, false
	}

	ev, ok, err := s.conn.Poll()
	switch {
	case errors.Is(err, netconn.ErrClosed):
		s.log.WithError(err).Warn("Connection lost, continuing offline.")
		s.conn = nil
		return ev, false, false
	case err != nil:
		s.log.WithError(err).Warn("Dropped network frame.")
		return ev, false, true
	case !ok:
		return ev, false, false
	}

	s.record(ev)
	return ev, true, true
}

func (s *Session) record(ev netconn.Event) {
	token := world.Token(ev.Token)
	if token == s.token {
		return
	}

	switch ev.Kind {
	case netconn.KindSpawn:
		if _, known := s.remotes[token]; known {
			return
		}
		s.remotes[token] = Remote{Token: token, Name: ev.Name, Color: ev.Color, Position: ev.Position}
	case netconn.KindUpdatePosition:
		r, known := s.remotes[token]
		if !known {
			return
		}
		r.Position = ev.Position
		s.remotes[token] = r
	}
}

// Remotes returns the known remote players in token order.
func (s *Session) Remotes() []Remote {
	out := make([]Remote, 0, len(s.remotes))
	for _, r := range s.remotes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// SendSpawn announces the local player. It fails with netconn.ErrClosed
// when offline.
func (s *Session) SendSpawn(name string, pos geom.Vector2, clr color.RGBA) error {
	if s.conn == nil {
		return netconn.ErrClosed
	}
	return s.conn.SendSpawn(name, pos, clr)
}

// SendUpdatePosition reports the local player's position. It fails with
// netconn.ErrClosed when offline.
func (s *Session) SendUpdatePosition(pos geom.Vector2) error {
	if s.conn == nil {
		return netconn.ErrClosed
	}
	return s.conn.SendUpdatePosition(pos)
}
