package game

import (
	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/netconn"
	"chosenoffset.com/siderun/internal/world"
)

// pollNetwork applies at most one pending server event. The session drops
// bad frames and goes offline when the connection ends.
func (p *Play) pollNetwork() {
	if ev, ok := p.session.Poll(); ok {
		p.ApplyEvent(ev)
	}
}

// seedRemotes spawns the remote players the session learned about before
// this scene existed.
func (p *Play) seedRemotes() {
	for _, r := range p.session.Remotes() {
		if r.Token == p.local {
			continue
		}
		if idx, ok := p.world.Spawn(r.Token, r.Name, r.Position, r.Color, p.cfg.Player.Size); ok {
			p.log.WithFields(logrus.Fields{
				"remote": r.Token,
				"index":  idx,
			}).Debug("Restored remote player.")
		}
	}
}

// ApplyEvent applies one server event to the world.
func (p *Play) ApplyEvent(ev netconn.Event) {
	token := world.Token(ev.Token)

	switch ev.Kind {
	case netconn.KindSpawn:
		idx, ok := p.world.Spawn(token, ev.Name, ev.Position, ev.Color, p.cfg.Player.Size)
		if !ok {
			p.log.WithField("remote", token).Debug("Ignored spawn for known token.")
			return
		}
		p.log.WithFields(logrus.Fields{
			"remote": token,
			"name":   ev.Name,
			"index":  idx,
		}).Info("Remote player spawned.")

	case netconn.KindUpdatePosition:
		// The server may echo our own updates; local state is authoritative.
		if token == p.local {
			return
		}
		obj, ok := p.world.PlayerObject(token)
		if !ok {
			return
		}
		obj.Position = ev.Position
	}
}
