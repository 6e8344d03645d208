// Package netconn is the client side of the multiplayer line protocol:
// a token handshake followed by SPWN / UPDP text frames, over TCP or a
// WebSocket.
package netconn

import (
	"context"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/siderun/internal/core/geom"
	"chosenoffset.com/siderun/internal/logger"
)

var (
	// ErrMalformed marks a frame that could not be decoded. It is
	// recoverable: drop the frame and keep going.
	ErrMalformed = errors.New("netconn: malformed message")
	// ErrUnknownCommand marks a well-formed frame with an unknown tag.
	ErrUnknownCommand = errors.New("netconn: unknown command")
	// ErrClosed is returned once the connection has ended.
	ErrClosed = errors.New("netconn: connection closed")
)

// Options tunes a connection.
type Options struct {
	// WriteTimeout bounds each outgoing frame.
	WriteTimeout time.Duration
	// Buffer is the number of decoded frames held for Poll.
	Buffer int
}

// DefaultOptions returns the defaults.
func DefaultOptions() Options {
	return Options{WriteTimeout: 500 * time.Millisecond, Buffer: 64}
}

// transport moves lines; implementations exist for TCP and WebSocket.
type transport interface {
	// readLine blocks for the next line, without its terminator.
	readLine() (string, error)
	writeLine(line string, deadline time.Time) error
	close() error
}

type frame struct {
	ev  Event
	err error
}

// Conn is an established session.
type Conn struct {
	token uint64
	t     transport
	opts  Options
	log   *logrus.Entry

	frames chan frame
	done   chan struct{}
	// readErr is set before frames is closed.
	readErr error

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to addr and completes the token handshake. Addresses
// starting with ws:// or wss:// use a WebSocket; anything else is a TCP
// host:port. The context bounds the dial and the handshake.
func Dial(ctx context.Context, addr string, opts Options) (*Conn, error) {
	var (
		t     transport
		token uint64
		err   error
	)
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		t, token, err = dialWebSocket(ctx, addr)
	} else {
		t, token, err = dialTCP(ctx, addr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", addr)
	}
	return newConn(t, token, opts), nil
}

func newConn(t transport, token uint64, opts Options) *Conn {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultOptions().Buffer
	}
	c := &Conn{
		token:  token,
		t:      t,
		opts:   opts,
		log:    logger.For("netconn").WithField("token", token),
		frames: make(chan frame, opts.Buffer),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Token is the id the server assigned to this client.
func (c *Conn) Token() uint64 {
	return c.token
}

func (c *Conn) readLoop() {
	defer close(c.frames)

	for {
		line, err := c.t.readLine()
		if err != nil {
			select {
			case <-c.done:
				c.readErr = ErrClosed
			default:
				c.readErr = errors.Wrap(ErrClosed, err.Error())
			}
			return
		}
		if line == "" {
			continue
		}

		ev, err := Parse(line)
		select {
		case c.frames <- frame{ev: ev, err: err}:
		case <-c.done:
			c.readErr = ErrClosed
			return
		}
	}
}

// Poll returns the next decoded event without blocking. ok is false when
// nothing is pending. A non-nil error with ok false is either a dropped
// frame (ErrMalformed / ErrUnknownCommand) or ErrClosed once the session
// has ended and every buffered event has been delivered.
func (c *Conn) Poll() (ev Event, ok bool, err error) {
	select {
	case f, open := <-c.frames:
		if !open {
			return Event{}, false, c.readErr
		}
		if f.err != nil {
			return Event{}, false, f.err
		}
		return f.ev, true, nil
	default:
		return Event{}, false, nil
	}
}

// SendSpawn announces this client's player.
func (c *Conn) SendSpawn(name string, pos geom.Vector2, clr color.RGBA) error {
	line, err := EncodeSpawn(c.token, name, pos, clr)
	if err != nil {
		return err
	}
	return c.send(line)
}

// SendUpdatePosition reports this client's player position.
func (c *Conn) SendUpdatePosition(pos geom.Vector2) error {
	return c.send(EncodeUpdatePosition(c.token, pos))
}

func (c *Conn) send(line string) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var deadline time.Time
	if c.opts.WriteTimeout > 0 {
		deadline = time.Now().Add(c.opts.WriteTimeout)
	}
	if err := c.t.writeLine(line, deadline); err != nil {
		return errors.Wrapf(err, "send %s", line[:4])
	}
	c.log.WithField("frame", strings.TrimSpace(line)).Debug("Sent frame.")
	return nil
}

// Close ends the session. It is safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.t.close()
	})
	return err
}
