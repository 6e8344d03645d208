package netconn

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// TokenSize is the length of the big-endian token sent on connect.
const TokenSize = 8

// tcpTransport frames lines over a raw stream.
type tcpTransport struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialTCP(ctx context.Context, addr string) (transport, uint64, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, 0, errors.Wrap(err, "dial tcp")
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	t := &tcpTransport{conn: conn, reader: bufio.NewReader(conn)}
	var buf [TokenSize]byte
	if _, err := io.ReadFull(t.reader, buf[:]); err != nil {
		conn.Close()
		return nil, 0, errors.Wrap(err, "read token")
	}
	_ = conn.SetReadDeadline(time.Time{})

	return t, binary.BigEndian.Uint64(buf[:]), nil
}

func (t *tcpTransport) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, lineEnd), nil
}

func (t *tcpTransport) writeLine(line string, deadline time.Time) error {
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	_, err := io.WriteString(t.conn, line)
	return err
}

func (t *tcpTransport) close() error {
	return t.conn.Close()
}

// wsTransport carries the same lines in WebSocket text messages. The
// token arrives as the first, binary, message. A text message may hold
// several lines.
type wsTransport struct {
	conn    *websocket.Conn
	pending []string
}

func dialWebSocket(ctx context.Context, addr string) (transport, uint64, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "dial websocket")
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, 0, errors.Wrap(err, "read token")
	}
	if kind != websocket.BinaryMessage || len(msg) != TokenSize {
		conn.Close()
		return nil, 0, errors.Wrapf(ErrMalformed, "token message of %d bytes", len(msg))
	}
	_ = conn.SetReadDeadline(time.Time{})

	return &wsTransport{conn: conn}, binary.BigEndian.Uint64(msg), nil
}

func (t *wsTransport) readLine() (string, error) {
	for len(t.pending) == 0 {
		kind, msg, err := t.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		for _, line := range strings.Split(string(msg), "\n") {
			if line = strings.TrimRight(line, lineEnd); line != "" {
				t.pending = append(t.pending, line)
			}
		}
	}
	line := t.pending[0]
	t.pending = t.pending[1:]
	return line, nil
}

func (t *wsTransport) writeLine(line string, deadline time.Time) error {
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (t *wsTransport) close() error {
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return t.conn.Close()
}
