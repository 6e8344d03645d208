package netconn

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"chosenoffset.com/siderun/internal/core/geom"
)

// Command tags
const (
	CmdSpawn          = "SPWN"
	CmdUpdatePosition = "UPDP"
)

const lineEnd = "\r\n"

// Kind distinguishes server events.
type Kind int

const (
	KindSpawn Kind = iota
	KindUpdatePosition
)

func (k Kind) String() string {
	switch k {
	case KindSpawn:
		return CmdSpawn
	case KindUpdatePosition:
		return CmdUpdatePosition
	default:
		return "unknown"
	}
}

// Event is one decoded message. Name and Color are only set for spawns.
type Event struct {
	Kind     Kind
	Token    uint64
	Name     string
	Position geom.Vector2
	Color    color.RGBA
}

// PackColor packs a color as big-endian RGBA.
func PackColor(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// UnpackColor reverses PackColor.
func UnpackColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPosition(p geom.Vector2) string {
	return formatCoord(p.X) + "," + formatCoord(p.Y)
}

// EncodeSpawn renders a spawn announcement.
func EncodeSpawn(token uint64, name string, pos geom.Vector2, clr color.RGBA) (string, error) {
	if name == "" || strings.ContainsAny(name, "|\r\n") {
		return "", errors.Errorf("netconn: invalid player name %q", name)
	}
	return fmt.Sprintf("%s %d|%s|%s|%d%s", CmdSpawn, token, name, formatPosition(pos), PackColor(clr), lineEnd), nil
}

// EncodeUpdatePosition renders a position update.
func EncodeUpdatePosition(token uint64, pos geom.Vector2) string {
	return fmt.Sprintf("%s %d|%s%s", CmdUpdatePosition, token, formatPosition(pos), lineEnd)
}

// Parse decodes one line with or without its terminator. Failures wrap
// ErrMalformed or ErrUnknownCommand.
func Parse(line string) (Event, error) {
	line = strings.TrimRight(line, lineEnd)
	if len(line) < 5 || line[4] != ' ' {
		return Event{}, errors.Wrapf(ErrMalformed, "short or untagged line %q", line)
	}

	cmd, body := line[:4], strings.TrimSpace(line[5:])
	parts := strings.Split(body, "|")

	switch cmd {
	case CmdSpawn:
		return parseSpawn(parts)
	case CmdUpdatePosition:
		return parseUpdatePosition(parts)
	default:
		return Event{}, errors.Wrapf(ErrUnknownCommand, "%q", cmd)
	}
}

func parseSpawn(parts []string) (Event, error) {
	if len(parts) != 4 {
		return Event{}, errors.Wrapf(ErrMalformed, "spawn has %d fields, want 4", len(parts))
	}
	token, err := parseToken(parts[0])
	if err != nil {
		return Event{}, err
	}
	if parts[1] == "" {
		return Event{}, errors.Wrap(ErrMalformed, "spawn without name")
	}
	pos, err := parsePosition(parts[2])
	if err != nil {
		return Event{}, err
	}
	packed, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return Event{}, errors.Wrapf(ErrMalformed, "color %q", parts[3])
	}
	return Event{
		Kind:     KindSpawn,
		Token:    token,
		Name:     parts[1],
		Position: pos,
		Color:    UnpackColor(uint32(packed)),
	}, nil
}

func parseUpdatePosition(parts []string) (Event, error) {
	if len(parts) != 2 {
		return Event{}, errors.Wrapf(ErrMalformed, "position update has %d fields, want 2", len(parts))
	}
	token, err := parseToken(parts[0])
	if err != nil {
		return Event{}, err
	}
	pos, err := parsePosition(parts[1])
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: KindUpdatePosition, Token: token, Position: pos}, nil
}

func parseToken(s string) (uint64, error) {
	token, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "token %q", s)
	}
	return token, nil
}

// parsePosition accepts "x,y" and the older "XxY" form.
func parsePosition(s string) (geom.Vector2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		xs, ys, ok = strings.Cut(s, "x")
	}
	if !ok {
		return geom.Vector2{}, errors.Wrapf(ErrMalformed, "position %q", s)
	}
	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil || !finite(x) || !finite(y) {
		return geom.Vector2{}, errors.Wrapf(ErrMalformed, "position %q", s)
	}
	return geom.Vec(x, y), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
