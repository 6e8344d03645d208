package netconn

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/siderun/internal/core/geom"
)

func TestEncodeSpawn(t *testing.T) {
	line, err := EncodeSpawn(7, "Fridge", geom.Vec(400, 300.5), color.RGBA{0x11, 0x22, 0x33, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "SPWN 7|Fridge|400,300.5|287454207\r\n", line)

	ev, err := Parse(line)
	require.NoError(t, err)
	assert.Equal(t, Event{
		Kind:     KindSpawn,
		Token:    7,
		Name:     "Fridge",
		Position: geom.Vec(400, 300.5),
		Color:    color.RGBA{0x11, 0x22, 0x33, 0xff},
	}, ev)
}

func TestEncodeSpawnRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "a|b", "line\r\nbreak"} {
		_, err := EncodeSpawn(1, name, geom.Vec(0, 0), color.RGBA{})
		assert.Error(t, err, "%q", name)
	}
}

func TestEncodeUpdatePosition(t *testing.T) {
	line := EncodeUpdatePosition(3, geom.Vec(-1.25, 8))
	assert.Equal(t, "UPDP 3|-1.25,8\r\n", line)

	ev, err := Parse(line)
	require.NoError(t, err)
	assert.Equal(t, KindUpdatePosition, ev.Kind)
	assert.Equal(t, uint64(3), ev.Token)
	assert.Equal(t, geom.Vec(-1.25, 8), ev.Position)
}

func TestParseAcceptsLegacySeparator(t *testing.T) {
	ev, err := Parse("UPDP 12|10.5x20\r\n")
	require.NoError(t, err)
	assert.Equal(t, geom.Vec(10.5, 20), ev.Position)

	ev, err = Parse("SPWN 4|Oven|1x2|4278190335")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, ev.Color)
	assert.Equal(t, geom.Vec(1, 2), ev.Position)
}

func TestParseMalformed(t *testing.T) {
	for _, line := range []string{
		"",
		"UPDP",
		"UPDP5|1,2",
		"UPDP x|1,2",
		"UPDP 1|12",
		"UPDP 1|a,b",
		"UPDP 1|NaN,2",
		"UPDP 1|1,2|3",
		"SPWN 1|name|1,2",
		"SPWN 1||1,2|0",
		"SPWN 1|name|1,2|-5",
		"SPWN 1|name|1,2|99999999999",
	} {
		_, err := Parse(line)
		assert.True(t, errors.Is(err, ErrMalformed), "%q: %v", line, err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("PING 1|2")
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.False(t, errors.Is(err, ErrMalformed))
}

func TestColorPacking(t *testing.T) {
	c := color.RGBA{1, 2, 3, 4}
	assert.Equal(t, uint32(0x01020304), PackColor(c))
	assert.Equal(t, c, UnpackColor(PackColor(c)))
}
