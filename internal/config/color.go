package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG color name ("tomato") or hex in the form
// #rrggbb or #rrggbbaa (straight alpha).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
	}

	raw, err := hex.DecodeString(s[1:])
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	switch len(raw) {
	case 3:
		return color.RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
	case 4:
		// Hex alpha is straight; color.RGBA is premultiplied.
		nc := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}
		return color.RGBAModel.Convert(nc).(color.RGBA), nil
	default:
		return color.RGBA{}, fmt.Errorf("hex color %q must have 6 or 8 digits", s)
	}
}

// MustColor parses a color already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
