package effect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a string is not a #rrggbb or #rgb hex triple
var ErrInvalidColor = errors.New("invalid hex color")

// RGB is a 24-bit liquid color
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb" or "#rgb", case-insensitive, leading '#' optional
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(h) {
	case 3:
		// Expand shorthand: "f0a" -> "ff00aa"
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// MustParseHex is ParseHex for compile-time constants; panics on malformed input
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as lower-case "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer
func (c RGB) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler, used by both JSON and YAML encoders
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AverageRGB averages each channel independently with integer floor
// Returns false when colors is empty
func AverageRGB(colors []RGB) (RGB, bool) {
	if len(colors) == 0 {
		return RGB{}, false
	}

	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(colors)

	return RGB{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
	}, true
}
