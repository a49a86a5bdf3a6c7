package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque-by-default RGBA color. It accepts either "#rrggbb" or
// "R,G,B[,A]" with 0-255 components.
type Color struct {
	colorful.Color
	A uint8
}

func RGB(r, g, b uint8) Color {
	return Color{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, A: 255}
}

var (
	White = RGB(255, 255, 255)
	Black = RGB(0, 0, 0)
	Gray  = RGB(128, 128, 128)
)

func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return Color{Color: c, A: 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: want R,G,B[,A] or #rrggbb", s)
	}
	var v [4]uint8
	v[3] = 255
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		v[i] = uint8(n)
	}
	c := RGB(v[0], v[1], v[2])
	c.A = v[3]
	return c, nil
}

func (c Color) SDL() sdl.Color {
	r, g, b := c.RGB255()
	return sdl.Color{R: r, G: g, B: b, A: c.A}
}

func (c Color) String() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d,%d,%d,%d", r, g, b, c.A)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
