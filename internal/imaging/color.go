package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses an opaque colour written as "#RRGGBB" or "#RGB".
// The leading '#' is optional and letter case is ignored.
func ParseHexColor(hex string) (color.NRGBA, error) {
	s := strings.TrimSpace(hex)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}

	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// NormalizeHexColor returns hex in canonical "#rrggbb" form.
func NormalizeHexColor(hex string) (string, error) {
	c, err := ParseHexColor(hex)
	if err != nil {
		return "", err
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex(), nil
}
