// Package flags binds waveform settings to command-line flags.
package flags

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/pflag"
)

// Transparent is the colour name accepted for an unfilled background.
const Transparent = "transparent"

// Color is a color.NRGBA that implements pflag.Value.
// It accepts #rgb, #rgba, #rrggbb, #rrggbbaa and "transparent".
type Color color.NRGBA

var _ pflag.Value = (*Color)(nil)

// ParseColor parses a hexadecimal colour string or "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	if strings.EqualFold(s, Transparent) {
		return color.NRGBA{}, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("invalid color: %q", s)
	}

	var c color.NRGBA
	var err error

	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R, c.G, c.B, c.A = c.R*17, c.G*17, c.B*17, 0xff
	case 4:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R, c.G, c.B, c.A = c.R*17, c.G*17, c.B*17, c.A*17
	case 6:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xff
	case 8:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hexadecimal color %q", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hexadecimal color %q: %w", s, err)
	}

	return c, nil
}

// FormatColor is the inverse of ParseColor. Opaque colours use the short
// #rrggbb form and a zero alpha is written as "transparent".
func FormatColor(c color.NRGBA) string {
	switch c.A {
	case 0:
		return Transparent
	case 0xff:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
}

// Set implements pflag.Value.
func (c *Color) Set(s string) error {
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

// String implements pflag.Value.
func (c *Color) String() string {
	return FormatColor(color.NRGBA(*c))
}

// Type implements pflag.Value.
func (c *Color) Type() string {
	return "color"
}
