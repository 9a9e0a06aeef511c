package rgb

import (
	"fmt"
	"strings"

	"rasterkit/problem"
)

// Parse reads a color given as #RGB, #RRGGBB or an HTML color name.
func Parse(s string) (Color, error) {
	if c, ok := Lookup(s); ok {
		return c, nil
	}

	if !strings.HasPrefix(s, "#") || strings.Trim(s[1:], "0123456789abcdefABCDEF") != "" {
		return Color{}, fmt.Errorf("%w: invalid color %q, should be #RGB, #RRGGBB or an HTML color name", problem.ErrInvalidArgument, s)
	}

	var c Color
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.r, &c.g, &c.b)
		if err != nil {
			return Color{}, fmt.Errorf("%w: could not read color %q: %v", problem.ErrInvalidArgument, s, err)
		} else if n < 3 {
			return Color{}, fmt.Errorf("%w: insufficient color fields in %q: %d", problem.ErrInvalidArgument, s, n)
		}

		c.r |= c.r << 4
		c.g |= c.g << 4
		c.b |= c.b << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.r, &c.g, &c.b)
		if err != nil {
			return Color{}, fmt.Errorf("%w: could not read color %q: %v", problem.ErrInvalidArgument, s, err)
		} else if n < 3 {
			return Color{}, fmt.Errorf("%w: insufficient color fields in %q: %d", problem.ErrInvalidArgument, s, n)
		}
	default:
		return Color{}, fmt.Errorf("%w: invalid color %q, should be #RGB, #RRGGBB or an HTML color name", problem.ErrInvalidArgument, s)
	}

	return c, nil
}
