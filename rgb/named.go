package rgb

import (
	"image/color"
	"strings"
)

// The 16 basic HTML colors.
var (
	Aqua    = Color{0x00, 0xff, 0xff}
	Black   = Color{0x00, 0x00, 0x00}
	Blue    = Color{0x00, 0x00, 0xff}
	Fuchsia = Color{0xff, 0x00, 0xff}
	Gray    = Color{0x80, 0x80, 0x80}
	Green   = Color{0x00, 0x80, 0x00}
	Lime    = Color{0x00, 0xff, 0x00}
	Maroon  = Color{0x80, 0x00, 0x00}
	Navy    = Color{0x00, 0x00, 0x80}
	Olive   = Color{0x80, 0x80, 0x00}
	Purple  = Color{0x80, 0x00, 0x80}
	Red     = Color{0xff, 0x00, 0x00}
	Silver  = Color{0xc0, 0xc0, 0xc0}
	Teal    = Color{0x00, 0x80, 0x80}
	White   = Color{0xff, 0xff, 0xff}
	Yellow  = Color{0xff, 0xff, 0x00}
)

var names = map[string]Color{
	"aqua":    Aqua,
	"black":   Black,
	"blue":    Blue,
	"fuchsia": Fuchsia,
	"gray":    Gray,
	"green":   Green,
	"lime":    Lime,
	"maroon":  Maroon,
	"navy":    Navy,
	"olive":   Olive,
	"purple":  Purple,
	"red":     Red,
	"silver":  Silver,
	"teal":    Teal,
	"white":   White,
	"yellow":  Yellow,
}

// Lookup finds an HTML color by its case-insensitive name.
func Lookup(name string) (Color, bool) {
	c, ok := names[strings.ToLower(name)]
	return c, ok
}

// HTMLPalette returns the 16 HTML colors, black first and white last.
func HTMLPalette() color.Palette {
	return color.Palette{
		Black, Maroon, Green, Olive, Navy, Purple, Teal, Silver,
		Gray, Red, Lime, Yellow, Blue, Fuchsia, Aqua, White,
	}
}
