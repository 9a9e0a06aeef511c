// Package rgb provides an immutable 8-bit RGB color value.
package rgb

import (
	"fmt"
	"image/color"

	"rasterkit/problem"
)

// Color is an opaque color with three channels in [0, 255].
// The zero value is black.
type Color struct {
	r, g, b uint8
}

var (
	_ color.Color = Color{}
	_ fmt.Stringer = Color{}
)

// New returns the color with the given channels, each in [0, 255].
func New(r, g, b int) (Color, error) {
	if err := problem.CheckRange("red component", r, 0, 256); err != nil {
		return Color{}, err
	}
	if err := problem.CheckRange("green component", g, 0, 256); err != nil {
		return Color{}, err
	}
	if err := problem.CheckRange("blue component", b, 0, 256); err != nil {
		return Color{}, err
	}
	return Color{uint8(r), uint8(g), uint8(b)}, nil
}

// FromMerged unpacks a color from the low 24 bits of v (0xRRGGBB).
func FromMerged(v uint32) Color {
	return Color{
		r: uint8(v >> 16),
		g: uint8(v >> 8),
		b: uint8(v),
	}
}

func (c Color) R() int { return int(c.r) }
func (c Color) G() int { return int(c.g) }
func (c Color) B() int { return int(c.b) }

// Merged packs the channels as 0xRRGGBB.
func (c Color) Merged() uint32 {
	return uint32(c.r)<<16 | uint32(c.g)<<8 | uint32(c.b)
}

// Hex returns the color in HTML notation, e.g. "#00ff7f".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c Color) String() string {
	return c.Hex()
}

// RGBA implements color.Color. The color is always fully opaque.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c.r)
	g := uint32(c.g)
	b := uint32(c.b)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// NRGBA returns the color with the given alpha attached.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.r, G: c.g, B: c.b, A: alpha}
}

// Invert returns the complementary color.
func (c Color) Invert() Color {
	return Color{255 - c.r, 255 - c.g, 255 - c.b}
}

// Blend returns the weighted average (a*wa + b*wb) / (wa + wb) per channel.
func Blend(a Color, wa int, b Color, wb int) (Color, error) {
	if wa < 0 || wb < 0 || wa+wb == 0 {
		return Color{}, fmt.Errorf("%w: blend weights %d and %d", problem.ErrInvalidArgument, wa, wb)
	}
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*wa + int(y)*wb) / (wa + wb))
	}
	return Color{mix(a.r, b.r), mix(a.g, b.g), mix(a.b, b.b)}, nil
}

// Model converts any color to Color, dropping alpha after un-premultiplying.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// FromNRGBA takes the color channels of c and ignores its alpha.
func FromNRGBA(c color.NRGBA) Color {
	return Color{c.R, c.G, c.B}
}
