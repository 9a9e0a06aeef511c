// based on:
// https://bottosson.github.io/posts/oklab/

package palette

import (
	"image/color"
	"math"

	"rasterkit/rgb"
)

// lab is a color in the OKLab space.
type lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

func toLab(c rgb.Color) lab {
	r := toLinear(float64(c.R()) / 255)
	g := toLinear(float64(c.G()) / 255)
	b := toLinear(float64(c.B()) / 255)

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

// Lab matches colors to the perceptually closest entry of a palette.
type Lab struct {
	colors []rgb.Color
	labs   []lab
}

// NewLab prepares pal for perceptual matching. Alpha is ignored.
func NewLab(pal color.Palette) *Lab {
	p := &Lab{
		colors: make([]rgb.Color, len(pal)),
		labs:   make([]lab, len(pal)),
	}
	for i, c := range pal {
		p.colors[i] = rgb.Model.Convert(c).(rgb.Color)
		p.labs[i] = toLab(p.colors[i])
	}
	return p
}

func (p *Lab) Len() int { return len(p.colors) }

// Index returns the index of the closest palette entry, or -1 for an empty
// palette.
func (p *Lab) Index(c rgb.Color) int {
	lc := toLab(c)
	ret, bestSum := -1, math.MaxFloat64
	for i, v := range p.labs {
		dL := lc.L - v.L
		da := lc.A - v.A
		db := lc.B - v.B
		sum := dL*dL + da*da + db*db
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the closest palette entry, or c itself for an empty
// palette.
func (p *Lab) Nearest(c rgb.Color) rgb.Color {
	if i := p.Index(c); i >= 0 {
		return p.colors[i]
	}
	return c
}
