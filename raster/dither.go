package raster

import (
	"fmt"
	"image"
	"image/color"

	"rasterkit/problem"

	"golang.org/x/image/draw"
)

// Quantize maps every pixel to a color of pal, optionally spreading the
// error with Floyd-Steinberg dithering. Alpha is kept.
func (im *Image) Quantize(pal color.Palette, dither bool) error {
	if len(pal) == 0 {
		return fmt.Errorf("%w: empty palette", problem.ErrInvalidArgument)
	}

	r := im.pix.Rect
	dest := image.NewPaletted(r, pal)
	if dither {
		draw.FloydSteinberg.Draw(dest, r, im.opaque(), r.Min)
	} else {
		draw.Draw(dest, r, im.opaque(), r.Min, draw.Src)
	}

	rgba := make([]color.NRGBA, len(pal))
	for i, c := range pal {
		rgba[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}

	p := im.pix.Pix
	for i, idx := range dest.Pix {
		c := rgba[idx]
		p[4*i+0] = c.R
		p[4*i+1] = c.G
		p[4*i+2] = c.B
	}
	return nil
}
