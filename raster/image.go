// Package raster implements an in-memory RGB image with bounds-checked pixel
// access, resampling, composition and format-aware persistence.
//
// An Image exclusively owns its pixel grid: no two Images share storage, and
// operations that reallocate the grid (Rescale, Fit) replace it wholesale.
// Images are not safe for concurrent mutation.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"rasterkit/problem"
	"rasterkit/rgb"

	"golang.org/x/image/draw"
)

// MaxDimension is the largest accepted width or height, inclusive.
const MaxDimension = 32767

// Image is a width x height grid of colors with a pass-through alpha channel.
type Image struct {
	pix *image.NRGBA
}

var _ image.Image = (*Image)(nil)

// New allocates an opaque image filled with bg.
func New(width, height int, bg rgb.Color) (*Image, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	pix := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(pix, pix.Rect, image.NewUniform(bg.NRGBA(0xff)), image.Point{}, draw.Src)
	return &Image{pix: pix}, nil
}

func (im *Image) Width() int  { return im.pix.Rect.Dx() }
func (im *Image) Height() int { return im.pix.Rect.Dy() }

// Pixel returns the color at (x, y), without its alpha.
func (im *Image) Pixel(x, y int) (rgb.Color, error) {
	if err := im.checkPosition(x, y); err != nil {
		return rgb.Color{}, err
	}
	return rgb.FromNRGBA(im.pix.NRGBAAt(x, y)), nil
}

// SetPixel replaces the color at (x, y). The pixel keeps its alpha.
func (im *Image) SetPixel(x, y int, c rgb.Color) error {
	if err := im.checkPosition(x, y); err != nil {
		return err
	}
	i := im.pix.PixOffset(x, y)
	im.pix.Pix[i+0] = uint8(c.R())
	im.pix.Pix[i+1] = uint8(c.G())
	im.pix.Pix[i+2] = uint8(c.B())
	return nil
}

// Remap replaces every pixel color with fn(color), keeping alpha.
func (im *Image) Remap(fn func(rgb.Color) rgb.Color) error {
	if err := problem.CheckNotNil("remap function", fn == nil); err != nil {
		return err
	}

	p := im.pix.Pix
	for i := 0; i < len(p); i += 4 {
		c := fn(rgb.FromNRGBA(color.NRGBA{R: p[i], G: p[i+1], B: p[i+2]}))
		p[i+0] = uint8(c.R())
		p[i+1] = uint8(c.G())
		p[i+2] = uint8(c.B())
	}
	return nil
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	pix := *im.pix
	pix.Pix = append([]uint8(nil), im.pix.Pix...)
	return &Image{pix: &pix}
}

// AppendRGB appends the pixels row by row as packed 8-bit R, G, B triples.
func (im *Image) AppendRGB(dst []byte) []byte {
	p := im.pix.Pix
	for i := 0; i < len(p); i += 4 {
		dst = append(dst, p[i], p[i+1], p[i+2])
	}
	return dst
}

// ColorModel, Bounds and At give read-only access for image/draw and the
// stdlib encoders.

func (im *Image) ColorModel() color.Model { return color.NRGBAModel }
func (im *Image) Bounds() image.Rectangle { return im.pix.Rect }
func (im *Image) At(x, y int) color.Color { return im.pix.At(x, y) }

func (im *Image) checkPosition(x, y int) error {
	if err := problem.CheckRange("x coordinate", x, 0, im.Width()); err != nil {
		return err
	}
	return problem.CheckRange("y coordinate", y, 0, im.Height())
}

func checkDimensions(width, height int) error {
	if err := problem.CheckRange("image width", width, 1, MaxDimension+1); err != nil {
		return err
	}
	return problem.CheckRange("image height", height, 1, MaxDimension+1)
}

func (im *Image) String() string {
	return fmt.Sprintf("%dx%d image", im.Width(), im.Height())
}
