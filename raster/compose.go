package raster

import (
	"image"

	"rasterkit/problem"
)

// PasteFrom copies other into the image with its top-left corner at (x, y),
// overwriting the destination pixels, alpha included. Only the anchor must
// lie inside the image; whatever extends past the right or bottom edge is
// clipped.
func (im *Image) PasteFrom(other *Image, x, y int) error {
	if err := problem.CheckNotNil("image to be pasted", other == nil); err != nil {
		return err
	}
	if err := im.checkPosition(x, y); err != nil {
		return err
	}
	if other == im {
		other = im.Clone()
	}

	// Rows are copied directly: draw.Draw into an NRGBA destination goes
	// through premultiplied color and would alter translucent pixels.
	r := image.Rect(x, y, x+other.Width(), y+other.Height()).Intersect(im.pix.Rect)
	n := 4 * r.Dx()
	for row := range r.Dy() {
		di := im.pix.PixOffset(r.Min.X, r.Min.Y+row)
		si := other.pix.PixOffset(0, row)
		copy(im.pix.Pix[di:di+n], other.pix.Pix[si:si+n])
	}
	return nil
}
