package raster

import (
	"image"
	"math"

	"rasterkit/rgb"

	"golang.org/x/image/draw"
)

// Rescale resamples the image to exactly width x height.
func (im *Image) Rescale(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	dest := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dest, dest.Rect, im.pix, im.pix.Rect, draw.Src, nil)
	im.pix = dest
	return nil
}

// Fit resizes the image into a width x height box keeping its aspect ratio.
// A zero width or height keeps the current one.
//
// With crop, the source is trimmed to the box aspect ratio and the result is
// exactly width x height. Without crop and with a nil fill, the result shrinks
// along one axis to keep the ratio. With a fill color, the result is exactly
// width x height and the uncovered bands are painted with fill.
func (im *Image) Fit(width, height int, crop bool, fill *rgb.Color) error {
	srcBounds := im.pix.Rect
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	if width == 0 {
		width = srcBounds.Dx()
	}
	if height == 0 {
		height = srcBounds.Dy()
	}
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	if width == srcBounds.Dx() && height == srcBounds.Dy() {
		return nil
	}

	destWidth := float64(width)
	destHeight := float64(height)
	destSize := image.Rect(0, 0, width, height)
	destBounds := destSize

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	if crop {
		if srcAR < destAR {
			dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
			srcBounds.Min.Y += dh
			srcBounds.Max.Y -= dh
		} else if srcAR > destAR {
			dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
			srcBounds.Min.X += dw
			srcBounds.Max.X -= dw
		}
	} else {
		if srcAR < destAR {
			dw := destHeight * srcAR
			if fill == nil {
				destSize.Max.X = max(1, int(math.Round(dw)))
				destBounds.Max.X = destSize.Max.X
			} else {
				idw := int(math.Round((destWidth - dw) / 2))
				destBounds.Min.X += idw
				destBounds.Max.X -= idw
			}
		} else if srcAR > destAR {
			dh := destWidth / srcAR
			if fill == nil {
				destSize.Max.Y = max(1, int(math.Round(dh)))
				destBounds.Max.Y = destSize.Max.Y
			} else {
				idh := int(math.Round((destHeight - dh) / 2))
				destBounds.Min.Y += idh
				destBounds.Max.Y -= idh
			}
		}
	}

	dest := image.NewNRGBA(destSize)
	if fill != nil {
		draw.Draw(dest, destSize, image.NewUniform(fill.NRGBA(0xff)), image.Point{}, draw.Src)
	}
	if !destBounds.Empty() && !srcBounds.Empty() {
		draw.CatmullRom.Scale(dest, destBounds, im.pix, srcBounds, draw.Src, nil)
	}
	im.pix = dest
	return nil
}
