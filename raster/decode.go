package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"rasterkit/problem"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP). The declared size is checked before any pixel is decoded.
func Decode(r io.Reader) (*Image, error) {
	var head bytes.Buffer
	conf, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read image header: %w", problem.ErrDecode, err)
	}
	if err := checkDimensions(conf.Width, conf.Height); err != nil {
		return nil, fmt.Errorf("%w: unusable %s image: %w", problem.ErrDecode, format, err)
	}

	src, format, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image: %w", problem.ErrDecode, err)
	}

	b := src.Bounds()
	if err := checkDimensions(b.Dx(), b.Dy()); err != nil {
		return nil, fmt.Errorf("%w: unusable %s image: %w", problem.ErrDecode, format, err)
	}

	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		// Straight copy keeps the color of translucent pixels intact.
		for y := range b.Dy() {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix.Pix[y*pix.Stride:(y+1)*pix.Stride], n.Pix[i:i+4*b.Dx()])
		}
	} else {
		draw.Draw(pix, pix.Rect, src, b.Min, draw.Src)
	}
	return &Image{pix: pix}, nil
}

// Load decodes the image stored at path.
func Load(path string) (*Image, error) {
	slog.Debug("loading image", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open image %q: %w", problem.ErrDecode, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	im, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", path, err)
	}
	return im, nil
}
