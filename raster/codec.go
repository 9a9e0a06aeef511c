package raster

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"rasterkit/problem"
	"rasterkit/sys"

	"golang.org/x/image/draw"
)

// Format is an encodable image file format.
type Format int

const (
	PNG Format = iota + 1
	JPEG
	GIF
)

var formatNames = map[Format]string{
	PNG:  "PNG",
	JPEG: "JPEG",
	GIF:  "GIF",
}

var formatExts = map[string]Format{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"gif":  GIF,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the preferred file name extension, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return strings.ToLower(f.String())
}

// ParseFormat maps a file name extension (case-insensitive, with or without
// the leading dot) to its format.
func ParseFormat(ext string) (Format, error) {
	if f, ok := formatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", problem.ErrUnsupportedFormat, ext)
}

// FormatFromPath determines the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	f, err := ParseFormat(sys.Extension(path))
	if err != nil {
		return 0, fmt.Errorf("could not determine image format of %q: %w", path, err)
	}
	return f, nil
}

// JPEGQuality is the quality used when encoding JPEG files.
const JPEGQuality = 100

// Encode writes the image to w in format f.
func (im *Image) Encode(w io.Writer, f Format) error {
	var err error
	img := im.prepare(f)
	switch f {
	case PNG:
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		err = enc.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
	default:
		return fmt.Errorf("%w: %s", problem.ErrUnsupportedFormat, f)
	}

	if err != nil {
		return fmt.Errorf("%w: could not encode %s: %w", problem.ErrEncode, f, err)
	}
	return nil
}

// Save writes the image to path in the format named by its extension. The
// data goes to a temporary file next to path that replaces path on success.
func (im *Image) Save(path string) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	out, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary destination for %q: %w", problem.ErrEncode, path, err)
	}
	slog.Debug("saving image", "file", path, "format", f, "temp", out.Name())

	committed := false
	defer func() {
		if committed {
			return
		}
		if closeErr := out.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Error("could not close temporary destination", "file", out.Name(), "error", closeErr)
		}
		if rmErr := os.Remove(out.Name()); rmErr != nil {
			slog.Error("could not remove temporary destination", "file", out.Name(), "error", rmErr)
		}
	}()

	if err = im.Encode(out, f); err != nil {
		return fmt.Errorf("could not save %q: %w", path, err)
	}
	if err = out.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: could not set permissions of %q: %w", problem.ErrEncode, out.Name(), err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("%w: could not flush temporary destination %q: %w", problem.ErrEncode, out.Name(), err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("%w: could not close temporary destination %q: %w", problem.ErrEncode, out.Name(), err)
	}
	if err = os.Rename(out.Name(), path); err != nil {
		return fmt.Errorf("%w: could not rename destination file %q: %w", problem.ErrEncode, path, err)
	}
	committed = true
	return nil
}

// prepare returns the representation handed to the encoder of f. JPEG has
// no alpha channel, so it gets an opaque copy.
func (im *Image) prepare(f Format) image.Image {
	if f == JPEG {
		return im.opaque()
	}
	return im.pix
}

// opaque copies the color channels into a fully opaque RGBA image.
func (im *Image) opaque() *image.RGBA {
	dest := image.NewRGBA(im.pix.Rect)
	copy(dest.Pix, im.pix.Pix)
	for i := 3; i < len(dest.Pix); i += 4 {
		dest.Pix[i] = 0xff
	}
	return dest
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
