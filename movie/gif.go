package movie

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"log/slog"
	"os"

	"rasterkit/palette"
	"rasterkit/problem"
	"rasterkit/raster"

	"golang.org/x/image/draw"
)

// maxDelay is the longest delay a GIF frame can store, in 1/100 s.
const maxDelay = 0xffff

// GIF encodes an animated GIF. Frames are kept in memory until Finish.
// Consecutive identical frames are stored once with a longer delay, split
// into several frames when the delay would exceed maxDelay.
type GIF struct {
	frameCheck
	fd     *os.File
	pal    color.Palette
	dither bool
	delay  int
	anim   gif.GIF
}

// NewGIF creates path and prepares an animation with the palette and frame
// rate of cfg.
func NewGIF(path string, cfg Config) (*GIF, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := palette.Load(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("could not load movie palette: %w", err)
	}
	if len(pal) > 256 {
		return nil, fmt.Errorf("%w: GIF palette %q has %d colors, at most 256 allowed",
			problem.ErrInvalidArgument, cfg.Palette, len(pal))
	}

	fd, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create movie %q: %w", problem.ErrEncode, path, err)
	}

	return &GIF{
		fd:     fd,
		pal:    pal,
		dither: cfg.Dither,
		delay:  max(1, 100/cfg.FPS),
	}, nil
}

func (g *GIF) AddFrame(frame *raster.Image) error {
	if err := g.add(frame); err != nil {
		return err
	}

	rect := image.Rect(0, 0, g.size.X, g.size.Y)
	dst := image.NewPaletted(rect, g.pal)
	if g.dither {
		draw.FloydSteinberg.Draw(dst, rect, frame, frame.Bounds().Min)
	} else {
		draw.Draw(dst, rect, frame, frame.Bounds().Min, draw.Src)
	}

	if n := len(g.anim.Image); n > 0 && g.anim.Delay[n-1]+g.delay <= maxDelay &&
		bytes.Equal(g.anim.Image[n-1].Pix, dst.Pix) {
		g.anim.Delay[n-1] += g.delay
		return nil
	}
	g.anim.Image = append(g.anim.Image, dst)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

func (g *GIF) Finish() (err error) {
	if err := g.finish(); err != nil {
		return err
	}
	defer func() {
		if cerr := g.fd.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = errors.Join(err, fmt.Errorf("%w: could not close movie: %w", problem.ErrEncode, cerr))
		}
	}()

	if len(g.anim.Image) == 0 {
		return fmt.Errorf("%w: movie has no frames", problem.ErrEncode)
	}

	w := bufio.NewWriter(g.fd)
	if err := gif.EncodeAll(w, &g.anim); err != nil {
		return fmt.Errorf("%w: could not encode GIF: %w", problem.ErrEncode, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: could not write movie: %w", problem.ErrEncode, err)
	}
	slog.Debug("movie written", "path", g.fd.Name(), "frames", g.frames, "stored", len(g.anim.Image))

	return nil
}
