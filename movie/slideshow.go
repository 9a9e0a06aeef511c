package movie

import (
	"context"
	"fmt"
	"log/slog"

	"rasterkit/problem"
	"rasterkit/raster"
	"rasterkit/rgb"

	"golang.org/x/sync/errgroup"
)

// Slideshow shows every slide for Still frames and cross-fades consecutive
// slides over Blend frames.
type Slideshow struct {
	Still int
	Blend int
}

// Frames returns the number of frames Render emits for n slides.
func (s Slideshow) Frames(n int) int {
	if n < 1 {
		return 0
	}
	return n*s.Still + (n-1)*s.Blend
}

// Render sends the frames of slides to enc. It does not call Finish. All
// slides must have the same size.
func (s Slideshow) Render(enc Encoder, slides []*raster.Image) error {
	if s.Still < 0 || s.Blend < 0 {
		return fmt.Errorf("%w: negative frame count (still %d, blend %d)", problem.ErrInvalidArgument, s.Still, s.Blend)
	}
	if len(slides) == 0 {
		return fmt.Errorf("%w: no slides to render", problem.ErrEmptyCollection)
	}

	var prev *raster.Image
	for i, cur := range slides {
		if err := problem.CheckNotNil(fmt.Sprintf("slide %d", i), cur == nil); err != nil {
			return err
		}
		if prev != nil {
			for j := range s.Blend {
				frame, err := crossFade(prev, cur, s.Blend-j, j)
				if err != nil {
					return fmt.Errorf("could not blend slide %d: %w", i, err)
				}
				if err := enc.AddFrame(frame); err != nil {
					return fmt.Errorf("could not add blend frame %d of slide %d: %w", j, i, err)
				}
			}
		}
		for range s.Still {
			if err := enc.AddFrame(cur); err != nil {
				return fmt.Errorf("could not add frame of slide %d: %w", i, err)
			}
		}
		slog.Debug("slide rendered", "slide", i)
		prev = cur
	}

	return nil
}

// crossFade returns a copy of a where every pixel is the weighted average of
// a and b.
func crossFade(a, b *raster.Image, wa, wb int) (*raster.Image, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return nil, fmt.Errorf("%w: cannot blend %v with %v", problem.ErrInvalidArgument, a, b)
	}

	frame := a.Clone()
	for y := range frame.Height() {
		for x := range frame.Width() {
			ca, err := frame.Pixel(x, y)
			if err != nil {
				return nil, err
			}
			cb, err := b.Pixel(x, y)
			if err != nil {
				return nil, err
			}
			c, err := rgb.Blend(ca, wa, cb, wb)
			if err != nil {
				return nil, err
			}
			if err := frame.SetPixel(x, y, c); err != nil {
				return nil, err
			}
		}
	}
	return frame, nil
}

// LoadSlides reads and rescales the images at paths to width x height, at
// most limit at a time. A limit below 1 means no limit. The result keeps the
// order of paths.
func LoadSlides(ctx context.Context, paths []string, width, height, limit int) ([]*raster.Image, error) {
	slides := make([]*raster.Image, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			im, err := raster.Load(path)
			if err != nil {
				return err
			}
			if err := im.Rescale(width, height); err != nil {
				return fmt.Errorf("could not rescale %q: %w", path, err)
			}
			slides[i] = im
			slog.Info("slide loaded", "file", path, "slide", i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slides, nil
}
