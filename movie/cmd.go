package movie

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"

	"rasterkit/parallel"
	"rasterkit/seq"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Output string   `arg:"" help:"Movie to create. A .gif output is encoded in process, anything else goes through ffmpeg."`
	Images []string `arg:"" type:"existingfile" help:"Images to show, one slide each"`
	Config string   `help:"YAML file overriding the rendering defaults"`
	Order  string   `help:"Slide order" enum:"given,sorted,reversed,shuffled" default:"given"`
	Seed   uint64   `help:"Seed for the shuffled order, 0 picks a random one"`

	cfg Config
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}
	c.Output = out

	if c.cfg, err = LoadConfig(c.Config); err != nil {
		return err
	}
	return nil
}

// ordered returns the image paths in the requested order.
func (c *CLICmd) ordered() ([]string, error) {
	paths := seq.New[string]()
	for _, p := range c.Images {
		if err := paths.Append(p); err != nil {
			return nil, err
		}
	}

	switch c.Order {
	case "sorted":
		paths.Sort()
	case "reversed":
		paths.Reverse()
	case "shuffled":
		var r *rand.Rand
		if c.Seed != 0 {
			r = rand.New(rand.NewPCG(c.Seed, c.Seed))
		}
		paths.Shuffle(r)
	}
	slog.Debug("slide order", "order", c.Order, "paths", paths.String())

	return paths.Values(), nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	paths, err := c.ordered()
	if err != nil {
		return err
	}

	slides, err := LoadSlides(context.Background(), paths, c.cfg.Width, c.cfg.Height, pool.Size())
	if err != nil {
		return fmt.Errorf("could not load slides: %w", err)
	}

	enc, err := Create(c.Output, c.cfg)
	if err != nil {
		return err
	}
	show := Slideshow{Still: c.cfg.StillFrames, Blend: c.cfg.BlendFrames}

	slog.Info("rendering movie", "output", c.Output, "slides", len(slides), "frames", show.Frames(len(slides)))
	if err := show.Render(enc, slides); err != nil {
		if ferr := enc.Finish(); ferr != nil {
			slog.Error("could not finish movie", "error", ferr)
		}
		return err
	}
	if err := enc.Finish(); err != nil {
		return err
	}
	slog.Info("done", "output", c.Output)

	return nil
}
