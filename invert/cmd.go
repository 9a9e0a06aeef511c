package invert

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"rasterkit/raster"
	"rasterkit/rgb"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Input  string `arg:"" type:"existingfile" help:"Image to invert"`
	Output string `arg:"" help:"Where to save the inverted image, format is taken from the extension"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if _, err := raster.FormatFromPath(c.Output); err != nil {
		return fmt.Errorf("invalid output %q: %w", c.Output, err)
	}
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Output, err)
	}
	c.Output = out

	return nil
}

func (c *CLICmd) Run() error {
	return Invert(c.Input, c.Output)
}

// Invert saves the color negative of the image at src to dest.
func Invert(src, dest string) error {
	im, err := raster.Load(src)
	if err != nil {
		return err
	}
	if err := im.Remap(rgb.Color.Invert); err != nil {
		return fmt.Errorf("could not invert %q: %w", src, err)
	}
	if err := im.Save(dest); err != nil {
		return err
	}
	slog.Info("inverted", "from", src, "to", dest, "size", im.String())

	return nil
}
