package mangle

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"rasterkit/palette"
	"rasterkit/parallel"
	"rasterkit/raster"
	"rasterkit/rgb"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for processed pictures. Relative to scan dir if not absolute. If same as scan dir, will overwrite source files." default:"mangled"`
	Resize  bool   `help:"Resize image" default:"false" group:"resize"`
	Width   int    `help:"Max width, 0 keeps the source width" group:"resize"`
	Height  int    `help:"Max height, 0 keeps the source height" group:"resize"`
	Crop    bool   `help:"Crop image to maintain requested aspect ratio" default:"false" group:"resize"`
	Fill    string `help:"If given and not cropping, will fill background with this color (#RGB, #RRGGBB or an HTML color name) to maintain destination aspect ratio" group:"resize"`
	Invert  bool   `help:"Invert colors" default:"false"`
	Palette string `help:"Palette name (bw, gray16, html16, plan9, websafe) or PAL file in RIFF format to apply" group:"palette"`
	Dither  bool   `help:"Apply Floyd-Steinberg dithering, otherwise every pixel takes the perceptually closest palette color" default:"false" group:"palette"`
	Format  string `help:"Output format of mangled image. 'same' keeps the source format when it can be written and uses png otherwise" enum:"same,png,jpeg,gif" default:"same"`

	fill *rgb.Color
	pal  color.Palette
	lab  *palette.Lab
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Resize {
		switch {
		case c.Width < 0:
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case c.Height < 0:
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case c.Width == 0 && c.Height == 0:
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if !c.Crop && c.Fill != "" {
		fill, err := rgb.Parse(c.Fill)
		if err != nil {
			return fmt.Errorf("invalid fill color: %w", err)
		}
		c.fill = &fill
	}

	if c.Palette != "" {
		if c.pal, err = palette.Load(c.Palette); err != nil {
			return err
		}
		c.lab = palette.NewLab(c.pal)
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func() {
			logger := slog.Default().With("file", filepath.Join(c.Scan, file.Name()))
			if err := c.process(logger, file.Name()); err != nil {
				errCount.Add(1)
				logger.Error("could not mangle image", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// process runs every requested step on one file of the scan folder.
func (c *CLICmd) process(logger *slog.Logger, fileName string) error {
	im, err := raster.Load(filepath.Join(c.Scan, fileName))
	if err != nil {
		return err
	}

	if c.Resize {
		logger.Debug("resizing", "from", im.String(), "width", c.Width, "height", c.Height, "crop", c.Crop)
		if err := im.Fit(c.Width, c.Height, c.Crop, c.fill); err != nil {
			return fmt.Errorf("could not resize image: %w", err)
		}
	}

	if c.Invert {
		if err := im.Remap(rgb.Color.Invert); err != nil {
			return fmt.Errorf("could not invert image: %w", err)
		}
	}

	if c.pal != nil {
		logger.Debug("applying palette", "palette", c.Palette, "colors", len(c.pal), "dither", c.Dither)
		if c.Dither {
			err = im.Quantize(c.pal, true)
		} else {
			err = im.Remap(c.lab.Nearest)
		}
		if err != nil {
			return fmt.Errorf("could not change image palette: %w", err)
		}
	}

	format := outputFormat(c.Format, fileName)
	dest := filepath.Join(c.Dest, strings.TrimSuffix(fileName, filepath.Ext(fileName))+"."+format.Ext())
	if err := im.Save(dest); err != nil {
		return fmt.Errorf("could not save image to %q: %w", c.Dest, err)
	}
	logger.Info("mangled", "to", dest, "size", im.String())

	return nil
}

// outputFormat resolves the --format value for a source file. Sources that
// cannot be written back (bmp, tiff, webp) become png.
func outputFormat(format, fileName string) raster.Format {
	if format == "same" {
		format = filepath.Ext(fileName)
	}
	if f, err := raster.ParseFormat(format); err == nil {
		return f
	}
	return raster.PNG
}
