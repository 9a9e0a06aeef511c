package palette

import (
	"errors"
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"log/slog"
	"os"
	"slices"
	"strings"

	"rasterkit/problem"
	"rasterkit/rgb"
)

var builtin = map[string]func() color.Palette{
	"bw":      func() color.Palette { return color.Palette{rgb.Black, rgb.White} },
	"gray16":  gray16,
	"html16":  rgb.HTMLPalette,
	"plan9":   func() color.Palette { return slices.Clone(stdpalette.Plan9) },
	"websafe": func() color.Palette { return slices.Clone(stdpalette.WebSafe) },
}

// Names returns the names of the builtin palettes, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the builtin palette called name, or reads name as a RIFF PAL
// file and merges all of its palettes into one.
func Load(name string) (color.Palette, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: palette name cannot be empty", problem.ErrInvalidArgument)
	}
	if fn, ok := builtin[strings.ToLower(name)]; ok {
		return fn(), nil
	}

	fd, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: unknown palette %q, expected a file or one of %s",
				problem.ErrInvalidArgument, name, strings.Join(Names(), ", "))
		}
		return nil, fmt.Errorf("could not open palette: %w", err)
	}
	defer func() {
		if err := fd.Close(); err != nil {
			slog.Error("could not close palette", "path", name, "error", err)
		}
	}()

	pals, err := ReadFrom(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read palette %q: %w", problem.ErrDecode, name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: palette %q has no colors", problem.ErrEmptyCollection, name)
	}
	slog.Debug("loaded palette", "path", name, "palettes", len(pals), "colors", len(res))

	return res, nil
}

func gray16() color.Palette {
	res := make(color.Palette, 16)
	for i := range res {
		v := uint8(i * 0x11)
		res[i] = rgb.FromMerged(uint32(v)<<16 | uint32(v)<<8 | uint32(v))
	}
	return res
}
