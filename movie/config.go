package movie

import (
	_ "embed"
	"fmt"
	"os"

	"rasterkit/problem"
	"rasterkit/raster"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Config holds the movie rendering settings.
type Config struct {
	FPS         int    `yaml:"fps"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	StillFrames int    `yaml:"still_frames"`
	BlendFrames int    `yaml:"blend_frames"`
	Palette     string `yaml:"palette"`
	Dither      bool   `yaml:"dither"`
	FFmpeg      string `yaml:"ffmpeg"`
	Codec       string `yaml:"codec"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("invalid embedded movie defaults: %v", err))
	}
	return cfg
}

// LoadConfig reads path on top of the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: could not parse config %s: %w", problem.ErrInvalidArgument, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.FPS < 1:
		return fmt.Errorf("%w: fps must be positive, got %d", problem.ErrInvalidArgument, c.FPS)
	case c.StillFrames < 0:
		return fmt.Errorf("%w: still_frames cannot be negative, got %d", problem.ErrInvalidArgument, c.StillFrames)
	case c.BlendFrames < 0:
		return fmt.Errorf("%w: blend_frames cannot be negative, got %d", problem.ErrInvalidArgument, c.BlendFrames)
	}
	if err := problem.CheckRange("movie width", c.Width, 1, raster.MaxDimension+1); err != nil {
		return err
	}
	return problem.CheckRange("movie height", c.Height, 1, raster.MaxDimension+1)
}
