package invert

import (
	"errors"
	"path/filepath"
	"testing"

	"rasterkit/problem"
	"rasterkit/raster"
	"rasterkit/rgb"
)

func TestInvert(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	im, err := raster.New(3, 2, rgb.Navy)
	if err != nil {
		t.Fatal(err)
	}
	if err := im.SetPixel(2, 1, rgb.FromMerged(0x123456)); err != nil {
		t.Fatal(err)
	}
	if err := im.Save(src); err != nil {
		t.Fatal(err)
	}

	if err := Invert(src, dest); err != nil {
		t.Fatalf("Invert() unexpected error: %v", err)
	}

	got, err := raster.Load(dest)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y     int
		expected rgb.Color
	}{
		{0, 0, rgb.FromMerged(0xffff7f)},
		{1, 1, rgb.FromMerged(0xffff7f)},
		{2, 1, rgb.FromMerged(0xedcba9)},
	}
	for _, tc := range tests {
		if c, _ := got.Pixel(tc.x, tc.y); c != tc.expected {
			t.Errorf("Pixel(%d, %d) = %v, expected %v", tc.x, tc.y, c, tc.expected)
		}
	}
}

func TestInvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Invert(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"))
	if !errors.Is(err, problem.ErrDecode) {
		t.Errorf("Invert(missing) error = %v, expected ErrDecode", err)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	c := &CLICmd{Output: "out.bmp"}
	if err := c.Validate(nil); !errors.Is(err, problem.ErrUnsupportedFormat) {
		t.Errorf("Validate(out.bmp) error = %v, expected ErrUnsupportedFormat", err)
	}

	c = &CLICmd{Output: "out.JPG"}
	if err := c.Validate(nil); err != nil {
		t.Errorf("Validate(out.JPG) unexpected error: %v", err)
	}
	if !filepath.IsAbs(c.Output) {
		t.Errorf("Validate() left a relative output %q", c.Output)
	}
}
