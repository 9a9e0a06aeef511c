package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"rasterkit/problem"
	"rasterkit/rgb"
)

func mustNew(t *testing.T, width, height int, bg rgb.Color) *Image {
	t.Helper()
	im, err := New(width, height, bg)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", width, height, err)
	}
	return im
}

// translucent builds an image whose pixels carry varying alpha.
func translucent(t *testing.T, width, height int) *Image {
	t.Helper()
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0x80, A: uint8(x*20 + y)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	im, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(): %v", err)
	}
	return im
}

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"single pixel", 1, 1, false},
		{"wide", 640, 1, false},
		{"max width", MaxDimension, 1, false},
		{"max height", 1, MaxDimension, false},
		{"zero width", 0, 10, true},
		{"zero height", 10, 0, true},
		{"negative", -4, 10, true},
		{"width over cap", MaxDimension + 1, 1, true},
		{"height over cap", 1, MaxDimension + 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			im, err := New(tc.width, tc.height, rgb.Olive)
			if tc.wantErr {
				if !errors.Is(err, problem.ErrOutOfRange) {
					t.Errorf("New(%d, %d) error = %v, expected ErrOutOfRange", tc.width, tc.height, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d) unexpected error: %v", tc.width, tc.height, err)
			}
			if im.Width() != tc.width || im.Height() != tc.height {
				t.Errorf("New() = %dx%d, expected %dx%d", im.Width(), im.Height(), tc.width, tc.height)
			}
		})
	}
}

func TestNewFillsBackground(t *testing.T) {
	im := mustNew(t, 3, 2, rgb.Purple)
	for y := range 2 {
		for x := range 3 {
			c, err := im.Pixel(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if c != rgb.Purple {
				t.Errorf("Pixel(%d, %d) = %v, expected %v", x, y, c, rgb.Purple)
			}
			if a := im.pix.NRGBAAt(x, y).A; a != 0xff {
				t.Errorf("alpha at (%d, %d) = %d, expected opaque", x, y, a)
			}
		}
	}
}

func TestPixelBounds(t *testing.T) {
	const w, h = 4, 3
	im := mustNew(t, w, h, rgb.Black)

	for y := range h {
		for x := range w {
			c := rgb.FromMerged(uint32(x<<16 | y<<8 | 0x42))
			if err := im.SetPixel(x, y, c); err != nil {
				t.Fatalf("SetPixel(%d, %d) unexpected error: %v", x, y, err)
			}
			got, err := im.Pixel(x, y)
			if err != nil {
				t.Fatalf("Pixel(%d, %d) unexpected error: %v", x, y, err)
			}
			if got != c {
				t.Errorf("Pixel(%d, %d) = %v, expected %v", x, y, got, c)
			}
		}
	}

	outside := []image.Point{{-1, 0}, {w, 0}, {0, -1}, {0, h}, {w, h}, {-1, -1}}
	for _, p := range outside {
		if _, err := im.Pixel(p.X, p.Y); !errors.Is(err, problem.ErrOutOfRange) {
			t.Errorf("Pixel(%d, %d) error = %v, expected ErrOutOfRange", p.X, p.Y, err)
		}
		if err := im.SetPixel(p.X, p.Y, rgb.White); !errors.Is(err, problem.ErrOutOfRange) {
			t.Errorf("SetPixel(%d, %d) error = %v, expected ErrOutOfRange", p.X, p.Y, err)
		}
	}
}

func TestSetPixelKeepsAlpha(t *testing.T) {
	im := translucent(t, 4, 4)
	before := im.pix.NRGBAAt(2, 1).A

	if err := im.SetPixel(2, 1, rgb.Lime); err != nil {
		t.Fatal(err)
	}
	got := im.pix.NRGBAAt(2, 1)
	if got.A != before {
		t.Errorf("alpha after SetPixel = %d, expected %d", got.A, before)
	}
	if c, _ := im.Pixel(2, 1); c != rgb.Lime {
		t.Errorf("Pixel(2, 1) = %v, expected %v", c, rgb.Lime)
	}
}

func TestRemap(t *testing.T) {
	im := mustNew(t, 2, 2, rgb.Navy)
	if err := im.SetPixel(1, 1, rgb.White); err != nil {
		t.Fatal(err)
	}

	if err := im.Remap(rgb.Color.Invert); err != nil {
		t.Fatal(err)
	}

	expected := map[image.Point]rgb.Color{
		{0, 0}: rgb.Navy.Invert(),
		{1, 0}: rgb.Navy.Invert(),
		{0, 1}: rgb.Navy.Invert(),
		{1, 1}: rgb.Black,
	}
	for p, want := range expected {
		if got, _ := im.Pixel(p.X, p.Y); got != want {
			t.Errorf("Pixel(%d, %d) = %v, expected %v", p.X, p.Y, got, want)
		}
	}

	if err := im.Remap(nil); !errors.Is(err, problem.ErrInvalidArgument) {
		t.Errorf("Remap(nil) error = %v, expected ErrInvalidArgument", err)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	im := mustNew(t, 2, 2, rgb.Red)
	cp := im.Clone()

	if err := cp.SetPixel(0, 0, rgb.Blue); err != nil {
		t.Fatal(err)
	}
	if c, _ := im.Pixel(0, 0); c != rgb.Red {
		t.Errorf("original Pixel(0, 0) = %v after modifying clone, expected %v", c, rgb.Red)
	}
	if c, _ := cp.Pixel(0, 0); c != rgb.Blue {
		t.Errorf("clone Pixel(0, 0) = %v, expected %v", c, rgb.Blue)
	}
}

func TestAppendRGB(t *testing.T) {
	im := mustNew(t, 2, 1, rgb.FromMerged(0x010203))
	if err := im.SetPixel(1, 0, rgb.FromMerged(0x0a0b0c)); err != nil {
		t.Fatal(err)
	}

	got := im.AppendRGB([]byte{0xff})
	want := []byte{0xff, 1, 2, 3, 10, 11, 12}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendRGB() = %v, expected %v", got, want)
	}
}
