package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rasterkit/problem"
	"rasterkit/rgb"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		ext      string
		expected Format
		wantErr  bool
	}{
		{ext: "png", expected: PNG},
		{ext: "PNG", expected: PNG},
		{ext: ".jpg", expected: JPEG},
		{ext: "jpeg", expected: JPEG},
		{ext: "JpEg", expected: JPEG},
		{ext: "gif", expected: GIF},
		{ext: "bmp", wantErr: true},
		{ext: "tiff", wantErr: true},
		{ext: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			f, err := ParseFormat(tc.ext)
			if tc.wantErr {
				if !errors.Is(err, problem.ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, expected ErrUnsupportedFormat", tc.ext, err)
				}
				return
			}
			if err != nil || f != tc.expected {
				t.Errorf("ParseFormat(%q) = %v, %v, expected %v", tc.ext, f, err, tc.expected)
			}
		})
	}
}

func TestFormatNames(t *testing.T) {
	if PNG.String() != "PNG" || JPEG.String() != "JPEG" || GIF.String() != "GIF" {
		t.Errorf("format tags = %s, %s, %s", PNG, JPEG, GIF)
	}
	if JPEG.Ext() != "jpg" || PNG.Ext() != "png" || GIF.Ext() != "gif" {
		t.Errorf("format extensions = %s, %s, %s", PNG.Ext(), JPEG.Ext(), GIF.Ext())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	im := mustNew(t, 6, 4, rgb.Navy)
	if err := im.SetPixel(5, 3, rgb.Yellow); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "out.png")
	if err := im.Save(path); err != nil {
		t.Fatalf("Save(%q) unexpected error: %v", path, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.png" {
		t.Errorf("directory holds %v, expected only out.png", entries)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}
	if loaded.Width() != 6 || loaded.Height() != 4 {
		t.Fatalf("Load() = %dx%d, expected 6x4", loaded.Width(), loaded.Height())
	}
	if c, _ := loaded.Pixel(5, 3); c != rgb.Yellow {
		t.Errorf("loaded Pixel(5, 3) = %v, expected %v", c, rgb.Yellow)
	}
	if c, _ := loaded.Pixel(0, 0); c != rgb.Navy {
		t.Errorf("loaded Pixel(0, 0) = %v, expected %v", c, rgb.Navy)
	}
}

func TestSaveLossyFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"photo.JPG", "photo.jpeg", "anim.gif"} {
		t.Run(name, func(t *testing.T) {
			im := translucent(t, 8, 8)
			path := filepath.Join(dir, name)
			if err := im.Save(path); err != nil {
				t.Fatalf("Save(%q) unexpected error: %v", path, err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", path, err)
			}
			if loaded.Width() != 8 || loaded.Height() != 8 {
				t.Errorf("Load() = %dx%d, expected 8x8", loaded.Width(), loaded.Height())
			}
		})
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	im := mustNew(t, 2, 2, rgb.Gray)

	for _, name := range []string{"picture.bmp", "picture", "picture.", "archive.tar.gz"} {
		path := filepath.Join(dir, name)
		if err := im.Save(path); !errors.Is(err, problem.ErrUnsupportedFormat) {
			t.Errorf("Save(%q) error = %v, expected ErrUnsupportedFormat", name, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed saves left %d files behind", len(entries))
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	im := mustNew(t, 2, 2, rgb.Gray)
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := im.Save(path); !errors.Is(err, problem.ErrEncode) {
		t.Errorf("Save(%q) error = %v, expected ErrEncode", path, err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriterFailure(t *testing.T) {
	im := mustNew(t, 2, 2, rgb.Gray)
	for _, f := range []Format{PNG, JPEG, GIF} {
		err := im.Encode(failingWriter{}, f)
		if !errors.Is(err, problem.ErrEncode) {
			t.Errorf("Encode(%s) error = %v, expected ErrEncode", f, err)
		}
		if err != nil && !strings.Contains(err.Error(), "disk full") {
			t.Errorf("Encode(%s) error = %v, expected the cause to be kept", f, err)
		}
	}
	if err := im.Encode(&bytes.Buffer{}, Format(42)); !errors.Is(err, problem.ErrUnsupportedFormat) {
		t.Errorf("Encode(Format(42)) error = %v, expected ErrUnsupportedFormat", err)
	}
}

func TestPrepareDropsAlphaForJPEG(t *testing.T) {
	im := translucent(t, 5, 5)

	img := im.prepare(JPEG)
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("prepare(JPEG) = %T, expected *image.RGBA", img)
	}
	if !rgba.Opaque() {
		t.Error("prepare(JPEG) image is not opaque")
	}
	for y := range 5 {
		for x := range 5 {
			got := rgba.RGBAAt(x, y)
			want, _ := im.Pixel(x, y)
			if got.A != 0xff {
				t.Errorf("alpha at (%d, %d) = %d, expected 255", x, y, got.A)
			}
			if int(got.R) != want.R() || int(got.G) != want.G() || int(got.B) != want.B() {
				t.Errorf("color at (%d, %d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestPreparePassesAlphaThrough(t *testing.T) {
	im := translucent(t, 5, 5)
	for _, f := range []Format{PNG, GIF} {
		if img := im.prepare(f); img != image.Image(im.pix) {
			t.Errorf("prepare(%s) returned a converted image", f)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(strings.NewReader("definitely not an image")); !errors.Is(err, problem.ErrDecode) {
		t.Errorf("Decode(garbage) error = %v, expected ErrDecode", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.png")); !errors.Is(err, problem.ErrDecode) {
		t.Errorf("Load(absent) error = %v, expected ErrDecode", err)
	}
}

func TestDecodeOversized(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, MaxDimension+1, 1))); err != nil {
		t.Fatal(err)
	}

	_, err := Decode(&buf)
	if !errors.Is(err, problem.ErrDecode) || !errors.Is(err, problem.ErrOutOfRange) {
		t.Errorf("Decode(oversized) error = %v, expected ErrDecode wrapping ErrOutOfRange", err)
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring a width x height
// 8-bit gray image, with no pixel data.
func pngHeader(width, height uint32) []byte {
	ihdr := []byte("IHDR")
	ihdr = binary.BigEndian.AppendUint32(ihdr, width)
	ihdr = binary.BigEndian.AppendUint32(ihdr, height)
	ihdr = append(ihdr, 8, 0, 0, 0, 0)

	out := []byte("\x89PNG\r\n\x1a\n")
	out = binary.BigEndian.AppendUint32(out, uint32(len(ihdr)-4))
	out = append(out, ihdr...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(ihdr))
}

func TestDecodeOversizedHeader(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"wide", 40000, 10000},
		{"tall", 1, MaxDimension + 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(pngHeader(tc.width, tc.height)))
			if !errors.Is(err, problem.ErrDecode) || !errors.Is(err, problem.ErrOutOfRange) {
				t.Errorf("Decode(%dx%d header) error = %v, expected ErrDecode wrapping ErrOutOfRange", tc.width, tc.height, err)
			}
		})
	}

	// A valid header without pixel data fails in the pixel decoder instead.
	_, err := Decode(bytes.NewReader(pngHeader(4, 4)))
	if !errors.Is(err, problem.ErrDecode) || errors.Is(err, problem.ErrOutOfRange) {
		t.Errorf("Decode(truncated 4x4) error = %v, expected ErrDecode only", err)
	}
}

func TestDecodeNormalisesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	im, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := im.Bounds(); b.Min != (image.Point{}) || b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Bounds() = %v, expected (0,0)-(3,2)", b)
	}
}
