package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"colortrans/pixmat"
)

func createTestImage(width, height int) *pixmat.Image {
	img := pixmat.NewImage(height, width, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 7) % 256)
	}
	return img
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	img := createTestImage(9, 5)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, img, "auto", false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, format, err := Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := FormatFromPath(name); format != want {
				t.Errorf("expected format %s, got %s", want, format)
			}
			if got.Shape() != img.Shape() {
				t.Fatalf("expected shape %s, got %s", img.Shape(), got.Shape())
			}
			if !bytes.Equal(got.Pix, img.Pix) {
				t.Error("expected lossless round trip")
			}
		})
	}
}

func TestSave_ExplicitFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.img")
	if err := Save(path, createTestImage(4, 4), "jpeg", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, format, err := Decode(path); err != nil || format != "jpeg" {
		t.Errorf("expected jpeg, got %q (%v)", format, err)
	}
}

func TestSave_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	img := createTestImage(3, 3)

	if err := Save(path, img, "auto", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Save(path, img, "auto", false); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}
	if err := Save(path, img, "auto", true); err != nil {
		t.Errorf("expected overwrite to succeed, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the destination file to remain, got %d entries", len(entries))
	}
}

func TestSave_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "out.x"), createTestImage(2, 2), "xpm", false); err == nil {
		t.Error("expected error for unsupported format")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected temporary file to be removed, got %d entries", len(entries))
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.PNG":  "png",
		"a.jpg":  "jpeg",
		"a.JPEG": "jpeg",
		"a.gif":  "gif",
		"a.bmp":  "bmp",
		"a.tif":  "tiff",
		"a.webp": "png",
		"a":      "png",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestFromImage_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	got := FromImage(src)
	want := []uint8{200, 100, 50, 10, 20, 30}
	if !bytes.Equal(got.Pix, want) {
		t.Errorf("expected %v, got %v", want, got.Pix)
	}
}

func TestFromImage_Generic(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 99})

	got := FromImage(gray)
	if got.Shape() != (pixmat.Shape{Height: 2, Width: 2, Channels: 3}) {
		t.Fatalf("expected 2x2x3, got %s", got.Shape())
	}
	if !bytes.Equal(got.Pix[9:12], []uint8{99, 99, 99}) {
		t.Errorf("expected gray replicated to RGB, got %v", got.Pix[9:12])
	}

	sub := image.NewRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 4))
	if s := FromImage(sub).Shape(); s.Width != 2 || s.Height != 3 {
		t.Errorf("expected 3x2 from sub-image, got %s", s)
	}
}

func TestDownscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	logger := slog.Default()

	small := Downscale(logger, src, 100)
	if b := small.Bounds(); b.Dx() != 100 || b.Dy() != 25 {
		t.Errorf("expected 100x25, got %dx%d", b.Dx(), b.Dy())
	}
	if Downscale(logger, src, 0) != image.Image(src) {
		t.Error("expected image unchanged when disabled")
	}
	if Downscale(logger, src, 1000) != image.Image(src) {
		t.Error("expected image unchanged when already small enough")
	}
}
