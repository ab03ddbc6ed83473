package pixmat

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestToMatrix_RasterOrder(t *testing.T) {
	img := NewImage(2, 3, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	m, shape, err := ToMatrix(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shape != (Shape{Height: 2, Width: 3, Channels: 3}) {
		t.Errorf("expected shape 2x3x3, got %s", shape)
	}

	rows, cols := m.Dims()
	if rows != 6 || cols != 3 {
		t.Fatalf("expected 6x3 matrix, got %dx%d", rows, cols)
	}
	// Pixel (x=2, y=1) is row 5.
	for c := range 3 {
		if got, want := m.At(5, c), float64(15+c); got != want {
			t.Errorf("row 5 col %d: expected %v, got %v", c, want, got)
		}
	}
}

func TestToImage_RoundTrip(t *testing.T) {
	img := NewImage(4, 5, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 37) % 256)
	}

	m, shape, err := ToMatrix(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := ToImage(m, shape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Shape() != img.Shape() {
		t.Fatalf("expected shape %s, got %s", img.Shape(), out.Shape())
	}
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("sample %d: expected %d, got %d", i, img.Pix[i], out.Pix[i])
		}
	}
}

func TestToImage_NonRawMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 2, 4, 1, 3, 5})
	out, err := ToImage(mat.Transpose{Matrix: m}, Shape{Height: 1, Width: 3, Channels: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []uint8{0, 1, 2, 3, 4, 5} {
		if out.Pix[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, out.Pix[i])
		}
	}
}

func TestToImage_ShapeMismatch(t *testing.T) {
	m := mat.NewDense(5, 3, nil)
	_, err := ToImage(m, Shape{Height: 2, Width: 3, Channels: 3})
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestToMatrix_Invalid(t *testing.T) {
	tests := []struct {
		name string
		img  *Image
	}{
		{name: "short buffer", img: &Image{Pix: make([]uint8, 5), Height: 2, Width: 1, Channels: 3}},
		{name: "no channels", img: &Image{Height: 1, Width: 1}},
		{name: "empty", img: NewImage(0, 4, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ToMatrix(tt.img); !errors.Is(err, ErrInvalidShape) {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{in: 127.5, want: 128},
		{in: 126.5, want: 126},
		{in: 0.5, want: 0},
		{in: 254.5, want: 254},
		{in: 12.49, want: 12},
		{in: 12.51, want: 13},
		{in: -3, want: 0},
		{in: 255.4, want: 255},
		{in: 1e9, want: 255},
		{in: math.Inf(1), want: 255},
		{in: math.Inf(-1), want: 0},
		{in: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestImage_At(t *testing.T) {
	img := NewImage(1, 2, 3)
	copy(img.Pix, []uint8{1, 2, 3, 4, 5, 6})

	if got := img.At(1, 0); got != (color.RGBA{R: 4, G: 5, B: 6, A: 0xFF}) {
		t.Errorf("expected {4 5 6 255}, got %v", got)
	}
	if got := img.At(2, 0); got != (color.RGBA{}) {
		t.Errorf("expected transparent outside bounds, got %v", got)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("expected 2x1 bounds, got %v", b)
	}
}
