// Package pixmat converts 8-bit rasters to per-pixel channel matrices and back.
//
// A matrix has one row per pixel, in raster order, and one column per channel.
// Converting back clips every value to [0, 255], rounds half to even and casts
// to uint8. NaN becomes 0.
package pixmat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrInvalidShape = errors.New("invalid shape")

type Shape struct {
	Height   int
	Width    int
	Channels int
}

func (s Shape) Pixels() int {
	return s.Height * s.Width
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// ToMatrix flattens img into a (height*width) x channels matrix.
func ToMatrix(img *Image) (*mat.Dense, Shape, error) {
	if err := img.Validate(); err != nil {
		return nil, Shape{}, err
	}
	shape := img.Shape()
	if shape.Pixels() == 0 {
		return nil, shape, fmt.Errorf("%w: %s has no pixels", ErrInvalidShape, shape)
	}

	data := make([]float64, len(img.Pix))
	for i, v := range img.Pix {
		data[i] = float64(v)
	}
	return mat.NewDense(shape.Pixels(), shape.Channels, data), shape, nil
}

// ToImage is the inverse of ToMatrix followed by Quantize on every element.
func ToImage(m mat.Matrix, shape Shape) (*Image, error) {
	rows, cols := m.Dims()
	if rows != shape.Pixels() || cols != shape.Channels {
		return nil, fmt.Errorf("%w: %dx%d matrix cannot hold %s", ErrInvalidShape, rows, cols, shape)
	}

	img := NewImage(shape.Height, shape.Width, shape.Channels)
	if raw, ok := m.(mat.RawMatrixer); ok {
		rm := raw.RawMatrix()
		for r := range rows {
			row := rm.Data[r*rm.Stride : r*rm.Stride+cols]
			out := img.Pix[r*cols : (r+1)*cols]
			for c, v := range row {
				out[c] = Quantize(v)
			}
		}
		return img, nil
	}

	for r := range rows {
		for c := range cols {
			img.Pix[r*cols+c] = Quantize(m.At(r, c))
		}
	}
	return img, nil
}

// Quantize clips v to [0, 255] and rounds half to even. NaN maps to 0 and
// infinities saturate.
func Quantize(v float64) uint8 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.RoundToEven(v))
}
