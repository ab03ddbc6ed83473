// Package transfer recolours a content image so that its colour statistics
// match those of a reference image.
//
// Every method is a pure function of its two inputs. Statistics are always
// computed over the whole of both images before any output pixel is written.
// Degenerate inputs, such as a constant content channel, are not special
// cased: the resulting NaNs and infinities are quantized by pixmat.Quantize.
package transfer

import (
	"errors"
	"fmt"

	"colortrans/linalg"
	"colortrans/parallel"
	"colortrans/pixmat"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrEmptyImage     = errors.New("empty image")
	ErrUnknownMethod  = errors.New("unknown transfer method")
	ErrSingularMatrix = linalg.ErrSingularMatrix
)

type options struct {
	workers int
}

type Option func(*options)

// WithWorkers spreads the per-pixel step over n goroutines, GOMAXPROCS when
// n < 1. The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func newOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Transfer returns content recoloured with the statistics of reference. The
// result has the shape of content. Both images must have the same number of
// channels; their sizes may differ.
func (m Method) Transfer(content, reference *pixmat.Image, opts ...Option) (*pixmat.Image, error) {
	if content == nil || reference == nil {
		return nil, fmt.Errorf("%w: missing input", ErrEmptyImage)
	}
	if content.Channels != reference.Channels {
		return nil, fmt.Errorf("%w: content has %d channels, reference has %d",
			ErrShapeMismatch, content.Channels, reference.Channels)
	}

	contentMat, shape, err := toMatrix("content", content)
	if err != nil {
		return nil, err
	}
	referenceMat, _, err := toMatrix("reference", reference)
	if err != nil {
		return nil, err
	}

	res, err := m.TransferMatrix(contentMat, referenceMat, opts...)
	if err != nil {
		return nil, err
	}
	return pixmat.ToImage(res, shape)
}

func toMatrix(name string, img *pixmat.Image) (*mat.Dense, pixmat.Shape, error) {
	if img.Height*img.Width == 0 {
		return nil, pixmat.Shape{}, fmt.Errorf("%w: %s is %s", ErrEmptyImage, name, img.Shape())
	}
	m, shape, err := pixmat.ToMatrix(img)
	if err != nil {
		return nil, pixmat.Shape{}, fmt.Errorf("invalid %s image: %w", name, err)
	}
	return m, shape, nil
}

// TransferMatrix works on pixel matrices and returns the unquantized result,
// one row per content pixel.
func (m Method) TransferMatrix(content, reference *mat.Dense, opts ...Option) (*mat.Dense, error) {
	cr, cc := content.Dims()
	rr, rc := reference.Dims()
	if cc != rc {
		return nil, fmt.Errorf("%w: content has %d channels, reference has %d", ErrShapeMismatch, cc, rc)
	}
	if cr == 0 || rr == 0 {
		return nil, ErrEmptyImage
	}

	o := newOptions(opts)
	switch m {
	case ChannelWise:
		return channelWise(content, reference, o), nil
	case LinearHistogramMatch:
		return linearHistogramMatch(content, reference, o)
	case PrincipalComponentMatch:
		return principalComponentMatch(content, reference, o)
	case Reinhard:
		return reinhard(content, reference, o)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}

// rowwise allocates a result shaped like x and runs fn on matching row
// ranges of the result and x.
func rowwise(x *mat.Dense, workers int, fn func(dst, src *mat.Dense)) *mat.Dense {
	rows, cols := x.Dims()
	res := mat.NewDense(rows, cols, nil)
	parallel.Range(rows, workers, func(start, end int) {
		fn(res.Slice(start, end, 0, cols).(*mat.Dense), x.Slice(start, end, 0, cols).(*mat.Dense))
	})
	return res
}

// linearMap returns (x - shift) * t^T + offset.
func linearMap(x *mat.Dense, shift []float64, t mat.Matrix, offset []float64, workers int) *mat.Dense {
	tt := t.T()
	return rowwise(x, workers, func(dst, src *mat.Dense) {
		var centered mat.Dense
		centered.Apply(func(_, c int, v float64) float64 {
			return v - shift[c]
		}, src)
		dst.Mul(&centered, tt)
		dst.Apply(func(_, c int, v float64) float64 {
			return v + offset[c]
		}, dst)
	})
}

// channelMap returns (x - shift) * num / den + offset, channel by channel.
func channelMap(x *mat.Dense, shift, num, den, offset []float64, workers int) *mat.Dense {
	return rowwise(x, workers, func(dst, src *mat.Dense) {
		dst.Apply(func(_, c int, v float64) float64 {
			return (v-shift[c])*num[c]/den[c] + offset[c]
		}, src)
	})
}
