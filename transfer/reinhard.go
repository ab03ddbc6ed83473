package transfer

import (
	"fmt"
	"math"

	"colortrans/stats"

	"gonum.org/v1/gonum/mat"
)

// Row-vector transforms: a colour c maps to c * M.
var (
	// RGB to LMS.
	rgbToLMS = mat.NewDense(3, 3, []float64{
		0.3811, 0.1967, 0.0241,
		0.5783, 0.7244, 0.1288,
		0.0402, 0.0782, 0.8444,
	})
	// log LMS to l-alpha-beta.
	logLMSToLab = mat.NewDense(3, 3, []float64{
		0.5774, 0.4082, 0.7071,
		0.5774, 0.4082, -0.7071,
		0.5774, -0.8165, 0.0000,
	})
	// l-alpha-beta to log LMS.
	labToLogLMS = mat.NewDense(3, 3, []float64{
		0.5774, 0.5774, 0.5774,
		0.4082, 0.4082, -0.8165,
		0.7071, -0.7071, 0.0000,
	})
	// LMS to RGB.
	lmsToRGB = mat.NewDense(3, 3, []float64{
		4.4679, -1.2186, 0.0497,
		-3.5873, 2.3809, -0.2439,
		0.1193, -0.1624, 1.2045,
	})
)

// reinhard matches means in log l-alpha-beta space but scales with the
// standard deviations of the RGB inputs.
//
// LMS values are clamped to at least 1 before the logarithm, unlike the
// published algorithm, so dark pixels do not produce huge negative logs.
func reinhard(content, reference *mat.Dense, o options) (*mat.Dense, error) {
	if _, c := content.Dims(); c != 3 {
		return nil, fmt.Errorf("%w: reinhard needs 3 channels, got %d", ErrShapeMismatch, c)
	}

	labContent := rowwise(content, o.workers, toLogLab)
	labReference := rowwise(reference, o.workers, toLogLab)

	muContent := stats.Mean(labContent)
	muReference := stats.Mean(labReference)
	stdContent := stats.StdDev(content)
	stdReference := stats.StdDev(reference)

	res := channelMap(labContent, muContent, stdReference, stdContent, muReference, o.workers)
	return rowwise(res, o.workers, fromLogLab), nil
}

func toLogLab(dst, src *mat.Dense) {
	var lms mat.Dense
	lms.Mul(src, rgbToLMS)
	lms.Apply(func(_, _ int, v float64) float64 {
		return math.Log10(math.Max(1, v))
	}, &lms)
	dst.Mul(&lms, logLMSToLab)
}

func fromLogLab(dst, src *mat.Dense) {
	var lms mat.Dense
	lms.Mul(src, labToLogLMS)
	lms.Apply(func(_, _ int, v float64) float64 {
		return math.Pow(10, v)
	}, &lms)
	dst.Mul(&lms, lmsToRGB)
}
