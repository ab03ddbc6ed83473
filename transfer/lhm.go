package transfer

import (
	"fmt"

	"colortrans/linalg"
	"colortrans/stats"

	"gonum.org/v1/gonum/mat"
)

// linearHistogramMatch applies T = sqrt(cov(reference)) * inverse(sqrt(cov(content)))
// to the centred content and adds the reference mean.
func linearHistogramMatch(content, reference *mat.Dense, o options) (*mat.Dense, error) {
	muContent := stats.Mean(content)
	muReference := stats.Mean(reference)

	rootReference, err := linalg.Sqrt(stats.Covariance(reference))
	if err != nil {
		return nil, fmt.Errorf("could not take square root of reference covariance: %w", err)
	}
	whiten, err := linalg.InverseSqrt(stats.Covariance(content))
	if err != nil {
		return nil, fmt.Errorf("could not invert square root of content covariance: %w", err)
	}

	var t mat.Dense
	t.Mul(rootReference, whiten)

	return linearMap(content, muContent, &t, muReference, o.workers), nil
}
