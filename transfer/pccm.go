package transfer

import (
	"fmt"
	"math"

	"colortrans/linalg"
	"colortrans/stats"

	"gonum.org/v1/gonum/mat"
)

// principalComponentMatch builds
//
//	transform = V_ref * diag(sqrt(l_ref / l_content)) * V_content^T
//
// with eigenvalues paired in ascending order. A non-positive content
// eigenvalue gives a non-finite scale and is left as is.
func principalComponentMatch(content, reference *mat.Dense, o options) (*mat.Dense, error) {
	muContent := stats.Mean(content)
	muReference := stats.Mean(reference)

	valContent, vecContent, err := linalg.Eigen(stats.Covariance(content))
	if err != nil {
		return nil, fmt.Errorf("could not decompose content covariance: %w", err)
	}
	valReference, vecReference, err := linalg.Eigen(stats.Covariance(reference))
	if err != nil {
		return nil, fmt.Errorf("could not decompose reference covariance: %w", err)
	}

	scaling := make([]float64, len(valContent))
	for i := range scaling {
		scaling[i] = math.Sqrt(valReference[i] / valContent[i])
	}

	var scaled, transform mat.Dense
	scaled.Mul(vecReference, mat.NewDiagDense(len(scaling), scaling))
	transform.Mul(&scaled, vecContent.T())

	return linearMap(content, muContent, &transform, muReference, o.workers), nil
}
