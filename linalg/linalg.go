// Package linalg provides the small dense matrix operations used by the
// covariance based colour transfers.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrSingularMatrix = errors.New("singular matrix")
	ErrNoConvergence  = errors.New("eigendecomposition did not converge")
)

// MaxCondition is the largest 1-norm condition number Inverse accepts.
// Square roots of 8-bit covariances only get near it when a channel is
// constant or two channels are exactly collinear.
const MaxCondition = 1e6

// Eigen decomposes s into ascending eigenvalues and the matching eigenvectors,
// stored as the columns of the returned matrix. Each eigenvector is oriented
// so that its largest magnitude component is positive.
func Eigen(s mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(s, true); !ok {
		return nil, nil, ErrNoConvergence
	}

	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)
	orient(&vectors)

	return values, &vectors, nil
}

func orient(v *mat.Dense) {
	rows, cols := v.Dims()
	for c := range cols {
		best := 0
		for r := 1; r < rows; r++ {
			if math.Abs(v.At(r, c)) > math.Abs(v.At(best, c)) {
				best = r
			}
		}
		if v.At(best, c) < 0 {
			for r := range rows {
				v.Set(r, c, -v.At(r, c))
			}
		}
	}
}

// Sqrt returns V * diag(sqrt(values)) * V^T. Negative eigenvalues are not
// clamped and yield NaN entries.
func Sqrt(s mat.Symmetric) (*mat.Dense, error) {
	values, vectors, err := Eigen(s)
	if err != nil {
		return nil, err
	}

	roots := make([]float64, len(values))
	for i, v := range values {
		roots[i] = math.Sqrt(v)
	}

	var scaled, res mat.Dense
	scaled.Mul(vectors, mat.NewDiagDense(len(roots), roots))
	res.Mul(&scaled, vectors.T())
	return &res, nil
}

// Inverse returns the inverse of the square matrix a. ErrSingularMatrix is
// returned when a has non-finite entries or is too ill-conditioned to invert.
func Inverse(a mat.Matrix) (*mat.Dense, error) {
	rows, cols := a.Dims()
	if rows != cols {
		return nil, fmt.Errorf("cannot invert %dx%d matrix: not square", rows, cols)
	}
	for r := range rows {
		for c := range cols {
			if v := a.At(r, c); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite entry at (%d, %d)", ErrSingularMatrix, r, c)
			}
		}
	}

	var lu mat.LU
	lu.Factorize(a)
	if cond := lu.Cond(); math.IsNaN(cond) || cond > MaxCondition {
		return nil, fmt.Errorf("%w: condition number %g", ErrSingularMatrix, cond)
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularMatrix, err)
	}
	return &inv, nil
}

// InverseSqrt returns the inverse of Sqrt(s).
func InverseSqrt(s mat.Symmetric) (*mat.Dense, error) {
	root, err := Sqrt(s)
	if err != nil {
		return nil, err
	}
	return Inverse(root)
}
