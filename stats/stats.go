// Package stats computes per-channel statistics over pixel matrices, one row
// per observation and one column per channel.
//
// StdDev uses the population divisor N while Covariance uses the sample
// divisor N-1. Callers pick whichever their method was defined with.
package stats

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of each column.
func Mean(m mat.Matrix) []float64 {
	return columnwise(m, func(col []float64) float64 {
		return stat.Mean(col, nil)
	})
}

// StdDev returns the population standard deviation of each column.
func StdDev(m mat.Matrix) []float64 {
	return columnwise(m, func(col []float64) float64 {
		return stat.PopStdDev(col, nil)
	})
}

// Covariance returns the sample covariance matrix of the columns of m.
func Covariance(m mat.Matrix) *mat.SymDense {
	_, cols := m.Dims()
	cov := mat.NewSymDense(cols, nil)
	stat.CovarianceMatrix(cov, m, nil)
	return cov
}

func columnwise(m mat.Matrix, fn func([]float64) float64) []float64 {
	rows, cols := m.Dims()
	res := make([]float64, cols)
	col := make([]float64, rows)
	for c := range cols {
		mat.Col(col, c, m)
		res[c] = fn(col)
	}
	return res
}
