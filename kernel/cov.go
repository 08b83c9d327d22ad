package kernel

import (
	"gonum.org/v1/gonum/mat"
)

// CovMatrix returns the covariance matrix of k over xs. Only the
// upper triangle is evaluated; k is assumed to be symmetric. For
// empty xs the result is an empty matrix.
func CovMatrix(k Kernel, xs []float64) *mat.SymDense {
	n := len(xs)
	if n == 0 {
		return &mat.SymDense{}
	}
	K := mat.NewSymDense(n, nil)
	for i := 0; i != n; i++ {
		for j := i; j != n; j++ {
			K.SetSym(i, j, k.Cov(xs[i], xs[j]))
		}
	}
	return K
}

// CrossCov returns the len(xs)×len(ys) matrix of k(xs[i], ys[j]).
// All entries are evaluated. It returns nil if either sequence
// is empty.
func CrossCov(k Kernel, xs, ys []float64) *mat.Dense {
	if len(xs) == 0 || len(ys) == 0 {
		return nil
	}
	K := mat.NewDense(len(xs), len(ys), nil)
	for i, x := range xs {
		for j, y := range ys {
			K.Set(i, j, k.Cov(x, y))
		}
	}
	return K
}
