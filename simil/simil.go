// Package simil adapts covariance kernels to similarity kernels
// of bitbucket.org/dtolpin/gogp with fixed hyperparameters.
package simil

import (
	"bitbucket.org/dtolpin/covkern/kernel"
	"gonum.org/v1/gonum/diff/fd"
)

var central = &fd.Settings{Formula: fd.Central}

// Simil is a gogp similarity kernel over scalar inputs. It has
// no hyperparameters of its own; they are fixed in Kernel.
// Gradient refers to the most recent Observe, so a Simil must
// not be shared between goroutines.
type Simil struct {
	Kernel kernel.Kernel
	xa, xb float64
}

// New returns a similarity kernel for k.
func New(k kernel.Kernel) *Simil {
	return &Simil{Kernel: k}
}

func (s *Simil) Observe(x []float64) float64 {
	const (
		xa = iota // first point
		xb        // second point
	)

	s.xa, s.xb = x[xa], x[xb]
	return s.Kernel.Cov(s.xa, s.xb)
}

// Gradient returns the derivatives with respect to both inputs,
// by central differences.
func (s *Simil) Gradient() []float64 {
	return []float64{
		fd.Derivative(func(x float64) float64 { return s.Kernel.Cov(x, s.xb) }, s.xa, central),
		fd.Derivative(func(x float64) float64 { return s.Kernel.Cov(s.xa, x) }, s.xb, central),
	}
}

func (*Simil) NTheta() int { return 0 }
