// Package kernel implements covariance kernels over scalar inputs,
// their descriptors for interactive exploration, sum and product
// combinators, and covariance matrix assembly.
package kernel

import (
	"fmt"
	"math"

	gpkernel "bitbucket.org/dtolpin/gogp/kernel"
)

// Kernel is a covariance function with fixed hyperparameters.
// Cov must be symmetric in its arguments.
type Kernel interface {
	Cov(x1, x2 float64) float64
}

// Factory constructs a kernel from positional hyperparameters.
// Omitted trailing parameters take the descriptor defaults.
type Factory func(params ...float64) (Kernel, error)

var (
	_ Kernel = SqExpKernel{}
	_ Kernel = Matern12Kernel{}
	_ Kernel = Matern32Kernel{}
	_ Kernel = Matern52Kernel{}
	_ Kernel = WhiteKernel{}
	_ Kernel = PeriodicKernel{}
	_ Kernel = LinearKernel{}
)

// bind fills in defaults and validates positional parameters
// against the parameter list of kernel name.
func bind(name string, params []Param, args []float64) ([]float64, error) {
	if len(args) > len(params) {
		return nil, fmt.Errorf("%s: got %d parameters, want at most %d: %w",
			name, len(args), len(params), ErrInvalidParameter)
	}
	values := make([]float64, len(params))
	for i, p := range params {
		v := p.Value
		if i < len(args) {
			v = args[i]
		}
		if err := p.Check(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		values[i] = v
	}
	return values, nil
}

// The squared-exponential kernel.
type SqExpKernel struct {
	Variance    float64
	Lengthscale float64
}

// SqExp takes variance and lengthscale.
func SqExp(params ...float64) (Kernel, error) {
	v, err := bind("sqexp", stationaryParams(), params)
	if err != nil {
		return nil, err
	}
	return SqExpKernel{Variance: v[0], Lengthscale: v[1]}, nil
}

func (k SqExpKernel) Cov(x1, x2 float64) float64 {
	return k.Variance * gpkernel.Normal.Cov(k.Lengthscale, x1, x2)
}

// The Matérn 1/2, or exponential, kernel.
type Matern12Kernel struct {
	Variance    float64
	Lengthscale float64
}

// Matern12 takes variance and lengthscale.
func Matern12(params ...float64) (Kernel, error) {
	v, err := bind("matern12", stationaryParams(), params)
	if err != nil {
		return nil, err
	}
	return Matern12Kernel{Variance: v[0], Lengthscale: v[1]}, nil
}

func (k Matern12Kernel) Cov(x1, x2 float64) float64 {
	return k.Variance * math.Exp(-math.Abs(x1-x2)/k.Lengthscale)
}

// The Matérn 3/2 kernel.
type Matern32Kernel struct {
	Variance    float64
	Lengthscale float64
}

// Matern32 takes variance and lengthscale.
func Matern32(params ...float64) (Kernel, error) {
	v, err := bind("matern32", stationaryParams(), params)
	if err != nil {
		return nil, err
	}
	return Matern32Kernel{Variance: v[0], Lengthscale: v[1]}, nil
}

func (k Matern32Kernel) Cov(x1, x2 float64) float64 {
	return k.Variance * gpkernel.Matern32.Cov(k.Lengthscale, x1, x2)
}

// The Matérn 5/2 kernel.
type Matern52Kernel struct {
	Variance    float64
	Lengthscale float64
}

// Matern52 takes variance and lengthscale.
func Matern52(params ...float64) (Kernel, error) {
	v, err := bind("matern52", stationaryParams(), params)
	if err != nil {
		return nil, err
	}
	return Matern52Kernel{Variance: v[0], Lengthscale: v[1]}, nil
}

// gogp's Matern52 truncates the 5/3 factor of the quadratic term,
// so this one is computed here.
func (k Matern52Kernel) Cov(x1, x2 float64) float64 {
	s := math.Sqrt(5) * math.Abs(x1-x2) / k.Lengthscale
	return k.Variance * (1 + s + s*s/3) * math.Exp(-s)
}

// WhiteKernel contributes only on the diagonal. Inputs are
// compared exactly.
type WhiteKernel struct {
	Variance float64
}

// White takes variance.
func White(params ...float64) (Kernel, error) {
	v, err := bind("white", whiteParams(), params)
	if err != nil {
		return nil, err
	}
	return WhiteKernel{Variance: v[0]}, nil
}

func (k WhiteKernel) Cov(x1, x2 float64) float64 {
	if x1 == x2 {
		return k.Variance
	}
	return 0
}

// The periodic kernel.
type PeriodicKernel struct {
	Variance    float64
	Lengthscale float64
	Period      float64
}

// Periodic takes variance, lengthscale and period.
func Periodic(params ...float64) (Kernel, error) {
	v, err := bind("periodic", periodicParams(), params)
	if err != nil {
		return nil, err
	}
	return PeriodicKernel{Variance: v[0], Lengthscale: v[1], Period: v[2]}, nil
}

func (k PeriodicKernel) Cov(x1, x2 float64) float64 {
	return k.Variance * gpkernel.Periodic.Cov(k.Lengthscale, k.Period, x1, x2)
}

// LinearKernel is non-stationary: it depends on the distance of
// each input from Center.
type LinearKernel struct {
	Variance float64
	Bias     float64
	Center   float64
}

// Linear takes variance, bias and center.
func Linear(params ...float64) (Kernel, error) {
	v, err := bind("linear", linearParams(), params)
	if err != nil {
		return nil, err
	}
	return LinearKernel{Variance: v[0], Bias: v[1], Center: v[2]}, nil
}

func (k LinearKernel) Cov(x1, x2 float64) float64 {
	// the product of offsets first, so that swapping the
	// arguments gives the same bits
	return k.Bias + k.Variance*((x1-k.Center)*(x2-k.Center))
}
