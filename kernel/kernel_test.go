package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tol = 1e-12

// Pairs of inputs every kernel is evaluated at.
var pairs = [][2]float64{
	{0, 0},
	{0, 1},
	{-1.5, 2.25},
	{3, -0.7},
	{10, 10.1},
	{1e-3, -1e-3},
	{-4, 7.5},
}

func near(a, b float64) bool {
	return floats.EqualWithinAbsOrRel(a, b, tol, tol)
}

func TestSymmetry(t *testing.T) {
	for _, d := range Descriptors() {
		k, err := d.Kernel()
		require.NoError(t, err, d.Name)
		for _, p := range pairs {
			a, b := k.Cov(p[0], p[1]), k.Cov(p[1], p[0])
			assert.Truef(t, near(a, b), "%s: k(%v, %v)=%v, k(%v, %v)=%v",
				d.Name, p[0], p[1], a, p[1], p[0], b)
		}
	}
}

func TestDefaults(t *testing.T) {
	for _, d := range Descriptors() {
		k0, err := d.Kernel()
		require.NoError(t, err, d.Name)
		k1, err := d.Kernel(d.Defaults()...)
		require.NoError(t, err, d.Name)
		assert.Equal(t, k0, k1, d.Name)
		for _, p := range pairs {
			assert.Equal(t, k0.Cov(p[0], p[1]), k1.Cov(p[0], p[1]),
				"%s at %v", d.Name, p)
		}
	}

	for _, c := range []struct {
		factory Factory
		want    Kernel
	}{
		{SqExp, SqExpKernel{Variance: 1, Lengthscale: 0.5}},
		{Matern12, Matern12Kernel{Variance: 1, Lengthscale: 0.5}},
		{Matern32, Matern32Kernel{Variance: 1, Lengthscale: 0.5}},
		{Matern52, Matern52Kernel{Variance: 1, Lengthscale: 0.5}},
		{White, WhiteKernel{Variance: 1}},
		{Periodic, PeriodicKernel{Variance: 1, Lengthscale: 0.5, Period: 2}},
		{Linear, LinearKernel{Variance: 1, Bias: 0, Center: 2}},
	} {
		k, err := c.factory()
		require.NoError(t, err)
		assert.Equal(t, c.want, k)
	}
}

func TestPartialDefaults(t *testing.T) {
	k, err := Periodic(1.5)
	require.NoError(t, err)
	assert.Equal(t, PeriodicKernel{Variance: 1.5, Lengthscale: 0.5, Period: 2}, k)

	k, err = Linear(2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, LinearKernel{Variance: 2, Bias: 0.5, Center: 2}, k)
}

func TestDiagonal(t *testing.T) {
	const variance = 1.7
	for _, factory := range []Factory{SqExp, Matern12, Matern32, Matern52, Periodic} {
		k, err := factory(variance, 0.8)
		require.NoError(t, err)
		for _, x := range []float64{-3, 0, 2.5, 1e6} {
			assert.Equal(t, variance, k.Cov(x, x), "%T at %v", k, x)
		}
	}
}

func TestWhite(t *testing.T) {
	k, err := White(0.3)
	require.NoError(t, err)
	for _, x := range []float64{-1, 0, 0.3, 42} {
		assert.Equal(t, 0.3, k.Cov(x, x))
		assert.Equal(t, 0., k.Cov(x, x+1e-9))
	}
	// inputs are compared exactly, without tolerance
	a, b := 0.1, 0.2
	assert.Equal(t, 0., k.Cov(a+b, 0.3))
	assert.Equal(t, 0.3, k.Cov(a+b, a+b))
}

func TestLinear(t *testing.T) {
	k, err := Linear(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6., k.Cov(2, 3))
	assert.Equal(t, 1., k.Cov(-1, -1))

	k, err = Linear(0.5, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1+0.5*2*(-3), k.Cov(3, -2))
	// non-stationary: same distance, different value
	assert.NotEqual(t, k.Cov(0, 1), k.Cov(5, 6))
}

func TestValues(t *testing.T) {
	s3 := math.Sqrt(3)
	s5 := math.Sqrt(5) / 2
	for i, c := range []struct {
		factory Factory
		params  []float64
		x1, x2  float64
		want    float64
	}{
		{SqExp, []float64{1, 1}, 0, 1, math.Exp(-0.5)},
		{SqExp, []float64{2, 0.5}, 1, -1, 2 * math.Exp(-8)},
		{Matern12, []float64{2, 0.5}, 0, 1, 2 * math.Exp(-2)},
		{Matern32, []float64{1, 1}, 0, 1, (1 + s3) * math.Exp(-s3)},
		{Matern52, []float64{1, 2}, 0, 1, (1 + s5 + s5*s5/3) * math.Exp(-s5)},
		{Periodic, []float64{1, 1, 2}, 0, 1, math.Exp(-2)},
		{Periodic, []float64{3, 1, 2}, 0, 2, 3},
		{Periodic, []float64{1, 0.7, 2}, 0.3, 6.3, 1},
	} {
		k, err := c.factory(c.params...)
		require.NoError(t, err)
		got := k.Cov(c.x1, c.x2)
		assert.InDelta(t, c.want, got, 1e-12, "%d: %T", i, k)
	}
}

func TestClosedForms(t *testing.T) {
	const (
		variance    = 1.3
		lengthscale = 0.7
		period      = 1.9
	)
	for _, c := range []struct {
		factory Factory
		params  []float64
		cov     func(d float64) float64
	}{
		{SqExp, []float64{variance, lengthscale}, func(d float64) float64 {
			return variance * math.Exp(-d*d/(2*lengthscale*lengthscale))
		}},
		{Matern12, []float64{variance, lengthscale}, func(d float64) float64 {
			return variance * math.Exp(-d/lengthscale)
		}},
		{Matern32, []float64{variance, lengthscale}, func(d float64) float64 {
			s := math.Sqrt(3) * d / lengthscale
			return variance * (1 + s) * math.Exp(-s)
		}},
		{Matern52, []float64{variance, lengthscale}, func(d float64) float64 {
			s := math.Sqrt(5) * d / lengthscale
			return variance * (1 + s + 5*d*d/(3*lengthscale*lengthscale)) * math.Exp(-s)
		}},
		{Periodic, []float64{variance, lengthscale, period}, func(d float64) float64 {
			sin := math.Sin(math.Pi * d / period)
			return variance * math.Exp(-2*sin*sin/(lengthscale*lengthscale))
		}},
	} {
		k, err := c.factory(c.params...)
		require.NoError(t, err)
		for _, p := range pairs {
			want := c.cov(math.Abs(p[0] - p[1]))
			assert.InDelta(t, want, k.Cov(p[0], p[1]), 1e-12, "%T at %v", k, p)
		}
	}
}

func TestPeriodicity(t *testing.T) {
	k, err := Periodic(1, 0.9, 1.3)
	require.NoError(t, err)
	for _, x := range []float64{0.1, 0.5, 2.2} {
		assert.InDelta(t, k.Cov(0, x), k.Cov(0, x+1.3), 1e-12)
		assert.InDelta(t, k.Cov(0, x), k.Cov(0, x+3*1.3), 1e-12)
	}
}

func TestInvalidParameter(t *testing.T) {
	for i, c := range []struct {
		factory Factory
		params  []float64
	}{
		{SqExp, []float64{1, 0}},
		{Matern12, []float64{1, 0}},
		{Matern32, []float64{1, -1}},
		{Matern52, []float64{1, 1e-4}},
		{Periodic, []float64{1, 0.5, 0}},
		{Periodic, []float64{1, 0, 2}},
		{SqExp, []float64{math.NaN()}},
		{SqExp, []float64{1, math.Inf(1)}},
		{SqExp, []float64{1, 1, 1}},
		{White, []float64{-0.1}},
		{Linear, []float64{1, -1}},
		{Linear, []float64{1, 0, math.Inf(-1)}},
	} {
		k, err := c.factory(c.params...)
		assert.ErrorIs(t, err, ErrInvalidParameter, "%d: %v", i, c.params)
		assert.Nil(t, k, "%d", i)
	}

	// zero variance and bias are admissible, the center is unbounded
	_, err := SqExp(0, 1)
	assert.NoError(t, err)
	_, err = Linear(0, 0, -100)
	assert.NoError(t, err)
}

func TestNonFiniteInputs(t *testing.T) {
	inf, nan := math.Inf(1), math.NaN()
	for _, d := range Descriptors() {
		k, err := d.Kernel()
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			for _, p := range [][2]float64{{inf, inf}, {nan, 0}, {-inf, inf}, {0, nan}} {
				k.Cov(p[0], p[1])
			}
		}, d.Name)
	}

	k, err := SqExp()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(k.Cov(nan, 0)))
	assert.True(t, math.IsNaN(k.Cov(inf, inf)))
	assert.Equal(t, 0., k.Cov(inf, 0))

	k, err = White()
	require.NoError(t, err)
	assert.Equal(t, 0., k.Cov(nan, nan))
}
