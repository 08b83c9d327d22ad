package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"bitbucket.org/dtolpin/covkern/config"
	"bitbucket.org/dtolpin/covkern/kernel"
	"bitbucket.org/dtolpin/covkern/simil"
	"bitbucket.org/dtolpin/gogp/gp"
	adkernel "bitbucket.org/dtolpin/gogp/kernel/ad"
	"bitbucket.org/dtolpin/infergo/ad"
	"go.uber.org/zap"
)

var (
	KERNEL = "sqexp"
	CONFIG = ""
	N      = 100
	STEP   = 0.1
	NOISE  = 1e-4
	SEED   = int64(0)
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Draw a sample path from a Gaussian process prior. Invocation:
	%s [OPTIONS] | head -100
The kernel is either a registered kernel with default parameters
(-kernel) or a YAML kernel expression (-config). Locations given
in the configuration take precedence over -n and -step.
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&KERNEL, "kernel", KERNEL, "kernel name")
	flag.StringVar(&CONFIG, "config", CONFIG, "kernel expression file")
	flag.IntVar(&N, "n", N, "number of points")
	flag.Float64Var(&STEP, "step", STEP, "distance between points")
	flag.Float64Var(&NOISE, "noise", NOISE, "observation noise")
	flag.Int64Var(&SEED, "seed", SEED, "random seed, 0 for time")
	ad.MTSafeOn()
}

// covariance returns the kernel and the locations to sample at.
func covariance() (kernel.Kernel, []float64, error) {
	if CONFIG == "" {
		d, err := kernel.Lookup(KERNEL)
		if err != nil {
			return nil, nil, err
		}
		k, err := d.Kernel()
		return k, grid(), err
	}

	c, err := config.Load(CONFIG)
	if err != nil {
		return nil, nil, err
	}
	k, err := c.Build()
	if err != nil {
		return nil, nil, err
	}
	xs, err := c.Points()
	if err != nil {
		return nil, nil, err
	}
	if xs == nil {
		xs = grid()
	}
	return k, xs, nil
}

func grid() []float64 {
	xs := make([]float64, N)
	for i := range xs {
		xs[i] = float64(i) * STEP
	}
	return xs
}

// sample draws y at each x conditioned on the values drawn so far.
func sample(g *gp.GP, rng *rand.Rand, xs <-chan float64, xys chan<- [2]float64) error {
	defer close(xys)
	for x := range xs {
		X := [][]float64{{x}}
		Y, Sigma, err := g.Produce(X)
		if err != nil {
			return fmt.Errorf("produce: %v", err)
		}
		y := Y[0] + Sigma[0]*rng.NormFloat64()
		xys <- [...]float64{x, y}
		X = append(g.X, X...)
		Y = append(g.Y, y)
		if err := g.Absorb(X, Y); err != nil {
			return fmt.Errorf("absorb: %v", err)
		}
	}
	return nil
}

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	k, locations, err := covariance()
	if err != nil {
		logger.Fatal("Failed to build kernel", zap.Error(err))
	}
	if SEED == 0 {
		SEED = time.Now().UTC().UnixNano()
	}
	logger.Info("Sampling",
		zap.String("kernel", fmt.Sprintf("%+v", k)),
		zap.Int("points", len(locations)),
		zap.Int64("seed", SEED))

	g := &gp.GP{
		NDim:  1,
		Simil: simil.New(k),
		Noise: adkernel.ConstantNoise(NOISE),
	}

	xs := make(chan float64, 1)
	xys := make(chan [2]float64, 1)
	go func() {
		defer close(xs)
		for _, x := range locations {
			xs <- x
		}
	}()
	errs := make(chan error, 1)
	go func() {
		errs <- sample(g, rand.New(rand.NewSource(SEED)), xs, xys)
	}()

	for xy := range xys {
		fmt.Printf("%f %f\n", xy[0], xy[1])
	}
	if err := <-errs; err != nil {
		logger.Fatal("Sampling failed", zap.Error(err))
	}
}
