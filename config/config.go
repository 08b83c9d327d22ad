// Package config loads kernel expressions and input locations
// from YAML.
//
// An expression node names exactly one of a registered kernel,
// a sum or a product:
//
//	sum:
//	  - kernel: sqexp
//	    params: {lengthscale: 0.3}
//	  - product:
//	      - kernel: periodic
//	      - kernel: linear
//	        params: {center: 0}
//	grid: {from: 0, to: 4, n: 41}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"bitbucket.org/dtolpin/covkern/kernel"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned for expressions and location sets
// that cannot be interpreted.
var ErrMalformed = errors.New("config: malformed")

// Expr is a kernel expression.
type Expr struct {
	Kernel  string             `yaml:"kernel,omitempty"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Sum     []Expr             `yaml:"sum,omitempty"`
	Product []Expr             `yaml:"product,omitempty"`
}

// Grid is an evenly spaced set of N locations from From to To
// inclusive.
type Grid struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	N    int     `yaml:"n"`
}

// Config is a kernel expression with optional input locations,
// given either explicitly or as a grid.
type Config struct {
	Expr      `yaml:",inline"`
	Locations []float64 `yaml:"locations,omitempty"`
	Grid      *Grid     `yaml:"grid,omitempty"`
}

// Parse decodes a configuration. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Build constructs the kernel the expression describes.
func (e Expr) Build() (kernel.Kernel, error) {
	kinds := 0
	if e.Kernel != "" {
		kinds++
	}
	if e.Sum != nil {
		kinds++
	}
	if e.Product != nil {
		kinds++
	}
	if kinds != 1 {
		return nil, fmt.Errorf("expression needs exactly one of kernel, sum, product: %w",
			ErrMalformed)
	}
	if e.Params != nil && e.Kernel == "" {
		return nil, fmt.Errorf("params without kernel: %w", ErrMalformed)
	}

	switch {
	case e.Kernel != "":
		d, err := kernel.Lookup(e.Kernel)
		if err != nil {
			return nil, err
		}
		return d.Bind(e.Params)
	case e.Sum != nil:
		parts, err := buildAll(e.Sum)
		if err != nil {
			return nil, fmt.Errorf("sum: %w", err)
		}
		k, err := kernel.SumKernel(parts...)
		if err != nil {
			return nil, err
		}
		return k, nil
	default:
		parts, err := buildAll(e.Product)
		if err != nil {
			return nil, fmt.Errorf("product: %w", err)
		}
		k, err := kernel.ProductKernel(parts...)
		if err != nil {
			return nil, err
		}
		return k, nil
	}
}

func buildAll(es []Expr) ([]kernel.Kernel, error) {
	ks := make([]kernel.Kernel, len(es))
	for i, e := range es {
		k, err := e.Build()
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}
		ks[i] = k
	}
	return ks, nil
}

// Points returns the input locations, or nil if the configuration
// gives none. An explicitly empty list is an error.
func (c *Config) Points() ([]float64, error) {
	switch {
	case c.Grid != nil && c.Locations != nil:
		return nil, fmt.Errorf("both locations and grid: %w", ErrMalformed)
	case c.Grid != nil:
		return c.Grid.Points()
	case c.Locations == nil:
		return nil, nil
	case len(c.Locations) == 0:
		return nil, fmt.Errorf("empty locations: %w", ErrMalformed)
	default:
		return append([]float64(nil), c.Locations...), nil
	}
}

// Points returns the grid locations.
func (g Grid) Points() ([]float64, error) {
	switch {
	case g.N < 1:
		return nil, fmt.Errorf("grid of %d points: %w", g.N, ErrMalformed)
	case g.N == 1:
		return []float64{g.From}, nil
	default:
		return floats.Span(make([]float64, g.N), g.From, g.To), nil
	}
}
