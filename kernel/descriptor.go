package kernel

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Param describes a scalar hyperparameter for display and
// control. Min, Max and Step are informational; kernel
// construction only enforces LowerBound, when HasLowerBound
// is set.
type Param struct {
	Name          string
	Formula       string
	Value         float64
	Min           float64
	Max           float64
	Step          float64
	LowerBound    float64
	HasLowerBound bool
}

// Check returns an error wrapping ErrInvalidParameter if v is not
// an admissible value of the parameter.
func (p Param) Check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s=%v is not finite: %w", p.Name, v, ErrInvalidParameter)
	}
	if p.HasLowerBound && v < p.LowerBound {
		return fmt.Errorf("%s=%v is below lower bound %v: %w",
			p.Name, v, p.LowerBound, ErrInvalidParameter)
	}
	return nil
}

type paramYAML struct {
	Name       string   `yaml:"name"`
	Formula    string   `yaml:"formula"`
	Value      float64  `yaml:"value"`
	Min        float64  `yaml:"min"`
	Max        float64  `yaml:"max"`
	Step       float64  `yaml:"step"`
	LowerBound *float64 `yaml:"lowerBound,omitempty"`
}

// MarshalYAML omits the lower bound of unbounded parameters.
func (p Param) MarshalYAML() (interface{}, error) {
	out := paramYAML{
		Name:    p.Name,
		Formula: p.Formula,
		Value:   p.Value,
		Min:     p.Min,
		Max:     p.Max,
		Step:    p.Step,
	}
	if p.HasLowerBound {
		lb := p.LowerBound
		out.LowerBound = &lb
	}
	return out, nil
}

// Descriptor bundles a kernel factory with its display metadata.
// Formula is LaTeX for display only.
type Descriptor struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Formula     string  `yaml:"formula"`
	Params      []Param `yaml:"parameters"`
	Kernel      Factory `yaml:"-"`
}

// Defaults returns the default parameter values in control order.
func (d Descriptor) Defaults() []float64 {
	values := make([]float64, len(d.Params))
	for i, p := range d.Params {
		values[i] = p.Value
	}
	return values
}

// Bind constructs a kernel from named parameter values. Parameters
// not named take the Value of the descriptor's parameter.
func (d Descriptor) Bind(values map[string]float64) (Kernel, error) {
	args := d.Defaults()
	known := make(map[string]bool, len(d.Params))
	for i, p := range d.Params {
		known[p.Name] = true
		if v, ok := values[p.Name]; ok {
			args[i] = v
		}
	}
	var unknown []string
	for name := range values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%s: unknown parameters %s: %w",
			d.Name, strings.Join(unknown, ", "), ErrInvalidParameter)
	}
	return d.Kernel(args...)
}

// Validate checks that parameter names are unique, defaults lie
// within their ranges and lower bounds do not exceed the ranges.
func (d Descriptor) Validate() error {
	if d.Kernel == nil {
		return fmt.Errorf("%s: no factory: %w", d.Name, ErrMalformedDescriptor)
	}
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		switch {
		case seen[p.Name]:
			return fmt.Errorf("%s: duplicate parameter %s: %w",
				d.Name, p.Name, ErrMalformedDescriptor)
		case !(p.Min <= p.Value && p.Value <= p.Max):
			return fmt.Errorf("%s: %s=%v outside [%v, %v]: %w",
				d.Name, p.Name, p.Value, p.Min, p.Max, ErrMalformedDescriptor)
		case p.HasLowerBound && p.LowerBound > p.Min:
			return fmt.Errorf("%s: %s lower bound %v above min %v: %w",
				d.Name, p.Name, p.LowerBound, p.Min, ErrMalformedDescriptor)
		case !(p.Step > 0):
			return fmt.Errorf("%s: %s step %v is not positive: %w",
				d.Name, p.Name, p.Step, ErrMalformedDescriptor)
		}
		seen[p.Name] = true
	}
	return nil
}

func MakeSqExp() Descriptor {
	return Descriptor{
		Name:        "sqexp",
		Description: "Squared-exponential",
		Formula:     `\sigma^2 \exp\Big(-\frac{(x-x')^2}{2\ell^2}\Big)`,
		Params:      stationaryParams(),
		Kernel:      SqExp,
	}
}

func MakeMatern12() Descriptor {
	return Descriptor{
		Name:        "matern12",
		Description: "Matérn 1/2 (Exponential)",
		Formula:     `\sigma^2 \exp\Big(-\frac{|x-x'|}{\ell}\Big)`,
		Params:      stationaryParams(),
		Kernel:      Matern12,
	}
}

func MakeMatern32() Descriptor {
	return Descriptor{
		Name:        "matern32",
		Description: "Matérn 3/2",
		Formula: `\sigma^2 \big( 1 + \frac{\sqrt{3} |x-x'|}{\ell} \big) ` +
			`\exp\Big(-\frac{\sqrt{3} |x-x'|}{\ell}\Big)`,
		Params: stationaryParams(),
		Kernel: Matern32,
	}
}

func MakeMatern52() Descriptor {
	return Descriptor{
		Name:        "matern52",
		Description: "Matérn 5/2",
		Formula: `\sigma^2 \big( 1 + \frac{\sqrt{5} |x-x'|}{\ell} + \frac{5 (x-x')^2}{3 \ell^2} \big) ` +
			`\exp\Big(-\frac{\sqrt{5} |x-x'|}{\ell}\Big)`,
		Params: stationaryParams(),
		Kernel: Matern52,
	}
}

func MakeWhite() Descriptor {
	return Descriptor{
		Name:        "white",
		Description: "White Noise",
		Formula:     `\sigma^2 \mathbb{1}\{x=x'\}`,
		Params:      whiteParams(),
		Kernel:      White,
	}
}

func MakePeriodic() Descriptor {
	return Descriptor{
		Name:        "periodic",
		Description: "Periodic",
		Formula:     `\sigma^2 \exp\Big(- 2 \frac{\sin^2(\pi |x-x'|/p)}{\ell^2}\Big)`,
		Params:      periodicParams(),
		Kernel:      Periodic,
	}
}

func MakeLinear() Descriptor {
	return Descriptor{
		Name:        "linear",
		Description: "Linear",
		Formula:     `\sigma^2 (x - x_c)(x' - x_c) + \sigma^2_b`,
		Params:      linearParams(),
		Kernel:      Linear,
	}
}

// registry in display order
var registry = []func() Descriptor{
	MakeSqExp,
	MakeMatern12,
	MakeMatern32,
	MakeMatern52,
	MakeWhite,
	MakePeriodic,
	MakeLinear,
}

// Descriptors returns fresh descriptors of all kernels in display
// order.
func Descriptors() []Descriptor {
	ds := make([]Descriptor, len(registry))
	for i, mk := range registry {
		ds[i] = mk()
	}
	return ds
}

// Names returns the registry names in display order.
func Names() []string {
	names := make([]string, len(registry))
	for i, mk := range registry {
		names[i] = mk().Name
	}
	return names
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, error) {
	for _, mk := range registry {
		if d := mk(); d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%q: %w", name, ErrUnknownKernel)
}
