package kernel

import "fmt"

var (
	_ Kernel = Sum{}
	_ Kernel = Product{}
)

// Sum is the pointwise sum of its parts, reduced left to right.
// Build it with SumKernel; the zero Sum has no parts and
// evaluates to 0.
type Sum struct {
	parts []Kernel
}

// SumKernel combines one or more kernels by addition.
func SumKernel(ks ...Kernel) (Sum, error) {
	parts, err := combine(ks)
	if err != nil {
		return Sum{}, fmt.Errorf("sum: %w", err)
	}
	return Sum{parts: parts}, nil
}

// Parts returns a copy of the summands.
func (k Sum) Parts() []Kernel {
	return append([]Kernel(nil), k.parts...)
}

func (k Sum) Cov(x1, x2 float64) float64 {
	cov := 0.
	for _, part := range k.parts {
		cov += part.Cov(x1, x2)
	}
	return cov
}

// Product is the pointwise product of its parts, reduced left to
// right. Build it with ProductKernel; the zero Product has no
// parts and evaluates to 1.
type Product struct {
	parts []Kernel
}

// ProductKernel combines one or more kernels by multiplication.
func ProductKernel(ks ...Kernel) (Product, error) {
	parts, err := combine(ks)
	if err != nil {
		return Product{}, fmt.Errorf("product: %w", err)
	}
	return Product{parts: parts}, nil
}

// Parts returns a copy of the factors.
func (k Product) Parts() []Kernel {
	return append([]Kernel(nil), k.parts...)
}

func (k Product) Cov(x1, x2 float64) float64 {
	cov := 1.
	for _, part := range k.parts {
		cov *= part.Cov(x1, x2)
	}
	return cov
}

// combine checks and copies the parts of a combinator.
func combine(ks []Kernel) ([]Kernel, error) {
	if len(ks) == 0 {
		return nil, ErrEmptyCombinator
	}
	for i, k := range ks {
		if k == nil {
			return nil, fmt.Errorf("part %d: %w", i, ErrNilKernel)
		}
	}
	return append([]Kernel(nil), ks...), nil
}
