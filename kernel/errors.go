package kernel

import "errors"

var (
	// ErrInvalidParameter is returned by a factory when a parameter
	// is not finite, lies below its lower bound, or is not declared
	// by the kernel.
	ErrInvalidParameter = errors.New("kernel: invalid parameter")

	// ErrEmptyCombinator is returned by SumKernel and ProductKernel
	// when called without kernels.
	ErrEmptyCombinator = errors.New("kernel: empty combinator input")

	// ErrNilKernel is returned by SumKernel and ProductKernel when
	// a part is nil.
	ErrNilKernel = errors.New("kernel: nil kernel")

	// ErrUnknownKernel is returned by Lookup for a name not in the
	// registry.
	ErrUnknownKernel = errors.New("kernel: unknown kernel")

	// ErrMalformedDescriptor is returned by Descriptor.Validate.
	ErrMalformedDescriptor = errors.New("kernel: malformed descriptor")
)
