package kernel

// Parameter templates. Each Make* function copies the templates
// it needs, so a descriptor never shares parameters with another
// descriptor or with the factory defaults.
var (
	paramVariance = Param{
		Name:          "variance",
		Formula:       `\sigma^2`,
		Value:         1.0,
		Min:           0.0,
		Max:           2.0,
		Step:          0.01,
		LowerBound:    0.0,
		HasLowerBound: true,
	}
	paramLengthscale = Param{
		Name:          "lengthscale",
		Formula:       `\ell`,
		Value:         0.5,
		Min:           0.05,
		Max:           1.5,
		Step:          0.01,
		LowerBound:    1e-3,
		HasLowerBound: true,
	}
	paramPeriod = Param{
		Name:          "period",
		Formula:       "p",
		Value:         2.0,
		Min:           0.1,
		Max:           10.0,
		Step:          0.01,
		LowerBound:    1e-3,
		HasLowerBound: true,
	}
	paramBias = Param{
		Name:          "bias",
		Formula:       `\sigma^2_b`,
		Value:         0.0,
		Min:           0.0,
		Max:           4.0,
		Step:          0.01,
		LowerBound:    0.0,
		HasLowerBound: true,
	}
	// The center may be anywhere on the real line.
	paramCenter = Param{
		Name:    "center",
		Formula: "x_c",
		Value:   2.0,
		Min:     -2.0,
		Max:     8.0,
		Step:    0.1,
	}
)

// Parameter lists in control order, per kernel.
func stationaryParams() []Param {
	return []Param{paramVariance, paramLengthscale}
}

func whiteParams() []Param {
	return []Param{paramVariance}
}

func periodicParams() []Param {
	return []Param{paramVariance, paramLengthscale, paramPeriod}
}

func linearParams() []Param {
	return []Param{paramVariance, paramBias, paramCenter}
}
