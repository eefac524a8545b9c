// Package scattermodel defines the ScatteringModel contract. It is the
// abstract collaborator named in the design: a capability interface with
// four pure methods and a sampler, rather than the dynamic
// BOUNDS/FF/RAND/VOL/SMEAR dispatch-by-name it replaces. Concrete models
// (sphere, cylinder, Gaussian chain) implement it in the models/ packages;
// this package knows nothing about any particular shape.
package scattermodel

import "math"

// SamplingMode selects how ActiveParam.Sample draws a value within bounds.
type SamplingMode int

const (
	// Linear draws uniformly between Min and Max.
	Linear SamplingMode = iota
	// Log draws uniformly in log10-space between Min and Max. Min must be
	// strictly positive.
	Log
	// Exponential draws from an exponential distribution truncated to
	// [Min, Max], favoring small values — used by models whose natural
	// prior decays with size (e.g. polymer radii of gyration).
	Exponential
)

func (m SamplingMode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Log:
		return "log"
	case Exponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// ActiveParam describes one active (fitted) model parameter: its name, its
// bounds, and the distribution its values are drawn from.
type ActiveParam struct {
	Name     string
	Min, Max float64
	Sampling SamplingMode
}

// Model is the contract a concrete scattering model must satisfy to be
// used by the MC core. All methods must be pure (no hidden state, no
// dependence on call order) since RepetitionDriver may call them
// concurrently across repetitions.
type Model interface {
	// ActiveParams returns the ordered list of active parameter
	// descriptors. The order defines the column order of every N×k
	// parameter row the core produces or consumes.
	ActiveParams() []ActiveParam

	// Sample draws n rows of active parameters from rng, each sampled
	// per-parameter according to ActiveParams and clipped to bounds.
	Sample(n int, rng Sampler) [][]float64

	// FormFactor returns F(q; p) for one parameter row p, length len(q).
	// FormFactor must be finite as q→0; for shape-only models F(0)=1, but a
	// model whose parameters carry their own scattering amplitude (e.g. a
	// polymer's scattering length) may return that amplitude at q=0 instead.
	FormFactor(q []float64, p []float64) []float64

	// Volume returns V(p)^alpha for one parameter row p, where alpha is
	// the compensation exponent. Volume(p, 1) is the geometric scatterer
	// volume.
	Volume(p []float64, alpha float64) float64

	// Smear applies instrumental resolution convolution to a model
	// intensity curve. Smear is the identity for unsmeared models.
	Smear(i []float64) []float64
}

// Sampler is the minimal randomness contract Model.Sample needs; randsrc.Source
// implements it.
type Sampler interface {
	Uniform(a, b float64) float64
	LogUniform(a, b float64) float64
}

// SampleBounded draws n values for one ActiveParam from rng, a convenience
// shared by concrete models so each one doesn't reimplement the
// Linear/Log/Exponential switch.
func SampleBounded(p ActiveParam, n int, rng Sampler) []float64 {
	out := make([]float64, n)
	for i := range out {
		switch p.Sampling {
		case Log:
			out[i] = rng.LogUniform(p.Min, p.Max)
		case Exponential:
			// Truncated exponential via inverse-CDF of a uniform draw,
			// rate chosen so the mean sits at the bound midpoint.
			lambda := 2 / (p.Max - p.Min)
			u := rng.Uniform(0, 1)
			v := p.Min - (1/lambda)*logOneMinus(u)
			if v > p.Max {
				v = p.Max
			}
			if v < p.Min {
				v = p.Min
			}
			out[i] = v
		default:
			out[i] = rng.Uniform(p.Min, p.Max)
		}
	}
	return out
}

func logOneMinus(u float64) float64 {
	// ln(1-u), guarded away from the u=1 singularity.
	if u >= 1 {
		u = 1 - 1e-15
	}
	return math.Log(1 - u)
}
