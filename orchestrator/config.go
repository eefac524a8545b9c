// Package orchestrator ties the collaborators together: it validates the
// Config once, wires RepetitionDriver and Histogrammer, and exposes the
// Results record (Data + Model → McOptimizer ×R → RepetitionDriver →
// Histogrammer → Results).
package orchestrator

import (
	"fmt"

	"mcsas/histogram"
	"mcsas/mcopt"
)

// HistogramSpec configures one active parameter's histogram. Both volume
// and number weightings are always reported on the resulting
// histogram.Result, matching the original's contribution table.
type HistogramSpec struct {
	ParamIndex int
	Bins       int
	Scale      histogram.Scale
}

// MomentsRequest configures one user-specified sub-range moments query.
type MomentsRequest struct {
	ParamIndex int
	Min, Max   float64
	Weighting  histogram.Weighting
}

// Config enumerates every user-facing option, collected into one immutable
// record passed by reference into the orchestrator rather than read from
// scattered globals.
type Config struct {
	NumContribs       int
	NumReps           int
	MaxIterations     int
	ConvergenceTarget float64
	MaxRetries        int

	CompensationExponent float64 // alpha, default 0.5
	DeltaRhoSq           float64

	StartFromMinimum bool
	FindBackground   bool
	Memsave          bool

	MaskZeroI     bool
	MaskNegativeI bool

	QBounds   [2]float64
	PsiBounds [2]float64

	Histogram       []HistogramSpec
	MomentsRequests []MomentsRequest

	EMin float64 // default 0.01
	Seed uint64

	VsUpdateRule mcopt.VsUpdateRule
	Concurrency  int
}

// WithDefaults returns a copy of cfg with zero-valued optional fields
// filled with their documented defaults.
func (c Config) WithDefaults() Config {
	if c.CompensationExponent == 0 {
		c.CompensationExponent = 0.5
	}
	if c.EMin == 0 {
		c.EMin = 0.01
	}
	return c
}

// Validate checks Config for invalid bounds, a non-positive count, an
// out-of-range histogram or moments parameter index, or an unknown
// histogram scale, returning a *ConfigError. Validate is called once,
// before any MC work begins.
func (c Config) Validate(numActiveParams int) error {
	if c.NumContribs < 1 {
		return &ConfigError{Reason: "num_contribs must be >= 1"}
	}
	if c.NumReps < 1 {
		return &ConfigError{Reason: "num_reps must be >= 1"}
	}
	if c.MaxIterations < 1 {
		return &ConfigError{Reason: "max_iterations must be >= 1"}
	}
	if c.ConvergenceTarget <= 0 {
		return &ConfigError{Reason: "convergence_target must be > 0"}
	}
	if c.MaxRetries < 0 {
		return &ConfigError{Reason: "max_retries must be >= 0"}
	}
	if c.CompensationExponent <= 0 || c.CompensationExponent > 1 {
		return &ConfigError{Reason: "compensation_exponent must be in (0,1]"}
	}
	if c.DeltaRhoSq <= 0 {
		return &ConfigError{Reason: "delta_rho_sq must be > 0"}
	}
	if c.EMin <= 0 || c.EMin >= 1 {
		return &ConfigError{Reason: "e_min must be in (0,1)"}
	}
	if c.QBounds[0] >= c.QBounds[1] && c.QBounds[1] != 0 {
		return &ConfigError{Reason: "q_bounds min must be < max"}
	}
	for _, h := range c.Histogram {
		if h.ParamIndex < 0 || h.ParamIndex >= numActiveParams {
			return &ConfigError{Reason: fmt.Sprintf("histogram param index %d out of range", h.ParamIndex)}
		}
		if h.Bins < 1 {
			return &ConfigError{Reason: "histogram bins must be >= 1"}
		}
		if h.Scale != histogram.LinearScale && h.Scale != histogram.LogScale {
			return &ConfigError{Reason: "unknown histogram scale"}
		}
	}
	for _, m := range c.MomentsRequests {
		if m.ParamIndex < 0 || m.ParamIndex >= numActiveParams {
			return &ConfigError{Reason: fmt.Sprintf("moments param index %d out of range", m.ParamIndex)}
		}
		if m.Min >= m.Max {
			return &ConfigError{Reason: "moments sub-range min must be < max"}
		}
	}
	return nil
}
