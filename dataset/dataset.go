// Package dataset holds the measured scattering curve consumed by the rest
// of mcsas. A Dataset is immutable once constructed: New sanitizes the raw
// arrays once, and every later stage reads the resulting masked subset.
package dataset

import "math"

// Dataset is a measured small-angle scattering curve together with its
// per-point uncertainty and the derived mask. The stored arrays have
// length M (the pre-mask length); the Q, I and Sigma accessors expose only
// the unmasked subset, length M'.
type Dataset struct {
	q     []float64
	i     []float64
	sigma []float64
	psi   []float64 // optional, nil for 1D datasets
	mask  []bool
}

// Options controls how New sanitizes a raw (q, I, σ) triple.
type Options struct {
	// Psi holds the optional orientation angle per point, for oriented 2D
	// reuse of the 1D core. Leave nil for ordinary 1D datasets.
	Psi []float64

	QMin, QMax     float64 // q_bounds; QMax<=0 means no upper bound
	PsiMin, PsiMax float64 // psi_bounds, ignored unless Psi is set

	MaskZeroI     bool // mask_zero_i
	MaskNegativeI bool // mask_negative_i

	// EMin is the relative error floor eMin in (0,1): sigma[i] is raised to
	// at least EMin*|I[i]|. Defaults to 0.01 when zero.
	EMin float64
}

// New builds a Dataset from raw, equal-length q, I and sigma arrays,
// applying the sanitation and masking rules of the data model: sigma is
// floored at EMin*|I|, and points are dropped for non-finite q, an optional
// I<=0 / I==0 rule, and the configured q/psi ranges.
//
// New returns a DataError if q, I and sigma disagree in length, if Psi is
// set but disagrees in length, if an unmasked point's sigma is still
// non-positive after the floor, or if no points survive masking.
func New(q, i, sigma []float64, opt Options) (*Dataset, error) {
	m := len(q)
	if len(i) != m || len(sigma) != m {
		return nil, &DataError{Reason: "q, I and sigma must have equal length"}
	}
	if opt.Psi != nil && len(opt.Psi) != m {
		return nil, &DataError{Reason: "psi must have the same length as q"}
	}
	eMin := opt.EMin
	if eMin <= 0 {
		eMin = 0.01
	}

	mask := make([]bool, m)
	sig := make([]float64, m)
	anyUnmasked := false
	for k := 0; k < m; k++ {
		keep := true
		if math.IsInf(q[k], 0) || math.IsNaN(q[k]) || q[k] < 0 {
			keep = false
		}
		if opt.QMax > 0 && (q[k] < opt.QMin || q[k] > opt.QMax) {
			keep = false
		} else if opt.QMin > 0 && q[k] < opt.QMin {
			keep = false
		}
		if opt.Psi != nil {
			if opt.PsiMax > opt.PsiMin && (opt.Psi[k] < opt.PsiMin || opt.Psi[k] > opt.PsiMax) {
				keep = false
			}
		}
		if opt.MaskZeroI && i[k] == 0 {
			keep = false
		}
		if opt.MaskNegativeI && i[k] < 0 {
			keep = false
		}

		floor := eMin * math.Abs(i[k])
		s := sigma[k]
		if s < floor {
			s = floor
		}
		if s <= 0 && keep {
			return nil, &DataError{Reason: "sigma is non-positive after sanitation"}
		}
		sig[k] = s
		mask[k] = keep
		anyUnmasked = anyUnmasked || keep
	}
	if !anyUnmasked {
		return nil, &DataError{Reason: "no points survive masking"}
	}

	return &Dataset{q: q, i: i, sigma: sig, psi: opt.Psi, mask: mask}, nil
}

// Q returns the masked subset of scattering vector magnitudes, length M'.
func (d *Dataset) Q() []float64 { return d.compact(d.q) }

// I returns the masked subset of measured intensities, length M'.
func (d *Dataset) I() []float64 { return d.compact(d.i) }

// Sigma returns the masked subset of sanitized uncertainties, length M'.
// Every entry is strictly positive.
func (d *Dataset) Sigma() []float64 { return d.compact(d.sigma) }

// Len returns M', the number of unmasked points.
func (d *Dataset) Len() int {
	n := 0
	for _, ok := range d.mask {
		if ok {
			n++
		}
	}
	return n
}

func (d *Dataset) compact(src []float64) []float64 {
	out := make([]float64, 0, len(src))
	for k, ok := range d.mask {
		if ok {
			out = append(out, src[k])
		}
	}
	return out
}
