// Package gaussianchain implements the Debye form factor for a flexible,
// non-self-avoiding Gaussian polymer chain.
package gaussianchain

import (
	"math"

	"mcsas/scattermodel"
)

// Model fits the radius of gyration Rg; Bp (polymer scattering length),
// EtaS (solvent scattering length density) and K (volumetric scaling
// factor) are fixed scalars, matching the reference's default of
// activating only rg.
type Model struct {
	RgMin, RgMax float64 // defaults to (1, 1e2) if both zero
	Bp, EtaS, K  float64 // fixed; defaults 100, 1, 1 if all zero
}

func (m *Model) fixed() (bp, etaS, k float64) {
	bp, etaS, k = m.Bp, m.EtaS, m.K
	if bp == 0 && etaS == 0 && k == 0 {
		return 100, 1, 1
	}
	return bp, etaS, k
}

func (m *Model) rgParam() scattermodel.ActiveParam {
	lo, hi := m.RgMin, m.RgMax
	if lo == 0 && hi == 0 {
		lo, hi = 1, 1e2
	}
	return scattermodel.ActiveParam{Name: "rg", Min: lo, Max: hi, Sampling: scattermodel.Exponential}
}

func (m *Model) ActiveParams() []scattermodel.ActiveParam {
	return []scattermodel.ActiveParam{m.rgParam()}
}

func (m *Model) Sample(n int, rng scattermodel.Sampler) [][]float64 {
	vals := scattermodel.SampleBounded(m.rgParam(), n, rng)
	rows := make([][]float64, n)
	for i, v := range vals {
		rows[i] = []float64{v}
	}
	return rows
}

// FormFactor evaluates sqrt(2)*sqrt(expm1(-u)+u)/u * beta with
// u=(q*rg)^2, beta=bp-(k*rg^2)*etas, and beta at q=0
// (original_source/models/gaussianchain.py:52-59).
func (m *Model) FormFactor(q []float64, p []float64) []float64 {
	rg := p[0]
	bp, etaS, k := m.fixed()
	beta := bp - (k*rg*rg)*etaS

	out := make([]float64, len(q))
	for i, qv := range q {
		if qv <= 0 {
			out[i] = beta
			continue
		}
		u := (qv * rg) * (qv * rg)
		out[i] = math.Sqrt(2) * math.Sqrt(math.Expm1(-u)+u) / u * beta
	}
	return out
}

// Volume returns (k*rg^2)^alpha (original_source/models/gaussianchain.py:61-63).
func (m *Model) Volume(p []float64, alpha float64) float64 {
	rg := p[0]
	_, _, k := m.fixed()
	return math.Pow(k*rg*rg, alpha)
}

// Smear is the identity: the Gaussian chain model carries no resolution function.
func (m *Model) Smear(i []float64) []float64 { return i }
