// Package sphere implements the spherical form factor, the simplest
// concrete scattermodel.Model.
package sphere

import (
	"math"

	"mcsas/scattermodel"
)

// Model is a single-parameter (radius) sphere form factor. Resolution
// smearing is the identity by default; a smeared variant would wrap Smear
// rather than add a field here.
type Model struct {
	RadiusMin, RadiusMax float64 // defaults to (1, 1e2) if both zero
}

// New returns a sphere Model with the reference's default radius bounds.
func New() *Model {
	return &Model{RadiusMin: 1, RadiusMax: 1e2}
}

func (m *Model) radiusParam() scattermodel.ActiveParam {
	lo, hi := m.RadiusMin, m.RadiusMax
	if lo == 0 && hi == 0 {
		lo, hi = 1, 1e2
	}
	return scattermodel.ActiveParam{Name: "radius", Min: lo, Max: hi, Sampling: scattermodel.Log}
}

func (m *Model) ActiveParams() []scattermodel.ActiveParam {
	return []scattermodel.ActiveParam{m.radiusParam()}
}

func (m *Model) Sample(n int, rng scattermodel.Sampler) [][]float64 {
	vals := scattermodel.SampleBounded(m.radiusParam(), n, rng)
	rows := make([][]float64, n)
	for i, v := range vals {
		rows[i] = []float64{v}
	}
	return rows
}

// FormFactor is 3*(sin(qr)-qr*cos(qr))/qr^3, with a Taylor substitute below
// qr=0.1 so the qr→0 limit (F=1) stays numerically stable instead of
// dividing by a near-zero cube (original_source/models/sphere.py:39).
func (m *Model) FormFactor(q []float64, p []float64) []float64 {
	r := p[0]
	out := make([]float64, len(q))
	for k, qv := range q {
		out[k] = sphereFF(qv * r)
	}
	return out
}

func sphereFF(qr float64) float64 {
	if math.Abs(qr) < 0.1 {
		x2 := qr * qr
		return 1 - x2/10 + x2*x2/280
	}
	return 3 * (math.Sin(qr) - qr*math.Cos(qr)) / (qr * qr * qr)
}

// Volume returns ((4/3)*pi*r^3)^alpha, the compensated sphere volume.
func (m *Model) Volume(p []float64, alpha float64) float64 {
	r := p[0]
	return math.Pow((4.0/3.0)*math.Pi*r*r*r, alpha)
}

// Smear is the identity: sphere carries no resolution function.
func (m *Model) Smear(i []float64) []float64 { return i }
