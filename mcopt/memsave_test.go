package mcopt

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"mcsas/models/sphere"
)

func TestFullStrategyOldIntensityReadsCache(t *testing.T) {
	m := sphere.New()
	cs := newContributionSet(2, 1, 4, false)
	cs.SetRow(0, []float64{10})
	cs.SetRow(1, []float64{20})
	cs.I[0] = []float64{1, 2, 3, 4}
	cs.I[1] = []float64{5, 6, 7, 8}

	got := fullStrategy{}.oldIntensity(cs, m, []float64{1, 2, 3, 4}, 1)
	if !floats.EqualApprox(got, cs.I[1], 0) {
		t.Errorf("oldIntensity = %v, want the cached row %v", got, cs.I[1])
	}
}

func TestFullStrategyAcceptUpdatesCache(t *testing.T) {
	cs := newContributionSet(2, 1, 3, false)
	newCurve := []float64{9, 9, 9}
	fullStrategy{}.accept(cs, 0, newCurve)
	if !floats.EqualApprox(cs.I[0], newCurve, 0) {
		t.Errorf("I[0] = %v, want %v", cs.I[0], newCurve)
	}
}

func TestMemsaveStrategyRecomputesFromParameters(t *testing.T) {
	m := sphere.New()
	cs := newContributionSet(1, 1, 4, true)
	cs.SetRow(0, []float64{50})
	cs.V[0] = m.Volume([]float64{50}, 0.5)

	q := []float64{1e7, 5e7, 1e8, 2e8}
	got := memsaveStrategy{}.oldIntensity(cs, m, q, 0)

	f := m.FormFactor(q, []float64{50})
	want := make([]float64, len(q))
	for i, fv := range f {
		want[i] = fv * fv * cs.V[0] * cs.V[0]
	}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Errorf("oldIntensity = %v, want %v", got, want)
	}
}

func TestMemsaveStrategyAcceptIsNoop(t *testing.T) {
	cs := newContributionSet(1, 1, 2, true)
	if cs.I != nil {
		t.Fatal("Memsave ContributionSet should have nil I")
	}
	memsaveStrategy{}.accept(cs, 0, []float64{1, 2})
	if cs.I != nil {
		t.Error("accept on a Memsave strategy must not allocate the I cache")
	}
}
