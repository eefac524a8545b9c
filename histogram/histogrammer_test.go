package histogram

import (
	"math"
	"testing"

	"mcsas/mcopt"
	"mcsas/models/sphere"
	"mcsas/repetition"
)

func TestHistogrammerRunProducesBinsCoveringBounds(t *testing.T) {
	q := []float64{1e7, 5e7, 1e8, 2e8, 4e8}
	run1 := twoContributionRun(30, 60, q)
	run2 := twoContributionRun(35, 55, q)

	i := append([]float64(nil), run1.Contribs.It...)
	sigma := make([]float64, len(q))
	for k := range sigma {
		sigma[k] = 0.05 * math.Abs(i[k])
		if sigma[k] <= 0 {
			sigma[k] = 1e-12
		}
	}

	model := sphere.New()
	hg := &Histogrammer{Model: model, Q: q, I: i, Sigma: sigma, CompensationExponent: 0.5, DeltaRhoSq: 1, FindBackground: true}

	ens := &repetition.Ensemble{Runs: []*mcopt.Run{run1, run2}}
	specs := []ParamSpec{{Index: 0, Bins: 4, Scale: LogScale}}
	results, err := hg.Run(ens, specs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if len(r.Edges) != 5 || len(r.Centers) != 4 || len(r.YvolMean) != 4 {
		t.Fatalf("unexpected result shape: %+v", r)
	}
	p := model.ActiveParams()[0]
	if math.Abs(r.Edges[0]-p.Min) > 1e-9 || math.Abs(r.Edges[len(r.Edges)-1]-p.Max) > 1e-9 {
		t.Errorf("Edges should span the active parameter's bounds, got %v", r.Edges)
	}
}

func TestHistogrammerRunSkipsDiscardedRepetitions(t *testing.T) {
	q := []float64{1e7, 5e7, 1e8}
	run1 := twoContributionRun(30, 60, q)
	run2 := twoContributionRun(32, 58, q)

	i := append([]float64(nil), run1.Contribs.It...)
	sigma := make([]float64, len(q))
	for k := range sigma {
		sigma[k] = 0.05 * math.Abs(i[k])
		if sigma[k] <= 0 {
			sigma[k] = 1e-12
		}
	}

	model := sphere.New()
	hg := &Histogrammer{Model: model, Q: q, I: i, Sigma: sigma, CompensationExponent: 0.5, DeltaRhoSq: 1, FindBackground: true}

	// the nil slot is a repetition the driver discarded to Nonconvergence;
	// Run must skip it rather than panic on a nil Contribs.
	ens := &repetition.Ensemble{Runs: []*mcopt.Run{run1, nil, run2}, Discarded: 1}
	specs := []ParamSpec{{Index: 0, Bins: 3, Scale: LinearScale}}
	results, err := hg.Run(ens, specs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, s := range results[0].YvolStd {
		if math.IsNaN(s) {
			t.Errorf("YvolStd contains NaN: %v", results[0].YvolStd)
		}
	}
}
