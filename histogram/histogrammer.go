package histogram

import (
	"mcsas/repetition"
	"mcsas/scattermodel"
)

// Histogrammer turns an Ensemble into per-parameter Results.
type Histogrammer struct {
	Model                scattermodel.Model
	Q, I, Sigma          []float64
	CompensationExponent float64
	DeltaRhoSq           float64
	FindBackground       bool
}

// Run computes one Result per requested ParamSpec, sharing the
// per-repetition recompute (It/Vs, refit, fractions, observability) across
// all of them — the reference loops every active parameter against one
// shared per-repetition pass rather than repeating it.
func (h *Histogrammer) Run(ens *repetition.Ensemble, specs []ParamSpec) ([]*Result, error) {
	runs := ens.Completed()
	reps := len(runs)

	perRepResults := make([]*perRep, reps)
	for i, run := range runs {
		pr, err := computePerRep(run, h.Model, h.Q, h.I, h.Sigma, h.CompensationExponent, h.DeltaRhoSq, h.FindBackground)
		if err != nil {
			return nil, err
		}
		perRepResults[i] = pr
	}

	params := h.Model.ActiveParams()
	results := make([]*Result, len(specs))
	for si, spec := range specs {
		p := params[spec.Index]
		edges := edgesFor(p, spec.Bins, spec.Scale)

		volPerRep := make([][]float64, spec.Bins)
		numPerRep := make([][]float64, spec.Bins)
		minVolPerRep := make([][]float64, spec.Bins)
		minNumPerRep := make([][]float64, spec.Bins)
		for b := range volPerRep {
			volPerRep[b] = make([]float64, reps)
			numPerRep[b] = make([]float64, reps)
			minVolPerRep[b] = make([]float64, reps)
			minNumPerRep[b] = make([]float64, reps)
		}

		for ri, run := range runs {
			n := run.Contribs.N()
			vals := make([]float64, n)
			for c := 0; c < n; c++ {
				row := run.Contribs.Row(c)
				vals[c] = row[spec.Index]
			}
			pr := perRepResults[ri]
			volY, numY, minVolBin, minNumBin := buildOne(edges, vals, pr.VolFrac, pr.NumFrac, pr.MinReqVol, pr.MinReqNum)
			for b := 0; b < spec.Bins; b++ {
				volPerRep[b][ri] = volY[b]
				numPerRep[b][ri] = numY[b]
				minVolPerRep[b][ri] = minVolBin[b]
				minNumPerRep[b][ri] = minNumBin[b]
			}
		}

		volMean, volStd := ensembleStats(volPerRep)
		numMean, numStd := ensembleStats(numPerRep)
		minVol := make([]float64, spec.Bins)
		minNum := make([]float64, spec.Bins)
		widths := make([]float64, spec.Bins)
		centers := make([]float64, spec.Bins)
		for b := 0; b < spec.Bins; b++ {
			minVol[b] = maxIgnoringInf(minVolPerRep[b])
			minNum[b] = maxIgnoringInf(minNumPerRep[b])
			widths[b] = edges[b+1] - edges[b]
			centers[b] = (edges[b] + edges[b+1]) / 2
		}

		results[si] = &Result{
			Param:             p,
			Edges:             edges,
			Centers:           centers,
			Widths:            widths,
			YvolMean:          volMean,
			YvolStd:           volStd,
			YnumMean:          numMean,
			YnumStd:           numStd,
			MinRequiredVolume: minVol,
			MinRequiredNumber: minNum,
		}
	}
	return results, nil
}
