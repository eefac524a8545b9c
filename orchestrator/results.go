package orchestrator

import (
	"math"

	"mcsas/histogram"
	"mcsas/mcopt"
	"mcsas/repetition"
)

// Results is the final report handed back to the caller: ensemble fit
// statistics, per-contribution state for every completed repetition, the
// requested histograms, and any requested sub-range moments.
type Results struct {
	// FittedIMean/FittedIStd are the ensemble mean/std of the final fitted
	// curve Î(q), one value per dataset point.
	FittedIMean []float64
	FittedIStd  []float64

	// ScaleMean/ScaleStd and BackgroundMean/BackgroundStd are the ensemble
	// statistics of the refit (A,B) pair.
	ScaleMean, ScaleStd           float64
	BackgroundMean, BackgroundStd float64

	Histograms []*histogram.Result
	Moments    []*histogram.Moments

	Completed int
	Discarded int
	Cancelled bool

	// Runs carries through every completed repetition's raw state, for
	// callers (the CLI's gob checkpoint) that need it verbatim.
	Runs []*mcopt.Run
}

func summarizeFits(ens *repetition.Ensemble) (fittedMean, fittedStd []float64, scaleMean, scaleStd, bgMean, bgStd float64) {
	runs := ens.Completed()
	if len(runs) == 0 {
		return nil, nil, 0, 0, 0, 0
	}
	mPrime := len(runs[0].FittedI)
	fittedMean = make([]float64, mPrime)
	fittedStd = make([]float64, mPrime)

	var scales, bgs []float64
	for _, r := range runs {
		scales = append(scales, r.Fit.A)
		bgs = append(bgs, r.Fit.B)
	}
	scaleMean, scaleStd = meanStd(scales)
	bgMean, bgStd = meanStd(bgs)

	for k := 0; k < mPrime; k++ {
		col := make([]float64, len(runs))
		for ri, r := range runs {
			col[ri] = r.FittedI[k]
		}
		m, s := meanStd(col)
		fittedMean[k] = m
		fittedStd[k] = s
	}
	return fittedMean, fittedStd, scaleMean, scaleStd, bgMean, bgStd
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))
	if len(xs) == 1 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}
