package histogram

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"mcsas/mcopt"
	"mcsas/repetition"
	"mcsas/scattermodel"
)

// Stat is an ensemble mean/sample-std (ddof=1) pair, the shape every
// Moments field is reported in.
type Stat struct{ Mean, Std float64 }

// Moments is the ensemble-averaged result of ComputeMoments over one
// sub-range [a,b] of one active parameter.
type Moments struct {
	Weight   Stat
	Mean     Stat
	Variance Stat
	Skewness Stat
	Kurtosis Stat

	// PartialIntensity is the per-q ensemble mean/std of A*It_subset/Vs_subset,
	// reporting per-repetition partial intensity as an ensemble mean/std.
	PartialIntensityMean []float64
	PartialIntensityStd  []float64
}

// ComputeMoments restricts each repetition to contributions whose parameter
// paramIndex lies in [a,b], computes the weighted total, mean, variance,
// skewness and kurtosis per repetition, and reports the ensemble mean and
// sample standard deviation of each.
func ComputeMoments(ens *repetition.Ensemble, model scattermodel.Model, q, i, sigma []float64, paramIndex int, a, b float64, weighting Weighting, compensationExponent, deltaRhoSq float64, findBackground bool) (*Moments, error) {
	runs := ens.Completed()
	reps := len(runs)

	val := make([]float64, reps)
	mu := make([]float64, reps)
	variance := make([]float64, reps)
	skew := make([]float64, reps)
	kurt := make([]float64, reps)
	partial := make([][]float64, reps)

	for ri, run := range runs {
		pr, err := computePerRep(run, model, q, i, sigma, compensationExponent, deltaRhoSq, findBackground)
		if err != nil {
			return nil, err
		}
		cs := run.Contribs
		n := cs.N()

		var subsetRows []int
		for c := 0; c < n; c++ {
			v := cs.Row(c)[paramIndex]
			if v >= a && v <= b {
				subsetRows = append(subsetRows, c)
			}
		}

		w := pr.VolFrac
		if weighting == Number {
			w = pr.NumFrac
		}

		var totalW float64
		for _, c := range subsetRows {
			totalW += w[c]
		}
		val[ri] = totalW
		if totalW == 0 {
			partial[ri] = make([]float64, len(q))
			continue
		}

		var meanV float64
		for _, c := range subsetRows {
			meanV += cs.Row(c)[paramIndex] * w[c]
		}
		meanV /= totalW
		mu[ri] = meanV

		var m2, m3, m4 float64
		for _, c := range subsetRows {
			p := cs.Row(c)[paramIndex]
			d := p - meanV
			m2 += d * d * w[c]
			m3 += d * d * d * w[c]
			m4 += d * d * d * d * w[c]
		}
		variance[ri] = m2 / totalW
		sigmaR := math.Sqrt(math.Abs(variance[ri]))
		if sigmaR > 0 {
			skew[ri] = (m3 / totalW) / (sigmaR * sigmaR * sigmaR)
			kurt[ri] = (m4 / totalW) / (sigmaR * sigmaR * sigmaR * sigmaR)
		}

		partial[ri] = partialIntensity(model, cs, q, subsetRows, compensationExponent, pr.Fit.A)
	}

	mv, mm, vv, sv, kv := statOf(val), statOf(mu), statOf(variance), statOf(skew), statOf(kurt)

	mPrime := len(q)
	pMean := make([]float64, mPrime)
	pStd := make([]float64, mPrime)
	for k := 0; k < mPrime; k++ {
		col := make([]float64, reps)
		for ri := range partial {
			col[ri] = partial[ri][k]
		}
		s := statOf(col)
		pMean[k] = s.Mean
		pStd[k] = s.Std
	}

	return &Moments{
		Weight: mv, Mean: mm, Variance: vv, Skewness: sv, Kurtosis: kv,
		PartialIntensityMean: pMean, PartialIntensityStd: pStd,
	}, nil
}

func statOf(xs []float64) Stat {
	if len(xs) == 0 {
		return Stat{}
	}
	if len(xs) == 1 {
		return Stat{Mean: xs[0]}
	}
	mean, variance := stat.MeanVariance(xs, nil)
	return Stat{Mean: mean, Std: math.Sqrt(variance)}
}

// partialIntensity computes A*It_subset/Vs_subset for the contributions in
// rows, smeared, matching the reference's "partial intensity contribution
// of range".
func partialIntensity(model scattermodel.Model, cs *mcopt.ContributionSet, q []float64, rows []int, alpha, a float64) []float64 {
	mPrime := len(q)
	it := make([]float64, mPrime)
	var vs float64
	for _, c := range rows {
		p := cs.Row(c)
		f := model.FormFactor(q, p)
		v := model.Volume(p, alpha)
		for k, fv := range f {
			it[k] += fv * fv * v * v
		}
		vs += v * v
	}
	smeared := model.Smear(it)
	if vs == 0 {
		return smeared
	}
	out := make([]float64, mPrime)
	for k, v := range smeared {
		out[k] = a * v / vs
	}
	return out
}
