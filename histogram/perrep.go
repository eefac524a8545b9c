// Package histogram turns an Ensemble of MC runs into the reported size
// distribution: per-contribution volume/number fractions, observability
// limits, per-parameter binning, and ensemble moments.
package histogram

import (
	"math"

	"mcsas/mcopt"
	"mcsas/scalebg"
	"mcsas/scattermodel"
)

// perRep is the authoritative, independent-of-the-optimizer recompute for
// one repetition: It/Vs recomputed fresh from the stored ContributionSet,
// (A,B) refit, then per-contribution volume/number fractions and
// observability.
type perRep struct {
	Fit       scalebg.Fit
	VolFrac   []float64 // length N
	NumFrac   []float64 // length N
	MinReqVol []float64 // length N
	MinReqNum []float64 // length N
	QStarIdx  []int     // length N, index of argmax_q I_i(q)/It(q)
}

func computePerRep(run *mcopt.Run, model scattermodel.Model, q, i, sigma []float64, alpha, deltaRhoSq float64, findBackground bool) (*perRep, error) {
	cs := run.Contribs
	n := cs.N()
	mPrime := len(q)

	it := make([]float64, mPrime)
	contribI := make([][]float64, n)
	vpa := make([]float64, n) // true geometric volume, alpha=1
	for c := 0; c < n; c++ {
		p := cs.Row(c)
		f := model.FormFactor(q, p)
		v := model.Volume(p, alpha)
		ic := make([]float64, mPrime)
		for k, fv := range f {
			ic[k] = fv * fv * v * v
			it[k] += ic[k]
		}
		contribI[c] = ic
		vpa[c] = model.Volume(p, 1)
	}
	smeared := model.Smear(it)

	sci := maxAbs(i) / maxAbs(smeared)
	bgi := minVal(i)
	fit, err := scalebg.Solve(i, sigma, smeared, scalebg.Fit{A: sci, B: bgi}, findBackground, scalebg.ModeL)
	if err != nil {
		return nil, err
	}

	volFrac := make([]float64, n)
	numFrac := make([]float64, n)
	var totalNum float64
	for c := 0; c < n; c++ {
		vsa := cs.V[c]
		volFrac[c] = fit.A * vsa * vsa / (vpa[c] * deltaRhoSq)
		numFrac[c] = volFrac[c] / vpa[c]
		totalNum += numFrac[c]
	}

	minReqVol := make([]float64, n)
	minReqNum := make([]float64, n)
	qStar := make([]int, n)
	for c := 0; c < n; c++ {
		best := 0
		bestRatio := -1.0
		minV := math.Inf(1)
		for k := 0; k < mPrime; k++ {
			if smeared[k] == 0 {
				continue
			}
			ratio := contribI[c][k] / smeared[k]
			if ratio > bestRatio {
				bestRatio = ratio
				best = k
			}
			if contribI[c][k] > 0 {
				cand := sigma[k] * volFrac[c] / (fit.A * contribI[c][k])
				if cand < minV {
					minV = cand
				}
			}
		}
		qStar[c] = best
		minReqVol[c] = minV
		minReqNum[c] = minV / vpa[c]
		if totalNum > 0 {
			numFrac[c] /= totalNum
			minReqNum[c] /= totalNum
		}
	}

	return &perRep{
		Fit:       fit,
		VolFrac:   volFrac,
		NumFrac:   numFrac,
		MinReqVol: minReqVol,
		MinReqNum: minReqNum,
		QStarIdx:  qStar,
	}, nil
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		av := v
		if av < 0 {
			av = -av
		}
		if av > m {
			m = av
		}
	}
	if m == 0 {
		return 1
	}
	return m
}

func minVal(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	m := x[0]
	for _, v := range x[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
