package histogram

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"mcsas/scattermodel"
)

// Scale selects linear or logarithmic bin edges.
type Scale int

const (
	LinearScale Scale = iota
	LogScale
)

// Weighting selects which fraction a histogram reports.
type Weighting int

const (
	Volume Weighting = iota
	Number
)

// ParamSpec names one active parameter to histogram and how.
type ParamSpec struct {
	Index int // column in the parameter matrix / scattermodel.ActiveParams() order
	Bins  int
	Scale Scale
}

// Result is one active parameter's histogram: bin geometry, per-bin
// ensemble statistics for both weightings, and per-bin minimum-required
// fractions.
type Result struct {
	Param scattermodel.ActiveParam

	Edges, Centers, Widths []float64

	YvolMean, YvolStd []float64
	YnumMean, YnumStd []float64

	MinRequiredVolume []float64
	MinRequiredNumber []float64
}

func edgesFor(p scattermodel.ActiveParam, bins int, scale Scale) []float64 {
	edges := make([]float64, bins+1)
	switch scale {
	case LogScale:
		lo, hi := math.Log10(p.Min), math.Log10(p.Max)
		for b := range edges {
			edges[b] = math.Pow(10, lo+(hi-lo)*float64(b)/float64(bins))
		}
	default:
		for b := range edges {
			edges[b] = p.Min + (p.Max-p.Min)*float64(b)/float64(bins)
		}
	}
	return edges
}

// buildOne bins one repetition's per-contribution fractions and
// observability limits for one parameter into per-bin sums.
func buildOne(edges []float64, values, volFrac, numFrac, minReqVol, minReqNum []float64) (volY, numY, minVolBin, minNumBin []float64) {
	bins := len(edges) - 1
	volY = make([]float64, bins)
	numY = make([]float64, bins)
	minVolBin = make([]float64, bins)
	minNumBin = make([]float64, bins)

	for b := 0; b < bins; b++ {
		var vSum, nSum, vReqSum, nReqSum float64
		var count int
		for c, v := range values {
			if v >= edges[b] && v < edges[b+1] {
				vSum += volFrac[c]
				nSum += numFrac[c]
				vReqSum += minReqVol[c]
				nReqSum += minReqNum[c]
				count++
			}
		}
		if count > 0 {
			vReqSum /= float64(count)
			nReqSum /= float64(count)
		}
		if math.IsNaN(vSum) {
			vSum = 0
		}
		if math.IsNaN(nSum) {
			nSum = 0
		}
		volY[b] = vSum
		numY[b] = nSum
		minVolBin[b] = vReqSum
		minNumBin[b] = nReqSum
	}
	return volY, numY, minVolBin, minNumBin
}

// ensembleStats reduces per-repetition bin arrays (shape [bins][reps]) to
// mean/std across repetitions. The per-bin minimum-required reduction is
// maxIgnoringInf.
func ensembleStats(perRepY [][]float64) (mean, std []float64) {
	bins := len(perRepY)
	mean = make([]float64, bins)
	std = make([]float64, bins)
	for b := 0; b < bins; b++ {
		m, v := stat.MeanVariance(perRepY[b], nil)
		mean[b] = m
		std[b] = math.Sqrt(v)
	}
	return mean, std
}

func maxIgnoringInf(xs []float64) float64 {
	max := 0.0
	any := false
	for _, x := range xs {
		if math.IsInf(x, 1) {
			continue
		}
		if !any || x > max {
			max = x
			any = true
		}
	}
	return max
}
