package histogram

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"mcsas/scattermodel"
)

func TestEdgesForLinearScale(t *testing.T) {
	p := scattermodel.ActiveParam{Min: 0, Max: 10}
	edges := edgesFor(p, 5, LinearScale)
	want := []float64{0, 2, 4, 6, 8, 10}
	if !floats.EqualApprox(edges, want, 1e-9) {
		t.Errorf("edgesFor linear = %v, want %v", edges, want)
	}
}

func TestEdgesForLogScale(t *testing.T) {
	p := scattermodel.ActiveParam{Min: 1, Max: 100}
	edges := edgesFor(p, 2, LogScale)
	want := []float64{1, 10, 100}
	if !floats.EqualApprox(edges, want, 1e-9) {
		t.Errorf("edgesFor log = %v, want %v", edges, want)
	}
}

func TestBuildOneBinsByValueRange(t *testing.T) {
	edges := []float64{0, 5, 10}
	values := []float64{1, 1, 6}
	volFrac := []float64{1, 2, 3}
	numFrac := []float64{10, 20, 30}
	minReqVol := []float64{0.1, 0.2, 0.3}
	minReqNum := []float64{1, 2, 3}

	volY, numY, minVol, minNum := buildOne(edges, values, volFrac, numFrac, minReqVol, minReqNum)

	if volY[0] != 3 || volY[1] != 3 {
		t.Errorf("volY = %v, want [3 3]", volY)
	}
	if numY[0] != 30 || numY[1] != 30 {
		t.Errorf("numY = %v, want [30 30]", numY)
	}
	if math.Abs(minVol[0]-0.15) > 1e-9 {
		t.Errorf("minVol[0] = %v, want the average 0.15", minVol[0])
	}
	if minNum[1] != 3 {
		t.Errorf("minNum[1] = %v, want 3 (single contributor, no averaging needed)", minNum[1])
	}
}

func TestEnsembleStatsComputesMeanAndStd(t *testing.T) {
	perRep := [][]float64{{1, 2, 3}, {10, 10, 10}}
	mean, std := ensembleStats(perRep)
	if math.Abs(mean[0]-2) > 1e-9 {
		t.Errorf("mean[0] = %v, want 2", mean[0])
	}
	if std[1] != 0 {
		t.Errorf("std[1] = %v, want 0 for a constant bin", std[1])
	}
}

func TestMaxIgnoringInfSkipsInfiniteEntries(t *testing.T) {
	xs := []float64{math.Inf(1), 3, 7, math.Inf(1)}
	if got := maxIgnoringInf(xs); got != 7 {
		t.Errorf("maxIgnoringInf = %v, want 7", got)
	}
}

func TestMaxIgnoringInfAllInfReturnsZero(t *testing.T) {
	xs := []float64{math.Inf(1), math.Inf(1)}
	if got := maxIgnoringInf(xs); got != 0 {
		t.Errorf("maxIgnoringInf = %v, want 0", got)
	}
}
