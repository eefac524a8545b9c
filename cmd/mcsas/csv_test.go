package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"mcsas/histogram"
	"mcsas/scattermodel"
)

func TestWriteHistogramCSVRoundTrips(t *testing.T) {
	h := &histogram.Result{
		Param:             scattermodel.ActiveParam{Name: "radius", Min: 1, Max: 100},
		Centers:           []float64{10, 20},
		Widths:            []float64{5, 5},
		YvolMean:          []float64{0.1, 0.2},
		YvolStd:           []float64{0.01, 0.02},
		YnumMean:          []float64{1, 2},
		YnumStd:           []float64{0.1, 0.2},
		MinRequiredVolume: []float64{0.001, 0.002},
		MinRequiredNumber: []float64{0.01, 0.02},
	}

	path := filepath.Join(t.TempDir(), "hist.csv")
	if err := writeHistogramCSV(path, h); err != nil {
		t.Fatalf("writeHistogramCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (header + 2 bins)", len(rows))
	}
	if rows[0][0] != "radius_center" {
		t.Errorf("header[0] = %q, want %q", rows[0][0], "radius_center")
	}
	if rows[1][0] != "10" {
		t.Errorf("rows[1][0] = %q, want %q", rows[1][0], "10")
	}
}
