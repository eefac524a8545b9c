package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestNewSanitizesSigma(t *testing.T) {
	q := []float64{1, 2, 3}
	i := []float64{10, 20, 30}
	sigma := []float64{0, 0, 0.5}

	ds, err := New(q, i, sigma, Options{EMin: 0.1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := ds.Sigma()
	want := []float64{1, 2, 3}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Errorf("Sigma = %v, want %v", got, want)
	}
}

func TestNewMasksQRangeAndNegativeI(t *testing.T) {
	q := []float64{-1, 0, 1, 2, math.Inf(1)}
	i := []float64{5, 5, -5, 5, 5}
	sigma := []float64{1, 1, 1, 1, 1}

	ds, err := New(q, i, sigma, Options{MaskNegativeI: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ds.Len())
	}
	if got := ds.Q(); !floats.EqualApprox(got, []float64{0, 2}, 1e-12) {
		t.Errorf("Q = %v, want [0 2]", got)
	}
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := New([]float64{1, 2}, []float64{1}, []float64{1}, Options{})
	if err == nil {
		t.Fatal("expected a DataError")
	}
	if _, ok := err.(*DataError); !ok {
		t.Fatalf("got %T, want *DataError", err)
	}
}

func TestNewRejectsAllMasked(t *testing.T) {
	_, err := New([]float64{-1, -2}, []float64{1, 1}, []float64{1, 1}, Options{})
	if err == nil {
		t.Fatal("expected a DataError for all points masked")
	}
}

func TestMaskZeroI(t *testing.T) {
	q := []float64{1, 2, 3}
	i := []float64{0, 5, 0}
	sigma := []float64{1, 1, 1}

	ds, err := New(q, i, sigma, Options{MaskZeroI: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ds.Len())
	}
	if got := ds.I(); !floats.EqualApprox(got, []float64{5}, 1e-12) {
		t.Errorf("I = %v, want [5]", got)
	}
}
