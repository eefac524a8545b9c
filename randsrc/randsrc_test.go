package randsrc

import (
	"math"
	"testing"
)

func TestUniformWithinBounds(t *testing.T) {
	s := New(42)
	for k := 0; k < 1000; k++ {
		v := s.Uniform(2, 5)
		if v < 2 || v >= 5 {
			t.Fatalf("Uniform(2,5) = %v, out of bounds", v)
		}
	}
}

func TestLogUniformWithinBounds(t *testing.T) {
	s := New(7)
	for k := 0; k < 1000; k++ {
		v := s.LogUniform(1, 100)
		if v < 1 || v > 100 {
			t.Fatalf("LogUniform(1,100) = %v, out of bounds", v)
		}
	}
}

func TestDeterministicForFixedSeed(t *testing.T) {
	a := New(123)
	b := New(123)
	for k := 0; k < 50; k++ {
		va, vb := a.Uniform(0, 1), b.Uniform(0, 1)
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", k, va, vb)
		}
	}
}

func TestIntnWithinRange(t *testing.T) {
	s := New(1)
	for k := 0; k < 1000; k++ {
		v := s.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d, out of range", v)
		}
	}
}

func TestLogUniformGuardsNonPositiveLowerBound(t *testing.T) {
	s := New(1)
	v := s.LogUniform(0, 10)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("LogUniform(0,10) = %v, want finite", v)
	}
}
