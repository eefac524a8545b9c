package scattermodel

import "testing"

func TestSamplingModeString(t *testing.T) {
	cases := map[SamplingMode]string{
		Linear:           "linear",
		Log:              "log",
		Exponential:      "exponential",
		SamplingMode(99): "unknown",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("SamplingMode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}

// fixedSampler returns the same value from every call, enough to exercise
// SampleBounded's per-mode branches without needing real randomness.
type fixedSampler struct {
	uniform    float64
	logUniform float64
}

func (s fixedSampler) Uniform(a, b float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	v := s.uniform
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func (s fixedSampler) LogUniform(a, b float64) float64 {
	return s.logUniform
}

func TestSampleBoundedLinearUsesUniform(t *testing.T) {
	p := ActiveParam{Name: "r", Min: 1, Max: 10, Sampling: Linear}
	out := SampleBounded(p, 5, fixedSampler{uniform: 4})
	if len(out) != 5 {
		t.Fatalf("len(out) = %d, want 5", len(out))
	}
	for _, v := range out {
		if v != 4 {
			t.Errorf("got %v, want 4", v)
		}
	}
}

func TestSampleBoundedLogUsesLogUniform(t *testing.T) {
	p := ActiveParam{Name: "r", Min: 1, Max: 100, Sampling: Log}
	out := SampleBounded(p, 3, fixedSampler{logUniform: 10})
	for _, v := range out {
		if v != 10 {
			t.Errorf("got %v, want 10", v)
		}
	}
}

func TestSampleBoundedExponentialStaysWithinBounds(t *testing.T) {
	p := ActiveParam{Name: "rg", Min: 1, Max: 50, Sampling: Exponential}
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
		out := SampleBounded(p, 1, fixedSampler{uniform: u})
		v := out[0]
		if v < p.Min || v > p.Max {
			t.Errorf("u=%v: v=%v out of [%v,%v]", u, v, p.Min, p.Max)
		}
	}
}
