package orchestrator

import (
	"testing"

	"mcsas/histogram"
)

func validConfig() Config {
	return Config{
		NumContribs:          50,
		NumReps:              3,
		MaxIterations:        1000,
		ConvergenceTarget:    1,
		MaxRetries:           2,
		CompensationExponent: 0.5,
		DeltaRhoSq:           1,
		EMin:                 0.01,
	}
}

func TestWithDefaultsFillsZeroValues(t *testing.T) {
	c := Config{}
	got := c.WithDefaults()
	if got.CompensationExponent != 0.5 {
		t.Errorf("CompensationExponent = %v, want 0.5", got.CompensationExponent)
	}
	if got.EMin != 0.01 {
		t.Errorf("EMin = %v, want 0.01", got.EMin)
	}
}

func TestWithDefaultsLeavesExplicitValues(t *testing.T) {
	c := Config{CompensationExponent: 1, EMin: 0.2}
	got := c.WithDefaults()
	if got.CompensationExponent != 1 || got.EMin != 0.2 {
		t.Errorf("WithDefaults overwrote explicit values: %+v", got)
	}
}

func TestValidateAcceptsAValidConfig(t *testing.T) {
	if err := validConfig().Validate(1); err != nil {
		t.Errorf("Validate returned an error for a valid config: %v", err)
	}
}

func TestValidateRejectsNonPositiveCounts(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.NumContribs = 0 },
		func(c *Config) { c.NumReps = 0 },
		func(c *Config) { c.MaxIterations = 0 },
		func(c *Config) { c.MaxRetries = -1 },
	}
	for idx, mutate := range cases {
		c := validConfig()
		mutate(&c)
		if err := c.Validate(1); err == nil {
			t.Errorf("case %d: expected an error", idx)
		}
	}
}

func TestValidateRejectsBadCompensationExponent(t *testing.T) {
	c := validConfig()
	c.CompensationExponent = 1.5
	if err := c.Validate(1); err == nil {
		t.Error("expected an error for compensation_exponent > 1")
	}
}

func TestValidateRejectsOutOfRangeHistogramParamIndex(t *testing.T) {
	c := validConfig()
	c.Histogram = []HistogramSpec{{ParamIndex: 5, Bins: 10, Scale: histogram.LinearScale}}
	if err := c.Validate(1); err == nil {
		t.Error("expected an error for an out-of-range histogram param index")
	}
}

func TestValidateRejectsUnknownHistogramScale(t *testing.T) {
	c := validConfig()
	c.Histogram = []HistogramSpec{{ParamIndex: 0, Bins: 10, Scale: histogram.Scale(99)}}
	if err := c.Validate(1); err == nil {
		t.Error("expected an error for an unknown histogram scale")
	}
}

func TestValidateRejectsInvertedMomentsRange(t *testing.T) {
	c := validConfig()
	c.MomentsRequests = []MomentsRequest{{ParamIndex: 0, Min: 10, Max: 5}}
	if err := c.Validate(1); err == nil {
		t.Error("expected an error for min >= max in a moments request")
	}
}

func TestValidateRejectsInvertedQBounds(t *testing.T) {
	c := validConfig()
	c.QBounds = [2]float64{10, 1}
	if err := c.Validate(1); err == nil {
		t.Error("expected an error for q_bounds min >= max")
	}
}

func TestConfigErrorMessageMentionsReason(t *testing.T) {
	err := &ConfigError{Reason: "something specific"}
	if err.Error() == "" {
		t.Fatal("Error() should not be empty")
	}
}
