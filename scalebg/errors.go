package scalebg

// NumericalFitError reports that the scale/background refit could not be
// performed: sigma contains a non-positive entry, or the model curve is
// identically zero.
type NumericalFitError struct {
	Reason string
}

func (e *NumericalFitError) Error() string { return "scalebg: " + e.Reason }
