package dataset

// DataError reports a fatal problem with the input arrays: a length
// mismatch, a sigma that is non-positive after sanitation, or an empty
// dataset after masking. DataError is always returned before any MC
// optimization begins.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string { return "dataset: " + e.Reason }
