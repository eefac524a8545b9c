// Package repetition runs R independent McOptimizer repetitions and
// assembles their results into an Ensemble, the input to Histogrammer.
package repetition

import "mcsas/mcopt"

// Ensemble stacks R independent Run results: contribution tables, fitted
// curves and scale/background pairs, indexed by repetition number
// regardless of the order repetitions actually completed in. No ordering
// between repetitions is guaranteed; the driver stores results indexed by
// repetition number.
type Ensemble struct {
	Runs []*mcopt.Run // length R; a discarded repetition leaves a nil entry

	// Discarded counts repetitions abandoned to Nonconvergence after
	// exhausting retries.
	Discarded int

	// Cancelled is set if the driver stopped early on cooperative
	// cancellation; completed repetitions are still returned.
	Cancelled bool
}

// Completed returns the non-discarded runs, in repetition order.
func (e *Ensemble) Completed() []*mcopt.Run {
	out := make([]*mcopt.Run, 0, len(e.Runs))
	for _, r := range e.Runs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
