package mcopt

import "mcsas/scattermodel"

// swapStrategy is the Memsave toggle as a constructor-time strategy rather
// than an in-loop conditional: two implementations of the single-swap
// intensity update share this interface, and McOptimizer picks one at
// construction based on Config.Memsave.
type swapStrategy interface {
	// oldIntensity returns the current contribution r's intensity curve
	// I_r(q), recomputing it on the fly (Memsave) or reading the cached
	// array (full).
	oldIntensity(cs *ContributionSet, model scattermodel.Model, q []float64, r int) []float64

	// accept commits the accepted trial's intensity curve it for row r
	// (a no-op for Memsave, which keeps only the running total).
	accept(cs *ContributionSet, r int, it []float64)
}

// memsaveStrategy never stores per-contribution intensity curves; the cost
// of O(1)-per-move accounting is paid by recomputing the replaced
// contribution's curve from its stored parameters instead.
type memsaveStrategy struct{}

func (memsaveStrategy) oldIntensity(cs *ContributionSet, model scattermodel.Model, q []float64, r int) []float64 {
	p := cs.Row(r)
	f := model.FormFactor(q, p)
	v := cs.V[r]
	out := make([]float64, len(f))
	for i, fi := range f {
		out[i] = fi * fi * v * v
	}
	return out
}

func (memsaveStrategy) accept(cs *ContributionSet, r int, it []float64) {}

// fullStrategy keeps every contribution's intensity curve cached, trading
// memory (N×M') for skipping the replaced contribution's form-factor
// recomputation on every proposed swap.
type fullStrategy struct{}

func (fullStrategy) oldIntensity(cs *ContributionSet, model scattermodel.Model, q []float64, r int) []float64 {
	return cs.I[r]
}

func (fullStrategy) accept(cs *ContributionSet, r int, it []float64) {
	cs.I[r] = it
}
