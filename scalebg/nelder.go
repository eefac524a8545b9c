package scalebg

import "gonum.org/v1/gonum/optimize"

// solveNelderMead runs gonum's own Nelder-Mead simplex method against the
// reduced chi-squared objective, used as the robust cold start (mode S).
// This is a direct use of gonum.org/v1/gonum/optimize.Minimize with
// &optimize.NelderMead{} — the same entry point gonum's own tests drive.
func solveNelderMead(i, sigma, ic []float64, a0, b0 float64, findBackground bool) (a, b float64) {
	dim := 1
	init := []float64{a0}
	if findBackground {
		dim = 2
		init = []float64{a0, b0}
	}

	obj := func(x []float64) float64 {
		aa := x[0]
		bb := 0.0
		if dim == 2 {
			bb = x[1]
		}
		return reducedChiSqr(i, sigma, ic, aa, bb)
	}

	problem := optimize.Problem{Func: obj}
	settings := &optimize.Settings{
		MajorIterations: 500,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 20,
		},
	}
	result, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if err != nil || result == nil {
		// Cold start failing is not fatal here: the caller's warm LM pass
		// still runs from the supplied initial guess.
		if dim == 2 {
			return a0, b0
		}
		return a0, 0
	}
	a = result.X[0]
	if dim == 2 {
		b = result.X[1]
	}
	return a, b
}
