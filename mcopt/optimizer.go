// Package mcopt implements the MC contribution-swap optimizer: one
// independent run that proposes single-contribution swaps against a
// ContributionSet and accepts them on chi-squared improvement, with a
// nested ScaleBgFit refit at every trial.
package mcopt

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"mcsas/randsrc"
	"mcsas/scalebg"
	"mcsas/scattermodel"
)

// VsUpdateRule picks how Vs' is derived from a single-row swap: the
// reference's algebraic shortcut is exact only when the swapped row is the
// lone contributor to Σ V_i^2, but the reference applies it unconditionally.
// mcsas exposes both and defaults to the reference's rule so behavior
// matches McSAS.
type VsUpdateRule int

const (
	// VsReference reproduces the reference formula (√Vs − V[r])² + Vt²,
	// the default.
	VsReference VsUpdateRule = iota
	// VsExact recomputes Vs' = Vs − V[r]² + Vt² directly.
	VsExact
)

// Config holds the subset of the orchestrator's Config one McOptimizer run
// needs.
type Config struct {
	NumContribs          int
	MaxIterations        int
	ConvergenceTarget    float64
	CompensationExponent float64 // alpha, default 0.5
	FindBackground       bool
	Memsave              bool
	StartFromMinimum     bool
	QMax                 float64 // for the zero-lower-bound substitution
	VsUpdateRule         VsUpdateRule
}

// Run is the result of one McOptimizer.Run call.
type Run struct {
	Contribs   *ContributionSet
	Fit        scalebg.Fit
	FittedI    []float64 // Î(q) = smear(It/Vs)*A + B, final recompute
	Status     RunStatus
	Iterations int
	Moves      int
	StaleMoves int // non-accepted-move counter at termination, diagnostic only
}

// McOptimizer runs one MC optimization: it initializes a ContributionSet,
// proposes single-contribution swaps in round-robin order, and accepts
// each on chi-squared improvement.
type McOptimizer struct {
	Config Config
	Model  scattermodel.Model
	Q      []float64
	I      []float64
	Sigma  []float64
	Rng    *randsrc.Source

	// Prior, if non-nil, seeds the initial ContributionSet instead of a
	// fresh sample.
	Prior *ContributionSet

	// Cancel, if non-nil, is polled once per iteration for cooperative
	// cancellation.
	Cancel <-chan struct{}
}

// Run executes the MC optimization to completion and returns the final Run.
func (m *McOptimizer) Run() (*Run, error) {
	params := m.Model.ActiveParams()
	k := len(params)
	n := m.Config.NumContribs
	mPrime := len(m.Q)

	strategy := swapStrategy(fullStrategy{})
	if m.Config.Memsave {
		strategy = memsaveStrategy{}
	}

	cs, err := m.initialize(n, k, mPrime, params)
	if err != nil {
		return nil, err
	}

	sci := maxAbs(m.I) / maxAbs(cs.It)
	bgi := minVal(m.I)
	smearedIt := m.Model.Smear(cs.It)
	fit, err := scalebg.Solve(m.I, m.Sigma, divScalar(smearedIt, cs.Vs), scalebg.Fit{A: sci, B: bgi}, m.Config.FindBackground, scalebg.ModeS)
	if err != nil {
		return nil, err
	}
	fit, err = scalebg.Solve(m.I, m.Sigma, divScalar(smearedIt, cs.Vs), fit, m.Config.FindBackground, scalebg.ModeL)
	if err != nil {
		return nil, err
	}

	iterations, moves, stale := 0, 0, 0
	status := Converged
	if k > 0 && n > 1 {
	loop:
		for fit.ChiSqr > m.Config.ConvergenceTarget && iterations < m.Config.MaxIterations {
			select {
			case <-m.Cancel:
				status = Cancelled
				break loop
			default:
			}

			r := iterations % n
			pt := m.Model.Sample(1, m.Rng)[0]
			ft := m.Model.FormFactor(m.Q, pt)
			vt := m.Model.Volume(pt, m.Config.CompensationExponent)
			it := make([]float64, mPrime)
			floats.MulTo(it, ft, ft)
			floats.Scale(vt*vt, it)

			io := strategy.oldIntensity(cs, m.Model, m.Q, r)
			itNext := make([]float64, mPrime)
			floats.SubTo(itNext, cs.It, io)
			floats.Add(itNext, it)

			vOld := cs.V[r]
			var vsNext float64
			switch m.Config.VsUpdateRule {
			case VsExact:
				vsNext = cs.Vs - vOld*vOld + vt*vt
			default:
				vsNext = (math.Sqrt(cs.Vs)-vOld)*(math.Sqrt(cs.Vs)-vOld) + vt*vt
			}

			smeared := m.Model.Smear(itNext)
			trial, err := scalebg.Solve(m.I, m.Sigma, divScalar(smeared, vsNext), fit, m.Config.FindBackground, scalebg.ModeL)
			if err != nil {
				return nil, err
			}

			iterations++
			if trial.ChiSqr < fit.ChiSqr {
				cs.SetRow(r, pt)
				cs.V[r] = vt
				strategy.accept(cs, r, it)
				cs.It = itNext
				cs.Vs = vsNext
				fit = trial
				moves++
				stale = 0
			} else {
				stale++
			}
		}
		if status != Cancelled {
			if fit.ChiSqr <= m.Config.ConvergenceTarget {
				status = Converged
			} else {
				status = MaxIterations
			}
		}
	}

	finalSmeared := m.Model.Smear(divScalar(cs.It, cs.Vs))
	finalFitted := make([]float64, mPrime)
	floats.ScaleTo(finalFitted, fit.A, finalSmeared)
	floats.AddConst(fit.B, finalFitted)
	finalFit, err := scalebg.Solve(m.I, m.Sigma, finalSmeared, fit, m.Config.FindBackground, scalebg.ModeL)
	if err != nil {
		return nil, err
	}

	return &Run{
		Contribs:   cs,
		Fit:        finalFit,
		FittedI:    finalFitted,
		Status:     status,
		Iterations: iterations,
		Moves:      moves,
		StaleMoves: stale,
	}, nil
}

func (m *McOptimizer) initialize(n, k, mPrime int, params []scattermodel.ActiveParam) (*ContributionSet, error) {
	cs := newContributionSet(n, k, mPrime, m.Config.Memsave)

	switch {
	case m.Prior != nil:
		priorN := m.Prior.N()
		switch {
		case priorN == n:
			for i := 0; i < n; i++ {
				cs.SetRow(i, m.Prior.Row(i))
			}
		case priorN < n:
			// resize by random duplication: keep every prior row, fill the
			// remainder with random re-draws from the prior.
			for i := 0; i < priorN; i++ {
				cs.SetRow(i, m.Prior.Row(i))
			}
			for i := priorN; i < n; i++ {
				cs.SetRow(i, m.Prior.Row(m.Rng.Intn(priorN)))
			}
		default:
			// resize by random subselection of n distinct rows out of the
			// prior (partial Fisher-Yates shuffle of the row indices).
			idx := make([]int, priorN)
			for i := range idx {
				idx[i] = i
			}
			for i := 0; i < n; i++ {
				j := i + m.Rng.Intn(priorN-i)
				idx[i], idx[j] = idx[j], idx[i]
				cs.SetRow(i, m.Prior.Row(idx[i]))
			}
		}
	case m.Config.StartFromMinimum:
		for i := 0; i < n; i++ {
			row := make([]float64, k)
			for j, p := range params {
				mb := p.Min
				if mb == 0 {
					mb = math.Pi / m.Config.QMax / 2
				}
				row[j] = mb
			}
			cs.SetRow(i, row)
		}
	default:
		rows := m.Model.Sample(n, m.Rng)
		for i := 0; i < n; i++ {
			cs.SetRow(i, rows[i])
		}
	}

	for i := 0; i < n; i++ {
		p := cs.Row(i)
		v := m.Model.Volume(p, m.Config.CompensationExponent)
		cs.V[i] = v
		f := m.Model.FormFactor(m.Q, p)
		ii := make([]float64, mPrime)
		floats.MulTo(ii, f, f)
		floats.Scale(v*v, ii)
		floats.Add(cs.It, ii)
		if cs.I != nil {
			cs.I[i] = ii
		}
		cs.Vs += v * v
	}
	return cs, nil
}

func divScalar(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	floats.ScaleTo(out, 1/s, x)
	return out
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	if m == 0 {
		return 1
	}
	return m
}

func minVal(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	m := x[0]
	for _, v := range x[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
