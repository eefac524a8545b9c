package mcopt

import "gonum.org/v1/gonum/mat"

// ContributionSet is a single MC state: an N×k array of active-parameter
// rows, one per contribution, plus the auxiliary arrays the optimizer keeps
// in lockstep with it.
type ContributionSet struct {
	P *mat.Dense // N×k parameter rows

	V []float64 // per-contribution compensated volume V_i = V(p_i, alpha), length N

	// I holds per-contribution intensity curves (length N, each length M').
	// It is nil in Memsave mode, where only the running total It is kept.
	I [][]float64

	It []float64 // total intensity Σ_i I_i(q), length M'
	Vs float64   // Σ_i V_i^2
}

func newContributionSet(n, k, mPrime int, memsave bool) *ContributionSet {
	cs := &ContributionSet{
		P:  mat.NewDense(n, k, nil),
		V:  make([]float64, n),
		It: make([]float64, mPrime),
	}
	if !memsave {
		cs.I = make([][]float64, n)
		for i := range cs.I {
			cs.I[i] = make([]float64, mPrime)
		}
	}
	return cs
}

// N returns the number of contributions.
func (c *ContributionSet) N() int { r, _ := c.P.Dims(); return r }

// K returns the number of active parameters.
func (c *ContributionSet) K() int { _, k := c.P.Dims(); return k }

// Row returns a copy of contribution i's parameter row.
func (c *ContributionSet) Row(i int) []float64 {
	k := c.K()
	row := make([]float64, k)
	mat.Row(row, i, c.P)
	return row
}

// SetRow overwrites contribution i's parameter row.
func (c *ContributionSet) SetRow(i int, p []float64) {
	c.P.SetRow(i, p)
}

// Clone makes a deep copy that shares no storage with the original.
func (c *ContributionSet) Clone() *ContributionSet {
	n, k := c.P.Dims()
	out := &ContributionSet{
		P:  mat.NewDense(n, k, nil),
		V:  append([]float64(nil), c.V...),
		It: append([]float64(nil), c.It...),
		Vs: c.Vs,
	}
	out.P.Copy(c.P)
	if c.I != nil {
		out.I = make([][]float64, n)
		for i := range c.I {
			out.I[i] = append([]float64(nil), c.I[i]...)
		}
	}
	return out
}
