package scalebg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// solveLM runs a small Levenberg-Marquardt refit of the residual
// f_k(x) = (I_k - A*Ic_k - B)/Sigma_k, x = (A) or x = (A, B).
//
// The control flow — build J^T J and J^T f, solve (J^T J + mu I) h = g,
// accept the step when rho improves, otherwise grow mu — follows gonum's
// own optimize/nlls.LM, adapted to a fixed closed-form Jacobian (the
// problem is linear in A and B, so a single accepted step is already the
// least-squares optimum; the loop still runs to convergence/iteration cap
// like the reference instead of special-casing the closed form).
func solveLM(i, sigma, ic []float64, a0, b0 float64, findBackground bool) (a, b float64) {
	dim := 1
	if findBackground {
		dim = 2
	}
	n := len(i)

	jac := mat.NewDense(n, dim, nil)
	for k := 0; k < n; k++ {
		jac.Set(k, 0, -ic[k]/sigma[k])
		if dim == 2 {
			jac.Set(k, 1, -1/sigma[k])
		}
	}

	residual := func(x []float64) []float64 {
		r := make([]float64, n)
		for k := 0; k < n; k++ {
			bb := 0.0
			if dim == 2 {
				bb = x[1]
			}
			r[k] = (i[k] - x[0]*ic[k] - bb) / sigma[k]
		}
		return r
	}

	x := []float64{a0}
	if dim == 2 {
		x = []float64{a0, b0}
	}

	jtj := mat.NewDense(dim, dim, nil)
	jtj.Mul(jac.T(), jac)
	grad := mat.NewVecDense(dim, nil)

	const tau = 1e-3
	const maxIter = 50
	const eps1, eps2 = 1e-12, 1e-12

	f := residual(x)
	fVec := mat.NewVecDense(n, f)
	grad.MulVec(jac.T(), fVec)
	mu := tau * maxDiagElem(jtj)
	nu := 2.0

	h := mat.NewVecDense(dim, nil)
	for iter := 0; iter < maxIter; iter++ {
		if mat.Norm(grad, math.Inf(1)) <= eps1 {
			break
		}
		a2 := mat.NewDense(dim, dim, nil)
		for r := 0; r < dim; r++ {
			for c := 0; c < dim; c++ {
				a2.Set(r, c, jtj.At(r, c))
			}
		}
		addToDiag(a2, mu)
		if err := h.SolveVec(a2, grad); err != nil {
			break
		}
		if mat.Norm(h, 2) <= eps2*(norm2(x)+eps2) {
			break
		}
		xNew := make([]float64, dim)
		for d := 0; d < dim; d++ {
			xNew[d] = x[d] - h.AtVec(d)
		}
		fNew := residual(xNew)
		rho := rhoOf(f, fNew, h, grad, mu)
		if rho > 0 {
			x = xNew
			f = fNew
			fVec = mat.NewVecDense(n, f)
			grad.MulVec(jac.T(), fVec)
			mu *= math.Max(1.0/3.0, 1-math.Pow(2*rho-1, 3))
			nu = 2
		} else {
			mu *= nu
			nu *= 2
		}
	}

	a = x[0]
	if dim == 2 {
		b = x[1]
	}
	return a, b
}

func maxDiagElem(m *mat.Dense) float64 {
	r, _ := m.Dims()
	max := m.At(0, 0)
	for k := 1; k < r; k++ {
		if m.At(k, k) > max {
			max = m.At(k, k)
		}
	}
	return max
}

func addToDiag(m *mat.Dense, v float64) {
	r, _ := m.Dims()
	for k := 0; k < r; k++ {
		m.Set(k, k, m.At(k, k)+v)
	}
}

func norm2(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func rhoOf(f, fNew []float64, h, grad *mat.VecDense, mu float64) float64 {
	num := dotSelf(f) - dotSelf(fNew)
	tmp := mat.NewVecDense(h.Len(), nil)
	tmp.AddScaledVec(grad, mu, h)
	den := mat.Dot(h, tmp)
	if den == 0 {
		return 0
	}
	return num / den
}

func dotSelf(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}
