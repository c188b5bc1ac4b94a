package stationary

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// constrainSV maps arbitrary square matrices A_i to matrices P_i with all
// singular values strictly less than one, via P = B⁻¹A where B is the
// lower Cholesky factor of I + AAᵀ (Ansley and Kohn, Lemma 2.2). The map
// is closed form and defined for every finite A.
func constrainSV(unconstrained []*mat.Dense) ([]*mat.Dense, error) {
	k, _ := unconstrained[0].Dims()
	eye := identity(k)

	constrained := make([]*mat.Dense, len(unconstrained))
	for i, a := range unconstrained {
		var g mat.Dense
		g.Mul(a, a.T())
		g.Add(eye, &g)

		f, err := factorize(&g, fmt.Sprintf("singular value constraint at lag %d", i+1))
		if err != nil {
			return nil, err
		}

		var p mat.Dense
		if err := p.Solve(f.lower, a); err != nil {
			return nil, fmt.Errorf("stationary: singular value constraint at lag %d: %w", i+1, err)
		}
		constrained[i] = &p
	}
	return constrained, nil
}

// unconstrainSV inverts [constrainSV], recovering A = B̃⁻¹P where B̃ is the
// lower Cholesky factor of I - PPᵀ. If any P_i has a singular value of one
// or more, I - PPᵀ is not positive definite and the call fails with
// [ErrNumericalDegeneracy].
func unconstrainSV(constrained []*mat.Dense) ([]*mat.Dense, error) {
	k, _ := constrained[0].Dims()
	eye := identity(k)

	unconstrained := make([]*mat.Dense, len(constrained))
	for i, p := range constrained {
		var g mat.Dense
		g.Mul(p, p.T())
		g.Sub(eye, &g)

		f, err := factorize(&g, fmt.Sprintf("singular value inverse at lag %d", i+1))
		if err != nil {
			return nil, err
		}

		var a mat.Dense
		if err := a.Solve(f.lower, p); err != nil {
			return nil, fmt.Errorf("stationary: singular value inverse at lag %d: %w", i+1, err)
		}
		unconstrained[i] = &a
	}
	return unconstrained, nil
}
