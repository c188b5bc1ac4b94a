package stationary

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// cholFactor bundles a Cholesky factorization with its explicit lower
// triangular factor, since the recursions need both whole-matrix solves
// and one-sided triangular solves against the same factor.
type cholFactor struct {
	chol  mat.Cholesky
	lower *mat.TriDense
}

// factorize computes the lower Cholesky factor of a, symmetrizing first so
// that accumulated round-off in the variance downdates cannot masquerade
// as asymmetry. The operand description is carried into the error when the
// matrix is not positive definite.
func factorize(a mat.Matrix, operand string) (*cholFactor, error) {
	f := &cholFactor{}
	if !f.chol.Factorize(symmetrize(a)) {
		return nil, fmt.Errorf("stationary: cholesky of %s: %w", operand, ErrNumericalDegeneracy)
	}

	n, _ := a.Dims()
	f.lower = mat.NewTriDense(n, mat.Lower, nil)
	f.chol.LTo(f.lower)
	return f, nil
}

// solve solves (L Lᵀ) x = b using the full factorization.
func (f *cholFactor) solve(b mat.Matrix) (*mat.Dense, error) {
	var x mat.Dense
	if err := f.chol.SolveTo(&x, b); err != nil {
		return nil, fmt.Errorf("stationary: cholesky solve: %w", err)
	}
	return &x, nil
}

// symmetrize averages a with its transpose into a SymDense.
func symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}

// identity returns the k×k identity matrix.
func identity(k int) *mat.Dense {
	m := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// cloneTranspose returns a dense copy of aᵀ.
func cloneTranspose(a mat.Matrix) *mat.Dense {
	var t mat.Dense
	t.CloneFrom(a.T())
	return &t
}
