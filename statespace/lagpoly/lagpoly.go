// Package lagpoly represents lag polynomials and their companion matrices.
//
// A lag polynomial c(L) = c_0 + c_1 L + ... + c_p L^p may have scalar or
// square-matrix coefficients. Its companion matrix stacks the polynomial
// into first-order form; the eigenvalues of the companion matrix are the
// inverse roots of the polynomial, so a stationarity (or invertibility)
// check reduces to an eigenvalue modulus test.
//
// Note the sign convention: an AR(p) model
//
//	y_t = a_1 y_{t-1} + ... + a_p y_{t-p} + e_t
//
// is written c(L) y_t = e_t with c_0 = 1 and c_i = -a_i, and it is the c_i
// coefficients this package expects.
package lagpoly

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewTerms is returned when a polynomial has fewer than two terms;
	// a companion matrix requires order >= 1.
	ErrTooFewTerms = errors.New("lagpoly: polynomial must include at least two terms")

	// ErrDimensionMismatch is returned when matrix coefficients are not
	// square or do not share a common dimension.
	ErrDimensionMismatch = errors.New("lagpoly: coefficient matrices must be square with a common dimension")

	// ErrSingularLeading is returned when the leading coefficient matrix
	// cannot be inverted during companion matrix construction.
	ErrSingularLeading = errors.New("lagpoly: leading coefficient matrix is singular")

	// ErrEigenFailed is returned when the eigenvalue decomposition of the
	// companion matrix does not converge.
	ErrEigenFailed = errors.New("lagpoly: eigenvalue decomposition failed")
)

// Polynomial is an immutable lag polynomial with coefficients in order of
// increasing degree. The zero value is not useful; use one of the
// constructors.
type Polynomial struct {
	order  int
	dim    int
	coeffs []*mat.Dense // nil for Zero polynomials; coeffs[0] == nil marks an identity leading coefficient
}

// NewScalar builds a scalar lag polynomial from its coefficients.
func NewScalar(coeffs []float64) (Polynomial, error) {
	if len(coeffs) < 2 {
		return Polynomial{}, ErrTooFewTerms
	}

	ms := make([]*mat.Dense, len(coeffs))
	for i, c := range coeffs {
		ms[i] = mat.NewDense(1, 1, []float64{c})
	}

	return Polynomial{order: len(coeffs) - 1, dim: 1, coeffs: ms}, nil
}

// New builds a matrix lag polynomial. A nil entry at index 0 stands for the
// identity matrix, which lets Companion skip the leading-coefficient solve.
// The coefficients are not copied; callers must not mutate them afterwards.
func New(coeffs []*mat.Dense) (Polynomial, error) {
	if len(coeffs) < 2 {
		return Polynomial{}, ErrTooFewTerms
	}

	r, c := coeffs[1].Dims()
	if r != c {
		return Polynomial{}, ErrDimensionMismatch
	}

	for i, m := range coeffs {
		if m == nil {
			if i != 0 {
				return Polynomial{}, fmt.Errorf("lagpoly: nil coefficient at degree %d", i)
			}
			continue
		}

		mr, mc := m.Dims()
		if mr != r || mc != r {
			return Polynomial{}, ErrDimensionMismatch
		}
	}

	return Polynomial{order: len(coeffs) - 1, dim: r, coeffs: coeffs}, nil
}

// Zero builds an all-zero scalar polynomial of the given order. Its
// companion matrix is the bare shift matrix of size order.
func Zero(order int) (Polynomial, error) {
	if order < 1 {
		return Polynomial{}, ErrTooFewTerms
	}
	return Polynomial{order: order, dim: 1}, nil
}

// Order returns the polynomial degree p.
func (p Polynomial) Order() int { return p.order }

// Dim returns the coefficient dimension (1 for scalar polynomials).
func (p Polynomial) Dim() int { return p.dim }

// Companion returns the companion matrix of the polynomial: an n·m square
// matrix with ones on the m-shifted superdiagonal and the blocks
// -C_0^{-1} C_i' (scalar case: -c_i/c_0) stacked in the first block column.
func (p Polynomial) Companion() (*mat.Dense, error) {
	n, m := p.order, p.dim
	companion := mat.NewDense(n*m, n*m, nil)

	for i := 0; i < (n-1)*m; i++ {
		companion.Set(i, i+m, 1)
	}

	if p.coeffs == nil {
		return companion, nil
	}

	// Normalize by the leading coefficient once, then fill the first block
	// column with the transposed, negated coefficients.
	var normalized []*mat.Dense
	if p.coeffs[0] == nil {
		normalized = p.coeffs[1:]
	} else {
		normalized = make([]*mat.Dense, n)
		for i := 1; i <= n; i++ {
			var x mat.Dense
			if err := x.Solve(p.coeffs[0], p.coeffs[i]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSingularLeading, err)
			}
			normalized[i-1] = &x
		}
	}

	for i := 0; i < n; i++ {
		block := companion.Slice(i*m, (i+1)*m, 0, m).(*mat.Dense)
		for r := 0; r < m; r++ {
			for c := 0; c < m; c++ {
				block.Set(r, c, -normalized[i].At(c, r))
			}
		}
	}

	return companion, nil
}

// IsStable reports whether every eigenvalue of the companion matrix has
// modulus strictly less than threshold. Pass 1 for the classical unit
// circle criterion.
func (p Polynomial) IsStable(threshold float64) (bool, error) {
	companion, err := p.Companion()
	if err != nil {
		return false, err
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return false, ErrEigenFailed
	}

	for _, v := range eig.Values(nil) {
		if cmplx.Abs(v) >= threshold {
			return false, nil
		}
	}

	return true, nil
}
