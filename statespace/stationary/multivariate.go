package stationary

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNumericalDegeneracy is returned when a required Cholesky
	// factorization fails because an intermediate matrix is not positive
	// definite. This arises from near-unit-root input, ill-conditioning,
	// or order and dimension large enough that the internal variance
	// inflation is insufficient.
	ErrNumericalDegeneracy = errors.New("stationary: numerically degenerate input")

	// ErrNoCoefficients is returned when a multivariate transform is
	// called with an empty coefficient sequence.
	ErrNoCoefficients = errors.New("stationary: at least one coefficient matrix is required")

	// ErrDimensionMismatch is returned when the coefficient matrices and
	// the variance matrix do not share a common square dimension.
	ErrDimensionMismatch = errors.New("stationary: coefficient and variance dimensions do not match")

	// ErrStackedShape is returned when a stacked coefficient matrix's
	// column count is not a positive multiple of its row count.
	ErrStackedShape = errors.New("stationary: stacked coefficients must have shape (k, order*k)")
)

// ConstrainMultivariate transforms arbitrary square matrices into the
// coefficient matrices of a stationary vector autoregression (or, applied
// to moving-average parameters, an invertible one).
//
// The input matrices are first mapped to partial autocorrelation matrices
// with singular values below one, then through the Ansley-Kohn recursion
// to stationary coefficients. The error variance is required input even
// when it is not transformed. With transformVariance false (the usual
// setting) the returned variance is the input variance, with which the
// returned coefficients are consistent; with transformVariance true the
// recursion's own output variance is returned instead.
func ConstrainMultivariate(coefficients []*mat.Dense, variance *mat.SymDense, transformVariance bool) ([]*mat.Dense, *mat.SymDense, error) {
	if err := checkMultivariateArgs(coefficients, variance); err != nil {
		return nil, nil, err
	}

	pacf, err := constrainSV(coefficients)
	if err != nil {
		return nil, nil, err
	}
	return coefficientsFromPACF(pacf, variance, transformVariance)
}

// UnconstrainMultivariate inverts [ConstrainMultivariate]: it maps
// stationary coefficient matrices back to the arbitrary matrices the
// optimizer searches over. The error variance is passed through unchanged.
//
// The input must lie strictly inside the stationarity region; coefficient
// matrices on or outside the boundary fail with [ErrNumericalDegeneracy].
func UnconstrainMultivariate(coefficients []*mat.Dense, variance *mat.SymDense) ([]*mat.Dense, *mat.SymDense, error) {
	if err := checkMultivariateArgs(coefficients, variance); err != nil {
		return nil, nil, err
	}

	pacf, err := pacfFromCoefficients(coefficients, variance)
	if err != nil {
		return nil, nil, err
	}
	unconstrained, err := unconstrainSV(pacf)
	if err != nil {
		return nil, nil, err
	}

	out := mat.NewSymDense(variance.SymmetricDim(), nil)
	out.CopySym(variance)
	return unconstrained, out, nil
}

// ConstrainMultivariateStacked is [ConstrainMultivariate] for the stacked
// representation: one (k, order·k) matrix with the per-lag coefficient
// blocks concatenated column-wise. The result uses the same
// representation.
func ConstrainMultivariateStacked(stacked *mat.Dense, variance *mat.SymDense, transformVariance bool) (*mat.Dense, *mat.SymDense, error) {
	coefficients, err := splitStacked(stacked)
	if err != nil {
		return nil, nil, err
	}

	constrained, outVariance, err := ConstrainMultivariate(coefficients, variance, transformVariance)
	if err != nil {
		return nil, nil, err
	}
	return joinStacked(constrained), outVariance, nil
}

// UnconstrainMultivariateStacked is [UnconstrainMultivariate] for the
// stacked representation.
func UnconstrainMultivariateStacked(stacked *mat.Dense, variance *mat.SymDense) (*mat.Dense, *mat.SymDense, error) {
	coefficients, err := splitStacked(stacked)
	if err != nil {
		return nil, nil, err
	}

	unconstrained, outVariance, err := UnconstrainMultivariate(coefficients, variance)
	if err != nil {
		return nil, nil, err
	}
	return joinStacked(unconstrained), outVariance, nil
}

func checkMultivariateArgs(coefficients []*mat.Dense, variance *mat.SymDense) error {
	if len(coefficients) == 0 {
		return ErrNoCoefficients
	}

	k := variance.SymmetricDim()
	for i, a := range coefficients {
		r, c := a.Dims()
		if r != k || c != k {
			return fmt.Errorf("%w: coefficient %d is %dx%d, variance is %dx%d",
				ErrDimensionMismatch, i+1, r, c, k, k)
		}
	}
	return nil
}

func splitStacked(stacked *mat.Dense) ([]*mat.Dense, error) {
	k, kc := stacked.Dims()
	if k == 0 || kc == 0 || kc%k != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrStackedShape, k, kc)
	}

	order := kc / k
	coefficients := make([]*mat.Dense, order)
	for i := 0; i < order; i++ {
		coefficients[i] = mat.DenseCopyOf(stacked.Slice(0, k, i*k, (i+1)*k))
	}
	return coefficients, nil
}

func joinStacked(coefficients []*mat.Dense) *mat.Dense {
	k, _ := coefficients[0].Dims()
	stacked := mat.NewDense(k, len(coefficients)*k, nil)
	for i, a := range coefficients {
		stacked.Slice(0, k, i*k, (i+1)*k).(*mat.Dense).Copy(a)
	}
	return stacked
}
