package stationary

import (
	"fmt"
	"math"
)

// ConstrainUnivariate transforms unconstrained optimizer parameters into
// coefficients of a stationary AR (or invertible MA) component.
//
// Each parameter is first squashed to a partial autocorrelation in (-1, 1)
// via r = u / sqrt(1 + u²), then the Durbin-Levinson recursion converts the
// partial autocorrelations to coefficients. The output has the same length
// as the input.
//
// The outputs are the AR coefficients a_i of
//
//	y_t = a_1 y_{t-1} + ... + a_n y_{t-n} + e_t
//
// whose stationary lag polynomial is 1 - a_1 L - ... - a_n L^n; negate
// them before building a lagpoly.Polynomial (see the sign note in that
// package's documentation).
func ConstrainUnivariate(unconstrained []float64) []float64 {
	n := len(unconstrained)
	if n == 0 {
		return nil
	}

	// y is the lower-triangular recursion ladder, row k holding the
	// coefficients of the order-(k+1) model.
	y := make([]float64, n*n)
	prev := make([]float64, n)

	for k, u := range unconstrained {
		r := u / math.Sqrt(1+u*u)
		row := y[k*n : k*n+n]
		for i := 0; i < k; i++ {
			row[i] = prev[i] + r*prev[k-i-1]
		}
		row[k] = r
		copy(prev, row)
	}

	constrained := make([]float64, n)
	for i, v := range y[(n-1)*n:] {
		constrained[i] = -v
	}
	return constrained
}

// UnconstrainUnivariate is the exact inverse of [ConstrainUnivariate]: it
// maps stationary coefficients back to unconstrained optimizer parameters.
//
// The recursion requires every intermediate partial autocorrelation to be
// strictly inside (-1, 1); a coefficient vector on the stationarity
// boundary (an exact unit root) fails with [ErrNumericalDegeneracy].
func UnconstrainUnivariate(constrained []float64) ([]float64, error) {
	n := len(constrained)
	if n == 0 {
		return nil, nil
	}

	y := make([]float64, n*n)
	for i, c := range constrained {
		y[(n-1)*n+i] = -c
	}

	for k := n - 1; k > 0; k-- {
		row := y[k*n : k*n+n]
		d := 1 - row[k]*row[k]
		if d <= 0 {
			return nil, fmt.Errorf("stationary: partial autocorrelation at lag %d on the unit circle: %w",
				k+1, ErrNumericalDegeneracy)
		}
		prev := y[(k-1)*n : k*n]
		for i := 0; i < k; i++ {
			prev[i] = (row[i] - row[k]*row[k-i-1]) / d
		}
	}

	unconstrained := make([]float64, n)
	for k := 0; k < n; k++ {
		r := y[k*n+k]
		d := 1 - r*r
		if d <= 0 {
			return nil, fmt.Errorf("stationary: partial autocorrelation at lag %d on the unit circle: %w",
				k+1, ErrNumericalDegeneracy)
		}
		unconstrained[k] = r / math.Sqrt(d)
	}
	return unconstrained, nil
}
