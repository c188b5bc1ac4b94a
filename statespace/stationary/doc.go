// Package stationary maps between unconstrained optimizer parameters and
// stationary (or invertible) autoregressive/moving-average coefficients.
//
// An unconstrained optimizer searches over arbitrary real vectors or
// matrices; before they can parameterize a state-space model they must be
// mapped onto the set of coefficients whose lag polynomial is stationary.
// The univariate transform is the classical Durbin-Levinson style recursion
// of Monahan (1984). The multivariate transform is its matrix
// generalization from Ansley and Kohn (1986): arbitrary matrices are first
// squashed to partial autocorrelation matrices with singular values below
// one (Lemma 2.2), then run through a forward/backward reflection
// recursion with accumulating Cholesky factors (Lemmas 2.1 and 2.3) to
// produce stationary coefficient matrices. Both directions are exact
// inverses of each other up to floating-point error.
//
// All functions are pure and safe for concurrent use with disjoint
// arguments.
//
// References:
//
//   - Monahan, John F. 1984. "A Note on Enforcing Stationarity in
//     Autoregressive-moving Average Models." Biometrika 71 (2): 403-404.
//   - Ansley, Craig F., and Robert Kohn. 1986. "A Note on Reparameterizing
//     a Vector Autoregressive Moving Average Model to Enforce
//     Stationarity." Journal of Statistical Computation and Simulation
//     24 (2): 99-106.
package stationary
