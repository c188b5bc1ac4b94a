package stationary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// varianceInflationExponent controls the surrogate error variance
// I·(order+k)^varianceInflationExponent substituted when the caller's
// variance is to be preserved. The inflation keeps the variance downdates
// of the recursion positive definite under round-off. It is an empirical
// safety margin, not a guaranteed bound: for large enough order and
// dimension a Cholesky factorization can still fail, surfacing
// [ErrNumericalDegeneracy].
const varianceInflationExponent = 10

// coefficientsFromPACF runs the Ansley-Kohn forward recursion, mapping
// partial autocorrelation matrices (all singular values < 1) plus an error
// variance to the coefficient matrices of a stationary process.
//
// When transformVariance is true the recursion runs on errorVariance
// directly and returns its own output variance. Otherwise the recursion
// runs on an inflated surrogate for numerical safety and the resulting
// coefficients are conjugated back to be consistent with errorVariance
// (Lemma 2.3), which is returned unchanged.
func coefficientsFromPACF(pacf []*mat.Dense, errorVariance *mat.SymDense, transformVariance bool) ([]*mat.Dense, *mat.SymDense, error) {
	order := len(pacf)
	k := errorVariance.SymmetricDim()

	variance := mat.DenseCopyOf(errorVariance)
	if !transformVariance {
		scale := math.Pow(float64(order+k), varianceInflationExponent)
		variance = mat.NewDense(k, k, nil)
		for i := 0; i < k; i++ {
			variance.Set(i, i, scale)
		}
	}

	forwardVariance := mat.DenseCopyOf(variance)  // Σ_s
	backwardVariance := mat.DenseCopyOf(variance) // Σ*_s

	// φ_{s,1..s+1} and φ*_{s,1..s+1}; only the current and previous step
	// of the ladder are retained.
	forwards := make([]*mat.Dense, order)
	backwards := make([]*mat.Dense, order)
	prevForwards := make([]*mat.Dense, order)
	prevBackwards := make([]*mat.Dense, order)

	// Γ_0..Γ_p
	autocovariances := make([]*mat.Dense, order+1)
	autocovariances[0] = mat.DenseCopyOf(variance)

	factor, err := factorize(variance, "error variance")
	if err != nil {
		return nil, nil, err
	}
	forwardFactor, backwardFactor := factor, factor // L_s, L*_s

	for s := 0; s < order; s++ {
		copy(prevForwards, forwards)
		copy(prevBackwards, backwards)

		// New coefficients φ_{s,s+1} = L_s (L*_s⁻ᵀ P_{s+1}ᵀ)ᵀ and
		// φ*_{s,s+1} = L*_s (L_s⁻ᵀ P_{s+1})ᵀ. The operand order is swapped
		// between the two solves: the forward coefficient whitens through
		// the backward factor and vice versa. This asymmetry is part of
		// the derivation; both recursions break if it is symmetrized.
		var x mat.Dense
		if err := x.Solve(backwardFactor.lower.T(), pacf[s].T()); err != nil {
			return nil, nil, fmt.Errorf("stationary: forward whitening at step %d: %w", s, err)
		}
		forward := &mat.Dense{}
		forward.Mul(forwardFactor.lower, x.T())
		forwards[s] = forward

		var y mat.Dense
		if err := y.Solve(forwardFactor.lower.T(), pacf[s]); err != nil {
			return nil, nil, fmt.Errorf("stationary: backward whitening at step %d: %w", s, err)
		}
		backward := &mat.Dense{}
		backward.Mul(backwardFactor.lower, y.T())
		backwards[s] = backward

		// Cross term, reused for both the autocovariance block and the
		// forward variance downdate.
		cross := &mat.Dense{}
		cross.Mul(forward, backwardVariance)
		autocovariances[s+1] = cloneTranspose(cross)

		// Levinson correction of the earlier lags, with the matching
		// autocovariance accumulation.
		for j := 0; j < s; j++ {
			f := &mat.Dense{}
			f.Mul(forward, prevBackwards[s-j-1])
			f.Sub(prevForwards[j], f)
			forwards[j] = f

			b := &mat.Dense{}
			b.Mul(backward, prevForwards[s-j-1])
			b.Sub(prevBackwards[j], b)
			backwards[j] = b

			var acc mat.Dense
			acc.Mul(autocovariances[j+1], prevForwards[s-j-1].T())
			autocovariances[s+1].Add(autocovariances[s+1], &acc)
		}

		// Variance downdates. The backward update must read the forward
		// variance before it is itself downdated.
		var bf, bCorr mat.Dense
		bf.Mul(backward, forwardVariance)
		bCorr.Mul(&bf, backward.T())
		nextBackward := &mat.Dense{}
		nextBackward.Sub(backwardVariance, &bCorr)

		var fCorr mat.Dense
		fCorr.Mul(cross, forward.T())
		nextForward := &mat.Dense{}
		nextForward.Sub(forwardVariance, &fCorr)

		forwardVariance, backwardVariance = nextForward, nextBackward

		if forwardFactor, err = factorize(forwardVariance, fmt.Sprintf("forward variance at step %d", s)); err != nil {
			return nil, nil, err
		}
		if backwardFactor, err = factorize(backwardVariance, fmt.Sprintf("backward variance at step %d", s)); err != nil {
			return nil, nil, err
		}
	}

	if transformVariance {
		return forwards, symmetrize(forwardVariance), nil
	}

	// Rescale the coefficients to be consistent with the caller's variance:
	// with M = chol(Σ_input) and L = chol(Σ_output), the lower triangular
	// T = M L⁻¹ satisfies T Σ_output Tᵀ = Σ_input, and conjugating each
	// coefficient by T preserves the partial autocorrelations.
	initialFactor, err := factorize(errorVariance, "input variance")
	if err != nil {
		return nil, nil, err
	}

	var transform, invTransform mat.Dense
	if err := transform.Solve(forwardFactor.lower.T(), initialFactor.lower.T()); err != nil {
		return nil, nil, fmt.Errorf("stationary: variance rescaling: %w", err)
	}
	if err := invTransform.Solve(initialFactor.lower.T(), forwardFactor.lower.T()); err != nil {
		return nil, nil, fmt.Errorf("stationary: variance rescaling: %w", err)
	}

	for s := 0; s < order; s++ {
		var tmp mat.Dense
		tmp.Mul(transform.T(), forwards[s])
		rescaled := &mat.Dense{}
		rescaled.Mul(&tmp, invTransform.T())
		forwards[s] = rescaled
	}

	out := mat.NewSymDense(k, nil)
	out.CopySym(errorVariance)
	return forwards, out, nil
}
