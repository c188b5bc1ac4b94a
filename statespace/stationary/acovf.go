package stationary

import (
	"fmt"

	"github.com/cwbudde/algo-statespace/internal/linalg"
	"github.com/cwbudde/algo-statespace/statespace/lagpoly"
	"gonum.org/v1/gonum/mat"
)

// autocovariancesFromCoefficients computes the theoretical autocovariances
// Γ_0..Γ_maxLag of the VAR process
//
//	y_t = A_1 y_{t-1} + ... + A_p y_{t-p} + e_t,  Var(e_t) = Σ
//
// by stacking the process into first-order companion form and solving the
// discrete Lyapunov equation for the stationary covariance of the stacked
// state. Γ_i is defined as E y_t y_{t-i}ᵀ.
func autocovariancesFromCoefficients(coefficients []*mat.Dense, errorVariance *mat.SymDense, maxLag int) ([]*mat.Dense, error) {
	order := len(coefficients)
	k, _ := coefficients[0].Dims()

	// Companion form of the lag polynomial I - A_1 L - ... - A_p L^p,
	// transposed so the coefficient matrices sit in the first block row.
	polyCoeffs := make([]*mat.Dense, order+1)
	for i, a := range coefficients {
		var neg mat.Dense
		neg.Scale(-1, a)
		polyCoeffs[i+1] = &neg
	}
	poly, err := lagpoly.New(polyCoeffs)
	if err != nil {
		return nil, fmt.Errorf("stationary: companion form: %w", err)
	}
	stacked, err := poly.Companion()
	if err != nil {
		return nil, fmt.Errorf("stationary: companion form: %w", err)
	}
	companion := cloneTranspose(stacked)

	// Noise covariance of the stacked state: Σ in the top-left block.
	dim := order * k
	noise := mat.NewDense(dim, dim, nil)
	noise.Slice(0, k, 0, k).(*mat.Dense).Copy(errorVariance)

	stackedCov, err := linalg.SolveDiscreteLyapunov(companion, noise)
	if err != nil {
		return nil, fmt.Errorf("stationary: stacked covariance: %w", err)
	}

	// The first block row of the stacked covariance holds Γ_0..Γ_{p-1};
	// further lags follow by propagating through the companion matrix.
	autocovariances := make([]*mat.Dense, 0, maxLag+1)
	for i := 0; i < order && i <= maxLag; i++ {
		autocovariances = append(autocovariances,
			mat.DenseCopyOf(stackedCov.Slice(0, k, i*k, (i+1)*k)))
	}

	for i := 0; i <= maxLag-order; i++ {
		var next mat.Dense
		next.Mul(companion, stackedCov)
		stackedCov = &next
		autocovariances = append(autocovariances,
			mat.DenseCopyOf(stackedCov.Slice(0, k, dim-k, dim)))
	}

	return autocovariances, nil
}

// pacfFromCoefficients inverts the forward recursion: given stationary
// coefficient matrices and the error variance it reconstructs the partial
// autocorrelation matrices P_1..P_p.
//
// Instead of the forward direction's whitened solves it rebuilds the
// forward/backward ladder from the theoretical autocovariances (Ansley and
// Newbold, 1979) and recovers each P_{s+1} = L_s⁻¹ φ_{s,s+1} L*_s by a
// final triangular solve.
func pacfFromCoefficients(coefficients []*mat.Dense, errorVariance *mat.SymDense) ([]*mat.Dense, error) {
	order := len(coefficients)

	// The recursion wants E y_t y_{t+i}ᵀ, the transpose of the Γ_i above.
	raw, err := autocovariancesFromCoefficients(coefficients, errorVariance, order)
	if err != nil {
		return nil, err
	}
	autocovariances := make([]*mat.Dense, len(raw))
	for i, g := range raw {
		autocovariances[i] = cloneTranspose(g)
	}

	var forwards, backwards []*mat.Dense
	pacf := make([]*mat.Dense, order)

	for s := 0; s < order; s++ {
		prevForwards, prevBackwards := forwards, backwards
		forwards = make([]*mat.Dense, 0, s+1)
		backwards = make([]*mat.Dense, 0, s+1)

		// Residual variances Σ_s and Σ*_s of the order-s forward and
		// backward models.
		forwardVariance := mat.DenseCopyOf(autocovariances[0])
		backwardVariance := cloneTranspose(autocovariances[0])
		for j := 0; j < s; j++ {
			var f, b mat.Dense
			f.Mul(prevForwards[j], autocovariances[j+1])
			forwardVariance.Sub(forwardVariance, &f)
			b.Mul(prevBackwards[j], autocovariances[j+1].T())
			backwardVariance.Sub(backwardVariance, &b)
		}

		forwardFactor, err := factorize(forwardVariance, fmt.Sprintf("forward variance at step %d", s))
		if err != nil {
			return nil, err
		}
		backwardFactor, err := factorize(backwardVariance, fmt.Sprintf("backward variance at step %d", s))
		if err != nil {
			return nil, err
		}

		var forward, backward *mat.Dense
		if s == 0 {
			// φ_{1,1} solves Γ_0 φᵀ = Γ_1 and φ*_{1,1} solves Γ_0 φ*ᵀ = Γ_1ᵀ.
			x, err := forwardFactor.solve(autocovariances[1])
			if err != nil {
				return nil, err
			}
			forward = cloneTranspose(x)

			x, err = backwardFactor.solve(autocovariances[1].T())
			if err != nil {
				return nil, err
			}
			backward = cloneTranspose(x)
		} else {
			// Residual cross term G = Γ_{s+1}ᵀ - φ_{s,1}Γ_sᵀ - ... - φ_{s,s}Γ_1ᵀ,
			// then φ_{s,s+1} = G Σ*_s⁻¹ and φ*_{s,s+1} = Gᵀ Σ_s⁻¹.
			residual := cloneTranspose(autocovariances[s+1])
			for j := 0; j < s; j++ {
				var f mat.Dense
				f.Mul(prevForwards[j], autocovariances[s-j].T())
				residual.Sub(residual, &f)
			}

			x, err := backwardFactor.solve(residual.T())
			if err != nil {
				return nil, err
			}
			forward = cloneTranspose(x)

			x, err = forwardFactor.solve(residual)
			if err != nil {
				return nil, err
			}
			backward = cloneTranspose(x)
		}

		for j := 0; j < s; j++ {
			f := &mat.Dense{}
			f.Mul(forward, prevBackwards[s-j-1])
			f.Sub(prevForwards[j], f)
			forwards = append(forwards, f)

			b := &mat.Dense{}
			b.Mul(backward, prevForwards[s-j-1])
			b.Sub(prevBackwards[j], b)
			backwards = append(backwards, b)
		}
		forwards = append(forwards, forward)
		backwards = append(backwards, backward)

		// P_{s+1} undoes the whitening: L_s P = φ_{s,s+1} L*_s.
		var rhs, p mat.Dense
		rhs.Mul(forward, backwardFactor.lower)
		if err := p.Solve(forwardFactor.lower, &rhs); err != nil {
			return nil, fmt.Errorf("stationary: partial autocorrelation at step %d: %w", s, err)
		}
		pacf[s] = &p
	}

	return pacf, nil
}
