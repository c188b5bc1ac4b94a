package series

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptySeries is returned when a series has no observations.
	ErrEmptySeries = errors.New("series: series is empty")

	// ErrInvalidLag is returned when the requested maximum lag is negative
	// or not smaller than the series length.
	ErrInvalidLag = errors.New("series: maximum lag must be in [0, len(series)-1]")
)

// Autocovariance computes the biased sample autocovariances of a series at
// lags 0..maxLag:
//
//	g[k] = (1/n) * sum_t (x_t - mean)(x_{t+k} - mean)
//
// The computation goes through the power spectrum of the demeaned,
// zero-padded series, so it costs O(n log n) regardless of maxLag.
func Autocovariance(series []float64, maxLag int) ([]float64, error) {
	n := len(series)
	if n == 0 {
		return nil, ErrEmptySeries
	}
	if maxLag < 0 || maxLag >= n {
		return nil, ErrInvalidLag
	}

	var mean float64
	for _, x := range series {
		mean += x
	}
	mean /= float64(n)

	// Zero-pad to at least 2n so the circular correlation of the padded
	// series equals the linear correlation of the original.
	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("series: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, x := range series {
		padded[i] = complex(x-mean, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("series: forward FFT failed: %w", err)
	}

	// Power spectrum |X[k]|^2 through the vector kernels.
	re := make([]float64, fftSize)
	im := make([]float64, fftSize)
	for i, c := range freq {
		re[i] = real(c)
		im[i] = imag(c)
	}
	power := make([]float64, fftSize)
	vecmath.Power(power, re, im)

	spectrum := make([]complex128, fftSize)
	for i, p := range power {
		spectrum[i] = complex(p, 0)
	}

	corr := make([]complex128, fftSize)
	if err := plan.Inverse(corr, spectrum); err != nil {
		return nil, fmt.Errorf("series: inverse FFT failed: %w", err)
	}

	lags := make([]float64, maxLag+1)
	for k := range lags {
		lags[k] = real(corr[k])
	}

	out := make([]float64, maxLag+1)
	vecmath.ScaleBlock(out, lags, 1/float64(n))
	return out, nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
