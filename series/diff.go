// Package series prepares observed time series for model construction:
// simple and seasonal differencing, and sample autocovariances.
package series

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidDiff is returned for negative difference counts or a
	// non-positive seasonal period.
	ErrInvalidDiff = errors.New("series: difference counts must be non-negative and the seasonal period positive")

	// ErrTooShort is returned when differencing would exhaust the series.
	ErrTooShort = errors.New("series: series too short to difference")
)

// Diff applies seasonalDiffs seasonal differences at lag period, followed
// by diffs simple first differences. The result is shorter than the input
// by diffs + seasonalDiffs*period.
func Diff(series []float64, diffs, seasonalDiffs, period int) ([]float64, error) {
	if diffs < 0 || seasonalDiffs < 0 || (seasonalDiffs > 0 && period < 1) {
		return nil, ErrInvalidDiff
	}
	if seasonalDiffs == 0 {
		period = 1
	}
	if len(series) < diffs+seasonalDiffs*period+1 {
		return nil, ErrTooShort
	}

	out := make([]float64, len(series))
	copy(out, series)

	for d := 0; d < seasonalDiffs; d++ {
		for i := 0; i < len(out)-period; i++ {
			out[i] = out[i+period] - out[i]
		}
		out = out[:len(out)-period]
	}

	for d := 0; d < diffs; d++ {
		for i := 0; i < len(out)-1; i++ {
			out[i] = out[i+1] - out[i]
		}
		out = out[:len(out)-1]
	}

	return out, nil
}

// DiffColumns applies [Diff] to each column of a multi-series matrix
// (rows are observations, columns are series).
func DiffColumns(series *mat.Dense, diffs, seasonalDiffs, period int) (*mat.Dense, error) {
	rows, cols := series.Dims()
	if diffs < 0 || seasonalDiffs < 0 || (seasonalDiffs > 0 && period < 1) {
		return nil, ErrInvalidDiff
	}

	dropped := diffs
	if seasonalDiffs > 0 {
		dropped += seasonalDiffs * period
	}
	if cols == 0 || rows < dropped+1 {
		return nil, ErrTooShort
	}

	out := mat.NewDense(rows-dropped, cols, nil)
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(column, j, series)
		differenced, err := Diff(column, diffs, seasonalDiffs, period)
		if err != nil {
			return nil, err
		}
		out.SetCol(j, differenced)
	}

	return out, nil
}
