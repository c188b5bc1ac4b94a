// Package validate checks the shape contract of possibly time-varying
// system matrices and vectors before they enter a state-space model.
//
// A system matrix is either constant, with shape (nrows, ncols), or time
// varying, with shape (nrows, ncols, T) where T is the number of
// observations. A trailing dimension of exactly 1 always stands for a
// constant matrix in time-varying form.
package validate

import "fmt"

// ShapeError describes a violated shape contract. It carries the operand
// name so callers can surface which system matrix was malformed.
type ShapeError struct {
	Name  string // operand name, e.g. "transition"
	Shape []int  // actual shape
	Want  string // description of the expected shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("validate: invalid shape for %s: want %s, got %v", e.Name, e.Want, e.Shape)
}

// MatrixShape validates the shape of a possibly time-varying matrix.
//
// The shape must be 2-dimensional (nrows, ncols) or 3-dimensional
// (nrows, ncols, T). Pass a negative nobs when the number of observations
// is not yet known; in that case only a trailing dimension of exactly 1 is
// accepted, since the time variation could not be resolved. With nobs
// known, the trailing dimension must be 1 or nobs.
func MatrixShape(name string, shape []int, nrows, ncols, nobs int) error {
	ndim := len(shape)
	if ndim != 2 && ndim != 3 {
		return &ShapeError{Name: name, Shape: shape, Want: "a 2- or 3-dimensional array"}
	}
	if shape[0] != nrows {
		return &ShapeError{Name: name, Shape: shape, Want: fmt.Sprintf("%d rows", nrows)}
	}
	if shape[1] != ncols {
		return &ShapeError{Name: name, Shape: shape, Want: fmt.Sprintf("%d columns", ncols)}
	}

	if nobs < 0 && ndim == 3 && shape[2] != 1 {
		return &ShapeError{Name: name, Shape: shape,
			Want: "a constant matrix (time-varying matrices require a known observation count)"}
	}
	if ndim == 3 && nobs >= 0 && shape[2] != 1 && shape[2] != nobs {
		return &ShapeError{Name: name, Shape: shape,
			Want: fmt.Sprintf("shape (%d, %d, %d) or a trailing dimension of 1", nrows, ncols, nobs)}
	}

	return nil
}

// VectorShape validates the shape of a possibly time-varying vector; the
// contract mirrors [MatrixShape] with 1- or 2-dimensional shapes.
func VectorShape(name string, shape []int, nrows, nobs int) error {
	ndim := len(shape)
	if ndim != 1 && ndim != 2 {
		return &ShapeError{Name: name, Shape: shape, Want: "a 1- or 2-dimensional array"}
	}
	if shape[0] != nrows {
		return &ShapeError{Name: name, Shape: shape, Want: fmt.Sprintf("%d rows", nrows)}
	}

	if nobs < 0 && ndim == 2 && shape[1] != 1 {
		return &ShapeError{Name: name, Shape: shape,
			Want: "a constant vector (time-varying vectors require a known observation count)"}
	}
	if ndim == 2 && nobs >= 0 && shape[1] != 1 && shape[1] != nobs {
		return &ShapeError{Name: name, Shape: shape,
			Want: fmt.Sprintf("shape (%d, %d) or a trailing dimension of 1", nrows, nobs)}
	}

	return nil
}
