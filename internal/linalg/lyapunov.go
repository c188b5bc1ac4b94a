// Package linalg provides small linear-algebra kernels shared by the
// public statespace packages.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when the linearized Lyapunov system has no
// unique solution (A has an eigenvalue pair with product one).
var ErrSingular = errors.New("linalg: discrete Lyapunov system is singular")

// SolveDiscreteLyapunov solves the discrete Lyapunov equation
//
//	X = A X Aᵀ + Q
//
// for X by Kronecker linearization: (I - A⊗A) vec(X) = vec(Q), using a
// column-major vec. The system is dense of size n², so this is intended
// for the moderate dimensions arising from stacked lag polynomials.
func SolveDiscreteLyapunov(a, q *mat.Dense) (*mat.Dense, error) {
	n, c := a.Dims()
	if n != c {
		return nil, fmt.Errorf("linalg: transition matrix must be square, got %dx%d", n, c)
	}
	if qr, qc := q.Dims(); qr != n || qc != n {
		return nil, fmt.Errorf("linalg: noise matrix must be %dx%d, got %dx%d", n, n, qr, qc)
	}

	n2 := n * n
	system := mat.NewDense(n2, n2, nil)

	// system = I - A⊗A. Row (i + j*n) of the Kronecker product maps entry
	// (i, j) of A X Aᵀ; column (k + l*n) maps entry (k, l) of X.
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			row := i + j*n
			for l := 0; l < n; l++ {
				ajl := a.At(j, l)
				if ajl == 0 {
					continue
				}
				for k := 0; k < n; k++ {
					col := k + l*n
					system.Set(row, col, -ajl*a.At(i, k))
				}
			}
			system.Set(row, row, system.At(row, row)+1)
		}
	}

	rhs := mat.NewVecDense(n2, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			rhs.SetVec(i+j*n, q.At(i, j))
		}
	}

	var vec mat.VecDense
	if err := vec.SolveVec(system, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	x := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x.Set(i, j, vec.AtVec(i+j*n))
		}
	}

	return x, nil
}
