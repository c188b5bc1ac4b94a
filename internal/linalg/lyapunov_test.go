package linalg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSolveDiscreteLyapunov_Scalar(t *testing.T) {
	a := mat.NewDense(1, 1, []float64{0.5})
	q := mat.NewDense(1, 1, []float64{1})

	x, err := SolveDiscreteLyapunov(a, q)
	if err != nil {
		t.Fatalf("SolveDiscreteLyapunov: %v", err)
	}

	// x = q / (1 - a^2) = 4/3
	want := 4.0 / 3.0
	if got := x.At(0, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("x: got %g, want %g", got, want)
	}
}

func TestSolveDiscreteLyapunov_Residual(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		0.5, 0.1, 0,
		-0.2, 0.3, 0.1,
		0, 0.2, -0.4,
	})
	q := mat.NewDense(3, 3, []float64{
		2, 0.5, 0,
		0.5, 1, 0.1,
		0, 0.1, 1.5,
	})

	x, err := SolveDiscreteLyapunov(a, q)
	if err != nil {
		t.Fatalf("SolveDiscreteLyapunov: %v", err)
	}

	// Check X - A X Aᵀ - Q = 0.
	var axa mat.Dense
	axa.Mul(a, x)
	axa.Mul(&axa, a.T())

	var residual mat.Dense
	residual.Sub(x, &axa)
	residual.Sub(&residual, q)

	if norm := mat.Norm(&residual, 2); norm > 1e-10 {
		t.Errorf("residual norm: got %g, want ~0", norm)
	}

	// Solution must be symmetric for symmetric Q.
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if d := math.Abs(x.At(i, j) - x.At(j, i)); d > 1e-10 {
				t.Errorf("asymmetry at (%d,%d): %g", i, j, d)
			}
		}
	}
}

func TestSolveDiscreteLyapunov_BadDims(t *testing.T) {
	a := mat.NewDense(2, 3, nil)
	q := mat.NewDense(2, 2, nil)
	if _, err := SolveDiscreteLyapunov(a, q); err == nil {
		t.Fatal("non-square transition: got nil error")
	}

	a = mat.NewDense(2, 2, nil)
	q = mat.NewDense(3, 3, nil)
	if _, err := SolveDiscreteLyapunov(a, q); err == nil {
		t.Fatal("mismatched noise: got nil error")
	}
}
