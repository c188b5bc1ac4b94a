package stationary

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-statespace/statespace/lagpoly"
	"gonum.org/v1/gonum/mat"
)

func randomVariance(rng *rand.Rand, k int) *mat.SymDense {
	m := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}

	var g mat.Dense
	g.Mul(m.T(), m)

	variance := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			v := g.At(i, j) / float64(k)
			if i == j {
				v += 0.5
			}
			variance.SetSym(i, j, v)
		}
	}
	return variance
}

func stationaryPoly(t *testing.T, coefficients []*mat.Dense) lagpoly.Polynomial {
	t.Helper()

	coeffs := make([]*mat.Dense, len(coefficients)+1)
	for i, phi := range coefficients {
		var neg mat.Dense
		neg.Scale(-1, phi)
		coeffs[i+1] = &neg
	}
	poly, err := lagpoly.New(coeffs)
	if err != nil {
		t.Fatalf("lagpoly.New: %v", err)
	}
	return poly
}

func TestConstrainMultivariate_OutputStationary(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	cases := []struct{ k, order int }{
		{1, 1}, {1, 4}, {2, 1}, {2, 3}, {3, 2}, {4, 2},
	}
	for _, tc := range cases {
		unconstrained := randomMatrices(rng, tc.k, tc.order, 1.5)
		variance := randomVariance(rng, tc.k)

		constrained, _, err := ConstrainMultivariate(unconstrained, variance, false)
		if err != nil {
			t.Fatalf("k=%d order=%d: ConstrainMultivariate: %v", tc.k, tc.order, err)
		}
		if len(constrained) != tc.order {
			t.Fatalf("k=%d order=%d: got %d coefficients", tc.k, tc.order, len(constrained))
		}

		stable, err := stationaryPoly(t, constrained).IsStable(1)
		if err != nil {
			t.Fatalf("k=%d order=%d: IsStable: %v", tc.k, tc.order, err)
		}
		if !stable {
			t.Errorf("k=%d order=%d: constrained coefficients are not stationary", tc.k, tc.order)
		}
	}
}

func TestMultivariate_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	for _, transformVariance := range []bool{false, true} {
		for _, tc := range []struct{ k, order int }{{1, 2}, {2, 1}, {2, 3}, {3, 2}} {
			unconstrained := randomMatrices(rng, tc.k, tc.order, 1)
			variance := randomVariance(rng, tc.k)

			constrained, outVariance, err := ConstrainMultivariate(unconstrained, variance, transformVariance)
			if err != nil {
				t.Fatalf("k=%d order=%d tv=%v: constrain: %v", tc.k, tc.order, transformVariance, err)
			}

			back, backVariance, err := UnconstrainMultivariate(constrained, outVariance)
			if err != nil {
				t.Fatalf("k=%d order=%d tv=%v: unconstrain: %v", tc.k, tc.order, transformVariance, err)
			}

			for i := range unconstrained {
				if !mat.EqualApprox(back[i], unconstrained[i], tolerance) {
					t.Errorf("k=%d order=%d tv=%v lag %d: round trip mismatch:\n%v\nvs\n%v",
						tc.k, tc.order, transformVariance, i+1,
						mat.Formatted(back[i]), mat.Formatted(unconstrained[i]))
				}
			}
			if !mat.EqualApprox(backVariance, outVariance, tolerance) {
				t.Errorf("k=%d order=%d tv=%v: variance not passed through", tc.k, tc.order, transformVariance)
			}

			// Constrain again from the recovered parameters: the stationary
			// coefficients must reproduce exactly.
			again, _, err := ConstrainMultivariate(back, variance, transformVariance)
			if err != nil {
				t.Fatalf("k=%d order=%d tv=%v: re-constrain: %v", tc.k, tc.order, transformVariance, err)
			}
			for i := range constrained {
				if !mat.EqualApprox(again[i], constrained[i], tolerance) {
					t.Errorf("k=%d order=%d tv=%v lag %d: reverse round trip mismatch",
						tc.k, tc.order, transformVariance, i+1)
				}
			}
		}
	}
}

func TestConstrainMultivariate_PreservesVariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	unconstrained := randomMatrices(rng, 2, 2, 1)
	variance := randomVariance(rng, 2)

	_, outVariance, err := ConstrainMultivariate(unconstrained, variance, false)
	if err != nil {
		t.Fatalf("ConstrainMultivariate: %v", err)
	}
	if !mat.EqualApprox(outVariance, variance, tolerance) {
		t.Errorf("variance changed with transformVariance=false:\n%v\nvs\n%v",
			mat.Formatted(outVariance), mat.Formatted(variance))
	}
}

func TestMultivariate_RepresentationSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	const k, order = 2, 3
	unconstrained := randomMatrices(rng, k, order, 1)
	variance := randomVariance(rng, k)

	stacked := mat.NewDense(k, order*k, nil)
	for i, a := range unconstrained {
		stacked.Slice(0, k, i*k, (i+1)*k).(*mat.Dense).Copy(a)
	}

	fromList, listVariance, err := ConstrainMultivariate(unconstrained, variance, false)
	if err != nil {
		t.Fatalf("list form: %v", err)
	}
	fromStacked, stackedVariance, err := ConstrainMultivariateStacked(stacked, variance, false)
	if err != nil {
		t.Fatalf("stacked form: %v", err)
	}

	r, c := fromStacked.Dims()
	if r != k || c != order*k {
		t.Fatalf("stacked output dims: got %dx%d, want %dx%d", r, c, k, order*k)
	}
	for i, a := range fromList {
		block := fromStacked.Slice(0, k, i*k, (i+1)*k)
		if !mat.EqualApprox(block, a, tolerance) {
			t.Errorf("lag %d: stacked and list outputs disagree", i+1)
		}
	}
	if !mat.EqualApprox(listVariance, stackedVariance, tolerance) {
		t.Error("stacked and list variances disagree")
	}

	// Same check for the inverse direction.
	backStacked, _, err := UnconstrainMultivariateStacked(fromStacked, variance)
	if err != nil {
		t.Fatalf("stacked unconstrain: %v", err)
	}
	backList, _, err := UnconstrainMultivariate(fromList, variance)
	if err != nil {
		t.Fatalf("list unconstrain: %v", err)
	}
	for i, a := range backList {
		block := backStacked.Slice(0, k, i*k, (i+1)*k)
		if !mat.EqualApprox(block, a, tolerance) {
			t.Errorf("lag %d: stacked and list inverse outputs disagree", i+1)
		}
	}
}

func TestMultivariate_ArgumentErrors(t *testing.T) {
	variance := mat.NewSymDense(2, []float64{1, 0, 0, 1})

	if _, _, err := ConstrainMultivariate(nil, variance, false); !errors.Is(err, ErrNoCoefficients) {
		t.Errorf("empty coefficients: got %v, want ErrNoCoefficients", err)
	}

	bad := []*mat.Dense{mat.NewDense(3, 3, nil)}
	if _, _, err := ConstrainMultivariate(bad, variance, false); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("mismatched dims: got %v, want ErrDimensionMismatch", err)
	}

	stacked := mat.NewDense(2, 3, nil)
	if _, _, err := ConstrainMultivariateStacked(stacked, variance, false); !errors.Is(err, ErrStackedShape) {
		t.Errorf("bad stacked shape: got %v, want ErrStackedShape", err)
	}
}

func TestUnconstrainMultivariate_NonStationaryInput(t *testing.T) {
	// A VAR(1) with a unit root has no stationary autocovariance sequence;
	// the transform must fail rather than return garbage.
	variance := mat.NewSymDense(1, []float64{1})
	coefficients := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}

	if _, _, err := UnconstrainMultivariate(coefficients, variance); err == nil {
		t.Fatal("unit-root input: got nil error")
	}
}
