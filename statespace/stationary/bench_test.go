package stationary

import (
	"math/rand"
	"testing"
)

func BenchmarkConstrainUnivariate(b *testing.B) {
	rng := rand.New(rand.NewSource(10))
	u := make([]float64, 30)
	for i := range u {
		u[i] = rng.NormFloat64()
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ConstrainUnivariate(u)
	}
}

func BenchmarkConstrainMultivariate(b *testing.B) {
	rng := rand.New(rand.NewSource(11))
	unconstrained := randomMatrices(rng, 3, 4, 1)
	variance := randomVariance(rng, 3)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ConstrainMultivariate(unconstrained, variance, false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnconstrainMultivariate(b *testing.B) {
	rng := rand.New(rand.NewSource(12))
	unconstrained := randomMatrices(rng, 3, 4, 1)
	variance := randomVariance(rng, 3)

	constrained, outVariance, err := ConstrainMultivariate(unconstrained, variance, false)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := UnconstrainMultivariate(constrained, outVariance); err != nil {
			b.Fatal(err)
		}
	}
}
