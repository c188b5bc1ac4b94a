// Command polyinfo prints the companion-matrix eigenvalues and the
// stationarity verdict of a scalar lag polynomial.
//
// Usage:
//
//	polyinfo [flags] c0 c1 ... cp
//
// Coefficients are given in order of increasing degree. For an AR(p)
// model y_t = a_1 y_{t-1} + ... + a_p y_{t-p} + e_t, pass 1 -a_1 ... -a_p.
//
// Examples:
//
//	polyinfo 1 -0.5
//	polyinfo -threshold 0.98 1 -1.2 0.3
package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-statespace/statespace/lagpoly"
	"gonum.org/v1/gonum/mat"
)

func main() {
	threshold := flag.Float64("threshold", 1.0, "stability threshold for eigenvalue moduli")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	coeffs := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "polyinfo: invalid coefficient %q: %v\n", arg, err)
			os.Exit(2)
		}
		coeffs[i] = v
	}

	poly, err := lagpoly.NewScalar(coeffs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "polyinfo: %v\n", err)
		os.Exit(2)
	}

	companion, err := poly.Companion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "polyinfo: %v\n", err)
		os.Exit(1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		fmt.Fprintln(os.Stderr, "polyinfo: eigenvalue decomposition failed")
		os.Exit(1)
	}

	stable := true
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "eigenvalue\tmodulus\t")
	for _, v := range eig.Values(nil) {
		modulus := cmplx.Abs(v)
		if modulus >= *threshold {
			stable = false
		}
		fmt.Fprintf(w, "%.6g%+.6gi\t%.6g\t\n", real(v), imag(v), modulus)
	}
	w.Flush()

	if stable {
		fmt.Printf("stationary (all moduli < %g)\n", *threshold)
		return
	}
	fmt.Printf("not stationary (modulus >= %g)\n", *threshold)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: polyinfo [-threshold t] c0 c1 ... cp")
	flag.PrintDefaults()
}
