package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// tTestResult holds the statistic, degrees of freedom and two-sided p-value
// of a t test.
type tTestResult struct {
	T  float64
	DF float64
	P  float64
}

// oneSampleTTest tests whether the mean of sample differs from mu0.
func oneSampleTTest(sample []float64, mu0 float64) (tTestResult, error) {
	if len(sample) < 2 {
		return tTestResult{}, fmt.Errorf("need at least 2 observations, got %d: %w", len(sample), errInvalidArgument)
	}
	n := float64(len(sample))
	mean := stat.Mean(sample, nil)
	sd := stat.StdDev(sample, nil)
	if sd == 0 {
		return tTestResult{}, fmt.Errorf("sample has zero variance: %w", errInvalidArgument)
	}

	t := (mean - mu0) / (sd / math.Sqrt(n))
	df := n - 1
	p := 2 * tDist(df).CDF(-math.Abs(t))
	if math.IsNaN(p) {
		return tTestResult{}, fmt.Errorf("t distribution with df=%v produced NaN: %w", df, errNumericDomain)
	}
	return tTestResult{T: t, DF: df, P: p}, nil
}

// welchTTest tests whether the means of two samples differ, without assuming
// equal variances. Degrees of freedom follow the Welch-Satterthwaite formula.
func welchTTest(a, b []float64) (tTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return tTestResult{}, fmt.Errorf("need at least 2 observations per sample, got %d and %d: %w", len(a), len(b), errInvalidArgument)
	}
	na, nb := float64(len(a)), float64(len(b))
	va := stat.Variance(a, nil) / na
	vb := stat.Variance(b, nil) / nb
	if va+vb == 0 {
		return tTestResult{}, fmt.Errorf("both samples have zero variance: %w", errInvalidArgument)
	}

	t := (stat.Mean(a, nil) - stat.Mean(b, nil)) / math.Sqrt(va+vb)
	df := (va + vb) * (va + vb) / (va*va/(na-1) + vb*vb/(nb-1))
	p := 2 * tDist(df).CDF(-math.Abs(t))
	if math.IsNaN(p) {
		return tTestResult{}, fmt.Errorf("t distribution with df=%v produced NaN: %w", df, errNumericDomain)
	}
	return tTestResult{T: t, DF: df, P: p}, nil
}
