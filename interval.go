package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// meanConfidenceInterval computes a two-sided t-based confidence interval for
// the mean of sample at the given confidence level (e.g. 0.95).
func meanConfidenceInterval(sample []float64, confidence float64) (lower, upper float64, err error) {
	if len(sample) < 2 {
		return 0, 0, fmt.Errorf("need at least 2 observations, got %d: %w", len(sample), errInvalidArgument)
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, 0, fmt.Errorf("confidence must be in (0,1), got %v: %w", confidence, errInvalidArgument)
	}

	n := float64(len(sample))
	mean := stat.Mean(sample, nil)
	sd := stat.StdDev(sample, nil)
	tCrit := tDist(n - 1).Quantile(1 - (1-confidence)/2)
	margin := tCrit * sd / math.Sqrt(n)
	if math.IsNaN(margin) {
		return 0, 0, fmt.Errorf("t quantile with df=%v produced NaN: %w", n-1, errNumericDomain)
	}
	return mean - margin, mean + margin, nil
}
