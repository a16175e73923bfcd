package main

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	errInvalidArgument = errors.New("invalid argument")
	errNumericDomain   = errors.New("numeric domain error")
)

// tDist returns the central Student's-t distribution with df degrees of freedom.
func tDist(df float64) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
}

// powerOneSampleT computes the probability of rejecting mu0 with a two-sided
// one-sample t test at significance alpha, assuming the true mean is muTrue.
//
// The alternative is modelled by shifting the central t distribution by the
// expected test statistic, not by the noncentral t distribution. The shifted
// form is intentional and must not be swapped for the noncentral one: the two
// disagree by about 0.01 in power for typical inputs.
func powerOneSampleT(mu0, muTrue, sampleStd float64, n int, alpha float64) (float64, error) {
	if !(sampleStd > 0) {
		return 0, fmt.Errorf("sample standard deviation must be positive, got %v: %w", sampleStd, errInvalidArgument)
	}
	if n < 2 {
		return 0, fmt.Errorf("sample size must be at least 2, got %d: %w", n, errInvalidArgument)
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, fmt.Errorf("alpha must be in (0,1), got %v: %w", alpha, errInvalidArgument)
	}

	dist := tDist(float64(n - 1))
	tCrit := dist.Quantile(1 - alpha/2)
	delta := (muTrue - mu0) / (sampleStd / math.Sqrt(float64(n)))
	power := 1 - dist.CDF(tCrit-delta) + dist.CDF(-tCrit-delta)
	if math.IsNaN(power) {
		return 0, fmt.Errorf("t distribution with df=%v produced NaN: %w", dist.Nu, errNumericDomain)
	}
	return power, nil
}

// powerCurve evaluates powerOneSampleT independently for each assumed true
// mean, returning one power value per input mean.
func powerCurve(mu0 float64, muTrue []float64, sampleStd float64, n int, alpha float64) ([]float64, error) {
	curve := make([]float64, len(muTrue))
	for i, mu := range muTrue {
		p, err := powerOneSampleT(mu0, mu, sampleStd, n, alpha)
		if err != nil {
			return nil, err
		}
		curve[i] = p
	}
	return curve, nil
}
