package main

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Q1     float64
	Q3     float64
	StdDev float64
}

// calculateStatistics summarizes a sample. StdDev is the n-1 adjusted sample
// standard deviation, the form the inference procedures expect.
func calculateStatistics(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	s := append([]float64(nil), samples...)
	sort.Float64s(s)
	n := len(s)

	var median float64
	if n%2 == 1 {
		median = s[n/2]
	} else {
		median = (s[n/2-1] + s[n/2]) / 2.0
	}

	idx := func(f float64) int {
		i := int(math.Ceil(f) - 1)
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		return i
	}

	var stddev float64
	if n > 1 {
		stddev = stat.StdDev(s, nil)
	}

	return Stats{
		N:      n,
		Min:    s[0],
		Max:    s[n-1],
		Mean:   stat.Mean(s, nil),
		Median: median,
		Q1:     s[idx(float64(n)/4.0)],
		Q3:     s[idx(float64(3*n)/4.0)],
		StdDev: stddev,
	}
}
