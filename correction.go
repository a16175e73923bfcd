package main

import (
	"fmt"
	"sort"
)

func validatePValues(ps []float64) error {
	for i, p := range ps {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("p-value %v at index %d outside [0,1]: %w", p, i, errInvalidArgument)
		}
	}
	return nil
}

// adjustBonferroni returns Bonferroni-adjusted p-values: each raw p-value is
// multiplied by the number of tests and clamped to 1.
func adjustBonferroni(ps []float64) ([]float64, error) {
	if err := validatePValues(ps); err != nil {
		return nil, err
	}
	m := float64(len(ps))
	adjusted := make([]float64, len(ps))
	for i, p := range ps {
		adjusted[i] = min(1, p*m)
	}
	return adjusted, nil
}

// adjustHolm returns Holm step-down adjusted p-values. Holm controls the
// family-wise error rate like Bonferroni but is uniformly less conservative.
func adjustHolm(ps []float64) ([]float64, error) {
	if err := validatePValues(ps); err != nil {
		return nil, err
	}
	m := len(ps)
	order := ascendingOrder(ps)
	adjusted := make([]float64, m)
	running := 0.0
	for rank, idx := range order {
		v := min(1, float64(m-rank)*ps[idx])
		// Enforce monotonicity over the sorted sequence.
		running = max(running, v)
		adjusted[idx] = running
	}
	return adjusted, nil
}

// adjustBenjaminiHochberg returns Benjamini-Hochberg adjusted p-values,
// controlling the false discovery rate.
func adjustBenjaminiHochberg(ps []float64) ([]float64, error) {
	if err := validatePValues(ps); err != nil {
		return nil, err
	}
	m := len(ps)
	order := ascendingOrder(ps)
	adjusted := make([]float64, m)
	running := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		idx := order[rank]
		v := min(1, ps[idx]*float64(m)/float64(rank+1))
		running = min(running, v)
		adjusted[idx] = running
	}
	return adjusted, nil
}

// ascendingOrder returns the indices of ps sorted by ascending p-value.
func ascendingOrder(ps []float64) []int {
	order := make([]int, len(ps))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return ps[order[i]] < ps[order[j]] })
	return order
}
