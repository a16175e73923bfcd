package main

import (
	"errors"
	"testing"
)

func TestAdjustBonferroni(t *testing.T) {
	adjusted, err := adjustBonferroni([]float64{0.01, 0.04, 0.03})
	if err != nil {
		t.Fatalf("adjustBonferroni error: %v", err)
	}
	want := []float64{0.03, 0.12, 0.09}
	for i := range want {
		if !approx(adjusted[i], want[i], 1e-12) {
			t.Fatalf("unexpected adjusted p-values: %v", adjusted)
		}
	}
}

func TestAdjustBonferroniClampsToOne(t *testing.T) {
	adjusted, err := adjustBonferroni([]float64{0.5, 0.9, 0.2})
	if err != nil {
		t.Fatalf("adjustBonferroni error: %v", err)
	}
	if adjusted[0] != 1 || adjusted[1] != 1 {
		t.Fatalf("expected clamping to 1, got %v", adjusted)
	}
}

func TestAdjustHolm(t *testing.T) {
	adjusted, err := adjustHolm([]float64{0.01, 0.04, 0.03})
	if err != nil {
		t.Fatalf("adjustHolm error: %v", err)
	}
	want := []float64{0.03, 0.06, 0.06}
	for i := range want {
		if !approx(adjusted[i], want[i], 1e-12) {
			t.Fatalf("unexpected adjusted p-values: %v", adjusted)
		}
	}
}

func TestAdjustBenjaminiHochberg(t *testing.T) {
	adjusted, err := adjustBenjaminiHochberg([]float64{0.01, 0.04, 0.03})
	if err != nil {
		t.Fatalf("adjustBenjaminiHochberg error: %v", err)
	}
	want := []float64{0.03, 0.04, 0.04}
	for i := range want {
		if !approx(adjusted[i], want[i], 1e-12) {
			t.Fatalf("unexpected adjusted p-values: %v", adjusted)
		}
	}
}

func TestCorrectionOrdering(t *testing.T) {
	// Raw <= Holm <= Bonferroni, element-wise, for any input.
	ps := []float64{0.001, 0.2, 0.04, 0.7, 0.03, 0.0499}
	holm, err := adjustHolm(ps)
	if err != nil {
		t.Fatalf("adjustHolm error: %v", err)
	}
	bonf, err := adjustBonferroni(ps)
	if err != nil {
		t.Fatalf("adjustBonferroni error: %v", err)
	}
	for i, p := range ps {
		if holm[i] < p {
			t.Fatalf("Holm below raw at %d: %v < %v", i, holm[i], p)
		}
		if bonf[i] < holm[i] {
			t.Fatalf("Bonferroni below Holm at %d: %v < %v", i, bonf[i], holm[i])
		}
		if holm[i] > 1 || bonf[i] > 1 {
			t.Fatalf("adjusted p-value above 1 at %d", i)
		}
	}
}

func TestCorrectionPreservesInputOrder(t *testing.T) {
	ps := []float64{0.9, 0.001, 0.05}
	bh, err := adjustBenjaminiHochberg(ps)
	if err != nil {
		t.Fatalf("adjustBenjaminiHochberg error: %v", err)
	}
	// The smallest raw p-value must keep the smallest adjusted value, at its
	// original position.
	if !(bh[1] <= bh[2] && bh[2] <= bh[0]) {
		t.Fatalf("significance order not preserved: %v", bh)
	}
}

func TestCorrectionEmptyInput(t *testing.T) {
	adjusted, err := adjustHolm(nil)
	if err != nil {
		t.Fatalf("adjustHolm error: %v", err)
	}
	if len(adjusted) != 0 {
		t.Fatalf("expected empty result, got %v", adjusted)
	}
}

func TestCorrectionInvalidPValues(t *testing.T) {
	for _, ps := range [][]float64{{1.5}, {-0.1}, {0.05, 2}} {
		if _, err := adjustBonferroni(ps); !errors.Is(err, errInvalidArgument) {
			t.Fatalf("expected invalid argument for %v, got %v", ps, err)
		}
		if _, err := adjustHolm(ps); !errors.Is(err, errInvalidArgument) {
			t.Fatalf("expected invalid argument for %v, got %v", ps, err)
		}
		if _, err := adjustBenjaminiHochberg(ps); !errors.Is(err, errInvalidArgument) {
			t.Fatalf("expected invalid argument for %v, got %v", ps, err)
		}
	}
}
