package main

import (
	"database/sql"
	"errors"
	"testing"
)

func floatParam(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestRunProcedureDescriptive(t *testing.T) {
	req := analysisRequest{Procedure: "descriptive"}
	out, err := runProcedure(req, []float64{40, 10, 30, 20}, nil)
	if err != nil {
		t.Fatalf("runProcedure error: %v", err)
	}
	if out.Stats.N != 4 || out.Stats.Mean != 25 {
		t.Fatalf("unexpected stats: %#v", out.Stats)
	}
	if out.T.Valid || out.P.Valid || out.Power.Valid || out.Lower.Valid {
		t.Fatalf("descriptive procedure filled inferential fields: %#v", out)
	}
}

func TestRunProcedureConfidenceInterval(t *testing.T) {
	req := analysisRequest{Procedure: "confidence_interval", Confidence: floatParam(0.95)}
	out, err := runProcedure(req, []float64{1, 2, 3, 4, 5}, nil)
	if err != nil {
		t.Fatalf("runProcedure error: %v", err)
	}
	if !out.Lower.Valid || !out.Upper.Valid {
		t.Fatalf("expected interval bounds, got %#v", out)
	}
	if out.Lower.Float64 >= out.Upper.Float64 {
		t.Fatalf("degenerate interval: %#v", out)
	}
}

func TestRunProcedureOneSampleT(t *testing.T) {
	req := analysisRequest{Procedure: "one_sample_t", Mu0: floatParam(0)}
	out, err := runProcedure(req, []float64{2, 1, 3, 4}, nil)
	if err != nil {
		t.Fatalf("runProcedure error: %v", err)
	}
	if !out.T.Valid || !out.DF.Valid || !out.P.Valid {
		t.Fatalf("expected test statistics, got %#v", out)
	}
	if !approx(out.T.Float64, 3.872983346207417, 1e-9) {
		t.Fatalf("unexpected t: %v", out.T.Float64)
	}
}

func TestRunProcedureWelch(t *testing.T) {
	req := analysisRequest{Procedure: "welch_t"}
	out, err := runProcedure(req, []float64{2, 1, 3, 4}, []float64{6, 5, 7, 9})
	if err != nil {
		t.Fatalf("runProcedure error: %v", err)
	}
	if !approx(out.T.Float64, -3.9703446152237674, 1e-9) {
		t.Fatalf("unexpected t: %v", out.T.Float64)
	}
}

func TestRunProcedureWelchMissingComparison(t *testing.T) {
	req := analysisRequest{Procedure: "welch_t"}
	if _, err := runProcedure(req, []float64{2, 1, 3, 4}, nil); !errors.Is(err, errInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestRunProcedurePower(t *testing.T) {
	req := analysisRequest{
		Procedure: "power",
		Mu0:       floatParam(30),
		MuTrue:    floatParam(32),
		Alpha:     floatParam(0.05),
	}
	sample := []float64{22, 28, 31, 35, 40, 27, 33, 29, 38, 25}
	out, err := runProcedure(req, sample, nil)
	if err != nil {
		t.Fatalf("runProcedure error: %v", err)
	}
	if !out.Power.Valid {
		t.Fatalf("expected power, got %#v", out)
	}
	st := calculateStatistics(sample)
	want, err := powerOneSampleT(30, 32, st.StdDev, st.N, 0.05)
	if err != nil {
		t.Fatalf("powerOneSampleT error: %v", err)
	}
	if out.Power.Float64 != want {
		t.Fatalf("power %v does not match direct call %v", out.Power.Float64, want)
	}
}

func TestRunProcedureMissingParameter(t *testing.T) {
	req := analysisRequest{Procedure: "power", Mu0: floatParam(30)}
	if _, err := runProcedure(req, []float64{1, 2, 3}, nil); !errors.Is(err, errInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestRunProcedureUnknown(t *testing.T) {
	req := analysisRequest{Procedure: "anova"}
	if _, err := runProcedure(req, []float64{1, 2, 3}, nil); !errors.Is(err, errInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
