package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func buildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
	return dsn, nil
}

// analysisRequest is one row of the analyses table: which procedure to run on
// which dataset, with the procedure's parameters. Parameters a procedure does
// not use stay NULL.
type analysisRequest struct {
	ID               int64
	DatasetID        int64
	Procedure        string
	CompareDatasetID sql.NullInt64
	Mu0              sql.NullFloat64
	MuTrue           sql.NullFloat64
	Alpha            sql.NullFloat64
	Confidence       sql.NullFloat64
	SampleSize       sql.NullInt64
	Seed             sql.NullInt64
}

func existsAnalysis(db *sql.DB, id int64) bool {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM analyses WHERE id = $1)", id).Scan(&exists)
	return err == nil && exists
}

func fetchAnalysisRequest(db *sql.DB, id int64) (analysisRequest, error) {
	const q = `
SELECT id, dataset_id, procedure, compare_dataset_id, mu0, mu_true, alpha, confidence, sample_size, seed
FROM analyses
WHERE id = $1`

	var req analysisRequest
	err := db.QueryRow(q, id).Scan(
		&req.ID, &req.DatasetID, &req.Procedure, &req.CompareDatasetID,
		&req.Mu0, &req.MuTrue, &req.Alpha, &req.Confidence,
		&req.SampleSize, &req.Seed,
	)
	if err != nil {
		return analysisRequest{}, err
	}
	return req, nil
}

func fetchObservations(db *sql.DB, datasetID int64) ([]float64, error) {
	rows, err := db.Query("SELECT value FROM observations WHERE dataset_id = $1 ORDER BY id ASC", datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	values := make([]float64, 0, 256)
	for rows.Next() {
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if v.Valid {
			values = append(values, v.Float64)
		}
	}
	return values, rows.Err()
}

func insertAnalysisResult(db *sql.DB, analysisID int64, out analysisOutcome, durationSeconds float64, memoryBytes float64) error {
	const q = `
INSERT INTO analysis_results
  (analysis_id, sample_size, mean, median, q1, q3, min, max, standard_deviation,
   t_statistic, degrees_of_freedom, p_value, ci_lower, ci_upper, power,
   duration, memory, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,NOW(),NOW())
`
	st := out.Stats
	_, err := db.Exec(q,
		analysisID, st.N,
		st.Mean, st.Median, st.Q1, st.Q3, st.Min, st.Max, st.StdDev,
		out.T, out.DF, out.P, out.Lower, out.Upper, out.Power,
		durationSeconds, memoryBytes,
	)
	return err
}
