package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// analysisOutcome is the union of everything a procedure can produce.
// Descriptive statistics are always filled from the analyzed sample; the
// inferential fields stay NULL unless the procedure computes them.
type analysisOutcome struct {
	Stats Stats
	T     sql.NullFloat64
	DF    sql.NullFloat64
	P     sql.NullFloat64
	Lower sql.NullFloat64
	Upper sql.NullFloat64
	Power sql.NullFloat64
}

func processAnalysis(db *sql.DB, analysisID int64) error {
	if !existsAnalysis(db, analysisID) {
		return fmt.Errorf("analyses id %d not found", analysisID)
	}
	req, err := fetchAnalysisRequest(db, analysisID)
	if err != nil {
		return fmt.Errorf("fetch analysis failed: %w", err)
	}
	primary, err := fetchObservations(db, req.DatasetID)
	if err != nil {
		return fmt.Errorf("fetch observations failed: %w", err)
	}
	if req.SampleSize.Valid {
		seed := req.Seed.Int64
		primary, err = sampleWithoutReplacement(primary, int(req.SampleSize.Int64), seed)
		if err != nil {
			return fmt.Errorf("subsample failed: %w", err)
		}
	}
	var secondary []float64
	if req.CompareDatasetID.Valid {
		secondary, err = fetchObservations(db, req.CompareDatasetID.Int64)
		if err != nil {
			return fmt.Errorf("fetch comparison observations failed: %w", err)
		}
	}

	var runErr error
	outcome, elapsed, memBytes := measurePeakResidentMemory(func() (analysisOutcome, float64) {
		start := time.Now()
		out, err := runProcedure(req, primary, secondary)
		runErr = err
		return out, time.Since(start).Seconds()
	})
	if runErr != nil {
		return fmt.Errorf("procedure %s failed: %w", req.Procedure, runErr)
	}
	if err := insertAnalysisResult(db, analysisID, outcome, elapsed, memBytes); err != nil {
		return fmt.Errorf("insert analysis_result failed: %w", err)
	}
	log.Printf("processed analysis=%d procedure=%s n=%d duration=%.6fs memory_bytes=%.0f\n",
		analysisID, req.Procedure, outcome.Stats.N, elapsed, memBytes)
	return nil
}

// runProcedure dispatches one analysis request to the matching inference
// routine. primary is the (possibly subsampled) dataset named by the request,
// secondary the comparison dataset for two-sample procedures.
func runProcedure(req analysisRequest, primary, secondary []float64) (analysisOutcome, error) {
	out := analysisOutcome{Stats: calculateStatistics(primary)}

	switch req.Procedure {
	case "descriptive":
		return out, nil

	case "confidence_interval":
		confidence, err := requireFloat(req.Confidence, "confidence")
		if err != nil {
			return out, err
		}
		lower, upper, err := meanConfidenceInterval(primary, confidence)
		if err != nil {
			return out, err
		}
		out.Lower = sql.NullFloat64{Float64: lower, Valid: true}
		out.Upper = sql.NullFloat64{Float64: upper, Valid: true}
		return out, nil

	case "one_sample_t":
		mu0, err := requireFloat(req.Mu0, "mu0")
		if err != nil {
			return out, err
		}
		r, err := oneSampleTTest(primary, mu0)
		if err != nil {
			return out, err
		}
		out.T = sql.NullFloat64{Float64: r.T, Valid: true}
		out.DF = sql.NullFloat64{Float64: r.DF, Valid: true}
		out.P = sql.NullFloat64{Float64: r.P, Valid: true}
		return out, nil

	case "welch_t":
		if secondary == nil {
			return out, fmt.Errorf("welch_t needs compare_dataset_id: %w", errInvalidArgument)
		}
		r, err := welchTTest(primary, secondary)
		if err != nil {
			return out, err
		}
		out.T = sql.NullFloat64{Float64: r.T, Valid: true}
		out.DF = sql.NullFloat64{Float64: r.DF, Valid: true}
		out.P = sql.NullFloat64{Float64: r.P, Valid: true}
		return out, nil

	case "power":
		mu0, err := requireFloat(req.Mu0, "mu0")
		if err != nil {
			return out, err
		}
		muTrue, err := requireFloat(req.MuTrue, "mu_true")
		if err != nil {
			return out, err
		}
		alpha, err := requireFloat(req.Alpha, "alpha")
		if err != nil {
			return out, err
		}
		power, err := powerOneSampleT(mu0, muTrue, out.Stats.StdDev, out.Stats.N, alpha)
		if err != nil {
			return out, err
		}
		out.Power = sql.NullFloat64{Float64: power, Valid: true}
		return out, nil

	default:
		return out, fmt.Errorf("unknown procedure %q: %w", req.Procedure, errInvalidArgument)
	}
}

func runService(db *sql.DB) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	u, err := url.Parse(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	host := u.Host
	if host == "" && u.Scheme == "unix" {
		log.Fatal("unix sockets not supported by this worker")
	}
	password, _ := u.User.Password()
	dbIndex := 0
	if parts := strings.TrimPrefix(u.Path, "/"); parts != "" {
		if i, err := strconv.Atoi(parts); err == nil {
			dbIndex = i
		}
	}
	qname := os.Getenv("WORKER_QUEUE")
	if qname == "" {
		qname = "default"
	}
	queue := "queue:" + qname
	doneList := os.Getenv("WORKER_DONE_LIST")

	for {
		conn, err := net.DialTimeout("tcp", host, 5*time.Second)
		if err != nil {
			log.Printf("redis connect failed: %v; retrying in 2s", err)
			time.Sleep(2 * time.Second)
			continue
		}
		rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))

		if password != "" {
			if err := writeCommand(rw, "AUTH", password); err != nil || readOK(rw) != nil {
				log.Printf("redis auth failed: %v", err)
				conn.Close()
				time.Sleep(2 * time.Second)
				continue
			}
		}
		if dbIndex != 0 {
			if err := writeCommand(rw, "SELECT", strconv.Itoa(dbIndex)); err != nil || readOK(rw) != nil {
				log.Printf("redis select failed: %v", err)
				conn.Close()
				time.Sleep(2 * time.Second)
				continue
			}
		}

		for {
			if err := writeCommand(rw, "BRPOP", queue, "5"); err != nil {
				log.Printf("redis write error: %v", err)
				break
			}
			key, payload, err := readBRPOP(rw)
			if err != nil {
				if err != ioEOF {
					log.Printf("redis read error: %v", err)
				}
				break
			}
			if key == "" && payload == "" {
				continue // timeout
			}
			var job sidekiqJob
			if err := json.Unmarshal([]byte(payload), &job); err != nil {
				log.Printf("invalid job json: %v", err)
				continue
			}
			if job.Class != "AnalysisWorker" && job.Class != "InferenceWorker" {
				log.Printf("skipping job class=%s", job.Class)
				continue
			}
			var id int64
			if len(job.Args) > 0 {
				id, _ = parseInt64(job.Args[0])
			}
			if id == 0 {
				log.Printf("job missing analysis id: %s", payload)
				continue
			}
			if err := processAnalysis(db, id); err != nil {
				log.Printf("process error: %v", err)
				continue
			}
			if doneList != "" {
				if err := publishDone(rw, doneList, id); err != nil {
					log.Printf("publish done failed: %v", err)
					break
				}
			}
		}
		conn.Close()
		time.Sleep(1 * time.Second)
	}
}
