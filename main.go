package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment from .env files for local development.
	_ = godotenv.Load(".env")

	var analysisID int64
	var service bool
	var csvPath, csvColumn, procedure string
	var mu0, muTrue, alpha, confidence float64
	var sampleSize int
	var seed int64
	flag.Int64Var(&analysisID, "analysis-id", 0, "ID of analyses row to process (omit to run service)")
	flag.BoolVar(&service, "service", false, "Run as background service listening to Sidekiq queue")
	flag.StringVar(&csvPath, "csv", "", "Run directly on a CSV file instead of the database")
	flag.StringVar(&csvColumn, "column", "value", "CSV column holding the sample")
	flag.StringVar(&procedure, "procedure", "descriptive", "Procedure for CSV mode: descriptive, confidence_interval, one_sample_t, power, power_curve, adjust")
	flag.Float64Var(&mu0, "mu0", 0, "Null-hypothesis mean")
	flag.Float64Var(&muTrue, "mu-true", 0, "Assumed true mean for power procedures")
	flag.Float64Var(&alpha, "alpha", 0.05, "Significance level")
	flag.Float64Var(&confidence, "confidence", 0.95, "Confidence level for interval procedures")
	flag.IntVar(&sampleSize, "sample-size", 0, "Subsample size drawn without replacement (0 = whole dataset)")
	flag.Int64Var(&seed, "seed", 1, "Seed for the subsample draw")
	flag.Parse()

	if csvPath != "" {
		if err := runCSV(csvPath, csvColumn, procedure, mu0, muTrue, alpha, confidence, sampleSize, seed); err != nil {
			log.Fatal(err)
		}
		return
	}

	dsn, err := buildDSNFromEnv()
	if err != nil {
		log.Fatalf("database config error: %v", err)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect error: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}

	if service || (analysisID == 0 && flag.NArg() == 0) {
		runService(db)
		return
	}

	if analysisID == 0 {
		if flag.NArg() > 0 {
			var v int64
			_, err := fmt.Sscan(flag.Arg(0), &v)
			if err == nil {
				analysisID = v
			}
		}
	}
	if analysisID == 0 {
		log.Fatal("missing --analysis-id <id> argument or --service")
	}

	if err := processAnalysis(db, analysisID); err != nil {
		log.Fatal(err)
	}
}

// runCSV runs one procedure on a CSV sample and logs the result, bypassing
// Postgres and Redis entirely.
func runCSV(path, column, procedure string, mu0, muTrue, alpha, confidence float64, sampleSize int, seed int64) error {
	values, err := loadCSVColumn(path, column)
	if err != nil {
		return err
	}
	if sampleSize > 0 {
		values, err = sampleWithoutReplacement(values, sampleSize, seed)
		if err != nil {
			return err
		}
	}
	if procedure == "adjust" {
		// The column holds raw p-values rather than observations.
		bonf, err := adjustBonferroni(values)
		if err != nil {
			return err
		}
		holm, err := adjustHolm(values)
		if err != nil {
			return err
		}
		bh, err := adjustBenjaminiHochberg(values)
		if err != nil {
			return err
		}
		for i, p := range values {
			log.Printf("p=%.6f bonferroni=%.6f holm=%.6f bh=%.6f", p, bonf[i], holm[i], bh[i])
		}
		return nil
	}

	st := calculateStatistics(values)
	log.Printf("%s: n=%d mean=%.4f median=%.4f sd=%.4f min=%.4f max=%.4f",
		path, st.N, st.Mean, st.Median, st.StdDev, st.Min, st.Max)

	switch procedure {
	case "descriptive":
		return nil
	case "confidence_interval":
		lower, upper, err := meanConfidenceInterval(values, confidence)
		if err != nil {
			return err
		}
		log.Printf("%.0f%% confidence interval for the mean: [%.4f, %.4f]", confidence*100, lower, upper)
		return nil
	case "one_sample_t":
		r, err := oneSampleTTest(values, mu0)
		if err != nil {
			return err
		}
		log.Printf("one-sample t test against mu0=%.4f: t=%.4f df=%.1f p=%.6f", mu0, r.T, r.DF, r.P)
		return nil
	case "power":
		power, err := powerOneSampleT(mu0, muTrue, st.StdDev, st.N, alpha)
		if err != nil {
			return err
		}
		log.Printf("power of two-sided t test (mu0=%.4f, true mean=%.4f, alpha=%.3f): %.4f", mu0, muTrue, alpha, power)
		return nil
	case "power_curve":
		const points = 21
		means := make([]float64, points)
		for i := range means {
			means[i] = mu0 + (muTrue-mu0)*float64(i)/float64(points-1)
		}
		curve, err := powerCurve(mu0, means, st.StdDev, st.N, alpha)
		if err != nil {
			return err
		}
		for i, p := range curve {
			log.Printf("true mean %.4f: power %.4f", means[i], p)
		}
		return nil
	default:
		return fmt.Errorf("unknown procedure %q: %w", procedure, errInvalidArgument)
	}
}
