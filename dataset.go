package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// loadCSVColumn reads the named numeric column from a CSV file with a header
// row. Empty and NA cells are skipped, any other non-numeric cell is an error.
func loadCSVColumn(path, column string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in %s (header: %s): %w", column, path, strings.Join(header, ","), errInvalidArgument)
	}

	var values []float64
	line := 1
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		if col >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[col])
		if cell == "" || strings.EqualFold(cell, "NA") {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d of %s: %q is not numeric: %w", line, path, cell, errInvalidArgument)
		}
		values = append(values, v)
	}
	return values, nil
}

// sampleWithoutReplacement draws k values from pool using a seeded generator,
// so repeated runs over the same dataset reproduce the same subsample.
func sampleWithoutReplacement(pool []float64, k int, seed int64) ([]float64, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("sample size %d outside [0,%d]: %w", k, len(pool), errInvalidArgument)
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, k)
	for i, j := range rng.Perm(len(pool))[:k] {
		out[i] = pool[j]
	}
	return out, nil
}
