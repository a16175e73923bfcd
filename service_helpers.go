package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
)

// parseInt64 extracts an int64 from a Sidekiq payload argument that may be encoded
// either as a JSON number or as a quoted string.
func parseInt64(raw json.RawMessage) (int64, error) {
	var asNumber int64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return 0, fmt.Errorf("empty string")
		}
		v, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	}

	return 0, fmt.Errorf("unsupported arg: %s", string(raw))
}

// requireFloat unwraps a nullable analysis parameter a procedure cannot run
// without.
func requireFloat(v sql.NullFloat64, name string) (float64, error) {
	if !v.Valid {
		return 0, fmt.Errorf("analysis parameter %s missing: %w", name, errInvalidArgument)
	}
	return v.Float64, nil
}
