// Package utils holds small shared helpers: tolerant JSON parsing for the
// loosely-typed provider payloads, display formatting, and markdown report
// rendering.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeTolerant unmarshals provider JSON into schema, repairing common
// defects (single quotes, trailing commas, unquoted keys, truncated
// objects) when a strict parse fails. Financial endpoints occasionally
// serve such payloads behind CDNs, and a repairable response beats a
// user-facing fetch error.
func DecodeTolerant(data []byte, schema interface{}) error {
	if err := json.Unmarshal(data, schema); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return fmt.Errorf("payload is not repairable JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), schema); err != nil {
		return fmt.Errorf("repaired payload still does not match schema: %w", err)
	}
	return nil
}

// ParseHJSONToStruct parses human-friendly JSON (comments, unquoted keys,
// optional commas) directly into a Go struct. Used for the editable
// assumption presets under resources/.
func ParseHJSONToStruct(data []byte, schema interface{}) error {
	if err := hjson.Unmarshal(data, schema); err != nil {
		return fmt.Errorf("hjson parse failed: %w", err)
	}
	return nil
}
