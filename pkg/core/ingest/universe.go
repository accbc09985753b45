// Package ingest loads the company universe from external feeds: JSON
// exports, hand-authored HJSON files, and fundamentals HTML table dumps.
// The computation core never does I/O; everything enters through here.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"

	"equity_screener/pkg/core/company"
)

// DecodeUniverse parses a universe feed. Parse strategies are tried in
// order of strictness:
//  1. standard JSON, the happy path for machine exports
//  2. HJSON, for hand-maintained watchlist files with comments and
//     trailing commas
//  3. JSON repair, for sloppy upstream feeds (single quotes, unclosed
//     arrays) followed by a strict re-parse
//
// A feed that survives none of the three is rejected.
func DecodeUniverse(data []byte) ([]company.Company, error) {
	var universe []company.Company

	if err := json.Unmarshal(data, &universe); err == nil {
		return validate(universe)
	}

	if err := hjson.Unmarshal(data, &universe); err == nil {
		return validate(universe)
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("universe feed is not parseable JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &universe); err != nil {
		return nil, fmt.Errorf("universe feed unparseable even after repair: %w", err)
	}
	return validate(universe)
}

// LoadUniverseFile reads and decodes a universe file from disk.
func LoadUniverseFile(path string) ([]company.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	universe, err := DecodeUniverse(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return universe, nil
}

// validate drops records without a ticker and defaults missing regions.
// Everything else is optional: a record missing fundamentals still screens,
// it just contributes nothing to the factors it lacks.
func validate(universe []company.Company) ([]company.Company, error) {
	out := make([]company.Company, 0, len(universe))
	for _, c := range universe {
		if c.Ticker == "" {
			continue
		}
		if c.Region == "" {
			c.Region = company.RegionIndonesia
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("universe feed contains no usable records")
	}
	return out, nil
}
