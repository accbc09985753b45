package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeUniverseStrictJSON(t *testing.T) {
	data := []byte(`[
		{"ticker": "BBCA", "region": "Indonesia", "sector": "Financial", "price": 9850, "marketCap": 1.2e15, "pe": 9.8},
		{"ticker": "TLKM", "region": "Indonesia", "sector": "Communication", "price": 3100, "marketCap": 3.07e14}
	]`)
	universe, err := DecodeUniverse(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(universe) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(universe))
	}
	if universe[0].Ticker != "BBCA" || universe[0].PE == nil || *universe[0].PE != 9.8 {
		t.Errorf("First record mangled: %+v", universe[0])
	}
	if universe[1].PE != nil {
		t.Errorf("Absent field must stay nil, got %v", *universe[1].PE)
	}
}

func TestDecodeUniverseHJSON(t *testing.T) {
	// Hand-maintained watchlist: comments, unquoted keys, trailing commas.
	data := []byte(`[
		{
			// the big bank
			ticker: BBCA
			region: Indonesia
			sector: Financial
			price: 9850
			pe: 9.8
		},
	]`)
	universe, err := DecodeUniverse(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(universe) != 1 || universe[0].Ticker != "BBCA" {
		t.Errorf("Unexpected universe: %+v", universe)
	}
}

func TestDecodeUniverseRepairedJSON(t *testing.T) {
	// Sloppy feed: unclosed array.
	data := []byte(`[{"ticker": "BBCA", "region": "Indonesia", "price": 9850}`)
	universe, err := DecodeUniverse(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(universe) != 1 || universe[0].Ticker != "BBCA" {
		t.Errorf("Unexpected universe: %+v", universe)
	}
}

func TestDecodeUniverseValidation(t *testing.T) {
	// Records without a ticker are dropped, missing regions default.
	data := []byte(`[
		{"ticker": "", "price": 100},
		{"ticker": "BBCA", "price": 9850}
	]`)
	universe, err := DecodeUniverse(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(universe) != 1 {
		t.Fatalf("Expected the empty-ticker record dropped, got %d records", len(universe))
	}
	if universe[0].Region != "Indonesia" {
		t.Errorf("Expected region defaulted to Indonesia, got %q", universe[0].Region)
	}

	if _, err := DecodeUniverse([]byte(`[{"ticker": ""}]`)); err == nil {
		t.Error("Expected an error when no record is usable")
	}
}

func TestLoadUniverseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.json")
	body := `[{"ticker": "BBCA", "region": "Indonesia", "price": 9850}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	universe, err := LoadUniverseFile(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(universe) != 1 || universe[0].Ticker != "BBCA" {
		t.Errorf("Unexpected universe: %+v", universe)
	}

	if _, err := LoadUniverseFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
