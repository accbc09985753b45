package screener

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
)

func testUniverse() []company.Company {
	return []company.Company{
		{
			Ticker: "BBCA", Name: "Bank Central Asia", Region: "Indonesia", Sector: "Financial",
			Price: 9850, MarketCap: 1200e12,
			PE: company.Float(9.8), PB: company.Float(1.9),
			ROE: company.Float(19.53), DebtToEquity: company.Float(62.14),
			Beta: company.Float(1.33), YTDReturn: company.Float(-7.35),
			RevenueGrowth: company.Float(8),
		},
		{
			Ticker: "BBRI", Name: "Bank Rakyat", Region: "Indonesia", Sector: "Financial",
			Price: 4200, MarketCap: 640e12,
			PE: company.Float(11.2), PB: company.Float(2.1),
			ROE: company.Float(17.8), DebtToEquity: company.Float(70),
		},
		{
			Ticker: "TLKM", Name: "Telkom Indonesia", Region: "Indonesia", Sector: "Communication",
			Price: 3100, MarketCap: 307e12,
			PE: company.Float(12.5), PB: company.Float(2.4),
			ROE: company.Float(18.1),
		},
	}
}

func TestEnrichPreservesOrderAndInput(t *testing.T) {
	s := New(assumption.DefaultConfig())
	universe := testUniverse()
	before := make([]company.Company, len(universe))
	copy(before, universe)

	out := s.Enrich(universe)
	if len(out) != len(universe) {
		t.Fatalf("Expected %d records, got %d", len(universe), len(out))
	}
	for i := range out {
		if out[i].Ticker != universe[i].Ticker {
			t.Errorf("Record %d out of order: %s vs %s", i, out[i].Ticker, universe[i].Ticker)
		}
	}
	if !reflect.DeepEqual(before, universe) {
		t.Error("Enrich mutated the input universe")
	}
}

func TestEnrichIdempotent(t *testing.T) {
	s := New(assumption.DefaultConfig())
	first := s.Enrich(testUniverse())
	second := s.Enrich(testUniverse())
	if !reflect.DeepEqual(first, second) {
		t.Error("Identical universes produced different enrichments")
	}
}

func TestEnrichResults(t *testing.T) {
	s := New(assumption.DefaultConfig())
	out := s.Enrich(testUniverse())

	bbca := out[0]
	if bbca.Score == nil || bbca.Score.Total <= 0 {
		t.Errorf("Expected positive score for BBCA, got %+v", bbca.Score)
	}
	if bbca.DCF == nil {
		t.Fatal("DCF must always be present")
	}
	if bbca.DCFDegenerate {
		t.Error("Default assumptions must not produce a degenerate terminal value")
	}
	if bbca.Comps == nil {
		t.Fatal("BBCA has a sector/region peer, comps must be present")
	}
	if len(bbca.Comps.Peers) != 1 || bbca.Comps.Peers[0].Ticker != "BBRI" {
		t.Errorf("Expected BBRI as the single peer, got %+v", bbca.Comps.Peers)
	}

	// TLKM is alone in its sector: no peers, nil comps.
	tlkm := out[2]
	if tlkm.Comps != nil {
		t.Errorf("Lone-sector record must have nil comps, got %+v", tlkm.Comps)
	}
}

func TestEnrichOneMatchesBatch(t *testing.T) {
	s := New(assumption.DefaultConfig())
	universe := testUniverse()
	batch := s.Enrich(universe)
	for i := range universe {
		single := s.EnrichOne(universe[i], universe)
		if !reflect.DeepEqual(batch[i], single) {
			t.Errorf("%s: single enrichment diverges from batch", universe[i].Ticker)
		}
	}
}

func TestEnrichDegenerateFlag(t *testing.T) {
	cfg := assumption.DefaultConfig()
	cfg.Regions = assumption.Table{
		"Indonesia": {
			RiskFreeRate:      0.01,
			EquityRiskPremium: 0.01,
			TerminalGrowth:    0.50,
			TaxRate:           0.25,
		},
	}
	s := New(cfg)
	out := s.Enrich(testUniverse())
	for _, rec := range out {
		if !rec.DCFDegenerate {
			t.Errorf("%s: expected degenerate DCF under terminal growth above WACC", rec.Ticker)
		}
		if rec.DCF == nil {
			t.Errorf("%s: degenerate DCF must still carry the explicit series", rec.Ticker)
		}
	}
}

func TestEnrichedJSONShape(t *testing.T) {
	s := New(assumption.DefaultConfig())
	out := s.Enrich(testUniverse())

	raw, err := json.Marshal(out[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	body := string(raw)
	for _, key := range []string{`"natanScore"`, `"dcf"`, `"comps"`, `"ticker"`} {
		if !strings.Contains(body, key) {
			t.Errorf("Enriched JSON missing %s key", key)
		}
	}

	// Nil comps must serialize as an explicit null, not be dropped.
	raw, err = json.Marshal(out[2])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"comps":null`) {
		t.Errorf("Expected explicit comps null, got %s", raw)
	}
}
