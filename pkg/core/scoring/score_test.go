package scoring

import (
	"math"
	"reflect"
	"testing"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
)

// Indonesian bank profile: cheap multiples, solid ROE, moderate leverage,
// negative year so far.
func bankCompany() company.Company {
	return company.Company{
		Ticker:       "BBCA",
		Region:       "Indonesia",
		Sector:       "Financial",
		Price:        9850,
		PE:           company.Float(9.8),
		PB:           company.Float(1.9),
		ROE:          company.Float(19.53),
		DebtToEquity: company.Float(62.14),
		Beta:         company.Float(1.33),
		YTDReturn:    company.Float(-7.35),
	}
}

func TestScoreBankProfile(t *testing.T) {
	c := bankCompany()
	res := ComputeScore(&c, assumption.DefaultMacro())
	b := res.Breakdown

	// P/E 9.8 lands in the <12 tier (4), the EV proxy 6.37 in the <6.5
	// tier (3), P/B 1.9 in the <2 tier (3).
	if b.Valuation != 10 {
		t.Errorf("Valuation: expected 10, got %f", b.Valuation)
	}
	// ROE 19.53 clears the >15 tier only.
	if b.Quality != 4 {
		t.Errorf("Quality: expected 4, got %f", b.Quality)
	}
	// D/E 62.14 lands in the <75 penalty tier.
	if b.FinancialHealth != 2 {
		t.Errorf("FinancialHealth: expected 2, got %f", b.FinancialHealth)
	}
	// Negative YTD contributes nothing; beta 1.33 is in the wide band.
	if b.Technical != 4 {
		t.Errorf("Technical: expected 4, got %f", b.Technical)
	}
	if b.Sentiment != 0 {
		t.Errorf("Sentiment: expected 0 on a negative year, got %f", b.Sentiment)
	}
	if b.Growth != 0 {
		t.Errorf("Growth: expected 0 without growth fields, got %f", b.Growth)
	}
	// Financial sector with BI rate 5.75 inside [5.5, 7].
	if b.MacroBonus != 3 {
		t.Errorf("MacroBonus: expected 3, got %f", b.MacroBonus)
	}
	want := b.Valuation + b.Quality + b.Growth + b.FinancialHealth +
		b.Technical + b.Sentiment + b.Liquidity + b.AnalystCoverage + b.MacroBonus
	if math.Abs(res.Total-want) > 1e-9 {
		t.Errorf("Total %f does not equal sum of breakdown %f", res.Total, want)
	}
}

func TestScoreEmptyCompanyIsZero(t *testing.T) {
	c := company.Company{Ticker: "X", Region: "Indonesia", Sector: ""}
	res := ComputeScore(&c, assumption.DefaultMacro())
	if res.Total != 0 {
		t.Errorf("Empty record must score 0, got %f", res.Total)
	}
	if res.Breakdown != (Breakdown{}) {
		t.Errorf("Empty record must have an all-zero breakdown, got %+v", res.Breakdown)
	}
}

func TestScoreMissingFieldsNeverPenalize(t *testing.T) {
	full := bankCompany()
	partial := full
	partial.DebtToEquity = nil
	partial.Beta = nil
	partial.YTDReturn = nil

	fullRes := ComputeScore(&full, assumption.DefaultMacro())
	partialRes := ComputeScore(&partial, assumption.DefaultMacro())
	if partialRes.Total > fullRes.Total {
		// Dropping DE removes a positive tier here, so partial <= full.
		t.Errorf("Missing fields raised the score: %f > %f", partialRes.Total, fullRes.Total)
	}
	if partialRes.Breakdown.FinancialHealth != 0 {
		t.Errorf("No leverage data must mean zero health contribution, got %f", partialRes.Breakdown.FinancialHealth)
	}
	if partialRes.Breakdown.Technical != 0 {
		t.Errorf("No momentum data must mean zero technical contribution, got %f", partialRes.Breakdown.Technical)
	}
}

func TestScoreClampAtHundred(t *testing.T) {
	// Every factor at its cap plus the macro bonus sums past 100.
	c := company.Company{
		Ticker:          "MAXX",
		Region:          "Indonesia",
		Sector:          "Energy",
		Price:           1000,
		MarketCap:       200e12,
		PE:              company.Float(5),
		PB:              company.Float(0.5),
		ROE:             company.Float(30),
		FCFConversion:   company.Float(0.9),
		EBITDAMargin:    company.Float(50),
		RevenueGrowth:   company.Float(25),
		EPSGrowth:       company.Float(25),
		NetIncomeGrowth: company.Float(25),
		DebtToEquity:    company.Float(10),
		CurrentRatio:    company.Float(2.5),
		QuickRatio:      company.Float(2),
		YTDReturn:       company.Float(60),
		Alpha:           company.Float(0.6),
		Beta:            company.Float(0.9),
		IndexWeight:     company.Float(6),
	}
	macro := assumption.DefaultMacro()
	macro.OilPrice = 80

	res := ComputeScore(&c, macro)
	raw := res.Breakdown.Valuation + res.Breakdown.Quality + res.Breakdown.Growth +
		res.Breakdown.FinancialHealth + res.Breakdown.Technical + res.Breakdown.Sentiment +
		res.Breakdown.Liquidity + res.Breakdown.AnalystCoverage + res.Breakdown.MacroBonus
	if raw <= MaxTotal {
		t.Fatalf("Test fixture no longer overflows the cap: raw sum %f", raw)
	}
	if res.Total != MaxTotal {
		t.Errorf("Expected total clamped to %f, got %f", MaxTotal, res.Total)
	}
}

func TestScoreDeterministic(t *testing.T) {
	c := bankCompany()
	macro := assumption.DefaultMacro()
	first := ComputeScore(&c, macro)
	for i := 0; i < 5; i++ {
		again := ComputeScore(&c, macro)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Score diverged on run %d: %+v vs %+v", i, first, again)
		}
	}
}

func TestWeightedTotal(t *testing.T) {
	c := bankCompany()
	res := ComputeScore(&c, assumption.DefaultMacro())

	balanced := res.WeightedTotal(assumption.DefaultPreset())
	if math.Abs(balanced-res.Total) > 1e-9 {
		t.Errorf("Balanced preset must match the raw total: %f vs %f", balanced, res.Total)
	}

	b := res.Breakdown
	p := assumption.ValuePreset()
	want := b.Valuation*p.Valuation + b.Quality*p.Quality + b.Growth*p.Growth +
		b.FinancialHealth*p.FinancialHealth + b.Technical*p.Technical +
		b.Sentiment*p.Sentiment + b.Liquidity*p.Liquidity +
		b.AnalystCoverage*p.AnalystCoverage + b.MacroBonus
	if got := res.WeightedTotal(p); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value preset: expected %f, got %f", want, got)
	}

	// The breakdown itself is never mutated by reweighting.
	if res.Breakdown != b {
		t.Error("WeightedTotal mutated the breakdown")
	}
}

func TestMacroAlignmentBonus(t *testing.T) {
	macro := assumption.DefaultMacro()
	cases := []struct {
		sector string
		want   float64
	}{
		{"Financial", 3}, // BI rate 5.75 in band
		{"Banking", 3},
		{"Energy", 3},            // oil 78.5 > 75
		{"Consumer Cyclical", 3}, // GDP 5.05 > 4.5, inflation 2.57 < 4
		{"Technology", 2},        // GDP 5.05 > 5
		{"Communication", 2},
		{"Basic Materials", 2}, // PMI 52.9 > 50
		{"Healthcare", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := macroAlignmentBonus(tc.sector, macro); got != tc.want {
			t.Errorf("Sector %q: expected bonus %f, got %f", tc.sector, tc.want, got)
		}
	}
}

func TestLiquidityUSConversion(t *testing.T) {
	// A 100B USD mega cap converted at USDIDR lands in the top tier even
	// though the raw number is tiny on the IDR scale.
	c := company.Company{
		Ticker:    "AAPL",
		Region:    company.RegionUS,
		Sector:    "Technology",
		Price:     200,
		MarketCap: 100e9,
	}
	if got := liquidityScore(&c, assumption.DefaultMacro()); got != 6 {
		t.Errorf("Expected top liquidity tier 6 for converted US mega cap, got %f", got)
	}
}
