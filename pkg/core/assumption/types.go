// Package assumption holds the immutable configuration consumed by the
// valuation and scoring engines: per-region discount inputs, the macro
// context for sector alignment, and score weight presets. Everything here is
// plain data passed explicitly into the computation functions so that two
// configurations can be evaluated side by side.
package assumption

// RegionAssumptions are the per-market capital assumptions used by WACC and
// DCF. All rates are decimal fractions (0.0685 = 6.85%).
type RegionAssumptions struct {
	RiskFreeRate       float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	EquityRiskPremium  float64 `json:"equity_risk_premium" yaml:"equity_risk_premium"`
	TerminalGrowth     float64 `json:"terminal_growth" yaml:"terminal_growth"`
	TaxRate            float64 `json:"tax_rate" yaml:"tax_rate"`
	CountryRiskPremium float64 `json:"country_risk_premium,omitempty" yaml:"country_risk_premium,omitempty"`
}

// Table maps a region name to its assumption set.
type Table map[string]RegionAssumptions

// DefaultRegion is the baseline used for unmapped region keys.
const DefaultRegion = "Indonesia"

// DefaultTable returns the built-in assumption sets for the supported
// markets. 10Y government yields, Damodaran-style risk premia.
func DefaultTable() Table {
	return Table{
		"Indonesia": {
			RiskFreeRate:       0.0685,
			EquityRiskPremium:  0.08,
			TerminalGrowth:     0.04,
			TaxRate:            0.22,
			CountryRiskPremium: 0.0225,
		},
		"US": {
			RiskFreeRate:      0.0425,
			EquityRiskPremium: 0.055,
			TerminalGrowth:    0.025,
			TaxRate:           0.21,
		},
	}
}

// Resolve returns the assumption set for region, falling back to the
// DefaultRegion baseline when the key is unmapped. A region referenced by a
// company therefore always resolves to something usable.
func (t Table) Resolve(region string) RegionAssumptions {
	if a, ok := t[region]; ok {
		return a
	}
	return t[DefaultRegion]
}

// MacroContext carries the macro readings used by the sector alignment bonus.
// GDPGrowth and Inflation are percent values, BIRate is the Bank Indonesia
// policy rate in percent, OilPrice is USD/bbl Brent, PMI the manufacturing
// index level, USDIDR the spot rate used to put US market caps on the IDR
// scale the liquidity tiers are written in.
type MacroContext struct {
	GDPGrowth float64 `json:"gdp_growth" yaml:"gdp_growth"`
	Inflation float64 `json:"inflation" yaml:"inflation"`
	BIRate    float64 `json:"bi_rate" yaml:"bi_rate"`
	OilPrice  float64 `json:"oil_price" yaml:"oil_price"`
	PMI       float64 `json:"pmi" yaml:"pmi"`
	USDIDR    float64 `json:"usd_idr" yaml:"usd_idr"`
}

// DefaultMacro returns a recent-history snapshot of the macro inputs.
func DefaultMacro() MacroContext {
	return MacroContext{
		GDPGrowth: 5.05,
		Inflation: 2.57,
		BIRate:    5.75,
		OilPrice:  78.5,
		PMI:       52.9,
		USDIDR:    16250,
	}
}

// ScorePreset remixes the relative weight of the eight score factors. The
// factor breakpoints themselves are policy and not configurable; presets only
// reweight the already-capped sub-scores.
type ScorePreset struct {
	Name            string  `json:"name" yaml:"name"`
	Valuation       float64 `json:"valuation" yaml:"valuation"`
	Quality         float64 `json:"quality" yaml:"quality"`
	Growth          float64 `json:"growth" yaml:"growth"`
	FinancialHealth float64 `json:"financial_health" yaml:"financial_health"`
	Technical       float64 `json:"technical" yaml:"technical"`
	Sentiment       float64 `json:"sentiment" yaml:"sentiment"`
	Liquidity       float64 `json:"liquidity" yaml:"liquidity"`
	AnalystCoverage float64 `json:"analyst_coverage" yaml:"analyst_coverage"`
}

// DefaultPreset weights every factor equally at 1.0, i.e. the raw breakdown.
func DefaultPreset() ScorePreset {
	return ScorePreset{
		Name:            "balanced",
		Valuation:       1.0,
		Quality:         1.0,
		Growth:          1.0,
		FinancialHealth: 1.0,
		Technical:       1.0,
		Sentiment:       1.0,
		Liquidity:       1.0,
		AnalystCoverage: 1.0,
	}
}

// ValuePreset overweights the fundamental factors and mutes momentum.
func ValuePreset() ScorePreset {
	return ScorePreset{
		Name:            "value",
		Valuation:       1.6,
		Quality:         1.4,
		Growth:          0.8,
		FinancialHealth: 1.2,
		Technical:       0.5,
		Sentiment:       0.5,
		Liquidity:       1.0,
		AnalystCoverage: 1.0,
	}
}

// MomentumPreset overweights technicals and sentiment.
func MomentumPreset() ScorePreset {
	return ScorePreset{
		Name:            "momentum",
		Valuation:       0.6,
		Quality:         0.8,
		Growth:          1.2,
		FinancialHealth: 0.8,
		Technical:       1.6,
		Sentiment:       1.5,
		Liquidity:       1.0,
		AnalystCoverage: 0.5,
	}
}

// Config is the full assumption bundle a screening run is evaluated under.
type Config struct {
	Regions Table         `json:"regions" yaml:"regions"`
	Macro   MacroContext  `json:"macro" yaml:"macro"`
	Presets []ScorePreset `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// DefaultConfig returns the built-in assumption bundle.
func DefaultConfig() Config {
	return Config{
		Regions: DefaultTable(),
		Macro:   DefaultMacro(),
		Presets: []ScorePreset{DefaultPreset(), ValuePreset(), MomentumPreset()},
	}
}
