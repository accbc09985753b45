// Package company defines the input record for the screening universe and the
// centralized usable-value guards shared by the valuation and scoring engines.
package company

// Region identifiers for the supported markets.
const (
	RegionIndonesia = "Indonesia"
	RegionUS        = "US"
)

// Company is a single stock in the screening universe. Only Ticker and Region
// are required; every fundamental is optional and absence means "unknown",
// not zero. Percent-quoted ratios (ROE, DebtToEquity, growth rates, margins,
// DividendYield, IndexWeight, YTDReturn) carry percent values, e.g. 62.14
// means 62.14%.
type Company struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name,omitempty"`
	Region    string  `json:"region"`
	Sector    string  `json:"sector,omitempty"`
	Industry  string  `json:"industry,omitempty"`
	Price     float64 `json:"price,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`

	PE                *float64 `json:"pe,omitempty"`
	PB                *float64 `json:"pb,omitempty"`
	ROE               *float64 `json:"roe,omitempty"`
	DebtToEquity      *float64 `json:"debtToEquity,omitempty"`
	CurrentRatio      *float64 `json:"currentRatio,omitempty"`
	QuickRatio        *float64 `json:"quickRatio,omitempty"`
	EBITDAMargin      *float64 `json:"ebitdaMargin,omitempty"`
	GrossMargin       *float64 `json:"grossMargin,omitempty"`
	RevenueGrowth     *float64 `json:"revenueGrowth,omitempty"`
	EPSGrowth         *float64 `json:"epsGrowth,omitempty"`
	NetIncomeGrowth   *float64 `json:"netIncomeGrowth,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
	Alpha             *float64 `json:"alpha,omitempty"`
	DividendYield     *float64 `json:"dividendYield,omitempty"`
	IndexWeight       *float64 `json:"indexWeight,omitempty"`
	YTDReturn         *float64 `json:"ytdReturn,omitempty"`
	FreeCashFlow      *float64 `json:"freeCashFlow,omitempty"`
	FCFConversion     *float64 `json:"fcfConversion,omitempty"`
	SharesOutstanding *float64 `json:"sharesOutstanding,omitempty"`
}

// Float returns a pointer to f. Convenience for building records in tests
// and fixtures.
func Float(f float64) *float64 { return &f }

// Usable reports whether v is present and strictly inside (lo, hi).
// This is the single range+presence guard used everywhere a fundamental is
// consumed; an unusable value contributes nothing, it never penalizes.
func Usable(v *float64, lo, hi float64) bool {
	return v != nil && *v > lo && *v < hi
}

// Present reports whether v is supplied at all.
func Present(v *float64) bool { return v != nil }

// Val returns the value of v, or fallback when absent.
func Val(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Sane bounds for the multiples consumed by scoring and comparables.
// Values outside these are treated as missing (bad data, not bad company).
const (
	MaxSanePE = 500.0
	MaxSanePB = 100.0
)

// UsablePE reports whether the company's P/E is positive and below the sane
// bound.
func (c *Company) UsablePE() bool { return Usable(c.PE, 0, MaxSanePE) }

// UsablePB reports whether the company's P/B is positive and below the sane
// bound.
func (c *Company) UsablePB() bool { return Usable(c.PB, 0, MaxSanePB) }

// Margin returns the best available margin figure, preferring EBITDA margin
// over gross margin. ok is false when neither is supplied.
func (c *Company) Margin() (float64, bool) {
	if c.EBITDAMargin != nil {
		return *c.EBITDAMargin, true
	}
	if c.GrossMargin != nil {
		return *c.GrossMargin, true
	}
	return 0, false
}
