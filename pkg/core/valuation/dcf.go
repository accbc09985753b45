package valuation

import (
	"errors"
	"math"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
)

// ProjectionYears is the explicit DCF forecast horizon.
const ProjectionYears = 5

// Proxy constants used when reported figures are unavailable.
const (
	fcfYieldProxy  = 0.05 // base FCF as a share of market cap
	netDebtHaircut = 0.7  // trims the leverage-implied debt estimate
)

// defaultGrowth is the year-1 growth assumption (decimal) when revenue
// growth is not reported.
const defaultGrowth = 0.08

// ErrDegenerateTerminalValue is returned when WACC does not exceed the
// terminal growth rate. The Gordon perpetuity is undefined there; the result
// still carries the explicit-period series but no terminal or fair value.
var ErrDegenerateTerminalValue = errors.New("wacc does not exceed terminal growth, terminal value undefined")

// DCFResult is the full output of a DCF run, including the year-by-year
// series the model-details view renders.
type DCFResult struct {
	FairValue       float64  `json:"fairValue"`
	Upside          float64  `json:"upside"`
	WACC            float64  `json:"wacc"`
	EnterpriseValue float64  `json:"enterpriseValue"`
	EquityValue     float64  `json:"equityValue"`
	TerminalValue   *float64 `json:"terminalValue"` // nil when degenerate
	PVExplicit      float64  `json:"pvExplicit"`
	PVTerminal      float64  `json:"pvTerminal"`
	BaseFCF         float64  `json:"baseFcf"`
	NetDebt         float64  `json:"netDebt"`

	GrowthPath    []float64 `json:"growthPath"`    // decimal growth per year
	ProjectedFCF  []float64 `json:"projectedFcf"`  // nominal FCF per year
	DiscountedFCF []float64 `json:"discountedFcf"` // PV of each year's FCF
}

// growthPath builds the 5-point decay from the starting growth rate toward
// the terminal rate: each of years 2-4 is 90%, 80%, 70% of the prior step,
// floored at terminal growth, and year 5 lands on terminal growth exactly.
// An H-model style fast convergence rather than a flat projection.
func growthPath(start, terminal float64) []float64 {
	path := make([]float64, ProjectionYears)
	path[0] = start
	decay := []float64{0.9, 0.8, 0.7}
	for i := 1; i < ProjectionYears-1; i++ {
		path[i] = math.Max(path[i-1]*decay[i-1], terminal)
	}
	path[ProjectionYears-1] = terminal
	return path
}

// ComputeDCF projects five years of free cash flow, discounts them at the
// company's WACC, and capitalizes the terminal year with Gordon growth.
//
// Every input defaults instead of failing: base FCF falls back to a 5% FCF
// yield on market cap, growth to 8%, leverage to the WACC defaults. The one
// genuinely invalid state, WACC <= terminal growth, returns the partial
// result alongside ErrDegenerateTerminalValue so callers can surface the
// explicit series without trusting the fair value.
func ComputeDCF(c *company.Company, region assumption.RegionAssumptions) (*DCFResult, error) {
	wacc := ComputeWACC(c, region)

	baseFCF := company.Val(c.FreeCashFlow, c.MarketCap*fcfYieldProxy)

	start := defaultGrowth
	if c.RevenueGrowth != nil {
		start = *c.RevenueGrowth / 100
	}
	path := growthPath(start, region.TerminalGrowth)

	projected := make([]float64, ProjectionYears)
	discounted := make([]float64, ProjectionYears)
	fcf := baseFCF
	pvExplicit := 0.0
	for year := 0; year < ProjectionYears; year++ {
		fcf *= 1 + path[year]
		projected[year] = fcf
		discounted[year] = fcf / math.Pow(1+wacc, float64(year+1))
		pvExplicit += discounted[year]
	}

	res := &DCFResult{
		WACC:          wacc,
		BaseFCF:       baseFCF,
		PVExplicit:    pvExplicit,
		GrowthPath:    path,
		ProjectedFCF:  projected,
		DiscountedFCF: discounted,
	}

	if wacc <= region.TerminalGrowth {
		return res, ErrDegenerateTerminalValue
	}

	tv := projected[ProjectionYears-1] * (1 + region.TerminalGrowth) / (wacc - region.TerminalGrowth)
	res.TerminalValue = &tv
	res.PVTerminal = tv / math.Pow(1+wacc, ProjectionYears)

	res.EnterpriseValue = res.PVExplicit + res.PVTerminal

	// Net debt proxy from leverage when explicit debt is not modeled.
	res.NetDebt = c.MarketCap * debtRatio(c) * netDebtHaircut
	res.EquityValue = math.Max(0, res.EnterpriseValue-res.NetDebt)

	res.FairValue = fairValuePerShare(c, res.EquityValue)
	if c.Price > 0 {
		res.Upside = (res.FairValue - c.Price) / c.Price * 100
	}
	return res, nil
}

// fairValuePerShare prefers an explicit share count. Without one it scales
// the equity-value-to-market-cap ratio onto the observed price, which leans
// on market cap twice (net debt above is also mcap-derived) and mildly
// dampens the signal; reported shares outstanding avoid that circularity.
func fairValuePerShare(c *company.Company, equityValue float64) float64 {
	if c.SharesOutstanding != nil && *c.SharesOutstanding > 0 {
		return equityValue / *c.SharesOutstanding
	}
	if c.MarketCap <= 0 {
		return 0
	}
	return equityValue / c.MarketCap * c.Price
}
