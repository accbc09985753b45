// Package valuation implements the intrinsic-value engines of the screener:
// WACC, a 5-year two-stage DCF, and peer-comparable implied valuation. All
// functions are pure; inputs default rather than error, with the single
// exception of the degenerate Gordon terminal value.
package valuation

import (
	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
)

// Leverage defaults applied when debt-to-equity is not reported.
const (
	defaultBeta      = 1.0
	defaultDebtRatio = 0.30
)

// syntheticCostOfDebt proxies a credit rating from leverage. Tiers step up
// with debt-to-equity (percent): low leverage borrows near investment grade,
// high leverage pays a speculative premium.
func syntheticCostOfDebt(debtToEquity float64) float64 {
	switch {
	case debtToEquity < 50:
		return 0.07
	case debtToEquity < 100:
		return 0.085
	default:
		return 0.10
	}
}

// debtRatio converts a debt-to-equity percentage into a debt weight D/V.
// D/E = x% means D/V = x/(100+x).
func debtRatio(c *company.Company) float64 {
	if c.DebtToEquity != nil && *c.DebtToEquity >= 0 {
		de := *c.DebtToEquity
		return de / (100 + de)
	}
	return defaultDebtRatio
}

// ComputeWACC blends CAPM cost of equity with the synthetic after-tax cost of
// debt. The result is a decimal fraction (0.12 = 12%). Missing inputs fall
// back to defaults; the function always returns a usable rate.
//
// Ke = Rf + beta * ERP
// WACC = We*Ke + Wd*Kd*(1 - tax)
func ComputeWACC(c *company.Company, region assumption.RegionAssumptions) float64 {
	beta := company.Val(c.Beta, defaultBeta)
	costOfEquity := region.RiskFreeRate + beta*region.EquityRiskPremium

	wd := debtRatio(c)
	we := 1 - wd

	// Implied D/E for the default debt weight keeps the rating proxy
	// consistent when leverage is unreported.
	de := company.Val(c.DebtToEquity, 100*wd/(1-wd))
	costOfDebt := syntheticCostOfDebt(de)

	return we*costOfEquity + wd*costOfDebt*(1-region.TaxRate)
}
