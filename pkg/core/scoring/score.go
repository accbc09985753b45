// Package scoring implements the 8-factor composite score with a
// sector-conditional macro alignment bonus. Breakpoints are policy, not
// tunables; presets may reweight the factors but never move the tiers.
//
// Missing or out-of-range inputs contribute zero to their factor. No factor
// can go negative and the total is clamped to [0, 100]. The computation is
// pure: identical inputs always produce identical results.
package scoring

import (
	"math"
	"strings"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
)

// Per-factor caps and the overall ceiling.
const (
	MaxTotal           = 100.0
	CapValuation       = 15.0
	CapQuality         = 15.0
	CapGrowth          = 10.0
	CapFinancialHealth = 10.0
	CapTechnical       = 20.0
	CapSentiment       = 15.0
	CapLiquidity       = 10.0
	CapAnalystCoverage = 5.0
	CapMacroBonus      = 5.0
)

// evEBITDAProxyFactor approximates EV/EBITDA from P/E when enterprise
// figures are not on the record.
const evEBITDAProxyFactor = 0.65

// Breakdown carries each factor's capped sub-score.
type Breakdown struct {
	Valuation       float64 `json:"valuation"`
	Quality         float64 `json:"quality"`
	Growth          float64 `json:"growth"`
	FinancialHealth float64 `json:"financialHealth"`
	Technical       float64 `json:"technical"`
	Sentiment       float64 `json:"sentiment"`
	Liquidity       float64 `json:"liquidity"`
	AnalystCoverage float64 `json:"analystCoverage"`
	MacroBonus      float64 `json:"macroBonus"`
}

// ScoreResult is the composite score for one company.
type ScoreResult struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// ComputeScore scores a company under the given macro context.
func ComputeScore(c *company.Company, macro assumption.MacroContext) *ScoreResult {
	b := Breakdown{
		Valuation:       valuationScore(c),
		Quality:         qualityScore(c),
		Growth:          growthScore(c),
		FinancialHealth: financialHealthScore(c),
		Technical:       technicalScore(c),
		Sentiment:       sentimentScore(c),
		Liquidity:       liquidityScore(c, macro),
		AnalystCoverage: analystCoverageScore(c, macro),
		MacroBonus:      macroAlignmentBonus(c.Sector, macro),
	}

	total := b.Valuation + b.Quality + b.Growth + b.FinancialHealth +
		b.Technical + b.Sentiment + b.Liquidity + b.AnalystCoverage + b.MacroBonus
	return &ScoreResult{
		Total:     clamp(total, 0, MaxTotal),
		Breakdown: b,
	}
}

// WeightedTotal recomputes the total under a preset without mutating the
// breakdown. The macro bonus is not a factor and is carried at weight 1.
func (r *ScoreResult) WeightedTotal(p assumption.ScorePreset) float64 {
	b := r.Breakdown
	total := b.Valuation*p.Valuation +
		b.Quality*p.Quality +
		b.Growth*p.Growth +
		b.FinancialHealth*p.FinancialHealth +
		b.Technical*p.Technical +
		b.Sentiment*p.Sentiment +
		b.Liquidity*p.Liquidity +
		b.AnalystCoverage*p.AnalystCoverage +
		b.MacroBonus
	return clamp(total, 0, MaxTotal)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// valuationScore rewards cheap multiples: P/E, P/B, and an EV/EBITDA proxy
// derived from P/E. Each ratio only counts when present and sane.
func valuationScore(c *company.Company) float64 {
	s := 0.0
	if c.UsablePE() {
		pe := *c.PE
		switch {
		case pe < 8:
			s += 6
		case pe < 12:
			s += 4
		case pe < 15:
			s += 3
		case pe < 20:
			s += 2
		}
		evProxy := pe * evEBITDAProxyFactor
		switch {
		case evProxy < 5:
			s += 4
		case evProxy < 6.5:
			s += 3
		case evProxy < 8:
			s += 2
		}
	}
	if c.UsablePB() {
		switch pb := *c.PB; {
		case pb < 1:
			s += 5
		case pb < 2:
			s += 3
		case pb < 3:
			s += 2
		}
	}
	return math.Min(s, CapValuation)
}

// qualityScore rewards profitability and cash discipline: ROE, free cash
// flow conversion, and operating margin (EBITDA preferred over gross).
func qualityScore(c *company.Company) float64 {
	s := 0.0
	if c.ROE != nil {
		switch roe := *c.ROE; {
		case roe > 25:
			s += 6
		case roe > 15:
			s += 4
		case roe > 10:
			s += 2
		}
	}
	if c.FCFConversion != nil {
		switch conv := *c.FCFConversion; {
		case conv > 0.8:
			s += 5
		case conv > 0.5:
			s += 3
		case conv > 0.3:
			s += 1
		}
	}
	if margin, ok := c.Margin(); ok {
		switch {
		case margin > 40:
			s += 4
		case margin > 25:
			s += 3
		case margin > 15:
			s += 1
		}
	}
	return math.Min(s, CapQuality)
}

// growthScore rewards positive revenue, EPS and net income growth.
func growthScore(c *company.Company) float64 {
	s := 0.0
	s += growthTier(c.RevenueGrowth, 4, 3, 1)
	s += growthTier(c.EPSGrowth, 4, 3, 1)
	if c.NetIncomeGrowth != nil {
		switch g := *c.NetIncomeGrowth; {
		case g > 20:
			s += 2
		case g > 0:
			s += 1
		}
	}
	return math.Min(s, CapGrowth)
}

func growthTier(g *float64, high, mid, low float64) float64 {
	if g == nil {
		return 0
	}
	switch {
	case *g > 20:
		return high
	case *g > 10:
		return mid
	case *g > 0:
		return low
	}
	return 0
}

// financialHealthScore rewards low leverage and liquid balance sheets.
func financialHealthScore(c *company.Company) float64 {
	s := 0.0
	if c.DebtToEquity != nil && *c.DebtToEquity >= 0 {
		switch de := *c.DebtToEquity; {
		case de < 25:
			s += 4
		case de < 50:
			s += 3
		case de < 75:
			s += 2
		case de < 100:
			s += 1
		}
	}
	if c.CurrentRatio != nil {
		switch cr := *c.CurrentRatio; {
		case cr > 2:
			s += 3
		case cr > 1.5:
			s += 2
		case cr > 1:
			s += 1
		}
	}
	if c.QuickRatio != nil {
		switch qr := *c.QuickRatio; {
		case qr > 1.5:
			s += 3
		case qr > 1:
			s += 2
		case qr > 0.7:
			s += 1
		}
	}
	return math.Min(s, CapFinancialHealth)
}

// technicalScore rewards price momentum, alpha, and a beta sweet spot around
// the market.
func technicalScore(c *company.Company) float64 {
	s := 0.0
	if c.YTDReturn != nil {
		switch ytd := *c.YTDReturn; {
		case ytd > 50:
			s += 8
		case ytd > 25:
			s += 6
		case ytd > 10:
			s += 4
		case ytd > 0:
			s += 2
		}
	}
	if c.Alpha != nil {
		switch a := *c.Alpha; {
		case a > 0.5:
			s += 6
		case a > 0.2:
			s += 4
		case a > 0:
			s += 2
		}
	}
	if c.Beta != nil {
		beta := *c.Beta
		switch {
		case beta >= 0.8 && beta <= 1.2:
			s += 6
		case beta >= 0.6 && beta <= 1.4:
			s += 4
		case beta >= 0.4 && beta <= 1.6:
			s += 2
		default:
			s += 1
		}
	}
	return math.Min(s, CapTechnical)
}

// sentimentScore reads bullishness from the same momentum inputs as the
// technical factor but at different breakpoints, plus a stability bonus for
// low-beta names that are still positive on the year.
func sentimentScore(c *company.Company) float64 {
	s := 0.0
	if c.YTDReturn != nil {
		switch ytd := *c.YTDReturn; {
		case ytd > 30:
			s += 6
		case ytd > 15:
			s += 4
		case ytd > 5:
			s += 2
		}
	}
	if c.Alpha != nil {
		switch a := *c.Alpha; {
		case a > 0.3:
			s += 4
		case a > 0.1:
			s += 2
		case a > 0:
			s += 1
		}
	}
	if c.Beta != nil && c.YTDReturn != nil && *c.Beta < 1 && *c.YTDReturn > 0 {
		s += 5
	}
	return math.Min(s, CapSentiment)
}

// marketCapIDR normalizes a market cap onto the IDR scale the liquidity
// tiers are written in. US records are quoted in USD.
func marketCapIDR(c *company.Company, macro assumption.MacroContext) float64 {
	if c.Region != company.RegionUS {
		return c.MarketCap
	}
	fx := macro.USDIDR
	if fx <= 0 {
		fx = 16000
	}
	return c.MarketCap * fx
}

// liquidityScore tiers market cap (IDR scale) and index weight.
func liquidityScore(c *company.Company, macro assumption.MacroContext) float64 {
	s := 0.0
	switch mc := marketCapIDR(c, macro); {
	case mc > 100e12:
		s += 6
	case mc > 50e12:
		s += 5
	case mc > 10e12:
		s += 4
	case mc > 1e12:
		s += 2
	case mc > 0:
		s += 1
	}
	if c.IndexWeight != nil {
		switch w := *c.IndexWeight; {
		case w > 5:
			s += 4
		case w > 2:
			s += 3
		case w > 0.5:
			s += 2
		case w > 0:
			s += 1
		}
	}
	return math.Min(s, CapLiquidity)
}

// analystCoverageScore proxies coverage from index weight when available and
// falls back to market cap for universes without index weights (US names).
func analystCoverageScore(c *company.Company, macro assumption.MacroContext) float64 {
	if c.IndexWeight != nil {
		switch w := *c.IndexWeight; {
		case w > 3:
			return 5
		case w > 1:
			return 4
		case w > 0.3:
			return 3
		case w > 0:
			return 2
		}
		return 0
	}
	switch mc := marketCapIDR(c, macro); {
	case mc > 50e12:
		return 4
	case mc > 10e12:
		return 3
	case mc > 1e12:
		return 2
	case mc > 0:
		return 1
	}
	return 0
}

// macroAlignmentBonus grants sector-conditional points when the macro
// backdrop favors the sector. Capped at CapMacroBonus before the final
// clamp.
func macroAlignmentBonus(sector string, macro assumption.MacroContext) float64 {
	s := strings.ToLower(sector)
	bonus := 0.0
	switch {
	case strings.Contains(s, "energy"):
		if macro.OilPrice > 75 {
			bonus += 3
		}
	case strings.Contains(s, "financ") || strings.Contains(s, "bank"):
		if macro.BIRate >= 5.5 && macro.BIRate <= 7 {
			bonus += 3
		}
	case strings.Contains(s, "consumer"):
		if macro.GDPGrowth > 4.5 && macro.Inflation < 4 {
			bonus += 3
		}
	case strings.Contains(s, "tech") || strings.Contains(s, "communicat"):
		if macro.GDPGrowth > 5 {
			bonus += 2
		}
	case strings.Contains(s, "material") || strings.Contains(s, "industrial"):
		if macro.PMI > 50 {
			bonus += 2
		}
	}
	return math.Min(bonus, CapMacroBonus)
}
