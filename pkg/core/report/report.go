// Package report renders enriched screening records as Markdown research
// notes for export alongside the screener table.
package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"equity_screener/pkg/core/screener"
)

// ResearchNote renders a Markdown research note for one enriched record and
// verifies the output parses as Markdown before returning it.
func ResearchNote(rec *screener.EnrichedCompany) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("nil record")
	}

	var b strings.Builder
	name := rec.Name
	if name == "" {
		name = rec.Ticker
	}
	fmt.Fprintf(&b, "# %s (%s)\n\n", name, rec.Ticker)
	fmt.Fprintf(&b, "%s / %s — price %.2f, market cap %.0f\n\n", rec.Region, rec.Sector, rec.Price, rec.MarketCap)

	writeScore(&b, rec)
	writeDCF(&b, rec)
	writeComps(&b, rec)

	note := b.String()
	if !validMarkdown(note) {
		return "", fmt.Errorf("generated note for %s is not valid markdown", rec.Ticker)
	}
	return note, nil
}

func writeScore(b *strings.Builder, rec *screener.EnrichedCompany) {
	if rec.Score == nil {
		return
	}
	s := rec.Score
	fmt.Fprintf(b, "## Composite score: %.1f / 100\n\n", s.Total)
	fmt.Fprintf(b, "| Factor | Score |\n|---|---|\n")
	fmt.Fprintf(b, "| Valuation | %.1f |\n", s.Breakdown.Valuation)
	fmt.Fprintf(b, "| Quality | %.1f |\n", s.Breakdown.Quality)
	fmt.Fprintf(b, "| Growth | %.1f |\n", s.Breakdown.Growth)
	fmt.Fprintf(b, "| Financial health | %.1f |\n", s.Breakdown.FinancialHealth)
	fmt.Fprintf(b, "| Technical | %.1f |\n", s.Breakdown.Technical)
	fmt.Fprintf(b, "| Sentiment | %.1f |\n", s.Breakdown.Sentiment)
	fmt.Fprintf(b, "| Liquidity | %.1f |\n", s.Breakdown.Liquidity)
	fmt.Fprintf(b, "| Analyst coverage | %.1f |\n", s.Breakdown.AnalystCoverage)
	fmt.Fprintf(b, "| Macro alignment | %.1f |\n\n", s.Breakdown.MacroBonus)
}

func writeDCF(b *strings.Builder, rec *screener.EnrichedCompany) {
	if rec.DCF == nil {
		return
	}
	d := rec.DCF
	fmt.Fprintf(b, "## DCF model\n\n")
	if rec.DCFDegenerate {
		fmt.Fprintf(b, "**Terminal value undefined** — WACC (%.2f%%) does not exceed terminal growth; fair value is not reliable.\n\n", d.WACC*100)
	} else {
		fmt.Fprintf(b, "Fair value %.2f (upside %+.1f%%), WACC %.2f%%, enterprise value %.0f, equity value %.0f.\n\n",
			d.FairValue, d.Upside, d.WACC*100, d.EnterpriseValue, d.EquityValue)
	}
	fmt.Fprintf(b, "| Year | Growth | Projected FCF | Discounted FCF |\n|---|---|---|---|\n")
	for i := range d.ProjectedFCF {
		fmt.Fprintf(b, "| %d | %.2f%% | %.0f | %.0f |\n", i+1, d.GrowthPath[i]*100, d.ProjectedFCF[i], d.DiscountedFCF[i])
	}
	fmt.Fprintf(b, "\n")
}

func writeComps(b *strings.Builder, rec *screener.EnrichedCompany) {
	fmt.Fprintf(b, "## Comparables\n\n")
	c := rec.Comps
	if c == nil {
		fmt.Fprintf(b, "No qualifying peers in the universe.\n")
		return
	}
	if c.NoSignal {
		fmt.Fprintf(b, "%d peers, but no usable multiple on the target; implied value defaults to the current price.\n\n", len(c.Peers))
	} else {
		fmt.Fprintf(b, "Implied value %.2f (upside %+.1f%%) from %d peers.\n\n", c.ImpliedValue, c.Upside, len(c.Peers))
	}
	if c.MedianPE != nil {
		fmt.Fprintf(b, "- Peer median P/E: %.2f\n", *c.MedianPE)
	}
	if c.MedianPB != nil {
		fmt.Fprintf(b, "- Peer median P/B: %.2f\n", *c.MedianPB)
	}
	for _, p := range c.Peers {
		fmt.Fprintf(b, "- %s (market cap %.0f)\n", p.Ticker, p.MarketCap)
	}
}

// validMarkdown checks the note parses with Goldmark. Goldmark is very
// permissive, so this is a structural sanity check, not a linter.
func validMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader([]byte(input)))
	return doc != nil
}
