// Package screener maps a company universe through the valuation and scoring
// engines to produce the enriched records the screening views consume.
package screener

import (
	"errors"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
	"equity_screener/pkg/core/scoring"
	"equity_screener/pkg/core/valuation"
)

// EnrichedCompany is the original record plus the three derived results.
// Comps is nil when no peer qualifies. DCF is always present; when
// DCFDegenerate is set the terminal value was undefined (WACC at or below
// terminal growth) and the fair value must not be trusted, only the
// explicit-period series.
type EnrichedCompany struct {
	company.Company

	Score         *scoring.ScoreResult         `json:"natanScore"`
	DCF           *valuation.DCFResult         `json:"dcf"`
	DCFDegenerate bool                         `json:"dcfDegenerate,omitempty"`
	Comps         *valuation.ComparablesResult `json:"comps"`
}

// Screener evaluates universes under one assumption bundle. The zero cost of
// construction makes it cheap to hold several side by side when comparing
// configurations.
type Screener struct {
	cfg assumption.Config
}

// New creates a screener over the given assumption bundle.
func New(cfg assumption.Config) *Screener {
	return &Screener{cfg: cfg}
}

// Config returns the assumption bundle the screener evaluates under.
func (s *Screener) Config() assumption.Config { return s.cfg }

// Enrich runs WACC, DCF, comparables and scoring over the whole universe in
// one synchronous pass. The computation is pure and idempotent: identical
// universes yield identical outputs, record order is preserved, and the
// input slice is never mutated.
//
// Comparables are served from a sector x region index built once per call,
// which keeps the pass near-linear for universes far larger than the few
// thousand records the naive per-company rescan was written for.
func (s *Screener) Enrich(universe []company.Company) []EnrichedCompany {
	idx := valuation.NewPeerIndex(universe)
	out := make([]EnrichedCompany, 0, len(universe))
	for i := range universe {
		out = append(out, s.enrichOne(&universe[i], idx))
	}
	return out
}

// EnrichOne evaluates a single company against the supplied universe.
func (s *Screener) EnrichOne(c company.Company, universe []company.Company) EnrichedCompany {
	return s.enrichOne(&c, valuation.NewPeerIndex(universe))
}

func (s *Screener) enrichOne(c *company.Company, idx *valuation.PeerIndex) EnrichedCompany {
	region := s.cfg.Regions.Resolve(c.Region)

	dcf, err := valuation.ComputeDCF(c, region)
	degenerate := errors.Is(err, valuation.ErrDegenerateTerminalValue)

	return EnrichedCompany{
		Company:       *c,
		Score:         scoring.ComputeScore(c, s.cfg.Macro),
		DCF:           dcf,
		DCFDegenerate: degenerate,
		Comps:         idx.Comparables(c),
	}
}
