package valuation

import (
	"sort"

	"equity_screener/pkg/core/company"
)

// Peer selection policy.
const (
	MaxPeers      = 8   // first N qualifying matches, universe order
	peerBandLow   = 0.3 // market cap band relative to target
	peerBandHigh  = 3.0
	peOutlierCeil = 100.0 // multiples at or beyond these are excluded
	pbOutlierCeil = 50.0  // from the peer median statistics
)

// Peer is the slice of a universe record retained in a comparables result.
type Peer struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name,omitempty"`
	MarketCap float64  `json:"marketCap"`
	PE        *float64 `json:"pe,omitempty"`
	PB        *float64 `json:"pb,omitempty"`
}

// ComparablesResult is the peer-multiple implied valuation of a target.
// NoSignal is set when neither implied value could be derived and the
// implied value is just the current price.
type ComparablesResult struct {
	Peers        []Peer   `json:"peers"`
	MedianPE     *float64 `json:"medianPe"`
	MedianPB     *float64 `json:"medianPb"`
	ImpliedByPE  *float64 `json:"impliedByPe"`
	ImpliedByPB  *float64 `json:"impliedByPb"`
	ImpliedValue float64  `json:"impliedValue"`
	Upside       float64  `json:"upside"`
	NoSignal     bool     `json:"noSignal"`
}

// qualifies reports whether cand can serve as a peer for target: same sector
// and region, not the target itself, market cap within the band, and a
// positive P/E on record.
func qualifies(target, cand *company.Company) bool {
	if cand.Ticker == target.Ticker {
		return false
	}
	if cand.Sector != target.Sector || cand.Region != target.Region {
		return false
	}
	if target.MarketCap > 0 {
		if cand.MarketCap < target.MarketCap*peerBandLow || cand.MarketCap > target.MarketCap*peerBandHigh {
			return false
		}
	}
	return cand.PE != nil && *cand.PE > 0
}

// median returns the middle element of vals, or the mean of the two middle
// elements for even counts. vals must be non-empty.
func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// peerMedians computes outlier-filtered median P/E and P/B across the peer
// set. A median is nil when no peer survives the filter for that multiple.
func peerMedians(peers []Peer) (medPE, medPB *float64) {
	var pes, pbs []float64
	for _, p := range peers {
		if p.PE != nil && *p.PE > 0 && *p.PE < peOutlierCeil {
			pes = append(pes, *p.PE)
		}
		if p.PB != nil && *p.PB > 0 && *p.PB < pbOutlierCeil {
			pbs = append(pbs, *p.PB)
		}
	}
	if len(pes) > 0 {
		m := median(pes)
		medPE = &m
	}
	if len(pbs) > 0 {
		m := median(pbs)
		medPB = &m
	}
	return medPE, medPB
}

// impliedFromPeers applies the peer medians to the target's own per-share
// fundamentals, which are backed out of its current multiples: EPS = P/PE,
// book value = P/PB.
func impliedFromPeers(c *company.Company, medPE, medPB *float64) (byPE, byPB *float64) {
	if medPE != nil && c.UsablePE() {
		eps := c.Price / *c.PE
		v := *medPE * eps
		byPE = &v
	}
	if medPB != nil && c.UsablePB() {
		book := c.Price / *c.PB
		v := *medPB * book
		byPB = &v
	}
	return byPE, byPB
}

// ComputeComparables values the target against sector/region peers from the
// universe. Returns nil when no peer qualifies; callers must treat that as
// "no comparables available", not zero upside. Peer order follows universe
// order, capped at MaxPeers, with no quality re-sort.
func ComputeComparables(c *company.Company, universe []company.Company) *ComparablesResult {
	var peers []Peer
	for i := range universe {
		cand := &universe[i]
		if !qualifies(c, cand) {
			continue
		}
		peers = append(peers, Peer{
			Ticker:    cand.Ticker,
			Name:      cand.Name,
			MarketCap: cand.MarketCap,
			PE:        cand.PE,
			PB:        cand.PB,
		})
		if len(peers) == MaxPeers {
			break
		}
	}
	if len(peers) == 0 {
		return nil
	}
	return valueAgainstPeers(c, peers)
}

func valueAgainstPeers(c *company.Company, peers []Peer) *ComparablesResult {
	res := &ComparablesResult{Peers: peers}
	res.MedianPE, res.MedianPB = peerMedians(peers)
	res.ImpliedByPE, res.ImpliedByPB = impliedFromPeers(c, res.MedianPE, res.MedianPB)

	switch {
	case res.ImpliedByPE != nil && res.ImpliedByPB != nil:
		res.ImpliedValue = (*res.ImpliedByPE + *res.ImpliedByPB) / 2
	case res.ImpliedByPE != nil:
		res.ImpliedValue = *res.ImpliedByPE
	case res.ImpliedByPB != nil:
		res.ImpliedValue = *res.ImpliedByPB
	default:
		// No usable multiple on either side; fall back to the current
		// price and flag it rather than fabricate upside.
		res.ImpliedValue = c.Price
		res.NoSignal = true
	}

	if c.Price > 0 {
		res.Upside = (res.ImpliedValue - c.Price) / c.Price * 100
	}
	return res
}

// PeerIndex pre-groups a universe by sector and region so repeated
// comparables runs avoid rescanning the full universe per company. Group
// slices preserve universe order, so results are identical to
// ComputeComparables over the same universe.
type PeerIndex struct {
	groups map[string][]company.Company
}

func groupKey(sector, region string) string { return sector + "\x00" + region }

// NewPeerIndex builds the sector x region index over the universe.
func NewPeerIndex(universe []company.Company) *PeerIndex {
	idx := &PeerIndex{groups: make(map[string][]company.Company)}
	for _, c := range universe {
		key := groupKey(c.Sector, c.Region)
		idx.groups[key] = append(idx.groups[key], c)
	}
	return idx
}

// Comparables values the target against its indexed peer group.
func (idx *PeerIndex) Comparables(c *company.Company) *ComparablesResult {
	return ComputeComparables(c, idx.groups[groupKey(c.Sector, c.Region)])
}
