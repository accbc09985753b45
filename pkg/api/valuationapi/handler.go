// Package valuationapi exposes the single-company valuation engines for the
// detail panels: standalone DCF and comparables runs without a full screen.
package valuationapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
	"equity_screener/pkg/core/valuation"
)

var regions assumption.Table

// InitHandler wires the handlers to an assumption table.
func InitHandler(t assumption.Table) {
	regions = t
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// DCFResponse wraps the model output with the degenerate marker so the UI
// can grey out the fair value instead of trusting a broken perpetuity.
type DCFResponse struct {
	Result     *valuation.DCFResult `json:"result"`
	WACC       float64              `json:"wacc"`
	Degenerate bool                 `json:"degenerate"`
}

// HandleDCF runs the DCF model for a posted company record.
func HandleDCF(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var c company.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.Ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	region := regions.Resolve(c.Region)
	res, err := valuation.ComputeDCF(&c, region)
	degenerate := errors.Is(err, valuation.ErrDegenerateTerminalValue)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DCFResponse{
		Result:     res,
		WACC:       res.WACC,
		Degenerate: degenerate,
	})
}

// ComparablesRequest posts a target together with the universe to value it
// against.
type ComparablesRequest struct {
	Company  company.Company   `json:"company"`
	Universe []company.Company `json:"universe"`
}

// HandleComparables runs peer-comparable valuation for a posted target.
// Responds with a JSON null body when no peer qualifies; the client must
// treat that as "no comparables available".
func HandleComparables(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req ComparablesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Company.Ticker == "" {
		http.Error(w, "company.ticker is required", http.StatusBadRequest)
		return
	}

	res := valuation.ComputeComparables(&req.Company, req.Universe)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
