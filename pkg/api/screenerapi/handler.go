// Package screenerapi exposes the screening pipeline over HTTP for the
// research UI.
package screenerapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"equity_screener/pkg/core/company"
	"equity_screener/pkg/core/report"
	"equity_screener/pkg/core/screener"
	"equity_screener/pkg/core/store"
)

var (
	scr  *screener.Screener
	repo *store.ScreenRepo
)

// InitHandler wires the handlers to a screener. repository may be nil when
// the API runs without Postgres; persistence endpoints then return 503.
func InitHandler(s *screener.Screener, repository *store.ScreenRepo) {
	scr = s
	repo = repository
}

func cors(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// RunRequest is the body of POST /api/screener/run.
type RunRequest struct {
	Universe []company.Company `json:"universe"`
	Persist  bool              `json:"persist"`
	Preset   string            `json:"preset,omitempty"`
}

// RunResponse carries the enriched universe and, when persisted, the run ID.
type RunResponse struct {
	RunID   string                     `json:"runId,omitempty"`
	Results []screener.EnrichedCompany `json:"results"`

	// PresetTotals maps ticker to the reweighted composite total when a
	// preset other than the default was requested.
	PresetTotals map[string]float64 `json:"presetTotals,omitempty"`
}

// HandleRun enriches a posted universe and optionally persists the run.
func HandleRun(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "POST") {
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Universe) == 0 {
		http.Error(w, "universe is empty", http.StatusBadRequest)
		return
	}

	fmt.Printf("[SCREENER] Run requested: %d companies (persist=%v)\n", len(req.Universe), req.Persist)
	results := scr.Enrich(req.Universe)

	resp := RunResponse{Results: results}
	if req.Preset != "" && req.Preset != "balanced" {
		preset := scr.Config().PresetByName(req.Preset)
		resp.PresetTotals = make(map[string]float64, len(results))
		for i := range results {
			resp.PresetTotals[results[i].Ticker] = results[i].Score.WeightedTotal(preset)
		}
	}

	if req.Persist {
		if repo == nil || store.GetPool() == nil {
			http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
			return
		}
		runID, err := repo.SaveRun(r.Context(), scr.Config(), results)
		if err != nil {
			fmt.Printf("[SCREENER] Save failed: %v\n", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.RunID = runID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleCompany returns the latest persisted record for ?ticker=.
func HandleCompany(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	rec, ok := loadRecord(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// HandleReport renders the persisted record for ?ticker= as a Markdown
// research note.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	rec, ok := loadRecord(w, r)
	if !ok {
		return
	}
	note, err := report.ResearchNote(rec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, note)
}

// HandleAssumptions exposes the active assumption bundle for display.
func HandleAssumptions(w http.ResponseWriter, r *http.Request) {
	if cors(w, r, "GET") {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scr.Config())
}

func loadRecord(w http.ResponseWriter, r *http.Request) (*screener.EnrichedCompany, bool) {
	if repo == nil || store.GetPool() == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return nil, false
	}
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "ticker query parameter is required", http.StatusBadRequest)
		return nil, false
	}
	rec, err := repo.Load(r.Context(), ticker)
	if err != nil {
		http.Error(w, fmt.Sprintf("ticker not found: %s", ticker), http.StatusNotFound)
		return nil, false
	}
	return rec, true
}
