package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/screener"
)

// ScreenRepo stores enriched screening records. Each record is upserted by
// ticker as a JSONB blob; runs are tracked separately so a result can be
// traced back to the assumption bundle it was computed under.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS screen_runs (
//	  run_id UUID PRIMARY KEY,
//	  assumptions JSONB,
//	  universe_size INT,
//	  created_at TIMESTAMPTZ
//	);
//	CREATE TABLE IF NOT EXISTS screen_results (
//	  ticker TEXT PRIMARY KEY,
//	  region TEXT,
//	  run_id UUID REFERENCES screen_runs(run_id),
//	  record JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ScreenRepo struct{}

// NewScreenRepo creates a new repository instance.
func NewScreenRepo() *ScreenRepo {
	return &ScreenRepo{}
}

// SaveRun persists a full screening run: one run row plus an upsert per
// enriched record. Returns the generated run ID.
func (r *ScreenRepo) SaveRun(ctx context.Context, cfg assumption.Config, records []screener.EnrichedCompany) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	runID := uuid.New().String()
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal assumptions: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO screen_runs (run_id, assumptions, universe_size, created_at) VALUES ($1, $2, $3, $4)`,
		runID, cfgJSON, len(records), time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	query := `
		INSERT INTO screen_results (ticker, region, run_id, record, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker)
		DO UPDATE SET
			region = EXCLUDED.region,
			run_id = EXCLUDED.run_id,
			record = EXCLUDED.record,
			updated_at = EXCLUDED.updated_at;
	`
	for i := range records {
		recJSON, err := json.Marshal(&records[i])
		if err != nil {
			return "", fmt.Errorf("failed to marshal record %s: %w", records[i].Ticker, err)
		}
		if _, err := pool.Exec(ctx, query, records[i].Ticker, records[i].Region, runID, recJSON, time.Now()); err != nil {
			return "", fmt.Errorf("failed to save record %s: %w", records[i].Ticker, err)
		}
	}
	return runID, nil
}

// Load retrieves the latest enriched record for a ticker.
func (r *ScreenRepo) Load(ctx context.Context, ticker string) (*screener.EnrichedCompany, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var recJSON []byte
	err := pool.QueryRow(ctx,
		`SELECT record FROM screen_results WHERE ticker = $1`, ticker).Scan(&recJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no screening result for ticker %s", ticker)
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var rec screener.EnrichedCompany
	if err := json.Unmarshal(recJSON, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &rec, nil
}

// ListRun returns all enriched records saved under one run ID.
func (r *ScreenRepo) ListRun(ctx context.Context, runID string) ([]screener.EnrichedCompany, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT record FROM screen_results WHERE run_id = $1 ORDER BY ticker`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []screener.EnrichedCompany
	for rows.Next() {
		var recJSON []byte
		if err := rows.Scan(&recJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		var rec screener.EnrichedCompany
		if err := json.Unmarshal(recJSON, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
