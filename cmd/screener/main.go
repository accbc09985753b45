// Command screener runs a batch screening pass over a universe file: enrich
// every record, print a ranked summary, and optionally persist the run and
// write Markdown research notes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/company"
	"equity_screener/pkg/core/ingest"
	"equity_screener/pkg/core/report"
	"equity_screener/pkg/core/screener"
	"equity_screener/pkg/core/store"
)

func main() {
	var (
		universePath = flag.String("universe", "universe.json", "universe feed (JSON or HJSON; .html for table exports)")
		configPath   = flag.String("config", "", "assumption config YAML (optional)")
		presetName   = flag.String("preset", "balanced", "score weight preset")
		persist      = flag.Bool("persist", false, "save the run to Postgres (DATABASE_URL)")
		reportDir    = flag.String("reports", "", "write per-company Markdown notes into this directory")
		top          = flag.Int("top", 20, "rows to print")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := assumption.DefaultConfig()
	if *configPath != "" {
		loaded, err := assumption.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Config load failed: %v", err)
		}
		cfg = loaded
	}

	universe, err := loadUniverse(*universePath)
	if err != nil {
		log.Fatalf("Universe load failed: %v", err)
	}
	fmt.Printf("[SCREENER] Loaded %d companies from %s\n", len(universe), *universePath)

	scr := screener.New(cfg)
	results := scr.Enrich(universe)
	preset := cfg.PresetByName(*presetName)

	// Rank by the requested preset's weighted total.
	ranked := make([]screener.EnrichedCompany, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.WeightedTotal(preset) > ranked[j].Score.WeightedTotal(preset)
	})

	printSummary(ranked, preset, *top)

	if *persist {
		if err := store.InitDB(context.Background()); err != nil {
			log.Fatalf("Database init failed: %v", err)
		}
		defer store.Close()
		runID, err := store.NewScreenRepo().SaveRun(context.Background(), cfg, results)
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}
		fmt.Printf("[STORE] Run saved: %s (%d records)\n", runID, len(results))
	}

	if *reportDir != "" {
		if err := writeReports(*reportDir, results); err != nil {
			log.Fatalf("Report write failed: %v", err)
		}
		fmt.Printf("[REPORT] Notes written to %s\n", *reportDir)
	}
}

func loadUniverse(path string) ([]company.Company, error) {
	if strings.HasSuffix(strings.ToLower(path), ".html") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ingest.ParseFundamentalsTable(f)
	}
	return ingest.LoadUniverseFile(path)
}

func printSummary(ranked []screener.EnrichedCompany, preset assumption.ScorePreset, top int) {
	fmt.Printf("\n%-8s %-10s %7s %9s %9s %9s\n", "TICKER", "SECTOR", "SCORE", "DCF UP%", "COMPS UP%", "WACC%")
	for i, rec := range ranked {
		if i == top {
			break
		}
		dcfUp := "n/a"
		if rec.DCF != nil && !rec.DCFDegenerate {
			dcfUp = fmt.Sprintf("%+.1f", rec.DCF.Upside)
		}
		compsUp := "n/a"
		if rec.Comps != nil && !rec.Comps.NoSignal {
			compsUp = fmt.Sprintf("%+.1f", rec.Comps.Upside)
		}
		wacc := ""
		if rec.DCF != nil {
			wacc = fmt.Sprintf("%.2f", rec.DCF.WACC*100)
		}
		sector := rec.Sector
		if len(sector) > 10 {
			sector = sector[:10]
		}
		fmt.Printf("%-8s %-10s %7.1f %9s %9s %9s\n",
			rec.Ticker, sector, rec.Score.WeightedTotal(preset), dcfUp, compsUp, wacc)
	}
	fmt.Println()
}

func writeReports(dir string, results []screener.EnrichedCompany) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := range results {
		note, err := report.ResearchNote(&results[i])
		if err != nil {
			return err
		}
		path := filepath.Join(dir, results[i].Ticker+".md")
		if err := os.WriteFile(path, []byte(note), 0644); err != nil {
			return err
		}
	}
	return nil
}
