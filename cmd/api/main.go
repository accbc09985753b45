package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"equity_screener/pkg/api/screenerapi"
	"equity_screener/pkg/api/valuationapi"
	"equity_screener/pkg/core/assumption"
	"equity_screener/pkg/core/screener"
	"equity_screener/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Assumption bundle: built-in defaults, optionally overridden by file.
	cfg := assumption.DefaultConfig()
	if path := os.Getenv("ASSUMPTIONS_FILE"); path != "" {
		loaded, err := assumption.LoadConfig(path)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load %s: %v\n", path, err)
			fmt.Println("  Falling back to built-in assumptions")
		} else {
			cfg = loaded
			fmt.Printf("[CONFIG] Loaded assumptions from %s\n", path)
		}
	}

	// Postgres is optional; without it the API serves computation only.
	var repo *store.ScreenRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database init failed: %v\n", err)
		} else {
			repo = store.NewScreenRepo()
			defer store.Close()
			fmt.Println("[STORE] Postgres connected")
		}
	}

	screenerapi.InitHandler(screener.New(cfg), repo)
	valuationapi.InitHandler(cfg.Regions)

	http.HandleFunc("/api/screener/run", screenerapi.HandleRun)
	http.HandleFunc("/api/screener/company", screenerapi.HandleCompany)
	http.HandleFunc("/api/screener/report", screenerapi.HandleReport)
	http.HandleFunc("/api/screener/assumptions", screenerapi.HandleAssumptions)
	http.HandleFunc("/api/valuation/dcf", valuationapi.HandleDCF)
	http.HandleFunc("/api/valuation/comparables", valuationapi.HandleComparables)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/screener/run")
	fmt.Println("  - GET  /api/screener/company?ticker=BBCA")
	fmt.Println("  - GET  /api/screener/report?ticker=BBCA")
	fmt.Println("  - GET  /api/screener/assumptions")
	fmt.Println("  - POST /api/valuation/dcf")
	fmt.Println("  - POST /api/valuation/comparables")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
