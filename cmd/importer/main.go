package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pc-crazy/product-analytics-api/internal/config"
	"github.com/pc-crazy/product-analytics-api/internal/database"
	"github.com/pc-crazy/product-analytics-api/internal/repository"
	"github.com/pc-crazy/product-analytics-api/internal/service"
)

// main is the entrypoint for the CSV product importer. Usage:
//
//	importer <csv-file>
//
// Per-row warnings and progress go to stderr; the final summary goes to
// stdout. Bad rows are skipped, not fatal: the run exits non-zero only
// when the file or a required header is missing, or the stream breaks.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <csv-file>\n", os.Args[0])
		os.Exit(2)
	}
	csvPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Diagnostics on stderr so the summary line on stdout stays parseable.
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	importSvc := service.NewImportService(
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		cfg.Import.BatchSize,
	)

	report, err := importSvc.Run(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import completed. Submitted: %d, inserted: %d, skipped: %d\n",
		report.Submitted, report.Inserted, report.Skipped)
}
