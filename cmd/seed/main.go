// Command seed migrates the configured database and loads the fixture data set
// (test@test.com / test, admin@test.com / admin, the Food category and one expense).
package main

import (
	"fmt"
	"os"

	"ExpenseTracker/pkg/config"
	"ExpenseTracker/pkg/database"
	"ExpenseTracker/pkg/fixtures"
	"ExpenseTracker/pkg/logger"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := fixtures.Load(db); err != nil {
		log.Fatal().Err(err).Msg("load fixtures")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("fixtures loaded")
}
