package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/paperplan/internal/cli"
	"github.com/alexanderramin/paperplan/internal/db"
	"github.com/alexanderramin/paperplan/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.paperplan/paperplan.db
	dbPath := os.Getenv("PAPERPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".paperplan", "paperplan.db")
	}

	var runs repository.PlanRunRepo
	if dbPath != "none" {
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		runs = repository.NewSQLitePlanRunRepo(database)
	}

	app := cli.NewApp(runs)
	return cli.NewRootCmd(app).Execute()
}
