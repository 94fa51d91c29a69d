package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"planfairy/internal/backup"
	"planfairy/internal/cli"
	"planfairy/internal/generate"
	"planfairy/internal/standards"
	"planfairy/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planfairy/planfairy.db
	dbPath := os.Getenv("PLANFAIRY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planfairy", "planfairy.db")
	}

	database, err := store.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	st := store.NewSQLiteStore(database)

	// The imported catalog shadows the seed pools; load it once at start.
	imported, err := st.LoadCatalog(context.Background())
	if err != nil {
		return fmt.Errorf("loading standards catalog: %w", err)
	}
	catalog := standards.FromMap(imported)

	app := &cli.App{
		Store:   st,
		Catalog: catalog,
	}

	// Detect interactive terminal for the wizard and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the remote generation client only when enabled.
	genCfg := generate.LoadConfig()
	var client generate.Client
	var observer generate.Observer = generate.NoopObserver{}
	if genCfg.LogCalls {
		observer = generate.NewLogObserver(os.Stderr)
	}
	if genCfg.Enabled {
		client = generate.NewClient(genCfg, observer)
	}
	app.Generator = generate.NewService(client, observer)

	// Wire drive backup only when a credential is configured.
	driveCfg, err := backup.LoadDriveConfig()
	if err != nil {
		return err
	}
	if driveCfg.Configured() {
		var driveObserver backup.Observer
		if genCfg.LogCalls {
			driveObserver = backup.NewLogObserver(os.Stderr)
		}
		app.Backup = backup.NewService(st, backup.NewDriveAdapter(driveCfg), driveObserver)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
