// Package cmd implements the cantabile command-line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cantabile/internal/catalog"
	"cantabile/internal/config"
	"cantabile/internal/covers"
	"cantabile/internal/logging"
	"cantabile/internal/lyrics"
	"cantabile/internal/scan"
	"cantabile/internal/store"
	"cantabile/internal/tags"
)

// app bundles the wired services behind every command.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	cat    *catalog.Catalog
	coord  *scan.Coordinator
	covers *covers.Service
	lyrics *lyrics.Service
}

var a *app

var rootCmd = &cobra.Command{
	Use:   "cantabile",
	Short: "Cantabile catalogs local music libraries.",
	Long: `Cantabile scans user-chosen directories for audio files, extracts
metadata into a persistent catalog, and serves covers and lyrics for the
cataloged songs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		a, err = initApp()
		return err
	},
}

func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := logging.New(cfg.LogLevel)

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	backend, err := store.NewJSONFile(dbPath)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Open(backend, log)
	if err != nil {
		return nil, err
	}

	extractor := tags.NewExtractor(log)
	worker := scan.NewWorker(extractor, log)
	coord := scan.NewCoordinator(cat, worker, log, time.Duration(cfg.ScanTimeoutMinutes)*time.Minute)

	coverSvc, err := covers.NewService(cat, cfg.CoverCacheSize, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		cat:    cat,
		coord:  coord,
		covers: coverSvc,
		lyrics: lyrics.NewService(cat),
	}, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
