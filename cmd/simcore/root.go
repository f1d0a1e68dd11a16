// Package main is the dev CLI for the simulation core: a cobra command
// tree wrapping phase.Machine and phase.DevTools over either a live
// postgres store or an in-memory one.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"esports-career-sim/cache"
	"esports-career-sim/config"
	"esports-career-sim/db"
	"esports-career-sim/pkg/logger"
	"esports-career-sim/repository"
	"esports-career-sim/repository/memory"
	"esports-career-sim/repository/postgres"
)

var (
	cfg       *config.Config
	store     repository.Store
	rawDB     *sql.DB
	saveIDArg string
)

// rootCmd is the top-level "simcore" command.
var rootCmd = &cobra.Command{
	Use:   "simcore",
	Short: "Simulation-core dev CLI",
	Long:  "Drives the season phase state machine, tournament schedulers, and dev repair tools over a save.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return wireStore()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rawDB != nil {
			rawDB.Close()
		}
	},
}

func wireStore() error {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store", nil)
		store = memory.New()
		return nil
	}
	database, err := db.Initialize(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(database); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	rawDB = database
	store = postgres.New(database)
	return nil
}

func wireCache() *cache.Cache {
	if cfg.RedisURL == "" {
		return nil
	}
	c, err := cache.New(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis cache unavailable, continuing without it", logger.Fields{"error": err.Error()})
		return nil
	}
	return c
}

func init() {
	rootCmd.PersistentFlags().StringVar(&saveIDArg, "save", "", "save id to operate on (required by most subcommands)")
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(timeStateCmd())
	rootCmd.AddCommand(initPhaseCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(simulateNextCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(advanceCmd())
	rootCmd.AddCommand(fastForwardCmd())
	rootCmd.AddCommand(newSeasonCmd())
	rootCmd.AddCommand(devCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireSaveID() (string, error) {
	if saveIDArg == "" {
		return "", fmt.Errorf("--save is required")
	}
	return saveIDArg, nil
}
