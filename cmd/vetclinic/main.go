package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vetclinic/internal/adapters/storage/memory"
	"vetclinic/internal/adapters/storage/sqlite"
	"vetclinic/internal/cli"
	"vetclinic/internal/config"
	"vetclinic/internal/domain/owners"
	"vetclinic/internal/domain/pets"
	"vetclinic/internal/domain/registry"
	"vetclinic/internal/domain/visits"
	"vetclinic/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		dbPath     string
		logFile    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "vetclinic",
		Short:         "Console record keeper for a veterinary clinic",
		Long:          "vetclinic manages owners, pets and visits over a local SQLite store,\ndriven by an interactive text menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			// explicit flags win over the config file
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			return run(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.vetclinic/config.toml)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file, or 'memory' for an ephemeral session")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file (empty logs to stderr)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")

	return cmd
}

func run(cmd *cobra.Command, cfg config.Config) error {
	log, closeLog, err := logger.New(logger.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	log.Info().Str("db", cfg.DBPath).Msg("application started")

	var (
		ownersRepo owners.Repository
		petsRepo   pets.Repository
		visitsRepo visits.Repository
	)

	if cfg.DBPath == config.MemoryDB {
		store := memory.NewStore()
		ownersRepo = store.Owners()
		petsRepo = store.Pets()
		visitsRepo = store.Visits()
		log.Warn().Msg("running with the in-memory store, nothing will be persisted")
	} else {
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Msg("could not open database")
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = db.Close()
			log.Info().Msg("database connection closed")
		}()

		ownersRepo = sqlite.NewOwnersRepo(db, log)
		petsRepo = sqlite.NewPetsRepo(db, log)
		visitsRepo = sqlite.NewVisitsRepo(db, log)
	}

	reg := registry.NewService(
		owners.NewService(ownersRepo),
		pets.NewService(petsRepo),
		visits.NewService(visitsRepo),
		log,
	)

	shell := cli.New(cmd.InOrStdin(), cmd.OutOrStdout(), reg, log)
	err = shell.Run(cmd.Context())

	log.Info().Msg("application stopped")
	return err
}
