// Package cli wires the konnash commands together.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/konnash/konnash/internal/config"
	"github.com/konnash/konnash/pkg/logging"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "konnash",
	Short: "Konnash keeps a local debt notebook: clients, debts, and payments.",
	Long: `Konnash is a personal debt tracker backed by an embedded SQLite
database. It records who owes what, keeps each debt's remaining balance in
step with its payments, and serves the data to the desktop UI over a local
JSON API.`,
	SilenceUsage: true,
}

// loadConfig resolves the effective configuration, letting command-line
// flags override the environment and config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is environment only)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides KONNASH_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
