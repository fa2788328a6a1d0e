package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/service"
)

var (
	sourcesPath string
	dataPath    string
	usersPath   string
	logLevel    string

	svc *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "issueview",
	Short: "Sorted, deduplicated view of issues reported by sources",
	Long: `issueview collects the issues that sources reported for each user,
orders them by severity, removes duplicates when the platform supports it,
and answers queries over a user and its managed profiles.

Configuration comes from ISSUEVIEW_* environment variables; flags override them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := loadRuntimeConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(logger)
		logger.Debug("loaded configuration", "config", cfg.String())

		svc, err = service.Load(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load issue repository: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourcesPath, "sources", "", "sources YAML file (overrides ISSUEVIEW_SOURCES_FILE)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "source data YAML file (overrides ISSUEVIEW_DATA_FILE)")
	rootCmd.PersistentFlags().StringVar(&usersPath, "users", "", "users YAML file (overrides ISSUEVIEW_USERS_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides ISSUEVIEW_LOG_LEVEL)")
}

// loadRuntimeConfig reads the environment and applies flag overrides.
func loadRuntimeConfig() (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if sourcesPath != "" {
		cfg.SourcesFile = sourcesPath
	}
	if dataPath != "" {
		cfg.DataFile = dataPath
	}
	if usersPath != "" {
		cfg.UsersFile = usersPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
