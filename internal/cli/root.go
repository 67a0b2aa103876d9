package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/procsim/internal/config"
	"github.com/me/procsim/internal/logging"
	"github.com/me/procsim/internal/store"
)

// Version is the procsim release.
const Version = "0.1.0"

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagLogFile   string
	flagConfig    string
	flagDB        string

	logger    *slog.Logger
	logCloser io.Closer
	client    *Client
	settings  config.File
)

// defaultServer returns the default server URL, checking PROCSIM_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("PROCSIM_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the procsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "procsim",
		Short: "procsim: CPU process scheduling simulator",
		Long: "procsim loads a workload of processes and simulates them under round-robin\n" +
			"or priority scheduling, printing every executed instruction and state change.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			settings = cfg

			if !cmd.Flags().Changed("log-level") && cfg.Server.LogLevel != "" {
				flagLogLevel = cfg.Server.LogLevel
			}
			if !cmd.Flags().Changed("log-format") && cfg.Server.LogFormat != "" {
				flagLogFormat = cfg.Server.LogFormat
			}
			if flagDebug {
				flagLogLevel = "debug"
			}

			level := logging.ParseLevel(flagLogLevel)
			if flagLogFile != "" {
				l, closer, err := logging.NewFileLogger(level, flagLogFormat, flagLogFile)
				if err != nil {
					return err
				}
				logger, logCloser = l, closer
			} else {
				logger, logCloser = logging.NewLogger(level, flagLogFormat), nil
			}
			client = NewClient(flagServer, logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
				logCloser = nil
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "procsim server URL for submit/list (or PROCSIM_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also append logs to this file")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "Run archive path (default ~/.procsim/procsim.db)")

	root.AddCommand(
		newRunCmd(),
		newValidateCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newDeleteCmd(),
		newSubmitCmd(),
		newListCmd(),
	)

	return root
}

// openStore opens and migrates the run archive selected by --db or the config file.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	path := flagDB
	if path == "" {
		path = settings.Server.DBPath
	}
	path, err := store.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}
