// Package cli defines the iplstats command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/config"
	"github.com/okian/iplstats/pkg/logger"
	"github.com/okian/iplstats/pkg/metrics"
)

// Version is stamped at build time.
var Version = "dev"

// runtimeEnv is the state shared by every subcommand once the root's
// PersistentPreRunE has loaded configuration.
type runtimeEnv struct {
	cfg *config.Config

	configPath string
	logLevel   string
	backend    string
	dsn        string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:           "iplstats",
		Short:         "IPL ball-by-ball analytics",
		Long:          "Load IPL match and delivery data and serve phase, venue, impact, rivalry and season reports over HTTP, MCP or the terminal.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.load(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&env.configPath, "config", "", "Path to a YAML config file (overrides "+config.FileEnv+")")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&env.backend, "store", "", "Store backend: memory, sqlite, postgres, mysql")
	root.PersistentFlags().StringVar(&env.dsn, "dsn", "", "Store connection string")

	root.AddCommand(
		newServeCommand(env),
		newImportCommand(env),
		newExportCommand(env),
		newLoadCommand(env),
		newMigrateCommand(env),
		newGenerateCommand(env),
		newReportCommand(env),
		newMCPCommand(env),
		newLoadTestCommand(env),
		newStatusCommand(env),
	)
	return root
}

// load layers flags over the file and env configuration and initialises
// logging. Logs go to stderr so stdout carries only command output.
func (e *runtimeEnv) load(ctx context.Context, stderr io.Writer) error {
	if e.configPath != "" {
		if err := os.Setenv(config.FileEnv, e.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if e.backend != "" {
		cfg.StoreBackend = e.backend
	}
	if e.dsn != "" {
		cfg.StoreDSN = e.dsn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	metrics.Configure(cfg.MetricsOptions()...)
	e.cfg = cfg
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
