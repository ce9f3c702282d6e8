package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/auditsim/internal/buildinfo"
	"github.com/cleared-dev/auditsim/internal/config"
	"github.com/cleared-dev/auditsim/internal/logger"
)

// app carries state resolved once by the root command for every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg      *config.Config
	log      zerolog.Logger
	closeLog func() error
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "auditsim",
		Short:   "Plant accounting issues in clean ledgers and score an anomaly detector against them",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultFile, "config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newTrialBalanceCommand(a),
		newInjectCommand(a),
		newDetectCommand(a),
		newRunCommand(a),
	)

	return rootCmd
}

// setup resolves configuration and installs the logger. A missing config file
// is only an error when --config was given explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	optional := !cmd.Flags().Changed("config")
	cfg, err := config.Resolve(a.configPath, optional)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	a.closeLog = func() error { return nil }
	switch cfg.Log.Output {
	case "", "stderr":
		err = logger.SetupWriter(cfg.Log, cmd.ErrOrStderr())
	default:
		a.closeLog, err = logger.Setup(cfg.Log)
	}
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	a.cfg = cfg
	a.log = logger.WithComponent("cli").With().Str("command", cmd.Name()).Logger()
	return nil
}

// teardown releases the log file opened by setup, if any.
func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	closeFn := a.closeLog
	a.closeLog = nil
	if err := closeFn(); err != nil {
		return fmt.Errorf("closing log output: %w", err)
	}
	return nil
}
