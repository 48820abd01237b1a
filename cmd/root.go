// Package cmd wires the asound-conf-wizard subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JasonLG1979/asound-conf-wizard/internal/asound"
	"github.com/JasonLG1979/asound-conf-wizard/internal/config"
	"github.com/JasonLG1979/asound-conf-wizard/internal/logging"
	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
	"github.com/JasonLG1979/asound-conf-wizard/internal/wizard"
	"github.com/JasonLG1979/asound-conf-wizard/pkg/alsa"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file"`

	// Logging settings
	LogLevel  string `help:"Logging level (debug, info, warn, error)" toml:"logging.level" env:"LOG_LEVEL"`
	LogFormat string `help:"Logging format (text, json)" toml:"logging.format" env:"LOG_FORMAT"`

	// Wizard settings
	Output     string `help:"Path the generated configuration is written to" toml:"wizard.output" env:"OUTPUT"`
	SkipChecks bool   `help:"Skip the sound-server conflict and permission checks" toml:"wizard.skip_checks" env:"SKIP_CHECKS"`
}

// setup loads the layered configuration and initializes logging, returning
// the resolved options and probing policy.
func setup(cmd *cobra.Command, opts *Options) probe.Policy {
	if err := config.LoadConfig(opts, cmd); err != nil {
		logging.GetLogger("config").Warn("failed to load config", "error", err)
	}

	loggingConfig := config.LoadLoggingConfig(opts.Config)
	if opts.LogLevel != "" {
		loggingConfig.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		loggingConfig.Format = opts.LogFormat
	}
	logging.Initialize(loggingConfig)

	return config.LoadPolicy(opts.Config)
}

// NewRootCmd builds the root command: the interactive wizard itself.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "asound-conf-wizard",
		Short: "Generate an asound.conf from probed hardware capability",
		Long: `Probes every ALSA hardware endpoint for the format, rate and channel
combinations it genuinely accepts, then interactively generates a dmix/dsnoop
based /etc/asound.conf from the verified values. Intended for headless systems
running bare ALSA, without a sound server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy := setup(cmd, opts)
			return wizard.RunInteractive(alsa.New(), policy, logging.GetLogger("wizard"), wizard.Options{
				OutputPath: opts.Output,
				SkipChecks: opts.SkipChecks,
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "Logging format (text, json)")
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", asound.DefaultPath, "Path the generated configuration is written to")
	rootCmd.Flags().BoolVar(&opts.SkipChecks, "skip-checks", false, "Skip the sound-server conflict and permission checks")

	rootCmd.AddCommand(newDetectCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
