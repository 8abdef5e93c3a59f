// Package cmd implements the integrate command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/integrate/internal/config"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	output  string

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "integrate",
		Short: "Estimate definite integrals by Monte Carlo or Riemann sums",
		Long: `integrate estimates definite integrals of built-in integrands.

Methods:
  montecarlo - hit-or-miss sampling, sign aware
  riemann    - rectangle rule over evenly spaced samples

Run "integrate list" to see the available integrands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $INTEGRATE_CONFIG or ./integrate.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output format: text, json or yaml")

	root.AddCommand(
		newEstimateCmd(a),
		newStudyCmd(a),
		newListCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads configuration and installs the tint logger.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if a.output != "" {
		cfg.Output.Format = a.output
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: cfg.Log.TimeFormat,
		NoColor:    cfg.Log.NoColor,
	}))
	slog.SetDefault(a.logger)

	return nil
}

// PrintError writes err to stderr in the CLI's format.
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "integrate: %v\n", err)
}
