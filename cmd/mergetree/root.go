package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/modoverlay/mergetree/internal/config"
	"github.com/spf13/cobra"
)

// app carries the state shared by subcommands
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mergetree",
		Short:         "Build the merged view of overlay modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newTreeCommand(a),
		newUmountCommand(a),
		newConfigCommand(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	a.log().SetLevel(parsed)
	return nil
}

func (a *app) log() *log.Logger {
	if a.logger == nil {
		a.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: config.AppName,
		})
	}
	return a.logger
}
