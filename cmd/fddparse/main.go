package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/fddparse/internal/config"
	"github.com/dgallion1/fddparse/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "fddparse",
		Short:         "Split Feature Design Documents into sections by heading",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: ./fddparse.yaml or ~/.config/fddparse/fddparse.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level: debug, info, warn, error")

	root.AddCommand(newServeCommand(a))
	root.AddCommand(newParseCommand(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
