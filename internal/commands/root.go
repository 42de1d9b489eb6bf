// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cory-johannsen/epexport/internal/config"
	"github.com/cory-johannsen/epexport/internal/game/specconfig"
	"github.com/cory-johannsen/epexport/internal/modal"
	"github.com/cory-johannsen/epexport/internal/observability"
	"github.com/cory-johannsen/epexport/internal/scripting"
)

// app is the state shared by every subcommand once PersistentPreRunE has run.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	specs  *specconfig.Registry

	clipboard   modal.Clipboard
	interactive func() bool
}

// deps are the OS dependencies of the command tree.
type deps struct {
	clipboard   modal.Clipboard
	interactive func() bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{
		clipboard:   modal.SystemClipboard{},
		interactive: stdioIsTerminal,
	})
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{clipboard: d.clipboard, interactive: d.interactive}
	v := config.NewViper()
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "epexport",
		Short:        "Export character settings and EP weights to third-party gear tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(v, configPath)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newTargetsCmd(a),
		newSpecsCmd(a),
		newExportCmd(a),
		newPresetsCmd(a),
		newXLSXCmd(a),
	)
	return rootCmd
}

// load reads the configuration, builds the logger, and loads the spec registry.
func (a *app) load(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	ev := scripting.NewEvaluator(cfg.Scripting.InstructionLimit)
	specs, err := specconfig.LoadEmbedded(ev, logger)
	if err != nil {
		return err
	}
	if cfg.Content.SpecDir != "" {
		if err := specconfig.LoadDir(specs, cfg.Content.SpecDir, ev, logger); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = logger
	a.specs = specs
	return nil
}

func stdioIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
