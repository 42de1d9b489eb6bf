// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cory-johannsen/epexport/internal/commands"
)

// ConfigEnv names the environment variable holding the default config file path.
const ConfigEnv = "EPEXPORT_CONFIG"

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
// A --config flag on the command line overrides ConfigEnv. SIGINT and SIGTERM
// cancel the command context.
func Run(ctx context.Context, getenv func(string) string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := commands.NewRootCmd()
	if path := getenv(ConfigEnv); path != "" {
		if err := rootCmd.PersistentFlags().Set("config", path); err != nil {
			return fmt.Errorf("%s: %w", ConfigEnv, err)
		}
	}
	return rootCmd.ExecuteContext(ctx)
}
