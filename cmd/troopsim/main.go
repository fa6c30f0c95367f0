// Command troopsim runs a troop of beings and reports on their social
// graphs.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/troop/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "troopsim",
		Short: "Troop social simulation",
		Long: `troopsim simulates a troop of beings whose encounters build and
exploit a bounded social graph per being: grooming, squabbling, mating
and chatting, pulled together by a spatial social force.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (built-in defaults when empty)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newFriendsCmd(),
		newIndicatorsCmd(),
	)
	return rootCmd
}

// loadConfig reads the --config file over the defaults and installs the
// slog handler at the configured level.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	setupLogging(cmd.ErrOrStderr(), cfg.Logging.Level)
	return cfg, nil
}

// setupLogging logs to w so listings on stdout stay clean.
func setupLogging(w io.Writer, level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
}
