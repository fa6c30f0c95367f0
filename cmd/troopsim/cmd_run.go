package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/troop/internal/config"
	"github.com/talgya/troop/internal/engine"
	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/persistence"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the troop, recording indicators and events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Simulation.Ticks, _ = cmd.Flags().GetInt("ticks")
			}
			interval, _ := cmd.Flags().GetDuration("interval")
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := runTroop(ctx, cfg, interval)
			if err != nil {
				return err
			}
			return printRunResult(cmd.OutOrStdout(), res, jsonOut)
		},
	}

	cmd.Flags().Int("ticks", 0, "Ticks to run, one per simulated minute (0 runs until interrupted)")
	cmd.Flags().Duration("interval", 0, "Wall-clock time per tick (0 runs flat out)")
	return cmd
}

// runResult summarises a finished run.
type runResult struct {
	RunID  string             `json:"run_id,omitempty"`
	DBPath string             `json:"db_path,omitempty"`
	Seed   int64              `json:"seed"`
	Ticks  uint64             `json:"ticks"`
	Stats  engine.SimStats    `json:"stats"`
	Sim    *engine.Simulation `json:"-"`
}

// runTroop builds a simulation from cfg and runs it until the tick limit
// or until ctx is cancelled. Indicators and events are flushed to the
// store daily and on exit.
func runTroop(ctx context.Context, cfg config.Config, interval time.Duration) (*runResult, error) {
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = entropy.CryptoSeed()
	}
	sim, err := engine.NewSimulation(cfg)
	if err != nil {
		return nil, err
	}
	res := &runResult{Seed: cfg.Simulation.Seed, Sim: sim}

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if path := cfg.Storage.Path; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		db, err = persistence.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		res.RunID, err = db.NewRun(cfg.Simulation.Seed, cfg)
		if err != nil {
			return nil, err
		}
		res.DBPath = path
		slog.Info("database opened", "path", path, "run", res.RunID)
	}

	var since uint64
	flush := func() {
		if db == nil {
			return
		}
		var err error
		if since, err = db.SaveRunState(res.RunID, sim, since); err != nil {
			slog.Error("failed to save run state", "error", err)
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Interval = interval
	eng.Limit = uint64(cfg.Simulation.Ticks)
	eng.OnTick = sim.Step
	eng.OnDay = func(tick uint64) {
		sim.TickDay(tick)
		flush()
	}

	runErr := eng.Run(ctx)
	flush()
	res.Ticks = eng.Tick
	res.Stats = sim.Stats
	res.Stats.TotalPopulation = sim.Population.Len()
	slog.Info("run finished", "tick", eng.Tick, "time", engine.SimTime(eng.Tick), "alive", res.Stats.TotalPopulation)
	return res, runErr
}

func printRunResult(w io.Writer, res *runResult, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(w, "ran %s ticks to %s (seed %d)\n",
		humanize.Comma(int64(res.Ticks)), engine.SimTime(res.Ticks), res.Seed)
	fmt.Fprintf(w, "  alive:       %s\n", humanize.Comma(int64(res.Stats.TotalPopulation)))
	fmt.Fprintf(w, "  births:      %s\n", humanize.Comma(int64(res.Stats.Births)))
	fmt.Fprintf(w, "  deaths:      %s\n", humanize.Comma(int64(res.Stats.Deaths)))
	fmt.Fprintf(w, "  conceptions: %s\n", humanize.Comma(int64(res.Stats.Conceptions)))
	fmt.Fprintf(w, "  conflicts:   %s\n", humanize.Comma(int64(res.Stats.Conflicts)))
	if res.RunID != "" {
		fmt.Fprintf(w, "run %s saved to %s\n", res.RunID, res.DBPath)
	}
	return nil
}
