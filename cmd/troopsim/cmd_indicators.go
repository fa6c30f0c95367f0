package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/troop/internal/persistence"
	"github.com/talgya/troop/internal/social"
)

func newIndicatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Show recorded social indicators and events of a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.Path == "" {
				return fmt.Errorf("storage.path is empty: nothing was recorded")
			}
			runID, _ := cmd.Flags().GetString("run")
			limit, _ := cmd.Flags().GetInt("limit")
			eventLimit, _ := cmd.Flags().GetInt("events")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if _, err := os.Stat(cfg.Storage.Path); err != nil {
				return fmt.Errorf("no recorded runs: %w", err)
			}
			db, err := persistence.Open(cfg.Storage.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if runID == "" {
				if runID, err = db.LatestRun(); err != nil {
					return fmt.Errorf("no recorded runs in %s: %w", cfg.Storage.Path, err)
				}
			}
			history, err := db.IndicatorHistory(runID, limit)
			if err != nil {
				return fmt.Errorf("load indicators: %w", err)
			}
			events, err := db.RecentEvents(runID, eventLimit)
			if err != nil {
				return fmt.Errorf("load events: %w", err)
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"run":        runID,
					"indicators": history,
					"events":     events,
				})
			}
			printIndicators(cmd.OutOrStdout(), runID, history)
			if len(events) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "\nrecent events:")
				for _, e := range events {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-12s %s\n", humanize.Comma(int64(e.Tick)), e.Category, e.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("run", "", "Run ID (defaults to the latest run)")
	cmd.Flags().Int("limit", 24, "Number of indicator samples to show")
	cmd.Flags().Int("events", 10, "Number of recent events to show")
	return cmd
}

func printIndicators(w io.Writer, runID string, history []social.Indicators) {
	fmt.Fprintf(w, "run %s: %d samples\n", runID, len(history))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tPOP\tLINKS\tCOHESION\tFAMILIAR\tAMOROUS\tPARASITES\tGROOM\tCHAT\tENERGY\tCONCEIVED\tSQUABBLES")
	for _, ind := range history {
		fmt.Fprintf(tw, "%s\t%d\t%d.%02d\t%d.%02d\t%d\t%d\t%s\t%d.%02d\t%d.%02d\t%s\t%d\t%d\n",
			ind.Date, ind.Population,
			ind.SocialLinks/100, ind.SocialLinks%100,
			ind.Cohesion/100, ind.Cohesion%100,
			ind.Familiarity, ind.Amorousness,
			humanize.Comma(int64(ind.Parasites)),
			ind.Grooming/100, ind.Grooming%100,
			ind.Chat/100, ind.Chat%100,
			humanize.Comma(int64(ind.EnergyOutput)),
			ind.Conceptions, ind.Squabbles,
		)
	}
	tw.Flush()
}
