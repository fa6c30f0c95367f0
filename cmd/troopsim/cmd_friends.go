package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/engine"
	"github.com/talgya/troop/internal/social"
)

func newFriendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends [name]",
		Short: "Run the troop, then list who each being regards as friend, enemy or mate",
		Long: `Runs the troop for --ticks without recording it, then prints the
relationship listing of the named being, or of every being when no name
is given. Names match case-insensitively on the full name or its prefix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ticks") {
				cfg.Simulation.Ticks, _ = cmd.Flags().GetInt("ticks")
			}
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := social.ParseListKind(kindName)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg.Storage.Path = ""
			res, err := runTroop(ctx, cfg, 0)
			if err != nil {
				return err
			}

			beings := res.Sim.Population.Beings()
			if len(args) == 1 {
				beings = matchBeings(beings, args[0])
				if len(beings) == 0 {
					return fmt.Errorf("no living being named %q", args[0])
				}
			}
			return printListings(cmd.OutOrStdout(), res.Sim, beings, kind, jsonOut)
		},
	}

	cmd.Flags().Int("ticks", 0, "Ticks to run before listing (defaults to simulation.ticks)")
	cmd.Flags().String("kind", "friends", "Listing to print: friends, enemies or mates")
	return cmd
}

// matchBeings returns the beings whose name starts with name, ignoring case.
func matchBeings(beings []*agents.Being, name string) []*agents.Being {
	name = strings.ToLower(name)
	var out []*agents.Being
	for _, b := range beings {
		if strings.HasPrefix(strings.ToLower(b.ID.Name()), name) {
			out = append(out, b)
		}
	}
	return out
}

type listing struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Entries []social.Entry `json:"entries"`
}

func printListings(w io.Writer, sim *engine.Simulation, beings []*agents.Being, kind social.ListKind, jsonOut bool) error {
	if jsonOut {
		out := make([]listing, 0, len(beings))
		for _, b := range beings {
			out = append(out, listing{
				Name:    b.ID.Name(),
				Kind:    kind.String(),
				Entries: sim.Society.Friends(b, kind),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, b := range beings {
		entries := sim.Society.Friends(b, kind)
		fmt.Fprintf(w, "%s: %d %s (mean sentiment %d)\n",
			b.ID.Name(), len(entries), kind, sim.Society.MeanSentiment(b))
		fmt.Fprint(w, social.FormatEntries(entries))
	}
	return nil
}
