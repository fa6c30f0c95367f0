// Simulation ties the land, the population and the social engine together
// and runs them each tick.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/config"
	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/social"
	"github.com/talgya/troop/internal/world"
)

// maxEvents bounds the in-memory event log.
const maxEvents = 1000

// Event is a notable occurrence in the troop.
type Event = social.Event

// Simulation holds the complete world state and wires systems together.
type Simulation struct {
	Config     config.Config
	Land       *world.Land
	Population *agents.Population
	Society    *social.Society
	Spawner    *agents.Spawner
	Brain      social.Brain
	Events     []Event // Recent events, trimmed daily
	LastTick   uint64  // Most recent tick processed

	// Indicator samples not yet collected by the caller.
	Indicators []social.Indicators

	Stats SimStats
}

// SimStats tracks aggregate troop statistics.
type SimStats struct {
	TotalPopulation int `json:"total_population"`
	Births          int `json:"births"`
	Deaths          int `json:"deaths"`
	Conceptions     int `json:"conceptions"`
	Conflicts       int `json:"conflicts"`
}

// NewSimulation generates the land, spawns the founding families and
// seeds every graph with its family ties.
func NewSimulation(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}

	land := world.Generate(world.GenConfig{
		Dimension: cfg.Simulation.Dimension,
		Seed:      seed,
		StartDay:  cfg.Simulation.StartDay,
	})
	pop := agents.NewPopulation(cfg.Simulation.Capacity, cfg.Social.GraphSize, cfg.Social.RespectNormal)
	soc := social.New(cfg.Social, land)
	spawner := agents.NewSpawner(seed)

	ties, err := spawner.SpawnFamilies(land, pop, cfg.Simulation.Population, cfg.Simulation.Families)
	if err != nil {
		return nil, fmt.Errorf("spawn founding families: %w", err)
	}
	for _, t := range ties {
		soc.SetRelationship(t.From, t.Kind, t.To)
	}

	sim := &Simulation{
		Config:     cfg,
		Land:       land,
		Population: pop,
		Society:    soc,
		Spawner:    spawner,
		Brain:      social.Nop{},
	}
	sim.updateStats()
	slog.Info("troop founded",
		"seed", seed,
		"beings", pop.Len(),
		"families", cfg.Simulation.Families,
		"ties", len(ties),
		"date", land.Date(),
	)
	return sim, nil
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() uint64 {
	return s.LastTick
}

// Step runs one tick. The land, being and brain stages run concurrently
// and all finish before Step returns. The being stage sees the date and
// weather as they were when the tick started.
func (s *Simulation) Step(ctx context.Context, tick uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.LastTick = tick
	cond := s.Land.Conditions()

	var g errgroup.Group
	g.Go(func() error {
		s.Land.Cycle()
		return nil
	})
	g.Go(func() error {
		return s.stepBeings(tick, cond)
	})
	g.Go(func() error {
		if err := s.Brain.Cycle(cond.Date); err != nil {
			return fmt.Errorf("brain cycle: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, e := range s.Society.DrainEvents() {
		switch e.Category {
		case "conception":
			s.Stats.Conceptions++
		case "conflict":
			s.Stats.Conflicts++
		}
		s.Events = append(s.Events, e)
	}
	return nil
}

// stepBeings is the being stage: cognition and encounters for every
// being, then births and deaths, the social force and indicator sampling.
func (s *Simulation) stepBeings(tick uint64, cond world.Conditions) error {
	s.Society.SetClock(tick, cond.Date)

	beings := s.Population.Beings()
	for _, b := range beings {
		s.cognition(b, beings, cond)
	}

	if err := s.processBirths(tick, cond.Date); err != nil {
		return err
	}
	s.processDeaths(tick)

	s.Society.RunSocialTick(s.Population)

	if every := s.Config.Simulation.IndicatorsEvery; every > 0 && tick%uint64(every) == 0 {
		s.Indicators = append(s.Indicators, s.Society.Measure(s.Population))
	}
	return nil
}

// DrainIndicators returns and clears the pending indicator samples.
func (s *Simulation) DrainIndicators() []social.Indicators {
	ind := s.Indicators
	s.Indicators = nil
	return ind
}

// TickDay runs every sim-day: statistics, daily summary.
func (s *Simulation) TickDay(tick uint64) {
	if err := s.processImmigration(tick); err != nil {
		slog.Error("immigration failed", "tick", tick, "err", err)
	}
	s.updateStats()

	// Count events by category since last report.
	eventCounts := make(map[string]int)
	for _, e := range s.Events {
		eventCounts[e.Category]++
	}

	c := s.Society.Counters()
	slog.Info("daily report",
		"tick", tick,
		"time", SimTime(tick),
		"date", s.Land.Date(),
		"alive", s.Stats.TotalPopulation,
		"births", s.Stats.Births,
		"deaths", s.Stats.Deaths,
		"grooming", c.Grooming,
		"chat", c.Chat,
		"events_conception", eventCounts["conception"],
		"events_conflict", eventCounts["conflict"],
		"events_birth", eventCounts["birth"],
		"events_death", eventCounts["death"],
		"events_immigration", eventCounts["immigration"],
	)

	// Trim old events to prevent unbounded growth.
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

func (s *Simulation) updateStats() {
	s.Stats.TotalPopulation = s.Population.Len()
}

func (s *Simulation) emit(tick uint64, category, format string, args ...any) {
	s.Events = append(s.Events, Event{
		Tick:        tick,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}
