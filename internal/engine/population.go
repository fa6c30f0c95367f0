// Population dynamics — births after gestation and deaths from exhaustion.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// birthCost is the energy a mother spends delivering.
const birthCost = agents.EnergyNewborn / 2

// Due reports whether b's gestation is complete on today.
func Due(b *agents.Being, today world.Date) bool {
	if b.ConceptionDate.IsZero() {
		return false
	}
	return today.Days >= b.ConceptionDate.Days+agents.GestationDays
}

// processBirths delivers every newborn whose gestation is complete and
// seeds the family graphs. A birth that finds the population full is lost.
func (s *Simulation) processBirths(tick uint64, today world.Date) error {
	var mothers []*agents.Being
	for _, b := range s.Population.Beings() {
		if Due(b, today) {
			mothers = append(mothers, b)
		}
	}

	for _, mother := range mothers {
		child, ties, err := s.Spawner.SpawnChild(mother, s.Population)
		if errors.Is(err, agents.ErrPopulationFull) || errors.Is(err, agents.ErrDuplicateIdentity) {
			slog.Warn("birth lost", "mother", mother.ID.Name(), "err", err)
			mother.ConceptionDate = agents.Date{}
			mother.FatherGenome = agents.Genome{}
			continue
		}
		if err != nil {
			return fmt.Errorf("process births: %w", err)
		}

		for _, t := range ties {
			s.Society.SetRelationship(t.From, t.Kind, t.To)
		}
		mother.SpendEnergy(birthCost)
		s.Stats.Births++
		s.emit(tick, "birth", "%s was born to %s", child.ID.Name(), mother.ID.Name())
		slog.Debug("birth", "child", child.ID.Name(), "mother", mother.ID.Name(), "date", today)
	}
	return nil
}

// processDeaths removes every being that has run out of energy.
func (s *Simulation) processDeaths(tick uint64) {
	var dead []*agents.Being
	for _, b := range s.Population.Beings() {
		if b.Energy <= 0 {
			dead = append(dead, b)
		}
	}
	for _, b := range dead {
		s.Population.Remove(b)
		s.Stats.Deaths++
		s.emit(tick, "death", "%s has died of exhaustion", b.ID.Name())
	}
}

// processImmigration brings in a new family when the troop has dwindled
// below the configured floor.
func (s *Simulation) processImmigration(tick uint64) error {
	floor := s.Config.Simulation.MinPopulation
	if floor <= 0 || s.Population.Len() >= floor {
		return nil
	}
	size := s.Config.Simulation.ImmigrantFamily
	if free := s.Population.Capacity() - s.Population.Len(); size > free {
		size = free
	}
	if size <= 0 {
		return nil
	}

	ties, err := s.Spawner.SpawnImmigrants(s.Land, s.Population, size)
	if err != nil {
		return fmt.Errorf("process immigration: %w", err)
	}
	for _, t := range ties {
		s.Society.SetRelationship(t.From, t.Kind, t.To)
	}
	s.emit(tick, "immigration", "a family of %d arrived", size)
	slog.Info("immigrants arrived", "tick", tick, "time", SimTime(tick), "size", size, "alive", s.Population.Len())
	return nil
}
