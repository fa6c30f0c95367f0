package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// Encounter runs the interaction protocols for meeter noticing met: the
// pair network, then meeter either grooms met or squabbles with it, then
// courts met and chats when close enough. awake is met's wakefulness.
// Returns the resulting state bits for meeter.
func (s *Society) Encounter(meeter, met *agents.Being, awake agents.Awake) agents.State {
	if meeter == met {
		return 0
	}
	distance := world.Distance(meeter.Position, met.Position)
	slot := s.Network(meeter, met, distance)
	if slot < 1 {
		return 0
	}

	var state agents.State
	familiarity := meeter.Social.Link(slot).Familiarity
	if s.Groom(meeter, met, distance, awake, familiarity) {
		state |= agents.StateGrooming
	} else {
		state |= s.Squabble(meeter, met, distance, meeter.IsFemale())
	}

	// Grooming or squabbling may have moved the relationship.
	slot = meeter.Social.Find(met.ID)
	if slot < 1 {
		return state
	}
	state |= s.Mate(meeter, met, s.today, slot, distance)
	if distance < s.cfg.ChatRange {
		state |= s.Chat(meeter, met, slot)
	}
	return state
}
