package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// Chat exchanges information between meeter and met, who is held in
// meeter's graph at slot. The pair settle on a name for meeter's current
// territory, meeter picks up gossip about a third party when it trusts
// met, and meeter's learned preferences drift toward met's (trusted) or
// away from them. Returns StateSpeaking when gossip was exchanged.
func (s *Society) Chat(meeter, met *agents.Being, slot int) agents.State {
	mg, tg := meeter.Social, met.Social
	if !mg.Allocated() || !tg.Allocated() {
		return 0
	}
	link := mg.Link(slot)
	if slot < 1 || link == nil || link.IsEmpty() {
		return 0
	}

	meeter.Speaking = false
	s.counters.Chat++

	mean := s.MeanSentiment(meeter)
	trusted := link.FriendFoe >= mean

	s.agreeTerritory(meeter, met, trusted)

	var state agents.State
	if trusted {
		s.Episodic.RecordInteraction(meeter, met, EventChat, AffectChat, 0)
		state |= s.gossip(meeter, met, slot)
	}

	s.Braincode.Dialogue(agents.FullyAwake, meeter, met, slot)
	alignPreferences(meeter, met, trusted)

	if state != 0 {
		meeter.Speaking = true
		met.Speaking = true
	}
	return state
}

// agreeTerritory names meeter's current cell if it has no name yet, then
// defers to a more honorable trusted contact or imposes its own name on a
// less honorable one.
func (s *Society) agreeTerritory(meeter, met *agents.Being, trusted bool) {
	idx := s.land.TerritoryIndex(meeter.Position)
	if meeter.Territory[idx] == 0 {
		var name uint8
	search:
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				if x == 0 && y == 0 {
					continue
				}
				if n := meeter.Territory[world.Wrap(idx+y*world.TerritoryDimension+x)]; n > 0 {
					name = n
					break search
				}
			}
		}
		if name == 0 {
			name = 1 + uint8(meeter.Random()%255)
		}
		meeter.Territory[idx] = name
	}

	if !trusted {
		return
	}
	switch {
	case met.Honor > meeter.Honor:
		if met.Territory[idx] > 0 {
			meeter.Territory[idx] = met.Territory[idx]
		}
	case met.Honor < meeter.Honor:
		met.Territory[idx] = meeter.Territory[idx]
	}
}

// gossip asks met about a third party: the being meeter is seeking as a
// mate, else one of the relationship kind meeter is attending to, else a
// random slot of met's graph.
func (s *Society) gossip(meeter, met *agents.Being, slot int) agents.State {
	mg, tg := meeter.Social, met.Social
	if tg.Len() < 2 {
		return 0
	}

	idx := -1
	if meeter.Goal.Kind == agents.GoalMate {
		idx = tg.Find(meeter.Goal.Target)
	}
	if idx == -1 {
		if rel := agents.Relationship(meeter.Attention[agents.AttentionRelationship]); rel > 0 {
			// The slot is looked up in meeter's graph and read from met's.
			idx = mg.FindRelationship(rel)
		} else {
			idx = 1 + int(meeter.Random())%(tg.Len()-1)
		}
	}
	told := tg.Link(idx)
	if idx < 1 || told == nil || told.IsEmpty() || told.Met == meeter.ID {
		return 0
	}

	if i := mg.Find(told.Met); i > 0 {
		known := mg.Link(i)
		switch {
		case told.FriendFoe > known.FriendFoe:
			known.FriendFoe = incByte(known.FriendFoe)
		case told.FriendFoe < known.FriendFoe:
			known.FriendFoe = decByte(known.FriendFoe)
		}
		if known.Familiarity < 65535 {
			known.Familiarity++
		}
		if told.Date.After(known.Date) {
			known.Location = told.Location
			known.Belief = told.Belief
			known.Date = told.Date
		}
		return agents.StateSpeaking
	}

	replace := mg.FindReplaceable(s.today, s.cfg.ForgetDays)
	if replace < 1 || replace == slot {
		return 0
	}
	heard := mg.Link(replace)
	*heard = *told
	heard.Attraction = 0
	if told.Relationship.IsFamily() {
		heard.Relationship = told.Relationship.AsOther()
	}
	s.Braincode.InitLink(meeter, met, braincodeSeed(meeter.Seed[1], met.Seed[1]), told.FriendFoe)
	return agents.StateSpeaking
}

// alignPreferences moves each learned preference of meeter one step toward
// met's when trusted, one step away otherwise, within 0..255.
func alignPreferences(meeter, met *agents.Being, trusted bool) {
	if meeter == met {
		return
	}
	for i := range meeter.Preferences {
		mine, theirs := meeter.Preferences[i], met.Preferences[i]
		switch {
		case mine < theirs && trusted:
			mine++
		case mine < theirs:
			mine = decByte(mine)
		case mine > theirs && trusted:
			mine--
		case mine > theirs:
			mine = incByte(mine)
		}
		meeter.Preferences[i] = mine
	}
}
