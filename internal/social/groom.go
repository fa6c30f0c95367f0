package social

import "github.com/talgya/troop/internal/agents"

// groomRetries bounds how often a groomer looks for an untended body location.
const groomRetries = 4

// maxParasites is the parasite load b can carry, never more than a byte holds.
func (s *Society) maxParasites(b *agents.Being) int {
	return min(agents.MaxParasitesFor(b, s.cfg.ParasitesPerHair, s.cfg.MinParasites), 255)
}

// Groom lets meeter groom met. Parasites breed, sap energy and hop
// between close beings on every call; the grooming itself is gated on
// met being awake, close and meeter moving slowly, then drawn with a
// probability rising with grooming preference, familiarity and met's
// honor. Reports whether grooming happened.
func (s *Society) Groom(meeter, met *agents.Being, distance int, awake agents.Awake, familiarity uint16) bool {
	if int(meeter.Parasites) < s.maxParasites(meeter) {
		if int(meeter.Random()) < s.cfg.ParasiteEnvironment+s.cfg.ParasiteBreed*int(meeter.Parasites) {
			meeter.Parasites++
		}
	}

	cost := s.cfg.ParasiteEnergyCost * int(meeter.Parasites)
	meeter.SpendEnergy(cost)
	s.counters.EnergyOutput += uint64(cost)

	if distance < s.cfg.ParasiteHopMaxDistance &&
		int(met.Parasites) < s.maxParasites(met) &&
		met.Parasites < meeter.Parasites {
		met.Parasites++
		meeter.Parasites--
		s.counters.ParasiteMobility++
	}

	if awake == agents.FullyAsleep ||
		distance >= s.cfg.GroomingMaxSeparation ||
		int(meeter.Speed) >= s.cfg.MaxSpeedWhilstGrooming {
		return false
	}

	roll := int(meeter.Random() & 16383)
	if familiarity > 16 {
		familiarity = 16
	}
	pref := agents.NatureNurture(meeter.Genome.Groom(),
		meeter.Preferences[agents.PrefGroomMale+femaleOffset(met)])
	chance := s.cfg.GroomingProb +
		pref*(1+int(familiarity))*s.cfg.GroomingProbHonor*(1+int(met.Honor))
	if roll >= chance {
		return false
	}

	s.Physiology.TransmitPathogen(meeter, met, RouteTouch)
	s.Physiology.TransmitPathogen(met, meeter, RouteTouch)

	loc := int(meeter.Attention[agents.AttentionBody]) % agents.InventorySize
	for tries := 0; met.Inventory[loc]&agents.InventoryGroomed != 0 && tries < groomRetries; tries++ {
		loc = int(meeter.Random()) % agents.InventorySize
	}
	met.Inventory[loc] = (met.Inventory[loc] | agents.InventoryGroomed) &^ agents.InventoryWound
	meeter.Attention[agents.AttentionBody] = uint8(loc)
	s.counters.Grooming++

	s.Episodic.RecordInteraction(meeter, met, EventGroom, AffectGroom, loc)
	s.Episodic.RecordInteraction(met, meeter, EventGroomed, AffectGroom, loc)

	if mi := s.Meet(meeter, met); mi > 0 {
		if ti := s.Meet(met, meeter); ti > 0 {
			l := meeter.Social.Link(mi)
			l.FriendFoe = incByte(l.FriendFoe)
			l = met.Social.Link(ti)
			l.FriendFoe = incByte(l.FriendFoe)
		}
	}

	meeter.Honor = incByte(meeter.Honor)
	met.Honor = decByte(met.Honor)

	if int(met.Parasites) > s.cfg.ParasitesRemoved {
		met.Parasites -= uint8(s.cfg.ParasitesRemoved)
	} else {
		met.Parasites = 0
	}
	return true
}
