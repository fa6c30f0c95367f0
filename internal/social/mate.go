package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// Mate evaluates meeter's attraction to met, held in meeter's graph at
// slot. Both sex drives must exceed the seek-mate threshold. Once the
// attraction accumulator passes the pair-bond threshold and the pair are
// within mating range, the female of an opposite-sex pair conceives if she
// has no pending conception. Returns StateReproducing when in range.
func (s *Society) Mate(meeter, met *agents.Being, today world.Date, slot, distance int) agents.State {
	if slot < 1 {
		return 0
	}
	link := meeter.Social.Link(slot)
	if link == nil {
		return 0
	}
	if int(meeter.Drives[agents.DriveSex]) <= s.cfg.ThresholdSeekMate ||
		int(met.Drives[agents.DriveSex]) <= s.cfg.ThresholdSeekMate {
		return 0
	}

	var state agents.State
	attraction := 0
	// Higher status candidates are more likely to be considered at all.
	if int(meeter.Random()) < 32000+int(met.Honor)*meeter.Genome.StatusPreference()*s.cfg.MatingProb {
		attraction = 1 +
			ScorePheromone(meeter, met, s.cfg.MinimumGeneticVariation) +
			traitScore(meeter, met) +
			s.Episodic.Celebrity(meeter, met)

		if int(link.Attraction) > s.cfg.PairBondThreshold {
			attraction++
			if distance < s.cfg.MatingRange {
				s.Physiology.TransmitPathogen(meeter, met, RouteSex)
				s.Physiology.TransmitPathogen(met, meeter, RouteSex)
				if meeter.Sex() != met.Sex() {
					female, male := meeter, met
					if !female.IsFemale() {
						female, male = met, meeter
					}
					if female.ConceptionDate.IsZero() {
						s.conceive(female, male, today)
					}
				}
				state |= agents.StateReproducing
			}
		} else {
			attraction--
		}
	}

	link.Attraction = accumulate(link.Attraction, attraction, s.cfg.PairBondThreshold)
	return state
}

// accumulate applies attraction to the accumulator. Positive attraction
// below four times the pair-bond threshold adds, saturating at 255;
// negative attraction subtracts down to zero.
func accumulate(acc uint8, attraction, pairBond int) uint8 {
	if attraction > 0 {
		if attraction < pairBond*4 {
			return clampByte(int(acc) + attraction)
		}
		return acc
	}
	return clampByte(int(acc) + attraction)
}

func (s *Society) conceive(female, male *agents.Being, today world.Date) {
	female.ConceptionDate = today
	female.FatherGenome = male.Genome
	female.FatherHonor = male.Honor
	female.FatherName = male.ID
	female.Generation[agents.GenerationFather] = agents.MaxGeneration(male)

	female.Drives[agents.DriveSex] = 0
	male.Drives[agents.DriveSex] = 0
	female.Goal.Kind = agents.GoalNone
	male.Goal.Kind = agents.GoalNone

	s.Episodic.RecordInteraction(female, male, EventMate, female.Genome.MateBond()*AffectMate, 0)
	s.Episodic.RecordInteraction(male, female, EventMate, male.Genome.MateBond()*AffectMate, 0)

	s.counters.Conceptions++
	s.emit("conception", "%s conceived with %s", female.ID.Name(), male.ID.Name())
}
