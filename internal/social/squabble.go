package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

func subSat(v uint8, n int) uint8 {
	return clampByte(int(v) - n)
}

func addSat(v uint8, n int) uint8 {
	return clampByte(int(v) + n)
}

// Squabble resolves a confrontation between beings of rival families,
// those sharing neither family name component. isFemale damps the
// meeter's aggression. Returns StateShowForce or StateAttack when a fight
// happened, otherwise zero.
func (s *Society) Squabble(meeter, met *agents.Being, distance int, isFemale bool) agents.State {
	if meeter.ID.SameFamily(met.ID) {
		return 0
	}
	delta := met.Position.Sub(meeter.Position)
	meeter.Facing = world.Facing(delta)

	agro := meeter.Genome.Aggression()
	if isFemale {
		agro >>= 3
	}
	if int(meeter.Random()) >= agro*4096+agro*int(meeter.Honor)*10 {
		return 0
	}

	victor, vanquished := meeter, met
	if int(meeter.Random()&7)*meeter.Energy < int(meeter.Random()&7)*met.Energy {
		victor, vanquished = met, meeter
	}
	s.counters.Squabbles++

	if vi := s.Meet(victor, vanquished); vi > 0 {
		if wi := s.Meet(vanquished, victor); wi > 0 {
			l := victor.Social.Link(vi)
			l.FriendFoe = subSat(l.FriendFoe, s.cfg.SquabbleDisrespect)
			l = vanquished.Social.Link(wi)
			l.FriendFoe = subSat(l.FriendFoe, s.cfg.SquabbleDisrespect)
		}
	}

	victor.Honor = addSat(victor.Honor, s.cfg.SquabbleHonorAdjust)
	vanquished.Honor = subSat(vanquished.Honor, s.cfg.SquabbleHonorAdjust)

	var result agents.State
	punch := int(victor.Random()) % agents.InventorySize
	if distance > s.cfg.SquabbleShowForceDistance {
		vanquished.Inventory[punch] = 0
		victor.SpendEnergy(s.cfg.SquabbleEnergyShowForce)
		vanquished.SpendEnergy(s.cfg.SquabbleEnergyShowForce)
		s.counters.EnergyOutput += uint64(s.cfg.SquabbleEnergyShowForce * 2)
		result |= agents.StateShowForce
	} else {
		vanquished.Inventory[punch] = agents.InventoryWound
		victor.SpendEnergy(s.cfg.SquabbleEnergyAttack)
		vanquished.SpendEnergy(s.cfg.SquabbleEnergyAttack)
		s.counters.EnergyOutput += uint64(s.cfg.SquabbleEnergyAttack * 2)
		if victor.Honor < vanquished.Honor {
			victor.Honor, vanquished.Honor = vanquished.Honor, victor.Honor
		}
		result |= agents.StateAttack
		s.emit("conflict", "%s attacked %s", victor.ID.Name(), vanquished.ID.Name())
	}

	s.Episodic.RecordInteraction(victor, vanquished, EventHit, AffectSquabbleVictor, punch)
	s.Episodic.RecordInteraction(vanquished, victor, EventHitBy, AffectSquabbleVanquished, punch)

	// The vanquished turns away from the victor and flees.
	away := vanquished.Position.Sub(victor.Position)
	vanquished.Facing = world.Facing(away)
	vanquished.Speed = clampByte(s.cfg.SquabbleFleeSpeed)

	return result
}
