// Being cognition — sleep, drives, foraging, goals, movement and the
// encounter with the nearest neighbour. Runs inside the being stage.
package engine

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// Minutes of the day between which beings are fully awake.
const (
	dawn = 6 * 60
	dusk = 21 * 60
)

// Drive thresholds.
const (
	hungryThreshold = 128 // start foraging
	sated           = 16  // stop foraging
	urgentHunger    = 224 // hunger that keeps a being half awake at night
	restedThreshold = 32  // fatigue below which a sleeper stirs
)

// Movement and metabolism.
const (
	cruiseSpeed    = 12
	stormThreshold = 0.5
	goalTimeout    = 720
	goalRadius     = 12
	searchDistance = 96
	foragingYield  = 64
	poorGround     = 0.25
	socialRelief   = 8
)

// AwakeLevel returns how awake b is at the given minute of the day.
// Hungry or rested beings stay half awake through the night.
func AwakeLevel(b *agents.Being, minutes uint16) agents.Awake {
	if minutes >= dawn && minutes < dusk {
		return agents.FullyAwake
	}
	if b.Drives[agents.DriveHunger] > urgentHunger ||
		b.Drives[agents.DriveFatigue] < restedThreshold {
		return agents.SlightlyAwake
	}
	return agents.FullyAsleep
}

// cognition advances b by one minute. beings is the population in
// iteration order; encounters happen in that order.
func (s *Simulation) cognition(b *agents.Being, beings []*agents.Being, cond world.Conditions) {
	if AwakeLevel(b, cond.Date.Minutes) == agents.FullyAsleep {
		sleep(b)
		return
	}

	state := agents.StateAwake
	raiseDrives(b)
	fed := s.forage(b)
	state |= fed
	s.steer(b)
	if fed&agents.StateEating == 0 {
		state |= s.move(b, cond.Weather[s.Land.TerritoryIndex(b.Position)])
	}
	b.SpendEnergy(1 + int(b.Speed)/16 + b.Genome.LatentEnergyUse()/8)

	social := s.Society.Config()
	if other := nearestNeighbour(b, beings, social.SocialRange); other != nil {
		result := s.Society.Encounter(b, other, AwakeLevel(other, cond.Date.Minutes))
		if result&(agents.StateGrooming|agents.StateSpeaking) != 0 {
			b.Drives[agents.DriveSocial] = lower(b.Drives[agents.DriveSocial], socialRelief)
		}
		state |= result
	} else if b.Random()&1 == 0 {
		b.Drives[agents.DriveSocial] = raise(b.Drives[agents.DriveSocial], 1)
	}
	b.State = state
}

func sleep(b *agents.Being) {
	b.State = 0
	b.Speed = 0
	if b.Random()&1 == 0 {
		b.Drives[agents.DriveFatigue] = lower(b.Drives[agents.DriveFatigue], 1)
		b.SpendEnergy(1)
	}
}

func raiseDrives(b *agents.Being) {
	r := b.Random()
	if r&3 == 0 {
		b.Drives[agents.DriveHunger] = raise(b.Drives[agents.DriveHunger], 1)
	}
	if r&(7<<2) == 0 {
		b.Drives[agents.DriveFatigue] = raise(b.Drives[agents.DriveFatigue], 1)
	}
	if r&(3<<5) == 0 {
		b.Drives[agents.DriveSex] = raise(b.Drives[agents.DriveSex], 1)
	}
}

// forage feeds a hungry being from the ground it stands on. Once started
// it keeps eating until sated. Poor ground sends it looking elsewhere.
func (s *Simulation) forage(b *agents.Being) agents.State {
	hunger := b.Drives[agents.DriveHunger]
	eating := b.State&agents.StateEating != 0
	if hunger < hungryThreshold && !(eating && hunger > sated) {
		return 0
	}

	h := s.Land.Habitability(b.Position)
	if h < poorGround {
		if b.Goal.Kind == agents.GoalNone {
			b.Goal = agents.Goal{
				Kind:     agents.GoalLocation,
				Location: s.Land.Clamp(b.Position.Add(world.Heading(uint8(b.Random()), searchDistance))),
				Timer:    goalTimeout,
			}
		}
		return agents.StateHungry | agents.StateNoFood
	}

	b.Energy += int(h * foragingYield)
	if b.Energy > agents.EnergyFull {
		b.Energy = agents.EnergyFull
	}
	b.Drives[agents.DriveHunger] = lower(hunger, 4)
	b.Speed = 0
	return agents.StateHungry | agents.StateEating
}

// steer turns b toward its goal, or toward its social position when it
// has drifted away from it, or lets it wander.
func (s *Simulation) steer(b *agents.Being) {
	social := s.Society.Config()

	if b.Goal.Kind != agents.GoalNone {
		if b.Goal.Timer == 0 {
			b.Goal = agents.Goal{}
		} else {
			b.Goal.Timer--
		}
	}

	switch b.Goal.Kind {
	case agents.GoalMate:
		mate := s.Population.ByIdentity(b.Goal.Target)
		if mate == nil || world.Distance(b.Position, mate.Position) < social.MatingRange {
			b.Goal = agents.Goal{}
			break
		}
		b.Facing = world.Facing(mate.Position.Sub(b.Position))
		return
	case agents.GoalLocation:
		if world.Distance(b.Position, b.Goal.Location) < goalRadius {
			b.Goal = agents.Goal{}
			break
		}
		b.Facing = world.Facing(b.Goal.Location.Sub(b.Position))
		return
	}

	if int(b.Drives[agents.DriveSex]) > social.ThresholdSeekMate {
		if target := s.mostAttractive(b); !target.IsZero() {
			b.Goal = agents.Goal{Kind: agents.GoalMate, Target: target, Timer: goalTimeout}
			return
		}
	}

	if world.Distance(b.Position, b.SocialPos) > social.SocialRange {
		b.Facing = world.Facing(b.SocialPos.Sub(b.Position))
		return
	}
	if r := b.Random(); r&15 == 0 {
		b.Facing += uint8(r>>4)&31 - 16
	}
}

// mostAttractive returns the living, unrelated being of the opposite sex
// that b is most attracted to, or the zero identity.
func (s *Simulation) mostAttractive(b *agents.Being) agents.Identity {
	var best agents.Identity
	var bestAttraction uint8
	g := b.Social
	for i := 1; i < g.Len(); i++ {
		l := g.Link(i)
		if l.IsEmpty() || l.Entity != agents.EntityBeing || g.IsFamily(i) {
			continue
		}
		if l.Met.Sex() == b.Sex() || l.Attraction <= bestAttraction {
			continue
		}
		if s.Population.ByIdentity(l.Met) == nil {
			continue
		}
		best, bestAttraction = l.Met, l.Attraction
	}
	return best
}

// move eases b's speed toward its cruising speed, slowed by storms, and
// steps it along its facing.
func (s *Simulation) move(b *agents.Being, weather float64) agents.State {
	target := cruiseSpeed + int(b.Drives[agents.DriveHunger])/32
	if weather > stormThreshold {
		target /= 2
	}
	switch {
	case int(b.Speed) < target:
		b.Speed++
	case int(b.Speed) > target:
		b.Speed--
	}
	if b.Speed == 0 {
		return 0
	}

	next := s.Land.Clamp(b.Position.Add(world.Heading(b.Facing, int(b.Speed)/8+1)))
	if next == b.Position {
		b.Facing += 128
		return 0
	}
	b.Position = next
	return agents.StateMoving
}

// nearestNeighbour returns the closest other being strictly within
// reach, or nil.
func nearestNeighbour(b *agents.Being, beings []*agents.Being, reach int) *agents.Being {
	var best *agents.Being
	bestDist := reach
	for _, other := range beings {
		if other == b {
			continue
		}
		if d := world.Distance(b.Position, other.Position); d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

func raise(v uint8, n int) uint8 {
	if int(v)+n > 255 {
		return 255
	}
	return v + uint8(n)
}

func lower(v uint8, n int) uint8 {
	if int(v) < n {
		return 0
	}
	return v - uint8(n)
}
