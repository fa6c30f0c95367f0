package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// densityGrid is the side of the population density grid.
const densityGrid = 8

// Indicators summarise the social state of the population. Per-capita
// rates are scaled by 100.
type Indicators struct {
	Date             world.Date                     `json:"date"`
	Population       int                            `json:"population"`
	SocialLinks      int                            `json:"social_links"` // per capita x100
	Cohesion         int                            `json:"cohesion"`     // mean friend_foe x100
	Familiarity      int                            `json:"familiarity"`
	Amorousness      int                            `json:"amorousness"`
	Parasites        int                            `json:"parasites"`
	ParasiteMobility int                            `json:"parasite_mobility"`
	Grooming         int                            `json:"grooming"`
	Chat             int                            `json:"chat"`
	EnergyOutput     int                            `json:"energy_output"`
	Conceptions      int                            `json:"conceptions"`
	Squabbles        int                            `json:"squabbles"`
	Drives           [agents.DriveCount]int         `json:"drives"`
	Density          [densityGrid * densityGrid]int `json:"density"`
}

// Measure samples indicators from pop and the counters accumulated since
// the last sample, then resets the counters.
func (s *Society) Measure(pop *agents.Population) Indicators {
	c := s.counters
	s.ResetCounters()

	ind := Indicators{
		Date:        s.today,
		Population:  pop.Len(),
		Conceptions: int(c.Conceptions),
		Squabbles:   int(c.Squabbles),
	}

	var links, cohesion, familiarity, amorousness int
	for _, b := range pop.Beings() {
		ind.Parasites += int(b.Parasites)
		for d := range b.Drives {
			ind.Drives[d] += int(b.Drives[d])
		}
		p := s.land.Clamp(b.Position)
		gx := p.X * densityGrid / s.land.Dimension
		gy := p.Y * densityGrid / s.land.Dimension
		ind.Density[gy*densityGrid+gx]++

		g := b.Social
		for i := 0; i < g.Len(); i++ {
			l := g.Link(i)
			if l.IsEmpty() {
				continue
			}
			links++
			cohesion += int(l.FriendFoe)
			familiarity += int(l.Familiarity)
			amorousness += int(l.Attraction)
		}
	}

	if links > 0 {
		ind.Cohesion = cohesion * 100 / links
		ind.Familiarity = familiarity / links
		ind.Amorousness = amorousness / links
	} else {
		ind.Cohesion = int(s.cfg.RespectNormal) * 100
	}

	if n := pop.Len(); n > 0 {
		ind.SocialLinks = links * 100 / n
		ind.ParasiteMobility = int(c.ParasiteMobility) * 100 / n
		ind.Grooming = int(c.Grooming) * 100 / n
		ind.Chat = int(c.Chat) * 100 / n
		ind.EnergyOutput = int(c.EnergyOutput) / n
		for d := range ind.Drives {
			ind.Drives[d] = ind.Drives[d] * 100 / n
		}
	}
	return ind
}
