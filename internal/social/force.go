package social

import (
	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// Spatial force constants.
const (
	forceWeight    = 2048
	forceDistScale = 512
	forceDamping   = 20
)

// RunSocialTick pulls each being's social position toward the beings it
// regards above its mean sentiment and pushes it away from the rest. All
// pulls are computed from the positions at the start of the tick and
// committed together afterwards.
func (s *Society) RunSocialTick(pop *agents.Population) {
	beings := pop.Beings()
	for _, b := range beings {
		b.SocialNext = s.socialPull(pop, b)
	}
	for _, b := range beings {
		b.SocialPos = b.SocialNext
	}
}

func (s *Society) socialPull(pop *agents.Population, b *agents.Being) world.Vec {
	g := b.Social
	if !g.Allocated() {
		return b.SocialPos
	}
	mean := int(s.MeanSentiment(b))
	loc := b.SocialPos

	var sum world.Vec
	count := 0
	for i := 0; i < g.Len(); i++ {
		l := g.Link(i)
		if l.IsEmpty() {
			continue
		}
		other := pop.ByIdentity(l.Met)
		if other == nil {
			continue
		}
		count++

		delta := other.SocialPos.Sub(loc)
		dist2 := delta.Dot(delta) / forceDistScale
		w := (int(l.FriendFoe) - mean) * forceWeight
		sum.X += delta.X * w / (dist2 + 1)
		sum.Y += delta.Y * w / (dist2 + 1)
	}
	if count > 0 {
		loc.X += sum.X / (count * forceDamping)
		loc.Y += sum.Y / (count * forceDamping)
	}
	return s.land.Clamp(loc)
}
