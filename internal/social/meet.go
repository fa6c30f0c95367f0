package social

import "github.com/talgya/troop/internal/agents"

// Meet records an encounter of meeter with met in meeter's graph and
// returns the slot used, or -1 when the graph is unallocated or full of
// protected relationships. Only meeter's graph is written.
func (s *Society) Meet(meeter, met *agents.Being) int {
	g := meeter.Social
	if !g.Allocated() {
		return -1
	}

	s.Physiology.TransmitPathogen(meeter, met, RouteAir)

	idx := g.Find(met.ID)
	known := idx > 0
	if !known {
		idx = g.FindReplaceable(s.today, s.cfg.ForgetDays)
	}
	if idx < 1 {
		return -1
	}
	link := g.Link(idx)

	if !known {
		ff := int(s.cfg.RespectNormal) -
			ScorePheromone(meeter, met, s.cfg.MinimumGeneticVariation) +
			traitScore(meeter, met) +
			s.Episodic.Celebrity(meeter, met)

		*link = agents.Link{
			Entity:    agents.EntityBeing,
			Meeter:    meeter.ID,
			Met:       met.ID,
			FriendFoe: clampByte(ff),
		}
		s.Braincode.InitLink(meeter, met, braincodeSeed(meeter.Seed[0], met.Seed[0]), link.FriendFoe)
	}

	if link.FriendFoe > s.MeanSentiment(meeter) {
		s.Physiology.VascularResponse(meeter, VascularParasympathetic)
	} else {
		s.Physiology.VascularResponse(meeter, VascularSympathetic*10)
	}

	link.Location = met.Position
	link.Belief = met.State
	link.Date = s.today

	if link.Familiarity < 65535 {
		link.Familiarity++
	}
	link.FriendFoe = incByte(link.FriendFoe)

	meeter.Attention[agents.AttentionActor] = uint8(idx)
	return idx
}

// Network meets met only when it is within social range.
func (s *Society) Network(meeter, met *agents.Being, distance int) int {
	if distance >= s.cfg.SocialRange {
		return -1
	}
	return s.Meet(meeter, met)
}

// SetRelationship meets met and tags the slot with rel.
func (s *Society) SetRelationship(meeter *agents.Being, rel agents.Relationship, met *agents.Being) int {
	if rel == agents.RelationshipNone {
		return -1
	}
	idx := s.Meet(meeter, met)
	if idx > 0 {
		meeter.Social.Link(idx).Relationship = rel
	}
	return idx
}
