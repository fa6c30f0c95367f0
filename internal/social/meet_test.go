package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

func TestMeetNewAcquaintance(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	b.Position = world.Vec{X: 120, Y: 90}
	b.State = agents.StateAwake | agents.StateMoving

	idx := f.soc.Meet(a, b)
	require.Equal(t, 1, idx)

	l := a.Social.Link(idx)
	assert.Equal(t, a.ID, l.Meeter)
	assert.Equal(t, b.ID, l.Met)
	assert.Equal(t, uint16(1), l.Familiarity)
	assert.Zero(t, l.Attraction)
	// 127 plus full pigmentation and hair marks, plus one for meeting.
	assert.Equal(t, uint8(134), l.FriendFoe)
	assert.Equal(t, b.Position, l.Location)
	assert.Equal(t, b.State, l.Belief)
	assert.Equal(t, f.soc.Today(), l.Date)
	assert.Equal(t, uint8(idx), a.Attention[agents.AttentionActor])

	// Only the meeter's graph is written.
	assert.Equal(t, -1, b.Social.Find(a.ID))

	assert.Equal(t, []Route{RouteAir}, f.rec.routes)
	require.Len(t, f.rec.links, 1)
	assert.Equal(t, uint32(a.Seed[0])+uint32(b.Seed[0])<<8, f.rec.links[0])
}

func TestMeetRepeatUsesSameSlot(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)

	first := f.soc.Meet(a, b)
	before := a.Social.Link(first).Familiarity
	second := f.soc.Meet(a, b)
	assert.Equal(t, first, second)
	assert.Greater(t, a.Social.Link(second).Familiarity, before)
	assert.Len(t, f.rec.links, 1, "braincode link only on first meeting")
}

func TestMeetFamiliarityCaps(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)

	idx := f.soc.Meet(a, b)
	a.Social.Link(idx).Familiarity = 65535
	a.Social.Link(idx).FriendFoe = 255
	f.soc.Meet(a, b)
	assert.Equal(t, uint16(65535), a.Social.Link(idx).Familiarity)
	assert.Equal(t, uint8(255), a.Social.Link(idx).FriendFoe)
}

func TestMeetVascularResponse(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)

	// 133 against a mean of (127+133)/2 is trusted.
	f.soc.Meet(a, b)
	assert.Equal(t, []int{VascularParasympathetic}, f.rec.vascular)

	a.Social.Link(1).FriendFoe = 10
	f.soc.Meet(a, b)
	assert.Equal(t, VascularSympathetic*10, f.rec.vascular[1])
}

func TestMeetFullGraphOfFamily(t *testing.T) {
	f := newFixture(t, 4)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	for i := 1; i < a.Social.Len(); i++ {
		kin := f.being(t, agents.SexMale, uint8(10+i), 1, 1)
		require.Equal(t, i, f.soc.SetRelationship(a, agents.RelationshipBrother, kin))
	}
	assert.Equal(t, -1, a.Social.FindReplaceable(f.soc.Today(), f.soc.Config().ForgetDays))

	snapshot := make([]agents.Link, a.Social.Len())
	for i := range snapshot {
		snapshot[i] = *a.Social.Link(i)
	}

	stranger := f.being(t, agents.SexMale, 3, 7, 7)
	routes := len(f.rec.routes)
	assert.Equal(t, -1, f.soc.Meet(a, stranger))
	assert.Len(t, f.rec.routes, routes+1, "pathogen exposure still happens")
	for i := range snapshot {
		assert.Equal(t, snapshot[i], *a.Social.Link(i))
	}
}

func TestMeetEvictsStaleStranger(t *testing.T) {
	f := newFixture(t, 3)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	old := f.being(t, agents.SexMale, 2, 2, 2)
	kin := f.being(t, agents.SexMale, 3, 1, 1)

	f.soc.SetClock(1, world.Date{Days: 1})
	f.soc.Meet(a, old)
	f.soc.SetRelationship(a, agents.RelationshipSon, kin)

	f.soc.SetClock(2, world.Date{Days: 40})
	newcomer := f.being(t, agents.SexMale, 4, 5, 5)
	idx := f.soc.Meet(a, newcomer)
	require.Equal(t, 1, idx)
	assert.Equal(t, newcomer.ID, a.Social.Link(1).Met)
	assert.Equal(t, uint16(1), a.Social.Link(1).Familiarity)
	assert.Equal(t, agents.RelationshipNone, a.Social.Link(1).Relationship)
	assert.Equal(t, kin.ID, a.Social.Link(2).Met)
}

func TestMeetWithoutGraph(t *testing.T) {
	f := newFixture(t, 8)
	a := &agents.Being{ID: agents.NewIdentity(agents.SexFemale, 1, 1, 1)}
	b := f.being(t, agents.SexMale, 2, 2, 2)
	assert.Equal(t, -1, f.soc.Meet(a, b))
	assert.Empty(t, f.rec.routes)
	assert.Equal(t, f.soc.Config().RespectNormal, f.soc.MeanSentiment(a))
}

func TestNetworkRange(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	r := f.soc.Config().SocialRange
	assert.Equal(t, -1, f.soc.Network(a, b, r))
	assert.Equal(t, 1, f.soc.Network(a, b, r-1))
}

func TestSetRelationship(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexFemale, 2, 1, 1)
	assert.Equal(t, -1, f.soc.SetRelationship(a, agents.RelationshipNone, b))
	idx := f.soc.SetRelationship(a, agents.RelationshipDaughter, b)
	require.Equal(t, 1, idx)
	assert.Equal(t, agents.RelationshipDaughter, a.Social.Link(idx).Relationship)
	assert.Equal(t, idx, a.Social.FindRelationship(agents.RelationshipDaughter))
}

func TestScorePheromone(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = agents.Genome{^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)}
	b.Genome = a.Genome

	assert.Equal(t, -15, ScorePheromone(a, b, 32))
	b.Genome = agents.Genome{}
	assert.Equal(t, 1, ScorePheromone(a, b, 32))
}
