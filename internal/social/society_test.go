package social

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/config"
	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/world"
)

// recorder is a collaborator that remembers what it was told.
type recorder struct {
	Nop
	routes    []Route
	vascular  []int
	episodes  []EventKind
	links     []uint32
	dialogues int
	celebrity int
}

func (r *recorder) TransmitPathogen(from, to *agents.Being, route Route) {
	r.routes = append(r.routes, route)
}

func (r *recorder) VascularResponse(b *agents.Being, mode int) {
	r.vascular = append(r.vascular, mode)
}

func (r *recorder) RecordInteraction(actor, other *agents.Being, kind EventKind, affect, detail int) {
	r.episodes = append(r.episodes, kind)
}

func (r *recorder) Celebrity(meeter, met *agents.Being) int {
	return r.celebrity
}

func (r *recorder) InitLink(a, b *agents.Being, seed uint32, sentiment uint8) {
	r.links = append(r.links, seed)
}

func (r *recorder) Dialogue(awake agents.Awake, a, b *agents.Being, slot int) {
	r.dialogues++
}

type fixture struct {
	soc  *Society
	pop  *agents.Population
	land *world.Land
	rec  *recorder
}

func newFixture(t *testing.T, graphSize int) *fixture {
	t.Helper()
	cfg := config.DefaultSocial()
	cfg.GraphSize = graphSize
	land := world.Generate(world.SmallTestConfig())
	soc := New(cfg, land)
	rec := &recorder{}
	soc.Physiology = rec
	soc.Episodic = rec
	soc.Braincode = rec
	soc.SetClock(1, world.Date{Days: 10, Minutes: 30})
	return &fixture{
		soc:  soc,
		pop:  agents.NewPopulation(16, graphSize, cfg.RespectNormal),
		land: land,
		rec:  rec,
	}
}

// being adds a being with a zero genome and preferences. rolls, when
// given, replace its generator.
func (f *fixture) being(t *testing.T, sex agents.Sex, first, fam1, fam2 uint8, rolls ...uint16) *agents.Being {
	t.Helper()
	b := &agents.Being{
		ID:       agents.NewIdentity(sex, first, fam1, fam2),
		Energy:   agents.EnergyFull,
		Height:   1500,
		BodyFat:  200,
		Position: world.Vec{X: 100, Y: 100},
		Seed:     entropy.NewSeed(uint32(first)<<8 | uint32(fam1)),
	}
	b.SocialPos = b.Position
	if len(rolls) > 0 {
		b.Rand = entropy.NewSequence(rolls...)
	}
	require.NoError(t, f.pop.Add(b))
	return b
}
