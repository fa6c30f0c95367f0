package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/world"
)

// pregnant makes the first female of sim conceive with the first male of
// another family on day 1.
func pregnant(t *testing.T, sim *Simulation) (mother, father *agents.Being) {
	t.Helper()
	for _, b := range sim.Population.Beings() {
		if mother == nil && b.IsFemale() {
			mother = b
		}
	}
	require.NotNil(t, mother)
	for _, b := range sim.Population.Beings() {
		if !b.IsFemale() && !b.ID.SameFamily(mother.ID) {
			father = b
			break
		}
	}
	require.NotNil(t, father)

	mother.ConceptionDate = world.Date{Days: 1}
	mother.FatherGenome = father.Genome
	mother.FatherName = father.ID
	return mother, father
}

func TestDue(t *testing.T) {
	b := &agents.Being{}
	assert.False(t, Due(b, world.Date{Days: 100}))

	b.ConceptionDate = world.Date{Days: 3}
	assert.False(t, Due(b, world.Date{Days: 3 + agents.GestationDays - 1, Minutes: 1439}))
	assert.True(t, Due(b, world.Date{Days: 3 + agents.GestationDays}))
}

func TestProcessBirths(t *testing.T) {
	sim := newTestSim(t, testConfig())
	mother, father := pregnant(t, sim)
	energy := mother.Energy

	require.NoError(t, sim.processBirths(7, world.Date{Days: 1 + agents.GestationDays}))
	require.Equal(t, 13, sim.Population.Len())
	assert.Equal(t, 1, sim.Stats.Births)
	assert.True(t, mother.ConceptionDate.IsZero())
	assert.Equal(t, energy-birthCost, mother.Energy)

	child := sim.Population.Beings()[12]
	assert.Equal(t, mother.ID.FamilyFirst(), child.ID.FamilyFirst())
	assert.Equal(t, father.ID.FamilySecond(), child.ID.FamilySecond())

	slot := child.Social.FindRelationship(agents.RelationshipMother)
	require.Positive(t, slot)
	assert.Equal(t, mother.ID, child.Social.Link(slot).Met)
	assert.Positive(t, child.Social.FindRelationship(agents.RelationshipFather))
	assert.Positive(t, mother.Social.Find(child.ID))

	require.NotEmpty(t, sim.Events)
	last := sim.Events[len(sim.Events)-1]
	assert.Equal(t, "birth", last.Category)
	assert.Equal(t, uint64(7), last.Tick)
}

func TestProcessBirthsWaitsForGestation(t *testing.T) {
	sim := newTestSim(t, testConfig())
	mother, _ := pregnant(t, sim)

	require.NoError(t, sim.processBirths(1, world.Date{Days: agents.GestationDays}))
	assert.Equal(t, 12, sim.Population.Len())
	assert.False(t, mother.ConceptionDate.IsZero())
}

func TestProcessBirthsPopulationFull(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.Capacity = cfg.Simulation.Population
	sim := newTestSim(t, cfg)
	mother, _ := pregnant(t, sim)

	require.NoError(t, sim.processBirths(1, world.Date{Days: 1 + agents.GestationDays}))
	assert.Equal(t, 12, sim.Population.Len())
	assert.Zero(t, sim.Stats.Births)
	assert.True(t, mother.ConceptionDate.IsZero(), "the lost birth clears the conception")
}

func TestProcessDeaths(t *testing.T) {
	sim := newTestSim(t, testConfig())
	victim := sim.Population.Beings()[3]
	victim.Energy = 0

	sim.processDeaths(9)
	assert.Equal(t, 11, sim.Population.Len())
	assert.Nil(t, sim.Population.ByIdentity(victim.ID))
	assert.False(t, victim.Alive)
	assert.Equal(t, 1, sim.Stats.Deaths)
	require.NotEmpty(t, sim.Events)
	assert.Equal(t, "death", sim.Events[len(sim.Events)-1].Category)
}

func TestProcessImmigration(t *testing.T) {
	sim := newTestSim(t, testConfig())
	require.NoError(t, sim.processImmigration(1))
	assert.Equal(t, 12, sim.Population.Len(), "no immigration above the floor")

	for _, b := range append([]*agents.Being(nil), sim.Population.Beings()[:6]...) {
		sim.Population.Remove(b)
	}
	require.NoError(t, sim.processImmigration(2))
	assert.Equal(t, 10, sim.Population.Len())
	assert.Equal(t, "immigration", sim.Events[len(sim.Events)-1].Category)

	arrival := sim.Population.Beings()[9]
	assert.Positive(t, arrival.Social.Count(), "immigrants arrive with family ties")
}
