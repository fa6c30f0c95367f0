package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/config"
	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/world"
)

func allOnes() agents.Genome {
	return agents.Genome{^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)}
}

func TestGroomRemovesParasites(t *testing.T) {
	f := newFixture(t, 8)
	// no parasite acquisition, then a winning grooming roll
	a := f.being(t, agents.SexFemale, 1, 1, 1, 65535, 0)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	b.Parasites = 3
	b.Honor = 5
	b.Inventory[0] = agents.InventoryWound

	require.True(t, f.soc.Groom(a, b, 0, agents.FullyAwake, 0))
	assert.Zero(t, b.Parasites, "never below zero")
	assert.Equal(t, agents.InventoryGroomed, b.Inventory[0])
	assert.Equal(t, uint8(1), a.Honor)
	assert.Equal(t, uint8(4), b.Honor)
	assert.Equal(t, []EventKind{EventGroom, EventGroomed}, f.rec.episodes[:2])
	assert.Equal(t, uint64(1), f.soc.Counters().Grooming)

	// each side meets the other, then gains one more step of regard
	ia := a.Social.Find(b.ID)
	ib := b.Social.Find(a.ID)
	require.Positive(t, ia)
	require.Positive(t, ib)
	assert.Equal(t, uint8(135), a.Social.Link(ia).FriendFoe)
	assert.Equal(t, uint8(135), b.Social.Link(ib).FriendFoe)
}

func TestGroomGate(t *testing.T) {
	f := newFixture(t, 8)
	cfg := f.soc.Config()
	a := f.being(t, agents.SexFemale, 1, 1, 1, 65535)
	b := f.being(t, agents.SexMale, 2, 2, 2)

	assert.False(t, f.soc.Groom(a, b, 0, agents.FullyAsleep, 0))
	assert.False(t, f.soc.Groom(a, b, cfg.GroomingMaxSeparation, agents.FullyAwake, 0))
	a.Speed = uint8(cfg.MaxSpeedWhilstGrooming)
	assert.False(t, f.soc.Groom(a, b, 0, agents.FullyAwake, 0))
	assert.Zero(t, f.soc.Counters().Grooming)
	assert.Equal(t, -1, a.Social.Find(b.ID))
}

func TestGroomParasitesBreedAndHop(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1, 0, 65535)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = allOnes() // room for plenty of parasites
	b.Genome = allOnes()
	a.Parasites = 4
	energy := a.Energy

	f.soc.Groom(a, b, 0, agents.FullyAsleep, 0)
	// bred to 5, lost 5 energy, then one hopped to b
	assert.Equal(t, uint8(4), a.Parasites)
	assert.Equal(t, uint8(1), b.Parasites)
	assert.Equal(t, energy-5*f.soc.Config().ParasiteEnergyCost, a.Energy)
	assert.Equal(t, uint64(1), f.soc.Counters().ParasiteMobility)
}

func TestGroomParasitesSaturate(t *testing.T) {
	f := newFixture(t, 8)
	f.soc.cfg.ParasitesPerHair = 20 // hairy beings could carry more than a byte holds
	a := f.being(t, agents.SexFemale, 1, 1, 1, 0, 65535)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = allOnes()
	a.Parasites = 255

	require.Greater(t, agents.MaxParasitesFor(a, 20, f.soc.Config().MinParasites), 255)
	assert.Equal(t, 255, f.soc.maxParasites(a))

	f.soc.Groom(a, b, 1000, agents.FullyAsleep, 0)
	assert.Equal(t, uint8(255), a.Parasites)
	assert.Zero(t, b.Parasites, "too far apart to hop")
}

func TestSaturatingByteArithmetic(t *testing.T) {
	assert.Equal(t, uint8(0), subSat(3, 20))
	assert.Equal(t, uint8(255), subSat(250, -10))
	assert.Equal(t, uint8(255), addSat(250, 10))
	assert.Equal(t, uint8(0), addSat(5, -10))
}

func TestSquabbleSparesFamily(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexMale, 1, 3, 4, 0, 0, 0, 0)
	a.Genome = allOnes()
	a.Honor = 255

	same := f.being(t, agents.SexMale, 2, 3, 4)
	half := f.being(t, agents.SexMale, 3, 3, 9)
	for _, b := range []*agents.Being{same, half} {
		assert.Zero(t, f.soc.Squabble(a, b, 0, false))
		assert.Equal(t, -1, a.Social.Find(b.ID))
	}
	assert.Zero(t, a.Rand.(*entropy.Sequence).Calls())
}

func TestSquabbleAttack(t *testing.T) {
	f := newFixture(t, 8)
	// gate passes, meeter rolls high, met rolls zero, punch slot 3
	a := f.being(t, agents.SexMale, 1, 1, 1, 0, 7, 0, 3)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = allOnes()
	a.Honor = 20
	b.Honor = 200
	b.Position = world.Vec{X: 104, Y: 100}

	state := f.soc.Squabble(a, b, 4, false)
	assert.Equal(t, agents.StateAttack, state)
	assert.Equal(t, agents.InventoryWound, b.Inventory[3])
	cfg := f.soc.Config()
	assert.Equal(t, agents.EnergyFull-cfg.SquabbleEnergyAttack, a.Energy)
	assert.Equal(t, agents.EnergyFull-cfg.SquabbleEnergyAttack, b.Energy)
	// the victor had less honor, so the two swap after adjustment
	assert.Equal(t, uint8(190), a.Honor)
	assert.Equal(t, uint8(30), b.Honor)
	assert.Equal(t, uint8(cfg.SquabbleFleeSpeed), b.Speed)

	ia := a.Social.Find(b.ID)
	ib := b.Social.Find(a.ID)
	// distinct genomes: 127 - 1 with no trait marks, plus one for meeting
	assert.Equal(t, uint8(127-cfg.SquabbleDisrespect), a.Social.Link(ia).FriendFoe)
	assert.Equal(t, uint8(127-cfg.SquabbleDisrespect), b.Social.Link(ib).FriendFoe)
	assert.Equal(t, []EventKind{EventHit, EventHitBy}, f.rec.episodes)
	require.Len(t, f.soc.DrainEvents(), 1)
}

func TestSquabbleShowOfForce(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexMale, 1, 1, 1, 0, 7, 0, 2)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = allOnes()
	b.Inventory[2] = agents.InventoryGroomed

	cfg := f.soc.Config()
	state := f.soc.Squabble(a, b, cfg.SquabbleShowForceDistance+1, false)
	assert.Equal(t, agents.StateShowForce, state)
	assert.Zero(t, b.Inventory[2])
	assert.Equal(t, agents.EnergyFull-cfg.SquabbleEnergyShowForce, a.Energy)
	assert.Empty(t, f.soc.DrainEvents())
}

func TestSquabbleFemaleRestraint(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1, 4096)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	a.Genome = allOnes()
	// aggression 15 shifts to 1: 4096 + 0 is not below the gate
	assert.Zero(t, f.soc.Squabble(a, b, 0, true))
}

func TestSquabbleEnergyUsuallyWins(t *testing.T) {
	wins := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		f := newFixture(t, 8)
		a := f.being(t, agents.SexMale, 1, 1, 1)
		b := f.being(t, agents.SexMale, 2, 2, 2)
		a.Seed = entropy.NewSeed(uint32(i)*7919 + 1)
		a.Genome = allOnes()
		a.Honor = 255
		a.Energy = 5000
		b.Energy = 10

		require.NotZero(t, f.soc.Squabble(a, b, 0, false))
		if b.Speed == uint8(f.soc.Config().SquabbleFleeSpeed) && a.Speed == 0 {
			wins++
		}
	}
	assert.Greater(t, wins, trials/2)
}

func TestAccumulate(t *testing.T) {
	assert.Equal(t, uint8(255), accumulate(250, 7, 2))
	assert.Equal(t, uint8(10), accumulate(10, 8, 2), "large attraction ignored")
	assert.Equal(t, uint8(0), accumulate(3, -5, 2))
	assert.Equal(t, uint8(1), accumulate(3, -2, 2))
}

func TestMateConception(t *testing.T) {
	f := newFixture(t, 8)
	female := f.being(t, agents.SexFemale, 1, 1, 1, 0)
	male := f.being(t, agents.SexMale, 2, 2, 2)
	female.Drives[agents.DriveSex] = 200
	male.Drives[agents.DriveSex] = 200
	female.Goal.Kind = agents.GoalMate
	male.Generation = [3]uint16{4, 6, 0}
	male.Honor = 77

	slot := f.soc.Meet(female, male)
	female.Social.Link(slot).Attraction = 10

	today := world.Date{Days: 12}
	state := f.soc.Mate(female, male, today, slot, 0)
	assert.Equal(t, agents.StateReproducing, state)
	assert.Equal(t, today, female.ConceptionDate)
	assert.Equal(t, male.ID, female.FatherName)
	assert.Equal(t, male.Genome, female.FatherGenome)
	assert.Equal(t, uint8(77), female.FatherHonor)
	assert.Equal(t, uint16(6), female.Generation[agents.GenerationFather])
	assert.Zero(t, female.Drives[agents.DriveSex])
	assert.Zero(t, male.Drives[agents.DriveSex])
	assert.Equal(t, agents.GoalNone, female.Goal.Kind)
	assert.Contains(t, f.rec.routes, RouteSex)
	assert.Equal(t, uint64(1), f.soc.Counters().Conceptions)

	ev := f.soc.DrainEvents()
	require.Len(t, ev, 1)
	assert.Equal(t, "conception", ev[0].Category)

	// a pending conception is never overwritten
	female.Drives[agents.DriveSex] = 200
	male.Drives[agents.DriveSex] = 200
	f.soc.Mate(female, male, world.Date{Days: 13}, slot, 0)
	assert.Equal(t, today, female.ConceptionDate)
}

func TestMateNeedsDrive(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1, 0)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	slot := f.soc.Meet(a, b)
	a.Drives[agents.DriveSex] = 255
	assert.Zero(t, f.soc.Mate(a, b, f.soc.Today(), slot, 0))
	assert.Zero(t, a.Social.Link(slot).Attraction)
	assert.Zero(t, f.soc.Mate(a, b, f.soc.Today(), -1, 0))
}

func TestMateAttractionStaysInRange(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexMale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	b.Honor = 255
	b.Genome = allOnes()
	a.Genome = allOnes()
	slot := f.soc.Meet(a, b)

	limit := 4 * f.soc.Config().PairBondThreshold
	prev := a.Social.Link(slot).Attraction
	for i := 0; i < 2000; i++ {
		a.Drives[agents.DriveSex] = 255
		b.Drives[agents.DriveSex] = 255
		f.soc.Mate(a, b, f.soc.Today(), slot, i%16)
		at := a.Social.Link(slot).Attraction
		// no wrap-around in either direction
		assert.Less(t, int(at)-int(prev), limit)
		if prev == 0 {
			assert.Less(t, int(at), limit)
		}
		prev = at
	}
	assert.True(t, a.ConceptionDate.IsZero(), "same-sex pairs never conceive")
}

func TestEncounterRecordsRelationship(t *testing.T) {
	f := newFixture(t, 8)
	a := f.being(t, agents.SexFemale, 1, 1, 1)
	b := f.being(t, agents.SexMale, 2, 2, 2)
	for i := range a.Territory {
		a.Territory[i] = 3
	}
	f.soc.Encounter(a, b, agents.FullyAwake)
	assert.Positive(t, a.Social.Find(b.ID))
	assert.Zero(t, f.soc.Encounter(a, a, agents.FullyAwake))

	far := f.being(t, agents.SexMale, 3, 3, 3)
	far.Position = world.Vec{X: 250, Y: 250}
	assert.Zero(t, f.soc.Encounter(a, far, agents.FullyAwake))
	assert.Equal(t, -1, a.Social.Find(far.ID))
}

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}
