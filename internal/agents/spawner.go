// Being spawning: creates the founding families and newborns, along with
// the family ties that seed each social graph.
package agents

import (
	"fmt"
	"math/rand"

	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/world"
)

// Energy levels.
const (
	EnergyFull    = 5000
	EnergyNewborn = 2400
)

// GestationDays is the number of days between conception and birth.
const GestationDays = 21

// Tie is a family relationship From holds toward To.
type Tie struct {
	From *Being
	To   *Being
	Kind Relationship
}

// Spawner creates beings for the simulation.
type Spawner struct {
	rng      *rand.Rand
	families int // family names handed out so far
}

// familyNameCount is the number of distinct family names FamilyName produces.
const familyNameCount = 250

// NewSpawner creates a being spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed + 300)),
	}
}

// FamilyName returns the family name codes of founding family k. Codes of
// different families differ in both components so founding families never
// share a name.
func FamilyName(k int) (uint8, uint8) {
	return uint8(k%familyNameCount + 1), uint8((k*37+11)%familyNameCount + 1)
}

// SpawnFamilies creates count beings split into families founders plus
// children, placed on habitable land, and adds them to pop. It returns the
// family ties between them.
func (s *Spawner) SpawnFamilies(land *world.Land, pop *Population, count, families int) ([]Tie, error) {
	if families <= 0 {
		families = 1
	}
	var ties []Tie
	for k := 0; k < families; k++ {
		size := count / families
		if k < count%families {
			size++
		}
		if size == 0 {
			continue
		}
		famTies, err := s.spawnFamily(land, pop, s.nextFamily(pop), size)
		if err != nil {
			return ties, err
		}
		ties = append(ties, famTies...)
	}
	return ties, nil
}

// nextFamily hands out the next family name that no living being carries
// in either component, so a new family is never taken for kin. When every
// name is in use it settles for the next one in turn.
func (s *Spawner) nextFamily(pop *Population) int {
	for tries := 0; tries < familyNameCount; tries++ {
		k := s.families
		s.families++
		if !familyInUse(pop, k) {
			return k
		}
	}
	k := s.families
	s.families++
	return k
}

func familyInUse(pop *Population, k int) bool {
	f1, f2 := FamilyName(k)
	for _, b := range pop.Beings() {
		if b.ID.FamilyFirst() == f1 || b.ID.FamilySecond() == f2 {
			return true
		}
	}
	return false
}

// SpawnImmigrants brings one new family of size beings into pop under a
// family name this spawner has not used before.
func (s *Spawner) SpawnImmigrants(land *world.Land, pop *Population, size int) ([]Tie, error) {
	return s.SpawnFamilies(land, pop, size, 1)
}

// spawnFamily builds a whole family before adding any of it, so a family
// either joins pop complete with its ties or not at all.
func (s *Spawner) spawnFamily(land *world.Land, pop *Population, k, size int) ([]Tie, error) {
	if free := pop.Capacity() - pop.Len(); size > free {
		return nil, fmt.Errorf("spawn family %d of %d with room for %d: %w", k, size, free, ErrPopulationFull)
	}
	f1, f2 := FamilyName(k)
	home := land.RandomHabitable(s.rng)
	used := make(map[Identity]bool)

	mother := s.spawnOne(pop, SexFemale, f1, f2, used, RandomGenome(s.rng))
	members := []*Being{mother}
	var father *Being
	if size > 1 {
		father = s.spawnOne(pop, SexMale, f1, f2, used, RandomGenome(s.rng))
		members = append(members, father)
	}
	var children []*Being
	for len(members) < size {
		sex := SexMale
		if s.rng.Float32() < 0.5 {
			sex = SexFemale
		}
		g := mother.Genome
		if father != nil {
			g = Crossover(mother.Genome, father.Genome, s.rng)
		}
		c := s.spawnOne(pop, sex, f1, f2, used, g)
		c.Generation[GenerationMaternal] = 1
		c.Generation[GenerationPaternal] = 1
		children = append(children, c)
		members = append(members, c)
	}

	for _, b := range members {
		b.Position = land.Clamp(world.Vec{
			X: home.X + s.rng.Intn(33) - 16,
			Y: home.Y + s.rng.Intn(33) - 16,
		})
		b.SocialPos = b.Position
		b.SocialNext = b.Position
	}
	for i, b := range members {
		if err := pop.Add(b); err != nil {
			for _, added := range members[:i] {
				pop.Remove(added)
			}
			return nil, fmt.Errorf("spawn family %d: %w", k, err)
		}
	}

	return familyTies(mother, father, children), nil
}

func familyTies(mother, father *Being, children []*Being) []Tie {
	var ties []Tie
	for _, c := range children {
		kind := RelationshipSon
		if c.IsFemale() {
			kind = RelationshipDaughter
		}
		ties = append(ties, Tie{From: mother, To: c, Kind: kind}, Tie{From: c, To: mother, Kind: RelationshipMother})
		if father != nil {
			ties = append(ties, Tie{From: father, To: c, Kind: kind}, Tie{From: c, To: father, Kind: RelationshipFather})
		}
		for _, sib := range children {
			if sib == c {
				continue
			}
			kind := RelationshipBrother
			if sib.IsFemale() {
				kind = RelationshipSister
			}
			ties = append(ties, Tie{From: c, To: sib, Kind: kind})
		}
	}
	return ties
}

// spawnOne creates a being with a first name unused within its family and
// by anyone already living.
func (s *Spawner) spawnOne(pop *Population, sex Sex, f1, f2 uint8, used map[Identity]bool, g Genome) *Being {
	var id Identity
	for {
		id = NewIdentity(sex, uint8(s.rng.Intn(256)), f1, f2)
		if !used[id] && pop.ByIdentity(id) == nil {
			break
		}
	}
	used[id] = true

	b := &Being{
		ID:      id,
		Genome:  g,
		Honor:   uint8(s.rng.Intn(64)),
		Energy:  EnergyFull,
		Height:  uint16(1200 + s.rng.Intn(600)),
		BodyFat: uint16(100 + s.rng.Intn(300)),
		Facing:  uint8(s.rng.Intn(256)),
		Speed:   uint8(s.rng.Intn(20)),
		State:   StateAwake,
		Seed:    entropy.NewSeed(s.rng.Uint32()),
	}
	for i := range b.Preferences {
		b.Preferences[i] = uint8(s.rng.Intn(256))
	}
	for i := range b.Drives {
		b.Drives[i] = uint8(s.rng.Intn(128))
	}
	b.Parasites = uint8(s.rng.Intn(MaxParasitesFor(b, 2, 2) + 1))
	return b
}

// MaxParasitesFor returns how many parasites b can carry: hairier beings
// carry more.
func MaxParasitesFor(b *Being, perHair, base int) int {
	return b.Genome.Hair()*perHair + base
}

// SpawnChild creates the newborn of a mother whose gestation is complete
// and clears her conception. The child's family name joins the mother's
// first family component with the father's second.
func (s *Spawner) SpawnChild(mother *Being, pop *Population) (*Being, []Tie, error) {
	if mother.ConceptionDate.IsZero() {
		return nil, nil, fmt.Errorf("spawn child of %s: no conception", mother.ID.Name())
	}
	sex := SexMale
	if s.rng.Float32() < 0.5 {
		sex = SexFemale
	}

	f1 := mother.ID.FamilyFirst()
	f2 := mother.FatherName.FamilySecond()
	var id Identity
	for tries := 0; ; tries++ {
		id = NewIdentity(sex, uint8(s.rng.Intn(256)), f1, f2)
		if pop.ByIdentity(id) == nil {
			break
		}
		if tries > 256 {
			return nil, nil, fmt.Errorf("spawn child of %s: %w", mother.ID.Name(), ErrDuplicateIdentity)
		}
	}

	child := &Being{
		ID:         id,
		Genome:     Crossover(mother.Genome, mother.FatherGenome, s.rng),
		Honor:      uint8((int(mother.Honor) + int(mother.FatherHonor)) / 2),
		Energy:     EnergyNewborn,
		Height:     uint16(400 + s.rng.Intn(100)),
		BodyFat:    uint16(50 + s.rng.Intn(50)),
		Facing:     mother.Facing,
		State:      StateAwake,
		Position:   mother.Position,
		SocialPos:  mother.Position,
		SocialNext: mother.Position,
		Seed:       entropy.NewSeed(s.rng.Uint32()),
	}
	child.Preferences = mother.Preferences
	child.Generation[GenerationMaternal] = MaxGeneration(mother) + 1
	child.Generation[GenerationPaternal] = mother.Generation[GenerationFather] + 1

	if err := pop.Add(child); err != nil {
		return nil, nil, fmt.Errorf("spawn child of %s: %w", mother.ID.Name(), err)
	}

	mother.ConceptionDate = Date{}
	mother.FatherGenome = Genome{}

	kind := RelationshipSon
	if child.IsFemale() {
		kind = RelationshipDaughter
	}
	ties := []Tie{
		{From: mother, To: child, Kind: kind},
		{From: child, To: mother, Kind: RelationshipMother},
	}
	if father := pop.ByIdentity(mother.FatherName); father != nil {
		ties = append(ties,
			Tie{From: father, To: child, Kind: kind},
			Tie{From: child, To: father, Kind: RelationshipFather})
	}
	return child, ties, nil
}

// MaxGeneration returns the larger of b's maternal and paternal generations.
func MaxGeneration(b *Being) uint16 {
	if b.Generation[GenerationMaternal] > b.Generation[GenerationPaternal] {
		return b.Generation[GenerationMaternal]
	}
	return b.Generation[GenerationPaternal]
}
