// Package agents provides the being data model, genetics, and the
// fixed-capacity social graph each being carries.
package agents

import (
	"github.com/talgya/troop/internal/entropy"
	"github.com/talgya/troop/internal/world"
)

// Date is simulation time as recorded on graph links and conceptions.
type Date = world.Date

// Sex represents biological sex, encoded in the high byte of Identity.First.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// Drive indexes Being.Drives.
type Drive uint8

const (
	DriveHunger Drive = iota
	DriveSocial
	DriveFatigue
	DriveSex
)

// DriveCount is the number of drives.
const DriveCount = 4

// Preference indexes Being.Preferences. Each preference kind has a male
// and a female variant; the female variant is always male+1.
type Preference uint8

const (
	PrefMateHeightMale Preference = iota
	PrefMateHeightFemale
	PrefMatePigmentationMale
	PrefMatePigmentationFemale
	PrefMateHairMale
	PrefMateHairFemale
	PrefMateFrameMale
	PrefMateFrameFemale
	PrefGroomMale
	PrefGroomFemale
)

// PreferenceCount is the number of learned preference bytes.
const PreferenceCount = 10

// Attention indexes Being.Attention, the focus of attention per channel.
type Attention uint8

const (
	AttentionActor        Attention = iota // Social graph slot being attended to
	AttentionEpisode                       // Episodic memory index
	AttentionBody                          // Body location (inventory slot)
	AttentionRelationship                  // Relationship kind being attended to
	AttentionTerritory                     // Territory cell
)

// AttentionCount is the number of attention channels.
const AttentionCount = 5

// State is a bitset describing what a being is currently doing.
type State uint16

const (
	StateAsleep      State = 0
	StateAwake       State = 1 << 0
	StateHungry      State = 1 << 1
	StateSwimming    State = 1 << 2
	StateEating      State = 1 << 3
	StateMoving      State = 1 << 4
	StateSpeaking    State = 1 << 5
	StateShouting    State = 1 << 6
	StateGrooming    State = 1 << 7
	StateSuckling    State = 1 << 8
	StateShowForce   State = 1 << 9
	StateAttack      State = 1 << 10
	StateNoFood      State = 1 << 11
	StateReproducing State = 1 << 12
)

// Awake levels passed to grooming and dialogue.
type Awake uint8

const (
	FullyAsleep   Awake = 0
	SlightlyAwake Awake = 1
	FullyAwake    Awake = 2
)

// GoalKind is the current goal of a being.
type GoalKind uint8

const (
	GoalNone GoalKind = iota
	GoalLocation
	GoalMate
)

// Goal is a timed objective. Target identifies the being searched for
// when Kind is GoalMate; Location is used for GoalLocation.
type Goal struct {
	Kind     GoalKind  `json:"kind"`
	Target   Identity  `json:"target"`
	Location world.Vec `json:"location"`
	Timer    uint16    `json:"timer"`
}

// Inventory flags for body locations.
const (
	InventoryGroomed uint16 = 1
	InventoryWound   uint16 = 2
)

// InventorySize is the number of body locations.
const InventorySize = 8

// Generation indexes Being.Generation.
const (
	GenerationMaternal = 0
	GenerationPaternal = 1
	GenerationFather   = 2
)

// Being is a simulated individual.
type Being struct {
	ID     Identity `json:"id"`
	Genome Genome   `json:"genome"`

	// Learned state
	Preferences [PreferenceCount]uint8 `json:"preferences"`
	Drives      [DriveCount]uint8      `json:"drives"`
	Attention   [AttentionCount]uint8  `json:"attention"`
	Goal        Goal                   `json:"goal"`

	// Status and body
	Honor     uint8                 `json:"honor"`
	Parasites uint8                 `json:"parasites"`
	Energy    int                   `json:"energy"`
	Height    uint16                `json:"height"`
	BodyFat   uint16                `json:"body_fat"`
	Inventory [InventorySize]uint16 `json:"inventory"`

	// Motion
	Position   world.Vec `json:"position"`
	Facing     uint8     `json:"facing"`
	Speed      uint8     `json:"speed"`
	State      State     `json:"state"`
	SocialPos  world.Vec `json:"social_pos"`
	SocialNext world.Vec `json:"social_next"`

	// Names this being uses for each territory cell, zero = unnamed.
	Territory [world.TerritoryArea]uint8 `json:"-"`

	// Conception bookkeeping (females)
	ConceptionDate Date      `json:"conception_date"`
	FatherGenome   Genome    `json:"father_genome"`
	FatherHonor    uint8     `json:"father_honor"`
	FatherName     Identity  `json:"father_name"`
	Generation     [3]uint16 `json:"generation"`

	Seed   entropy.Seed   `json:"seed"`
	Rand   entropy.Stream `json:"-"` // overrides Seed when set
	Social Graph          `json:"-"`

	Speaking bool `json:"speaking"`
	Alive    bool `json:"alive"`
}

// Random advances the being's generator.
func (b *Being) Random() uint16 {
	if b.Rand != nil {
		return b.Rand.Next()
	}
	return b.Seed.Next()
}

// Sex returns the being's sex.
func (b *Being) Sex() Sex {
	return b.ID.Sex()
}

// IsFemale reports whether the being is female.
func (b *Being) IsFemale() bool {
	return b.ID.Sex() == SexFemale
}

// SpendEnergy removes energy, floored at zero.
func (b *Being) SpendEnergy(amount int) {
	b.Energy -= amount
	if b.Energy < 0 {
		b.Energy = 0
	}
}

// NatureNurture blends a genetic preference with a learned one.
func NatureNurture(gene int, learned uint8) int {
	return (gene + int(learned>>4)) >> 1
}
