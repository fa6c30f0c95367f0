// Package social implements the encounter engine: first meetings, grooming,
// squabbling, mating and chat between beings, the reputation threshold
// derived from each being's social graph, and the per-tick spatial pull of
// relationships on social position.
package social

import (
	"fmt"

	"github.com/talgya/troop/internal/agents"
	"github.com/talgya/troop/internal/config"
	"github.com/talgya/troop/internal/world"
)

// Route is a pathogen transmission route.
type Route uint8

const (
	RouteAir Route = iota
	RouteTouch
	RouteSex
)

// Vascular response modes. Stressed responses are scaled.
const (
	VascularParasympathetic = -1
	VascularSympathetic     = 1
)

// EventKind classifies an episodic interaction.
type EventKind uint8

const (
	EventGroom EventKind = iota
	EventGroomed
	EventHit
	EventHitBy
	EventMate
	EventChat
)

// Affect weights for episodic interactions.
const (
	AffectGroom              = 50
	AffectChat               = 10
	AffectMate               = 1000
	AffectSquabbleVictor     = 20
	AffectSquabbleVanquished = -10
)

// Physiology receives pathogen exposure and vascular responses.
type Physiology interface {
	TransmitPathogen(from, to *agents.Being, route Route)
	VascularResponse(b *agents.Being, mode int)
}

// Episodic records interactions and reports how well known a being is.
type Episodic interface {
	RecordInteraction(actor, other *agents.Being, kind EventKind, affect, detail int)
	Celebrity(meeter, met *agents.Being) int
}

// Braincode links the neural state of two beings.
type Braincode interface {
	InitLink(a, b *agents.Being, seed uint32, sentiment uint8)
	Dialogue(awake agents.Awake, a, b *agents.Being, slot int)
}

// Brain advances neural state once per tick. It runs concurrently with the
// being stage and must only touch state it owns.
type Brain interface {
	Cycle(date world.Date) error
}

// Nop implements every collaborator as a no-op.
type Nop struct{}

func (Nop) TransmitPathogen(from, to *agents.Being, route Route) {}
func (Nop) VascularResponse(b *agents.Being, mode int) {}
func (Nop) RecordInteraction(actor, other *agents.Being, kind EventKind, a, d int) {}
func (Nop) Celebrity(meeter, met *agents.Being) int { return 0 }
func (Nop) InitLink(a, b *agents.Being, seed uint32, sentiment uint8) {}
func (Nop) Dialogue(awake agents.Awake, a, b *agents.Being, slot int) {}
func (Nop) Cycle(date world.Date) error { return nil }

// Counters accumulate activity between indicator samples.
type Counters struct {
	Grooming         uint64 `json:"grooming"`
	Chat             uint64 `json:"chat"`
	ParasiteMobility uint64 `json:"parasite_mobility"`
	EnergyOutput     uint64 `json:"energy_output"`
	Conceptions      uint64 `json:"conceptions"`
	Squabbles        uint64 `json:"squabbles"`
}

// Event is a notable social occurrence.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // conception, conflict, birth
}

// Society holds the social constants, collaborators and running counters
// shared by every interaction. It is used from a single goroutine.
type Society struct {
	cfg  config.Social
	land *world.Land

	Physiology Physiology
	Episodic   Episodic
	Braincode  Braincode

	today    world.Date
	tick     uint64
	counters Counters
	events   []Event
}

// New creates a Society with no-op collaborators.
func New(cfg config.Social, land *world.Land) *Society {
	return &Society{
		cfg:        cfg,
		land:       land,
		Physiology: Nop{},
		Episodic:   Nop{},
		Braincode:  Nop{},
		today:      land.Date(),
	}
}

// Config returns the social constants.
func (s *Society) Config() config.Social {
	return s.cfg
}

// SetClock sets the date and tick seen by subsequent interactions.
func (s *Society) SetClock(tick uint64, today world.Date) {
	s.tick = tick
	s.today = today
}

// Today returns the date interactions are stamped with.
func (s *Society) Today() world.Date {
	return s.today
}

// Counters returns the activity counters accumulated since the last reset.
func (s *Society) Counters() Counters {
	return s.counters
}

// ResetCounters zeroes the activity counters.
func (s *Society) ResetCounters() {
	s.counters = Counters{}
}

// DrainEvents returns and clears pending events.
func (s *Society) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *Society) emit(category, format string, args ...any) {
	s.events = append(s.events, Event{
		Tick:        s.tick,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}

// MeanSentiment is the trust threshold of b: friends sit at or above it.
// It is recomputed on every call.
func (s *Society) MeanSentiment(b *agents.Being) uint8 {
	return b.Social.MeanSentiment(s.cfg.RespectNormal)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func incByte(v uint8) uint8 {
	if v < 255 {
		return v + 1
	}
	return v
}

func decByte(v uint8) uint8 {
	if v > 0 {
		return v - 1
	}
	return v
}

func braincodeSeed(a, b uint16) uint32 {
	return uint32(a) + uint32(b)<<8
}
