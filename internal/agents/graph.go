package agents

import "github.com/talgya/troop/internal/world"

// EntityKind tags what a graph link refers to. Only beings are tracked.
type EntityKind uint8

const (
	EntityBeing EntityKind = iota
	EntityGroup
	EntityObject
	EntityTerritory
)

// Relationship is the kind of tie recorded on a link.
type Relationship uint8

const (
	RelationshipNone Relationship = iota
	RelationshipSelf
	RelationshipMother
	RelationshipFather
	RelationshipDaughter
	RelationshipSon
	RelationshipGranddaughter
	RelationshipGrandson
	RelationshipSister
	RelationshipBrother
	RelationshipMaternalGrandmother
	RelationshipMaternalGrandfather
	RelationshipPaternalGrandmother
	RelationshipPaternalGrandfather

	// Family of someone else, learned by hearsay.
	OtherMother
	OtherFather
	OtherDaughter
	OtherSon
	OtherGranddaughter
	OtherGrandson
	OtherSister
	OtherBrother
	OtherMaternalGrandmother
	OtherMaternalGrandfather
	OtherPaternalGrandmother
	OtherPaternalGrandfather
)

// IsFamily reports whether r is one of the owner's own family kinds.
func (r Relationship) IsFamily() bool {
	return r > RelationshipSelf && r < OtherMother
}

// AsOther maps an own-family kind onto the matching Other* kind.
func (r Relationship) AsOther() Relationship {
	if !r.IsFamily() {
		return r
	}
	return r + (OtherMother - RelationshipMother)
}

// Link is one slot of a social graph.
type Link struct {
	Entity       EntityKind   `json:"entity"`
	Meeter       Identity     `json:"meeter"` // who formed the link
	Met          Identity     `json:"met"`    // who the link is about
	FriendFoe    uint8        `json:"friend_foe"`
	Attraction   uint8        `json:"attraction"`
	Familiarity  uint16       `json:"familiarity"`
	Relationship Relationship `json:"relationship"`
	Belief       State        `json:"belief"`
	Location     world.Vec    `json:"location"`
	Date         Date         `json:"date"`
}

// IsEmpty reports whether the slot holds no relationship.
func (l *Link) IsEmpty() bool {
	return l.Met.IsZero()
}

// Graph is a being's fixed-capacity social graph. Slot 0 is the being
// itself; slots 1..Len()-1 hold relationships. A Graph with no backing
// slots is unallocated and every operation on it is a no-op.
type Graph struct {
	links []Link
}

// NewGraph wraps a slice of links, usually carved from a Population arena.
func NewGraph(links []Link) Graph {
	return Graph{links: links}
}

// Allocated reports whether the graph has backing storage.
func (g Graph) Allocated() bool {
	return len(g.links) > 0
}

// Len returns the number of slots, including slot 0.
func (g Graph) Len() int {
	return len(g.links)
}

// Link returns slot i, or nil when out of range.
func (g Graph) Link(i int) *Link {
	if i < 0 || i >= len(g.links) {
		return nil
	}
	return &g.links[i]
}

// Clear empties every slot.
func (g Graph) Clear() {
	for i := range g.links {
		g.links[i] = Link{}
	}
}

// Init clears the graph and records the owner in slot 0.
func (g Graph) Init(self Identity, normal uint8) {
	if !g.Allocated() {
		return
	}
	g.Clear()
	g.links[0] = Link{
		Entity:       EntityBeing,
		Meeter:       self,
		Met:          self,
		FriendFoe:    normal,
		Relationship: RelationshipSelf,
	}
}

// Find returns the slot holding id, or -1. Slot 0 is never matched.
func (g Graph) Find(id Identity) int {
	if id.IsZero() {
		return -1
	}
	for i := 1; i < len(g.links); i++ {
		l := &g.links[i]
		if l.IsEmpty() || l.Entity != EntityBeing {
			continue
		}
		if l.Met == id {
			return i
		}
	}
	return -1
}

// FindReplaceable returns an empty slot if one exists, otherwise the
// least familiar non-family slot not touched for forgetDays (or never
// dated). Returns -1 when every slot is protected.
func (g Graph) FindReplaceable(today Date, forgetDays int) int {
	best := -1
	least := uint32(1 << 16)
	for i := 1; i < len(g.links); i++ {
		l := &g.links[i]
		if l.IsEmpty() {
			return i
		}
		if l.Relationship.IsFamily() {
			continue
		}
		if uint32(l.Familiarity) >= least {
			continue
		}
		if l.Date.IsZero() || int(today.Days)-int(l.Date.Days) >= forgetDays {
			least = uint32(l.Familiarity)
			best = i
		}
	}
	return best
}

// FindRelationship returns the first slot tagged with rel, or -1.
func (g Graph) FindRelationship(rel Relationship) int {
	for i := 1; i < len(g.links); i++ {
		if g.links[i].Relationship == rel {
			return i
		}
	}
	return -1
}

// IsFamily reports whether slot i is tagged as the owner's own family.
func (g Graph) IsFamily(i int) bool {
	l := g.Link(i)
	return l != nil && l.Relationship.IsFamily()
}

// MeanSentiment averages FriendFoe over non-empty slots, slot 0 included.
// An unallocated or empty graph yields normal.
func (g Graph) MeanSentiment(normal uint8) uint8 {
	var sum, n uint32
	for i := range g.links {
		if g.links[i].IsEmpty() {
			continue
		}
		sum += uint32(g.links[i].FriendFoe)
		n++
	}
	if n == 0 {
		return normal
	}
	return uint8(sum / n)
}

// Count returns the number of non-empty slots excluding slot 0.
func (g Graph) Count() int {
	n := 0
	for i := 1; i < len(g.links); i++ {
		if !g.links[i].IsEmpty() {
			n++
		}
	}
	return n
}
