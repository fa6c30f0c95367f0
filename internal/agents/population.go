package agents

import (
	"errors"
	"fmt"
)

// ErrPopulationFull is returned when every graph block in the arena is taken.
var ErrPopulationFull = errors.New("population at capacity")

// ErrDuplicateIdentity is returned when a being's identity is already in use.
var ErrDuplicateIdentity = errors.New("identity already in population")

// Population owns the beings and a single arena of graph links, carved
// into one fixed block per being at capacity-sizing time.
type Population struct {
	graphSize int
	normal    uint8
	arena     []Link
	free      []int // free block indexes
	blocks    map[Identity]int
	byID      map[Identity]*Being
	beings    []*Being
}

// NewPopulation allocates an arena for capacity beings with graphSize
// slots each. Graph slot 0 of each new being is initialised with normal
// sentiment.
func NewPopulation(capacity, graphSize int, normal uint8) *Population {
	if capacity < 0 {
		capacity = 0
	}
	p := &Population{
		graphSize: graphSize,
		normal:    normal,
		arena:     make([]Link, capacity*graphSize),
		free:      make([]int, 0, capacity),
		blocks:    make(map[Identity]int, capacity),
		byID:      make(map[Identity]*Being, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Add assigns a graph block to b and adds it to the population.
func (p *Population) Add(b *Being) error {
	if b.ID.IsZero() {
		return fmt.Errorf("add being: empty identity")
	}
	if _, ok := p.byID[b.ID]; ok {
		return fmt.Errorf("add being %s: %w", b.ID.Name(), ErrDuplicateIdentity)
	}
	if len(p.free) == 0 {
		return fmt.Errorf("add being %s: %w", b.ID.Name(), ErrPopulationFull)
	}
	block := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	start := block * p.graphSize
	b.Social = NewGraph(p.arena[start : start+p.graphSize : start+p.graphSize])
	b.Social.Init(b.ID, p.normal)
	b.Alive = true

	p.blocks[b.ID] = block
	p.byID[b.ID] = b
	p.beings = append(p.beings, b)
	return nil
}

// Remove takes b out of the population and returns its graph block to the
// arena. Links held by other beings that refer to b become stale.
func (p *Population) Remove(b *Being) {
	block, ok := p.blocks[b.ID]
	if !ok {
		return
	}
	b.Social.Clear()
	b.Social = Graph{}
	b.Alive = false

	delete(p.blocks, b.ID)
	delete(p.byID, b.ID)
	p.free = append(p.free, block)
	for i, other := range p.beings {
		if other == b {
			p.beings = append(p.beings[:i], p.beings[i+1:]...)
			break
		}
	}
}

// ByIdentity resolves an identity to a living being, or nil.
func (p *Population) ByIdentity(id Identity) *Being {
	return p.byID[id]
}

// Beings returns the population in iteration order. The slice must not be
// modified by callers.
func (p *Population) Beings() []*Being {
	return p.beings
}

// Len returns the number of living beings.
func (p *Population) Len() int {
	return len(p.beings)
}

// Capacity returns the maximum population.
func (p *Population) Capacity() int {
	if p.graphSize == 0 {
		return 0
	}
	return len(p.arena) / p.graphSize
}

// GraphSize returns the number of slots per graph.
func (p *Population) GraphSize() int {
	return p.graphSize
}
