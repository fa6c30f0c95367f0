// Package entropy provides the per-being pseudo-random streams that drive every
// probabilistic social decision. Streams are small, seedable and injectable so
// tests can replay exact branch outcomes.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
)

// Stream yields bounded pseudo-random integers. Every call advances the stream.
type Stream interface {
	Next() uint16
}

// Seed is the two-word state of a being's generator. The words are also read
// directly when seeding braincode links, so the state is kept exported.
type Seed [2]uint16

// NewSeed builds a seed from a 32-bit value.
func NewSeed(v uint32) Seed {
	return Seed{uint16(v), uint16(v >> 16)}
}

// Next advances the seed and returns the previous second word.
func (s *Seed) Next() uint16 {
	tmp0 := s[0]
	tmp1 := s[1]

	s[0] = tmp1
	switch tmp0 & 7 {
	case 0:
		s[1] = tmp1 ^ (tmp0 >> 1) ^ 0xd028
	case 3:
		s[1] = tmp0 ^ (tmp1 >> 2) ^ 0xae08
	case 7:
		s[1] = tmp1 ^ (tmp0 >> 3) ^ 0x6320
	default:
		s[1] = tmp1 ^ (tmp0 >> 1)
	}
	return tmp1
}

// Sequence replays a fixed list of values, wrapping around at the end.
// An empty Sequence always yields zero.
type Sequence struct {
	Values []uint16
	pos    int
}

// NewSequence creates a Sequence over vals.
func NewSequence(vals ...uint16) *Sequence {
	return &Sequence{Values: vals}
}

// Next returns the next value in the sequence.
func (q *Sequence) Next() uint16 {
	if len(q.Values) == 0 {
		return 0
	}
	v := q.Values[q.pos%len(q.Values)]
	q.pos++
	return v
}

// Calls reports how many values have been consumed.
func (q *Sequence) Calls() int {
	return q.pos
}

// CryptoSeed returns a non-deterministic 64-bit seed from crypto/rand.
// Used when the configured simulation seed is zero.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed seed.
		slog.Warn("crypto seed unavailable, using fixed seed", "error", err)
		return 42
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}
