package agents

import (
	"math/bits"
	"math/rand"
)

// Chromosomes is the number of 32-bit words in a genome.
const Chromosomes = 4

// Genome is a being's genetic code. Each chromosome word holds a pair of
// 16-bit homologues; a locus is expressed if either homologue carries it.
type Genome [Chromosomes]uint32

// Locus selects one bit position (0-15) on each chromosome. Together the
// four positions decode a gene value in 0..15.
type Locus [Chromosomes]uint8

// Gene loci.
var (
	LocusStatusPreference       = Locus{15, 12, 10, 1}
	LocusPigmentationPreference = Locus{5, 3, 11, 4}
	LocusHeightPreference       = Locus{9, 8, 14, 10}
	LocusFramePreference        = Locus{9, 0, 8, 2}
	LocusHairPreference         = Locus{10, 7, 14, 15}
	LocusGroom                  = Locus{14, 2, 5, 10}
	LocusAggression             = Locus{11, 3, 5, 0}
	LocusMateBond               = Locus{10, 2, 4, 0}
	LocusIncestAversion         = Locus{10, 8, 4, 9}
	LocusLatentEnergyUse        = Locus{14, 3, 6, 10}
	LocusPigmentation           = Locus{3, 6, 12, 13}
	LocusHair                   = Locus{12, 5, 12, 11}
)

// Gene decodes the gene at the given locus.
func (g Genome) Gene(l Locus) int {
	v := 0
	for ch := 0; ch < Chromosomes; ch++ {
		pos := l[ch] & 15
		word := g[ch]
		if (word>>pos)&1 == 1 || (word>>(pos+16))&1 == 1 {
			v |= 1 << ch
		}
	}
	return v
}

func (g Genome) StatusPreference() int       { return g.Gene(LocusStatusPreference) }
func (g Genome) PigmentationPreference() int { return g.Gene(LocusPigmentationPreference) }
func (g Genome) HeightPreference() int       { return g.Gene(LocusHeightPreference) }
func (g Genome) FramePreference() int        { return g.Gene(LocusFramePreference) }
func (g Genome) HairPreference() int         { return g.Gene(LocusHairPreference) }
func (g Genome) Groom() int                  { return g.Gene(LocusGroom) }
func (g Genome) Aggression() int             { return g.Gene(LocusAggression) }
func (g Genome) MateBond() int               { return g.Gene(LocusMateBond) }
func (g Genome) IncestAversion() int         { return g.Gene(LocusIncestAversion) }
func (g Genome) LatentEnergyUse() int        { return g.Gene(LocusLatentEnergyUse) }
func (g Genome) Pigmentation() int           { return g.Gene(LocusPigmentation) }
func (g Genome) Hair() int                   { return g.Gene(LocusHair) }

// DifferingBits counts the bits that differ between two genomes.
func DifferingBits(a, b Genome) int {
	n := 0
	for ch := 0; ch < Chromosomes; ch++ {
		n += bits.OnesCount32(a[ch] ^ b[ch])
	}
	return n
}

// RandomGenome draws a genome from rng.
func RandomGenome(rng *rand.Rand) Genome {
	var g Genome
	for ch := range g {
		g[ch] = rng.Uint32()
	}
	return g
}

// Crossover builds a child genome taking one homologue from each parent
// per chromosome, with occasional point mutation.
func Crossover(mother, father Genome, rng *rand.Rand) Genome {
	var child Genome
	for ch := range child {
		m := mother[ch] >> (16 * uint(rng.Intn(2))) & 0xffff
		f := father[ch] >> (16 * uint(rng.Intn(2))) & 0xffff
		child[ch] = m | f<<16
		if rng.Intn(100) < 5 {
			child[ch] ^= 1 << uint(rng.Intn(32))
		}
	}
	return child
}
