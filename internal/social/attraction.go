package social

import "github.com/talgya/troop/internal/agents"

// Attraction scorers. Each compares the met being's traits with the
// meeter's preference for that trait, blended from genes and learning via
// agents.NatureNurture. The female variant of a preference is male+1.
// None of them mutate either being.

func femaleOffset(b *agents.Being) agents.Preference {
	if b.IsFemale() {
		return 1
	}
	return 0
}

// closeness rewards a trait within two steps of the preferred value.
func closeness(trait, pref int) int {
	d := trait - pref
	if d < -2 || d > 2 {
		return 0
	}
	if d < 0 {
		d = -d
	}
	return 3 - d
}

// ScorePigmentation scores the met being's pigmentation, 0..3.
func ScorePigmentation(meeter, met *agents.Being) int {
	pref := agents.NatureNurture(meeter.Genome.PigmentationPreference(),
		meeter.Preferences[agents.PrefMatePigmentationMale+femaleOffset(meeter)])
	return closeness(met.Genome.Pigmentation(), pref)
}

// ScoreHair scores the met being's hair length, 0..3.
func ScoreHair(meeter, met *agents.Being) int {
	pref := agents.NatureNurture(meeter.Genome.HairPreference(),
		meeter.Preferences[agents.PrefMateHairMale+femaleOffset(meeter)])
	return closeness(met.Genome.Hair(), pref)
}

// ScoreHeight is 1 when the met being is taller (preference 12-15) or
// shorter (8-11) than the meeter. Below 8 height does not matter.
func ScoreHeight(meeter, met *agents.Being) int {
	pref := agents.NatureNurture(meeter.Genome.HeightPreference(),
		meeter.Preferences[agents.PrefMateHeightMale+femaleOffset(meeter)])
	switch {
	case pref >= 12 && met.Height > meeter.Height:
		return 1
	case pref >= 8 && pref < 12 && met.Height < meeter.Height:
		return 1
	}
	return 0
}

// ScoreFrame is 1 when the met being is fatter (preference 7-11) or
// thinner (12-15) than the meeter.
func ScoreFrame(meeter, met *agents.Being) int {
	pref := agents.NatureNurture(meeter.Genome.FramePreference(),
		meeter.Preferences[agents.PrefMateFrameMale+femaleOffset(meeter)])
	switch {
	case pref > 6 && pref <= 11 && met.BodyFat > meeter.BodyFat:
		return 1
	case pref > 11 && met.BodyFat < meeter.BodyFat:
		return 1
	}
	return 0
}

// ScorePheromone is +1 for genetically distinct beings and minus the
// meeter's incest aversion when fewer than minVariation bits differ.
func ScorePheromone(meeter, met *agents.Being, minVariation int) int {
	if agents.DifferingBits(meeter.Genome, met.Genome) < minVariation {
		return -meeter.Genome.IncestAversion()
	}
	return 1
}

// traitScore sums the pigmentation, height, frame and hair scores.
func traitScore(meeter, met *agents.Being) int {
	return ScorePigmentation(meeter, met) +
		ScoreHeight(meeter, met) +
		ScoreFrame(meeter, met) +
		ScoreHair(meeter, met)
}
