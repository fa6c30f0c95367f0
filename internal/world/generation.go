// Land generation using layered simplex noise.
// Generates a habitability field used to place founding families and a
// time-varying weather field advanced by the land stage.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// fieldResolution is the number of samples per axis in the habitability grid.
const fieldResolution = 64

// GenConfig holds land generation parameters.
type GenConfig struct {
	Dimension int   // Ape-space width and height
	Seed      int64 // Random seed (0 = random)
	StartDay  int   // First simulation day
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Dimension: 1024,
		Seed:      0,
		StartDay:  1,
	}
}

// SmallTestConfig returns a tiny land for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Dimension: 256,
		Seed:      42,
		StartDay:  1,
	}
}

// Generate creates a land with its habitability field sampled from noise.
func Generate(cfg GenConfig) *Land {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultGenConfig().Dimension
	}
	startDay := cfg.StartDay
	if startDay <= 0 {
		startDay = 1
	}

	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)

	l := &Land{
		Dimension: cfg.Dimension,
		date:      Date{Days: uint32(startDay)},
		weather:   opensimplex.NewNormalized(seed + 2),
	}

	for gy := 0; gy < fieldResolution; gy++ {
		for gx := 0; gx < fieldResolution; gx++ {
			x := float64(gx)
			y := float64(gy)

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)

			// Edge falloff keeps founding families away from the borders.
			cx := x/float64(fieldResolution-1)*2 - 1
			cy := y/float64(fieldResolution-1)*2 - 1
			falloff := 1.0 - math.Pow(math.Sqrt(cx*cx+cy*cy)/math.Sqrt2, 3.5)
			if falloff < 0 {
				falloff = 0
			}

			// Lowland with moderate rain is most habitable.
			h := (1.0-math.Abs(elev-0.45)*2)*0.6 + rain*0.4
			l.habitability[gy*fieldResolution+gx] = clamp01(h * falloff)
		}
	}

	l.sampleWeather()
	return l
}

// octaveNoise samples multi-octave noise, normalized to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
