// Package world provides the land the population lives on: ape-space
// geometry, the territory grid, simulation time and weather.
package world

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Territory grid geometry. Each being keeps its own names for these cells.
const (
	TerritoryDimension = 16
	TerritoryArea      = TerritoryDimension * TerritoryDimension
)

// MinutesPerDay is the number of land cycles in one simulated day.
const MinutesPerDay = 1440

// Vec is a position in ape space.
type Vec struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) int {
	return v.X*o.X + v.Y*o.Y
}

// Distance returns the rounded-down euclidean distance between a and b.
func Distance(a, b Vec) int {
	d := a.Sub(b)
	return int(math.Sqrt(float64(d.Dot(d))))
}

// Facing converts a direction into a facing in 0..255, zero pointing
// along +X.
func Facing(d Vec) uint8 {
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	a := math.Atan2(float64(d.Y), float64(d.X))
	if a < 0 {
		a += 2 * math.Pi
	}
	return uint8(int(a*256/(2*math.Pi)) & 255)
}

// Heading returns the step of the given length along facing f.
func Heading(f uint8, length int) Vec {
	a := float64(f) * 2 * math.Pi / 256
	return Vec{
		X: int(math.Round(math.Cos(a) * float64(length))),
		Y: int(math.Round(math.Sin(a) * float64(length))),
	}
}

// Date is simulation time: whole days plus minutes into the current day.
// A zero Days value means "never dated".
type Date struct {
	Days    uint32 `json:"days"`
	Minutes uint16 `json:"minutes"`
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.Days == 0
}

// After reports whether d is later than o.
func (d Date) After(o Date) bool {
	if d.Days != o.Days {
		return d.Days > o.Days
	}
	return d.Minutes > o.Minutes
}

// Next returns the date one minute later.
func (d Date) Next() Date {
	d.Minutes++
	if d.Minutes >= MinutesPerDay {
		d.Minutes = 0
		d.Days++
	}
	return d
}

func (d Date) String() string {
	return fmt.Sprintf("Day %d, %d:%02d", d.Days, d.Minutes/60, d.Minutes%60)
}

// Conditions is a read-only snapshot of the land handed to the being stage,
// so beings never observe the land stage mid-update.
type Conditions struct {
	Date    Date
	Weather [TerritoryArea]float64 // 0 clear .. 1 storm
}

// Land holds the ape-space dimension, the habitability field and the
// weather that the land stage advances each cycle.
type Land struct {
	Dimension int

	date         Date
	habitability [fieldResolution * fieldResolution]float64
	weather      opensimplex.Noise
	cloud        [TerritoryArea]float64
}

// Date returns the current land date.
func (l *Land) Date() Date {
	return l.date
}

// Conditions snapshots the date and weather.
func (l *Land) Conditions() Conditions {
	return Conditions{Date: l.date, Weather: l.cloud}
}

// Cycle advances the land by one minute. Weather is resampled every hour.
func (l *Land) Cycle() {
	l.date = l.date.Next()
	if l.date.Minutes%60 == 0 {
		l.sampleWeather()
	}
}

func (l *Land) sampleWeather() {
	t := float64(l.date.Days)*24 + float64(l.date.Minutes)/60
	for ty := 0; ty < TerritoryDimension; ty++ {
		for tx := 0; tx < TerritoryDimension; tx++ {
			v := l.weather.Eval3(float64(tx)*0.2, float64(ty)*0.2, t*0.05)
			l.cloud[ty*TerritoryDimension+tx] = v
		}
	}
}

// Habitability returns the habitability of p in [0, 1].
func (l *Land) Habitability(p Vec) float64 {
	p = l.Clamp(p)
	gx := p.X * fieldResolution / l.Dimension
	gy := p.Y * fieldResolution / l.Dimension
	return l.habitability[gy*fieldResolution+gx]
}

// RandomHabitable picks a position, preferring habitable ground.
func (l *Land) RandomHabitable(rng *rand.Rand) Vec {
	best := Vec{rng.Intn(l.Dimension), rng.Intn(l.Dimension)}
	bestScore := l.Habitability(best)
	for i := 0; i < 32; i++ {
		p := Vec{rng.Intn(l.Dimension), rng.Intn(l.Dimension)}
		if h := l.Habitability(p); h > bestScore {
			best, bestScore = p, h
		}
		if bestScore > 0.7 {
			break
		}
	}
	return best
}

// TerritoryIndex returns the territory cell containing p.
func (l *Land) TerritoryIndex(p Vec) int {
	p = l.Clamp(p)
	tx := p.X * TerritoryDimension / l.Dimension
	ty := p.Y * TerritoryDimension / l.Dimension
	return ty*TerritoryDimension + tx
}

// Clamp keeps p inside ape space.
func (l *Land) Clamp(p Vec) Vec {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X >= l.Dimension {
		p.X = l.Dimension - 1
	}
	if p.Y >= l.Dimension {
		p.Y = l.Dimension - 1
	}
	return p
}

// Wrap wraps a territory index around the grid edges.
func Wrap(idx int) int {
	if idx < 0 {
		idx += TerritoryArea
	}
	if idx >= TerritoryArea {
		idx -= TerritoryArea
	}
	return idx
}
