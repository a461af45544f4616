package seeder

import (
	"math/rand"
)

// DataGenerator is the single seeded random stream shared by every table
// builder. Builders must draw from it in the documented order or output
// changes for the same seed.
type DataGenerator struct {
	rand *rand.Rand
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// IntRange returns an integer in [lo, hi]
func (g *DataGenerator) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rand.Intn(hi-lo+1)
}

// Index returns an integer in [0, n)
func (g *DataGenerator) Index(n int) int {
	return g.rand.Intn(n)
}

// Uniform returns a float in [lo, hi)
func (g *DataGenerator) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rand.Float64()
}

// Chance reports whether an independent draw falls under p
func (g *DataGenerator) Chance(p float64) bool {
	return g.rand.Float64() < p
}

func (g *DataGenerator) Choice(values []string) string {
	return values[g.rand.Intn(len(values))]
}
