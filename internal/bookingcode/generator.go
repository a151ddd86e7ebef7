// Package bookingcode generates the public booking codes handed to
// participants on registration. Format: RITW{yy}-{9 digits}.
package bookingcode

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	prefix = "RITW"

	// The random part is drawn uniformly from [minNumber, maxNumber], so it is
	// always exactly nine digits.
	minNumber = 100000000
	maxNumber = 999999999
)

// Generator produces booking codes. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewWithSource returns a Generator with an explicit random source and clock,
// for deterministic tests.
func NewWithSource(src rand.Source, now func() time.Time) *Generator {
	return &Generator{rng: rand.New(src), now: now}
}

// Generate returns a fresh booking code for the current year.
func (g *Generator) Generate() string {
	g.mu.Lock()
	n := minNumber + g.rng.Intn(maxNumber-minNumber+1)
	year := g.now().Year()
	g.mu.Unlock()
	return Format(year, n)
}

// Format builds the code string for a given year and nine-digit number.
// The year suffix is the last two digits, zero-padded.
func Format(year, number int) string {
	yy := year % 100
	if yy < 0 {
		yy = 0
	}
	return fmt.Sprintf("%s%02d-%d", prefix, yy, number)
}
