package services

import (
	"math/rand/v2"
	"sync"

	"casinobot/domain/interfaces"
)

// globalRandomizer draws from the runtime's shared, goroutine-safe source
type globalRandomizer struct{}

// NewRandomizer returns the production randomizer
func NewRandomizer() interfaces.Randomizer {
	return globalRandomizer{}
}

func (globalRandomizer) IntN(n int) int {
	return rand.IntN(n)
}

func (globalRandomizer) Float64() float64 {
	return rand.Float64()
}

// seededRandomizer is reproducible for a given seed
type seededRandomizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandomizer returns a deterministic randomizer, for simulations and tests
func NewSeededRandomizer(seed uint64) interfaces.Randomizer {
	return &seededRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRandomizer) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *seededRandomizer) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
