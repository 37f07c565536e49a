package testhelpers

import (
	"fmt"
	"sync"

	"casinobot/domain/entities"
)

// ScriptedRandomizer replays queued values so games are deterministic in tests.
// It panics when a queue runs dry.
type ScriptedRandomizer struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewScriptedRandomizer creates a randomizer that returns ints in order from IntN
func NewScriptedRandomizer(ints ...int) *ScriptedRandomizer {
	return &ScriptedRandomizer{ints: ints}
}

// QueueInts appends values for IntN
func (r *ScriptedRandomizer) QueueInts(values ...int) *ScriptedRandomizer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
	return r
}

// QueueFloats appends values for Float64
func (r *ScriptedRandomizer) QueueFloats(values ...float64) *ScriptedRandomizer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floats = append(r.floats, values...)
	return r
}

// QueueCards appends the rank and suit draws that make a Dealer produce cards in order
func (r *ScriptedRandomizer) QueueCards(cards ...entities.Card) *ScriptedRandomizer {
	for _, c := range cards {
		r.QueueInts(indexOf(entities.Ranks, c.Rank), indexOf(entities.Suits, c.Suit))
	}
	return r
}

// Remaining reports how many ints and floats are still queued
func (r *ScriptedRandomizer) Remaining() (ints, floats int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints), len(r.floats)
}

func (r *ScriptedRandomizer) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		panic(fmt.Sprintf("ScriptedRandomizer: no int queued for IntN(%d)", n))
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("ScriptedRandomizer: queued %d out of range for IntN(%d)", v, n))
	}
	return v
}

func (r *ScriptedRandomizer) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		panic("ScriptedRandomizer: no float queued")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	panic(fmt.Sprintf("ScriptedRandomizer: unknown card component %q", target))
}

// Card builds a card from a rank, in spades unless a suit is given
func Card(rank string, suit ...string) entities.Card {
	s := entities.Suits[0]
	if len(suit) > 0 {
		s = suit[0]
	}
	return entities.Card{Rank: rank, Suit: s}
}
