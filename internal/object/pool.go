package object

import (
	"math/rand"

	"github.com/tomz197/absorb/internal/loop/config"
)

// Pool holds up to config.PoolSize wanderers in a fixed backing array.
// Removal compacts in place and keeps the relative order of survivors,
// so the pool never allocates after construction.
type Pool struct {
	items [config.PoolSize]Entity
	n     int
}

// Len returns the number of live entities.
func (p *Pool) Len() int {
	return p.n
}

// Cap returns the fixed capacity.
func (p *Pool) Cap() int {
	return len(p.items)
}

// At returns a pointer to the i-th live entity. The pointer is invalidated
// by the next Retain, Clear or Reset.
func (p *Pool) At(i int) *Entity {
	return &p.items[i]
}

// Add appends e. Returns false when the pool is full.
func (p *Pool) Add(e Entity) bool {
	if p.n >= len(p.items) {
		return false
	}
	p.items[p.n] = e
	p.n++
	return true
}

// Each calls fn for every live entity in order.
func (p *Pool) Each(fn func(e *Entity)) {
	for i := 0; i < p.n; i++ {
		fn(&p.items[i])
	}
}

// Retain keeps only the entities for which keep returns true and returns
// how many were removed. keep sees entities in pool order.
func (p *Pool) Retain(keep func(e *Entity) bool) int {
	kept := 0
	for i := 0; i < p.n; i++ {
		if !keep(&p.items[i]) {
			continue
		}
		if kept != i {
			p.items[kept] = p.items[i]
		}
		kept++
	}
	removed := p.n - kept
	// Zero the tail so stale entities are never observed through At.
	for i := kept; i < p.n; i++ {
		p.items[i] = Entity{}
	}
	p.n = kept
	return removed
}

// Clear removes every entity.
func (p *Pool) Clear() {
	clear(p.items[:p.n])
	p.n = 0
}

// Fill spawns entities with policy until the pool is full and returns how
// many were added.
func (p *Pool) Fill(rng *rand.Rand, screen Screen, policy SpawnPolicy) int {
	added := 0
	for p.n < len(p.items) {
		p.items[p.n] = Spawn(rng, screen, policy)
		p.n++
		added++
	}
	return added
}

// Reset clears the pool and refills it with policy.
func (p *Pool) Reset(rng *rand.Rand, screen Screen, policy SpawnPolicy) {
	p.Clear()
	p.Fill(rng, screen, policy)
}
