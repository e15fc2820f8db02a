package particles

import (
	"math/rand"
)

// Store owns the particle set of one simulation instance.
// The set is only ever replaced as a whole; integration mutates particles in place.
type Store struct {
	params    Params
	rng       *rand.Rand
	particles []*Particle
	width     float64
	height    float64
}

// NewStore creates an empty store; call Reseed to populate it
func NewStore(params Params, rng *rand.Rand) *Store {
	return &Store{
		params: params,
		rng:    rng,
	}
}

// Reseed discards every particle and draws params.Count new ones inside the bounds
func (s *Store) Reseed(width, height float64) {
	s.width = width
	s.height = height
	fresh := make([]*Particle, s.params.Count)
	for i := range fresh {
		fresh[i] = s.params.spawn(s.rng, width, height)
	}
	s.particles = fresh
}

// Particles returns the live particle slice
func (s *Store) Particles() []*Particle {
	return s.particles
}

// Len returns the particle count
func (s *Store) Len() int {
	return len(s.particles)
}

// Bounds returns the dimensions used by the last Reseed
func (s *Store) Bounds() (float64, float64) {
	return s.width, s.height
}

// Params returns the tuning the store seeds with
func (s *Store) Params() Params {
	return s.params
}
