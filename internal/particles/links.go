package particles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// LinkAlpha returns the line opacity for two particles d apart, 0 at or beyond LinkDistance
func (p Params) LinkAlpha(d float64) float64 {
	if d >= p.LinkDistance || p.LinkDistance <= 0 {
		return 0
	}
	return p.LinkOpacity * (1 - d/p.LinkDistance)
}

// LinkFunc receives one linked pair with its line opacity
type LinkFunc func(a, b *Particle, alpha float64)

// Links visits every unordered pair closer than LinkDistance exactly once.
// Small stores are scanned exhaustively; large ones go through spatial bins.
func (s *Store) Links(fn LinkFunc) {
	if len(s.particles) > GridThreshold {
		s.LinksBinned(fn)
		return
	}
	s.LinksExhaustive(fn)
}

// LinksExhaustive is the all-pairs scan, in index order
func (s *Store) LinksExhaustive(fn LinkFunc) {
	ps := s.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := r2.Norm(r2.Sub(ps[i].Pos, ps[j].Pos))
			if d < s.params.LinkDistance {
				fn(ps[i], ps[j], s.params.LinkAlpha(d))
			}
		}
	}
}

// binKey addresses one grid cell; cells may have negative coordinates
// since particles overshoot the edges for a tick before bouncing
type binKey struct {
	x, y int
}

// LinksBinned reports the same pairs as LinksExhaustive using a grid with
// cells one link distance wide, so only the 3x3 neighbourhood is checked.
func (s *Store) LinksBinned(fn LinkFunc) {
	size := s.params.LinkDistance
	if size <= 0 {
		return
	}
	ps := s.particles

	bins := make(map[binKey][]int, len(ps))
	keys := make([]binKey, len(ps))
	for i, pt := range ps {
		k := binKey{int(math.Floor(pt.Pos.X / size)), int(math.Floor(pt.Pos.Y / size))}
		keys[i] = k
		bins[k] = append(bins[k], i)
	}

	for i, pt := range ps {
		k := keys[i]
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[binKey{k.x + dx, k.y + dy}] {
					// Each pair is owned by its lower index
					if j <= i {
						continue
					}
					d := r2.Norm(r2.Sub(pt.Pos, ps[j].Pos))
					if d < size {
						fn(pt, ps[j], s.params.LinkAlpha(d))
					}
				}
			}
		}
	}
}
