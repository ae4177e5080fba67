package scoring

import (
	"math/rand/v2"
	"sync"
)

// Source supplies the randomized terms used by scoring and insight
// generation. IntN returns a value in [0, n).
type Source interface {
	IntN(n int) int
}

type ambientSource struct{}

func (ambientSource) IntN(n int) int { return rand.IntN(n) }

// AmbientSource draws from the process-wide generator.
func AmbientSource() Source { return ambientSource{} }

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a deterministic Source that is safe for
// concurrent use.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// SourceFromSeed picks the seeded source for non-zero seeds.
func SourceFromSeed(seed uint64) Source {
	if seed == 0 {
		return AmbientSource()
	}
	return NewSeededSource(seed)
}
