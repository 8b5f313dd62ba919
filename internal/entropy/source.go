// Seeded randomness — the simulation's one injection point.
// The engine and the negotiation core are deterministic; only
// presentation (communiqué wording, chronicle flavor) draws from here.
// See design doc Section 8.2.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync"
)

// Feed is what presentation code consumes: a stream of floats in [0, 1).
type Feed interface {
	Float() float64
}

// Source is a seeded splitmix64 stream. Safe for concurrent use.
type Source struct {
	mu    sync.Mutex
	state uint64
	seed  int64
}

// NewSource creates a source from seed. A zero seed draws a fresh one
// from crypto/rand so unseeded runs still differ.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return &Source{state: uint64(seed), seed: seed}
}

// Seed returns the seed the source was built with, for logging and
// reproducing a run.
func (s *Source) Seed() int64 { return s.seed }

func (s *Source) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float returns the next float64 in [0, 1).
func (s *Source) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	// 53 bits for a uniform float64 in [0, 1).
	return float64(s.next()>>11) / float64(1<<53)
}

// Intn returns the next int in [0, n), or 0 when n is not positive.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.next() % uint64(n))
}

// CryptoSeed draws a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Should never happen; a fixed seed keeps the run alive.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	if seed == 0 {
		seed = 1
	}
	return seed
}
