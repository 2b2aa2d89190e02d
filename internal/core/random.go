package core

import "math/rand"

// RandomSource yields uniform integers in [0, n). It is the only source of
// randomness the engine consults.
type RandomSource interface {
	Intn(n int) int
}

// NewRandom returns a RandomSource seeded with seed.
// The same seed always produces the same sequence.
func NewRandom(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of values, wrapping around when the list
// is exhausted. Each value is reduced modulo n. Useful for scripted tests.
type SequenceSource struct {
	Values []int
	next   int
}

// Intn returns the next scripted value reduced into [0, n).
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
