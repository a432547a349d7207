// Package dicetest provides scripted dice sources for tests.
package dicetest

import "sync"

// SequenceSource replays fixed die faces in order, wrapping around when
// exhausted. Faces above the requested number of sides are reduced modulo
// the sides so results always stay in range. It satisfies dice.Source.
type SequenceSource struct {
	mu    sync.Mutex
	faces []int
	pos   int
}

// NewSequenceSource creates a source that yields faces in order.
func NewSequenceSource(faces ...int) *SequenceSource {
	return &SequenceSource{faces: faces}
}

// Intn returns the next face as a zero-based index in [0, n).
func (s *SequenceSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.faces) == 0 {
		return 0
	}
	face := s.faces[s.pos%len(s.faces)]
	s.pos++
	return (face - 1 + n) % n
}
