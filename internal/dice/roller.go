package dice

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/navelogic/rpgbot/internal/utils"
)

// Source is the randomness provider for dice rolls.
//
// Implementations must be safe for concurrent use: one Evaluator serves every
// incoming chat message.
type Source interface {
	// Intn returns a random int in [0, n). n is always positive.
	Intn(n int) int
}

type defaultSource struct{}

func (defaultSource) Intn(n int) int {
	return utils.RandomInt(0, n-1)
}

// DefaultSource returns the process-wide pseudo random source.
func DefaultSource() Source {
	return defaultSource{}
}

type secureSource struct{}

func (secureSource) Intn(n int) int {
	v, err := utils.SecureRandomInt(0, n-1)
	if err != nil {
		slog.Warn("Secure random source failed, falling back to math/rand", "error", err)
		return utils.RandomInt(0, n-1)
	}
	return v
}

// SecureSource returns a source backed by crypto/rand.
func SecureSource() Source {
	return secureSource{}
}

// SeededSource is a deterministic source. Given the same seed it yields the
// same sequence of rolls.
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a deterministic source from seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // Reproducible rolls
}

// Intn implements Source.
func (s *SeededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Roll samples count dice with the given number of sides. Values are in
// [1, sides] and kept in the order they were rolled.
func Roll(src Source, count, sides int) RollOutcome {
	results := make([]int, count)
	for i := range results {
		results[i] = src.Intn(sides) + 1
	}
	return RollOutcome{RawResults: results}
}
