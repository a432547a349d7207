package metrics

import (
	"time"

	"github.com/navelogic/rpgbot/internal/domain"
)

// RecordRoll records a successful evaluation.
func RecordRoll(platform string, result *domain.RollResult, elapsed time.Duration) {
	if platform == "" {
		platform = domain.PlatformHTTP
	}
	RollsTotal.WithLabelValues(platform).Inc()
	RollDuration.Observe(elapsed.Seconds())

	sampled := 0
	for _, term := range result.Terms {
		sampled += len(term.Rolled)
	}
	DiceSampled.Add(float64(sampled))

	if kind := result.CriticalKind(); kind != domain.CriticalNone {
		Criticals.WithLabelValues(kind).Inc()
	}
}

// RecordRollError records a rejected command by error kind.
func RecordRollError(err error) {
	RollErrors.WithLabelValues(domain.ErrorKind(err)).Inc()
}

// RecordCacheLookup records an expression cache hit or miss.
func RecordCacheLookup(hit bool) {
	outcome := CacheOutcomeMiss
	if hit {
		outcome = CacheOutcomeHit
	}
	ExpressionCacheLookups.WithLabelValues(outcome).Inc()
}
