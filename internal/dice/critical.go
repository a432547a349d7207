package dice

import (
	"slices"

	"github.com/navelogic/rpgbot/internal/domain"
)

// DetectCritical returns the critical annotation for a kept d20 group, or ""
// when the dice are not d20 or neither a natural 20 nor a natural 1 was kept.
// A natural 20 wins over a natural 1 in the same group.
func DetectCritical(sides int, selected []int) string {
	if sides != domain.CriticalSides {
		return ""
	}
	if slices.Contains(selected, domain.CriticalSides) {
		return domain.CriticalSuccessMessage
	}
	if slices.Contains(selected, 1) {
		return domain.CriticalFailureMessage
	}
	return ""
}
