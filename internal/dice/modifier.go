package dice

import (
	"slices"

	"github.com/navelogic/rpgbot/internal/utils"
)

// ApplyModifier reduces a rolled group to the dice that count.
//
// Without a modifier every die is kept in roll order. With one, the dice are
// sorted ascending and the kept slice stays ascending. Counts larger than the
// group are clamped.
func ApplyModifier(outcome RollOutcome, mod *Modifier) KeptOutcome {
	if mod == nil {
		return KeptOutcome{
			Selected: outcome.RawResults,
			Total:    utils.Sum(outcome.RawResults),
		}
	}

	sorted := slices.Clone(outcome.RawResults)
	slices.Sort(sorted)

	n := len(sorted)
	k := min(max(mod.Count, 0), n)

	var selected []int
	switch mod.Kind {
	case KeepHighest:
		selected = sorted[n-k:]
	case KeepLowest:
		selected = sorted[:k]
	case DropHighest:
		selected = sorted[:n-k]
	case DropLowest:
		selected = sorted[k:]
	default:
		selected = sorted
	}

	return KeptOutcome{Selected: selected, Total: utils.Sum(selected)}
}
