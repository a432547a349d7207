package dice

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyModifier(t *testing.T) {
	raw := []int{3, 18, 9, 1}

	tests := []struct {
		name          string
		mod           *Modifier
		expectedKept  []int
		expectedTotal int
	}{
		{"no modifier keeps roll order", nil, []int{3, 18, 9, 1}, 31},
		{"keep highest", &Modifier{Kind: KeepHighest, Count: 2}, []int{9, 18}, 27},
		{"keep lowest", &Modifier{Kind: KeepLowest, Count: 2}, []int{1, 3}, 4},
		{"drop highest", &Modifier{Kind: DropHighest, Count: 1}, []int{1, 3, 9}, 13},
		{"drop lowest", &Modifier{Kind: DropLowest, Count: 1}, []int{3, 9, 18}, 30},
		{"keep none", &Modifier{Kind: KeepHighest, Count: 0}, []int{}, 0},
		{"drop all", &Modifier{Kind: DropLowest, Count: 4}, []int{}, 0},
		{"count clamped to group size", &Modifier{Kind: KeepHighest, Count: 10}, []int{1, 3, 9, 18}, 31},
		{"drop more than group", &Modifier{Kind: DropHighest, Count: 10}, []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := ApplyModifier(RollOutcome{RawResults: slices.Clone(raw)}, tt.mod)

			assert.ElementsMatch(t, tt.expectedKept, kept.Selected)
			if len(tt.expectedKept) > 0 {
				assert.Equal(t, tt.expectedKept, kept.Selected, "order matters")
			}
			assert.Equal(t, tt.expectedTotal, kept.Total)
		})
	}
}

func TestApplyModifier_DoesNotReorderRawResults(t *testing.T) {
	outcome := RollOutcome{RawResults: []int{6, 2, 4}}

	ApplyModifier(outcome, &Modifier{Kind: KeepHighest, Count: 1})

	assert.Equal(t, []int{6, 2, 4}, outcome.RawResults)
}

// TestApplyModifier_Properties checks keep/drop semantics against many seeded rolls.
func TestApplyModifier_Properties(t *testing.T) {
	src := NewSeededSource(1234)

	for trial := 0; trial < 200; trial++ {
		n := trial%10 + 1
		k := trial % (n + 1)
		outcome := Roll(src, n, 20)

		sorted := slices.Clone(outcome.RawResults)
		slices.Sort(sorted)

		expected := map[ModifierKind][]int{
			KeepHighest: sorted[n-k:],
			KeepLowest:  sorted[:k],
			DropHighest: sorted[:n-k],
			DropLowest:  sorted[k:],
		}

		for kind, want := range expected {
			kept := ApplyModifier(outcome, &Modifier{Kind: kind, Count: k})
			assert.Equal(t, len(want), len(kept.Selected), "%s n=%d k=%d", kind, n, k)
			assert.True(t, slices.Equal(want, kept.Selected), "%s n=%d k=%d", kind, n, k)

			sum := 0
			for _, v := range want {
				sum += v
			}
			assert.Equal(t, sum, kept.Total)
		}
	}
}
