package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navelogic/rpgbot/internal/domain"
)

func TestDetectCritical(t *testing.T) {
	tests := []struct {
		name     string
		sides    int
		selected []int
		expected string
	}{
		{"natural 20", 20, []int{20}, domain.CriticalSuccessMessage},
		{"natural 1", 20, []int{1}, domain.CriticalFailureMessage},
		{"20 wins over 1", 20, []int{1, 20}, domain.CriticalSuccessMessage},
		{"no critical", 20, []int{9, 18}, ""},
		{"empty group", 20, []int{}, ""},
		{"not a d20", 6, []int{1, 6}, ""},
		{"d100 rolling 20", 100, []int{20}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectCritical(tt.sides, tt.selected))
		})
	}
}
