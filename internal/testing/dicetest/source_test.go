package dicetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceSource_Intn(t *testing.T) {
	tests := []struct {
		name     string
		faces    []int
		sides    []int
		expected []int
	}{
		{"replays in order", []int{3, 5}, []int{6, 6}, []int{2, 4}},
		{"wraps when exhausted", []int{20, 7}, []int{20, 20, 20}, []int{19, 6, 19}},
		{"reduces faces above sides", []int{7}, []int{6}, []int{0}},
		{"no faces", nil, []int{6, 20}, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSequenceSource(tt.faces...)
			got := make([]int, 0, len(tt.sides))
			for _, n := range tt.sides {
				got = append(got, src.Intn(n))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
