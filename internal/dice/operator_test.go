package dice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navelogic/rpgbot/internal/domain"
)

func TestOperatorApply(t *testing.T) {
	tests := []struct {
		op       Operator
		total    int
		operand  int
		expected int
	}{
		{OpAdd, 2, 3, 5},
		{OpSub, 2, 3, -1},
		{OpMul, 5, 2, 10},
		{OpDiv, 10, 3, 3},
		{OpDiv, -7, 2, -3},
		{OpDiv, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := tt.op.Apply(tt.total, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOperatorApply_DivisionByZero(t *testing.T) {
	_, err := OpDiv.Apply(5, 0)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
}

func TestOperatorApply_Unknown(t *testing.T) {
	_, err := Operator('%').Apply(1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestOperatorApply_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		op      Operator
		total   int
		operand int
	}{
		{"add past max", OpAdd, math.MaxInt, 1},
		{"add past min", OpAdd, math.MinInt, -1},
		{"sub past min", OpSub, math.MinInt, 1},
		{"sub past max", OpSub, math.MaxInt, -1},
		{"mul large", OpMul, math.MaxInt / 2, 3},
		{"mul negative large", OpMul, math.MinInt / 2, 3},
		{"mul min by minus one", OpMul, math.MinInt, -1},
		{"mul minus one by min", OpMul, -1, math.MinInt},
		{"div min by minus one", OpDiv, math.MinInt, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op.Apply(tt.total, tt.operand)
			assert.ErrorIs(t, err, domain.ErrResultOutOfRange)
		})
	}
}

func TestOperatorApply_NearBounds(t *testing.T) {
	tests := []struct {
		name     string
		op       Operator
		total    int
		operand  int
		expected int
	}{
		{"add to max", OpAdd, math.MaxInt - 1, 1, math.MaxInt},
		{"sub to min", OpSub, math.MinInt + 1, 1, math.MinInt},
		{"mul by zero", OpMul, math.MaxInt, 0, 0},
		{"zero times min", OpMul, 0, math.MinInt, 0},
		{"mul negative", OpMul, math.MaxInt, -1, -math.MaxInt},
		{"int32 squared", OpMul, math.MaxInt32, math.MaxInt32, math.MaxInt32 * math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.total, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
