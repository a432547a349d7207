package dice

import (
	"math"

	"github.com/navelogic/rpgbot/internal/domain"
)

// Apply folds operand into total. Division truncates toward zero and a zero
// divisor is rejected before any arithmetic happens. A result that does not
// fit in an int is domain.ErrResultOutOfRange.
func (o Operator) Apply(total, operand int) (int, error) {
	switch o {
	case OpAdd:
		if (operand > 0 && total > math.MaxInt-operand) || (operand < 0 && total < math.MinInt-operand) {
			return 0, domain.ErrResultOutOfRange
		}
		return total + operand, nil
	case OpSub:
		if (operand < 0 && total > math.MaxInt+operand) || (operand > 0 && total < math.MinInt+operand) {
			return 0, domain.ErrResultOutOfRange
		}
		return total - operand, nil
	case OpMul:
		if total == 0 || operand == 0 {
			return 0, nil
		}
		product := total * operand
		if product/operand != total || (total == -1 && operand == math.MinInt) || (operand == -1 && total == math.MinInt) {
			return 0, domain.ErrResultOutOfRange
		}
		return product, nil
	case OpDiv:
		if operand == 0 {
			return 0, domain.ErrDivisionByZero
		}
		if total == math.MinInt && operand == -1 {
			return 0, domain.ErrResultOutOfRange
		}
		return total / operand, nil
	default:
		return 0, domain.ErrInvalidFormat
	}
}
