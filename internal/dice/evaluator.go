package dice

import (
	"context"
	"strconv"
	"strings"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/logger"
)

// Evaluator rolls parsed expressions. It holds no state besides its Source,
// so a single Evaluator can serve concurrent callers when the Source can.
type Evaluator struct {
	source Source
}

// NewEvaluator creates an evaluator drawing dice from source.
// A nil source selects DefaultSource.
func NewEvaluator(source Source) *Evaluator {
	if source == nil {
		source = DefaultSource()
	}
	return &Evaluator{source: source}
}

// Evaluate parses and rolls a full chat command such as "/r 2d6+3".
func (e *Evaluator) Evaluate(ctx context.Context, command string) (*domain.RollResult, error) {
	log := logger.FromContext(ctx)

	expr, err := Parse(command)
	if err != nil {
		log.Debug("Rejected roll command", "command", command, "error_kind", domain.ErrorKind(err))
		return nil, err
	}
	return e.EvaluateExpression(ctx, expr)
}

// EvaluateExpression rolls every term left to right. Operators have no
// precedence: "2+3*2" is 10. When several d20 groups roll a critical, the
// annotation of the last one wins.
func (e *Evaluator) EvaluateExpression(ctx context.Context, expr Expression) (*domain.RollResult, error) {
	log := logger.FromContext(ctx)

	var visual strings.Builder
	total := 0
	critical := ""
	terms := make([]domain.TermResult, 0, len(expr.Terms))

	for i, term := range expr.Terms {
		tr := domain.TermResult{Operator: term.Op.String()}
		var fragment string

		switch term.Kind {
		case TermDice:
			outcome := Roll(e.source, term.Dice.Count, term.Dice.Sides)
			kept := ApplyModifier(outcome, term.Dice.Modifier)
			if msg := DetectCritical(term.Dice.Sides, kept.Selected); msg != "" {
				critical = msg
			}

			tr.Dice = term.Dice.String()
			tr.Sides = term.Dice.Sides
			tr.Rolled = outcome.RawResults
			tr.Kept = kept.Selected
			tr.Value = kept.Total
			fragment = renderGroup(kept.Selected)

			log.Debug("Rolled dice",
				"dice", tr.Dice,
				"rolled", outcome.RawResults,
				"kept", kept.Selected,
				"subtotal", kept.Total)
		case TermLiteral:
			tr.Value = term.Literal
			fragment = strconv.Itoa(term.Literal)
		default:
			return nil, domain.ErrInvalidFormat
		}

		next, err := term.Op.Apply(total, tr.Value)
		if err != nil {
			log.Debug("Roll evaluation failed", "expression", expr.Source, "term", i, "error_kind", domain.ErrorKind(err))
			return nil, err
		}
		total = next

		writeFragment(&visual, i, term.Op, fragment)
		terms = append(terms, tr)
	}

	return &domain.RollResult{
		Total:           total,
		Visual:          visual.String(),
		CriticalMessage: critical,
		Terms:           terms,
	}, nil
}

// renderGroup renders kept dice as "(a + b + c)".
func renderGroup(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// writeFragment appends a term to the visual breakdown. The first fragment
// has no separator; its sign is shown only when it is negative.
func writeFragment(b *strings.Builder, index int, op Operator, fragment string) {
	if index == 0 {
		if op == OpSub {
			b.WriteString(op.String())
		}
		b.WriteString(fragment)
		return
	}
	b.WriteByte(' ')
	b.WriteString(op.String())
	b.WriteByte(' ')
	b.WriteString(fragment)
}
