// Package dice parses and evaluates tabletop dice expressions such as
// "/r 2d20m1+3". Evaluation is synchronous, strictly left to right, and
// draws randomness only from the Source handed to the Evaluator.
package dice

import (
	"strconv"
	"strings"
)

// Operator joins a term to the running total.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (o Operator) String() string {
	return string(rune(o))
}

func isOperator(c byte) bool {
	switch Operator(c) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// ModifierKind selects which dice of a group are kept after sorting.
type ModifierKind int

const (
	KeepHighest ModifierKind = iota + 1
	KeepLowest
	DropHighest
	DropLowest
)

// modifierTokens maps the chat notation to a kind. Case matters: "sM" drops
// the highest die while "sm" drops the lowest.
var modifierTokens = map[string]ModifierKind{
	"m":  KeepHighest,
	"mm": KeepLowest,
	"sM": DropHighest,
	"sm": DropLowest,
}

// Token returns the chat notation of the modifier.
func (k ModifierKind) Token() string {
	switch k {
	case KeepHighest:
		return "m"
	case KeepLowest:
		return "mm"
	case DropHighest:
		return "sM"
	case DropLowest:
		return "sm"
	default:
		return ""
	}
}

func (k ModifierKind) String() string {
	switch k {
	case KeepHighest:
		return "keep_highest"
	case KeepLowest:
		return "keep_lowest"
	case DropHighest:
		return "drop_highest"
	case DropLowest:
		return "drop_lowest"
	default:
		return "unknown"
	}
}

// Modifier is a keep/drop selection applied to a sorted dice group.
type Modifier struct {
	Kind  ModifierKind
	Count int
}

// DiceSpec describes Count dice of Sides faces with an optional modifier.
type DiceSpec struct {
	Count    int
	Sides    int
	Modifier *Modifier
}

// String renders the spec in chat notation, e.g. "2d20m1".
func (d DiceSpec) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.Count))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(d.Sides))
	if d.Modifier != nil {
		b.WriteString(d.Modifier.Kind.Token())
		b.WriteString(strconv.Itoa(d.Modifier.Count))
	}
	return b.String()
}

// TermKind tags the payload carried by a Term.
type TermKind int

const (
	TermDice TermKind = iota + 1
	TermLiteral
)

// Term is one signed element of an expression. Only the field matching Kind
// is meaningful.
type Term struct {
	Op      Operator
	Kind    TermKind
	Dice    DiceSpec
	Literal int
}

// Expression is a parsed command: its terms in evaluation order.
type Expression struct {
	Source string
	Terms  []Term
}

// RollOutcome holds one value per die, in roll order.
type RollOutcome struct {
	RawResults []int
}

// KeptOutcome is the subset of a RollOutcome that counts toward the total.
type KeptOutcome struct {
	Selected []int
	Total    int
}
