package dice

import (
	"math"
	"strconv"
	"strings"

	"github.com/navelogic/rpgbot/internal/domain"
)

// MaxOperand bounds die sides and literals. 1000 dice of that many sides
// still sum without overflowing int.
const MaxOperand = math.MaxInt32

// scannedTerm is the syntactic form of a term. Every ErrInvalidFormat case is
// decided while scanning so Validate and Parse agree; the count and modifier
// digits stay text until resolve applies the dice limits.
type scannedTerm struct {
	op         Operator
	explicitOp bool
	isDice     bool
	count      string
	sides      int
	modifier   string
	modCount   string
	literal    int
}

// ParseTerm parses one signed term such as "2d20m1", "+3" or "-1d6".
func ParseTerm(term string) (Term, error) {
	st, err := scanTerm(strings.TrimSpace(term))
	if err != nil {
		return Term{}, err
	}
	return st.resolve()
}

// scanner walks a term payload byte by byte.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) digits() string {
	start := s.pos
	for !s.done() && isDigit(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) modifierLetters() string {
	start := s.pos
	for !s.done() && isModifierLetter(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func isModifierLetter(c byte) bool {
	return c == 'm' || c == 's' || c == 'M'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// operand converts a digit run no larger than MaxOperand
func operand(digits string) (int, bool) {
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func scanTerm(term string) (scannedTerm, error) {
	st := scannedTerm{op: OpAdd}
	if term != "" && isOperator(term[0]) {
		st.op = Operator(term[0])
		st.explicitOp = true
		term = strings.TrimSpace(term[1:])
	}
	if term == "" {
		return scannedTerm{}, domain.ErrInvalidFormat
	}

	s := &scanner{src: term}
	lead := s.digits()

	if c := s.peek(); c != 'd' && c != 'D' {
		if !s.done() {
			return scannedTerm{}, domain.ErrInvalidFormat
		}
		value, ok := operand(lead)
		if !ok {
			return scannedTerm{}, domain.ErrInvalidFormat
		}
		st.literal = value
		return st, nil
	}
	s.pos++

	st.isDice = true
	st.count = lead
	if lead != "" && strings.Trim(lead, "0") == "" {
		return scannedTerm{}, domain.ErrInvalidFormat
	}
	sides, ok := operand(s.digits())
	if !ok {
		return scannedTerm{}, domain.ErrInvalidFormat
	}
	st.sides = sides

	if !s.done() {
		st.modifier = s.modifierLetters()
		if _, ok := modifierTokens[st.modifier]; !ok {
			return scannedTerm{}, domain.ErrInvalidFormat
		}
		st.modCount = s.digits()
		if st.modCount == "" {
			return scannedTerm{}, domain.ErrInvalidFormat
		}
	}

	if !s.done() {
		return scannedTerm{}, domain.ErrInvalidFormat
	}
	return st, nil
}

// resolve converts digit runs to numbers and enforces dice limits.
func (st scannedTerm) resolve() (Term, error) {
	if !st.isDice {
		return Term{Op: st.op, Kind: TermLiteral, Literal: st.literal}, nil
	}

	count := 1
	if st.count != "" {
		n, err := strconv.Atoi(st.count)
		if err != nil {
			// Only out-of-range digit runs fail to convert.
			return Term{}, domain.ErrDiceCountExceeded
		}
		count = n
	}
	if count > domain.MaxDiceCount {
		return Term{}, domain.ErrDiceCountExceeded
	}
	if st.sides < 1 {
		return Term{}, domain.ErrInvalidSides
	}

	spec := DiceSpec{Count: count, Sides: st.sides}
	if st.modifier != "" {
		k, err := strconv.Atoi(st.modCount)
		if err != nil || k > count {
			return Term{}, domain.ErrModifierCountOutOfRange
		}
		spec.Modifier = &Modifier{Kind: modifierTokens[st.modifier], Count: k}
	}

	return Term{Op: st.op, Kind: TermDice, Dice: spec}, nil
}
