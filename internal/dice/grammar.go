package dice

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/navelogic/rpgbot/internal/domain"
)

// Validate reports whether raw is a syntactically valid roll command.
// Limits such as the maximum dice count are not checked here; Parse reports
// those with their own errors.
func Validate(raw string) bool {
	expr, ok := ExtractExpression(raw)
	if !ok {
		return false
	}
	_, err := scanExpression(expr)
	return err == nil
}

// Parse validates raw and turns it into an Expression in one pass.
// Syntax is checked for the whole expression before any term is resolved, so
// a malformed command always reports domain.ErrInvalidFormat.
func Parse(raw string) (Expression, error) {
	expr, ok := ExtractExpression(raw)
	if !ok {
		return Expression{}, domain.ErrInvalidFormat
	}
	return ParseExpression(expr)
}

// ParseExpression parses an expression without the command keyword,
// e.g. "2d20m1 + 3".
func ParseExpression(expr string) (Expression, error) {
	scanned, err := scanExpression(expr)
	if err != nil {
		return Expression{}, err
	}

	terms := make([]Term, 0, len(scanned))
	for _, st := range scanned {
		term, err := st.resolve()
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, term)
	}

	return Expression{Source: strings.TrimSpace(expr), Terms: terms}, nil
}

// ExtractExpression strips the "/r" or "/rolar" keyword from raw and returns
// the remaining expression. The keyword is matched case-insensitively, may
// carry a Telegram style "@botname" suffix and must be followed by at least
// one whitespace character.
func ExtractExpression(raw string) (string, bool) {
	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := strings.IndexFunc(raw, unicode.IsSpace)
	if end < 0 {
		return "", false
	}

	if !IsRollKeyword(raw[:end]) {
		return "", false
	}

	return strings.TrimSpace(raw[end:]), true
}

// IsRollKeyword reports whether word is "/r" or "/rolar", ignoring case and
// an "@botname" suffix.
func IsRollKeyword(word string) bool {
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	word = cases.Fold().String(word)
	return word == domain.CommandRoll || word == domain.CommandRollLong
}

// Split cuts expr immediately before every operator so each slice starts
// with its operator. Whitespace around slices is removed and a leading empty
// slice is dropped: "2d20m1 + 3-1d6" yields ["2d20m1", "+3", "-1d6"].
// Whitespace between an operator and its payload is kept; ParseTerm ignores it.
func Split(expr string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(expr); i++ {
		if i > 0 && isOperator(expr[i]) {
			parts = append(parts, strings.TrimSpace(expr[start:i]))
			start = i
		}
	}
	parts = append(parts, strings.TrimSpace(expr[start:]))

	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}

func scanExpression(expr string) ([]scannedTerm, error) {
	parts := Split(expr)
	if len(parts) == 0 {
		return nil, domain.ErrInvalidFormat
	}

	scanned := make([]scannedTerm, 0, len(parts))
	for i, part := range parts {
		st, err := scanTerm(part)
		if err != nil {
			return nil, err
		}
		if i == 0 && (st.op == OpMul || st.op == OpDiv) {
			return nil, domain.ErrInvalidFormat
		}
		if i > 0 && !st.explicitOp {
			return nil, domain.ErrInvalidFormat
		}
		scanned = append(scanned, st)
	}
	return scanned, nil
}
