package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// These are shown verbatim to chat users, so they stay in Portuguese.
const (
	// Dice expression errors
	ErrMsgInvalidFormat = "Formato de comando inválido. Exemplos:\n" +
		"/r 2d20m1 (rola 2d20 mantendo o maior)\n" +
		"/r 2d20mm1 (rola 2d20 mantendo o menor)\n" +
		"/r 2d20sM1 (rola 2d20 soltando o maior)\n" +
		"/r 2d20sm1 (rola 2d20 soltando o menor)"
	ErrMsgDiceCountExceeded        = "O número de dados não pode ser maior que 1000"
	ErrMsgInvalidSides             = "O número de lados deve ser maior que zero."
	ErrMsgDivisionByZero           = "Não é possível dividir por zero."
	ErrMsgModifierCountOutOfRange  = "A quantidade do modificador não pode ser maior que o número de dados."
	ErrMsgResultOutOfRange         = "O resultado é grande demais para ser calculado."
	ErrMsgProcessingCommandFailure = "Erro ao processar o comando."

	// Platform errors
	ErrMsgInvalidPlatform = "invalid platform"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Dice evaluation errors.
// The core returns these unwrapped so Error() is exactly the user message;
// outer layers may wrap them with fmt.Errorf("...: %w", err).
var (
	ErrInvalidFormat           = errors.New(ErrMsgInvalidFormat)
	ErrDiceCountExceeded       = errors.New(ErrMsgDiceCountExceeded)
	ErrInvalidSides            = errors.New(ErrMsgInvalidSides)
	ErrDivisionByZero          = errors.New(ErrMsgDivisionByZero)
	ErrModifierCountOutOfRange = errors.New(ErrMsgModifierCountOutOfRange)
	ErrResultOutOfRange        = errors.New(ErrMsgResultOutOfRange)
)

// Common domain errors
var (
	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Platform errors
	ErrInvalidPlatform = errors.New(ErrMsgInvalidPlatform)
)

var evaluationErrors = []error{
	ErrInvalidFormat,
	ErrDiceCountExceeded,
	ErrInvalidSides,
	ErrDivisionByZero,
	ErrModifierCountOutOfRange,
	ErrResultOutOfRange,
}

// UserMessage returns the text a chat user should see for err. Wrapped
// evaluation errors yield their sentinel's message; anything else yields
// ErrMsgProcessingCommandFailure.
func UserMessage(err error) string {
	for _, target := range evaluationErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return ErrMsgProcessingCommandFailure
}

// IsEvaluationError reports whether err is one of the dice evaluation errors,
// i.e. a problem with the user's command rather than with the system.
func IsEvaluationError(err error) bool {
	for _, target := range evaluationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ErrorKind returns a short stable identifier for an evaluation error,
// suitable for metric labels and JSON responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return ErrorKindInvalidFormat
	case errors.Is(err, ErrDiceCountExceeded):
		return ErrorKindDiceCountExceeded
	case errors.Is(err, ErrInvalidSides):
		return ErrorKindInvalidSides
	case errors.Is(err, ErrDivisionByZero):
		return ErrorKindDivisionByZero
	case errors.Is(err, ErrModifierCountOutOfRange):
		return ErrorKindModifierCountOutOfRange
	case errors.Is(err, ErrResultOutOfRange):
		return ErrorKindResultOutOfRange
	default:
		return ErrorKindInternal
	}
}

// Error kind identifiers
const (
	ErrorKindInvalidFormat           = "invalid_format"
	ErrorKindDiceCountExceeded       = "dice_count_exceeded"
	ErrorKindInvalidSides            = "invalid_sides"
	ErrorKindDivisionByZero          = "division_by_zero"
	ErrorKindModifierCountOutOfRange = "modifier_count_out_of_range"
	ErrorKindResultOutOfRange        = "result_out_of_range"
	ErrorKindInternal                = "internal"
)
