package domain

// RollRequest is a single dice command issued by a chat user.
type RollRequest struct {
	Platform string
	Username string
	Command  string
	// Seed, when set, makes the roll reproducible.
	Seed *int64
}

// TermResult is the evaluated form of one signed term of an expression.
type TermResult struct {
	Operator string `json:"operator"`
	Dice     string `json:"dice,omitempty"`
	Sides    int    `json:"sides,omitempty"`
	Rolled   []int  `json:"rolled,omitempty"`
	Kept     []int  `json:"kept,omitempty"`
	Value    int    `json:"value"`
}

// RollResult is the final outcome of evaluating a dice command.
type RollResult struct {
	Total           int          `json:"total"`
	Visual          string       `json:"visual"`
	CriticalMessage string       `json:"critical_message,omitempty"`
	Terms           []TermResult `json:"terms,omitempty"`
}

// CriticalKind classifies the critical annotation of a result.
func (r *RollResult) CriticalKind() string {
	switch r.CriticalMessage {
	case CriticalSuccessMessage:
		return CriticalSuccess
	case CriticalFailureMessage:
		return CriticalFailure
	default:
		return CriticalNone
	}
}
