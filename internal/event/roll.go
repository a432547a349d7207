package event

import (
	"time"

	"github.com/navelogic/rpgbot/internal/domain"
)

const (
	RollEvaluated Type = "roll.evaluated"
	RollRejected  Type = "roll.rejected"
)

// RollOrigin says who asked for a roll and where
type RollOrigin struct {
	Platform  string `json:"platform"`
	Username  string `json:"username"`
	Command   string `json:"command"`
	Timestamp int64  `json:"timestamp"`
}

func originOf(req domain.RollRequest) RollOrigin {
	return RollOrigin{
		Platform:  req.Platform,
		Username:  req.Username,
		Command:   req.Command,
		Timestamp: time.Now().Unix(),
	}
}

type RollEvaluatedPayloadV1 struct {
	RollOrigin
	Result   *domain.RollResult `json:"result"`
	Critical string             `json:"critical"`
}

type RollRejectedPayloadV1 struct {
	RollOrigin
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// NewRollEvaluatedEvent reports a successful roll. Seeded rolls are marked
// in the metadata so replays can be told apart.
func NewRollEvaluatedEvent(req domain.RollRequest, result *domain.RollResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RollEvaluated,
		Payload: RollEvaluatedPayloadV1{
			RollOrigin: originOf(req),
			Result:     result,
			Critical:   result.CriticalKind(),
		},
		Metadata: map[string]any{"seeded": req.Seed != nil},
	}
}

// NewRollRejectedEvent reports a command the evaluator refused
func NewRollRejectedEvent(req domain.RollRequest, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RollRejected,
		Payload: RollRejectedPayloadV1{
			RollOrigin: originOf(req),
			ErrorKind:  domain.ErrorKind(err),
			Message:    err.Error(),
		},
	}
}
