package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventSchemaVersion is stamped on every event this package builds
const EventSchemaVersion = "1.0"

// DecodePayload returns the payload as T. In-process publishers already
// pass T; anything else (a map from a decoded message) is converted via JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}

	var out T
	data, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}

// HandlerError collects the failures of every handler that rejected an event
type HandlerError struct {
	Type Type
	Errs []error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%d of the %s handlers failed: %v", len(e.Errs), e.Type, errors.Join(e.Errs...))
}

func (e *HandlerError) Unwrap() []error { return e.Errs }
