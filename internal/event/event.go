// Package event is the in-process publish/subscribe bus that decouples the
// roll service from its side effects (SSE feed, Streamer.bot alerts).
package event

import (
	"context"
	"slices"
	"sync"
)

// Type names an event, e.g. "roll.evaluated"
type Type string

// Event is what travels on the bus. Payload is usually one of the typed
// payload structs; use DecodePayload to read it.
type Event struct {
	Version  string         `json:"version"`
	Type     Type           `json:"type"`
	Payload  any            `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Meta returns the metadata value for key, nil when absent
func (e Event) Meta(key string) any {
	return e.Metadata[key]
}

// Handler reacts to a published event
type Handler func(ctx context.Context, event Event) error

// Bus is implemented by MemoryBus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler for event.Type even when some fail. The
// failures come back together as a *HandlerError.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := slices.Clip(b.handlers[event.Type])
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if errs == nil {
		return nil
	}
	return &HandlerError{Type: event.Type, Errs: errs}
}

func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}
