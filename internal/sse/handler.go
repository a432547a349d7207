package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Handler serves the roll feed. "?types=roll.critical" narrows it to the
// listed event types.
func Handler(hub *Hub) http.HandlerFunc {
	return streamHandler(hub, KeepaliveInterval)
}

func streamHandler(hub *Hub, keepalive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("Access-Control-Allow-Origin", "*")
		// Disable proxy buffering (nginx)
		h.Set("X-Accel-Buffering", "no")

		filters := parseTypes(r.URL.Query().Get("types"))
		client := hub.Register(filters)
		defer hub.Unregister(client.ID)

		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "filters", filters, "total_clients", hub.ClientCount())
		defer log.Info(LogMsgClientDisconnected)

		s := &stream{w: w, flusher: flusher}
		if err := s.retryHint(ReconnectHint); err != nil {
			return
		}
		if err := s.send(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "filters": filters},
		}); err != nil {
			return
		}

		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return

			case evt, open := <-client.EventChannel:
				if !open {
					return
				}
				if err := s.send(evt); err != nil {
					log.Warn(LogMsgWriteError, "event_type", evt.Type, "error", err)
					return
				}

			case now := <-ticker.C:
				if err := s.send(Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}); err != nil {
					return
				}
			}
		}
	}
}

// parseTypes splits a comma separated filter, ignoring blanks
func parseTypes(raw string) []string {
	if raw == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

type stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *stream) send(evt Event) error {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(msg); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// retryHint tells EventSource clients how long to wait before reconnecting
func (s *stream) retryHint(d time.Duration) error {
	if _, err := fmt.Fprintf(s.w, "retry: %d\n\n", d.Milliseconds()); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
