package discord

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// SSEEventHandler handles a specific event type
type SSEEventHandler func(event SSEEvent) error

var errStreamClosed = errors.New("stream closed unexpectedly")

// SSEClient follows the API's roll stream, reconnecting with backoff
type SSEClient struct {
	baseURL    string
	apiKey     string
	eventTypes []string
	httpClient *http.Client

	mu        sync.RWMutex
	handlers  map[string][]SSEEventHandler
	connected bool
	retryHint time.Duration

	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSSEClient creates a new SSE client
func NewSSEClient(baseURL, apiKey string, eventTypes []string) *SSEClient {
	return &SSEClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		eventTypes: eventTypes,
		handlers:   make(map[string][]SSEEventHandler),
		// The stream stays open; only the context ends it
		httpClient: &http.Client{},
	}
}

// OnEvent registers a handler for a specific event type
func (c *SSEClient) OnEvent(eventType string, handler SSEEventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start follows the stream in the background until ctx ends or Stop is called
func (c *SSEClient) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(ctx)
}

// Stop disconnects and waits for the background loop to exit
func (c *SSEClient) Stop() {
	c.stopOnce.Do(func() {
		c.mu.RLock()
		cancel := c.cancel
		c.mu.RUnlock()
		if cancel != nil {
			cancel()
		}
	})
	c.wg.Wait()
}

// IsConnected returns true while a stream is open
func (c *SSEClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *SSEClient) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

func (c *SSEClient) run(ctx context.Context) {
	defer c.wg.Done()
	defer slog.Info(sseLogMsgClientStopped)

	delay := sseInitialBackoff
	failures := 0

	for ctx.Err() == nil {
		streamed, err := c.follow(ctx)
		c.setConnected(false)
		if ctx.Err() != nil {
			return
		}

		if streamed {
			// The stream was up; start over from the shortest delay
			delay, failures = sseInitialBackoff, 0
		}
		failures++
		wait := max(delay, c.serverRetryHint())
		slog.Warn(sseLogMsgConnectionFailed, "error", err, "backoff", wait, "consecutive_failures", failures)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = nextBackoff(delay)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d = time.Duration(float64(d) * sseBackoffMultiplier)
	return min(d, sseMaxBackoff)
}

func (c *SSEClient) serverRetryHint() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.retryHint
}

func (c *SSEClient) streamURL() string {
	u := c.baseURL + sseStreamPath
	if len(c.eventTypes) > 0 {
		u += "?types=" + strings.Join(c.eventTypes, ",")
	}
	return u
}

// follow opens one stream and reads it to the end. streamed reports whether
// the server accepted the connection.
func (c *SSEClient) follow(ctx context.Context) (streamed bool, err error) {
	url := c.streamURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.setConnected(true)
	slog.Info(sseLogMsgClientConnected, "url", url)
	return true, c.readEvents(ctx, resp.Body)
}

// sseFrame accumulates the fields of one event until its blank line
type sseFrame struct {
	id    string
	event string
	data  []string
}

func (f *sseFrame) reset() { *f = sseFrame{} }

// readEvents parses the text/event-stream body and dispatches complete events
func (c *SSEClient) readEvents(ctx context.Context, body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, sseBufferSize), sseBufferSize)

	var frame sseFrame
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if line == "" {
			if len(frame.data) > 0 {
				c.dispatchEvent(frame.id, frame.event, strings.Join(frame.data, "\n"))
			}
			frame.reset()
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			frame.id = value
		case "event":
			frame.event = value
		case "data":
			frame.data = append(frame.data, value)
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
				c.mu.Lock()
				c.retryHint = time.Duration(ms) * time.Millisecond
				c.mu.Unlock()
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}
	return errStreamClosed
}

func (c *SSEClient) dispatchEvent(id, eventType, data string) {
	switch eventType {
	case "", sseEventTypeKeepalive, sseEventTypeConnected:
		return
	}

	var event SSEEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		slog.Warn(sseLogMsgParseError, "error", err, "data", data)
		return
	}
	// The "event:" and "id:" lines win over the JSON body
	event.Type = eventType
	if id != "" {
		event.ID = id
	}

	c.mu.RLock()
	handlers := c.handlers[event.Type]
	c.mu.RUnlock()

	for _, h := range handlers {
		if err := h(event); err != nil {
			slog.Error(sseLogMsgHandlerError, "event_type", event.Type, "error", err)
		}
	}
}
