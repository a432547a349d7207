package streamerbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type connState int

const (
	stateDisconnected connState = iota
	stateConnected
	// stateDormant: too many failed attempts; waits for DoAction to retry
	stateDormant
)

func (s connState) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateDormant:
		return "dormant"
	default:
		return "disconnected"
	}
}

// Client keeps a WebSocket connection to Streamer.bot and triggers actions
// on it. After MaxConsecutiveFailures it goes dormant until the next
// DoAction wakes it.
type Client struct {
	url      string
	password string

	mu    sync.RWMutex
	conn  *websocket.Conn
	state connState

	// gorilla/websocket allows one concurrent writer
	writeMu sync.Mutex

	wakeup   chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewClient creates a client for url (DefaultURL when empty)
func NewClient(url, password string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:      url,
		password: password,
		wakeup:   make(chan struct{}, 1),
	}
}

// Start connects in the background and keeps reconnecting until ctx ends or
// Stop is called
func (c *Client) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(ctx)
}

// Stop drops the connection and waits for the background loop. Safe to
// call more than once.
func (c *Client) Stop() {
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

// IsConnected reports whether actions can be sent right now
func (c *Client) IsConnected() bool {
	return c.currentState() == stateConnected
}

func (c *Client) currentState() connState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) setState(s connState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// DoAction runs the Streamer.bot action named actionName. It does not wait
// for Streamer.bot to acknowledge it.
func (c *Client) DoAction(actionName string, args map[string]string) error {
	switch c.currentState() {
	case stateDormant:
		slog.Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return errors.New(ErrMsgDormant)
	case stateDisconnected:
		return errors.New(ErrMsgNotConnected)
	}

	slog.Debug(LogMsgSendingAction, "action", actionName, "args", args)
	if err := c.send(newDoAction(actionName, args)); err != nil {
		slog.Error(LogMsgActionFailed, "action", actionName, "error", err)
		return err
	}
	slog.Info(LogMsgActionSent, "action", actionName)
	return nil
}

func (c *Client) run(ctx context.Context) {
	defer c.wg.Done()
	defer slog.Info(LogMsgClientStopped)

	delay := DefaultReconnectDelay
	failures := 0

	for ctx.Err() == nil {
		err := c.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			// Clean close from Streamer.bot; reconnect right away
			if failures > 0 {
				slog.Info(LogMsgRestored, "after_failures", failures)
			}
			delay, failures = DefaultReconnectDelay, 0
			continue
		}

		failures++
		if failures >= MaxConsecutiveFailures {
			if !c.sleepUntilWoken(ctx, failures) {
				return
			}
			delay, failures = DefaultReconnectDelay, 0
			continue
		}

		// Log the first attempts, then only every hundredth
		if failures <= 3 || failures%100 == 0 {
			slog.Warn(LogMsgReconnecting, "error", err, "backoff", delay, "consecutive_failures", failures)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = min(time.Duration(float64(delay)*ReconnectMultiplier), MaxReconnectDelay)
	}
}

// sleepUntilWoken parks the loop in the dormant state. It returns false when
// ctx ends first.
func (c *Client) sleepUntilWoken(ctx context.Context, failures int) bool {
	c.setState(stateDormant)
	slog.Warn(LogMsgGivingUp, "consecutive_failures", failures, "max_allowed", MaxConsecutiveFailures)

	select {
	case <-ctx.Done():
		return false
	case <-c.wakeup:
		slog.Info(LogMsgWakingUp)
		c.setState(stateDisconnected)
		return true
	}
}

// session dials, completes the handshake and reads until the connection
// drops. A normal close returns nil.
func (c *Client) session(ctx context.Context) error {
	slog.Info(LogMsgConnecting, "url", c.url)

	dialer := websocket.Dialer{
		ReadBufferSize:   ReadBufferSize,
		WriteBufferSize:  WriteBufferSize,
		HandshakeTimeout: WriteTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect: %w (status: %s)", err, resp.Status)
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	// Closing the socket is what unblocks ReadMessage on shutdown
	release := context.AfterFunc(ctx, func() { _ = conn.Close() })
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	defer func() {
		release()
		c.mu.Lock()
		c.conn = nil
		if c.state == stateConnected {
			c.state = stateDisconnected
		}
		c.mu.Unlock()
		_ = conn.Close()
	}()

	if err := c.handshake(conn); err != nil {
		return err
	}

	c.setState(stateConnected)
	slog.Info(LogMsgConnected, "url", c.url)

	err = c.readLoop(conn)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// handshake reads the hello Streamer.bot sends on every connection and
// answers its auth challenge when there is one
func (c *Client) handshake(conn *websocket.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(HandshakeTimeout))
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()

	var hello AuthChallenge
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read hello: %w", err)
	}
	if json.Unmarshal(msg, &hello) != nil || !hello.required() {
		return nil
	}

	slog.Info(LogMsgAuthRequired)
	if c.password == "" {
		return errors.New("authentication failed: password required but not configured")
	}
	if err := c.send(newAuthRequest(c.password, hello)); err != nil {
		return fmt.Errorf("failed to send auth request: %w", err)
	}

	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}
	if resp.Status != StatusOK {
		return fmt.Errorf("authentication failed: %s", resp.Error)
	}
	slog.Info(LogMsgAuthSuccess)
	return nil
}

// readLoop drains acknowledgements so control frames are handled; only
// failures are logged
func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		var resp Response
		_, msg, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		if err != nil {
			slog.Warn(LogMsgReadError, "error", err)
			return err
		}
		if json.Unmarshal(msg, &resp) == nil && resp.Status == StatusError {
			slog.Warn(LogMsgActionFailed, "request_id", resp.ID, "error", resp.Error)
		}
	}
}

func (c *Client) send(v interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return errors.New(ErrMsgNoConnection)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(v)
}
