package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/handler"
)

// APIClient calls the dice API on behalf of the bot
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	maxRetries int
	retryDelay time.Duration
}

// APIError is a non-2xx answer from the API. For rejected rolls Message is
// already the user-facing text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status: %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

// IsUserError reports whether the API rejected the request itself (4xx)
func (e *APIError) IsUserError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: apiRequestTimeout},
		APIKey:     apiKey,
		maxRetries: apiMaxRetries,
		retryDelay: apiRetryDelay,
	}
}

// backoff doubles retryDelay per attempt and adds up to half of it again
// as jitter
func (c *APIClient) backoff(attempt int) time.Duration {
	d := c.retryDelay << (attempt - 1)
	if d <= 0 {
		return 0
	}
	return d + rand.N(d/2+1)
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
	return req, nil
}

// doRequest sends body as JSON, retrying transport failures and 5xx answers
// up to maxRetries times. Any answer below 500 is returned to the caller.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	var lastErr error
	for attempt := range c.maxRetries + 1 {
		if attempt > 0 {
			delay := c.backoff(attempt)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay, "last_error", lastErr)
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}

		req, err := c.newRequest(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
		resp, err := c.Client.Do(req)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			lastErr = err
		case resp.StatusCode >= http.StatusInternalServerError:
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode}
		default:
			return resp, nil
		}
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call posts in to path and decodes a 200 answer as T. Other answers become
// an *APIError carrying the API's error text when it sent one.
func call[T any](ctx context.Context, c *APIClient, path string, in any) (*T, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, in)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body handler.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error
		}
		return nil, apiErr
	}

	out := new(T)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// Roll evaluates a dice command such as "/r 2d20m1+3" for a Discord user
func (c *APIClient) Roll(ctx context.Context, username, command string) (*handler.RollResponse, error) {
	return call[handler.RollResponse](ctx, c, "/api/v1/roll", handler.RollRequest{
		Platform: domain.PlatformDiscord,
		Username: username,
		Command:  command,
	})
}

// ValidateRoll asks the API whether a command is syntactically valid
func (c *APIClient) ValidateRoll(ctx context.Context, command string) (bool, error) {
	resp, err := call[handler.ValidateRollResponse](ctx, c, "/api/v1/roll/validate", handler.ValidateRollRequest{Command: command})
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// HealthCheck probes the API liveness endpoint without retries
func (c *APIClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// userMessage extracts the text to show a user for a failed API call
func userMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsUserError() && apiErr.Message != "" {
		return apiErr.Message
	}
	return domain.UserMessage(err)
}
