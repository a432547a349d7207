package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// DiscordCall is one request the bot made to the Discord REST API
type DiscordCall struct {
	Method string
	Path   string
	Body   string
}

// TestContext wires a fake rpgbot API and a Discord session whose REST
// calls are captured instead of sent
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *APIClient
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper

	mu        sync.Mutex
	calls     []DiscordCall
	responses map[string]string
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	client := NewAPIClient(server.URL, "test-api-key")
	client.retryDelay = 0

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
		responses: make(map[string]string),
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			ctx.mu.Lock()
			ctx.calls = append(ctx.calls, DiscordCall{Method: req.Method, Path: req.URL.Path, Body: string(body)})
			respBody := "{}"
			for suffix, canned := range ctx.responses {
				if strings.HasSuffix(req.URL.Path, suffix) {
					respBody = canned
				}
			}
			ctx.mu.Unlock()

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	t.Cleanup(server.Close)

	return ctx
}

// RespondWith makes Discord answer requests whose path ends with suffix with body
func (c *TestContext) RespondWith(suffix, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[suffix] = body
}

// Calls returns the captured Discord requests
func (c *TestContext) Calls() []DiscordCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DiscordCall(nil), c.calls...)
}

// CallsTo returns the captured requests whose path ends with suffix
func (c *TestContext) CallsTo(suffix string) []DiscordCall {
	var out []DiscordCall
	for _, call := range c.Calls() {
		if strings.HasSuffix(call.Path, suffix) {
			out = append(out, call)
		}
	}
	return out
}

// WriteJSON is a helper to return JSON from the fake API
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}
