package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/sse"
)

func TestRegistry_ListIsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&WatchCommand{})
	r.Register(&RollCommand{})
	r.Register(&HealthCheckCommand{})

	var names []string
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"health-check", "roll", "watch"}, names)

	_, ok := r.Get("deploy")
	assert.False(t, ok)
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestRegistry_PrintHelp(t *testing.T) {
	buf := captureOutput(t)
	r := NewRegistry()
	r.Register(&WatchCommand{})
	r.Register(&RollCommand{})

	r.PrintHelp()

	help := buf.String()
	assert.Contains(t, help, "Usage: devtool <command>")
	assert.Less(t, strings.Index(help, "  roll "), strings.Index(help, "  watch "))
	assert.Contains(t, help, (&RollCommand{}).Description())
}

func TestPrintHelpers_NoColor(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv("NO_COLOR", "1")
	PrintSuccess("rolled %d", 7)
	assert.Equal(t, "✓ rolled 7\n", buf.String())

	buf.Reset()
	os.Unsetenv("NO_COLOR")
	PrintError("boom")
	assert.Equal(t, "\033[0;31m✗ boom\033[0m\n", buf.String())
}

func TestRenderRoll(t *testing.T) {
	result := &domain.RollResult{
		Total:           23,
		Visual:          "(20) + 3",
		CriticalMessage: domain.CriticalSuccessMessage,
		Terms: []domain.TermResult{
			{Operator: "+", Dice: "2d20m1", Sides: 20, Rolled: []int{7, 20}, Kept: []int{20}, Value: 20},
			{Operator: "+", Value: 3},
		},
	}

	assert.Equal(t, "(20) + 3 = 23\n"+domain.CriticalSuccessMessage, renderRoll(result, false))

	out := renderRoll(result, true)
	assert.Contains(t, out, "+ 2d20m1 rolled=[7 20] kept=[20] value=20")
	assert.True(t, strings.HasSuffix(out, "\n  + 3"))
}

func TestRollCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"full command", []string{"/r", "2+3*2"}, false},
		{"bare expression", []string{"-seed", "7", "2d20m1+3"}, false},
		{"division by zero", []string{"/r 1d6/0"}, true},
		{"missing command", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&RollCommand{}).Run(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := checkEndpoint(srv.URL + "/healthz")
	assert.NoError(t, err)

	_, err = checkEndpoint(srv.URL + "/readyz")
	assert.Error(t, err)

	assert.Error(t, (&HealthCheckCommand{}).Run([]string{srv.URL}))
}

func TestBroadcastTestEvent(t *testing.T) {
	var got struct {
		Type    string          `json:"type"`
		Payload sse.RollPayload `json:"payload"`
	}
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/sse/broadcast", r.URL.Path)
		gotKey = r.Header.Get(headerAPIKey)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, broadcastTestEvent(srv.URL, "secret", sse.EventTypeCritical))
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, sse.EventTypeCritical, got.Type)
	assert.Equal(t, domain.CriticalSuccess, got.Payload.Critical)
	assert.Equal(t, 23, got.Payload.Total)
}

func TestBroadcastTestEvent_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	assert.Error(t, broadcastTestEvent(srv.URL, "", sse.EventTypeRoll))
}

func TestTestPayload_PlainRoll(t *testing.T) {
	p := testPayload(sse.EventTypeRoll)
	assert.Equal(t, domain.CriticalNone, p.Critical)
	assert.Empty(t, p.CriticalMessage)
}

func TestReadStream(t *testing.T) {
	stream := "id: c1\nevent: connected\ndata: {}\n\n" +
		"id: \nevent: keepalive\ndata: {}\n\n" +
		"id: e1\nevent: roll.critical\ndata: {\"total\":20}\n\n"

	var names, data []string
	err := readStream(strings.NewReader(stream), func(name, d string) {
		names = append(names, name)
		data = append(data, d)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"connected", "roll.critical"}, names)
	assert.Equal(t, `{"total":20}`, data[1])
}
