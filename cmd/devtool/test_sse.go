package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/sse"
)

type TestSSECommand struct{}

func (c *TestSSECommand) Name() string {
	return "test-sse"
}

func (c *TestSSECommand) Description() string {
	return "Broadcast a fake roll on the feed (roll, roll.critical) to test overlays and the Discord notifier"
}

func (c *TestSSECommand) Run(args []string) error {
	PrintHeader("Testing SSE Events...")

	apiURL, apiKey := apiTarget()

	eventType := sse.EventTypeCritical
	if len(args) > 0 {
		eventType = args[0]
	}

	if err := broadcastTestEvent(apiURL, apiKey, eventType); err != nil {
		return err
	}

	PrintSuccess("Successfully broadcasted test event: %s", eventType)
	PrintInfo("Check the overlay or the Discord notification channel to see if the message arrived.")
	return nil
}

func testPayload(eventType string) sse.RollPayload {
	payload := sse.RollPayload{
		Platform:   "devtool",
		Username:   "test_user",
		Expression: "2d20m1+3",
		Total:      17,
		Visual:     "(14) + 3",
		Critical:   domain.CriticalNone,
	}
	if eventType == sse.EventTypeCritical {
		payload.Total = 23
		payload.Visual = "(20) + 3"
		payload.CriticalMessage = domain.CriticalSuccessMessage
		payload.Critical = domain.CriticalSuccess
	}
	return payload
}

func broadcastTestEvent(apiURL, apiKey, eventType string) error {
	data, err := json.Marshal(map[string]interface{}{
		"type":    eventType,
		"payload": testPayload(eventType),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/admin/sse/broadcast", apiURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(headerAPIKey, apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return nil
}
