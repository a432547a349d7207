package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/navelogic/rpgbot/internal/sse"
)

// WatchCommand tails the roll feed until interrupted
type WatchCommand struct{}

func (c *WatchCommand) Name() string {
	return "watch"
}

func (c *WatchCommand) Description() string {
	return "Tail the roll feed (optionally filtered, e.g. devtool watch roll.critical)"
}

func (c *WatchCommand) Run(args []string) error {
	apiURL, apiKey := apiTarget()

	url := apiURL + "/api/v1/rolls/stream"
	if len(args) > 0 {
		url += "?types=" + strings.Join(args, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if apiKey != "" {
		req.Header.Set(headerAPIKey, apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	PrintHeader(fmt.Sprintf("Watching %s (CTRL-C to stop)", url))
	err = readStream(resp.Body, func(name, data string) {
		PrintInfo("%s %s", name, data)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// readStream calls fn for every complete "event:"/"data:" pair. Keepalives
// are skipped.
func readStream(r io.Reader, fn func(name, data string)) error {
	scanner := bufio.NewScanner(r)

	var name, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "":
			if name != "" && name != sse.EventTypeKeepalive {
				fn(name, data)
			}
			name, data = "", ""
		}
	}
	return scanner.Err()
}
