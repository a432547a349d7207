package main

import (
	"fmt"
	"net/http"
	"time"
)

const slowResponseThreshold = 1 * time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check API liveness and readiness"
}

func (c *HealthCheckCommand) Run(args []string) error {
	apiURL, _ := apiTarget()
	if len(args) > 0 {
		apiURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", apiURL))

	for _, path := range []string{"/healthz", "/readyz"} {
		duration, err := checkEndpoint(apiURL + path)
		if err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}

		if duration > slowResponseThreshold {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}

// checkEndpoint GETs url and requires a 200
func checkEndpoint(url string) (time.Duration, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return time.Since(start), nil
}
