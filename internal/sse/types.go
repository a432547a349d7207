package sse

// RollPayload is what overlays receive for each evaluated roll
type RollPayload struct {
	Platform        string `json:"platform"`
	Username        string `json:"username"`
	Expression      string `json:"expression"`
	Total           int    `json:"total"`
	Visual          string `json:"visual"`
	CriticalMessage string `json:"critical_message,omitempty"`
	Critical        string `json:"critical"`
}
