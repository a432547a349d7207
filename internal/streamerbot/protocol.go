package streamerbot

import "github.com/google/uuid"

// Request is one message to the Streamer.bot WebSocket server
type Request struct {
	Request string            `json:"request"`
	ID      string            `json:"id"`
	Action  *Action           `json:"action,omitempty"`
	Args    map[string]string `json:"args,omitempty"`
}

// Action identifies a Streamer.bot action by ID or by name
type Action struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Response acknowledges a Request with the same ID
type Response struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Error  string `json:"error,omitempty"`
}

// AuthChallenge is the hello message Streamer.bot sends when authentication
// is enabled
type AuthChallenge struct {
	Info struct {
		Authentication struct {
			Challenge string `json:"challenge"`
			Salt      string `json:"salt"`
		} `json:"authentication"`
	} `json:"info"`
}

func (a AuthChallenge) required() bool {
	return a.Info.Authentication.Challenge != ""
}

type authRequest struct {
	Request        string `json:"request"`
	ID             string `json:"id"`
	Authentication string `json:"authentication"`
}

func newDoAction(name string, args map[string]string) Request {
	return Request{
		Request: RequestDoAction,
		ID:      uuid.NewString(),
		Action:  &Action{Name: name},
		Args:    args,
	}
}

func newAuthRequest(password string, challenge AuthChallenge) authRequest {
	auth := challenge.Info.Authentication
	return authRequest{
		Request:        RequestAuthenticate,
		ID:             uuid.NewString(),
		Authentication: GenerateAuthHash(password, auth.Salt, auth.Challenge),
	}
}
