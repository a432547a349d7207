package handler

import (
	"cmp"
	"net/http"

	"github.com/navelogic/rpgbot/internal/domain"
	"github.com/navelogic/rpgbot/internal/logger"
	"github.com/navelogic/rpgbot/internal/roll"
)

// RollRequest is the body of POST /api/v1/roll
type RollRequest struct {
	Platform string `json:"platform" validate:"required,platform"`
	// Username is the platform handle, addressed as "@username". Clients
	// whose users have no handle send DisplayName instead.
	Username    string `json:"username" validate:"required_without=DisplayName,max=100,excludesall=\x00\n\r\t"`
	DisplayName string `json:"display_name,omitempty" validate:"max=100,excludesall=\x00\n\r\t"`
	Command     string `json:"command" validate:"required,max=500,rollcommand"`
	Seed        *int64 `json:"seed,omitempty"`
}

// RollResponse is the evaluated roll plus the ready-to-send chat reply
type RollResponse struct {
	Total           int                 `json:"total"`
	Visual          string              `json:"visual"`
	CriticalMessage string              `json:"critical_message,omitempty"`
	Critical        string              `json:"critical"`
	Terms           []domain.TermResult `json:"terms"`
	Reply           string              `json:"reply"`
}

// ValidateRollRequest is the body of POST /api/v1/roll/validate
type ValidateRollRequest struct {
	Command string `json:"command" validate:"required,max=500"`
}

// ValidateRollResponse reports whether a command is syntactically valid
type ValidateRollResponse struct {
	Valid bool `json:"valid"`
}

// RollHelpResponse documents the command syntax
type RollHelpResponse struct {
	Commands []string `json:"commands"`
	Help     string   `json:"help"`
	Examples string   `json:"examples"`
}

// HandleRoll evaluates a dice command.
// @Summary Roll dice
// @Description Evaluates a dice command such as "/r 2d20m1+3". Terms are applied left to right.
// @Tags roll
// @Accept json
// @Produce json
// @Param request body RollRequest true "Roll command"
// @Success 200 {object} RollResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/roll [post]
// @Security ApiKeyAuth
func HandleRoll(svc roll.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodeRequest[RollRequest](w, r, "roll")
		if !ok {
			return
		}
		log.Debug("Roll requested", "platform", req.Platform, "username", req.Username, "command", req.Command)

		result, err := svc.Roll(r.Context(), domain.RollRequest{
			Platform: req.Platform,
			Username: cmp.Or(req.Username, req.DisplayName),
			Command:  req.Command,
			Seed:     req.Seed,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, RollResponse{
			Total:           result.Total,
			Visual:          result.Visual,
			CriticalMessage: result.CriticalMessage,
			Critical:        result.CriticalKind(),
			Terms:           result.Terms,
			Reply:           domain.FormatReply(domain.DisplayName(req.Username, req.DisplayName), result),
		})
	}
}

// HandleValidateRoll checks command syntax without rolling.
// @Summary Validate a dice command
// @Description Reports whether a command is syntactically valid. Limits such as the dice count are not checked.
// @Tags roll
// @Accept json
// @Produce json
// @Param request body ValidateRollRequest true "Command"
// @Success 200 {object} ValidateRollResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/roll/validate [post]
// @Security ApiKeyAuth
func HandleValidateRoll(svc roll.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest[ValidateRollRequest](w, r, "validate_roll")
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, ValidateRollResponse{Valid: svc.Validate(req.Command)})
	}
}

// HandleRollHelp returns the command reference.
// @Summary Dice syntax help
// @Tags roll
// @Produce json
// @Produce plain
// @Param format query string false "text for a plain-text body"
// @Success 200 {object} RollHelpResponse
// @Router /api/v1/roll/help [get]
func HandleRollHelp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if queryOr(r, "format", "json") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(domain.CommandsMessage))
			return
		}

		respondJSON(w, http.StatusOK, RollHelpResponse{
			Commands: []string{domain.CommandRoll, domain.CommandRollLong, domain.CommandList, domain.CommandListShort, domain.CommandStart},
			Help:     domain.CommandsMessage,
			Examples: domain.ErrMsgInvalidFormat,
		})
	}
}
