package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navelogic/rpgbot/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"invalid format", domain.ErrInvalidFormat, http.StatusBadRequest, domain.ErrMsgInvalidFormat},
		{"invalid sides", domain.ErrInvalidSides, http.StatusBadRequest, domain.ErrMsgInvalidSides},
		{"division by zero", domain.ErrDivisionByZero, http.StatusBadRequest, domain.ErrMsgDivisionByZero},
		{"modifier out of range", domain.ErrModifierCountOutOfRange, http.StatusBadRequest, domain.ErrMsgModifierCountOutOfRange},
		{"result out of range", domain.ErrResultOutOfRange, http.StatusBadRequest, domain.ErrMsgResultOutOfRange},
		{"wrapped dice count", fmt.Errorf("roll: %w", domain.ErrDiceCountExceeded), http.StatusBadRequest, domain.ErrMsgDiceCountExceeded},
		{"invalid platform", domain.ErrInvalidPlatform, http.StatusBadRequest, domain.ErrMsgInvalidPlatform},
		{"unknown", errors.New("secret internals"), http.StatusInternalServerError, domain.ErrMsgProcessingCommandFailure},
		{"nil", nil, http.StatusInternalServerError, domain.ErrMsgProcessingCommandFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, msg)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		payload    interface{}
		wantStatus int
		wantBody   string
	}{
		{"encodes payload", http.StatusCreated, SuccessResponse{Message: "ok"}, http.StatusCreated, `{"message":"ok"}`},
		{"unencodable payload", http.StatusOK, map[string]interface{}{"ch": make(chan int)}, http.StatusInternalServerError, `{"error":"` + domain.ErrMsgProcessingCommandFailure + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondJSON(rec, tt.status, tt.payload)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
