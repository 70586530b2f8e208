package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_INACTIVE", http.StatusForbidden},
		{"ORDER_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"EMPTY_BASKET", http.StatusUnprocessableEntity},
		{"CONTACT_LIMIT", http.StatusUnprocessableEntity},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseEnvelope(t *testing.T) {
	t.Run("success with data", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessResponse(map[string]int{"n": 1}))
		require.NoError(t, err)

		assert.JSONEq(t, `{"Status":true,"Data":{"n":1}}`, string(raw))
	})

	t.Run("success with message omits data", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessMessage("done"))
		require.NoError(t, err)

		assert.JSONEq(t, `{"Status":true,"Message":"done"}`, string(raw))
	})

	t.Run("error carries code and message", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponse("NOT_FOUND", "no such thing"))
		require.NoError(t, err)

		assert.JSONEq(t, `{"Status":false,"Errors":{"code":"NOT_FOUND","message":"no such thing"}}`, string(raw))
	})
}
