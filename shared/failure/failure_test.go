package failure_test

import (
	"errors"
	"fmt"
	"medimate/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("validation failed")), code: http.StatusBadRequest, message: "validation failed"},
		{name: "bad request from string", err: failure.BadRequestFromString("custom bad request"), code: http.StatusBadRequest, message: "custom bad request"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("slot taken"), code: http.StatusConflict, message: "slot taken"},
		{name: "forbidden", err: failure.Forbidden("not your booking"), code: http.StatusForbidden, message: "not your booking"},
		{name: "custom", err: failure.New(http.StatusTooManyRequests, "slow down"), code: http.StatusTooManyRequests, message: "slow down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.True(t, errors.As(tt.err, &f))
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	sentinel := failure.New(http.StatusConflict, "doctor already has a booking in this slot")
	wrapped := fmt.Errorf("create booking: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(failure.InvalidPageParam))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}
