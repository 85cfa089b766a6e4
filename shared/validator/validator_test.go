package validator_test

import (
	"medimate/shared/failure"
	"medimate/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type appointmentRequest struct {
	DoctorID      string `json:"doctor_id"      validate:"required,uuid"`
	DatetimeStart string `json:"datetime_start" validate:"required,rfc3339"`
	Status        string `json:"status"         validate:"omitempty,oneof=pending confirmed"`
}

type patientRequest struct {
	DateOfBirth string `json:"date_of_birth" validate:"required,pastdate"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name: "valid body",
			body: `{"doctor_id":"0b7a8a6e-3a0e-4c55-9f43-9f0c8a9f1d10","datetime_start":"2030-01-02T10:00:00Z"}`,
		},
		{
			name:    "missing doctor id uses json field name",
			body:    `{"datetime_start":"2030-01-02T10:00:00Z"}`,
			wantMsg: "doctor_id is required",
		},
		{
			name:    "bad timestamp",
			body:    `{"doctor_id":"0b7a8a6e-3a0e-4c55-9f43-9f0c8a9f1d10","datetime_start":"tomorrow"}`,
			wantMsg: "datetime_start must be an RFC3339 timestamp",
		},
		{
			name:    "status outside enum",
			body:    `{"doctor_id":"0b7a8a6e-3a0e-4c55-9f43-9f0c8a9f1d10","datetime_start":"2030-01-02T10:00:00Z","status":"lost"}`,
			wantMsg: "status must be one of pending confirmed",
		},
		{
			name:    "malformed json",
			body:    `{"doctor_id":`,
			wantMsg: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := appointmentRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStrict_RejectsUnknownFields(t *testing.T) {
	req := patientRequest{}
	err := validator.ValidateStrict(strings.NewReader(`{"date_of_birth":"1990-05-01","role":"staff"}`), &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateStruct_PastDate(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&patientRequest{DateOfBirth: "1990-05-01"}))
	assert.Error(t, validator.ValidateStruct(&patientRequest{DateOfBirth: "2999-01-01"}))
	assert.Error(t, validator.ValidateStruct(&patientRequest{DateOfBirth: "01/05/1990"}))
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("patient@example.com", "email"))
	assert.Error(t, validator.ValidateVar("not-an-email", "email"))
}
