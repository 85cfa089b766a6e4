package model

import (
	"errors"
	"medimate/shared/model"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldPatientID       = "patient_id"
	FieldDoctorID        = "doctor_id"
	FieldStatus          = "status"
	FieldDatetimeStart   = "datetime_start"
	FieldDurationMinutes = "duration_minutes"
	FieldPatientNotes    = "patient_notes"
	FieldDoctorNotes     = "doctor_notes"
	FieldCreatedAt       = "created_at"
)

// AllowedDurations is the set of slot lengths, in minutes, a booking may take.
var AllowedDurations = []int{15, 30}

func IsAllowedDuration(minutes int) bool {
	return slices.Contains(AllowedDurations, minutes)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusStarted   Status = "started"
	StatusComplete  Status = "complete"
)

var ErrUnknownStatus = errors.New("unknown booking status")

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))

	switch status {
	case StatusPending, StatusConfirmed, StatusStarted, StatusComplete:
		return status, nil
	}

	return "", ErrUnknownStatus
}

type Booking struct {
	ID              string    `db:"id"`
	PatientID       string    `db:"patient_id"`
	DoctorID        string    `db:"doctor_id"`
	Status          Status    `db:"status"`
	DatetimeStart   time.Time `db:"datetime_start"`
	DurationMinutes int       `db:"duration_minutes"`
	PatientNotes    *string   `db:"patient_notes"`
	DoctorNotes     *string   `db:"doctor_notes"`
	model.Metadata
}

// Interval is the slot the booking occupies.
func (b Booking) Interval() Interval {
	return NewInterval(b.DatetimeStart, b.DurationMinutes)
}

func (b Booking) Owners() (patientID, doctorID string) {
	return b.PatientID, b.DoctorID
}
