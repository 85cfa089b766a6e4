package dto

import (
	"medimate/internal/domains/booking/model"
	"medimate/shared"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	"medimate/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	PatientID       string  `json:"patient_id"       validate:"required,uuid"`
	DoctorID        string  `json:"doctor_id"        validate:"required,uuid"`
	DatetimeStart   string  `json:"datetime_start"   validate:"required,rfc3339"`
	DurationMinutes *int    `json:"duration_minutes" validate:"required"`
	Status          string  `json:"status"           validate:"omitempty,oneof=pending confirmed started complete"`
	PatientNotes    *string `json:"patient_notes"    validate:"omitempty,max=2000"`
}

// Start parses DatetimeStart. The request must already have passed validation.
func (r CreateBookingRequest) Start() time.Time {
	start, _ := time.Parse(time.RFC3339, r.DatetimeStart)

	return start
}

// UpdateBookingRequest carries the fields a general update may touch. Participants and
// doctor notes are not part of it.
type UpdateBookingRequest struct {
	Status          *string `json:"status"           validate:"omitempty,oneof=pending confirmed started complete"`
	DatetimeStart   *string `json:"datetime_start"   validate:"omitempty,rfc3339"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty"`
	PatientNotes    *string `json:"patient_notes"    validate:"omitempty,max=2000"`
}

// Reschedules reports whether the request moves or resizes the slot.
func (r UpdateBookingRequest) Reschedules() bool {
	return r.DatetimeStart != nil || r.DurationMinutes != nil
}

// Slot resolves the requested slot, keeping whatever the request leaves out from current.
func (r UpdateBookingRequest) Slot(current model.Booking) (time.Time, int) {
	start, duration := current.DatetimeStart, current.DurationMinutes

	if r.DatetimeStart != nil {
		start, _ = time.Parse(time.RFC3339, *r.DatetimeStart)
	}

	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}

	return start, duration
}

type UpdateDoctorNotesRequest struct {
	DoctorNotes *string `json:"doctor_notes" validate:"required,max=4000"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	PatientID       string  `json:"patient_id"`
	DoctorID        string  `json:"doctor_id"`
	Status          string  `json:"status"`
	DatetimeStart   string  `json:"datetime_start"`
	DatetimeEnd     string  `json:"datetime_end"`
	DurationMinutes int     `json:"duration_minutes"`
	PatientNotes    *string `json:"patient_notes"`
	DoctorNotes     *string `json:"doctor_notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	interval := model.Interval()

	r.ID = model.ID
	r.PatientID = model.PatientID
	r.DoctorID = model.DoctorID
	r.Status = string(model.Status)
	r.DatetimeStart = timezone.Format(interval.Start, constant.DateFormat)
	r.DatetimeEnd = timezone.Format(interval.End, constant.DateFormat)
	r.DurationMinutes = model.DurationMinutes
	r.PatientNotes = model.PatientNotes
	r.DoctorNotes = model.DoctorNotes
	r.Metadata.FromModel(model.Metadata)
}

func (r BookingResponse) Owners() (patientID, doctorID string) {
	return r.PatientID, r.DoctorID
}

// Redact drops the doctor notes unless showNotes is set.
func (r BookingResponse) Redact(showNotes bool) BookingResponse {
	if !showNotes {
		r.DoctorNotes = nil
	}

	return r
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Redact returns a copy with every booking redacted.
func (r GetBookingsResponse) Redact(showNotes bool) GetBookingsResponse {
	bookings := make([]BookingResponse, len(r.Bookings))
	for i, booking := range r.Bookings {
		bookings[i] = booking.Redact(showNotes)
	}

	r.Bookings = bookings

	return r
}

type DoctorNotesResponse struct {
	BookingID   string  `json:"booking_id"`
	DoctorNotes *string `json:"doctor_notes"`
}

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

// BookingEvent is published after a booking write commits. Notes are never included.
type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	Status          string    `json:"status"`
	DatetimeStart   time.Time `json:"datetime_start"`
	DurationMinutes int       `json:"duration_minutes"`
	Actor           string    `json:"actor"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking, actor string, now time.Time) BookingEvent {
	return BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		PatientID:       booking.PatientID,
		DoctorID:        booking.DoctorID,
		Status:          string(booking.Status),
		DatetimeStart:   booking.DatetimeStart,
		DurationMinutes: booking.DurationMinutes,
		Actor:           actor,
		OccurredAt:      now,
	}
}
