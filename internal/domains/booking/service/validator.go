package service

import (
	"context"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/model/dto"
	"medimate/internal/domains/booking/repository"
	"medimate/shared/caller"
	gModel "medimate/shared/model"
	"medimate/shared/timezone"
	"medimate/shared/validator"
	"time"

	"github.com/google/uuid"
)

// Validator enforces the temporal and overlap rules on a booking before it is written.
// It never looks at roles; requests reach it already authorized.
type Validator struct {
	overlap OverlapChecker
	clock   timezone.Clock
}

// NewValidator builds a Validator. A nil clock means timezone.Now.
func NewValidator(repo repository.Booking, clock timezone.Clock) *Validator {
	if clock == nil {
		clock = timezone.Now
	}

	return &Validator{
		overlap: NewOverlapChecker(repo),
		clock:   clock,
	}
}

// ValidateAndBuildBooking runs the checks in order and stops at the first failure.
// The returned booking is not yet persisted.
func (v *Validator) ValidateAndBuildBooking(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	start := req.Start()

	if err := v.checkSlot(ctx, req.PatientID, req.DoctorID, start, *req.DurationMinutes, ""); err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if parsed, err := model.ParseStatus(req.Status); err == nil {
		status = parsed
	}

	return model.Booking{
		ID:              uuid.NewString(),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Status:          status,
		DatetimeStart:   start,
		DurationMinutes: *req.DurationMinutes,
		PatientNotes:    req.PatientNotes,
		DoctorNotes:     nil,
		Metadata:        gModel.NewMetadata(caller.Actor(ctx), v.clock()),
	}, nil
}

// ValidateReschedule re-runs the duration, time and overlap checks for a new slot of existing.
// existing itself is ignored when looking for overlaps.
func (v *Validator) ValidateReschedule(ctx context.Context, existing model.Booking, start time.Time, durationMinutes int) error {
	return v.checkSlot(ctx, existing.PatientID, existing.DoctorID, start, durationMinutes, existing.ID)
}

func (v *Validator) checkSlot(ctx context.Context, patientID, doctorID string, start time.Time, durationMinutes int, excludeID string) error {
	if !model.IsAllowedDuration(durationMinutes) {
		return ErrInvalidDuration
	}

	if !start.After(v.clock()) {
		return ErrPastDateTime
	}

	candidate := model.NewInterval(start, durationMinutes)

	taken, err := v.overlap.HasConflict(ctx, repository.AxisDoctor, doctorID, candidate, excludeID)
	if err != nil {
		return err
	}

	if taken {
		return ErrDoctorSlotTaken
	}

	taken, err = v.overlap.HasConflict(ctx, repository.AxisPatient, patientID, candidate, excludeID)
	if err != nil {
		return err
	}

	if taken {
		return ErrPatientSlotTaken
	}

	return nil
}
