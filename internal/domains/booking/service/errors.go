package service

import (
	"medimate/shared/caller"
	"medimate/shared/failure"
	"net/http"
)

var (
	ErrInvalidDuration   = failure.New(http.StatusBadRequest, "booking duration must be 15 or 30 minutes")
	ErrPastDateTime      = failure.New(http.StatusBadRequest, "bookings can only be made for a future date and time")
	ErrDoctorSlotTaken   = failure.New(http.StatusConflict, "the doctor already has a booking that overlaps this time")
	ErrPatientSlotTaken  = failure.New(http.StatusConflict, "the patient already has a booking that overlaps this time")
	ErrConflictOnPersist = failure.New(http.StatusConflict, "the slot was taken while the booking was being saved")
	ErrBookingNotFound   = failure.New(http.StatusNotFound, "booking not found")
	ErrUnknownPatient    = failure.New(http.StatusNotFound, "patient or doctor profile not found")
	ErrUnknownCaller     = caller.ErrAnonymous
)
