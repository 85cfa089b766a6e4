// Package access holds the owner rules for profiles. Route level role lists live in permissions.
package access

import (
	"context"
	"medimate/shared/caller"
	"medimate/shared/failure"
	"medimate/shared/role"
)

var (
	ErrNotYourProfile = failure.Forbidden("you do not have permission to access this profile")
	ErrNotYourPatient = failure.Forbidden("you can only view patients who booked with you")
)

// Linker reports whether a doctor has a booking with a patient.
type Linker interface {
	Linked(ctx context.Context, doctorID, patientID string) (bool, error)
}

func self(c caller.Caller, userID string) error {
	if c.UserID == userID {
		return nil
	}

	return ErrNotYourProfile
}

// CanViewDoctor lets staff and patients browse doctors. Doctors see their own profile only.
func CanViewDoctor(c caller.Caller, userID string) error {
	switch c.Role {
	case role.Staff, role.Patient:
		return nil
	case role.Doctor:
		return self(c, userID)
	}

	return failure.ForbiddenError
}

func CanEditDoctor(c caller.Caller, userID string) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Doctor:
		return self(c, userID)
	case role.Patient:
	}

	return failure.ForbiddenError
}

// CanViewPatient admits staff, the patient, and any doctor the patient has booked.
func CanViewPatient(ctx context.Context, c caller.Caller, userID string, linker Linker) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Patient:
		return self(c, userID)
	case role.Doctor:
		linked, err := linker.Linked(ctx, c.UserID, userID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if linked {
			return nil
		}

		return ErrNotYourPatient
	}

	return failure.ForbiddenError
}

func CanEditPatient(c caller.Caller, userID string) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Patient:
		return self(c, userID)
	case role.Doctor:
	}

	return failure.ForbiddenError
}
