// Package access decides which callers may act on which bookings. Route level role lists
// live in the permissions package; the checks here depend on who owns the booking.
package access

import (
	"medimate/shared/caller"
	"medimate/shared/failure"
	"medimate/shared/role"
)

var (
	ErrBookForOthers    = failure.Forbidden("patients can only book for themselves")
	ErrNotYourBooking   = failure.Forbidden("you do not have permission to access this booking")
	ErrNotYourSchedule  = failure.Forbidden("you do not have permission to access these bookings")
	ErrPatientNotesOnly = failure.Forbidden("only patients and staff can write patient notes")
	ErrDoctorNotesOnly  = failure.Forbidden("only the booking's doctor can access doctor notes")
)

// Owned is anything that names the patient and doctor of a booking.
type Owned interface {
	Owners() (patientID, doctorID string)
}

type Gate struct{}

func New() Gate {
	return Gate{}
}

func (Gate) CanCreateFor(c caller.Caller, patientID string) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Patient:
		if c.UserID == patientID {
			return nil
		}

		return ErrBookForOthers
	case role.Doctor:
	}

	return failure.ForbiddenError
}

func (g Gate) CanView(c caller.Caller, booking Owned) error {
	return g.owns(c, booking)
}

func (g Gate) CanUpdate(c caller.Caller, booking Owned) error {
	return g.owns(c, booking)
}

func (Gate) CanWritePatientNotes(c caller.Caller) error {
	switch c.Role {
	case role.Staff, role.Patient:
		return nil
	case role.Doctor:
	}

	return ErrPatientNotesOnly
}

func (Gate) CanDelete(c caller.Caller, booking Owned) error {
	patientID, _ := booking.Owners()

	switch c.Role {
	case role.Staff:
		return nil
	case role.Patient:
		if c.UserID == patientID {
			return nil
		}

		return ErrNotYourBooking
	case role.Doctor:
	}

	return failure.ForbiddenError
}

func (Gate) CanListPatient(c caller.Caller, patientID string) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Doctor, role.Patient:
		if c.UserID == patientID {
			return nil
		}

		return ErrNotYourSchedule
	}

	return failure.ForbiddenError
}

func (Gate) CanListDoctor(c caller.Caller, doctorID string) error {
	switch c.Role {
	case role.Staff:
		return nil
	case role.Doctor:
		if c.UserID == doctorID {
			return nil
		}

		return ErrNotYourSchedule
	case role.Patient:
	}

	return failure.ForbiddenError
}

func (Gate) CanManageDoctorNotes(c caller.Caller, booking Owned) error {
	_, doctorID := booking.Owners()

	if c.Is(role.Doctor) && c.UserID == doctorID {
		return nil
	}

	return ErrDoctorNotesOnly
}

// SeesDoctorNotes reports whether responses for c may carry doctor notes.
func (Gate) SeesDoctorNotes(c caller.Caller) bool {
	return c.Is(role.Doctor)
}

func (Gate) owns(c caller.Caller, booking Owned) error {
	patientID, doctorID := booking.Owners()

	switch c.Role {
	case role.Staff:
		return nil
	case role.Doctor:
		if c.UserID == doctorID {
			return nil
		}
	case role.Patient:
		if c.UserID == patientID {
			return nil
		}
	}

	return ErrNotYourBooking
}
