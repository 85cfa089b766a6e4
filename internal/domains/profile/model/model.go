package model

import (
	"medimate/shared/model"
	"time"
)

// Kind names a profile table. The set is closed.
type Kind string

const (
	KindDoctor  Kind = "doctor"
	KindPatient Kind = "patient"
	KindStaff   Kind = "staff"
)

const (
	FieldUserID         = "user_id"
	FieldFirstName      = "first_name"
	FieldMiddleName     = "middle_name"
	FieldLastName       = "last_name"
	FieldShiftStartTime = "shift_start_time"
	FieldShiftEndTime   = "shift_end_time"
	FieldDateOfBirth    = "date_of_birth"
	FieldPhone          = "phone"
	FieldCreatedAt      = "created_at"
)

func (k Kind) TableName() string {
	switch k {
	case KindDoctor:
		return "doctor_profiles"
	case KindPatient:
		return "patient_profiles"
	case KindStaff:
		return "staff_profiles"
	}

	return ""
}

func (k Kind) EntityName() string {
	return string(k) + "_profile"
}

// SortColumns lists the columns a profile listing may be ordered by. The first is the default.
func (k Kind) SortColumns() []string {
	columns := []string{FieldCreatedAt, FieldFirstName, FieldLastName}

	switch k {
	case KindDoctor:
		columns = append(columns, FieldShiftStartTime)
	case KindPatient:
		columns = append(columns, FieldDateOfBirth)
	case KindStaff:
	}

	return columns
}

// Profile is implemented by the three profile rows. Each one is keyed by the owning user's id.
type Profile interface {
	Doctor | Patient | Staff
	Kind() Kind
	Key() string
	// Mutable returns the columns an update may rewrite, with their current values.
	Mutable() map[string]any
}

type Doctor struct {
	UserID         string    `db:"user_id"          json:"user_id"`
	FirstName      string    `db:"first_name"       json:"first_name"`
	LastName       string    `db:"last_name"        json:"last_name"`
	ShiftStartTime time.Time `db:"shift_start_time" json:"shift_start_time"`
	ShiftEndTime   time.Time `db:"shift_end_time"   json:"shift_end_time"`
	model.Metadata
}

func (Doctor) Kind() Kind { return KindDoctor }

func (d Doctor) Key() string { return d.UserID }

func (d Doctor) Mutable() map[string]any {
	return map[string]any{
		FieldFirstName:      d.FirstName,
		FieldLastName:       d.LastName,
		FieldShiftStartTime: d.ShiftStartTime,
		FieldShiftEndTime:   d.ShiftEndTime,
	}
}

type Patient struct {
	UserID      string    `db:"user_id"       json:"user_id"`
	FirstName   string    `db:"first_name"    json:"first_name"`
	MiddleName  *string   `db:"middle_name"   json:"middle_name,omitempty"`
	LastName    string    `db:"last_name"     json:"last_name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Phone       string    `db:"phone"         json:"phone"`
	model.Metadata
}

func (Patient) Kind() Kind { return KindPatient }

func (p Patient) Key() string { return p.UserID }

func (p Patient) Mutable() map[string]any {
	return map[string]any{
		FieldFirstName:   p.FirstName,
		FieldMiddleName:  p.MiddleName,
		FieldLastName:    p.LastName,
		FieldDateOfBirth: p.DateOfBirth,
		FieldPhone:       p.Phone,
	}
}

type Staff struct {
	UserID    string `db:"user_id"    json:"user_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name"  json:"last_name"`
	model.Metadata
}

func (Staff) Kind() Kind { return KindStaff }

func (s Staff) Key() string { return s.UserID }

func (s Staff) Mutable() map[string]any {
	return map[string]any{
		FieldFirstName: s.FirstName,
		FieldLastName:  s.LastName,
	}
}
