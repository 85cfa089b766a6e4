package dto

import (
	"errors"
	"medimate/internal/domains/profile/model"
	"medimate/shared"
	"medimate/shared/failure"
	gModel "medimate/shared/model"
	"medimate/shared/timezone"
	"strings"
	"time"
)

var (
	ErrShiftOrder = failure.BadRequest(errors.New("shift_end_time must be after shift_start_time"))
	ErrBirthDate  = failure.BadRequest(errors.New("date_of_birth must be in the past"))
)

// Creator builds a new profile row for userID.
type Creator[T model.Profile] interface {
	ToModel(userID, actor string) (T, error)
}

// Patcher merges a partial update into the current row, stamps the modification and
// re-checks cross-field rules.
type Patcher[T model.Profile] interface {
	Patch(current T, actor string, now time.Time) (T, error)
}

type CreateDoctorRequest struct {
	UserID         string `json:"user_id"          validate:"required,uuid"`
	FirstName      string `json:"first_name"       validate:"required,max=100"`
	LastName       string `json:"last_name"        validate:"required,max=100"`
	ShiftStartTime string `json:"shift_start_time" validate:"required,rfc3339"`
	ShiftEndTime   string `json:"shift_end_time"   validate:"required,rfc3339"`
}

func (r CreateDoctorRequest) ToModel(userID, actor string) (model.Doctor, error) {
	start, end, err := parseShift(r.ShiftStartTime, r.ShiftEndTime)
	if err != nil {
		return model.Doctor{}, err
	}

	return model.Doctor{
		UserID:         userID,
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		ShiftStartTime: start,
		ShiftEndTime:   end,
		Metadata:       gModel.NewMetadata(actor, timezone.Now()),
	}, nil
}

type UpdateDoctorRequest struct {
	FirstName      *string `json:"first_name"       validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name"        validate:"omitempty,min=1,max=100"`
	ShiftStartTime *string `json:"shift_start_time" validate:"omitempty,rfc3339"`
	ShiftEndTime   *string `json:"shift_end_time"   validate:"omitempty,rfc3339"`
}

func (r UpdateDoctorRequest) Patch(current model.Doctor, actor string, now time.Time) (model.Doctor, error) {
	current.Touch(actor, now)
	applyString(&current.FirstName, r.FirstName)
	applyString(&current.LastName, r.LastName)

	if r.ShiftStartTime != nil {
		current.ShiftStartTime, _ = time.Parse(time.RFC3339, *r.ShiftStartTime)
	}

	if r.ShiftEndTime != nil {
		current.ShiftEndTime, _ = time.Parse(time.RFC3339, *r.ShiftEndTime)
	}

	if !current.ShiftEndTime.After(current.ShiftStartTime) {
		return current, ErrShiftOrder
	}

	return current, nil
}

type CreatePatientRequest struct {
	FirstName   string  `json:"first_name"    validate:"required,max=100"`
	MiddleName  *string `json:"middle_name"   validate:"omitempty,max=100"`
	LastName    string  `json:"last_name"     validate:"required,max=100"`
	DateOfBirth string  `json:"date_of_birth" validate:"required,pastdate"`
	Phone       string  `json:"phone"         validate:"required,e164"`
}

func (r CreatePatientRequest) ToModel(userID, actor string) (model.Patient, error) {
	dob, err := parseBirthDate(r.DateOfBirth)
	if err != nil {
		return model.Patient{}, err
	}

	return model.Patient{
		UserID:      userID,
		FirstName:   strings.TrimSpace(r.FirstName),
		MiddleName:  trimmed(r.MiddleName),
		LastName:    strings.TrimSpace(r.LastName),
		DateOfBirth: dob,
		Phone:       r.Phone,
		Metadata:    gModel.NewMetadata(actor, timezone.Now()),
	}, nil
}

type UpdatePatientRequest struct {
	FirstName   *string `json:"first_name"    validate:"omitempty,min=1,max=100"`
	MiddleName  *string `json:"middle_name"   validate:"omitempty,max=100"`
	LastName    *string `json:"last_name"     validate:"omitempty,min=1,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,pastdate"`
	Phone       *string `json:"phone"         validate:"omitempty,e164"`
}

func (r UpdatePatientRequest) Patch(current model.Patient, actor string, now time.Time) (model.Patient, error) {
	current.Touch(actor, now)
	applyString(&current.FirstName, r.FirstName)
	applyString(&current.LastName, r.LastName)
	applyString(&current.Phone, r.Phone)

	if r.MiddleName != nil {
		current.MiddleName = trimmed(r.MiddleName)
	}

	if r.DateOfBirth != nil {
		dob, err := parseBirthDate(*r.DateOfBirth)
		if err != nil {
			return current, err
		}

		current.DateOfBirth = dob
	}

	return current, nil
}

type CreateStaffRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
}

func (r CreateStaffRequest) ToModel(userID, actor string) (model.Staff, error) {
	return model.Staff{
		UserID:    userID,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Metadata:  gModel.NewMetadata(actor, timezone.Now()),
	}, nil
}

type UpdateStaffRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1,max=100"`
}

func (r UpdateStaffRequest) Patch(current model.Staff, actor string, now time.Time) (model.Staff, error) {
	current.Touch(actor, now)
	applyString(&current.FirstName, r.FirstName)
	applyString(&current.LastName, r.LastName)

	return current, nil
}

type CreateProfileResponse struct {
	UserID string `json:"user_id"`
}

type ListResponse[T model.Profile] struct {
	Profiles  []T `json:"profiles"`
	TotalPage int `json:"total_page"`
	TotalData int `json:"total_data"`
}

func (r *ListResponse[T]) FromModels(models []T, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Profiles = models
}

func parseShift(startValue, endValue string) (start, end time.Time, err error) {
	if start, err = time.Parse(time.RFC3339, startValue); err != nil {
		return start, end, failure.BadRequest(err) //nolint:wrapcheck
	}

	if end, err = time.Parse(time.RFC3339, endValue); err != nil {
		return start, end, failure.BadRequest(err) //nolint:wrapcheck
	}

	if !end.After(start) {
		return start, end, ErrShiftOrder
	}

	return start, end, nil
}

func parseBirthDate(value string) (time.Time, error) {
	dob, err := timezone.Parse(time.DateOnly, value)
	if err != nil {
		return dob, failure.BadRequest(err) //nolint:wrapcheck
	}

	if !dob.Before(timezone.Now()) {
		return dob, ErrBirthDate
	}

	return dob, nil
}

func applyString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}

	out := strings.TrimSpace(*value)
	if out == "" {
		return nil
	}

	return &out
}
