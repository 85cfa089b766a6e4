package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"medimate/infras/otel"
	"medimate/infras/postgres"
	"medimate/internal/domains/booking/model"
	"medimate/shared"
	"medimate/shared/constant"
	gDto "medimate/shared/dto"
	gRepo "medimate/shared/repository"
)

// ErrDuplicateStart is returned when a doctor already holds a booking with the same start.
var ErrDuplicateStart = errors.New("doctor already has a booking starting at this time")

// ErrUnknownParticipant is returned when the patient or doctor has no profile.
var ErrUnknownParticipant = errors.New("patient or doctor profile does not exist")

// OwnerAxis selects which participant column bookings are grouped by.
type OwnerAxis int

const (
	AxisDoctor OwnerAxis = iota
	AxisPatient
)

func (a OwnerAxis) Column() string {
	switch a {
	case AxisDoctor:
		return model.FieldDoctorID
	case AxisPatient:
		return model.FieldPatientID
	}

	return ""
}

func (a OwnerAxis) String() string {
	switch a {
	case AxisDoctor:
		return "doctor"
	case AxisPatient:
		return "patient"
	}

	return "unknown"
}

type Booking interface {
	FindByOwner(ctx context.Context, axis OwnerAxis, ownerKey string) ([]model.Booking, error)
	FindByID(ctx context.Context, id string) (model.Booking, bool, error)
	Create(ctx context.Context, booking model.Booking) error
	UpdateByID(ctx context.Context, id string, fields map[string]any) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// OwnerFilter matches every booking held by ownerKey on axis.
func OwnerFilter(axis OwnerAxis, ownerKey string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.TableName, axis.Column(), ownerKey))
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// FindByOwner returns all bookings on one axis, earliest first. Nothing is paged or cached.
func (r *repositoryImpl) FindByOwner(ctx context.Context, axis OwnerAxis, ownerKey string) ([]model.Booking, error) {
	params := gDto.QueryParams{SortBy: model.FieldDatetimeStart, SortDir: gDto.SortDirAsc}

	bookings, err := r.GetAll(ctx, params, OwnerFilter(axis, ownerKey))
	if err != nil {
		return nil, fmt.Errorf("failed to find %s bookings: %w", axis, err)
	}

	return bookings, nil
}

// FindByID reports found as false for ids that are not UUIDs, since no booking can carry one.
func (r *repositoryImpl) FindByID(ctx context.Context, id string) (model.Booking, bool, error) {
	booking, found, err := r.Get(ctx, byID(id))
	if shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		return model.Booking{}, false, nil
	}

	return booking, found, err //nolint:wrapcheck
}

func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) error {
	err := r.Insert(ctx, booking)

	switch {
	case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
		return ErrDuplicateStart
	case shared.IsPqError(err, constant.PqErrorCodeFkViolation):
		return ErrUnknownParticipant
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateByID(ctx context.Context, id string, fields map[string]any) (bool, error) {
	updated, err := r.Update(ctx, fields, byID(id))

	switch {
	case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
		return false, ErrDuplicateStart
	case shared.IsPqError(err, constant.PqErrorCodeInvalidText):
		return false, nil
	}

	return updated > 0, err //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := r.Delete(ctx, byID(id))
	if shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		return false, nil
	}

	return deleted > 0, err //nolint:wrapcheck
}
