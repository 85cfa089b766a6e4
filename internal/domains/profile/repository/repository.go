package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"medimate/infras/otel"
	"medimate/infras/postgres"
	"medimate/internal/domains/profile/model"
	gDto "medimate/shared/dto"
	gRepo "medimate/shared/repository"
)

type Profile[T model.Profile] interface {
	Insert(ctx context.Context, model T) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (T, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl[T model.Profile] struct {
	gRepo.Repository[T]
}

// New returns the store for one profile kind. The table comes from the row type.
func New[T model.Profile](db *postgres.Connection, otel otel.Otel) Profile[T] {
	var zero T

	kind := zero.Kind()

	return &repositoryImpl[T]{
		Repository: gRepo.NewRepository[T](kind.EntityName(), kind.TableName(), model.FieldUserID, db, otel),
	}
}

func NewDoctor(db *postgres.Connection, otel otel.Otel) Profile[model.Doctor] {
	return New[model.Doctor](db, otel)
}

func NewPatient(db *postgres.Connection, otel otel.Otel) Profile[model.Patient] {
	return New[model.Patient](db, otel)
}

func NewStaff(db *postgres.Connection, otel otel.Otel) Profile[model.Staff] {
	return New[model.Staff](db, otel)
}
