package repository_test

import (
	"context"
	"medimate/infras/otel/mocks"
	"medimate/infras/postgres"
	"medimate/shared/dto"
	"medimate/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Size  int    `db:"size"`
	Owner string `column:"email" db:"owner_email" table:"users"`
}

func newRepository(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.And(dto.Eq("widgets", "id", id))
}

func TestRepository_Insert_SkipsForeignColumns(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO widgets \(id, name, size\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("w1", "gear", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), widget{ID: "w1", Name: "gear", Size: 3, Owner: "ignored"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`UPDATE widgets SET name = \$1, size = \$2\s+WHERE \(widgets\.id = \$3\)`).
		WithArgs("cog", 5, "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), map[string]any{"size": 5, "name": "cog"}, byID("w1"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo, mock := newRepository(t)
	ctx := context.Background()

	_, err := repo.Delete(ctx, dto.And())
	assert.Error(t, err)

	_, err = repo.Update(ctx, map[string]any{"name": "x"}, dto.FilterGroup{})
	assert.Error(t, err)

	_, _, err = repo.Get(ctx, dto.And())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT widgets\.id, widgets\.name, widgets\.size, users\.email AS owner_email FROM widgets\s+WHERE \(widgets\.id = \$1\) LIMIT 1`).
		ExpectQuery().
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size", "owner_email"}).AddRow("w1", "gear", 3, "a@b.c"))

	mock.ExpectPrepare(`FROM widgets`).
		ExpectQuery().
		WithArgs("w2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size", "owner_email"}))

	found, ok, err := repo.Get(context.Background(), byID("w1"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.c", found.Owner)

	_, ok, err = repo.Get(context.Background(), byID("w2"))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_Paginates(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`FROM widgets\s+ORDER BY widgets\.name ASC LIMIT \$1 OFFSET \$2`).
		ExpectQuery().
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size", "owner_email"}).AddRow("w11", "axle", 1, ""))

	widgets, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "name", SortDir: "ASC"}, dto.And())

	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, "w11", widgets[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
