package dto_test

import (
	"medimate/shared/constant"
	"medimate/shared/dto"
	"medimate/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(24 * time.Hour)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "staff-1",
		ModifiedBy: "doctor-1",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "staff-1", metadata.CreatedBy)
	assert.Equal(t, "doctor-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			url:      "/bookings?page=2&limit=20&sort_by=datetime_start&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "datetime_start", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults applied",
			url:            "/bookings",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "garbage ignored",
			url:      "/bookings?page=-1&limit=abc&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.QueryParams{}
			params.FromRequest(httptest.NewRequest("GET", tt.url, nil), tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "password; DROP TABLE users"}
	params.RestrictSort("datetime_start", "created_at")

	assert.Equal(t, "datetime_start", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)

	params = dto.QueryParams{SortBy: "created_at", SortDir: dto.SortDirAsc}
	params.RestrictSort("datetime_start", "created_at")

	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, dto.SortDirAsc, params.SortDir)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "eq and not eq on the same column",
			group:     dto.And(dto.Eq("bookings", "doctor_id", "d1"), dto.NotEq("bookings", "id", "b1")),
			wantWhere: "(bookings.doctor_id = :doctor_id AND bookings.id != :not_id)",
			wantArgs:  map[string]any{"doctor_id": "d1", "not_id": "b1"},
		},
		{
			name: "nested or group",
			group: dto.And(
				dto.Eq("", "role", "doctor"),
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
						dto.Filter{Field: "doctor_notes", Operator: dto.FilterIsNull},
					},
				},
			),
			wantWhere: "(role = :role AND (status IN (:status_0, :status_1) OR doctor_notes IS NULL))",
			wantArgs:  map[string]any{"role": "doctor", "status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "empty in list matches nothing",
			group:     dto.And(dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}}),
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
