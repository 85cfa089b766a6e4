package shared_test

import (
	"context"
	"errors"
	"medimate/shared"
	"medimate/shared/cache/mocks"
	"medimate/shared/constant"
	"medimate/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: &yes},
		{input: "1", expected: &yes},
		{input: "F", expected: &no},
		{input: "nope", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(100, 0))
	assert.Equal(t, 10, shared.CalculateTotalPage(100, 10))
	assert.Equal(t, 11, shared.CalculateTotalPage(101, 10))
}

func TestTransformFields(t *testing.T) {
	notes := ""

	type update struct {
		Status       string  `db:"status"`
		PatientNotes *string `db:"patient_notes"`
		Duration     int     `db:"duration_minutes"`
		Ignored      string
	}

	fields := shared.TransformFields(update{Status: "confirmed", PatientNotes: &notes, Ignored: "x"}, "staff-1")

	assert.Equal(t, "confirmed", fields["status"])
	assert.Equal(t, "", fields["patient_notes"])
	assert.NotContains(t, fields, "duration_minutes")
	assert.NotContains(t, fields, "Ignored")
	assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b1", "id", "bookings")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:b1", shared.BuildCacheKey("booking:get", "b1"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	doctor := shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByID("d1", "doctor_id", "bookings"))
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByID("d2", "doctor_id", "bookings"))

	assert.NotEqual(t, doctor, other)
	assert.Contains(t, doctor, "booking:gets:page=1:limit=10")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redis := mocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)
	redis.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redis, "booking:gets")
	shared.InvalidateCaches(context.Background(), redis, "booking:count")
}
