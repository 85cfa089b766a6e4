package model_test

import (
	"medimate/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := model.NewInterval(at(10, 0), 30)

	tests := []struct {
		name  string
		other model.Interval
		want  bool
	}{
		{name: "identical", other: model.NewInterval(at(10, 0), 30), want: true},
		{name: "starts inside", other: model.NewInterval(at(10, 15), 30), want: true},
		{name: "ends inside", other: model.NewInterval(at(9, 45), 30), want: true},
		{name: "contains", other: model.NewInterval(at(9, 45), 60), want: true},
		{name: "contained", other: model.NewInterval(at(10, 5), 15), want: true},
		{name: "touches end", other: model.NewInterval(at(10, 30), 30), want: false},
		{name: "touches start", other: model.NewInterval(at(9, 30), 30), want: false},
		{name: "far apart", other: model.NewInterval(at(14, 0), 15), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestBooking_Interval(t *testing.T) {
	booking := model.Booking{DatetimeStart: at(9, 0), DurationMinutes: 15}

	interval := booking.Interval()

	assert.Equal(t, at(9, 0), interval.Start)
	assert.Equal(t, at(9, 15), interval.End)
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus(" Confirmed ")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, status)

	_, err = model.ParseStatus("cancelled")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestIsAllowedDuration(t *testing.T) {
	assert.True(t, model.IsAllowedDuration(15))
	assert.True(t, model.IsAllowedDuration(30))
	assert.False(t, model.IsAllowedDuration(45))
	assert.False(t, model.IsAllowedDuration(0))
}
