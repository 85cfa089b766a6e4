package service_test

import (
	"context"
	"errors"
	bookingMocks "medimate/internal/domains/booking/mocks"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/repository"
	"medimate/internal/domains/booking/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestOverlapChecker_HasConflict(t *testing.T) {
	held := []model.Booking{
		booked("b1", patient1, doctor1, at(10, 0), 30),
		booked("b2", patient2, doctor1, at(11, 0), 15),
	}

	tests := []struct {
		name      string
		candidate model.Interval
		exclude   string
		stored    []model.Booking
		storeErr  error
		want      bool
		wantErr   bool
	}{
		{name: "no bookings", candidate: model.NewInterval(at(10, 0), 30)},
		{name: "inside an existing slot", candidate: model.NewInterval(at(10, 15), 15), stored: held, want: true},
		{name: "straddling the end", candidate: model.NewInterval(at(10, 15), 30), stored: held, want: true},
		{name: "touching the end", candidate: model.NewInterval(at(10, 30), 30), stored: held},
		{name: "touching the start", candidate: model.NewInterval(at(9, 30), 30), stored: held},
		{name: "covering a shorter slot", candidate: model.NewInterval(at(10, 45), 30), stored: held, want: true},
		{name: "only overlaps the excluded booking", candidate: model.NewInterval(at(10, 15), 15), exclude: "b1", stored: held},
		{name: "excluded but still overlaps another", candidate: model.NewInterval(at(10, 15), 15), exclude: "b2", stored: held, want: true},
		{name: "store failure", candidate: model.NewInterval(at(10, 0), 30), storeErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)

			repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctor1).Return(tt.stored, tt.storeErr)

			got, err := service.NewOverlapChecker(repo).HasConflict(context.Background(), repository.AxisDoctor, doctor1, tt.candidate, tt.exclude)

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.storeErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
