package service_test

import (
	bookingMocks "medimate/internal/domains/booking/mocks"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/model/dto"
	"medimate/internal/domains/booking/repository"
	"medimate/internal/domains/booking/service"
	"medimate/shared/role"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestValidator_ValidateAndBuildBooking_Order(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	v := service.NewValidator(repo, clock)
	ctx := as(patient1, role.Patient)

	// duration is rejected before the start time or the store is looked at
	_, err := v.ValidateAndBuildBooking(ctx, dto.CreateBookingRequest{PatientID: patient1, DoctorID: doctor1, DatetimeStart: rfc(now.Add(-time.Hour)), DurationMinutes: intPtr(45)})
	assert.ErrorIs(t, err, service.ErrInvalidDuration)

	// the doctor axis is checked before the patient axis
	repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctor1).Return([]model.Booking{booked("b1", patient9, doctor1, at(10, 0), 30)}, nil)

	_, err = v.ValidateAndBuildBooking(ctx, dto.CreateBookingRequest{PatientID: patient1, DoctorID: doctor1, DatetimeStart: rfc(at(10, 0)), DurationMinutes: intPtr(15)})
	assert.ErrorIs(t, err, service.ErrDoctorSlotTaken)
}

func TestValidator_ValidateReschedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	v := service.NewValidator(repo, clock)
	existing := booked("b1", patient1, doctor1, at(10, 0), 30)

	assert.ErrorIs(t, v.ValidateReschedule(as(patient1, role.Patient), existing, now, 30), service.ErrPastDateTime)

	repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctor1).Return([]model.Booking{existing}, nil)
	repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisPatient, patient1).Return([]model.Booking{existing}, nil)

	assert.NoError(t, v.ValidateReschedule(as(patient1, role.Patient), existing, at(10, 15), 15))
}
