package booking_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"medimate/config"
	kafkaMocks "medimate/infras/kafka/mocks"
	"medimate/infras/otel/mocks"
	bookingMocks "medimate/internal/domains/booking/mocks"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/repository"
	"medimate/internal/domains/booking/service"
	"medimate/internal/handlers/booking"
	cacheMocks "medimate/shared/cache/mocks"
	"medimate/shared/caller"
	"medimate/shared/role"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2030, 3, 4, 8, 0, 0, 0, time.UTC)

const (
	patientID       = "0b6f3c1e-5a2d-4c8e-9f10-1a2b3c4d5e01"
	otherPatientID  = "0b6f3c1e-5a2d-4c8e-9f10-1a2b3c4d5e02"
	bookedPatientID = "0b6f3c1e-5a2d-4c8e-9f10-1a2b3c4d5e09"
	doctorID        = "7d2e9a40-3b1f-4e6a-8c55-6f7a8b9c0d01"
)

func createBody(patient, start string, duration int) string {
	return fmt.Sprintf(`{"patient_id":%q,"doctor_id":%q,"datetime_start":%q,"duration_minutes":%d}`, patient, doctorID, start, duration)
}

type fixture struct {
	router http.Handler
	repo   *bookingMocks.MockBooking
	cache  *cacheMocks.MockRedisCache
}

// newFixture serves the booking routes as the given caller, in front of the real service.
func newFixture(t *testing.T, current caller.Caller) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	kafka := kafkaMocks.NewMockClient(ctrl)

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.NewWithClock(repo, &config.Config{}, cache, kafka, mocks.NewOtel(), func() time.Time { return now })
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(caller.WithCaller(r.Context(), current)))
		})
	})
	handler.Router(router)

	return fixture{router: router, repo: repo, cache: cache}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func TestCreateBooking(t *testing.T) {
	patient := caller.Caller{UserID: patientID, Role: role.Patient}

	tests := []struct {
		name      string
		body      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created",
			body: createBody(patientID, "2030-03-04T10:30:00Z", 30),
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctorID).Return(nil, nil)
				f.repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisPatient, patientID).Return(nil, nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "doctor slot taken",
			body: createBody(patientID, "2030-03-04T10:15:00Z", 30),
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctorID).Return([]model.Booking{{
					ID: "b1", PatientID: bookedPatientID, DoctorID: doctorID, DatetimeStart: time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), DurationMinutes: 30,
				}}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "in the past",
			body:     createBody(patientID, "2030-03-04T07:59:00Z", 15),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed start",
			body:     createBody(patientID, "tomorrow", 15),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "doctor id is not a uuid",
			body:     `{"patient_id":"` + patientID + `","doctor_id":"d1","datetime_start":"2030-03-04T10:30:00Z","duration_minutes":30}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero duration",
			body:     createBody(patientID, "2030-03-04T10:30:00Z", 0),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "for another patient",
			body:     createBody(otherPatientID, "2030-03-04T10:30:00Z", 30),
			wantCode: http.StatusForbidden,
		},
		{
			name: "store down",
			body: createBody(patientID, "2030-03-04T10:30:00Z", 30),
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByOwner(gomock.Any(), repository.AxisDoctor, doctorID).Return(nil, errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, patient)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(http.MethodPost, "/bookings", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateBooking_ResponseBody(t *testing.T) {
	f := newFixture(t, caller.Caller{UserID: "s1", Role: role.Staff})

	f.repo.EXPECT().FindByOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/bookings", createBody(patientID, "2030-03-04T10:30:00Z", 15))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			ID          string  `json:"id"`
			Status      string  `json:"status"`
			DatetimeEnd string  `json:"datetime_end"`
			DoctorNotes *string `json:"doctor_notes"`
		} `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.ID)
	assert.Equal(t, string(model.StatusPending), body.Data.Status)

	end, err := time.Parse(time.RFC3339, body.Data.DatetimeEnd)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2030, 3, 4, 10, 45, 0, 0, time.UTC)))
	assert.Nil(t, body.Data.DoctorNotes)
}

func TestGetBookings_UnknownStatus(t *testing.T) {
	f := newFixture(t, caller.Caller{UserID: "s1", Role: role.Staff})

	rec := f.do(http.MethodGet, "/bookings?status=cancelled", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookingByID(t *testing.T) {
	notes := "follow up in two weeks"
	stored := model.Booking{
		ID: "b1", PatientID: patientID, DoctorID: doctorID, Status: model.StatusConfirmed,
		DatetimeStart: time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), DurationMinutes: 30, DoctorNotes: &notes,
	}

	tests := []struct {
		name      string
		caller    caller.Caller
		wantCode  int
		wantNotes bool
	}{
		{name: "owning patient sees no notes", caller: caller.Caller{UserID: patientID, Role: role.Patient}, wantCode: http.StatusOK},
		{name: "booking's doctor sees notes", caller: caller.Caller{UserID: doctorID, Role: role.Doctor}, wantCode: http.StatusOK, wantNotes: true},
		{name: "other patient", caller: caller.Caller{UserID: otherPatientID, Role: role.Patient}, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.caller)

			f.cache.EXPECT().Get(gomock.Any(), "booking:get:b1", gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().FindByID(gomock.Any(), "b1").Return(stored, true, nil)

			rec := f.do(http.MethodGet, "/bookings/b1", "")
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode != http.StatusOK {
				return
			}

			assert.Equal(t, tt.wantNotes, strings.Contains(rec.Body.String(), notes))
		})
	}
}

func TestGetBookingByID_NotFound(t *testing.T) {
	f := newFixture(t, caller.Caller{UserID: "s1", Role: role.Staff})

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().FindByID(gomock.Any(), "missing").Return(model.Booking{}, false, nil)

	rec := f.do(http.MethodGet, "/bookings/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDoctorNotes(t *testing.T) {
	notes := "repeat ECG"
	stored := model.Booking{
		ID: "b1", PatientID: patientID, DoctorID: doctorID, Status: model.StatusStarted,
		DatetimeStart: time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), DurationMinutes: 15, DoctorNotes: &notes,
	}

	tests := []struct {
		name     string
		caller   caller.Caller
		wantCode int
	}{
		{name: "booking's doctor", caller: caller.Caller{UserID: doctorID, Role: role.Doctor}, wantCode: http.StatusOK},
		{name: "owning patient", caller: caller.Caller{UserID: patientID, Role: role.Patient}, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.caller)

			f.cache.EXPECT().Get(gomock.Any(), "booking:get:b1", gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().FindByID(gomock.Any(), "b1").Return(stored, true, nil)

			rec := f.do(http.MethodGet, "/bookings/b1/doctorNotes", "")
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), notes)
			}
		})
	}
}
