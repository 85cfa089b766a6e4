package event_test

import (
	"context"
	"encoding/json"
	"medimate/infras/otel/mocks"
	"medimate/internal/domains/booking/model/dto"
	"medimate/internal/handlers/event"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Handle(t *testing.T) {
	consumer := event.NewBooking(mocks.NewOtel())

	payload, err := json.Marshal(dto.BookingEvent{
		Type:            dto.EventBookingCreated,
		BookingID:       "b1",
		PatientID:       "p1",
		DoctorID:        "d1",
		Status:          "pending",
		DatetimeStart:   time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.NoError(t, consumer.Handle(context.Background(), kafkaGo.Message{Key: []byte("b1"), Value: payload}))
	assert.Error(t, consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte("{not json")}))
}
