// Package event holds the consumers the worker runs against Kafka topics.
package event

import (
	"context"
	"fmt"
	"medimate/infras/kafka"
	"medimate/infras/otel"
	"medimate/internal/domains/booking/model/dto"
	"medimate/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Booking struct {
	otel     otel.Otel
	received metric.Int64Counter
}

func NewBooking(otl otel.Otel) Booking {
	return Booking{
		otel:     otl,
		received: otel.Int64Counter(otl.Meter("medimate/worker"), "booking.events.received", "Booking events consumed from Kafka"),
	}
}

// Handle records one booking event. Malformed payloads are reported and skipped.
func (b Booking) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[dto.BookingEvent](message)
	if err != nil {
		return fmt.Errorf("failed to decode booking event at offset %d: %w", message.Offset, err)
	}

	scope.SetAttributes(map[string]any{
		"booking.id":   event.BookingID,
		"booking.type": event.Type,
	})

	b.received.Add(ctx, 1, metric.WithAttributes(attribute.String("type", event.Type)))

	log.Info().
		Str("type", event.Type).
		Str("bookingID", event.BookingID).
		Str("doctorID", event.DoctorID).
		Str("patientID", event.PatientID).
		Str("status", event.Status).
		Time("datetimeStart", event.DatetimeStart).
		Str("actor", event.Actor).
		Msg("booking event received")

	return nil
}
