package kafka_test

import (
	"context"
	"medimate/config"
	"medimate/infras/kafka"
	"medimate/infras/otel/mocks"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	BookingID string `json:"booking_id"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "b1", Value: payload{BookingID: "b1"}}

	raw, err := msg.ToKafkaMessage()
	assert.NoError(t, err)
	assert.Equal(t, []byte("b1"), raw.Key)
	assert.JSONEq(t, `{"booking_id":"b1"}`, string(raw.Value))

	decoded, err := kafka.Decode[payload](raw)
	assert.NoError(t, err)
	assert.Equal(t, "b1", decoded.BookingID)

	_, err = kafka.Decode[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}
	client := kafka.New(cfg, mocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "bookings", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.NoError(t, client.Consume(ctx, "", "bookings", func(context.Context, kafkaGo.Message) error { return nil }))
}
