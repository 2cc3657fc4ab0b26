package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deskhive/deskhive-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Publisher notifies downstream consumers of booking state changes. Calls are
// fire-and-forget: the booking engine never blocks on event delivery.
type Publisher interface {
	BookingCreated(booking *domain.Booking)
	BookingUpdated(booking *domain.Booking)
	BookingCanceled(booking *domain.Booking)
	BookingSucceeded(booking *domain.Booking)
}

type nopPublisher struct{}

func (nopPublisher) BookingCreated(*domain.Booking)   {}
func (nopPublisher) BookingUpdated(*domain.Booking)   {}
func (nopPublisher) BookingCanceled(*domain.Booking)  {}
func (nopPublisher) BookingSucceeded(*domain.Booking) {}

// Nop returns a Publisher that discards every event.
func Nop() Publisher { return nopPublisher{} }

// KafkaPublisher ships booking events to Kafka through a buffered channel and
// a single writer goroutine. When the buffer is full the event is dropped and
// logged rather than stalling the caller.
type KafkaPublisher struct {
	w        *kafka.Writer
	inbox    chan kafka.Message
	done     chan struct{}
	producer string
	log      zerolog.Logger
}

// NewKafkaPublisher starts the writer loop. buf is the inbox capacity.
func NewKafkaPublisher(brokers []string, producer string, buf int, log zerolog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		inbox:    make(chan kafka.Message, buf),
		done:     make(chan struct{}),
		producer: producer,
		log:      log,
	}
	go p.loop()
	return p
}

func (p *KafkaPublisher) loop() {
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			p.log.Error().Err(err).Str("topic", m.Topic).Msg("publish booking event")
		}
	}
	_ = p.w.Close()
	close(p.done)
}

// Close flushes buffered events and stops the writer loop.
func (p *KafkaPublisher) Close() {
	close(p.inbox)
	<-p.done
}

func (p *KafkaPublisher) BookingCreated(b *domain.Booking) {
	p.publish(TopicBookingCreated, EventBookingCreated, b)
}

func (p *KafkaPublisher) BookingUpdated(b *domain.Booking) {
	p.publish(TopicBookingUpdated, EventBookingUpdated, b)
}

func (p *KafkaPublisher) BookingCanceled(b *domain.Booking) {
	p.publish(TopicBookingCanceled, EventBookingCanceled, b)
}

func (p *KafkaPublisher) BookingSucceeded(b *domain.Booking) {
	p.publish(TopicBookingSucceeded, EventBookingSucceeded, b)
}

func (p *KafkaPublisher) publish(topic, eventType string, booking *domain.Booking) {
	env, err := NewBookingEnvelope(eventType, p.producer, booking)
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("encode booking event")
		return
	}
	value, err := json.Marshal(env)
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("encode booking event")
		return
	}
	select {
	case p.inbox <- kafka.Message{
		Topic: topic,
		Key:   PartitionKey(booking.SpaceID),
		Value: value,
		Time:  time.Now(),
	}:
	default:
		p.log.Warn().Str("type", eventType).Msg("event buffer full, dropping")
	}
}
