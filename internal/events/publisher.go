package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cart-offer/internal/offer"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// EventOfferCreated is the type of the event emitted for an accepted offer.
const EventOfferCreated = "offer.created"

// OfferEvent is the JSON payload published for offer lifecycle events.
type OfferEvent struct {
	Type             string    `json:"type"`
	OfferID          uuid.UUID `json:"offer_id"`
	RestaurantID     int       `json:"restaurant_id"`
	OfferType        string    `json:"offer_type"`
	OfferValue       int       `json:"offer_value"`
	CustomerSegments []string  `json:"customer_segment"`
	CreatedAt        time.Time `json:"created_at"`
}

// Publisher emits offer lifecycle events.
type Publisher interface {
	// OfferCreated publishes an event for an offer accepted into the store.
	OfferCreated(ctx context.Context, o offer.Offer) error

	// Close flushes and releases the publisher.
	Close() error
}

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements Publisher on a Kafka topic.
type kafkaPublisher struct {
	writer messageWriter
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
// Events for one restaurant share a partition.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger = logger.With().Str("component", "offer-event-publisher").Logger()
	logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("kafka publisher initialised")

	return newKafkaPublisher(writer, logger)
}

func newKafkaPublisher(writer messageWriter, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// OfferCreated publishes an offer.created event keyed by restaurant id.
func (p *kafkaPublisher) OfferCreated(ctx context.Context, o offer.Offer) error {
	event := NewOfferEvent(EventOfferCreated, o)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal offer event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(o.RestaurantID)),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish offer event %s: %w", o.ID, err)
	}

	p.logger.Debug().
		Str("offer_id", o.ID.String()).
		Int("restaurant_id", o.RestaurantID).
		Msg("offer event published")

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewOfferEvent builds the event payload for o.
func NewOfferEvent(eventType string, o offer.Offer) OfferEvent {
	segments := make([]string, len(o.Segments))
	for i, s := range o.Segments {
		segments[i] = string(s)
	}

	return OfferEvent{
		Type:             eventType,
		OfferID:          o.ID,
		RestaurantID:     o.RestaurantID,
		OfferType:        o.Type.String(),
		OfferValue:       o.Value,
		CustomerSegments: segments,
		CreatedAt:        o.CreatedAt,
	}
}

// nopPublisher discards events.
type nopPublisher struct{}

// NewNopPublisher returns a Publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) OfferCreated(context.Context, offer.Offer) error { return nil }
func (nopPublisher) Close() error                                   { return nil }
