package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/cabshare/internal/domain/models"
	"github.com/Temutjin2k/cabshare/internal/domain/types"
	"github.com/Temutjin2k/cabshare/pkg/logger"
	wrap "github.com/Temutjin2k/cabshare/pkg/logger/wrapper"
	"github.com/Temutjin2k/cabshare/pkg/metrics"
	"github.com/Temutjin2k/cabshare/pkg/rabbit"
)

const (
	BookingExchange = "booking_topic"

	publishAttempts = 3
	publishBackoff  = 500 * time.Millisecond
)

// Client is the part of pkg/rabbit the publisher needs.
type Client interface {
	EnsureConnection(ctx context.Context) error
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

var _ Client = (*rabbit.RabbitMQ)(nil)

type BookingPublisher struct {
	client   Client
	exchange string
	backoff  time.Duration

	l logger.Logger
}

func NewBookingPublisher(client Client, log logger.Logger) *BookingPublisher {
	return &BookingPublisher{
		client:   client,
		exchange: BookingExchange,
		backoff:  publishBackoff,
		l:        log,
	}
}

// PublishBookingEvent sends the event to 'booking_topic'.
// Routing keys: booking.created.{kind}, booking.joined, booking.status.{status}.
func (p *BookingPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	ctx = wrap.WithBookingID(wrap.WithAction(ctx, types.ActionPublishEvent), event.BookingID.String())

	body, err := json.Marshal(event)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal booking event: %w", err))
	}

	key := RoutingKey(event)
	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: event.CorrelationID,
		MessageId:     event.BookingID.String(),
		Type:          event.EventType.String(),
		Timestamp:     event.Timestamp,
		Body:          body,
	}

	err = retry(publishAttempts, p.backoff, func() error {
		if err := p.client.EnsureConnection(ctx); err != nil {
			return fmt.Errorf("ensure connection: %w", err)
		}
		return p.client.Publish(ctx, p.exchange, key, msg)
	})
	metrics.RecordRabbitMQPublish(p.exchange, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish %s: %w", key, err))
	}

	p.l.Debug(ctx, "booking event published", "routing_key", key)
	return nil
}

// RoutingKey maps an event to its topic routing key, e.g. "booking.created.primary".
func RoutingKey(event models.BookingEvent) string {
	switch event.EventType {
	case types.EventBookingCreated:
		return "booking.created." + strings.ToLower(string(event.Kind))
	case types.EventSharedRideJoin:
		return "booking.joined"
	default:
		return "booking.status." + strings.ToLower(string(event.Status))
	}
}
