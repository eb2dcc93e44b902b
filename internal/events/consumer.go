package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ReservationUpdater advances reservations in response to carrier status
// events. Implemented by the reservation application service.
type ReservationUpdater interface {
	ConfirmReservation(ctx context.Context, id uuid.UUID) error
	CompleteReservation(ctx context.Context, id uuid.UUID) error
}

// StatusConsumer listens to carrier status events and applies them to
// reservations.
type StatusConsumer struct {
	reader  *kafkago.Reader
	updater ReservationUpdater
	logger  *zap.Logger
}

// NewStatusConsumer creates a consumer on the reservation.status topic.
func NewStatusConsumer(brokers []string, groupID string, updater ReservationUpdater, logger *zap.Logger) *StatusConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   TopicReservationStatus,
	})
	return &StatusConsumer{reader: reader, updater: updater, logger: logger}
}

// Start consumes status events until the context is cancelled.
func (c *StatusConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		if err := c.handleMessage(ctx, msg); err != nil {
			// Leave the message uncommitted so it is retried.
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit offset", zap.Error(err))
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *StatusConsumer) Close() error {
	return c.reader.Close()
}

func (c *StatusConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var event CloudEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("failed to parse cloud event from status topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	var statusEvent ReservationStatusEvent
	if err := event.ParseData(&statusEvent); err != nil {
		c.logger.Error("failed to parse reservation status event", zap.Error(err))
		return nil
	}

	switch event.Type {
	case ReservationConfirmed:
		return c.apply(ctx, statusEvent, c.updater.ConfirmReservation)
	case ReservationCompleted:
		return c.apply(ctx, statusEvent, c.updater.CompleteReservation)
	default:
		c.logger.Debug("ignoring unhandled status event type",
			zap.String("type", event.Type),
		)
		return nil
	}
}

func (c *StatusConsumer) apply(ctx context.Context, evt ReservationStatusEvent, fn func(context.Context, uuid.UUID) error) error {
	if err := fn(ctx, evt.ReservationID); err != nil {
		c.logger.Error("failed to apply carrier status event",
			zap.String("reservation_id", evt.ReservationID.String()),
			zap.Error(err),
		)
		return err
	}
	c.logger.Info("applied carrier status event",
		zap.String("reservation_id", evt.ReservationID.String()),
		zap.String("carrier", evt.Carrier),
	)
	return nil
}
