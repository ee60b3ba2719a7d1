// Package kafka publishes committed stock movements to a Kafka topic so
// downstream consumers (analytics, replenishment planning, order tracking)
// can follow the warehouse in near real time. Publishing is best effort;
// the ledger row is the durable record and consumers can always catch up
// from it.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"warehousing/internal/core/domain/model/inventory"
)

// movementMessage is the wire format for one published stock movement.
type movementMessage struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	WarehouseID    string    `json:"warehouse_id"`
	Kind           string    `json:"kind"`
	QuantityDelta  int       `json:"quantity_delta"`
	RelatedOrderID *string   `json:"related_order_id,omitempty"`
	RelatedTaskID  *string   `json:"related_task_id,omitempty"`
	Reason         string    `json:"reason"`
	PerformedBy    string    `json:"performed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// MovementPublisher implements the MovementPublisher port using kafka-go.
// Messages are keyed by SKU so one SKU's movements stay ordered within
// a partition.
type MovementPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewMovementPublisher creates a publisher writing to the given brokers and topic.
func NewMovementPublisher(brokers []string, topic string, logger *slog.Logger) *MovementPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &MovementPublisher{
		writer: writer,
		logger: logger.With("component", "movement_publisher"),
	}
}

// Publish sends the given movements to the topic. Failures are logged and
// returned but must not abort the caller's business operation; the movements
// are already durable in the ledger.
func (p *MovementPublisher) Publish(ctx context.Context, movements []inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(movements))
	for _, movement := range movements {
		payload, err := json.Marshal(toMessage(movement))
		if err != nil {
			p.logger.Error("failed to encode movement", "movement_id", movement.ID().String(), "error", err)
			return err
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(movement.SKU()),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error("failed to publish movements", "count", len(messages), "error", err)
		return err
	}

	return nil
}

// Close flushes pending messages and releases the underlying writer.
func (p *MovementPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(movement inventory.Movement) movementMessage {
	var orderID *string
	if movement.RelatedOrderID() != nil {
		raw := movement.RelatedOrderID().String()
		orderID = &raw
	}

	var taskID *string
	if movement.RelatedTaskID() != nil {
		raw := movement.RelatedTaskID().String()
		taskID = &raw
	}

	return movementMessage{
		ID:             movement.ID().String(),
		SKU:            movement.SKU(),
		WarehouseID:    movement.WarehouseID().String(),
		Kind:           movement.Kind().String(),
		QuantityDelta:  movement.QuantityDelta(),
		RelatedOrderID: orderID,
		RelatedTaskID:  taskID,
		Reason:         movement.Reason(),
		PerformedBy:    movement.PerformedBy(),
		OccurredAt:     movement.OccurredAt(),
	}
}
