package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/productorderingapp/ordering/internal/dal/rabbitmq"
	"github.com/productorderingapp/ordering/internal/order/service/models/event"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// OrderPlacedPublisher publishes order-placed events to a named queue,
// fire-and-forget: no acknowledgment is awaited beyond the channel send.
type OrderPlacedPublisher struct {
	rabbitClient *rabbitmq.Client
	queueName    string
	failures     atomic.Int64
}

// MustNewOrderPlacedPublisher creates the publisher and declares its queue.
func MustNewOrderPlacedPublisher(rabbitClient *rabbitmq.Client) *OrderPlacedPublisher {
	queueName := viper.GetString("rabbitmq.order_placed.queue")
	if queueName == "" {
		queueName = "order.placed"
	}

	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	}); err != nil {
		panic(fmt.Sprintf("Failed to declare queue %s: %v", queueName, err))
	}

	return &OrderPlacedPublisher{
		rabbitClient: rabbitClient,
		queueName:    queueName,
	}
}

// PublishOrderPlaced sends a single event. Failures are counted for
// operational visibility; the caller decides whether they are fatal.
func (p *OrderPlacedPublisher) PublishOrderPlaced(ctx context.Context, e event.OrderPlaced) error {
	payload, err := json.Marshal(e)
	if err != nil {
		p.failures.Add(1)

		return fmt.Errorf("failed to marshal order placed event: %w", err)
	}

	err = p.rabbitClient.Channel().Publish(
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		p.failures.Add(1)

		return fmt.Errorf("failed to publish order placed event: %w", err)
	}

	return nil
}

// Failures returns the number of failed publish attempts.
func (p *OrderPlacedPublisher) Failures() int64 {
	return p.failures.Load()
}
