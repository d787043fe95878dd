package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// receiver is the subset of pulsar.Consumer the consumer uses.
type receiver interface {
	Receive(ctx context.Context) (pulsar.Message, error)
	Ack(msg pulsar.Message) error
	Nack(msg pulsar.Message)
	Close()
}

// Handler processes one relayed webhook. A returned error causes the
// message to be redelivered, up to the dead letter limit.
type Handler func(ctx context.Context, wh *webhooks.Webhook) error

type EventConsumer struct {
	client   pulsar.Client
	consumer receiver
}

// DefaultSubscription is used when no subscription name is configured.
const DefaultSubscription = "workos-relay"

// maxDeliveries is how often a failing event is redelivered before it is
// moved to the dead letter topic.
const maxDeliveries = 3

// NewEventConsumer subscribes to the relay topic. Events that keep failing
// end up on <topic>-dlq.
func NewEventConsumer(pulsarURL, topic, subscription string) (*EventConsumer, error) {
	if topic == "" {
		return nil, errors.New("consumer topic is not set")
	}
	if subscription == "" {
		subscription = DefaultSubscription
	}

	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:               topic,
		SubscriptionName:    subscription,
		Type:                pulsar.Shared,
		NackRedeliveryDelay: 10 * time.Second,
		DLQ: &pulsar.DLQPolicy{
			MaxDeliveries:   maxDeliveries,
			DeadLetterTopic: topic + "-dlq",
		},
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &EventConsumer{client: client, consumer: consumer}, nil
}

// ReceiveMessage retrieves a message from Pulsar.
func (c *EventConsumer) ReceiveMessage(ctx context.Context) (pulsar.Message, error) {
	msg, err := c.consumer.Receive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to receive message: %w", err)
	}
	return msg, nil
}

// Run receives messages until ctx is cancelled, passing each parsed
// webhook to handle. Messages that cannot be parsed are acknowledged and
// dropped since redelivery cannot fix them.
func (c *EventConsumer) Run(ctx context.Context, handle Handler) error {
	logger := zerolog.Ctx(ctx)

	for {
		msg, err := c.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return err
		}

		wh, err := webhooks.Parse(msg.Payload())
		if err != nil {
			logger.Error().Err(err).Str("key", msg.Key()).Msg("dropping malformed event")
			c.Ack(msg)
			continue
		}

		if err := handle(ctx, wh); err != nil {
			logger.Warn().Err(err).
				Str("event", wh.Event).
				Str("webhook_id", wh.ID).
				Msg("failed to handle event")
			c.Nack(msg)
			continue
		}
		c.Ack(msg)
	}
}

// Ack acknowledges a message.
func (c *EventConsumer) Ack(msg pulsar.Message) {
	if err := c.consumer.Ack(msg); err != nil {
		log.Warn().Err(err).Msg("failed to ack message")
	}
}

// Nack negatively acknowledges a message.
func (c *EventConsumer) Nack(msg pulsar.Message) {
	c.consumer.Nack(msg)
}

// Close cleans up the Pulsar consumer and client.
func (c *EventConsumer) Close() {
	c.consumer.Close()
	if c.client != nil {
		c.client.Close()
	}
}
