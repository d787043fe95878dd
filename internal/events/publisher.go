package events

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
)

// Message properties set on every relayed webhook.
const (
	PropertyEvent     = "event"
	PropertyWebhookID = "webhook_id"
)

// Notifier forwards verified webhooks to downstream consumers.
type Notifier interface {
	Publish(ctx context.Context, wh *webhooks.Webhook, payload []byte) error
	Close()
}

// producer is the subset of pulsar.Producer the publisher uses.
type producer interface {
	Send(ctx context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error)
	Close()
}

type EventPublisher struct {
	client   pulsar.Client
	producer producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	p, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: p}, nil
}

// NewMessage builds the Pulsar message for a webhook. The raw payload is
// relayed unchanged and keyed by webhook id.
func NewMessage(wh *webhooks.Webhook, payload []byte) *pulsar.ProducerMessage {
	return &pulsar.ProducerMessage{
		Payload: payload,
		Key:     wh.ID,
		Properties: map[string]string{
			PropertyEvent:     wh.Event,
			PropertyWebhookID: wh.ID,
		},
	}
}

// Publish sends a webhook to Pulsar.
func (p *EventPublisher) Publish(ctx context.Context, wh *webhooks.Webhook, payload []byte) error {
	if _, err := p.producer.Send(ctx, NewMessage(wh, payload)); err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("event", wh.Event).
		Str("webhook_id", wh.ID).
		Msg("event sent to Pulsar")
	return nil
}

// Close closes the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	if p.client != nil {
		p.client.Close()
	}
}
