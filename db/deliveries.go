package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/lib/pq"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

// Delivery is a webhook the relay has accepted.
type Delivery struct {
	ID          string     `json:"id"`
	Event       string     `json:"event"`
	ReceivedAt  time.Time  `json:"received_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// ListDeliveriesOpts filters ListDeliveries. An empty Events matches all.
type ListDeliveriesOpts struct {
	Events []string
	Limit  int
}

// RecordDelivery stores the delivery and reports whether it should be
// published. Only a delivery that was already published returns false; an
// unpublished one is claimed again so a retry is never dropped.
func (d *DeliveryDB) RecordDelivery(ctx context.Context, wh *webhooks.Webhook) (bool, error) {
	res, err := d.DB.ExecContext(ctx, `
		INSERT INTO webhook_deliveries (id, event)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET received_at = now()
		WHERE webhook_deliveries.published_at IS NULL`,
		wh.ID, wh.Event)
	if err != nil {
		return false, fmt.Errorf("error inserting delivery: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error inserting delivery: %w", err)
	}
	return n == 1, nil
}

// MarkPublished sets the publish time of a recorded delivery.
func (d *DeliveryDB) MarkPublished(ctx context.Context, id string) error {
	res, err := d.DB.ExecContext(ctx,
		`UPDATE webhook_deliveries SET published_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating delivery: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}

// ForgetDelivery removes a delivery so that a retry of it is accepted.
func (d *DeliveryDB) ForgetDelivery(ctx context.Context, id string) error {
	if _, err := d.DB.ExecContext(ctx, `DELETE FROM webhook_deliveries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting delivery: %w", err)
	}
	return nil
}

func (d *DeliveryDB) GetDelivery(ctx context.Context, id string) (*Delivery, error) {
	var del Delivery
	err := d.DB.QueryRowContext(ctx, `
		SELECT id, event, received_at, published_at
		FROM webhook_deliveries WHERE id = $1`, id).
		Scan(&del.ID, &del.Event, &del.ReceivedAt, &del.PublishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeliveryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying delivery: %w", err)
	}
	return &del, nil
}

// ListDeliveries returns the most recent deliveries first.
func (d *DeliveryDB) ListDeliveries(ctx context.Context, opts ListDeliveriesOpts) ([]Delivery, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	events := opts.Events
	if events == nil {
		events = []string{}
	}

	rows, err := d.DB.QueryContext(ctx, `
		SELECT id, event, received_at, published_at
		FROM webhook_deliveries
		WHERE cardinality($1::text[]) = 0 OR event = ANY($1)
		ORDER BY received_at DESC
		LIMIT $2`,
		pq.Array(events), limit)
	if err != nil {
		return nil, fmt.Errorf("error querying deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := []Delivery{}
	for rows.Next() {
		var del Delivery
		if err := rows.Scan(&del.ID, &del.Event, &del.ReceivedAt, &del.PublishedAt); err != nil {
			return nil, fmt.Errorf("error scanning delivery: %w", err)
		}
		deliveries = append(deliveries, del)
	}
	return deliveries, rows.Err()
}
