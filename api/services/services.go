package services

import (
	"context"
	"time"

	"github.com/EO-DataHub/workos-go/api/middleware"
	"github.com/EO-DataHub/workos-go/internal/appconfig"
	"github.com/EO-DataHub/workos-go/internal/events"
	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/webhooks"
)

// UserGetter looks up user management users.
type UserGetter interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// DeliveryStore remembers accepted webhook deliveries.
type DeliveryStore interface {
	RecordDelivery(ctx context.Context, wh *webhooks.Webhook) (bool, error)
	MarkPublished(ctx context.Context, id string) error
	ForgetDelivery(ctx context.Context, id string) error
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config    *appconfig.Config
	Publisher events.Notifier
	Users     UserGetter
	Tokens    middleware.TokenVerifier
	Verifier  webhooks.Verifier

	// Deliveries is optional. Without it every delivery is published.
	Deliveries DeliveryStore

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
