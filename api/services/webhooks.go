package services

import (
	"fmt"
	"io"
	"net/http"

	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/rs/zerolog"
)

// maxWebhookBytes bounds the size of a single delivery.
const maxWebhookBytes = 1 << 20

// WebhookResponse acknowledges a relayed delivery.
type WebhookResponse struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// ReceiveWebhookService verifies a WorkOS webhook delivery and relays it
// to Pulsar.
func ReceiveWebhookService(svc *Service, w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read webhook body")
		HandleErrResponse(w, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		return
	}

	header := r.Header.Get(webhooks.SignatureHeader)
	if err := svc.Verifier.Verify(header, payload, svc.now()); err != nil {
		logger.Warn().Err(err).Msg("Rejected webhook with invalid signature")
		HandleErrResponse(w, http.StatusUnauthorized, err)
		return
	}

	wh, err := webhooks.Parse(payload)
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid webhook payload")
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}

	// Reject events we model but cannot decode before they reach consumers.
	if _, err := wh.Decode(); err != nil {
		logger.Warn().Err(err).Str("event", wh.Event).Msg("Invalid webhook event data")
		HandleErrResponse(w, http.StatusBadRequest, err)
		return
	}

	l := logger.With().Str("event", wh.Event).Str("webhook_id", wh.ID).Logger()
	ctx := l.WithContext(r.Context())

	if svc.Deliveries != nil {
		fresh, err := svc.Deliveries.RecordDelivery(ctx, wh)
		if err != nil {
			l.Error().Err(err).Msg("Failed to record webhook delivery")
			HandleErrResponse(w, http.StatusInternalServerError, err)
			return
		}
		if !fresh {
			l.Info().Msg("Duplicate webhook delivery skipped")
			WriteResponse(w, http.StatusOK, WebhookResponse{ID: wh.ID, Event: wh.Event, Duplicate: true})
			return
		}
	}

	if err := svc.Publisher.Publish(ctx, wh, payload); err != nil {
		l.Error().Err(err).Msg("Failed to publish webhook")
		if svc.Deliveries != nil {
			if err := svc.Deliveries.ForgetDelivery(ctx, wh.ID); err != nil {
				l.Error().Err(err).Msg("Failed to forget webhook delivery")
			}
		}
		HandleErrResponse(w, http.StatusBadGateway, err)
		return
	}

	if svc.Deliveries != nil {
		if err := svc.Deliveries.MarkPublished(ctx, wh.ID); err != nil {
			l.Warn().Err(err).Msg("Failed to mark webhook delivery published")
		}
	}

	l.Info().Msg("Webhook relayed")
	WriteResponse(w, http.StatusOK, WebhookResponse{ID: wh.ID, Event: wh.Event})
}
