package handlers

import (
	"net/http"

	services "github.com/EO-DataHub/workos-go/api/services"
)

// @Summary Receive a WorkOS webhook
// @Description Verifies the WorkOS-Signature header and relays the event to Pulsar. Retried deliveries are acknowledged once recorded.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} services.WebhookResponse
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response
// @Failure 500 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /webhooks [post]
func ReceiveWebhook(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		services.ReceiveWebhookService(svc, w, r)
	}
}
