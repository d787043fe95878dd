package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/EO-DataHub/workos-go/api/handlers"
	"github.com/EO-DataHub/workos-go/api/services"
	"github.com/EO-DataHub/workos-go/db"
	"github.com/EO-DataHub/workos-go/docs"
	"github.com/EO-DataHub/workos-go/internal/authn"
	awsclient "github.com/EO-DataHub/workos-go/internal/aws"
	"github.com/EO-DataHub/workos-go/internal/events"
	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	host string
	port int
)

// @title WorkOS Relay API
// @version v1
// @description Receives WorkOS webhooks and relays them to Pulsar.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server that relays WorkOS webhooks to Pulsar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config()

		secrets, err := secretsClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize secrets manager client: %w", err)
		}

		client, err := newWorkOSClient(ctx, cfg, secrets)
		if err != nil {
			return err
		}

		webhookSecret, err := awsclient.ResolveSecret(ctx, secrets, cfg.Webhooks.SecretName, "WORKOS_WEBHOOK_SECRET")
		if err != nil {
			return fmt.Errorf("failed to resolve webhook secret: %w", err)
		}

		// Initialize event publisher
		publisher, err := events.NewEventPublisher(cfg.Pulsar.URL, cfg.Pulsar.TopicProducer)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		defer publisher.Close()

		if client.ClientID == "" {
			log.Warn().Msg("No WorkOS client id configured, session requests will be rejected")
		}

		// Deduplicate deliveries when a database is configured
		var deliveries services.DeliveryStore
		if source := envDefault(cfg.Database.Source, "DATABASE_URL"); source != "" {
			deliveryDB, err := db.NewDeliveryDB(ctx, source)
			if err != nil {
				return fmt.Errorf("failed to initialize delivery database: %w", err)
			}
			defer deliveryDB.Close()
			deliveries = deliveryDB
		}

		service := &services.Service{
			Config:    cfg,
			Publisher: publisher,
			Users:     client.UserManagement(),
			Tokens:    authn.NewKeySetVerifier(client.UserManagement(), client.ClientID),
			Verifier: webhooks.Verifier{
				Secret:    webhookSecret,
				Tolerance: cfg.Webhooks.Tolerance,
			},
			Deliveries: deliveries,
		}

		basePath := cfg.BasePath
		if basePath == "" {
			basePath = "/api"
		}
		r := handlers.NewRouter(service, basePath)
		registerDocs(r, cfg.DocsPath, basePath)

		addr := listenAddr(cmd, cfg.Host)
		server := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		return runServer(ctx, server)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// listenAddr prefers explicit --host/--port flags over the config host.
func listenAddr(cmd *cobra.Command, configured string) string {
	if configured == "" || cmd.Flags().Changed("host") || cmd.Flags().Changed("port") {
		return fmt.Sprintf("%s:%d", host, port)
	}
	return configured
}

func registerDocs(r *mux.Router, docsPath, basePath string) {
	if docsPath == "" {
		return
	}

	docs.SwaggerInfo.BasePath = basePath
	r.PathPrefix(docsPath).Handler(httpSwagger.Handler(
		httpSwagger.URL(path.Join(docsPath, "/doc.json")),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)).Methods(http.MethodGet)
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("could not start server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
