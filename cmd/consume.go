package cmd

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/workos-go/internal/events"
	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the Pulsar consumer that logs relayed WorkOS events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()

		// Initialize event consumer
		consumer, err := events.NewEventConsumer(cfg.Pulsar.URL, cfg.Pulsar.TopicConsumer, cfg.Pulsar.Subscription)
		if err != nil {
			return fmt.Errorf("failed to initialize event consumer: %w", err)
		}
		defer consumer.Close()

		ctx := log.Logger.WithContext(cmd.Context())
		log.Info().Str("topic", cfg.Pulsar.TopicConsumer).Msg("Waiting for messages")

		return consumer.Run(ctx, logEvent)
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}

// logEvent decodes a relayed webhook and logs a one line summary of it.
func logEvent(ctx context.Context, wh *webhooks.Webhook) error {
	event, err := wh.Decode()
	if err != nil {
		return err
	}

	e := zerolog.Ctx(ctx).Info().Str("event", wh.Event).Str("webhook_id", wh.ID)
	switch v := event.(type) {
	case *webhooks.ConnectionEvent:
		e = e.Str("connection_id", v.ID).Str("organization_id", v.OrganizationID).Str("state", string(v.State))
	case *webhooks.DirectoryEvent:
		e = e.Str("directory_id", v.ID).Str("state", string(v.State))
	case *webhooks.DirectoryUserEvent:
		e = e.Str("directory_user_id", v.ID).Str("directory_id", v.DirectoryID)
	case *webhooks.DirectoryUserUpdatedEvent:
		e = e.Str("directory_user_id", v.ID).Int("changed_attributes", len(v.PreviousAttributes))
	case *webhooks.DirectoryGroupEvent:
		e = e.Str("directory_group_id", v.ID).Str("directory_id", v.DirectoryID)
	case *webhooks.DirectoryGroupMembershipEvent:
		e = e.Str("directory_user_id", v.User.ID).Str("directory_group_id", v.Group.ID)
	case *webhooks.UnknownEvent:
		e = e.Bool("unknown", true)
	}
	e.Msg("Received event")
	return nil
}
