package cmd

import (
	"github.com/EO-DataHub/workos-go/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Manage the record of relayed webhook deliveries",
	Long: `Manage the PostgreSQL record of relayed webhook deliveries. The database
is read from the config file (database.source) or DATABASE_URL.`,
}

// openDeliveryDB connects to the configured delivery database.
func openDeliveryDB(cmd *cobra.Command) (*db.DeliveryDB, error) {
	return db.NewDeliveryDB(cmd.Context(), envDefault(config().Database.Source, "DATABASE_URL"))
}

var migrateDeliveriesCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the delivery tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deliveryDB, err := openDeliveryDB(cmd)
		if err != nil {
			return err
		}
		defer deliveryDB.Close()

		log.Info().Msg("Running migrations...")
		if err := deliveryDB.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Info().Msg("Migrations complete")
		return nil
	},
}

var listDeliveriesOpts db.ListDeliveriesOpts

var listDeliveriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent deliveries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deliveryDB, err := openDeliveryDB(cmd)
		if err != nil {
			return err
		}
		defer deliveryDB.Close()

		deliveries, err := deliveryDB.ListDeliveries(cmd.Context(), listDeliveriesOpts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), deliveries)
	},
}

func init() {
	rootCmd.AddCommand(deliveriesCmd)
	deliveriesCmd.AddCommand(migrateDeliveriesCmd, listDeliveriesCmd)

	listDeliveriesCmd.Flags().StringSliceVar(&listDeliveriesOpts.Events, "event", nil, "filter by event name (repeatable)")
	listDeliveriesCmd.Flags().IntVar(&listDeliveriesOpts.Limit, "limit", 10, "maximum number of deliveries")
}
