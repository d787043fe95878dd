package cmd

import (
	"fmt"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/workos"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Admin Portal helpers",
}

var (
	generateLinkOpts workos.GenerateLinkOpts
	portalIntent     string
)

var portalLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Generate an Admin Portal link for an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		opts := generateLinkOpts
		opts.Intent = models.PortalIntent(portalIntent)
		if !opts.Intent.IsKnown() {
			log.Warn().Str("intent", portalIntent).Msg("Unrecognised portal intent, sending as is")
		}

		link, err := client.AdminPortal().GenerateLink(cmd.Context(), opts)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
		return err
	},
}

func init() {
	rootCmd.AddCommand(portalCmd)
	portalCmd.AddCommand(portalLinkCmd)

	fs := portalLinkCmd.Flags()
	fs.StringVar(&generateLinkOpts.Organization, "organization", "", "organization id")
	fs.StringVar(&portalIntent, "intent", string(models.IntentSSO), "portal intent (sso, dsync, audit_logs, log_streams, domain_verification)")
	fs.StringVar(&generateLinkOpts.ReturnURL, "return-url", "", "URL to return to when the portal is closed")
	_ = portalLinkCmd.MarkFlagRequired("organization")
}
