package cmd

import (
	"time"

	"github.com/EO-DataHub/workos-go/internal/authn"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Access token helpers",
}

type tokenSummary struct {
	authn.Claims
	Expired bool `json:"expired"`
}

var inspectTokenCmd = &cobra.Command{
	Use:   "inspect <access-token>",
	Short: "Print the claims of a user management access token",
	Long: `Print the claims of a user management access token. The signature is
not verified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		claims, err := authn.ParseClaims(args[0])
		if err != nil {
			return err
		}

		return printOutput(cmd.OutOrStdout(), tokenSummary{
			Claims:  claims,
			Expired: claims.ExpiresAt != 0 && time.Unix(claims.ExpiresAt, 0).Before(time.Now()),
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(inspectTokenCmd)
}
