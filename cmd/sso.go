package cmd

import (
	"fmt"

	"github.com/EO-DataHub/workos-go/workos"
	"github.com/spf13/cobra"
)

var ssoCmd = &cobra.Command{
	Use:   "sso",
	Short: "Single sign-on helpers",
}

var (
	authorizationURLOpts workos.AuthorizationURLOpts
	ssoProvider          string
	userManagement       bool
)

var authorizeURLCmd = &cobra.Command{
	Use:   "authorize-url",
	Short: "Print the URL that starts an SSO or AuthKit login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		opts := authorizationURLOpts
		opts.Provider = workos.Provider(ssoProvider)

		getURL := client.SSO().GetAuthorizationURL
		if userManagement {
			getURL = client.UserManagement().GetAuthorizationURL
		}
		u, err := getURL(opts)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), u.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(ssoCmd)
	ssoCmd.AddCommand(authorizeURLCmd)

	fs := authorizeURLCmd.Flags()
	fs.StringVar(&authorizationURLOpts.ClientID, "client-id", "", "client id (default: config or WORKOS_CLIENT_ID)")
	fs.StringVar(&authorizationURLOpts.RedirectURI, "redirect-uri", "", "callback URL")
	fs.StringVar(&authorizationURLOpts.Connection, "connection", "", "connection id")
	fs.StringVar(&authorizationURLOpts.Organization, "organization", "", "organization id")
	fs.StringVar(&ssoProvider, "provider", "", "OAuth provider, e.g. GoogleOAuth")
	fs.StringVar(&authorizationURLOpts.State, "state", "", "opaque state returned to the callback")
	fs.StringVar(&authorizationURLOpts.DomainHint, "domain-hint", "", "domain hint")
	fs.StringVar(&authorizationURLOpts.LoginHint, "login-hint", "", "login hint")
	fs.BoolVar(&userManagement, "user-management", false, "build an AuthKit user management URL")
	_ = authorizeURLCmd.MarkFlagRequired("redirect-uri")
}
