package cmd

import (
	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/workos"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// paginationFlags binds the list cursor flags shared by the list commands.
func paginationFlags(fs *pflag.FlagSet, p *models.PaginationParams) {
	fs.StringVar((*string)(&p.Order), "order", "", "sort order (asc or desc)")
	fs.StringVar(&p.Before, "before", "", "return results before this id")
	fs.StringVar(&p.After, "after", "", "return results after this id")
	fs.IntVar(&p.Limit, "limit", 0, "maximum number of results")
}

var organizationsCmd = &cobra.Command{
	Use:     "organizations",
	Aliases: []string{"orgs"},
	Short:   "Manage organizations",
}

var listOrganizationsOpts workos.ListOrganizationsOpts

var listOrganizationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		list, err := client.Organizations().List(cmd.Context(), listOrganizationsOpts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), list)
	},
}

var getOrganizationCmd = &cobra.Command{
	Use:   "get <organization-id>",
	Short: "Get an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		org, err := client.Organizations().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), org)
	},
}

var createOrganizationOpts workos.CreateOrganizationOpts

var createOrganizationCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		org, err := client.Organizations().Create(cmd.Context(), createOrganizationOpts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), org)
	},
}

var deleteOrganizationCmd = &cobra.Command{
	Use:   "delete <organization-id>",
	Short: "Delete an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		if err := client.Organizations().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
	},
}

func init() {
	rootCmd.AddCommand(organizationsCmd)
	organizationsCmd.AddCommand(listOrganizationsCmd, getOrganizationCmd, createOrganizationCmd, deleteOrganizationCmd)

	paginationFlags(listOrganizationsCmd.Flags(), &listOrganizationsOpts.PaginationParams)
	listOrganizationsCmd.Flags().StringSliceVar(&listOrganizationsOpts.Domains, "domain", nil, "filter by domain (repeatable)")

	createOrganizationCmd.Flags().StringVar(&createOrganizationOpts.Name, "name", "", "organization name")
	createOrganizationCmd.Flags().StringSliceVar(&createOrganizationOpts.Domains, "domain", nil, "organization domain (repeatable)")
	createOrganizationCmd.Flags().BoolVar(&createOrganizationOpts.AllowProfilesOutsideOrganization, "allow-profiles-outside-organization", false,
		"allow SSO profiles whose email domain is not an organization domain")
	createOrganizationCmd.Flags().StringVar(&createOrganizationOpts.IdempotencyKey, "idempotency-key", "", "idempotency key (default: random)")
}
