package cmd

import (
	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/workos"
	"github.com/spf13/cobra"
)

var directoriesCmd = &cobra.Command{
	Use:     "directories",
	Aliases: []string{"dsync"},
	Short:   "Inspect directory sync directories, users and groups",
}

var (
	listDirectoriesOpts workos.ListDirectoriesOpts
	directoryType       string
)

var listDirectoriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		opts := listDirectoriesOpts
		opts.Type = models.DirectoryType(directoryType)
		list, err := client.DirectorySync().ListDirectories(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), list)
	},
}

var listDirectoryUsersOpts workos.ListDirectoryUsersOpts

var listDirectoryUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the users of a directory or group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		list, err := client.DirectorySync().ListUsers(cmd.Context(), listDirectoryUsersOpts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), list)
	},
}

var listDirectoryGroupsOpts workos.ListDirectoryGroupsOpts

var listDirectoryGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the groups of a directory or user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags(cmd.Context())
		if err != nil {
			return err
		}

		list, err := client.DirectorySync().ListGroups(cmd.Context(), listDirectoryGroupsOpts)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), list)
	},
}

func init() {
	rootCmd.AddCommand(directoriesCmd)
	directoriesCmd.AddCommand(listDirectoriesCmd, listDirectoryUsersCmd, listDirectoryGroupsCmd)

	fs := listDirectoriesCmd.Flags()
	paginationFlags(fs, &listDirectoriesOpts.PaginationParams)
	fs.StringVar(&listDirectoriesOpts.Domain, "domain", "", "filter by domain")
	fs.StringVar(&listDirectoriesOpts.Search, "search", "", "filter by name")
	fs.StringVar(&listDirectoriesOpts.OrganizationID, "organization", "", "filter by organization id")
	fs.StringVar(&directoryType, "type", "", "filter by directory type")

	fs = listDirectoryUsersCmd.Flags()
	paginationFlags(fs, &listDirectoryUsersOpts.PaginationParams)
	fs.StringVar(&listDirectoryUsersOpts.Directory, "directory", "", "directory id")
	fs.StringVar(&listDirectoryUsersOpts.Group, "group", "", "directory group id")
	listDirectoryUsersCmd.MarkFlagsMutuallyExclusive("directory", "group")
	listDirectoryUsersCmd.MarkFlagsOneRequired("directory", "group")

	fs = listDirectoryGroupsCmd.Flags()
	paginationFlags(fs, &listDirectoryGroupsOpts.PaginationParams)
	fs.StringVar(&listDirectoryGroupsOpts.Directory, "directory", "", "directory id")
	fs.StringVar(&listDirectoryGroupsOpts.User, "user", "", "directory user id")
	listDirectoryGroupsCmd.MarkFlagsMutuallyExclusive("directory", "user")
	listDirectoryGroupsCmd.MarkFlagsOneRequired("directory", "user")
}
