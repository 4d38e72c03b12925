package cli

import (
	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
)

func tagCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := client.FetchAllTags(cmd.Context())
			if err != nil {
				return err
			}
			return printTags(cmd.OutOrStdout(), tags, jsonOutput(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag, or report the id of an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := client.NewTag(args[0])
			if err := tag.Create(cmd.Context()); err != nil {
				return err
			}
			return printID(cmd.OutOrStdout(), "tag", tag.ID(), jsonOutput(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := findTag(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			if err := tag.Rename(cmd.Context(), args[1]); err != nil {
				return err
			}
			return printDone(cmd.OutOrStdout(), "tag renamed to "+tag.Value(), jsonOutput(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a tag and detach it from every item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.NewTag(args[0]).Remove(cmd.Context()); err != nil {
				return err
			}
			return printDone(cmd.OutOrStdout(), "tag deleted", jsonOutput(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "items <name>",
		Short: "List the items carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := findTag(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			items, err := tag.TodoItems(cmd.Context())
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), items, jsonOutput(cmd))
		},
	})

	return cmd
}
