package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

func itemCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage to-do items",
	}

	cmd.AddCommand(itemListCmd(client))
	cmd.AddCommand(itemAddCmd(client))
	cmd.AddCommand(itemEditCmd(client))
	cmd.AddCommand(itemActionCmd(client, "toggle <id>", "Flip the done flag", "item toggled",
		func(cmd *cobra.Command, item *binding.TodoItem, _ []string) error {
			return item.RevertState(cmd.Context())
		}))
	cmd.AddCommand(itemActionCmd(client, "tag <id> <tag>", "Attach a tag, creating it if needed", "tag attached",
		func(cmd *cobra.Command, item *binding.TodoItem, args []string) error {
			return item.AddTag(cmd.Context(), args[0])
		}))
	cmd.AddCommand(itemActionCmd(client, "untag <id> <tag>", "Detach a tag", "tag detached",
		func(cmd *cobra.Command, item *binding.TodoItem, args []string) error {
			return item.RemoveTag(cmd.Context(), args[0])
		}))
	cmd.AddCommand(itemActionCmd(client, "clean-tags <id>", "Detach every tag", "tags cleared",
		func(cmd *cobra.Command, item *binding.TodoItem, _ []string) error {
			return item.CleanTags(cmd.Context())
		}))
	cmd.AddCommand(itemActionCmd(client, "delete <id>", "Delete an item", "item deleted",
		func(cmd *cobra.Command, item *binding.TodoItem, _ []string) error {
			return item.Remove(cmd.Context())
		}))

	return cmd
}

func itemListCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Long: `List all items, or only those carrying a tag.

Examples:
  todo item list
  todo item list --tag=work --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tagName, _ := cmd.Flags().GetString("tag")

			var (
				items []*binding.TodoItem
				err   error
			)
			if tagName == "" {
				items, err = client.FetchAllTodoItems(ctx)
			} else {
				var tag *binding.Tag
				if tag, err = findTag(ctx, client, tagName); err == nil {
					items, err = tag.TodoItems(ctx)
				}
			}
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), items, jsonOutput(cmd))
		},
	}

	cmd.Flags().String("tag", "", "Only items carrying this tag")

	return cmd
}

func itemAddCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <message>",
		Short: "Create an item",
		Long: `Create an item with a message, a priority and tags.

Examples:
  todo item add "buy milk" --priority=High --tag=home --tag=errands
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, _ := cmd.Flags().GetString("priority")
			tags, _ := cmd.Flags().GetStringArray("tag")

			priority, err := model.ParsePriority(raw)
			if err != nil {
				return err
			}

			item := client.NewTodoItem(args[0], priority)
			for _, name := range tags {
				// unsaved: tags stay local until Save
				if err := item.AddTag(ctx, name); err != nil {
					return err
				}
			}
			if err := item.Save(ctx); err != nil {
				return err
			}
			return printID(cmd.OutOrStdout(), "item", item.ID(), jsonOutput(cmd))
		},
	}

	cmd.Flags().String("priority", string(model.Medium), "Priority: VeryHigh, High, Medium, Low or VeryLow")
	cmd.Flags().StringArray("tag", nil, "Tag to attach (repeatable)")

	return cmd
}

func itemEditCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the message or priority of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if !flags.Changed("message") && !flags.Changed("priority") {
				return fmt.Errorf("%w: nothing to edit, pass --message or --priority", errUsage)
			}

			item, err := findItem(ctx, client, args[0])
			if err != nil {
				return err
			}

			if flags.Changed("message") {
				msg, _ := flags.GetString("message")
				if err := item.EditMessage(ctx, msg); err != nil {
					return err
				}
			}
			if flags.Changed("priority") {
				raw, _ := flags.GetString("priority")
				priority, err := model.ParsePriority(raw)
				if err != nil {
					return err
				}
				if err := item.EditPriority(ctx, priority); err != nil {
					return err
				}
			}
			return printDone(cmd.OutOrStdout(), "item updated", jsonOutput(cmd))
		},
	}

	cmd.Flags().String("message", "", "New message")
	cmd.Flags().String("priority", "", "New priority")

	return cmd
}

// itemActionCmd builds a subcommand that loads the item named by the first
// argument and applies action to it with the remaining arguments. The number
// of arguments follows the placeholders in use.
func itemActionCmd(
	client *binding.Client,
	use, short, done string,
	action func(cmd *cobra.Command, item *binding.TodoItem, args []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(len(strings.Fields(use)) - 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := findItem(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			if err := action(cmd, item, args[1:]); err != nil {
				return err
			}
			return printDone(cmd.OutOrStdout(), done, jsonOutput(cmd))
		},
	}
}
