// Package cli holds the commands of the todo command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
)

var (
	ErrNotFound = errors.New("not found")
	errUsage    = errors.New("usage")
)

// NewRootCmd builds the command tree on top of client.
func NewRootCmd(client *binding.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo - manage to-do items and tags",
		Long:          `todo drives a to-do backend: items with a message, a priority and tags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	cmd.AddCommand(tagCmd(client))
	cmd.AddCommand(itemCmd(client))

	return cmd
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid item id %q", errUsage, arg)
	}
	return id, nil
}

// findItem looks the item up in the full listing; the backend has no
// single-item query.
func findItem(ctx context.Context, client *binding.Client, arg string) (*binding.TodoItem, error) {
	id, err := parseItemID(arg)
	if err != nil {
		return nil, err
	}
	items, err := client.FetchAllTodoItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if got, ok := item.ID().Get(); ok && got == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
}

// findTag looks a tag up by name without creating it.
func findTag(ctx context.Context, client *binding.Client, name string) (*binding.Tag, error) {
	tags, err := client.FetchAllTags(ctx)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if tag.Value() == name {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("tag %q: %w", name, ErrNotFound)
}
