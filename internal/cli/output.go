package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printItems(w io.Writer, items []*binding.TodoItem, asJSON bool) error {
	if asJSON {
		records := make([]model.TodoItem, 0, len(items))
		for _, item := range items {
			records = append(records, item.Inner())
		}
		return writeJSON(w, records)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No items found")
		return nil
	}

	fmt.Fprintf(w, "  %-4s %-4s %-9s %-30s %s\n", "ID", "Done", "Priority", "Message", "Tags")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 60))
	for _, item := range items {
		done := " "
		if item.Done() {
			done = "x"
		}
		fmt.Fprintf(w, "  %-4s [%s]  %-9s %-30s %s\n",
			item.ID(), done, item.Priority(), item.Message(), strings.Join(item.Inner().TagValues(), ", "))
	}
	return nil
}

func printTags(w io.Writer, tags []*binding.Tag, asJSON bool) error {
	if asJSON {
		records := make([]model.Tag, 0, len(tags))
		for _, tag := range tags {
			records = append(records, tag.Inner())
		}
		return writeJSON(w, records)
	}

	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found")
		return nil
	}

	fmt.Fprintf(w, "  %-4s %s\n", "ID", "Tag")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 30))
	for _, tag := range tags {
		fmt.Fprintf(w, "  %-4s %s\n", tag.ID(), tag.Value())
	}
	return nil
}

// printID reports the id of a created or saved record.
func printID(w io.Writer, kind string, id model.ID, asJSON bool) error {
	if asJSON {
		return writeJSON(w, map[string]any{"success": true, "id": id})
	}
	fmt.Fprintf(w, "%s %s saved\n", kind, id)
	return nil
}

func printDone(w io.Writer, msg string, asJSON bool) error {
	if asJSON {
		return writeJSON(w, map[string]any{"success": true})
	}
	fmt.Fprintln(w, msg)
	return nil
}
