package model

// Tag is the plain snapshot of a tag.
type Tag struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

// TodoItem is the plain snapshot of a to-do item. It is also the record
// exchanged with the backend by save_full_todo_item and the listing commands.
type TodoItem struct {
	ID       ID       `json:"id"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
	Done     bool     `json:"done"`
	Tags     []Tag    `json:"tags"`
}

// TagValues returns the tag labels in order.
func (t TodoItem) TagValues() []string {
	values := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		values = append(values, tag.Value)
	}
	return values
}
