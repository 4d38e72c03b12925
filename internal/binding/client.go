// Package binding mirrors backend tags and to-do items as local objects.
//
// Every mutating method on a persisted object calls its backend command first
// and updates the local fields only when the call succeeds. Objects that have
// not been saved yet change locally without touching the backend.
// Objects are not safe for concurrent use.
package binding

import (
	"context"

	"github.com/BuzzLyutic/todo-bridge/internal/bridge"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

type Client struct {
	inv bridge.Invoker
}

func NewClient(inv bridge.Invoker) *Client {
	return &Client{inv: inv}
}

func (c *Client) NewTag(value string) *Tag {
	return &Tag{inv: c.inv, value: value}
}

// FetchTag looks up the tag named name, creating it on the backend if needed.
func (c *Client) FetchTag(ctx context.Context, name string) (*Tag, error) {
	var id int64
	if err := c.inv.Invoke(ctx, model.CmdGetTagID, model.TagNameArgs{TagName: name}, &id); err != nil {
		return nil, err
	}
	return &Tag{inv: c.inv, id: model.Persisted(id), value: name}, nil
}

// FetchAllTags returns every stored tag in backend order.
func (c *Client) FetchAllTags(ctx context.Context) ([]*Tag, error) {
	var pairs []model.Pair[string]
	if err := c.inv.Invoke(ctx, model.CmdFetchAllTags, nil, &pairs); err != nil {
		return nil, err
	}
	tags := make([]*Tag, 0, len(pairs))
	for _, p := range pairs {
		tags = append(tags, &Tag{inv: c.inv, id: model.Persisted(p.ID), value: p.Value})
	}
	return tags, nil
}

func (c *Client) NewTodoItem(message string, priority model.Priority) *TodoItem {
	return &TodoItem{inv: c.inv, message: message, priority: priority}
}

// FetchAllTodoItems returns every stored item in backend order.
func (c *Client) FetchAllTodoItems(ctx context.Context) ([]*TodoItem, error) {
	return fetchTodoItems(ctx, c.inv, model.CmdFetchAllTodoItems, nil)
}

// TodoItemFromRecord builds a local item from a backend record.
func (c *Client) TodoItemFromRecord(rec model.TodoItem) *TodoItem {
	return todoItemFromRecord(c.inv, rec)
}

func fetchTodoItems(ctx context.Context, inv bridge.Invoker, command string, args any) ([]*TodoItem, error) {
	var pairs []model.Pair[model.TodoItem]
	if err := inv.Invoke(ctx, command, args, &pairs); err != nil {
		return nil, err
	}
	items := make([]*TodoItem, 0, len(pairs))
	for _, p := range pairs {
		rec := p.Value
		rec.ID = model.Persisted(p.ID)
		items = append(items, todoItemFromRecord(inv, rec))
	}
	return items, nil
}

func todoItemFromRecord(inv bridge.Invoker, rec model.TodoItem) *TodoItem {
	item := &TodoItem{
		inv:      inv,
		id:       rec.ID,
		message:  rec.Message,
		priority: rec.Priority,
		done:     rec.Done,
	}
	for _, t := range rec.Tags {
		item.tags = append(item.tags, &Tag{inv: inv, id: t.ID, value: t.Value})
	}
	return item
}
