package binding

import (
	"context"

	"github.com/BuzzLyutic/todo-bridge/internal/bridge"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

// Tag is a label. Two tags are equal when their values are equal.
type Tag struct {
	inv   bridge.Invoker
	id    model.ID
	value string
}

func (t *Tag) ID() model.ID {
	return t.id
}

func (t *Tag) Value() string {
	return t.value
}

func (t *Tag) Inner() model.Tag {
	return model.Tag{ID: t.id, Value: t.value}
}

// SetID records id unless the tag already has one.
func (t *Tag) SetID(id int64) {
	if !t.id.IsPersisted() {
		t.id = model.Persisted(id)
	}
}

func (t *Tag) Equals(rhs *Tag) bool {
	return t.value == rhs.value
}

func (t *Tag) NotEquals(rhs *Tag) bool {
	return !t.Equals(rhs)
}

// Create stores the tag on the backend and adopts the returned id.
func (t *Tag) Create(ctx context.Context) error {
	var id int64
	if err := t.inv.Invoke(ctx, model.CmdCreateTag, model.TagNameArgs{TagName: t.value}, &id); err != nil {
		return err
	}
	t.id = model.Persisted(id)
	return nil
}

// Rename changes the label. An unsaved tag is renamed locally only.
func (t *Tag) Rename(ctx context.Context, name string) error {
	if id, ok := t.id.Get(); ok {
		args := model.RenameTagArgs{TagID: id, TagName: name}
		if err := t.inv.Invoke(ctx, model.CmdRenameTag, args, nil); err != nil {
			return err
		}
	}
	t.value = name
	return nil
}

// Remove deletes the tag by value and clears its id.
// The tag must not be used for further backend calls afterwards.
func (t *Tag) Remove(ctx context.Context) error {
	if err := t.inv.Invoke(ctx, model.CmdDeleteTag, model.TagNameArgs{TagName: t.value}, nil); err != nil {
		return err
	}
	t.id = model.Unsaved
	return nil
}

// TodoItems returns every item bound to this tag.
func (t *Tag) TodoItems(ctx context.Context) ([]*TodoItem, error) {
	id, ok := t.id.Get()
	if !ok {
		return nil, &IDUndefinedError{Kind: "Tag"}
	}
	return fetchTodoItems(ctx, t.inv, model.CmdFetchAllTagTodoItems, model.TagIDArgs{TagID: id})
}
