package binding

import (
	"context"

	"github.com/BuzzLyutic/todo-bridge/internal/bridge"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

// TodoItem is a task with a message, a priority, a completion flag and a set
// of tags. It is Unsaved until Save succeeds.
type TodoItem struct {
	inv      bridge.Invoker
	id       model.ID
	message  string
	priority model.Priority
	done     bool
	tags     []*Tag
}

func (t *TodoItem) ID() model.ID {
	return t.id
}

func (t *TodoItem) Message() string {
	return t.message
}

func (t *TodoItem) Priority() model.Priority {
	return t.priority
}

func (t *TodoItem) Done() bool {
	return t.done
}

// Tags returns the attached tags in insertion order.
func (t *TodoItem) Tags() []*Tag {
	out := make([]*Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

func (t *TodoItem) Inner() model.TodoItem {
	tags := make([]model.Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		tags = append(tags, tag.Inner())
	}
	return model.TodoItem{
		ID:       t.id,
		Message:  t.message,
		Priority: t.priority,
		Done:     t.done,
		Tags:     tags,
	}
}

// Save sends the whole item to the backend, creating or updating it, and
// adopts the returned id.
func (t *TodoItem) Save(ctx context.Context) error {
	var id int64
	args := model.SaveTodoItemArgs{TodoItem: t.Inner()}
	if err := t.inv.Invoke(ctx, model.CmdSaveFullTodoItem, args, &id); err != nil {
		return err
	}
	t.id = model.Persisted(id)
	return nil
}

func (t *TodoItem) EditMessage(ctx context.Context, msg string) error {
	if id, ok := t.id.Get(); ok {
		args := model.EditMessageArgs{ItemID: id, NewMessage: msg}
		if err := t.inv.Invoke(ctx, model.CmdEditMessage, args, nil); err != nil {
			return err
		}
	}
	t.message = msg
	return nil
}

func (t *TodoItem) EditPriority(ctx context.Context, p model.Priority) error {
	if !p.Valid() {
		return model.ErrInvalidPriority
	}
	if id, ok := t.id.Get(); ok {
		args := model.EditPriorityArgs{ItemID: id, Priority: p}
		if err := t.inv.Invoke(ctx, model.CmdEditPriority, args, nil); err != nil {
			return err
		}
	}
	t.priority = p
	return nil
}

// RevertState toggles the completion flag.
func (t *TodoItem) RevertState(ctx context.Context) error {
	if id, ok := t.id.Get(); ok {
		if err := t.inv.Invoke(ctx, model.CmdStateRevert, model.ItemIDArgs{ItemID: id}, nil); err != nil {
			return err
		}
	}
	t.done = !t.done
	return nil
}

// EditTag binds or unbinds tag. On a persisted item the backend reports the
// tag id, which tag adopts if it has none. Adding a tag whose value is
// already attached leaves the local list unchanged.
func (t *TodoItem) EditTag(ctx context.Context, tag *Tag, mode model.TagOpsMode) error {
	if !mode.Valid() {
		return model.ErrInvalidMode
	}
	if id, ok := t.id.Get(); ok {
		var tagID int64
		args := model.EditTagArgs{ItemID: id, Mode: mode, TagName: tag.Value()}
		if err := t.inv.Invoke(ctx, model.CmdEditTag, args, &tagID); err != nil {
			return err
		}
		tag.SetID(tagID)
	}

	if mode == model.TagAdd {
		if !t.HasTag(tag.Value()) {
			t.tags = append(t.tags, tag)
		}
		return nil
	}

	kept := t.tags[:0:0]
	for _, existing := range t.tags {
		if tag.NotEquals(existing) {
			kept = append(kept, existing)
		}
	}
	t.tags = kept
	return nil
}

// EditTagByName is EditTag with a new tag built from name.
func (t *TodoItem) EditTagByName(ctx context.Context, name string, mode model.TagOpsMode) error {
	return t.EditTag(ctx, &Tag{inv: t.inv, value: name}, mode)
}

func (t *TodoItem) AddTag(ctx context.Context, name string) error {
	return t.EditTagByName(ctx, name, model.TagAdd)
}

func (t *TodoItem) RemoveTag(ctx context.Context, name string) error {
	return t.EditTagByName(ctx, name, model.TagRemove)
}

func (t *TodoItem) HasTag(value string) bool {
	for _, tag := range t.tags {
		if tag.value == value {
			return true
		}
	}
	return false
}

// CleanTags detaches every tag.
func (t *TodoItem) CleanTags(ctx context.Context) error {
	if id, ok := t.id.Get(); ok {
		if err := t.inv.Invoke(ctx, model.CmdCleanTag, model.ItemIDArgs{ItemID: id}, nil); err != nil {
			return err
		}
	}
	t.tags = nil
	return nil
}

// Remove deletes the item on the backend and clears its id.
func (t *TodoItem) Remove(ctx context.Context) error {
	id, ok := t.id.Get()
	if !ok {
		return &IDUndefinedError{Kind: "TodoItem"}
	}
	if err := t.inv.Invoke(ctx, model.CmdDeleteTodoItem, model.ItemIDArgs{ItemID: id}, nil); err != nil {
		return err
	}
	t.id = model.Unsaved
	return nil
}
