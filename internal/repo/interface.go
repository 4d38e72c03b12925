package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// Store определяет интерфейс хранилища тегов и задач
type Store interface {
	GetOrCreateTag(ctx context.Context, value string) (int64, error)
	FindTagID(ctx context.Context, value string) (int64, error)
	ListTags(ctx context.Context) ([]model.Pair[string], error)
	RenameTag(ctx context.Context, id int64, value string) error
	DeleteTag(ctx context.Context, value string) error

	ListTodoItems(ctx context.Context) ([]model.Pair[model.TodoItem], error)
	ListTodoItemsByTag(ctx context.Context, tagID int64) ([]model.Pair[model.TodoItem], error)
	// SaveTodoItem inserts item, or fully overwrites it when item.ID names an
	// existing row, and replaces its tags. Returns the item id.
	SaveTodoItem(ctx context.Context, item model.TodoItem) (int64, error)
	UpdateMessage(ctx context.Context, id int64, message string) error
	UpdatePriority(ctx context.Context, id int64, p model.Priority) error
	ToggleDone(ctx context.Context, id int64) error
	BindTag(ctx context.Context, itemID, tagID int64) error
	UnbindTag(ctx context.Context, itemID, tagID int64) error
	ClearTags(ctx context.Context, itemID int64) error
	DeleteTodoItem(ctx context.Context, id int64) error

	Close() error
}

// itemTag is one row of the tag binding join.
type itemTag struct {
	ItemID int64  `db:"item_id"`
	TagID  int64  `db:"tag_id"`
	Value  string `db:"value"`
}

// attachTags groups binding rows onto the items they belong to.
func attachTags(items []model.Pair[model.TodoItem], rows []itemTag) {
	index := make(map[int64]int, len(items))
	for i := range items {
		index[items[i].ID] = i
		items[i].Value.Tags = []model.Tag{}
	}
	for _, r := range rows {
		i, ok := index[r.ItemID]
		if !ok {
			continue
		}
		items[i].Value.Tags = append(items[i].Value.Tags, model.Tag{ID: model.Persisted(r.TagID), Value: r.Value})
	}
}

func itemIDs(items []model.Pair[model.TodoItem]) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
