package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
	"github.com/BuzzLyutic/todo-bridge/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// TodoService executes the backend commands behind the tag and to-do bindings.
type TodoService struct {
	repo repo.Store
}

func NewTodoService(repo repo.Store) *TodoService {
	return &TodoService{repo: repo}
}

// GetTagID returns the id of the tag named name, creating the tag if needed.
func (s *TodoService) GetTagID(ctx context.Context, name string) (int64, error) {
	if err := validateTagName(name); err != nil {
		return 0, err
	}
	return s.repo.GetOrCreateTag(ctx, name)
}

func (s *TodoService) FetchAllTags(ctx context.Context) ([]model.Pair[string], error) {
	return s.repo.ListTags(ctx)
}

// CreateTag is idempotent: an existing tag keeps its id.
func (s *TodoService) CreateTag(ctx context.Context, name string) (int64, error) {
	if err := validateTagName(name); err != nil {
		return 0, err
	}
	return s.repo.GetOrCreateTag(ctx, name)
}

func (s *TodoService) RenameTag(ctx context.Context, id int64, name string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateTagName(name); err != nil {
		return err
	}
	return s.repo.RenameTag(ctx, id, name)
}

func (s *TodoService) DeleteTag(ctx context.Context, name string) error {
	if err := validateTagName(name); err != nil {
		return err
	}
	return s.repo.DeleteTag(ctx, name)
}

func (s *TodoService) FetchAllTagTodoItems(ctx context.Context, tagID int64) ([]model.Pair[model.TodoItem], error) {
	if err := validateID(tagID); err != nil {
		return nil, err
	}
	return s.repo.ListTodoItemsByTag(ctx, tagID)
}

func (s *TodoService) FetchAllTodoItems(ctx context.Context) ([]model.Pair[model.TodoItem], error) {
	return s.repo.ListTodoItems(ctx)
}

// SaveFullTodoItem creates the item, or overwrites it when it carries the id
// of a stored item, and returns its id.
func (s *TodoService) SaveFullTodoItem(ctx context.Context, item model.TodoItem) (int64, error) {
	if err := validateMessage(item.Message); err != nil {
		return 0, err
	}
	if !item.Priority.Valid() {
		return 0, fmt.Errorf("%w: %w", ErrValidation, model.ErrInvalidPriority)
	}
	for _, tag := range item.Tags {
		if err := validateTagName(tag.Value); err != nil {
			return 0, err
		}
	}
	return s.repo.SaveTodoItem(ctx, item)
}

func (s *TodoService) EditMessage(ctx context.Context, itemID int64, msg string) error {
	if err := validateID(itemID); err != nil {
		return err
	}
	if err := validateMessage(msg); err != nil {
		return err
	}
	return s.repo.UpdateMessage(ctx, itemID, msg)
}

func (s *TodoService) EditPriority(ctx context.Context, itemID int64, p model.Priority) error {
	if err := validateID(itemID); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, model.ErrInvalidPriority)
	}
	return s.repo.UpdatePriority(ctx, itemID, p)
}

func (s *TodoService) StateRevert(ctx context.Context, itemID int64) error {
	if err := validateID(itemID); err != nil {
		return err
	}
	return s.repo.ToggleDone(ctx, itemID)
}

// EditTag binds (Add) or unbinds (Remove) the tag named name and returns the
// tag id. Add creates the tag when it does not exist yet.
func (s *TodoService) EditTag(ctx context.Context, itemID int64, mode model.TagOpsMode, name string) (int64, error) {
	if err := validateID(itemID); err != nil {
		return 0, err
	}
	if err := validateTagName(name); err != nil {
		return 0, err
	}

	switch mode {
	case model.TagAdd:
		tagID, err := s.repo.GetOrCreateTag(ctx, name)
		if err != nil {
			return 0, err
		}
		return tagID, s.repo.BindTag(ctx, itemID, tagID)
	case model.TagRemove:
		tagID, err := s.repo.FindTagID(ctx, name)
		if err != nil {
			return 0, err
		}
		return tagID, s.repo.UnbindTag(ctx, itemID, tagID)
	default:
		return 0, fmt.Errorf("%w: %w", ErrValidation, model.ErrInvalidMode)
	}
}

func (s *TodoService) CleanTag(ctx context.Context, itemID int64) error {
	if err := validateID(itemID); err != nil {
		return err
	}
	return s.repo.ClearTags(ctx, itemID)
}

func (s *TodoService) DeleteTodoItem(ctx context.Context, itemID int64) error {
	if err := validateID(itemID); err != nil {
		return err
	}
	return s.repo.DeleteTodoItem(ctx, itemID)
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty tag name", ErrValidation)
	}
	return nil
}

func validateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return fmt.Errorf("%w: empty message", ErrValidation)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrValidation)
	}
	return nil
}
