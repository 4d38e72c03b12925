package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-bridge/internal/model"
	"github.com/BuzzLyutic/todo-bridge/internal/repo"
	"github.com/BuzzLyutic/todo-bridge/internal/service"
	"github.com/BuzzLyutic/todo-bridge/pkg/respond"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid arguments")
)

const maxBodyBytes = 1 << 20

type commandFunc func(ctx context.Context, args json.RawMessage) (any, error)

// CommandHandler routes named commands to the service. It serves them over
// HTTP and, through Dispatch, to in-process bridges.
type CommandHandler struct {
	service  *service.TodoService
	logger   *zap.Logger
	commands map[string]commandFunc
}

func NewCommandHandler(srv *service.TodoService, logger *zap.Logger) *CommandHandler {
	h := &CommandHandler{
		service: srv,
		logger:  logger,
	}
	h.commands = map[string]commandFunc{
		// теги
		model.CmdGetTagID: withArgs(func(ctx context.Context, a model.TagNameArgs) (any, error) {
			return result(srv.GetTagID(ctx, a.TagName))
		}),
		model.CmdFetchAllTags: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return result(srv.FetchAllTags(ctx))
		},
		model.CmdCreateTag: withArgs(func(ctx context.Context, a model.TagNameArgs) (any, error) {
			return result(srv.CreateTag(ctx, a.TagName))
		}),
		model.CmdRenameTag: withArgs(func(ctx context.Context, a model.RenameTagArgs) (any, error) {
			return nil, srv.RenameTag(ctx, a.TagID, a.TagName)
		}),
		model.CmdDeleteTag: withArgs(func(ctx context.Context, a model.TagNameArgs) (any, error) {
			return nil, srv.DeleteTag(ctx, a.TagName)
		}),
		model.CmdFetchAllTagTodoItems: withArgs(func(ctx context.Context, a model.TagIDArgs) (any, error) {
			return result(srv.FetchAllTagTodoItems(ctx, a.TagID))
		}),

		// задачи
		model.CmdFetchAllTodoItems: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return result(srv.FetchAllTodoItems(ctx))
		},
		model.CmdSaveFullTodoItem: withArgs(func(ctx context.Context, a model.SaveTodoItemArgs) (any, error) {
			return result(srv.SaveFullTodoItem(ctx, a.TodoItem))
		}),
		model.CmdEditMessage: withArgs(func(ctx context.Context, a model.EditMessageArgs) (any, error) {
			return nil, srv.EditMessage(ctx, a.ItemID, a.NewMessage)
		}),
		model.CmdEditPriority: withArgs(func(ctx context.Context, a model.EditPriorityArgs) (any, error) {
			return nil, srv.EditPriority(ctx, a.ItemID, a.Priority)
		}),
		model.CmdStateRevert: withArgs(func(ctx context.Context, a model.ItemIDArgs) (any, error) {
			return nil, srv.StateRevert(ctx, a.ItemID)
		}),
		model.CmdEditTag: withArgs(func(ctx context.Context, a model.EditTagArgs) (any, error) {
			return result(srv.EditTag(ctx, a.ItemID, a.Mode, a.TagName))
		}),
		model.CmdCleanTag: withArgs(func(ctx context.Context, a model.ItemIDArgs) (any, error) {
			return nil, srv.CleanTag(ctx, a.ItemID)
		}),
		model.CmdDeleteTodoItem: withArgs(func(ctx context.Context, a model.ItemIDArgs) (any, error) {
			return nil, srv.DeleteTodoItem(ctx, a.ItemID)
		}),
	}
	return h
}

// withArgs decodes the argument record before calling fn.
func withArgs[A any](fn func(context.Context, A) (any, error)) commandFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadArgs, err)
			}
		}
		return fn(ctx, args)
	}
}

func result[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Dispatch runs command with its JSON-encoded arguments.
func (h *CommandHandler) Dispatch(ctx context.Context, command string, args json.RawMessage) (any, error) {
	fn, ok := h.commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return fn(ctx, args)
}

func (h *CommandHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	command := chi.URLParam(r, "command")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error("failed to read body", zap.String("command", command), zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "validation", "unreadable request body")
		return
	}

	res, err := h.Dispatch(r.Context(), command, body)
	if err != nil {
		h.handleErrors(w, r, command, err)
		return
	}
	respond.Result(w, r, res)
}

func (h *CommandHandler) handleErrors(w http.ResponseWriter, r *http.Request, command string, err error) {
	switch {
	case errors.Is(err, ErrUnknownCommand):
		respond.Error(w, r, http.StatusNotFound, "unknown_command", err.Error())
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict", "conflict")
	case errors.Is(err, service.ErrValidation), errors.Is(err, ErrBadArgs):
		respond.Error(w, r, http.StatusBadRequest, "validation", err.Error())
	default:
		h.logger.Error("internal error", zap.String("command", command), zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal", "internal error")
	}
}
