package cli

import (
	"errors"

	"github.com/BuzzLyutic/todo-bridge/internal/binding"
	"github.com/BuzzLyutic/todo-bridge/internal/bridge"
	"github.com/BuzzLyutic/todo-bridge/internal/model"
	"github.com/BuzzLyutic/todo-bridge/internal/repo"
	"github.com/BuzzLyutic/todo-bridge/internal/service"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0

	// ExitError covers transport failures and anything unexpected.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	ExitUsage = 2

	// ExitNotFound indicates a missing item or tag.
	ExitNotFound = 3

	// ExitValidation indicates input the backend rejected.
	ExitValidation = 5

	// ExitConflict indicates a tag name that is already taken.
	ExitConflict = 6
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cmdErr *bridge.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case "not_found":
			return ExitNotFound
		case "validation":
			return ExitValidation
		case "conflict":
			return ExitConflict
		case "unknown_command":
			return ExitUsage
		}
		return ExitError
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, repo.ErrorNotFound):
		return ExitNotFound
	case errors.Is(err, repo.ErrorConflict):
		return ExitConflict
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, model.ErrInvalidPriority), errors.Is(err, model.ErrInvalidMode):
		return ExitValidation
	case errors.Is(err, binding.ErrIDUndefined), errors.Is(err, errUsage):
		return ExitUsage
	}
	return ExitError
}
