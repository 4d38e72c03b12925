// Package bridge carries named commands from the client bindings to the backend.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invoker calls a named backend command with an argument record and decodes
// the result into out. out may be nil for commands that return nothing.
type Invoker interface {
	Invoke(ctx context.Context, command string, args any, out any) error
}

// Dispatcher executes a command inside the backend process.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string, args json.RawMessage) (any, error)
}

// CommandError is a failure reported by the backend for a command.
type CommandError struct {
	Command string
	Status  int
	Code    string
	Message string
}

func (e *CommandError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Command, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// decodeResult copies a command result into out.
func decodeResult(command string, result json.RawMessage, out any) error {
	if out == nil || len(result) == 0 || string(result) == "null" {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", command, err)
	}
	return nil
}
