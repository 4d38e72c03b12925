package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Local invokes commands in-process. Arguments and results still travel as
// JSON so that callers observe the same encoding as over HTTP.
type Local struct {
	dispatcher Dispatcher
}

func NewLocal(d Dispatcher) *Local {
	return &Local{dispatcher: d}
}

func (l *Local) Invoke(ctx context.Context, command string, args any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%s: encode args: %w", command, err)
	}

	result, err := l.dispatcher.Dispatch(ctx, command, raw)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%s: encode result: %w", command, err)
	}
	return decodeResult(command, encoded, out)
}
