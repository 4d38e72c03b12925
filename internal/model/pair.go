package model

import (
	"encoding/json"
	"fmt"
)

// Pair is an (id, value) tuple as returned by the listing commands.
// It is encoded as a two-element JSON array.
type Pair[T any] struct {
	ID    int64
	Value T
}

func NewPair[T any](id int64, value T) Pair[T] {
	return Pair[T]{ID: id, Value: value}
}

func (p Pair[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.ID, p.Value})
}

func (p *Pair[T]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pair: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.ID); err != nil {
		return fmt.Errorf("pair id: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Value); err != nil {
		return fmt.Errorf("pair value: %w", err)
	}
	return nil
}
