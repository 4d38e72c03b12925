package model

import (
	"errors"
	"fmt"
)

var ErrInvalidMode = errors.New("invalid tag mode")

// TagOpsMode selects whether edit_tag binds or unbinds a tag.
type TagOpsMode string

const (
	TagAdd    TagOpsMode = "Add"
	TagRemove TagOpsMode = "Remove"
)

func ParseTagOpsMode(s string) (TagOpsMode, error) {
	switch TagOpsMode(s) {
	case TagAdd, TagRemove:
		return TagOpsMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m TagOpsMode) Valid() bool {
	return m == TagAdd || m == TagRemove
}
