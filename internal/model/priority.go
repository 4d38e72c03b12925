package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPriority = errors.New("invalid priority")

type Priority string

const (
	VeryHigh Priority = "VeryHigh"
	High     Priority = "High"
	Medium   Priority = "Medium"
	Low      Priority = "Low"
	VeryLow  Priority = "VeryLow"
)

// Priorities lists every priority from the most to the least urgent.
// The index of an entry is its storage level.
var Priorities = []Priority{VeryHigh, High, Medium, Low, VeryLow}

func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

func PriorityFromLevel(level int) (Priority, error) {
	if level < 0 || level >= len(Priorities) {
		return "", fmt.Errorf("%w: level %d", ErrInvalidPriority, level)
	}
	return Priorities[level], nil
}

func (p Priority) Valid() bool {
	return p.Level() >= 0
}

// Level returns 0 for VeryHigh up to 4 for VeryLow, or -1 for an unknown priority.
func (p Priority) Level() int {
	for i, known := range Priorities {
		if known == p {
			return i
		}
	}
	return -1
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, data)
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
