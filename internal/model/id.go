package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a backend-issued identifier. The zero value is Unsaved.
type ID struct {
	value int64
	set   bool
}

// Unsaved is the ID of an entity that exists only in local memory.
var Unsaved = ID{}

// Persisted returns the ID of an entity the backend knows about.
func Persisted(v int64) ID {
	return ID{value: v, set: true}
}

// Get returns the identifier and whether it is set.
func (id ID) Get() (int64, bool) {
	return id.value, id.set
}

func (id ID) IsPersisted() bool {
	return id.set
}

func (id ID) String() string {
	if !id.set {
		return "unsaved"
	}
	return strconv.FormatInt(id.value, 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.value, 10)), nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*id = Unsaved
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*id = Persisted(v)
	return nil
}
