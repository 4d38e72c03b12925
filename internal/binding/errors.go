package binding

import (
	"errors"
	"fmt"
)

// ErrIDUndefined matches every *IDUndefinedError.
var ErrIDUndefined = errors.New("id undefined")

// IDUndefinedError is returned, without a backend round trip, when an
// operation needs a persisted entity and the entity has no id yet.
type IDUndefinedError struct {
	Kind string
}

func (e *IDUndefinedError) Error() string {
	return fmt.Sprintf("the id of `%s` is undefined", e.Kind)
}

func (e *IDUndefinedError) Is(target error) bool {
	return target == ErrIDUndefined
}
