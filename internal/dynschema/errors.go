package dynschema

import (
	"errors"
	"fmt"
)

// ErrEmptyFieldKey is returned by CheckFields when a field has no key.
var ErrEmptyFieldKey = errors.New("field key must not be empty")

// DuplicateKeyError is returned by CheckFields when two fields share a key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate field key '%s'", e.Key)
}

// UnknownTypeError is returned by CheckFields for an unsupported field type.
type UnknownTypeError struct {
	Key  string
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("field '%s' has unknown type '%s'", e.Key, e.Type)
}
