package catalog

import (
	"errors"
	"fmt"
)

// ErrRoleNotFound is returned when a role has no catalog entry.
var ErrRoleNotFound = errors.New("role not found in catalog")

// DataError reports a missing or malformed career dataset.
type DataError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *DataError) Error() string {
	path := e.Path
	if path == "" {
		path = "(in-memory)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("career catalog %s: %s: %v", path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("career catalog %s: %s", path, e.Reason)
}

func (e *DataError) Unwrap() error {
	return e.Cause
}
