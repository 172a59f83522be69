package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIDRequired = errors.New("id is required")
	// ErrNotFound is matched by every NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports caller input that cannot be accepted. Fields maps
// a field name to what is wrong with it.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func newValidationError(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

// SecurityValidationError is a failed abuse check (missing or rejected
// CAPTCHA token). Clients see it as a bad request.
type SecurityValidationError struct {
	Reason string
	Err    error
}

func (e *SecurityValidationError) Error() string {
	return "security validation failed: " + e.Reason
}

func (e *SecurityValidationError) Unwrap() error { return e.Err }

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConfigurationError means the deployment is missing something required to
// serve the request. It is a server fault, never the caller's.
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return "server misconfigured: " + e.Setting
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// StorageError wraps a blob store failure that the caller must see.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistenceError wraps a database failure on a required write or read.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
