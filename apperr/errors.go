// Package apperr defines the error kinds the task core returns to the API
// layer. Controllers map these to HTTP statuses; the core never logs them.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both a missing document and a document whose
	// current state excludes the requested transition.
	ErrNotFound = errors.New("task not found")

	// ErrForbidden means the requester is neither owner nor collaborator.
	// Kept distinct from ErrNotFound on purpose.
	ErrForbidden = errors.New("not authorized for this task")

	// ErrStorageUnavailable wraps timeouts and transient storage failures.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports malformed or missing request fields, keyed by
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// CollaboratorRejectedError reports the collaborator emails that are not
// eligible. The whole write is aborted; nothing partial is persisted.
type CollaboratorRejectedError struct {
	Rejected []string
}

func (e *CollaboratorRejectedError) Error() string {
	return fmt.Sprintf("collaborators not eligible: %s", strings.Join(e.Rejected, ", "))
}
