package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"churchadmin/internal/repository"
)

// SaveFailedMessage is the only text clients see when a write fails
const SaveFailedMessage = "error saving record, please try again"

var (
	ErrPermissionDenied = errors.New("access denied")
	ErrNotFound         = errors.New("record not found")
)

// ValidationError maps form fields to a single message each
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// TransitionError reports an action the record's current status does not allow
type TransitionError struct {
	Entity string
	From   string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s: record is %s", e.Action, e.Entity, e.From)
}

// ConflictError is a user-facing refusal such as deleting a category in use
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// SaveError hides a persistence failure behind SaveFailedMessage
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string { return SaveFailedMessage }

func (e *SaveError) Unwrap() error { return e.Err }

// boundary converts whatever came out of a transactional write into the
// service taxonomy. Typed service errors pass through; store failures are
// logged with their cause and replaced by a SaveError.
func boundary(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var te *TransitionError
	var ce *ConflictError
	var se *SaveError
	switch {
	case errors.As(err, &ve), errors.As(err, &te), errors.As(err, &ce), errors.As(err, &se):
		return err
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateReference):
		return fieldError("reference_number", "Reference number already exists")
	case errors.Is(err, repository.ErrDuplicateName):
		return fieldError("name", "Name already exists")
	}
	log.Printf("%s failed: %v", op, err)
	return &SaveError{Op: op, Err: err}
}
