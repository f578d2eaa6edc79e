package domain

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION_ERROR"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConflict    ErrorKind = "CONFLICT"
	KindReferential ErrorKind = "REFERENTIAL_ERROR"
)

// Error is the error type returned by services. Match it with errors.Is
// against the sentinels below; a referential error also matches ErrValidation.
type Error struct {
	Kind    ErrorKind
	Message string
}

var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrReferential = &Error{Kind: KindReferential}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	if !ok {
		return false
	}

	if t.Kind == e.Kind {
		return true
	}

	return e.Kind == KindReferential && t.Kind == KindValidation
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewNotFoundError(entity string, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id '%s' not found", entity, id)}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewReferentialError(message string) *Error {
	return &Error{Kind: KindReferential, Message: message}
}
