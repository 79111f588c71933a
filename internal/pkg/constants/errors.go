package constants

import (
	"errors"
	"net/http"
)

// CodedError carries the HTTP status the API should answer with.
type CodedError struct {
	err  error
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{err: errors.New(msg), code: code}
}

// WithCode wraps err so the API error handler answers with code.
func WithCode(err error, code int) *CodedError {
	return &CodedError{err: err, code: code}
}

func (e *CodedError) Error() string { return e.err.Error() }

func (e *CodedError) Code() int { return e.code }

func (e *CodedError) Unwrap() error { return e.err }

var (
	ErrDBNotFound        = NewCodedError("not found", http.StatusNotFound)
	ErrUnauthorized      = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrInvalidAuthToken  = NewCodedError("invalid auth token", http.StatusUnauthorized)
	ErrBadRequest        = NewCodedError("bad request", http.StatusBadRequest)
	ErrNoRecord          = NewCodedError("no record for requested period", http.StatusNotFound)
	ErrNoClinkerRatio    = NewCodedError("clinker ratio cannot be derived for entity", http.StatusUnprocessableEntity)
	ErrEmptyPolicyTable  = NewCodedError("indicator policy table is empty", http.StatusUnprocessableEntity)
	ErrUnknownEntityCode = NewCodedError("unknown entity code", http.StatusNotFound)
)
