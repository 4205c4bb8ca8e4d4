package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcp-tg/sever-template/internal/userstore"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeDataCorrupt  = "DATA_CORRUPT"
	ErrCodeStorageError = "STORAGE_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapStoreError converts a userstore error to a coded error. The store's
// three error kinds map one-to-one onto tool error codes.
func WrapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	switch {
	case errors.Is(err, userstore.ErrInvalidRecord):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
	case errors.Is(err, userstore.ErrCorrupt):
		coded = &CodedError{Code: ErrCodeDataCorrupt, Message: err.Error(), Cause: err}
	case errors.Is(err, userstore.ErrStorage):
		coded = &CodedError{Code: ErrCodeStorageError, Message: err.Error(), Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeStorageError, Message: err.Error(), Cause: err}
	}

	slog.Warn("user store error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
