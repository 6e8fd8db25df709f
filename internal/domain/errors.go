package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrOversizeInput        = errors.New("input exceeds size limit")
	ErrDocumentParse        = errors.New("document could not be parsed")
	ErrEmptyDocument        = errors.New("document has no pages")
)

// DocumentError ties one of the domain errors to the input role that caused it.
type DocumentError struct {
	Role  Role
	Kind  error
	Size  int64
	Limit int64
	Cause error
}

func (e *DocumentError) Error() string {
	msg := e.Kind.Error()
	if e.Role != "" {
		msg = string(e.Role) + ": " + msg
	}
	if e.Limit > 0 {
		msg = fmt.Sprintf("%s (%d > %d bytes)", msg, e.Size, e.Limit)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *DocumentError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewMissingInputError reports that a required role was not supplied.
func NewMissingInputError(role Role) *DocumentError {
	return &DocumentError{Role: role, Kind: ErrMissingRequiredInput}
}

// NewOversizeError reports an input larger than limit.
func NewOversizeError(role Role, size, limit int64) *DocumentError {
	return &DocumentError{Role: role, Kind: ErrOversizeInput, Size: size, Limit: limit}
}

// NewParseError reports a buffer that is not a readable PDF.
func NewParseError(role Role, cause error) *DocumentError {
	return &DocumentError{Role: role, Kind: ErrDocumentParse, Cause: cause}
}

// NewEmptyDocumentError reports a parsed document without pages.
func NewEmptyDocumentError(role Role) *DocumentError {
	return &DocumentError{Role: role, Kind: ErrEmptyDocument}
}
