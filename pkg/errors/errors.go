// Package errors provides structured error types for alpsviz.
//
// Every failure in the resolve → build → render pipeline is fatal and carries a
// machine-readable [Code], so the CLI and the preview server can report it and
// map it to an exit status or HTTP status without string matching.
//
// # Error Codes
//
// Profile errors mirror the ways an ALPS document can be broken:
//   - FILE_NOT_READABLE: a referenced file is missing or unreadable
//   - INVALID_DOCUMENT: the root structure lacks the top-level descriptor list
//   - MALFORMED_INPUT: the source text is not valid in its declared format
//   - DESCRIPTOR_NOT_FOUND: an href/rt fragment does not resolve
//   - INVALID_DESCRIPTOR: a node has neither id nor href
//   - DESCRIPTOR_IS_NOT_ARRAY: a descriptor property is not list-shaped
//   - RT_MISSING: a transition lacks a #-qualified rt
//   - INVALID_REFERENCE_FORMAT: an href lacks the # separator
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRtMissing, "transition %q has no rt", id)
//	if errors.Is(err, errors.ErrCodeRtMissing) {
//	    // Handle missing target
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotReadable, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Profile loading errors
	ErrCodeFileNotReadable Code = "FILE_NOT_READABLE"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeMalformedInput  Code = "MALFORMED_INPUT"

	// Reference and descriptor errors
	ErrCodeDescriptorNotFound     Code = "DESCRIPTOR_NOT_FOUND"
	ErrCodeInvalidDescriptor      Code = "INVALID_DESCRIPTOR"
	ErrCodeDescriptorIsNotArray   Code = "DESCRIPTOR_IS_NOT_ARRAY"
	ErrCodeRtMissing              Code = "RT_MISSING"
	ErrCodeInvalidReferenceFormat Code = "INVALID_REFERENCE_FORMAT"

	// Option validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsNotFound reports whether err means something the caller asked for does not exist.
func IsNotFound(err error) bool {
	return Is(err, ErrCodeFileNotReadable) || Is(err, ErrCodeDescriptorNotFound)
}

// IsInvalidProfile reports whether err was caused by the content of a profile
// rather than by the environment.
func IsInvalidProfile(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidDocument, ErrCodeMalformedInput, ErrCodeInvalidDescriptor,
		ErrCodeDescriptorIsNotArray, ErrCodeRtMissing, ErrCodeInvalidReferenceFormat:
		return true
	}
	return false
}
