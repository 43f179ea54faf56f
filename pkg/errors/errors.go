// Package errors provides structured error types for the gallery application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "columns must be at least 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidImage  Code = "INVALID_IMAGE"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// IsInput reports whether the code describes bad input rather than a
// failure of the program.
func (c Code) IsInput() bool {
	return strings.HasPrefix(string(c), "INVALID_") || c == ErrCodeFileNotFound
}

// Error is a coded error. Message is written for the user; Cause, when
// set, is the lower-level failure.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + UserMessage(e)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// Is reports whether err's chain holds an *Error with the given code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns err without its code prefix: the message followed by
// the cause, if any. Other errors are returned as-is.
func UserMessage(err error) string {
	e := asError(err)
	if e == nil {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ImageError describes an input image whose declared size cannot be laid out.
// It is always returned wrapped in an *Error with code ErrCodeInvalidImage, so
// callers can match on the code and still recover the offending index:
//
//	var ie *errors.ImageError
//	if stderrors.As(err, &ie) {
//	    skip(ie.Index)
//	}
type ImageError struct {
	Index         int     // Position of the image in the input sequence
	Width, Height float64 // Declared dimensions
}

// Error implements the error interface.
func (e *ImageError) Error() string {
	return fmt.Sprintf("image %d has invalid size %gx%g", e.Index, e.Width, e.Height)
}

// Code returns the error code for this error type.
func (e *ImageError) Code() Code {
	return ErrCodeInvalidImage
}

// InvalidImage builds the coded error for a malformed image at index i.
func InvalidImage(i int, width, height float64) *Error {
	return Wrap(ErrCodeInvalidImage, &ImageError{Index: i, Width: width, Height: height},
		"width and height must be positive")
}

// AsImageError extracts the *ImageError from err's chain.
func AsImageError(err error) (*ImageError, bool) {
	var ie *ImageError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
