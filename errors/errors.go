// Package errors defines the structured errors returned by xmlext parsers
// and loaders.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies an Error.
type ErrorCode string

const (
	// ErrXMLParse indicates the XML input is not well formed.
	ErrXMLParse ErrorCode = "xml-parse-error"
	// ErrNoRoot indicates the XML input has no root element.
	ErrNoRoot ErrorCode = "xml-no-root"
	// ErrMaxDepth indicates element nesting exceeded the configured limit.
	ErrMaxDepth ErrorCode = "xml-max-depth"
	// ErrManifestInvalid indicates a container manifest failed validation.
	ErrManifestInvalid ErrorCode = "manifest-invalid"
	// ErrRootMismatch indicates a document root is not the expected container.
	ErrRootMismatch ErrorCode = "root-mismatch"
)

// Error is a coded error with optional location context.
//
//nolint:errname // public API name.
type Error struct {
	Code    string
	Message string
	Path    string
	Line    int
	Column  int
}

// List is an error wrapping one or more Errors.
type List []Error //nolint:errname // public API name.

// Error returns a compact summary of the errors.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Error formats the code, message and location.
func (e *Error) Error() string {
	if e == nil {
		return "error <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", e.Path))
	}
	if e.Line > 0 {
		if e.Path == "" {
			b.WriteString(fmt.Sprintf(" at line %d", e.Line))
		} else {
			b.WriteString(fmt.Sprintf(" (line %d)", e.Line))
		}
		if e.Column > 0 {
			b.WriteString(fmt.Sprintf(", column %d", e.Column))
		}
	}
	return b.String()
}

// New builds an Error with a code, message and optional path.
func New(code ErrorCode, msg, path string) Error {
	return Error{Code: string(code), Message: msg, Path: path}
}

// Newf formats a message and builds an Error.
func Newf(code ErrorCode, path, format string, args ...any) Error {
	return New(code, fmt.Sprintf(format, args...), path)
}

// At returns a copy of e located at line and column.
func (e Error) At(line, column int) Error {
	e.Line = line
	e.Column = column
	return e
}

// As extracts coded errors from err.
func As(err error) ([]Error, bool) {
	if err == nil {
		return nil, false
	}
	var list List
	if errors.As(err, &list) {
		return []Error(list), true
	}
	var listPtr *List
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}
	return nil, false
}

// HasCode reports whether err carries an Error with code.
func HasCode(err error, code ErrorCode) bool {
	list, ok := As(err)
	if !ok {
		return false
	}
	for _, e := range list {
		if e.Code == string(code) {
			return true
		}
	}
	return false
}
