// Package errors provides error handling for belgraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNestedRelation) {
//	    // handle nested statement rejection
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the BEL compiler core. Use these with errors.Is() for
// type-safe checking and wrap them with errors.Wrap() to add context while
// preserving the category.
var (
	// ErrSyntax indicates the grammar could not match the statement text.
	ErrSyntax = New("syntax error")

	// ErrInvalidNamespace indicates an unknown namespace, a value that is not
	// a member of its namespace, or an unstable namespace mapping.
	ErrInvalidNamespace = New("invalid namespace")

	// ErrNestedRelation indicates a statement whose object is itself a
	// relationship. Rejecting these is a language-design decision, not a
	// parser limitation.
	ErrNestedRelation = New("nested relations are not supported")

	// ErrMalformedTerm indicates a term that matched the grammar but is
	// missing fields the graph builder requires.
	ErrMalformedTerm = New("malformed term")

	// ErrUnsupportedTerm indicates a term kind the graph builder does not
	// handle, e.g. a language extension that is not implemented yet.
	ErrUnsupportedTerm = New("unsupported term")

	// ErrUnknownModifier indicates an edge carries a subject or object
	// modifier kind the canonical writer does not recognize.
	ErrUnknownModifier = New("unknown modifier")

	// ErrMissingMetadata indicates a required document metadata key was not
	// set by the end of the document section.
	ErrMissingMetadata = New("missing document metadata")

	// ErrDocumentSection indicates a failure in the document or definitions
	// sections. These abort the whole parse: a broken namespace table would
	// invalidate every following statement.
	ErrDocumentSection = New("document section failure")
)

// IsRecoverable reports whether an error is recoverable at statement
// granularity. Recoverable errors become warnings; anything else aborts the
// parse.
func IsRecoverable(err error) bool {
	return IsAny(err,
		ErrSyntax,
		ErrInvalidNamespace,
		ErrNestedRelation,
		ErrMalformedTerm,
		ErrUnsupportedTerm,
	)
}

// IsNestedRelationError checks if an error is or wraps ErrNestedRelation.
func IsNestedRelationError(err error) bool {
	return err != nil && Is(err, ErrNestedRelation)
}

// IsNamespaceError checks if an error is or wraps ErrInvalidNamespace.
func IsNamespaceError(err error) bool {
	return err != nil && Is(err, ErrInvalidNamespace)
}

// NewSyntaxError creates a syntax error with a formatted message.
func NewSyntaxError(format string, args ...interface{}) error {
	return Wrap(ErrSyntax, Newf(format, args...).Error())
}

// NewMalformedTermError creates a malformed-term error with a formatted message.
func NewMalformedTermError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedTerm, Newf(format, args...).Error())
}
