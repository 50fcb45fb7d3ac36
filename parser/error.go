package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/openbiodata/belgraph/errors"
)

// ErrorSeverity indicates the severity level of a parser error
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"   // Errors that reject the statement
	SeverityWarning ErrorSeverity = "warning" // Deprecation and best-effort warnings
	SeverityInfo    ErrorSeverity = "info"    // Informational messages
	SeverityHint    ErrorSeverity = "hint"    // Suggestions for improvement
)

// ErrorKind categorizes parser errors for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax    ErrorKind = "syntax"    // Grammar could not match the text
	ErrorKindNamespace ErrorKind = "namespace" // Unknown namespace or non-member value
	ErrorKindNested    ErrorKind = "nested"    // Relationship used as an object
	ErrorKindMalformed ErrorKind = "malformed" // Matched grammar but missing required fields
	ErrorKindUnknown   ErrorKind = "unknown"   // Uncategorized
)

// ErrorContext selects the output format for FormatError
type ErrorContext string

const (
	ErrorContextTerminal ErrorContext = "terminal" // Rich colored output
	ErrorContextPlain    ErrorContext = "plain"    // Concise output for logs
)

// ParseError represents a structured parser error with source position
// metadata
type ParseError struct {
	Err         error                  // Underlying sentinel-wrapping error
	Kind        ErrorKind              // Error category
	Severity    ErrorSeverity          // Error severity
	Message     string                 // Human-readable message
	Line        int                    // 1-based physical line in the document, 0 if unknown
	Position    int                    // Rune offset in the statement text, -1 if unknown
	Statement   string                 // The statement text being parsed
	Suggestions []string               // Possible fixes
	Context     map[string]interface{} // Additional debug context
	Timestamp   time.Time              // When error occurred
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

// formatPlainError creates concise error for logs and warning records
func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Position >= 0 {
		msg += fmt.Sprintf(" (at offset %d)", e.Position)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates rich colored error for terminal
func (e *ParseError) formatTerminalError() string {
	var baseMsg string
	switch e.Severity {
	case SeverityError:
		baseMsg = pterm.Red(e.Message)
	case SeverityWarning:
		baseMsg = pterm.Yellow(e.Message)
	case SeverityInfo:
		baseMsg = pterm.Blue(e.Message)
	case SeverityHint:
		baseMsg = pterm.LightCyan(e.Message)
	default:
		baseMsg = e.Message
	}

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	if e.Line > 0 {
		context += fmt.Sprintf("\n  %s %d", pterm.Yellow("Line:"), e.Line)
	}
	if e.Statement != "" {
		context += fmt.Sprintf("\n  %s %s", pterm.Yellow("Statement:"), e.Statement)
		if e.Position >= 0 && e.Position <= len(e.Statement) {
			context += fmt.Sprintf("\n  %s%s", strings.Repeat(" ", len("Statement: ")+e.Position+2), pterm.Red("^"))
		}
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  - %s", suggestion)
		}
	}

	return fmt.Sprintf("%s%s", baseMsg, context)
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsWarning returns true if this error has warning severity specifically
func (e *ParseError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// Recoverable reports whether the error is recoverable at statement
// granularity and should be recorded as a warning rather than abort the
// whole parse.
func (e *ParseError) Recoverable() bool {
	if e.Severity == SeverityWarning {
		return true
	}
	return errors.IsRecoverable(e.Err)
}

// Builder pattern for constructing ParseErrors

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, message string) *ParseError {
	err := &ParseError{
		Kind:      kind,
		Severity:  SeverityError,
		Message:   message,
		Position:  -1,
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
	}
	switch kind {
	case ErrorKindSyntax:
		err.Err = errors.ErrSyntax
	case ErrorKindNamespace:
		err.Err = errors.ErrInvalidNamespace
	case ErrorKindNested:
		err.Err = errors.ErrNestedRelation
	case ErrorKindMalformed:
		err.Err = errors.ErrMalformedTerm
	}
	return err
}

// WithLine sets the 1-based document line where the error occurred
func (e *ParseError) WithLine(line int) *ParseError {
	e.Line = line
	return e
}

// WithPosition sets the rune offset in the statement text
func (e *ParseError) WithPosition(pos int) *ParseError {
	e.Position = pos
	return e
}

// WithStatement sets the statement text being parsed
func (e *ParseError) WithStatement(text string) *ParseError {
	e.Statement = text
	return e
}

// WithSeverity sets the error severity
func (e *ParseError) WithSeverity(sev ErrorSeverity) *ParseError {
	e.Severity = sev
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithContext adds debug context metadata
func (e *ParseError) WithContext(key string, value interface{}) *ParseError {
	e.Context[key] = value
	return e
}

// WithUnderlying sets the underlying error
func (e *ParseError) WithUnderlying(err error) *ParseError {
	e.Err = err
	return e
}

// Warning is one recoverable problem recorded during a document parse:
// the physical line, the offending text, and the structured error.
type Warning struct {
	Line int
	Text string
	Err  *ParseError
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Err.Message, w.Text)
}
