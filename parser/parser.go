// Package parser implements the recursive-descent BEL statement grammar:
// abundance terms, variants, fusions, statement modifiers, relations, and
// the SET/UNSET control grammar. It produces ast values; graph construction
// lives in the graph package.
package parser

import (
	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/logger"
)

// NamespaceSet answers membership queries against the document's defined
// namespaces. A nil NamespaceSet disables semantic validation and the parser
// checks syntax only.
type NamespaceSet interface {
	// HasNamespace reports whether the keyword was defined.
	HasNamespace(keyword string) bool
	// HasMember reports whether name is a member of the namespace. Only
	// called for defined namespaces.
	HasMember(keyword, name string) bool
}

// Parser parses BEL statements. A Parser is stateful only for the duration
// of one ParseStatement call; create one per document and reuse it across
// statements.
type Parser struct {
	namespaces      NamespaceSet
	allowNakedNames bool

	// warnings collects non-fatal problems (deprecated forms) raised while
	// parsing the current statement.
	warnings []*ParseError
}

// Option configures a Parser.
type Option func(*Parser)

// WithNamespaces installs a namespace membership oracle. Identifiers with an
// unknown namespace or a non-member value then fail with a namespace error.
func WithNamespaces(ns NamespaceSet) Option {
	return func(p *Parser) { p.namespaces = ns }
}

// WithNakedNames permits identifiers without a namespace prefix. Each use
// raises a warning instead of an error.
func WithNakedNames() Option {
	return func(p *Parser) { p.allowNakedNames = true }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Warnings returns the non-fatal problems raised by the most recent parse
// call. The slice is reset at the start of every statement.
func (p *Parser) Warnings() []*ParseError {
	return p.warnings
}

func (p *Parser) warn(e *ParseError) {
	e.Severity = SeverityWarning
	logger.Debugw("parse warning", "message", e.Message)
	p.warnings = append(p.warnings, e)
}

// identifier parses NS:Name or, when naked names are allowed, a bare name.
// The name part may be quoted. Namespace validation happens here so every
// grammar position that reads an identifier gets the same checks.
func (p *Parser) identifier(s *scanner) (ast.Identifier, *ParseError) {
	s.skipSpace()
	start := s.pos

	if s.peek() == '"' {
		// A quoted value with no namespace prefix.
		name, perr := s.quoted()
		if perr != nil {
			return ast.Identifier{}, perr
		}
		return p.nakedName(name, start)
	}

	word := s.word()
	if word == "" {
		return ast.Identifier{}, NewParseError(ErrorKindSyntax, "expected identifier").WithPosition(s.pos)
	}

	if !s.accept(':') {
		return p.nakedName(word, start)
	}

	name, perr := s.value()
	if perr != nil {
		return ast.Identifier{}, perr
	}

	if p.namespaces != nil {
		if !p.namespaces.HasNamespace(word) {
			return ast.Identifier{}, NewParseError(ErrorKindNamespace,
				`namespace "`+word+`" is not defined`).WithPosition(start).
				WithSuggestion("add a DEFINE NAMESPACE line for " + word)
		}
		if !p.namespaces.HasMember(word, name) {
			return ast.Identifier{}, NewParseError(ErrorKindNamespace,
				`"`+name+`" is not a member of namespace `+word).WithPosition(start)
		}
	}

	return ast.Identifier{Namespace: word, Name: name}, nil
}

func (p *Parser) nakedName(name string, pos int) (ast.Identifier, *ParseError) {
	if !p.allowNakedNames {
		return ast.Identifier{}, NewParseError(ErrorKindNamespace,
			`name "`+name+`" has no namespace`).WithPosition(pos).
			WithSuggestion("qualify the value as NAMESPACE:" + name)
	}
	p.warn(NewParseError(ErrorKindNamespace,
		`naked name "`+name+`"`).WithPosition(pos))
	return ast.Identifier{Name: name}, nil
}
