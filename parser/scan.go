package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// scanner is a rune cursor over a single statement's text. The term and
// relation parsers drive it directly; there is no separate token stream
// because BEL's lexical structure is simple enough to read in place.
type scanner struct {
	input []rune
	pos   int
}

func newScanner(text string) *scanner {
	return &scanner{input: []rune(text)}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) next() rune {
	r := s.peek()
	s.pos++
	return r
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
}

// rest returns the unconsumed text, for error messages.
func (s *scanner) rest() string {
	if s.eof() {
		return ""
	}
	return string(s.input[s.pos:])
}

// accept consumes r if it is next, after skipping space.
func (s *scanner) accept(r rune) bool {
	s.skipSpace()
	if s.peek() == r {
		s.pos++
		return true
	}
	return false
}

// expect consumes r or fails with a syntax error at the current position.
func (s *scanner) expect(r rune) *ParseError {
	if s.accept(r) {
		return nil
	}
	return NewParseError(ErrorKindSyntax,
		"expected '"+string(r)+"'").WithPosition(s.pos)
}

// acceptLiteral consumes lit if the input starts with it at the cursor.
func (s *scanner) acceptLiteral(lit string) bool {
	s.skipSpace()
	runes := []rune(lit)
	if s.pos+len(runes) > len(s.input) {
		return false
	}
	for i, r := range runes {
		if s.input[s.pos+i] != r {
			return false
		}
	}
	s.pos += len(runes)
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// word reads a bare identifier-like run: letters, digits, underscore.
// Returns the empty string if the cursor is not at a word rune.
func (s *scanner) word() string {
	s.skipSpace()
	start := s.pos
	for !s.eof() && isWordRune(s.input[s.pos]) {
		s.pos++
	}
	return string(s.input[start:s.pos])
}

// peekWord reads a word without consuming it.
func (s *scanner) peekWord() string {
	save := s.pos
	w := s.word()
	s.pos = save
	return w
}

// quoted reads a double-quoted string with backslash escapes. The cursor
// must be at the opening quote.
func (s *scanner) quoted() (string, *ParseError) {
	s.skipSpace()
	if s.peek() != '"' {
		return "", NewParseError(ErrorKindSyntax, "expected quoted string").WithPosition(s.pos)
	}
	s.pos++
	var sb strings.Builder
	for !s.eof() {
		r := s.next()
		switch r {
		case '\\':
			if s.eof() {
				return "", NewParseError(ErrorKindSyntax, "unterminated escape in quoted string").WithPosition(s.pos)
			}
			sb.WriteRune(s.next())
		case '"':
			return sb.String(), nil
		default:
			sb.WriteRune(r)
		}
	}
	return "", NewParseError(ErrorKindSyntax, "unterminated quoted string").WithPosition(s.pos)
}

// value reads either a quoted string or a bare word.
func (s *scanner) value() (string, *ParseError) {
	s.skipSpace()
	if s.peek() == '"' {
		return s.quoted()
	}
	w := s.word()
	if w == "" {
		return "", NewParseError(ErrorKindSyntax, "expected value").WithPosition(s.pos)
	}
	return w, nil
}

// integer reads a decimal integer.
func (s *scanner) integer() (int, *ParseError) {
	s.skipSpace()
	start := s.pos
	for !s.eof() && unicode.IsDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return 0, NewParseError(ErrorKindSyntax, "expected integer").WithPosition(s.pos)
	}
	n, err := strconv.Atoi(string(s.input[start:s.pos]))
	if err != nil {
		return 0, NewParseError(ErrorKindSyntax, "invalid integer").WithPosition(start).WithUnderlying(err)
	}
	return n, nil
}
