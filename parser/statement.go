package parser

import (
	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/lang"
)

// Statement is one parsed BEL statement. A bare term parses to a Statement
// with an empty Relation. hasMembers statements carry their list in
// ObjectList instead of Object.
type Statement struct {
	Subject    ast.Term
	Relation   string
	Object     ast.Term
	ObjectList []ast.Term
}

// relationSymbols are the symbolic relation spellings, longest first so
// "=>" wins over "=|"-style prefix confusion at the cursor.
var relationSymbols = []string{"=>", "=|", "->", "-|", ":>", ">>", "--", "→", "⇒"}

// ParseStatement parses one BEL statement: subject, optional relation, and
// object. Nested statements are recognized and rejected with a distinct
// nested-relation error so callers can report them precisely.
func (p *Parser) ParseStatement(text string) (*Statement, *ParseError) {
	p.warnings = nil
	s := newScanner(text)

	subject, perr := p.term(s)
	if perr != nil {
		return nil, perr.WithStatement(text)
	}

	s.skipSpace()
	if s.eof() {
		return &Statement{Subject: subject}, nil
	}

	relation, perr := p.relation(s)
	if perr != nil {
		return nil, perr.WithStatement(text)
	}
	if lang.DeprecatedRelations[relation] {
		p.warn(NewParseError(ErrorKindSyntax,
			`deprecated relation "`+relation+`"`).WithPosition(s.pos))
	}

	stmt := &Statement{Subject: subject, Relation: relation}

	switch {
	case relation == lang.HasMembers:
		stmt.ObjectList, perr = p.objectList(s)
	default:
		stmt.Object, perr = p.object(s, relation)
	}
	if perr != nil {
		return nil, perr.WithStatement(text)
	}

	s.skipSpace()
	if !s.eof() {
		return nil, NewParseError(ErrorKindSyntax,
			`unexpected trailing input "`+s.rest()+`"`).WithPosition(s.pos).WithStatement(text)
	}

	if perr := p.checkOperands(stmt); perr != nil {
		return nil, perr.WithStatement(text)
	}

	return stmt, nil
}

// relation reads a relation spelling, symbolic or word form, and returns
// the canonical relation name.
func (p *Parser) relation(s *scanner) (string, *ParseError) {
	s.skipSpace()
	start := s.pos

	for _, sym := range relationSymbols {
		if s.acceptLiteral(sym) {
			return lang.RelationTags[sym], nil
		}
	}

	word := s.word()
	if word == "" {
		return "", NewParseError(ErrorKindSyntax, "expected relation").WithPosition(start)
	}
	relation, ok := lang.RelationTags[word]
	if !ok {
		return "", NewParseError(ErrorKindSyntax,
			`unknown relation "`+word+`"`).WithPosition(start)
	}
	return relation, nil
}

// object parses a statement object: a term, or a parenthesized statement,
// which is recognized only to be rejected as a nested relation.
func (p *Parser) object(s *scanner, relation string) (ast.Term, *ParseError) {
	s.skipSpace()
	if s.peek() == '(' {
		if !lang.CausalRelations[relation] {
			return nil, NewParseError(ErrorKindSyntax,
				"unexpected '('").WithPosition(s.pos)
		}
		return nil, p.nestedStatement(s)
	}
	return p.term(s)
}

// nestedStatement consumes a parenthesized statement and always fails with
// a nested-relation error. Parsing it through means a malformed inner
// statement still reports its own, more specific error.
func (p *Parser) nestedStatement(s *scanner) *ParseError {
	start := s.pos
	s.next() // consume '('

	if _, perr := p.term(s); perr != nil {
		return perr
	}
	if _, perr := p.relation(s); perr != nil {
		return perr
	}
	if _, perr := p.term(s); perr != nil {
		return perr
	}
	if perr := s.expect(')'); perr != nil {
		return perr
	}

	return NewParseError(ErrorKindNested,
		"nested relations are not supported").WithPosition(start).
		WithSuggestion("split the statement in two and relate them separately")
}

// objectList parses "list(term, term, ...)" for hasMembers statements.
func (p *Parser) objectList(s *scanner) ([]ast.Term, *ParseError) {
	if word := s.word(); word != "list" {
		return nil, NewParseError(ErrorKindSyntax,
			`expected list(), found "`+word+`"`).WithPosition(s.pos)
	}
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	members, location, perr := p.memberList(s)
	if perr != nil {
		return nil, perr
	}
	if location != nil {
		return nil, NewParseError(ErrorKindMalformed,
			"member lists do not take a location").WithPosition(s.pos)
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return members, nil
}

// termKind returns the abundance kind of a plain term, or "" when the term
// carries a statement modifier and its kind is not directly comparable.
func termKind(t ast.Term) string {
	switch v := t.(type) {
	case ast.SimpleAbundance:
		return v.Kind
	case ast.ModifiedAbundance:
		return v.Kind
	case ast.FusedAbundance:
		return v.Kind
	case ast.ComplexList:
		return lang.Complex
	case ast.Composite:
		return lang.Composite
	case ast.Reaction:
		return lang.Reaction
	}
	return ""
}

// checkOperands enforces the operand kinds the central-dogma relations
// require. Other relations accept any term.
func (p *Parser) checkOperands(stmt *Statement) *ParseError {
	switch stmt.Relation {
	case lang.TranscribedTo:
		if k := termKind(stmt.Subject); k != "" && k != lang.Gene {
			return NewParseError(ErrorKindMalformed,
				"transcribedTo requires a gene subject")
		}
		if k := termKind(stmt.Object); k != "" && k != lang.RNA && k != lang.MiRNA {
			return NewParseError(ErrorKindMalformed,
				"transcribedTo requires an RNA or miRNA object")
		}
	case lang.TranslatedTo:
		if k := termKind(stmt.Subject); k != "" && k != lang.RNA {
			return NewParseError(ErrorKindMalformed,
				"translatedTo requires an RNA subject")
		}
		if k := termKind(stmt.Object); k != "" && k != lang.Protein {
			return NewParseError(ErrorKindMalformed,
				"translatedTo requires a protein object")
		}
	case lang.HasComponent:
		if k := termKind(stmt.Subject); k != "" && k != lang.Complex && k != lang.Composite {
			return NewParseError(ErrorKindMalformed,
				"hasComponent requires a complex or composite subject")
		}
	}
	return nil
}
