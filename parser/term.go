package parser

import (
	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/lang"
)

// ParseTerm parses a single BEL term from text. Trailing input after the
// term is a syntax error.
func (p *Parser) ParseTerm(text string) (ast.Term, *ParseError) {
	p.warnings = nil
	s := newScanner(text)
	term, perr := p.term(s)
	if perr != nil {
		return nil, perr.WithStatement(text)
	}
	s.skipSpace()
	if !s.eof() {
		return nil, NewParseError(ErrorKindSyntax,
			`unexpected trailing input "`+s.rest()+`"`).WithPosition(s.pos).WithStatement(text)
	}
	return term, nil
}

// term parses one term: an abundance function, a statement modifier
// wrapping a term, or a legacy activity function.
func (p *Parser) term(s *scanner) (ast.Term, *ParseError) {
	s.skipSpace()
	start := s.pos
	tag := s.word()
	if tag == "" {
		return nil, NewParseError(ErrorKindSyntax, "expected term").WithPosition(s.pos)
	}

	if kind, ok := lang.ModifierTags[tag]; ok {
		return p.modifiedTerm(s, kind)
	}
	if kind, ok := lang.FunctionTags[tag]; ok {
		return p.abundance(s, kind)
	}
	if label, ok := lang.ActivityLabels[tag]; ok {
		return p.legacyActivity(s, tag, label, start)
	}

	return nil, NewParseError(ErrorKindSyntax,
		`unknown function "`+tag+`"`).WithPosition(start)
}

// abundance parses the parenthesized body of an abundance function.
func (p *Parser) abundance(s *scanner, kind string) (ast.Term, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}

	var term ast.Term
	var perr *ParseError
	switch kind {
	case lang.Reaction:
		term, perr = p.reaction(s)
	case lang.Complex:
		term, perr = p.complexBody(s)
	case lang.Composite:
		term, perr = p.compositeBody(s)
	default:
		term, perr = p.abundanceBody(s, kind)
	}
	if perr != nil {
		return nil, perr
	}

	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return term, nil
}

// abundanceBody parses the content of a plain abundance: a fusion, or an
// identifier followed by variants and an optional location.
func (p *Parser) abundanceBody(s *scanner, kind string) (ast.Term, *ParseError) {
	s.skipSpace()
	word := s.peekWord()

	if word == "fus" || word == "fusion" {
		if kind != lang.Gene && kind != lang.RNA && kind != lang.MiRNA && kind != lang.Protein {
			return nil, NewParseError(ErrorKindMalformed,
				"fusions are only valid in gene, RNA, miRNA, and protein abundances").WithPosition(s.pos)
		}
		s.word()
		if perr := s.expect('('); perr != nil {
			return nil, perr
		}
		fus, perr := p.fusion(s)
		if perr != nil {
			return nil, perr
		}
		if perr := s.expect(')'); perr != nil {
			return nil, perr
		}
		fused := ast.FusedAbundance{Kind: kind, Fusion: fus}
		if s.accept(',') {
			loc, perr := p.tailLocation(s)
			if perr != nil {
				return nil, perr
			}
			fused.Location = loc
		}
		return fused, nil
	}

	id, perr := p.identifier(s)
	if perr != nil {
		return nil, perr
	}

	var variants []ast.Variant
	var location *ast.Identifier

	for s.accept(',') {
		s.skipSpace()
		next := s.peekWord()
		switch {
		case next == "loc" || next == "location":
			if location != nil {
				return nil, NewParseError(ErrorKindMalformed, "duplicate location").WithPosition(s.pos)
			}
			s.word()
			location, perr = p.location(s)
			if perr != nil {
				return nil, perr
			}
		case isVariantTag(kind, next):
			s.word()
			v, perr := p.variant(s, next)
			if perr != nil {
				return nil, perr
			}
			variants = append(variants, v)
		default:
			return nil, NewParseError(ErrorKindSyntax,
				`unexpected "`+next+`" in `+kind+` abundance`).WithPosition(s.pos)
		}
	}

	if len(variants) > 0 {
		return ast.ModifiedAbundance{Kind: kind, ID: id, Variants: variants, Location: location}, nil
	}
	return ast.SimpleAbundance{Kind: kind, ID: id, Location: location}, nil
}

// tailLocation parses "loc(NS:value)" after a comma.
func (p *Parser) tailLocation(s *scanner) (*ast.Identifier, *ParseError) {
	word := s.word()
	if word != "loc" && word != "location" {
		return nil, NewParseError(ErrorKindSyntax,
			`expected loc(), found "`+word+`"`).WithPosition(s.pos)
	}
	return p.location(s)
}

// complexBody parses the content of complex(): either a single identifier
// (a named complex) or a list of member terms.
func (p *Parser) complexBody(s *scanner) (ast.Term, *ParseError) {
	s.skipSpace()
	word := s.peekWord()

	// A member list starts with any term-opening tag; a named complex starts
	// with a namespace keyword or quoted value. Modifier and legacy activity
	// tags route through the list so memberList rejects them as members.
	if termOpensAt(word) {
		members, location, perr := p.memberList(s)
		if perr != nil {
			return nil, perr
		}
		if len(members) < 2 {
			return nil, NewParseError(ErrorKindMalformed,
				"enumerated complexes need at least two members").WithPosition(s.pos)
		}
		return ast.ComplexList{Members: members, Location: location}, nil
	}

	return p.abundanceBody(s, lang.Complex)
}

// compositeBody parses the content of composite(): a list of member terms.
func (p *Parser) compositeBody(s *scanner) (ast.Term, *ParseError) {
	members, location, perr := p.memberList(s)
	if perr != nil {
		return nil, perr
	}
	if location != nil {
		return nil, NewParseError(ErrorKindMalformed,
			"composites do not take a location").WithPosition(s.pos)
	}
	if len(members) < 2 {
		return nil, NewParseError(ErrorKindMalformed,
			"composites need at least two members").WithPosition(s.pos)
	}
	return ast.Composite{Members: members}, nil
}

// memberList parses comma-separated member terms up to the enclosing close
// parenthesis, with an optional trailing loc(). Members must be plain
// abundances: modifiers do not nest inside aggregates.
func (p *Parser) memberList(s *scanner) ([]ast.Term, *ast.Identifier, *ParseError) {
	var members []ast.Term
	for {
		s.skipSpace()
		pos := s.pos

		if next := s.peekWord(); next == "loc" || next == "location" {
			s.word()
			location, perr := p.location(s)
			if perr != nil {
				return nil, nil, perr
			}
			return members, location, nil
		}

		member, perr := p.term(s)
		if perr != nil {
			return nil, nil, perr
		}
		if _, ok := member.(ast.ModifiedTerm); ok {
			return nil, nil, NewParseError(ErrorKindMalformed,
				"modifiers are not valid inside aggregate members").WithPosition(pos)
		}
		members = append(members, member)
		if !s.accept(',') {
			return members, nil, nil
		}
	}
}

// reaction parses the content of rxn(): reactants(...) then products(...).
func (p *Parser) reaction(s *scanner) (ast.Term, *ParseError) {
	if word := s.word(); word != "reactants" {
		return nil, NewParseError(ErrorKindSyntax,
			`expected reactants(), found "`+word+`"`).WithPosition(s.pos)
	}
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	reactants, location, perr := p.memberList(s)
	if perr != nil {
		return nil, perr
	}
	if location != nil {
		return nil, NewParseError(ErrorKindMalformed,
			"reactants do not take a location").WithPosition(s.pos)
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}

	if perr := s.expect(','); perr != nil {
		return nil, perr
	}
	if word := s.word(); word != "products" {
		return nil, NewParseError(ErrorKindSyntax,
			`expected products(), found "`+word+`"`).WithPosition(s.pos)
	}
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	products, location, perr := p.memberList(s)
	if perr != nil {
		return nil, perr
	}
	if location != nil {
		return nil, NewParseError(ErrorKindMalformed,
			"products do not take a location").WithPosition(s.pos)
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}

	return ast.Reaction{Reactants: reactants, Products: products}, nil
}

// termOpensAt reports whether word begins a term rather than a namespace
// identifier.
func termOpensAt(word string) bool {
	if _, ok := lang.FunctionTags[word]; ok {
		return true
	}
	if _, ok := lang.ModifierTags[word]; ok {
		return true
	}
	_, ok := lang.ActivityLabels[word]
	return ok
}

// modifiedTerm parses the body of a statement modifier: act, deg, tloc,
// sec, or surf. Modifiers wrap exactly one inner term and never nest.
func (p *Parser) modifiedTerm(s *scanner, kind string) (ast.Term, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}

	s.skipSpace()
	innerPos := s.pos
	inner, perr := p.term(s)
	if perr != nil {
		return nil, perr
	}
	if _, ok := inner.(ast.ModifiedTerm); ok {
		return nil, NewParseError(ErrorKindMalformed,
			"modifiers cannot nest").WithPosition(innerPos)
	}

	mod := ast.TermModifier{Kind: kind}

	switch kind {
	case lang.Activity:
		if s.accept(',') {
			word := s.word()
			if word != "ma" && word != "molecularActivity" {
				return nil, NewParseError(ErrorKindSyntax,
					`expected ma(), found "`+word+`"`).WithPosition(s.pos)
			}
			mod.Activity, perr = p.molecularActivity(s)
			if perr != nil {
				return nil, perr
			}
		}
	case lang.Translocation:
		if s.accept(',') {
			mod.FromLoc, mod.ToLoc, perr = p.translocationLocations(s)
			if perr != nil {
				return nil, perr
			}
		} else {
			p.warn(NewParseError(ErrorKindMalformed,
				"unqualified translocation").WithPosition(innerPos).
				WithSuggestion("specify fromLoc() and toLoc()"))
		}
	}

	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return ast.ModifiedTerm{Modifier: mod, Target: inner}, nil
}

// translocationLocations parses the source and destination of tloc():
// fromLoc(NS:v), toLoc(NS:v) in BEL 2.0, or two bare identifiers in the
// legacy form, which raises a deprecation warning.
func (p *Parser) translocationLocations(s *scanner) (*ast.Identifier, *ast.Identifier, *ParseError) {
	s.skipSpace()
	start := s.pos
	word := s.peekWord()

	if word == "fromLoc" {
		s.word()
		from, perr := p.location(s)
		if perr != nil {
			return nil, nil, perr
		}
		if perr := s.expect(','); perr != nil {
			return nil, nil, perr
		}
		if w := s.word(); w != "toLoc" {
			return nil, nil, NewParseError(ErrorKindSyntax,
				`expected toLoc(), found "`+w+`"`).WithPosition(s.pos)
		}
		to, perr := p.location(s)
		if perr != nil {
			return nil, nil, perr
		}
		return from, to, nil
	}

	// Legacy form: tloc(X, GOCC:a, GOCC:b)
	from, perr := p.identifier(s)
	if perr != nil {
		return nil, nil, perr
	}
	if perr := s.expect(','); perr != nil {
		return nil, nil, perr
	}
	to, perr := p.identifier(s)
	if perr != nil {
		return nil, nil, perr
	}
	p.warn(NewParseError(ErrorKindSyntax,
		"deprecated bare translocation locations").WithPosition(start).
		WithSuggestion("use fromLoc() and toLoc()"))
	return &from, &to, nil
}

// legacyActivity parses the deprecated BEL 1.0 activity functions:
// kin(p(X)) desugars to act(p(X), ma(kin)) with a warning.
func (p *Parser) legacyActivity(s *scanner, tag, label string, start int) (ast.Term, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	s.skipSpace()
	innerPos := s.pos
	inner, perr := p.term(s)
	if perr != nil {
		return nil, perr
	}
	if _, ok := inner.(ast.ModifiedTerm); ok {
		return nil, NewParseError(ErrorKindMalformed,
			"modifiers cannot nest").WithPosition(innerPos)
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}

	p.warn(NewParseError(ErrorKindSyntax,
		`deprecated activity function "`+tag+`"`).WithPosition(start).
		WithSuggestion("use act(..., ma(" + lang.RevActivityLabels[label] + ")) instead"))

	return ast.ModifiedTerm{
		Modifier: ast.TermModifier{
			Kind:     lang.Activity,
			Activity: &ast.Identifier{Name: label},
		},
		Target: inner,
	}, nil
}
