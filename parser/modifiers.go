package parser

import (
	"strings"

	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/lang"
)

// variantAllowed lists which variant tags each abundance kind accepts.
// Proteins take the full set; nucleic acid abundances take sequence
// variants, and genes additionally keep the legacy sub() form.
var variantAllowed = map[string]map[string]bool{
	lang.Gene:    {"var": true, "variant": true, "sub": true, "substitution": true},
	lang.RNA:     {"var": true, "variant": true},
	lang.MiRNA:   {"var": true, "variant": true},
	lang.Protein: {"var": true, "variant": true, "pmod": true, "proteinModification": true, "frag": true, "fragment": true, "sub": true, "substitution": true},
}

// isVariantTag reports whether the next word opens a variant for the given
// abundance kind.
func isVariantTag(kind, word string) bool {
	allowed, ok := variantAllowed[kind]
	return ok && allowed[word]
}

// variant parses one variant after its tag word has been consumed. The
// opening parenthesis has not been consumed yet.
func (p *Parser) variant(s *scanner, tag string) (ast.Variant, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	var v ast.Variant
	var perr *ParseError
	switch tag {
	case "pmod", "proteinModification":
		v, perr = p.pmod(s)
	case "var", "variant":
		v, perr = p.hgvs(s)
	case "frag", "fragment":
		v, perr = p.fragment(s)
	case "sub", "substitution":
		v, perr = p.substitution(s)
	default:
		return nil, NewParseError(ErrorKindSyntax, `unknown variant tag "`+tag+`"`).WithPosition(s.pos)
	}
	if perr != nil {
		return nil, perr
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return v, nil
}

// pmod parses the inside of pmod(): a modification name, an optional amino
// acid code, and an optional residue position. Legacy single-letter codes
// are upgraded with a warning.
func (p *Parser) pmod(s *scanner) (ast.Variant, *ParseError) {
	s.skipSpace()
	start := s.pos

	word := s.word()
	if word == "" {
		return nil, NewParseError(ErrorKindSyntax, "expected modification name").WithPosition(s.pos)
	}

	var name ast.Identifier
	if s.accept(':') {
		value, perr := s.value()
		if perr != nil {
			return nil, perr
		}
		if p.namespaces != nil && !p.namespaces.HasNamespace(word) {
			return nil, NewParseError(ErrorKindNamespace,
				`namespace "`+word+`" is not defined`).WithPosition(start)
		}
		name = ast.Identifier{Namespace: word, Name: value}
	} else {
		if modern, ok := lang.LegacyPmodCodes[word]; ok {
			p.warn(NewParseError(ErrorKindSyntax,
				`deprecated modification code "`+word+`"`).WithPosition(start).
				WithSuggestion("use " + modern + " instead"))
			word = modern
		} else if !lang.PmodCodes[word] {
			return nil, NewParseError(ErrorKindSyntax,
				`unknown modification code "`+word+`"`).WithPosition(start)
		}
		name = ast.Identifier{Name: word}
	}

	mod := ast.ProteinModification{Name: name}

	if s.accept(',') {
		code := s.word()
		if !lang.IsAminoAcid(code) {
			return nil, NewParseError(ErrorKindSyntax,
				`invalid amino acid code "`+code+`"`).WithPosition(s.pos)
		}
		if three, ok := lang.AminoAcids[code]; ok {
			code = three
		}
		mod.Code = code

		if s.accept(',') {
			pos, perr := s.integer()
			if perr != nil {
				return nil, perr
			}
			mod.Position = &pos
		}
	}

	return mod, nil
}

// hgvs parses the inside of var(): a quoted or bare HGVS string, kept
// uninterpreted. "?" marks an explicitly unknown variant.
func (p *Parser) hgvs(s *scanner) (ast.Variant, *ParseError) {
	s.skipSpace()
	if s.peek() == '?' {
		s.pos++
		return ast.SequenceVariant{HGVS: "?"}, nil
	}
	if s.peek() == '"' {
		text, perr := s.quoted()
		if perr != nil {
			return nil, perr
		}
		return ast.SequenceVariant{HGVS: text}, nil
	}
	// A bare HGVS string runs to the closing parenthesis.
	start := s.pos
	for !s.eof() && s.peek() != ')' && s.peek() != ',' {
		s.pos++
	}
	text := strings.TrimSpace(string(s.input[start:s.pos]))
	if text == "" {
		return nil, NewParseError(ErrorKindSyntax, "empty variant").WithPosition(start)
	}
	return ast.SequenceVariant{HGVS: text}, nil
}

// fragment parses the inside of frag(): a quoted coordinate range and an
// optional description.
func (p *Parser) fragment(s *scanner) (ast.Variant, *ParseError) {
	rng, perr := s.value()
	if perr != nil {
		return nil, perr
	}

	frag := ast.Fragment{}
	switch {
	case rng == "?":
		frag.Missing = true
	default:
		start, stop, ok := strings.Cut(rng, "_")
		if !ok {
			return nil, NewParseError(ErrorKindSyntax,
				`invalid fragment range "`+rng+`"`).WithPosition(s.pos).
				WithSuggestion(`write the range as "start_stop", e.g. "5_20"`)
		}
		if !validFragCoord(start, false) || !validFragCoord(stop, true) {
			return nil, NewParseError(ErrorKindSyntax,
				`invalid fragment range "`+rng+`"`).WithPosition(s.pos)
		}
		frag.Start, frag.Stop = start, stop
	}

	if s.accept(',') {
		desc, perr := s.value()
		if perr != nil {
			return nil, perr
		}
		frag.Description = desc
	}

	return frag, nil
}

// validFragCoord accepts a digit run or "?"; "*" is only valid as a stop.
func validFragCoord(c string, stop bool) bool {
	if c == "?" {
		return true
	}
	if c == "*" {
		return stop
	}
	if c == "" {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// substitution parses the inside of the legacy sub() form and raises a
// deprecation warning pointing at the HGVS replacement.
func (p *Parser) substitution(s *scanner) (ast.Variant, *ParseError) {
	start := s.pos

	ref := s.word()
	if ref == "" {
		return nil, NewParseError(ErrorKindSyntax, "expected reference allele or amino acid").WithPosition(s.pos)
	}
	if perr := s.expect(','); perr != nil {
		return nil, perr
	}
	pos, perr := s.integer()
	if perr != nil {
		return nil, perr
	}
	if perr := s.expect(','); perr != nil {
		return nil, perr
	}
	variant := s.word()
	if variant == "" {
		return nil, NewParseError(ErrorKindSyntax, "expected variant allele or amino acid").WithPosition(s.pos)
	}

	p.warn(NewParseError(ErrorKindSyntax, "deprecated sub() variant").WithPosition(start).
		WithSuggestion("use var() with HGVS notation instead"))

	return ast.Substitution{Reference: ref, Position: pos, Variant: variant}, nil
}

// location parses the inside of loc(): a single namespaced identifier.
func (p *Parser) location(s *scanner) (*ast.Identifier, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}
	id, perr := p.identifier(s)
	if perr != nil {
		return nil, perr
	}
	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return &id, nil
}

// fusion parses the inside of fus(): 5' partner, 5' range, 3' partner,
// 3' range. Ranges are quoted like "r.1_79" or "?" when unspecified.
func (p *Parser) fusion(s *scanner) (ast.Fusion, *ParseError) {
	var fus ast.Fusion
	var perr *ParseError

	if fus.Partner5, perr = p.identifier(s); perr != nil {
		return fus, perr
	}
	if perr := s.expect(','); perr != nil {
		return fus, perr
	}
	if fus.Range5, perr = p.fusionRange(s); perr != nil {
		return fus, perr
	}
	if perr := s.expect(','); perr != nil {
		return fus, perr
	}
	if fus.Partner3, perr = p.identifier(s); perr != nil {
		return fus, perr
	}
	if perr := s.expect(','); perr != nil {
		return fus, perr
	}
	if fus.Range3, perr = p.fusionRange(s); perr != nil {
		return fus, perr
	}
	return fus, nil
}

// fusionRange parses one quoted fusion coordinate range: a reference letter
// (c, r, or p), a dot, and start_stop coordinates where either side may be
// "?". The whole range may also be just "?".
func (p *Parser) fusionRange(s *scanner) (ast.FusionRange, *ParseError) {
	start := s.pos
	text, perr := s.value()
	if perr != nil {
		return ast.FusionRange{}, perr
	}
	if text == "?" {
		return ast.FusionRange{Missing: true}, nil
	}

	ref, coords, ok := strings.Cut(text, ".")
	if !ok || (ref != "c" && ref != "r" && ref != "p") {
		return ast.FusionRange{}, NewParseError(ErrorKindSyntax,
			`invalid fusion range "`+text+`"`).WithPosition(start).
			WithSuggestion(`ranges look like "r.1_79" or "?"`)
	}
	lo, hi, ok := strings.Cut(coords, "_")
	if !ok || !validFusionCoord(lo) || !validFusionCoord(hi) {
		return ast.FusionRange{}, NewParseError(ErrorKindSyntax,
			`invalid fusion range "`+text+`"`).WithPosition(start)
	}
	return ast.FusionRange{Reference: ref, Start: lo, Stop: hi}, nil
}

func validFusionCoord(c string) bool {
	if c == "?" {
		return true
	}
	if c == "" {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// molecularActivity parses the inside of ma(): either a default-namespace
// activity label (kin, tscript, ...) or a namespaced identifier.
func (p *Parser) molecularActivity(s *scanner) (*ast.Identifier, *ParseError) {
	if perr := s.expect('('); perr != nil {
		return nil, perr
	}

	s.skipSpace()
	start := s.pos
	var id ast.Identifier

	if s.peek() == '"' {
		name, perr := s.quoted()
		if perr != nil {
			return nil, perr
		}
		id = ast.Identifier{Name: name}
	} else {
		word := s.word()
		if word == "" {
			return nil, NewParseError(ErrorKindSyntax, "expected activity").WithPosition(s.pos)
		}
		if s.accept(':') {
			value, perr := s.value()
			if perr != nil {
				return nil, perr
			}
			if p.namespaces != nil && !p.namespaces.HasNamespace(word) {
				return nil, NewParseError(ErrorKindNamespace,
					`namespace "`+word+`" is not defined`).WithPosition(start)
			}
			id = ast.Identifier{Namespace: word, Name: value}
		} else {
			label, ok := lang.ActivityLabels[word]
			if !ok {
				return nil, NewParseError(ErrorKindSyntax,
					`unknown activity "`+word+`"`).WithPosition(start)
			}
			id = ast.Identifier{Name: label}
		}
	}

	if perr := s.expect(')'); perr != nil {
		return nil, perr
	}
	return &id, nil
}
