package parser

import (
	"sort"
	"strings"
)

// Citation field names, in the order the SET Citation list supplies them.
var citationFields = []string{"Type", "Name", "Reference", "Date", "Authors", "Comments"}

// citationTypes are the accepted values for the citation Type field.
var citationTypes = map[string]bool{
	"Book":            true,
	"PubMed":          true,
	"Journal":         true,
	"Online Resource": true,
	"URL":             true,
	"DOI":             true,
	"Other":           true,
}

// AnnotationSet answers membership queries against the document's defined
// annotations. A nil AnnotationSet disables validation.
type AnnotationSet interface {
	HasAnnotation(keyword string) bool
	HasAnnotationValue(keyword, value string) bool
}

// ControlState tracks the ambient context built up by SET and UNSET lines:
// the active citation, evidence text, statement group, and annotations.
// Every qualified edge snapshots this state at assertion time.
type ControlState struct {
	Citation       map[string]string
	Evidence       string
	StatementGroup string
	Annotations    map[string][]string

	annotations AnnotationSet
}

// NewControlState creates an empty control state validating annotation keys
// and values against the given set. Pass nil to skip validation.
func NewControlState(annotations AnnotationSet) *ControlState {
	return &ControlState{
		Citation:    map[string]string{},
		Annotations: map[string][]string{},
		annotations: annotations,
	}
}

// Clear resets all control state, as UNSET ALL does.
func (c *ControlState) Clear() {
	c.Citation = map[string]string{}
	c.Evidence = ""
	c.StatementGroup = ""
	c.Annotations = map[string][]string{}
}

// HandleSet processes the text after the SET keyword: `Key = value` where
// the value is a quoted string, a bare word, or a {"a", "b"} list.
func (c *ControlState) HandleSet(text string) *ParseError {
	s := newScanner(text)

	key := s.word()
	if key == "" {
		return NewParseError(ErrorKindSyntax, "expected annotation key after SET").WithStatement(text)
	}
	if perr := s.expect('='); perr != nil {
		return perr.WithStatement(text)
	}

	switch key {
	case "Citation":
		values, perr := c.valueList(s)
		if perr != nil {
			return perr.WithStatement(text)
		}
		return c.setCitation(values, text)
	case "Evidence", "SupportingText":
		value, perr := s.value()
		if perr != nil {
			return perr.WithStatement(text)
		}
		c.Evidence = normalizeEvidence(value)
		return nil
	case "STATEMENT_GROUP":
		value, perr := s.value()
		if perr != nil {
			return perr.WithStatement(text)
		}
		c.StatementGroup = value
		return nil
	}

	return c.setAnnotation(s, key, text)
}

// setCitation installs a 3- or 6-field citation and drops the evidence and
// annotations carried over from the previous one.
func (c *ControlState) setCitation(values []string, text string) *ParseError {
	if len(values) != 3 && len(values) != 6 {
		return NewParseError(ErrorKindSyntax,
			"citations have exactly 3 or 6 fields").WithStatement(text).
			WithSuggestion(`SET Citation = {"Type", "Name", "Reference"}`)
	}
	if !citationTypes[values[0]] {
		return NewParseError(ErrorKindSyntax,
			`invalid citation type "`+values[0]+`"`).WithStatement(text)
	}

	c.Citation = map[string]string{}
	for i, v := range values {
		c.Citation[citationFields[i]] = v
	}
	c.Evidence = ""
	c.Annotations = map[string][]string{}
	return nil
}

// setAnnotation installs a custom annotation, validating the key and each
// value when an AnnotationSet is present.
func (c *ControlState) setAnnotation(s *scanner, key, text string) *ParseError {
	if c.annotations != nil && !c.annotations.HasAnnotation(key) {
		return NewParseError(ErrorKindNamespace,
			`annotation "`+key+`" is not defined`).WithStatement(text).
			WithSuggestion("add a DEFINE ANNOTATION line for " + key)
	}

	var values []string
	s.skipSpace()
	if s.peek() == '{' {
		list, perr := c.valueList(s)
		if perr != nil {
			return perr.WithStatement(text)
		}
		values = list
	} else {
		value, perr := s.value()
		if perr != nil {
			return perr.WithStatement(text)
		}
		values = []string{value}
	}

	if c.annotations != nil {
		for _, v := range values {
			if !c.annotations.HasAnnotationValue(key, v) {
				return NewParseError(ErrorKindNamespace,
					`"`+v+`" is not a valid value for annotation `+key).WithStatement(text)
			}
		}
	}

	sort.Strings(values)
	c.Annotations[key] = values
	return nil
}

// HandleUnset processes the text after the UNSET keyword.
func (c *ControlState) HandleUnset(text string) *ParseError {
	key := strings.TrimSpace(text)
	switch key {
	case "":
		return NewParseError(ErrorKindSyntax, "expected annotation key after UNSET")
	case "ALL":
		c.Clear()
		return nil
	case "STATEMENT_GROUP":
		c.StatementGroup = ""
		return nil
	case "Citation":
		c.Citation = map[string]string{}
		c.Evidence = ""
		return nil
	case "Evidence", "SupportingText":
		c.Evidence = ""
		return nil
	}

	if _, ok := c.Annotations[key]; !ok {
		return NewParseError(ErrorKindSyntax,
			`annotation "`+key+`" is not set`).WithStatement(text)
	}
	delete(c.Annotations, key)
	return nil
}

// valueList parses {"a", "b", ...}.
func (c *ControlState) valueList(s *scanner) ([]string, *ParseError) {
	if perr := s.expect('{'); perr != nil {
		return nil, perr
	}
	var values []string
	for {
		value, perr := s.value()
		if perr != nil {
			return nil, perr
		}
		values = append(values, value)
		if !s.accept(',') {
			break
		}
	}
	if perr := s.expect('}'); perr != nil {
		return nil, perr
	}
	return values, nil
}

// Ready reports whether enough context is set to assert a qualified edge:
// a citation and evidence text.
func (c *ControlState) Ready() bool {
	return len(c.Citation) > 0 && c.Evidence != ""
}

// CitationCopy returns an independent copy of the active citation.
func (c *ControlState) CitationCopy() map[string]string {
	out := make(map[string]string, len(c.Citation))
	for k, v := range c.Citation {
		out[k] = v
	}
	return out
}

// AnnotationsCopy returns an independent copy of the active annotations.
func (c *ControlState) AnnotationsCopy() map[string][]string {
	out := make(map[string][]string, len(c.Annotations))
	for k, vs := range c.Annotations {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// normalizeEvidence collapses the internal whitespace runs that multi-line
// quoted evidence strings accumulate when their lines are joined.
func normalizeEvidence(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
