package document

import (
	"strings"

	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/graph"
	"github.com/openbiodata/belgraph/logger"
)

// requiredMetadata are the SET DOCUMENT keys a complete BEL script must
// carry. Their absence aborts the parse before the statement section.
var requiredMetadata = []string{"Name", "Version", "Description", "Authors", "ContactInfo"}

// Resolver fetches the member names of a URL-defined namespace or
// annotation, typically through the store cache.
type Resolver interface {
	Members(url string) ([]string, error)
}

// definitionIndex is the membership oracle built from DEFINE lines. It
// implements parser.NamespaceSet and parser.AnnotationSet. A nil member set
// marks an open definition whose values cannot be checked, which happens
// when no Resolver is available for a URL definition.
type definitionIndex struct {
	namespaces  map[string]map[string]bool
	annotations map[string]map[string]bool
}

func newDefinitionIndex() *definitionIndex {
	return &definitionIndex{
		namespaces:  map[string]map[string]bool{},
		annotations: map[string]map[string]bool{},
	}
}

func (d *definitionIndex) HasNamespace(keyword string) bool {
	_, ok := d.namespaces[keyword]
	return ok
}

func (d *definitionIndex) HasMember(keyword, name string) bool {
	members, ok := d.namespaces[keyword]
	if !ok {
		return false
	}
	return members == nil || members[name]
}

func (d *definitionIndex) HasAnnotation(keyword string) bool {
	_, ok := d.annotations[keyword]
	return ok
}

func (d *definitionIndex) HasAnnotationValue(keyword, value string) bool {
	values, ok := d.annotations[keyword]
	if !ok {
		return false
	}
	return values == nil || values[value]
}

// parseDocumentLine handles the text after "SET DOCUMENT": `Key = "value"`.
func parseDocumentLine(g *graph.Graph, text string) error {
	key, value, ok := splitAssignment(text)
	if !ok {
		return errors.Wrapf(errors.ErrDocumentSection, "malformed document line %q", text)
	}
	g.Document[key] = value
	return nil
}

// validateMetadata checks the required document keys are all present.
func validateMetadata(g *graph.Graph) error {
	var missing []string
	for _, key := range requiredMetadata {
		if g.Document[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrMissingMetadata,
			"document is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// parseDefine handles the text after "DEFINE": a NAMESPACE or ANNOTATION
// definition, AS URL or AS LIST. URL definitions go through the resolver
// when one is present; otherwise the definition stays open and member
// checks pass.
func parseDefine(g *graph.Graph, index *definitionIndex, resolver Resolver, text string) error {
	fields := strings.Fields(text)
	if len(fields) < 4 || fields[2] != "AS" {
		return errors.Wrapf(errors.ErrDocumentSection, "malformed definition %q", text)
	}
	kind, keyword, form := fields[0], fields[1], fields[3]
	_, after, _ := strings.Cut(text, " AS ")
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(after), form))

	var members map[string]bool
	switch form {
	case "URL":
		url := strings.Trim(rest, `"`)
		if resolver != nil {
			names, err := resolver.Members(url)
			if err != nil {
				return errors.Wrapf(errors.ErrDocumentSection,
					"resolving %s %s from %s: %v", kind, keyword, url, err)
			}
			members = map[string]bool{}
			for _, n := range names {
				members[n] = true
			}
		} else {
			logger.Debugw("no resolver, definition left open", "keyword", keyword, "url", url)
		}
		switch kind {
		case "NAMESPACE":
			g.NamespaceURL[keyword] = url
		case "ANNOTATION":
			g.AnnotationURL[keyword] = url
		default:
			return errors.Wrapf(errors.ErrDocumentSection, "unknown definition kind %q", kind)
		}

	case "LIST":
		values, err := parseBraceList(rest)
		if err != nil {
			return err
		}
		members = map[string]bool{}
		for _, v := range values {
			members[v] = true
		}
		switch kind {
		case "NAMESPACE":
			g.NamespaceList[keyword] = values
		case "ANNOTATION":
			g.AnnotationList[keyword] = values
		default:
			return errors.Wrapf(errors.ErrDocumentSection, "unknown definition kind %q", kind)
		}

	default:
		return errors.Wrapf(errors.ErrDocumentSection, "unknown definition form %q", form)
	}

	switch kind {
	case "NAMESPACE":
		index.namespaces[keyword] = members
	case "ANNOTATION":
		index.annotations[keyword] = members
	}
	return nil
}

// splitAssignment splits `Key = "value"` into its parts.
func splitAssignment(text string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(text, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// parseBraceList parses {"a", "b", ...}.
func parseBraceList(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, errors.Wrapf(errors.ErrDocumentSection, "malformed list %q", text)
	}
	inner := text[1 : len(text)-1]
	var values []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"`)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return nil, errors.Wrapf(errors.ErrDocumentSection, "empty list %q", text)
	}
	return values, nil
}
