// Package canonical renders graph content back to canonical BEL text:
// terms from ast values, node texts from the graph's structural edges, and
// whole documents with their metadata and evidence grouping.
package canonical

import (
	"sort"
	"strings"

	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/graph"
	"github.com/openbiodata/belgraph/lang"
)

// WriteTerm renders a parsed term as canonical BEL: short function forms,
// sorted variants, sorted aggregate members.
func WriteTerm(term ast.Term) (string, error) {
	switch t := term.(type) {
	case ast.SimpleAbundance:
		return abundanceText(t.Kind, t.ID.String(), nil, t.Location), nil

	case ast.ModifiedAbundance:
		texts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			texts[i] = v.String()
		}
		sort.Strings(texts)
		return abundanceText(t.Kind, t.ID.String(), texts, t.Location), nil

	case ast.FusedAbundance:
		return abundanceText(t.Kind, t.Fusion.String(), nil, t.Location), nil

	case ast.ComplexList:
		members, err := memberTexts(t.Members)
		if err != nil {
			return "", err
		}
		return abundanceText(lang.Complex, strings.Join(members, ", "), nil, t.Location), nil

	case ast.Composite:
		members, err := memberTexts(t.Members)
		if err != nil {
			return "", err
		}
		return "composite(" + strings.Join(members, ", ") + ")", nil

	case ast.Reaction:
		reactants, err := memberTexts(t.Reactants)
		if err != nil {
			return "", err
		}
		products, err := memberTexts(t.Products)
		if err != nil {
			return "", err
		}
		return "rxn(reactants(" + strings.Join(reactants, ", ") +
			"), products(" + strings.Join(products, ", ") + "))", nil

	case ast.ModifiedTerm:
		inner, err := WriteTerm(t.Target)
		if err != nil {
			return "", err
		}
		return decorate(inner, &graph.ModifierPayload{
			Kind:     t.Modifier.Kind,
			Activity: t.Modifier.Activity,
			FromLoc:  t.Modifier.FromLoc,
			ToLoc:    t.Modifier.ToLoc,
		})
	}

	return "", errors.Wrap(errors.ErrUnsupportedTerm, "unhandled term kind")
}

func memberTexts(members []ast.Term) ([]string, error) {
	texts := make([]string, len(members))
	for i, m := range members {
		text, err := WriteTerm(m)
		if err != nil {
			return nil, err
		}
		texts[i] = text
	}
	sort.Strings(texts)
	return texts, nil
}

// abundanceText assembles "kind(content, variants..., loc(...))".
func abundanceText(kind, content string, variants []string, location *ast.Identifier) string {
	var sb strings.Builder
	sb.WriteString(lang.ShortFunctionTags[kind])
	sb.WriteString("(")
	sb.WriteString(content)
	for _, v := range variants {
		sb.WriteString(", ")
		sb.WriteString(v)
	}
	if location != nil {
		sb.WriteString(", loc(")
		sb.WriteString(location.String())
		sb.WriteString(")")
	}
	sb.WriteString(")")
	return sb.String()
}

// NodeText reconstructs a node's canonical BEL text from the graph.
// Aggregate nodes are expanded through their structural edges, members
// sorted lexicographically.
func NodeText(g *graph.Graph, key string) (string, error) {
	node := g.Node(key)
	if node == nil {
		return "", errors.Newf("no node with key %q", key)
	}

	switch node.Type {
	case lang.Complex:
		if node.Name != "" {
			return abundanceText(lang.Complex, identifierText(node), nil, nil), nil
		}
		members, err := componentTexts(g, key, lang.HasComponent)
		if err != nil {
			return "", err
		}
		return "complex(" + strings.Join(members, ", ") + ")", nil

	case lang.Composite:
		members, err := componentTexts(g, key, lang.HasComponent)
		if err != nil {
			return "", err
		}
		return "composite(" + strings.Join(members, ", ") + ")", nil

	case lang.Reaction:
		reactants, err := componentTexts(g, key, lang.HasReactant)
		if err != nil {
			return "", err
		}
		products, err := componentTexts(g, key, lang.HasProduct)
		if err != nil {
			return "", err
		}
		return "rxn(reactants(" + strings.Join(reactants, ", ") +
			"), products(" + strings.Join(products, ", ") + "))", nil
	}

	if node.FusionText != "" {
		return abundanceText(node.Type, node.FusionText, nil, nil), nil
	}
	return abundanceText(node.Type, identifierText(node), node.VariantTexts, nil), nil
}

func identifierText(node *graph.Node) string {
	return ast.Identifier{Namespace: node.Namespace, Name: node.Name}.String()
}

func componentTexts(g *graph.Graph, key, relation string) ([]string, error) {
	var texts []string
	for _, e := range g.OutEdges(key) {
		if e.Relation != relation {
			continue
		}
		text, err := NodeText(g, e.Target)
		if err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}
	sort.Strings(texts)
	return texts, nil
}

// WriteStatement renders a qualified edge as a canonical statement:
// decorated subject, relation word, decorated object.
func WriteStatement(g *graph.Graph, e *graph.Edge) (string, error) {
	subject, err := NodeText(g, e.Source)
	if err != nil {
		return "", err
	}
	if subject, err = decorate(subject, e.Subject); err != nil {
		return "", err
	}

	object, err := NodeText(g, e.Target)
	if err != nil {
		return "", err
	}
	if object, err = decorate(object, e.Object); err != nil {
		return "", err
	}

	return subject + " " + e.Relation + " " + object, nil
}

// decorate wraps a term text in its edge payload: loc() folds into the
// term, the modifier wraps around it.
func decorate(text string, p *graph.ModifierPayload) (string, error) {
	if p == nil {
		return text, nil
	}

	if p.Location != nil {
		text = text[:len(text)-1] + ", loc(" + p.Location.String() + "))"
	}

	switch p.Kind {
	case "":
		return text, nil
	case lang.Activity:
		if p.Activity == nil {
			return "act(" + text + ")", nil
		}
		return "act(" + text + ", ma(" + activityText(p.Activity) + "))", nil
	case lang.Degradation:
		return "deg(" + text + ")", nil
	case lang.Translocation:
		if p.FromLoc == nil || p.ToLoc == nil {
			return "tloc(" + text + ")", nil
		}
		return "tloc(" + text + ", fromLoc(" + p.FromLoc.String() +
			"), toLoc(" + p.ToLoc.String() + "))", nil
	case lang.CellSecretion:
		return "sec(" + text + ")", nil
	case lang.CellSurfaceExpression:
		return "surf(" + text + ")", nil
	}

	return "", errors.Wrapf(errors.ErrUnknownModifier, "%q", p.Kind)
}

// activityText prefers the short default-namespace label inside ma().
func activityText(id *ast.Identifier) string {
	if id.Namespace == "" {
		if short, ok := lang.RevActivityLabels[id.Name]; ok {
			return short
		}
	}
	return id.String()
}
