package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/lang"
	"github.com/openbiodata/belgraph/logger"
	"github.com/openbiodata/belgraph/parser"
)

// Implicit translocation locations for sec() and surf().
var (
	locIntracellular      = ast.Identifier{Namespace: "GOCC", Name: "intracellular"}
	locExtracellularSpace = ast.Identifier{Namespace: "GOCC", Name: "extracellular space"}
	locCellSurface        = ast.Identifier{Namespace: "GOCC", Name: "cell surface"}
)

// assertedUnqualified lists the statement relations that produce structural
// edges with no evidence context.
var assertedUnqualified = map[string]bool{
	lang.HasMember:     true,
	lang.HasMembers:    true,
	lang.HasComponent:  true,
	lang.TranscribedTo: true,
	lang.TranslatedTo:  true,
}

// Builder turns parsed statements into graph content. It owns the node
// identity scheme: leaf nodes get content-derived keys, aggregate nodes get
// serial keys interned by member signature, so structurally equal
// aggregates resolve to the same node across a session.
type Builder struct {
	g              *Graph
	completeOrigin bool

	counts     map[string]int
	signatures map[string]string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithOriginCompletion makes every protein node pull in its RNA and gene
// origin, and every RNA and miRNA node its gene, linked by central-dogma
// edges.
func WithOriginCompletion() BuilderOption {
	return func(b *Builder) { b.completeOrigin = true }
}

// NewBuilder creates a Builder targeting g.
func NewBuilder(g *Graph, opts ...BuilderOption) *Builder {
	b := &Builder{
		g:          g,
		counts:     map[string]int{},
		signatures: map[string]string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Graph returns the graph under construction.
func (b *Builder) Graph() *Graph {
	return b.g
}

func leafKey(kind string, id ast.Identifier) string {
	return kind + ":" + id.Namespace + ":" + id.Name
}

// EnsureNode resolves a term to its node key, inserting the node and its
// structural neighborhood (variant parents, aggregate members, origin
// chain) if missing. Statement modifiers contribute nothing to identity;
// they are stripped before resolution.
func (b *Builder) EnsureNode(term ast.Term) (string, error) {
	switch t := term.(type) {
	case ast.SimpleAbundance:
		key := leafKey(t.Kind, t.ID)
		b.g.AddNode(&Node{Key: key, Type: t.Kind, Namespace: t.ID.Namespace, Name: t.ID.Name})
		b.completeOriginOf(t.Kind, t.ID)
		return key, nil

	case ast.ModifiedAbundance:
		parentKey := leafKey(t.Kind, t.ID)
		b.g.AddNode(&Node{Key: parentKey, Type: t.Kind, Namespace: t.ID.Namespace, Name: t.ID.Name})
		b.completeOriginOf(t.Kind, t.ID)

		texts := make([]string, len(t.Variants))
		for i, v := range t.Variants {
			texts[i] = v.String()
		}
		sort.Strings(texts)

		key := parentKey + ":" + strings.Join(texts, ",")
		b.g.AddNode(&Node{
			Key:          key,
			Type:         t.Kind,
			Namespace:    t.ID.Namespace,
			Name:         t.ID.Name,
			VariantTexts: texts,
		})
		b.g.AddUnqualifiedEdge(parentKey, key, lang.HasVariant)
		return key, nil

	case ast.FusedAbundance:
		text := t.Fusion.String()
		key := t.Kind + ":" + text
		b.g.AddNode(&Node{Key: key, Type: t.Kind, FusionText: text})
		return key, nil

	case ast.ComplexList:
		memberKeys, err := b.ensureMembers(t.Members)
		if err != nil {
			return "", err
		}
		key := b.internAggregate(lang.Complex, signature(lang.Complex, memberKeys))
		for _, mk := range memberKeys {
			b.g.AddUnqualifiedEdge(key, mk, lang.HasComponent)
		}
		return key, nil

	case ast.Composite:
		memberKeys, err := b.ensureMembers(t.Members)
		if err != nil {
			return "", err
		}
		key := b.internAggregate(lang.Composite, signature(lang.Composite, memberKeys))
		for _, mk := range memberKeys {
			b.g.AddUnqualifiedEdge(key, mk, lang.HasComponent)
		}
		return key, nil

	case ast.Reaction:
		reactantKeys, err := b.ensureMembers(t.Reactants)
		if err != nil {
			return "", err
		}
		productKeys, err := b.ensureMembers(t.Products)
		if err != nil {
			return "", err
		}
		sig := signature(lang.Reaction, reactantKeys) + ">" + signature(lang.Reaction, productKeys)
		key := b.internAggregate(lang.Reaction, sig)
		for _, rk := range reactantKeys {
			b.g.AddUnqualifiedEdge(key, rk, lang.HasReactant)
		}
		for _, pk := range productKeys {
			b.g.AddUnqualifiedEdge(key, pk, lang.HasProduct)
		}
		return key, nil

	case ast.ModifiedTerm:
		return b.EnsureNode(t.Target)
	}

	return "", errors.Wrap(errors.ErrUnsupportedTerm, "unhandled term kind")
}

func (b *Builder) ensureMembers(members []ast.Term) ([]string, error) {
	keys := make([]string, len(members))
	for i, m := range members {
		key, err := b.EnsureNode(m)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

// signature derives the member-order-independent identity of an aggregate
// from its member node keys.
func signature(kind string, memberKeys []string) string {
	sorted := append([]string(nil), memberKeys...)
	sort.Strings(sorted)
	return kind + "(" + strings.Join(sorted, "|") + ")"
}

// internAggregate returns the existing node key for a signature or mints a
// serial key for a new one.
func (b *Builder) internAggregate(kind, sig string) string {
	if key, ok := b.signatures[sig]; ok {
		return key
	}
	b.counts[kind]++
	key := kind + "#" + strconv.Itoa(b.counts[kind])
	b.signatures[sig] = key
	b.g.AddNode(&Node{Key: key, Type: kind})
	logger.Debugw("interned aggregate", "key", key, "signature", sig)
	return key
}

// completeOriginOf inserts the central-dogma origin chain for a leaf
// identifier when origin completion is on: proteins get their RNA and
// gene, RNA and miRNA their gene.
func (b *Builder) completeOriginOf(kind string, id ast.Identifier) {
	if !b.completeOrigin {
		return
	}
	switch kind {
	case lang.Protein:
		rnaKey := leafKey(lang.RNA, id)
		b.g.AddNode(&Node{Key: rnaKey, Type: lang.RNA, Namespace: id.Namespace, Name: id.Name})
		b.g.AddUnqualifiedEdge(rnaKey, leafKey(lang.Protein, id), lang.TranslatedTo)
		b.completeOriginOf(lang.RNA, id)
	case lang.RNA, lang.MiRNA:
		geneKey := leafKey(lang.Gene, id)
		b.g.AddNode(&Node{Key: geneKey, Type: lang.Gene, Namespace: id.Namespace, Name: id.Name})
		b.g.AddUnqualifiedEdge(geneKey, leafKey(kind, id), lang.TranscribedTo)
	}
}

// AddStatement applies one parsed statement to the graph under the given
// control state. Bare terms only create nodes; structural relations create
// deduplicated unqualified edges; everything else needs a citation and
// evidence and creates a qualified edge.
func (b *Builder) AddStatement(stmt *parser.Statement, state *parser.ControlState, line int) error {
	if stmt.Relation == "" {
		_, err := b.EnsureNode(stmt.Subject)
		return err
	}

	if stmt.Relation == lang.HasMembers {
		return b.addMembers(stmt)
	}

	if assertedUnqualified[stmt.Relation] {
		return b.addUnqualified(stmt)
	}

	if state == nil || !state.Ready() {
		return errors.Wrap(errors.ErrMissingMetadata,
			"statement asserted without citation and evidence")
	}

	subjectKey, err := b.EnsureNode(stmt.Subject)
	if err != nil {
		return err
	}
	objectKey, err := b.EnsureNode(stmt.Object)
	if err != nil {
		return err
	}

	b.g.AddQualifiedEdge(&Edge{
		Source:      subjectKey,
		Target:      objectKey,
		Relation:    stmt.Relation,
		Subject:     payload(stmt.Subject),
		Object:      payload(stmt.Object),
		Citation:    state.CitationCopy(),
		Evidence:    state.Evidence,
		Annotations: state.AnnotationsCopy(),
		Line:        line,
	})
	return nil
}

// addMembers distributes a hasMembers list into individual hasMember edges.
func (b *Builder) addMembers(stmt *parser.Statement) error {
	subjectKey, err := b.unmodifiedNode(stmt.Subject)
	if err != nil {
		return err
	}
	for _, member := range stmt.ObjectList {
		memberKey, err := b.EnsureNode(member)
		if err != nil {
			return err
		}
		b.g.AddUnqualifiedEdge(subjectKey, memberKey, lang.HasMember)
	}
	return nil
}

func (b *Builder) addUnqualified(stmt *parser.Statement) error {
	subjectKey, err := b.unmodifiedNode(stmt.Subject)
	if err != nil {
		return err
	}
	objectKey, err := b.unmodifiedNode(stmt.Object)
	if err != nil {
		return err
	}
	b.g.AddUnqualifiedEdge(subjectKey, objectKey, stmt.Relation)
	return nil
}

// unmodifiedNode resolves a term that may not carry a statement modifier.
func (b *Builder) unmodifiedNode(term ast.Term) (string, error) {
	if _, ok := term.(ast.ModifiedTerm); ok {
		return "", errors.Wrap(errors.ErrMalformedTerm,
			"structural relations do not take modified operands")
	}
	return b.EnsureNode(term)
}

// payload derives the edge payload for one statement operand: the modifier
// and its effect, with sec() and surf() expanded to their implicit
// translocation locations, plus the operand's loc() if present.
func payload(term ast.Term) *ModifierPayload {
	mt, modified := term.(ast.ModifiedTerm)
	var inner ast.Term = term
	if modified {
		inner = mt.Target
	}
	location := termLocation(inner)

	if !modified {
		if location == nil {
			return nil
		}
		return &ModifierPayload{Location: location}
	}

	p := &ModifierPayload{
		Kind:     mt.Modifier.Kind,
		Activity: mt.Modifier.Activity,
		FromLoc:  mt.Modifier.FromLoc,
		ToLoc:    mt.Modifier.ToLoc,
		Location: location,
	}
	switch p.Kind {
	case lang.CellSecretion:
		p.FromLoc = &locIntracellular
		p.ToLoc = &locExtracellularSpace
	case lang.CellSurfaceExpression:
		p.FromLoc = &locIntracellular
		p.ToLoc = &locCellSurface
	}
	return p
}

func termLocation(term ast.Term) *ast.Identifier {
	switch t := term.(type) {
	case ast.SimpleAbundance:
		return t.Location
	case ast.ModifiedAbundance:
		return t.Location
	case ast.FusedAbundance:
		return t.Location
	case ast.ComplexList:
		return t.Location
	}
	return nil
}
