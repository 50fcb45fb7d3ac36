package graph

import (
	"testing"

	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/lang"
	"github.com/openbiodata/belgraph/parser"
)

func protein(name string) ast.SimpleAbundance {
	return ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: name}}
}

func chemical(name string) ast.SimpleAbundance {
	return ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: name}}
}

func readyState(t *testing.T) *parser.ControlState {
	t.Helper()
	state := parser.NewControlState(nil)
	if perr := state.HandleSet(`Citation = {"PubMed", "Article", "123455"}`); perr != nil {
		t.Fatalf("set citation: %v", perr)
	}
	if perr := state.HandleSet(`Evidence = "observed"`); perr != nil {
		t.Fatalf("set evidence: %v", perr)
	}
	return state
}

func TestEnsureNodeIdempotent(t *testing.T) {
	b := NewBuilder(New())

	key1, err := b.EnsureNode(protein("AKT1"))
	if err != nil {
		t.Fatal(err)
	}
	key2, err := b.EnsureNode(protein("AKT1"))
	if err != nil {
		t.Fatal(err)
	}

	if key1 != key2 {
		t.Errorf("same term produced different keys: %q vs %q", key1, key2)
	}
	if key1 != "Protein:HGNC:AKT1" {
		t.Errorf("unexpected key %q", key1)
	}
	if n := b.Graph().NodeCount(); n != 1 {
		t.Errorf("expected 1 node, got %d", n)
	}
}

func TestAggregateInterning(t *testing.T) {
	b := NewBuilder(New())

	ab := ast.ComplexList{Members: []ast.Term{protein("FOS"), protein("JUN")}}
	ba := ast.ComplexList{Members: []ast.Term{protein("JUN"), protein("FOS")}}

	key1, err := b.EnsureNode(ab)
	if err != nil {
		t.Fatal(err)
	}
	key2, err := b.EnsureNode(ba)
	if err != nil {
		t.Fatal(err)
	}

	if key1 != key2 {
		t.Errorf("member order changed identity: %q vs %q", key1, key2)
	}
	if key1 != "Complex#1" {
		t.Errorf("unexpected key %q", key1)
	}

	other := ast.ComplexList{Members: []ast.Term{protein("FOS"), protein("AKT1")}}
	key3, err := b.EnsureNode(other)
	if err != nil {
		t.Fatal(err)
	}
	if key3 != "Complex#2" {
		t.Errorf("expected a fresh serial for a distinct complex, got %q", key3)
	}

	g := b.Graph()
	if !g.HasRelation(key1, "Protein:HGNC:FOS", lang.HasComponent) {
		t.Error("missing hasComponent edge to FOS")
	}
	if !g.HasRelation(key1, "Protein:HGNC:JUN", lang.HasComponent) {
		t.Error("missing hasComponent edge to JUN")
	}
}

func TestOriginCompletion(t *testing.T) {
	b := NewBuilder(New(), WithOriginCompletion())

	if _, err := b.EnsureNode(protein("AKT1")); err != nil {
		t.Fatal(err)
	}

	g := b.Graph()
	if n := g.NodeCount(); n != 3 {
		t.Fatalf("expected protein, RNA, and gene nodes, got %d", n)
	}
	if e := g.EdgeCount(); e != 2 {
		t.Fatalf("expected 2 dogma edges, got %d", e)
	}
	if !g.HasRelation("Gene:HGNC:AKT1", "RNA:HGNC:AKT1", lang.TranscribedTo) {
		t.Error("missing transcribedTo edge")
	}
	if !g.HasRelation("RNA:HGNC:AKT1", "Protein:HGNC:AKT1", lang.TranslatedTo) {
		t.Error("missing translatedTo edge")
	}

	// Re-ensuring must not duplicate the chain.
	if _, err := b.EnsureNode(protein("AKT1")); err != nil {
		t.Fatal(err)
	}
	if e := g.EdgeCount(); e != 2 {
		t.Errorf("dogma edges duplicated: %d", e)
	}
}

func TestOriginCompletionOffByDefault(t *testing.T) {
	b := NewBuilder(New())
	if _, err := b.EnsureNode(protein("AKT1")); err != nil {
		t.Fatal(err)
	}
	if n := b.Graph().NodeCount(); n != 1 {
		t.Errorf("expected 1 node without completion, got %d", n)
	}
}

func TestVariantNodes(t *testing.T) {
	b := NewBuilder(New())

	pos := 473
	term := ast.ModifiedAbundance{
		Kind: lang.Protein,
		ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
		Variants: []ast.Variant{
			ast.SequenceVariant{HGVS: "p.Arg25del"},
			ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}, Code: "Ser", Position: &pos},
		},
	}

	key, err := b.EnsureNode(term)
	if err != nil {
		t.Fatal(err)
	}
	want := `Protein:HGNC:AKT1:pmod(Ph, Ser, 473),var("p.Arg25del")`
	if key != want {
		t.Errorf("variant key %q, want %q", key, want)
	}

	g := b.Graph()
	if !g.HasRelation("Protein:HGNC:AKT1", key, lang.HasVariant) {
		t.Error("missing hasVariant edge from reference parent")
	}

	node := g.Node(key)
	if len(node.VariantTexts) != 2 || node.VariantTexts[0] != "pmod(Ph, Ser, 473)" {
		t.Errorf("unexpected variant texts %v", node.VariantTexts)
	}
}

func TestReactionNodes(t *testing.T) {
	b := NewBuilder(New())

	rxn := ast.Reaction{
		Reactants: []ast.Term{chemical("superoxide")},
		Products:  []ast.Term{chemical("hydrogen peroxide"), chemical("oxygen")},
	}

	key, err := b.EnsureNode(rxn)
	if err != nil {
		t.Fatal(err)
	}
	if key != "Reaction#1" {
		t.Errorf("unexpected key %q", key)
	}

	g := b.Graph()
	if !g.HasRelation(key, "Abundance:CHEBI:superoxide", lang.HasReactant) {
		t.Error("missing hasReactant edge")
	}
	if !g.HasRelation(key, "Abundance:CHEBI:oxygen", lang.HasProduct) {
		t.Error("missing hasProduct edge")
	}

	// The same reaction resolves to the same node.
	key2, err := b.EnsureNode(rxn)
	if err != nil {
		t.Fatal(err)
	}
	if key2 != key {
		t.Errorf("reaction re-ensured as %q", key2)
	}

	// Swapping reactants and products is a different reaction.
	rev := ast.Reaction{Reactants: rxn.Products, Products: rxn.Reactants}
	key3, err := b.EnsureNode(rev)
	if err != nil {
		t.Fatal(err)
	}
	if key3 == key {
		t.Error("reversed reaction interned to the same node")
	}
}

func TestQualifiedEdges(t *testing.T) {
	b := NewBuilder(New())
	state := readyState(t)

	stmt := &parser.Statement{
		Subject:  protein("AKT1"),
		Relation: lang.Increases,
		Object:   chemical("superoxide"),
	}

	if err := b.AddStatement(stmt, state, 10); err != nil {
		t.Fatal(err)
	}
	if err := b.AddStatement(stmt, state, 11); err != nil {
		t.Fatal(err)
	}

	g := b.Graph()
	edges := g.EdgesBetween("Protein:HGNC:AKT1", "Abundance:CHEBI:superoxide")
	if len(edges) != 2 {
		t.Fatalf("expected 2 parallel qualified edges, got %d", len(edges))
	}
	for _, e := range edges {
		if !e.Qualified() {
			t.Error("edge missing citation snapshot")
		}
		if e.Citation["Reference"] != "123455" {
			t.Errorf("unexpected citation %v", e.Citation)
		}
		if e.Evidence != "observed" {
			t.Errorf("unexpected evidence %q", e.Evidence)
		}
	}
	if edges[0].Line != 10 || edges[1].Line != 11 {
		t.Errorf("lines not preserved: %d, %d", edges[0].Line, edges[1].Line)
	}
}

func TestQualifiedEdgeSnapshotIsIndependent(t *testing.T) {
	b := NewBuilder(New())
	state := readyState(t)

	stmt := &parser.Statement{
		Subject:  protein("AKT1"),
		Relation: lang.Increases,
		Object:   chemical("superoxide"),
	}
	if err := b.AddStatement(stmt, state, 1); err != nil {
		t.Fatal(err)
	}

	// Changing the citation afterwards must not affect the recorded edge.
	if perr := state.HandleSet(`Citation = {"PubMed", "Other", "999"}`); perr != nil {
		t.Fatal(perr)
	}

	edges := b.Graph().QualifiedEdges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].Citation["Reference"] != "123455" {
		t.Errorf("edge citation mutated: %v", edges[0].Citation)
	}
}

func TestStatementWithoutContextRejected(t *testing.T) {
	b := NewBuilder(New())

	stmt := &parser.Statement{
		Subject:  protein("AKT1"),
		Relation: lang.Increases,
		Object:   chemical("superoxide"),
	}

	err := b.AddStatement(stmt, parser.NewControlState(nil), 1)
	if err == nil {
		t.Fatal("expected an error without citation and evidence")
	}
	if !errors.Is(err, errors.ErrMissingMetadata) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestUnqualifiedRelationsDeduplicate(t *testing.T) {
	b := NewBuilder(New())

	stmt := &parser.Statement{
		Subject:  ast.SimpleAbundance{Kind: lang.Gene, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}},
		Relation: lang.TranscribedTo,
		Object:   ast.SimpleAbundance{Kind: lang.RNA, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}},
	}

	// No citation required, and repetition collapses.
	if err := b.AddStatement(stmt, nil, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddStatement(stmt, nil, 2); err != nil {
		t.Fatal(err)
	}
	if e := b.Graph().EdgeCount(); e != 1 {
		t.Errorf("expected 1 deduplicated edge, got %d", e)
	}
}

func TestHasMembersDistribution(t *testing.T) {
	b := NewBuilder(New())

	stmt := &parser.Statement{
		Subject:  ast.SimpleAbundance{Kind: lang.Complex, ID: ast.Identifier{Namespace: "SCOMP", Name: "AP-1 Complex"}},
		Relation: lang.HasMembers,
		ObjectList: []ast.Term{
			protein("FOS"),
			protein("JUN"),
		},
	}

	if err := b.AddStatement(stmt, nil, 1); err != nil {
		t.Fatal(err)
	}

	g := b.Graph()
	if !g.HasRelation("Complex:SCOMP:AP-1 Complex", "Protein:HGNC:FOS", lang.HasMember) {
		t.Error("missing hasMember edge to FOS")
	}
	if !g.HasRelation("Complex:SCOMP:AP-1 Complex", "Protein:HGNC:JUN", lang.HasMember) {
		t.Error("missing hasMember edge to JUN")
	}
}

func TestModifierPayloads(t *testing.T) {
	b := NewBuilder(New())
	state := readyState(t)

	stmt := &parser.Statement{
		Subject: ast.ModifiedTerm{
			Modifier: ast.TermModifier{Kind: lang.Activity, Activity: &ast.Identifier{Name: "KinaseActivity"}},
			Target:   protein("AKT1"),
		},
		Relation: lang.Increases,
		Object: ast.ModifiedTerm{
			Modifier: ast.TermModifier{Kind: lang.CellSecretion},
			Target:   protein("MAPT"),
		},
	}

	if err := b.AddStatement(stmt, state, 1); err != nil {
		t.Fatal(err)
	}

	edges := b.Graph().QualifiedEdges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	e := edges[0]

	if e.Subject == nil || e.Subject.Kind != lang.Activity || e.Subject.Activity.Name != "KinaseActivity" {
		t.Errorf("unexpected subject payload %+v", e.Subject)
	}
	if e.Object == nil || e.Object.Kind != lang.CellSecretion {
		t.Fatalf("unexpected object payload %+v", e.Object)
	}
	// sec() expands to its implicit translocation locations.
	if e.Object.FromLoc == nil || e.Object.FromLoc.Name != "intracellular" {
		t.Errorf("missing implicit fromLoc: %+v", e.Object.FromLoc)
	}
	if e.Object.ToLoc == nil || e.Object.ToLoc.Name != "extracellular space" {
		t.Errorf("missing implicit toLoc: %+v", e.Object.ToLoc)
	}

	// The modifier did not leak into node identity.
	if b.Graph().Node("Protein:HGNC:AKT1") == nil {
		t.Error("subject node should be the plain protein")
	}
}

func TestLocationPayloadWithoutModifier(t *testing.T) {
	b := NewBuilder(New())
	state := readyState(t)

	loc := ast.Identifier{Namespace: "GOCC", Name: "nucleus"}
	stmt := &parser.Statement{
		Subject:  ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}, Location: &loc},
		Relation: lang.Increases,
		Object:   chemical("superoxide"),
	}

	if err := b.AddStatement(stmt, state, 1); err != nil {
		t.Fatal(err)
	}

	e := b.Graph().QualifiedEdges()[0]
	if e.Subject == nil || e.Subject.Location == nil || e.Subject.Location.Name != "nucleus" {
		t.Errorf("location payload missing: %+v", e.Subject)
	}
	if e.Source != "Protein:HGNC:AKT1" {
		t.Errorf("location leaked into node identity: %q", e.Source)
	}
}

func TestBareTermStatement(t *testing.T) {
	b := NewBuilder(New())
	if err := b.AddStatement(&parser.Statement{Subject: protein("AKT1")}, nil, 1); err != nil {
		t.Fatal(err)
	}
	if n := b.Graph().NodeCount(); n != 1 {
		t.Errorf("expected 1 node, got %d", n)
	}
	if e := b.Graph().EdgeCount(); e != 0 {
		t.Errorf("expected no edges, got %d", e)
	}
}
