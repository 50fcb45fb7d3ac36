package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbiodata/belgraph/ast"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/lang"
)

// testNamespaces is an in-memory NamespaceSet fixture.
type testNamespaces map[string]map[string]bool

func (t testNamespaces) HasNamespace(keyword string) bool {
	_, ok := t[keyword]
	return ok
}

func (t testNamespaces) HasMember(keyword, name string) bool {
	return t[keyword][name]
}

func fixtureNamespaces() testNamespaces {
	return testNamespaces{
		"HGNC":   {"AKT1": true, "TMPRSS2": true, "ERG": true, "BCR": true, "JAK2": true, "CFTR": true, "MAPT": true, "YFG": true, "FOS": true, "JUN": true},
		"CHEBI":  {"oxygen": true, "superoxide": true, "hydrogen peroxide": true, "corticosteroid": true},
		"GOBP":   {"apoptotic process": true, "cell cycle arrest": true},
		"GOCC":   {"intracellular": true, "extracellular space": true, "cell surface": true, "endosome": true, "nucleus": true},
		"MESHD":  {"Atherosclerosis": true},
		"SCOMP":  {"AP-1 Complex": true},
		"ADO":    {"Abeta_42": true},
		"MOD":    {"PhosRes": true},
	}
}

func newTestParser() *Parser {
	return New(WithNamespaces(fixtureNamespaces()))
}

func TestParseSimpleAbundance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ast.Term
	}{
		{
			name: "short protein",
			text: "p(HGNC:AKT1)",
			want: ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}},
		},
		{
			name: "long protein",
			text: "proteinAbundance(HGNC:AKT1)",
			want: ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}},
		},
		{
			name: "quoted value",
			text: `a(CHEBI:"hydrogen peroxide")`,
			want: ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: "hydrogen peroxide"}},
		},
		{
			name: "biological process",
			text: `bp(GOBP:"apoptotic process")`,
			want: ast.SimpleAbundance{Kind: lang.BiologicalProcess, ID: ast.Identifier{Namespace: "GOBP", Name: "apoptotic process"}},
		},
		{
			name: "pathology",
			text: "path(MESHD:Atherosclerosis)",
			want: ast.SimpleAbundance{Kind: lang.Pathology, ID: ast.Identifier{Namespace: "MESHD", Name: "Atherosclerosis"}},
		},
		{
			name: "location",
			text: `p(HGNC:AKT1, loc(GOCC:intracellular))`,
			want: ast.SimpleAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Location: &ast.Identifier{Namespace: "GOCC", Name: "intracellular"},
			},
		},
		{
			name: "named complex",
			text: `complex(SCOMP:"AP-1 Complex")`,
			want: ast.SimpleAbundance{Kind: lang.Complex, ID: ast.Identifier{Namespace: "SCOMP", Name: "AP-1 Complex"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			term, perr := p.ParseTerm(tt.text)
			require.Nil(t, perr)
			assert.Equal(t, tt.want, term)
			assert.Empty(t, p.Warnings())
		})
	}
}

func TestParseVariants(t *testing.T) {
	pos473 := 473

	tests := []struct {
		name         string
		text         string
		want         ast.Term
		wantWarnings int
	}{
		{
			name: "pmod bare",
			text: "p(HGNC:AKT1, pmod(Ph))",
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}},
				},
			},
		},
		{
			name: "pmod full",
			text: "p(HGNC:AKT1, pmod(Ph, Ser, 473))",
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}, Code: "Ser", Position: &pos473},
				},
			},
		},
		{
			name: "pmod single letter amino acid upgraded",
			text: "p(HGNC:AKT1, pmod(Ph, S, 473))",
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}, Code: "Ser", Position: &pos473},
				},
			},
		},
		{
			name: "pmod legacy code",
			text: "p(HGNC:AKT1, pmod(P, Ser, 473))",
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}, Code: "Ser", Position: &pos473},
				},
			},
			wantWarnings: 1,
		},
		{
			name: "pmod namespaced",
			text: "p(HGNC:AKT1, pmod(MOD:PhosRes, Ser, 473))",
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Namespace: "MOD", Name: "PhosRes"}, Code: "Ser", Position: &pos473},
				},
			},
		},
		{
			name: "hgvs protein variant",
			text: `p(HGNC:CFTR, var("p.Phe508del"))`,
			want: ast.ModifiedAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "CFTR"},
				Variants: []ast.Variant{ast.SequenceVariant{HGVS: "p.Phe508del"}},
			},
		},
		{
			name: "hgvs gene variant",
			text: `g(HGNC:CFTR, var("c.1521_1523delCTT"))`,
			want: ast.ModifiedAbundance{
				Kind:     lang.Gene,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "CFTR"},
				Variants: []ast.Variant{ast.SequenceVariant{HGVS: "c.1521_1523delCTT"}},
			},
		},
		{
			name: "unknown variant",
			text: "p(HGNC:CFTR, var(?))",
			want: ast.ModifiedAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "CFTR"},
				Variants: []ast.Variant{ast.SequenceVariant{HGVS: "?"}},
			},
		},
		{
			name: "fragment known range",
			text: `p(HGNC:YFG, frag("5_20"))`,
			want: ast.ModifiedAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "YFG"},
				Variants: []ast.Variant{ast.Fragment{Start: "5", Stop: "20"}},
			},
		},
		{
			name: "fragment open stop",
			text: `p(HGNC:YFG, frag("1_?"))`,
			want: ast.ModifiedAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "YFG"},
				Variants: []ast.Variant{ast.Fragment{Start: "1", Stop: "?"}},
			},
		},
		{
			name: "fragment fully unknown with description",
			text: `p(HGNC:YFG, frag("?", "55kD"))`,
			want: ast.ModifiedAbundance{
				Kind:     lang.Protein,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "YFG"},
				Variants: []ast.Variant{ast.Fragment{Missing: true, Description: "55kD"}},
			},
		},
		{
			name: "legacy substitution",
			text: "g(HGNC:AKT1, sub(G, 275, T))",
			want: ast.ModifiedAbundance{
				Kind:     lang.Gene,
				ID:       ast.Identifier{Namespace: "HGNC", Name: "AKT1"},
				Variants: []ast.Variant{ast.Substitution{Reference: "G", Position: 275, Variant: "T"}},
			},
			wantWarnings: 1,
		},
		{
			name: "multiple variants with location",
			text: `p(HGNC:MAPT, pmod(Ph), var("p.Arg406Trp"), loc(GOCC:nucleus))`,
			want: ast.ModifiedAbundance{
				Kind: lang.Protein,
				ID:   ast.Identifier{Namespace: "HGNC", Name: "MAPT"},
				Variants: []ast.Variant{
					ast.ProteinModification{Name: ast.Identifier{Name: "Ph"}},
					ast.SequenceVariant{HGVS: "p.Arg406Trp"},
				},
				Location: &ast.Identifier{Namespace: "GOCC", Name: "nucleus"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			term, perr := p.ParseTerm(tt.text)
			require.Nil(t, perr)
			assert.Equal(t, tt.want, term)
			assert.Len(t, p.Warnings(), tt.wantWarnings)
		})
	}
}

func TestParseFusion(t *testing.T) {
	p := newTestParser()
	term, perr := p.ParseTerm(`g(fus(HGNC:TMPRSS2, "r.1_79", HGNC:ERG, "r.312_5034"))`)
	require.Nil(t, perr)
	assert.Equal(t, ast.FusedAbundance{
		Kind: lang.Gene,
		Fusion: ast.Fusion{
			Partner5: ast.Identifier{Namespace: "HGNC", Name: "TMPRSS2"},
			Range5:   ast.FusionRange{Reference: "r", Start: "1", Stop: "79"},
			Partner3: ast.Identifier{Namespace: "HGNC", Name: "ERG"},
			Range3:   ast.FusionRange{Reference: "r", Start: "312", Stop: "5034"},
		},
	}, term)

	term, perr = p.ParseTerm(`p(fus(HGNC:BCR, "?", HGNC:JAK2, "?"))`)
	require.Nil(t, perr)
	assert.Equal(t, ast.FusedAbundance{
		Kind: lang.Protein,
		Fusion: ast.Fusion{
			Partner5: ast.Identifier{Namespace: "HGNC", Name: "BCR"},
			Range5:   ast.FusionRange{Missing: true},
			Partner3: ast.Identifier{Namespace: "HGNC", Name: "JAK2"},
			Range3:   ast.FusionRange{Missing: true},
		},
	}, term)
}

func TestParseAggregates(t *testing.T) {
	p := newTestParser()

	term, perr := p.ParseTerm("complex(p(HGNC:FOS), p(HGNC:JUN))")
	require.Nil(t, perr)
	assert.Equal(t, ast.ComplexList{Members: []ast.Term{
		ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "FOS"}},
		ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "JUN"}},
	}}, term)

	term, perr = p.ParseTerm("complex(p(HGNC:FOS), p(HGNC:JUN), loc(GOCC:nucleus))")
	require.Nil(t, perr)
	assert.Equal(t, ast.ComplexList{
		Members: []ast.Term{
			ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "FOS"}},
			ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "JUN"}},
		},
		Location: &ast.Identifier{Namespace: "GOCC", Name: "nucleus"},
	}, term)

	term, perr = p.ParseTerm(`composite(a(CHEBI:superoxide), p(HGNC:AKT1))`)
	require.Nil(t, perr)
	assert.Equal(t, ast.Composite{Members: []ast.Term{
		ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: "superoxide"}},
		ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}},
	}}, term)

	term, perr = p.ParseTerm(`rxn(reactants(a(CHEBI:superoxide)), products(a(CHEBI:"hydrogen peroxide"), a(CHEBI:oxygen)))`)
	require.Nil(t, perr)
	assert.Equal(t, ast.Reaction{
		Reactants: []ast.Term{
			ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: "superoxide"}},
		},
		Products: []ast.Term{
			ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: "hydrogen peroxide"}},
			ast.SimpleAbundance{Kind: lang.Abundance, ID: ast.Identifier{Namespace: "CHEBI", Name: "oxygen"}},
		},
	}, term)
}

func TestParseStatementModifiers(t *testing.T) {
	akt1 := ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Namespace: "HGNC", Name: "AKT1"}}

	tests := []struct {
		name         string
		text         string
		want         ast.Term
		wantWarnings int
	}{
		{
			name: "bare activity",
			text: "act(p(HGNC:AKT1))",
			want: ast.ModifiedTerm{Modifier: ast.TermModifier{Kind: lang.Activity}, Target: akt1},
		},
		{
			name: "activity with molecular activity",
			text: "act(p(HGNC:AKT1), ma(kin))",
			want: ast.ModifiedTerm{
				Modifier: ast.TermModifier{Kind: lang.Activity, Activity: &ast.Identifier{Name: "KinaseActivity"}},
				Target:   akt1,
			},
		},
		{
			name: "legacy activity function",
			text: "kin(p(HGNC:AKT1))",
			want: ast.ModifiedTerm{
				Modifier: ast.TermModifier{Kind: lang.Activity, Activity: &ast.Identifier{Name: "KinaseActivity"}},
				Target:   akt1,
			},
			wantWarnings: 1,
		},
		{
			name: "degradation",
			text: "deg(p(HGNC:AKT1))",
			want: ast.ModifiedTerm{Modifier: ast.TermModifier{Kind: lang.Degradation}, Target: akt1},
		},
		{
			name: "translocation",
			text: "tloc(p(HGNC:AKT1), fromLoc(GOCC:intracellular), toLoc(GOCC:endosome))",
			want: ast.ModifiedTerm{
				Modifier: ast.TermModifier{
					Kind:    lang.Translocation,
					FromLoc: &ast.Identifier{Namespace: "GOCC", Name: "intracellular"},
					ToLoc:   &ast.Identifier{Namespace: "GOCC", Name: "endosome"},
				},
				Target: akt1,
			},
		},
		{
			name: "legacy translocation",
			text: "tloc(p(HGNC:AKT1), GOCC:intracellular, GOCC:endosome)",
			want: ast.ModifiedTerm{
				Modifier: ast.TermModifier{
					Kind:    lang.Translocation,
					FromLoc: &ast.Identifier{Namespace: "GOCC", Name: "intracellular"},
					ToLoc:   &ast.Identifier{Namespace: "GOCC", Name: "endosome"},
				},
				Target: akt1,
			},
			wantWarnings: 1,
		},
		{
			name:         "unqualified translocation",
			text:         "tloc(p(HGNC:AKT1))",
			want:         ast.ModifiedTerm{Modifier: ast.TermModifier{Kind: lang.Translocation}, Target: akt1},
			wantWarnings: 1,
		},
		{
			name: "secretion",
			text: "sec(p(HGNC:AKT1))",
			want: ast.ModifiedTerm{Modifier: ast.TermModifier{Kind: lang.CellSecretion}, Target: akt1},
		},
		{
			name: "surface expression",
			text: "surf(p(HGNC:AKT1))",
			want: ast.ModifiedTerm{Modifier: ast.TermModifier{Kind: lang.CellSurfaceExpression}, Target: akt1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			term, perr := p.ParseTerm(tt.text)
			require.Nil(t, perr)
			assert.Equal(t, tt.want, term)
			assert.Len(t, p.Warnings(), tt.wantWarnings)
		})
	}
}

func TestParseTermErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sentinel error
	}{
		{"unknown function", "q(HGNC:AKT1)", errors.ErrSyntax},
		{"undefined namespace", "p(NOPE:AKT1)", errors.ErrInvalidNamespace},
		{"non-member value", "p(HGNC:NOTAGENE)", errors.ErrInvalidNamespace},
		{"naked name", "p(AKT1)", errors.ErrInvalidNamespace},
		{"missing close paren", "p(HGNC:AKT1", errors.ErrSyntax},
		{"bad fragment range", `p(HGNC:YFG, frag("5-20"))`, errors.ErrSyntax},
		{"fragment star start", `p(HGNC:YFG, frag("*_20"))`, errors.ErrSyntax},
		{"pmod on gene", "g(HGNC:AKT1, pmod(Ph))", errors.ErrSyntax},
		{"unknown pmod code", "p(HGNC:AKT1, pmod(Zz))", errors.ErrSyntax},
		{"bad amino acid", "p(HGNC:AKT1, pmod(Ph, Xx, 473))", errors.ErrSyntax},
		{"fusion in plain abundance", `a(fus(HGNC:BCR, "?", HGNC:JAK2, "?"))`, errors.ErrMalformedTerm},
		{"bad fusion range", `g(fus(HGNC:TMPRSS2, "x.1_79", HGNC:ERG, "?"))`, errors.ErrSyntax},
		{"single member complex", "complex(p(HGNC:FOS))", errors.ErrMalformedTerm},
		{"nested modifier", "act(deg(p(HGNC:AKT1)))", errors.ErrMalformedTerm},
		{"modifier in aggregate", "complex(act(p(HGNC:FOS)), p(HGNC:JUN))", errors.ErrMalformedTerm},
		{"legacy activity in aggregate", "complex(kin(p(HGNC:FOS)), p(HGNC:JUN))", errors.ErrMalformedTerm},
		{"modifier in composite", "composite(deg(p(HGNC:FOS)), p(HGNC:JUN))", errors.ErrMalformedTerm},
		{"reaction missing products", "rxn(reactants(a(CHEBI:superoxide)))", errors.ErrSyntax},
		{"location on reactants", "rxn(reactants(p(HGNC:FOS), loc(GOCC:nucleus)), products(p(HGNC:JUN)))", errors.ErrMalformedTerm},
		{"location on composite", "composite(p(HGNC:FOS), p(HGNC:JUN), loc(GOCC:nucleus))", errors.ErrMalformedTerm},
		{"trailing input", "p(HGNC:AKT1) junk", errors.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			_, perr := p.ParseTerm(tt.text)
			require.NotNil(t, perr)
			assert.True(t, errors.Is(perr, tt.sentinel), "got %v", perr)
		})
	}
}

func TestNakedNamesOption(t *testing.T) {
	p := New(WithNamespaces(fixtureNamespaces()), WithNakedNames())
	term, perr := p.ParseTerm("p(AKT1)")
	require.Nil(t, perr)
	assert.Equal(t, ast.SimpleAbundance{Kind: lang.Protein, ID: ast.Identifier{Name: "AKT1"}}, term)
	assert.Len(t, p.Warnings(), 1)
}
