package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionTagsCoverLongAndShortForms(t *testing.T) {
	cases := []struct {
		tag  string
		want string
	}{
		{"a", Abundance},
		{"abundance", Abundance},
		{"g", Gene},
		{"geneAbundance", Gene},
		{"p", Protein},
		{"proteinAbundance", Protein},
		{"m", MiRNA},
		{"microRNAAbundance", MiRNA},
		{"complex", Complex},
		{"complexAbundance", Complex},
		{"composite", Composite},
		{"bp", BiologicalProcess},
		{"path", Pathology},
		{"rxn", Reaction},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FunctionTags[tc.tag], "tag %q", tc.tag)
	}
}

func TestShortFunctionTagsRoundTrip(t *testing.T) {
	// Every canonical kind that the writer emits must have a short form, and
	// that short form must parse back to the same kind.
	for kind, short := range ShortFunctionTags {
		assert.Equal(t, kind, FunctionTags[short], "short form %q", short)
	}
}

func TestRelationSymbols(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
	}{
		{"->", Increases},
		{"=>", DirectlyIncreases},
		{"-|", Decreases},
		{"=|", DirectlyDecreases},
		{":>", TranscribedTo},
		{">>", TranslatedTo},
		{"--", Association},
		{"cnc", CausesNoChange},
		{"reg", Regulates},
		{"neg", NegativeCorrelation},
		{"pos", PositiveCorrelation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RelationTags[tc.symbol], "symbol %q", tc.symbol)
	}
}

func TestActivityLabelsRoundTrip(t *testing.T) {
	for label, short := range RevActivityLabels {
		assert.Equal(t, label, ActivityLabels[short], "short form %q", short)
	}
}

func TestIsAminoAcid(t *testing.T) {
	assert.True(t, IsAminoAcid("S"))
	assert.True(t, IsAminoAcid("Ser"))
	assert.True(t, IsAminoAcid("Tyr"))
	assert.False(t, IsAminoAcid("B"))
	assert.False(t, IsAminoAcid("Xyz"))
	assert.False(t, IsAminoAcid(""))
}

func TestDeprecatedRelationsAreRealRelations(t *testing.T) {
	for rel := range DeprecatedRelations {
		assert.Equal(t, rel, RelationTags[rel], "deprecated relation %q must still parse", rel)
	}
}
