package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDropsCommentsAndBlanks(t *testing.T) {
	lines := Sanitize([]string{
		"# a comment",
		"",
		"p(HGNC:AKT1)",
		"   ",
		"#!/another comment",
		"p(HGNC:MAPT) // trailing comment",
	})

	require.Len(t, lines, 2)
	assert.Equal(t, Line{Number: 3, Text: "p(HGNC:AKT1)"}, lines[0])
	assert.Equal(t, Line{Number: 6, Text: "p(HGNC:MAPT)"}, lines[1])
}

func TestSanitizeJoinsBackslashContinuations(t *testing.T) {
	lines := Sanitize([]string{
		`p(HGNC:AKT1) -> \`,
		`  bp(GOBP:"apoptotic process")`,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, `p(HGNC:AKT1) -> bp(GOBP:"apoptotic process")`, lines[0].Text)
}

func TestSanitizeJoinsOpenQuotes(t *testing.T) {
	lines := Sanitize([]string{
		`SET Evidence = "evidence that spans`,
		`several lines`,
		`of the source file"`,
		`p(HGNC:AKT1)`,
	})

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, `SET Evidence = "evidence that spans several lines of the source file"`, lines[0].Text)
	assert.Equal(t, 4, lines[1].Number)
}

func TestSanitizeKeepsSlashesInsideQuotes(t *testing.T) {
	lines := Sanitize([]string{
		`SET DOCUMENT ContactInfo = "https://example.com/contact"`,
	})

	require.Len(t, lines, 1)
	assert.Equal(t, `SET DOCUMENT ContactInfo = "https://example.com/contact"`, lines[0].Text)
}
