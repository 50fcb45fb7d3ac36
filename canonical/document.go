package canonical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openbiodata/belgraph/graph"
)

// documentKeyOrder fixes the emission order of the well-known document
// metadata keys; anything else follows alphabetically.
var documentKeyOrder = []string{
	"Name", "Version", "Description", "Authors", "ContactInfo",
	"Copyright", "Licenses", "Disclaimer",
}

// WriteDocument renders the whole graph as a canonical BEL script: document
// metadata, definitions, and the qualified statements grouped by citation
// and evidence. Structural edges are implied by the statements and are not
// written.
func WriteDocument(g *graph.Graph) (string, error) {
	var sb strings.Builder

	writeMetadata(&sb, g)
	writeDefinitions(&sb, g)

	sb.WriteString("###############################################\n\n")

	if err := writeStatements(&sb, g); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func writeMetadata(sb *strings.Builder, g *graph.Graph) {
	seen := map[string]bool{}
	for _, key := range documentKeyOrder {
		if value, ok := g.Document[key]; ok {
			fmt.Fprintf(sb, "SET DOCUMENT %s = %q\n", key, value)
			seen[key] = true
		}
	}
	var rest []string
	for key := range g.Document {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(sb, "SET DOCUMENT %s = %q\n", key, g.Document[key])
	}
	sb.WriteString("\n")
}

func writeDefinitions(sb *strings.Builder, g *graph.Graph) {
	for _, keyword := range sortedKeys(g.NamespaceURL) {
		fmt.Fprintf(sb, "DEFINE NAMESPACE %s AS URL %q\n", keyword, g.NamespaceURL[keyword])
	}
	for _, keyword := range sortedListKeys(g.NamespaceList) {
		fmt.Fprintf(sb, "DEFINE NAMESPACE %s AS LIST %s\n", keyword, valueList(g.NamespaceList[keyword]))
	}
	for _, keyword := range sortedKeys(g.AnnotationURL) {
		fmt.Fprintf(sb, "DEFINE ANNOTATION %s AS URL %q\n", keyword, g.AnnotationURL[keyword])
	}
	for _, keyword := range sortedListKeys(g.AnnotationList) {
		fmt.Fprintf(sb, "DEFINE ANNOTATION %s AS LIST %s\n", keyword, valueList(g.AnnotationList[keyword]))
	}
	sb.WriteString("\n")
}

func writeStatements(sb *strings.Builder, g *graph.Graph) error {
	edges := g.QualifiedEdges()
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if ca, cb := citationText(a.Citation), citationText(b.Citation); ca != cb {
			return ca < cb
		}
		if a.Evidence != b.Evidence {
			return a.Evidence < b.Evidence
		}
		return a.Key < b.Key
	})

	var activeCitation, activeEvidence string
	for _, e := range edges {
		citation := citationText(e.Citation)
		if citation != activeCitation {
			if activeCitation != "" {
				sb.WriteString("UNSET Evidence\nUNSET Citation\n\n")
			}
			fmt.Fprintf(sb, "SET Citation = %s\n", citation)
			activeCitation = citation
			activeEvidence = ""
		}
		if e.Evidence != activeEvidence {
			if activeEvidence != "" {
				sb.WriteString("UNSET Evidence\n")
			}
			fmt.Fprintf(sb, "SET Evidence = %q\n", e.Evidence)
			activeEvidence = e.Evidence
		}

		annotationKeys := sortedListKeys(e.Annotations)
		for _, key := range annotationKeys {
			values := e.Annotations[key]
			if len(values) == 1 {
				fmt.Fprintf(sb, "SET %s = %q\n", key, values[0])
			} else {
				fmt.Fprintf(sb, "SET %s = %s\n", key, valueList(values))
			}
		}

		stmt, err := WriteStatement(g, e)
		if err != nil {
			return err
		}
		sb.WriteString(stmt)
		sb.WriteString("\n")

		for _, key := range annotationKeys {
			fmt.Fprintf(sb, "UNSET %s\n", key)
		}
	}
	if activeCitation != "" {
		sb.WriteString("UNSET Evidence\nUNSET Citation\n")
	}
	return nil
}

// citationText renders a citation map as its SET list, 3 or 6 fields.
func citationText(citation map[string]string) string {
	fields := []string{citation["Type"], citation["Name"], citation["Reference"]}
	if citation["Date"] != "" || citation["Authors"] != "" || citation["Comments"] != "" {
		fields = append(fields, citation["Date"], citation["Authors"], citation["Comments"])
	}
	return valueList(fields)
}

func valueList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedListKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
