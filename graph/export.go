package graph

// Export is a serialization-friendly view of a graph, stable across runs
// because nodes and edges are emitted in their deterministic order.
type Export struct {
	Document    map[string]string `json:"document,omitempty" yaml:"document,omitempty"`
	Namespaces  map[string]string `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Nodes       []ExportNode      `json:"nodes" yaml:"nodes"`
	Edges       []ExportEdge      `json:"edges" yaml:"edges"`
}

// ExportNode mirrors Node with serialization tags.
type ExportNode struct {
	Key       string   `json:"key" yaml:"key"`
	Type      string   `json:"type" yaml:"type"`
	Namespace string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Variants  []string `json:"variants,omitempty" yaml:"variants,omitempty"`
	Fusion    string   `json:"fusion,omitempty" yaml:"fusion,omitempty"`
}

// ExportEdge mirrors Edge with serialization tags. Modifier payloads are
// flattened to their canonical identifier texts.
type ExportEdge struct {
	Source      string              `json:"source" yaml:"source"`
	Target      string              `json:"target" yaml:"target"`
	Relation    string              `json:"relation" yaml:"relation"`
	Subject     map[string]string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Object      map[string]string   `json:"object,omitempty" yaml:"object,omitempty"`
	Citation    map[string]string   `json:"citation,omitempty" yaml:"citation,omitempty"`
	Evidence    string              `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Annotations map[string][]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Line        int                 `json:"line,omitempty" yaml:"line,omitempty"`
}

// ToExport flattens the graph for JSON or YAML output.
func (g *Graph) ToExport() *Export {
	out := &Export{
		Document:    g.Document,
		Namespaces:  g.NamespaceURL,
		Annotations: g.AnnotationURL,
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, ExportNode{
			Key:       n.Key,
			Type:      n.Type,
			Namespace: n.Namespace,
			Name:      n.Name,
			Variants:  n.VariantTexts,
			Fusion:    n.FusionText,
		})
	}

	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, ExportEdge{
			Source:      e.Source,
			Target:      e.Target,
			Relation:    e.Relation,
			Subject:     payloadMap(e.Subject),
			Object:      payloadMap(e.Object),
			Citation:    e.Citation,
			Evidence:    e.Evidence,
			Annotations: e.Annotations,
			Line:        e.Line,
		})
	}

	return out
}

func payloadMap(p *ModifierPayload) map[string]string {
	if p == nil {
		return nil
	}
	out := map[string]string{}
	if p.Kind != "" {
		out["modifier"] = p.Kind
	}
	if p.Activity != nil {
		out["activity"] = p.Activity.String()
	}
	if p.FromLoc != nil {
		out["fromLoc"] = p.FromLoc.String()
	}
	if p.ToLoc != nil {
		out["toLoc"] = p.ToLoc.String()
	}
	if p.Location != nil {
		out["location"] = p.Location.String()
	}
	return out
}
