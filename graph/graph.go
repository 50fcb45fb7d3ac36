// Package graph holds the BEL knowledge graph: nodes identified by
// content-derived keys, unqualified structural edges deduplicated by
// relation, and qualified edges carrying their citation, evidence, and
// annotation context. Construction from parsed statements is the Builder's
// job; this file is the data model and its queries.
package graph

import (
	"sort"

	"github.com/openbiodata/belgraph/ast"
)

// Node is one biological entity. Key is the content-derived identity the
// rest of the graph refers to; the remaining fields let the canonical
// writer reconstruct the node's BEL text without re-parsing.
type Node struct {
	Key       string
	Type      string
	Namespace string
	Name      string

	// VariantTexts holds the sorted canonical variant strings for variant
	// nodes, empty otherwise.
	VariantTexts []string

	// FusionText holds the canonical fus(...) string for fusion nodes.
	FusionText string
}

// ModifierPayload is the statement-modifier context one side of a qualified
// edge carries: act/deg/tloc/sec/surf plus their effects, and the term's
// loc() if it had one.
type ModifierPayload struct {
	Kind     string
	Activity *ast.Identifier
	FromLoc  *ast.Identifier
	ToLoc    *ast.Identifier
	Location *ast.Identifier
}

// Edge is one directed edge. Unqualified edges use their relation name as
// Key and carry no context; qualified edges get a per-graph serial Key and
// snapshot the control state active when they were asserted.
type Edge struct {
	Source   string
	Target   string
	Key      string
	Relation string

	Subject *ModifierPayload
	Object  *ModifierPayload

	Citation    map[string]string
	Evidence    string
	Annotations map[string][]string

	// Line is the 1-based document line of the asserting statement, 0 for
	// structural edges.
	Line int
}

// Qualified reports whether the edge carries citation context.
func (e *Edge) Qualified() bool {
	return len(e.Citation) > 0
}

// Graph is a directed multigraph over BEL nodes plus the document metadata
// parsed alongside it.
type Graph struct {
	// Document holds the SET DOCUMENT metadata (Name, Version, ...).
	Document map[string]string
	// NamespaceURL and NamespaceList record DEFINE NAMESPACE lines.
	NamespaceURL  map[string]string
	NamespaceList map[string][]string
	// AnnotationURL and AnnotationList record DEFINE ANNOTATION lines.
	AnnotationURL  map[string]string
	AnnotationList map[string][]string

	nodes map[string]*Node
	// out indexes edges as source -> target -> edge key.
	out     map[string]map[string]map[string]*Edge
	edgeN   int
	edgeSeq int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Document:       map[string]string{},
		NamespaceURL:   map[string]string{},
		NamespaceList:  map[string][]string{},
		AnnotationURL:  map[string]string{},
		AnnotationList: map[string][]string{},
		nodes:          map[string]*Node{},
		out:            map[string]map[string]map[string]*Edge{},
	}
}

// AddNode inserts a node if its key is not present yet and returns the
// stored node. Re-adding an existing key is a no-op, which makes node
// creation idempotent.
func (g *Graph) AddNode(n *Node) *Node {
	if existing, ok := g.nodes[n.Key]; ok {
		return existing
	}
	g.nodes[n.Key] = n
	return n
}

// Node returns the node with the given key, or nil.
func (g *Graph) Node(key string) *Node {
	return g.nodes[key]
}

// HasNode reports whether the key is present.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edgeN
}

// Nodes returns all nodes sorted by key, for deterministic iteration.
func (g *Graph) Nodes() []*Node {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	nodes := make([]*Node, len(keys))
	for i, k := range keys {
		nodes[i] = g.nodes[k]
	}
	return nodes
}

// addEdge stores e under (source, target, key), overwriting any edge with
// the same triple. Both endpoints must already be nodes.
func (g *Graph) addEdge(e *Edge) {
	targets, ok := g.out[e.Source]
	if !ok {
		targets = map[string]map[string]*Edge{}
		g.out[e.Source] = targets
	}
	edges, ok := targets[e.Target]
	if !ok {
		edges = map[string]*Edge{}
		targets[e.Target] = edges
	}
	if _, exists := edges[e.Key]; !exists {
		g.edgeN++
	}
	edges[e.Key] = e
}

// AddUnqualifiedEdge adds a structural edge keyed by its relation, so
// asserting the same relation between the same nodes twice collapses to
// one edge.
func (g *Graph) AddUnqualifiedEdge(source, target, relation string) *Edge {
	if existing := g.edge(source, target, relation); existing != nil {
		return existing
	}
	e := &Edge{Source: source, Target: target, Key: relation, Relation: relation}
	g.addEdge(e)
	return e
}

// AddQualifiedEdge adds an evidence-bearing edge under a fresh serial key.
// Repeated assertions of the same triple accumulate as parallel edges.
func (g *Graph) AddQualifiedEdge(e *Edge) *Edge {
	g.edgeSeq++
	e.Key = qualifiedKey(g.edgeSeq)
	g.addEdge(e)
	return e
}

func qualifiedKey(seq int) string {
	// Zero-padded so lexicographic edge ordering follows insertion order.
	const digits = "0123456789"
	buf := []byte("q00000000")
	for i := len(buf) - 1; seq > 0 && i > 0; i-- {
		buf[i] = digits[seq%10]
		seq /= 10
	}
	return string(buf)
}

func (g *Graph) edge(source, target, key string) *Edge {
	if targets, ok := g.out[source]; ok {
		if edges, ok := targets[target]; ok {
			return edges[key]
		}
	}
	return nil
}

// HasEdge reports whether any edge runs from source to target.
func (g *Graph) HasEdge(source, target string) bool {
	targets, ok := g.out[source]
	if !ok {
		return false
	}
	edges, ok := targets[target]
	return ok && len(edges) > 0
}

// HasRelation reports whether an edge with the given relation runs from
// source to target.
func (g *Graph) HasRelation(source, target, relation string) bool {
	if targets, ok := g.out[source]; ok {
		if edges, ok := targets[target]; ok {
			for _, e := range edges {
				if e.Relation == relation {
					return true
				}
			}
		}
	}
	return false
}

// EdgesBetween returns the edges from source to target sorted by key.
func (g *Graph) EdgesBetween(source, target string) []*Edge {
	targets, ok := g.out[source]
	if !ok {
		return nil
	}
	edges, ok := targets[target]
	if !ok {
		return nil
	}
	out := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Edges returns every edge sorted by (source, target, key), for
// deterministic iteration.
func (g *Graph) Edges() []*Edge {
	var out []*Edge
	for _, targets := range g.out {
		for _, edges := range targets {
			for _, e := range edges {
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Key < b.Key
	})
	return out
}

// OutEdges returns the edges leaving the node, sorted.
func (g *Graph) OutEdges(source string) []*Edge {
	targets, ok := g.out[source]
	if !ok {
		return nil
	}
	var out []*Edge
	for target := range targets {
		out = append(out, g.EdgesBetween(source, target)...)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Key < b.Key
	})
	return out
}
