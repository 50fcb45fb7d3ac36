package graph

import "sort"

// NodesByType returns the nodes of one kind, sorted by key.
func (g *Graph) NodesByType(kind string) []*Node {
	var out []*Node
	for _, n := range g.Nodes() {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodesByNamespace returns the nodes whose identifier uses the namespace,
// sorted by key.
func (g *Graph) NodesByNamespace(keyword string) []*Node {
	var out []*Node
	for _, n := range g.Nodes() {
		if n.Namespace == keyword {
			out = append(out, n)
		}
	}
	return out
}

// EdgesByRelation returns the edges asserting the relation, in
// deterministic order.
func (g *Graph) EdgesByRelation(relation string) []*Edge {
	var out []*Edge
	for _, e := range g.Edges() {
		if e.Relation == relation {
			out = append(out, e)
		}
	}
	return out
}

// QualifiedEdges returns the evidence-bearing edges in deterministic order.
func (g *Graph) QualifiedEdges() []*Edge {
	var out []*Edge
	for _, e := range g.Edges() {
		if e.Qualified() {
			out = append(out, e)
		}
	}
	return out
}

// RelationCounts tallies edges per relation name.
func (g *Graph) RelationCounts() map[string]int {
	counts := map[string]int{}
	for _, e := range g.Edges() {
		counts[e.Relation]++
	}
	return counts
}

// TypeCounts tallies nodes per kind.
func (g *Graph) TypeCounts() map[string]int {
	counts := map[string]int{}
	for _, n := range g.Nodes() {
		counts[n.Type]++
	}
	return counts
}

// Citations returns the distinct citation references across qualified
// edges, sorted.
func (g *Graph) Citations() []string {
	seen := map[string]bool{}
	for _, e := range g.QualifiedEdges() {
		if ref, ok := e.Citation["Reference"]; ok {
			seen[ref] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ref := range seen {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// AnnotationValues returns the distinct values used for one annotation key
// across qualified edges, sorted.
func (g *Graph) AnnotationValues(key string) []string {
	seen := map[string]bool{}
	for _, e := range g.QualifiedEdges() {
		for _, v := range e.Annotations[key] {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
