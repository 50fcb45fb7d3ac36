package commands

import (
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/canonical"
	"github.com/openbiodata/belgraph/config"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/graph"
)

// QueryCmd runs a small query against a compiled graph. The query is one
// quoted string tokenized shell-style, so node keys containing spaces work
// when quoted:
//
//	belgraph query doc.bel 'neighbors "Complex:SCOMP:AP-1 Complex"'
var QueryCmd = &cobra.Command{
	Use:   "query <file.bel> <query>",
	Short: "Query a compiled graph",
	Long: `Query compiles a BEL script and runs one query against the graph.

Queries:
  node <key>          Show one node and its canonical BEL text
  neighbors <key>     Show the edges leaving a node
  nodes <type>        List nodes of one kind (Protein, Complex, ...)
  edges <relation>    List edges asserting one relation`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		g, warnings, err := compileFile(args[0], cfg, false)
		if err != nil {
			return err
		}
		printWarnings(warnings)

		tokens, err := shellquote.Split(args[1])
		if err != nil {
			return errors.Wrap(err, "tokenize query")
		}
		if len(tokens) != 2 {
			return errors.Newf("queries take exactly one argument, got %d", len(tokens)-1)
		}

		switch tokens[0] {
		case "node":
			return queryNode(g, tokens[1])
		case "neighbors":
			return queryNeighbors(g, tokens[1])
		case "nodes":
			return queryNodes(g, tokens[1])
		case "edges":
			return queryEdges(g, tokens[1])
		}
		return errors.Newf("unknown query %q", tokens[0])
	},
}

func queryNode(g *graph.Graph, key string) error {
	node := g.Node(key)
	if node == nil {
		return errors.Newf("no node with key %q", key)
	}
	text, err := canonical.NodeText(g, key)
	if err != nil {
		return err
	}
	pterm.Printfln("%s  %s", pterm.Cyan(node.Key), text)
	return nil
}

func queryNeighbors(g *graph.Graph, key string) error {
	if !g.HasNode(key) {
		return errors.Newf("no node with key %q", key)
	}
	for _, e := range g.OutEdges(key) {
		pterm.Printfln("%s %s %s", e.Source, pterm.Yellow(e.Relation), e.Target)
	}
	return nil
}

func queryNodes(g *graph.Graph, kind string) error {
	for _, n := range g.NodesByType(kind) {
		text, err := canonical.NodeText(g, n.Key)
		if err != nil {
			return err
		}
		pterm.Printfln("%s  %s", pterm.Cyan(n.Key), text)
	}
	return nil
}

func queryEdges(g *graph.Graph, relation string) error {
	for _, e := range g.EdgesByRelation(relation) {
		pterm.Printfln("%s %s %s", e.Source, pterm.Yellow(e.Relation), e.Target)
	}
	return nil
}
