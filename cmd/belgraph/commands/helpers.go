package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/openbiodata/belgraph/config"
	"github.com/openbiodata/belgraph/document"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/graph"
	"github.com/openbiodata/belgraph/logger"
	"github.com/openbiodata/belgraph/parser"
	"github.com/openbiodata/belgraph/store"
)

// compileFile parses one BEL script into a graph using the loaded
// configuration, wiring in the namespace cache as resolver when its
// database exists.
func compileFile(path string, cfg *config.Config, skipMetadata bool) (*graph.Graph, []parser.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	opts := document.Options{
		CompleteOrigin:         cfg.Compile.CompleteOrigin,
		AllowNakedNames:        cfg.Compile.AllowNakedNames,
		SkipMetadataValidation: skipMetadata,
	}

	if resolver := openResolver(cfg); resolver != nil {
		opts.Resolver = resolver
	}

	return document.Parse(f, opts)
}

// openResolver opens the namespace cache if its database file exists.
// A missing cache is not an error: URL definitions then stay open.
func openResolver(cfg *config.Config) document.Resolver {
	if _, err := os.Stat(cfg.Cache.Path); err != nil {
		logger.Debugw("namespace cache not present", "path", cfg.Cache.Path)
		return nil
	}
	db, err := store.Open(cfg.Cache.Path, logger.Logger)
	if err != nil {
		logger.Warnw("failed to open namespace cache", "path", cfg.Cache.Path, "error", err)
		return nil
	}
	cache, err := store.NewCache(db, logger.Logger)
	if err != nil {
		logger.Warnw("failed to initialize namespace cache", "error", err)
		db.Close()
		return nil
	}
	return cache
}

// printWarnings renders parse warnings to the terminal, colored by
// severity.
func printWarnings(warnings []parser.Warning) {
	for _, w := range warnings {
		if w.Err.IsWarning() {
			pterm.Warning.Printfln("line %d: %s", w.Line, w.Err.Message)
		} else {
			pterm.Error.Printfln("line %d: %s", w.Line, w.Err.Message)
		}
		pterm.Println(pterm.Gray("  " + w.Text))
	}
}

// renderExport writes the graph export in the requested format.
func renderExport(g *graph.Graph, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g.ToExport())
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(g.ToExport())
	case "text":
		renderSummary(g)
		return nil
	}
	return errors.Newf("unknown output format %q", format)
}

func renderSummary(g *graph.Graph) {
	pterm.DefaultSection.Println("Graph")
	pterm.Printfln("Nodes: %d", g.NodeCount())
	pterm.Printfln("Edges: %d (%d qualified)", g.EdgeCount(), len(g.QualifiedEdges()))
	if name := g.Document["Name"]; name != "" {
		pterm.Printfln("Document: %s %s", name, g.Document["Version"])
	}
	fmt.Println()
}
