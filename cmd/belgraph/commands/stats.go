package commands

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/config"
)

// StatsCmd summarizes the graph a BEL script compiles to.
var StatsCmd = &cobra.Command{
	Use:   "stats <file.bel>",
	Short: "Show graph statistics for a BEL script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		g, warnings, err := compileFile(args[0], cfg, false)
		if err != nil {
			return err
		}

		renderSummary(g)

		pterm.DefaultSection.Println("Nodes by type")
		if err := renderCounts(g.TypeCounts()); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Edges by relation")
		if err := renderCounts(g.RelationCounts()); err != nil {
			return err
		}

		citations := g.Citations()
		pterm.DefaultSection.Println("Citations")
		pterm.Printfln("%d distinct reference(s)", len(citations))

		if len(warnings) > 0 {
			pterm.DefaultSection.Println("Warnings")
			pterm.Printfln("%d statement(s) skipped", len(warnings))
		}
		return nil
	},
}

func renderCounts(counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := pterm.TableData{{"Kind", "Count"}}
	for _, k := range keys {
		data = append(data, []string{k, pterm.Sprintf("%d", counts[k])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
