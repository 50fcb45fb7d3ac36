package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/config"
)

var (
	compileFormat       string
	compileSkipMetadata bool
)

// CompileCmd parses a BEL script and reports or exports its graph.
var CompileCmd = &cobra.Command{
	Use:   "compile <file.bel>",
	Short: "Compile a BEL script into a graph",
	Long: `Compile parses a BEL script, builds its knowledge graph, and prints a
summary or a JSON/YAML export.

The document and definition sections are strict: failures there abort the
compile. Statement errors are collected as warnings and compilation
continues with the remaining statements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		format := cfg.Output.Format
		if compileFormat != "" {
			format = compileFormat
		}

		g, warnings, err := compileFile(args[0], cfg, compileSkipMetadata)
		if err != nil {
			return err
		}

		printWarnings(warnings)
		if len(warnings) > 0 && format == "text" {
			pterm.Printfln("%d statement(s) skipped", len(warnings))
		}

		return renderExport(g, format)
	},
}

func init() {
	CompileCmd.Flags().StringVarP(&compileFormat, "format", "o", "", "Output format: text, json, or yaml")
	CompileCmd.Flags().BoolVar(&compileSkipMetadata, "skip-metadata", false, "Skip required document metadata validation")
}
