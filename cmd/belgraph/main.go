package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/cmd/belgraph/commands"
	"github.com/openbiodata/belgraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "belgraph",
	Short: "belgraph - BEL compiler and knowledge graph tools",
	Long: `belgraph compiles Biological Expression Language scripts into knowledge
graphs: it parses statements, canonicalizes terms, and assembles nodes and
evidence-bearing edges with stable content-derived identities.

Available commands:
  compile - Compile a BEL script into a graph
  canon   - Rewrite BEL in canonical form
  stats   - Show graph statistics for a BEL script
  query   - Query a compiled graph
  cache   - Manage the namespace cache

Examples:
  belgraph compile document.bel            # Compile and summarize
  belgraph compile document.bel -o json    # Export the graph as JSON
  belgraph canon -e 'kin(p(HGNC:AKT1))'    # Canonicalize one expression
  belgraph query document.bel 'nodes Protein'`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.InitializeWithVerbosity(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")

	rootCmd.AddCommand(commands.CompileCmd)
	rootCmd.AddCommand(commands.CanonCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.QueryCmd)
	rootCmd.AddCommand(commands.CacheCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
