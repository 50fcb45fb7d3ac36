package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openbiodata/belgraph/canonical"
	"github.com/openbiodata/belgraph/config"
	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/parser"
)

var canonExpr string

// CanonCmd rewrites BEL input in canonical form.
var CanonCmd = &cobra.Command{
	Use:   "canon [file.bel]",
	Short: "Rewrite BEL in canonical form",
	Long: `Canon rewrites a BEL script in canonical form: short function names,
sorted variants and members, statements grouped by citation and evidence.

With -e, a single term or statement given on the command line is
canonicalized instead; namespace validation is skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if canonExpr != "" {
			return canonInline(canonExpr)
		}
		if len(args) == 0 {
			return errors.New("provide a file or an expression with -e")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		g, warnings, err := compileFile(args[0], cfg, false)
		if err != nil {
			return err
		}
		printWarnings(warnings)

		out, err := canonical.WriteDocument(g)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// canonInline canonicalizes one term or statement from the command line.
func canonInline(text string) error {
	p := parser.New()

	stmt, perr := p.ParseStatement(text)
	if perr != nil {
		return perr
	}
	for _, w := range p.Warnings() {
		fmt.Println(w.FormatError(parser.ErrorContextTerminal))
	}

	subject, err := canonical.WriteTerm(stmt.Subject)
	if err != nil {
		return err
	}
	if stmt.Relation == "" {
		fmt.Println(subject)
		return nil
	}

	if stmt.Object == nil {
		// hasMembers keeps its list form.
		parts := make([]string, len(stmt.ObjectList))
		for i, m := range stmt.ObjectList {
			if parts[i], err = canonical.WriteTerm(m); err != nil {
				return err
			}
		}
		fmt.Printf("%s %s list(", subject, stmt.Relation)
		for i, part := range parts {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(part)
		}
		fmt.Println(")")
		return nil
	}

	object, err := canonical.WriteTerm(stmt.Object)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %s\n", subject, stmt.Relation, object)
	return nil
}

func init() {
	CanonCmd.Flags().StringVarP(&canonExpr, "expression", "e", "", "Canonicalize a single term or statement")
}
