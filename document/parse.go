package document

import (
	"bufio"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/openbiodata/belgraph/errors"
	"github.com/openbiodata/belgraph/graph"
	"github.com/openbiodata/belgraph/logger"
	"github.com/openbiodata/belgraph/parser"
)

// Options configures a document parse.
type Options struct {
	// Resolver fetches URL-defined namespace and annotation members.
	// Without one, URL definitions stay open and member checks pass.
	Resolver Resolver
	// CompleteOrigin turns on central-dogma origin completion in the
	// builder.
	CompleteOrigin bool
	// AllowNakedNames permits identifiers without a namespace prefix.
	AllowNakedNames bool
	// SkipMetadataValidation disables the required-key check on the
	// document section, for fragments and tests.
	SkipMetadataValidation bool
}

// Parse reads a whole BEL script and builds its graph. Malformed document
// and definition lines are strict and abort with an error; missing required
// document metadata is recorded as a warning. The statement section is
// lenient: recoverable statement errors are collected as warnings and
// parsing continues.
func Parse(r io.Reader, opts Options) (*graph.Graph, []parser.Warning, error) {
	runID := uuid.NewString()
	logger.Infow("parsing document", "run_id", runID)

	raw, err := readLines(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading input")
	}
	lines := Sanitize(raw)

	g := graph.New()
	index := newDefinitionIndex()

	parserOpts := []parser.Option{parser.WithNamespaces(index)}
	if opts.AllowNakedNames {
		parserOpts = append(parserOpts, parser.WithNakedNames())
	}
	p := parser.New(parserOpts...)

	builderOpts := []graph.BuilderOption{}
	if opts.CompleteOrigin {
		builderOpts = append(builderOpts, graph.WithOriginCompletion())
	}
	b := graph.NewBuilder(g, builderOpts...)

	state := parser.NewControlState(index)
	var warnings []parser.Warning

	inStatements := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line.Text, "SET DOCUMENT "):
			if inStatements {
				return nil, warnings, errors.Wrapf(errors.ErrDocumentSection,
					"line %d: document metadata after the statement section", line.Number)
			}
			if err := parseDocumentLine(g, strings.TrimPrefix(line.Text, "SET DOCUMENT ")); err != nil {
				return nil, warnings, errors.Wrapf(err, "line %d", line.Number)
			}

		case strings.HasPrefix(line.Text, "DEFINE "):
			if inStatements {
				return nil, warnings, errors.Wrapf(errors.ErrDocumentSection,
					"line %d: definition after the statement section", line.Number)
			}
			if err := parseDefine(g, index, opts.Resolver, strings.TrimPrefix(line.Text, "DEFINE ")); err != nil {
				return nil, warnings, errors.Wrapf(err, "line %d", line.Number)
			}

		default:
			if !inStatements {
				// Missing metadata is surfaced, not fatal: callers that want
				// strictness check the warning list themselves.
				if !opts.SkipMetadataValidation {
					if err := validateMetadata(g); err != nil {
						perr := parser.NewParseError(parser.ErrorKindUnknown, err.Error()).
							WithUnderlying(err).
							WithSeverity(parser.SeverityWarning).
							WithLine(line.Number)
						warnings = append(warnings, parser.Warning{Line: line.Number, Text: line.Text, Err: perr})
					}
				}
				inStatements = true
			}
			warnings = statementLine(p, b, state, line, warnings)
		}
	}

	logger.Infow("parsed document",
		"run_id", runID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"warnings", len(warnings))
	return g, warnings, nil
}

// statementLine runs one statement-section line: a control line or a BEL
// statement. Recoverable failures are appended to warnings.
func statementLine(p *parser.Parser, b *graph.Builder, state *parser.ControlState, line Line, warnings []parser.Warning) []parser.Warning {
	record := func(perr *parser.ParseError) []parser.Warning {
		perr.Line = line.Number
		return append(warnings, parser.Warning{Line: line.Number, Text: line.Text, Err: perr})
	}

	switch {
	case strings.HasPrefix(line.Text, "SET "):
		if perr := state.HandleSet(strings.TrimPrefix(line.Text, "SET ")); perr != nil {
			return record(perr)
		}
		return warnings

	case strings.HasPrefix(line.Text, "UNSET "):
		if perr := state.HandleUnset(strings.TrimPrefix(line.Text, "UNSET ")); perr != nil {
			return record(perr)
		}
		return warnings
	}

	stmt, perr := p.ParseStatement(line.Text)
	for _, w := range p.Warnings() {
		warnings = record(w)
	}
	if perr != nil {
		return record(perr)
	}

	if err := b.AddStatement(stmt, state, line.Number); err != nil {
		// Builder failures are statement-granular too: a statement without
		// citation context spoils only itself. A malformed-term failure here
		// means the grammar accepted something the builder cannot place, so
		// it logs louder than an ordinary parse warning.
		logger.Errorw("statement rejected by graph builder",
			"line", line.Number, "error", err)
		kind := parser.ErrorKindMalformed
		if errors.IsNestedRelationError(err) {
			kind = parser.ErrorKindNested
		}
		berr := parser.NewParseError(kind, err.Error()).
			WithUnderlying(err).
			WithStatement(line.Text)
		return record(berr)
	}

	return warnings
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
