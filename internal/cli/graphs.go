package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/store"
)

// GraphsOptions holds flags for the graphs command.
type GraphsOptions struct {
	*RootOptions
	Database string
	Show     string
}

// GraphsResult is the result printed by the graphs command.
type GraphsResult struct {
	Graphs     []store.GraphInfo  `json:"graphs"`
	Statements int64              `json:"statements"`
	Loads      []store.LoadRecord `json:"loads"`
}

func (r GraphsResult) String() string {
	if len(r.Graphs) == 0 {
		return "No statements loaded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d statements in %d graphs\n", r.Statements, len(r.Graphs))
	for _, g := range r.Graphs {
		name := g.Name
		if name == "" {
			name = "(default graph)"
		}
		fmt.Fprintf(&b, "  %8d  %s\n", g.Statements, name)
	}
	fmt.Fprintf(&b, "%d loads", len(r.Loads))
	return b.String()
}

// GraphStatements is the result printed by graphs --show.
type GraphStatements struct {
	Graph      string    `json:"graph"`
	Statements []ir.Quad `json:"statements"`
}

func (r GraphStatements) String() string {
	var b strings.Builder
	for _, q := range r.Statements {
		fmt.Fprintf(&b, "%s %s %s .\n", formatTerm(q.Subject), formatTerm(q.Predicate), formatTerm(q.Object))
	}
	fmt.Fprintf(&b, "(%d statements)", len(r.Statements))
	return b.String()
}

// formatTerm renders a term in N-Triples syntax.
func formatTerm(t ir.Term) string {
	switch t.Kind {
	case ir.KindIRI:
		return "<" + t.Value + ">"
	case ir.KindBlank:
		return "_:" + t.Value
	}
	lit := strconv.Quote(t.Value)
	switch {
	case t.Lang != "":
		return lit + "@" + t.Lang
	case t.Datatype != "":
		return lit + "^^<" + t.Datatype + ">"
	default:
		return lit
	}
}

// NewGraphsCommand creates the graphs command.
func NewGraphsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "List named graphs in a store",
		Long: `List the named graphs in a quad store with their statement counts, in
order of first appearance, followed by the number of recorded loads.
With --show, print the statements of one graph instead; an empty name
selects the default graph.

Examples:
  provgraph graphs --db ./prov.db
  provgraph graphs --db ./prov.db --format json
  provgraph graphs --db ./prov.db --show http://example.org/bundle/a`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphs(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Show, "show", "", "print the statements of this graph")

	return cmd
}

func runGraphs(opts *GraphsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if cmd.Flags().Changed("show") {
		quads, err := st.ReadGraph(ctx, opts.Show)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, "failed to read graph", err)
		}
		return formatter.Success(GraphStatements{Graph: opts.Show, Statements: quads})
	}

	graphs, err := st.ListGraphs(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, "failed to list graphs", err)
	}
	total, err := st.CountQuads(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, "failed to count statements", err)
	}
	loads, err := st.ReadLoads(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeStore, "failed to read loads", err)
	}

	return formatter.Success(GraphsResult{
		Graphs:     graphs,
		Statements: total,
		Loads:      loads,
	})
}
