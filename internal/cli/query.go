package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/provgraph/internal/executor"
	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/store"
	"github.com/roach88/provgraph/internal/vocab"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Scope    string
	Config   string
}

// QueryResult is the result printed by the query command.
type QueryResult struct {
	Shape    string       `json:"shape"`
	Scope    string       `json:"scope,omitempty"`
	Vars     []string     `json:"vars"`
	Bindings []ir.Binding `json:"bindings"`
}

func (r QueryResult) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Vars, "\t"))
	for _, binding := range r.Bindings {
		b.WriteByte('\n')
		row := make([]string, len(r.Vars))
		for i, v := range r.Vars {
			row[i] = binding.Get(v)
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	fmt.Fprintf(&b, "\n(%d bindings)", len(r.Bindings))
	return b.String()
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <linkage|inputs|outputs>",
		Short: "Run one query shape against a store",
		Long: `Run one of the derivation's query shapes against a quad store and print
the bindings in result order.

linkage runs across all graphs. inputs and outputs run inside one graph
and require --scope with the bundle identifier.

Examples:
  provgraph query linkage --db ./prov.db
  provgraph query inputs --db ./prov.db --scope http://example.org/bundle/a`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{vocab.ShapeLinkage, vocab.ShapeInputs, vocab.ShapeOutputs},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "graph to scope inputs/outputs queries to")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to CUE config file (for vocabulary)")

	return cmd
}

func runQuery(opts *QueryOptions, shapeName string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	shapes := vocab.BuildShapes(cfg.Namespaces())
	shape, ok := shapes.ByName(shapeName)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeConfig,
			fmt.Sprintf("unknown query shape %q: must be one of linkage, inputs, outputs", shapeName), nil)
	}
	if shape.Scoped && opts.Scope == "" {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, fmt.Sprintf("query %s requires --scope", shapeName), nil)
	}
	if !shape.Scoped && opts.Scope != "" {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, fmt.Sprintf("query %s does not take --scope", shapeName), nil)
	}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	exec := executor.NewSQLExecutor(st).WithLogger(newLogger(cmd.ErrOrStderr(), opts.Verbose))

	var bindings []ir.Binding
	if shape.Scoped {
		bindings, err = exec.ExecuteScoped(cmd.Context(), shape, opts.Scope)
	} else {
		bindings, err = exec.ExecuteGlobal(cmd.Context(), shape)
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeQuery, "query failed", err)
	}

	return formatter.Success(QueryResult{
		Shape:    shapeName,
		Scope:    opts.Scope,
		Vars:     shape.Vars,
		Bindings: bindings,
	})
}

// openExistingStore opens the database at path, refusing to create one.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return store.Open(path)
}
