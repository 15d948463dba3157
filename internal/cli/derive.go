package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/provgraph/internal/config"
	"github.com/roach88/provgraph/internal/engine"
	"github.com/roach88/provgraph/internal/rdfload"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Config      string
	Output      string
	Variable    string
	Database    string
	GraphFilter string
	InputFormat string
	Indent      bool
}

// DeriveSummary is the result printed by the derive command.
type DeriveSummary struct {
	RunID            string `json:"run_id"`
	Output           string `json:"output"`
	Nodes            int    `json:"nodes"`
	StatementsRead   int64  `json:"statements_read"`
	StatementsStored int64  `json:"statements_stored"`
	Filtered         int64  `json:"statements_filtered"`
	Inputs           int    `json:"inputs"`
	Outputs          int    `json:"outputs"`
	ResolvedInputs   int    `json:"resolved_inputs"`
	UnresolvedInputs int    `json:"unresolved_inputs"`
	SkippedBindings  int    `json:"skipped_bindings"`
	MissingLabels    int    `json:"missing_labels"`
}

func (s DeriveSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wrote %s (%d nodes)\n", s.Output, s.Nodes)
	fmt.Fprintf(&b, "  statements: %d read, %d stored, %d filtered\n", s.StatementsRead, s.StatementsStored, s.Filtered)
	fmt.Fprintf(&b, "  inputs: %d (%d resolved, %d unresolved)\n", s.Inputs, s.ResolvedInputs, s.UnresolvedInputs)
	fmt.Fprintf(&b, "  outputs: %d", s.Outputs)
	if s.SkippedBindings > 0 || s.MissingLabels > 0 {
		fmt.Fprintf(&b, "\n  warnings: %d skipped bindings, %d missing labels", s.SkippedBindings, s.MissingLabels)
	}
	return b.String()
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive <document>",
		Short: "Derive the activity graph from a provenance document",
		Long: `Load a provenance document, derive the activity graph and write it as a
JavaScript artifact ("var graph_data = {...}").

Settings come from the CUE config file when given; flags override it.
Without --input-format or a config file, the format is inferred from the
document's extension and falls back to N-Quads. TriG is not read
directly; convert it to N-Quads first (for example with
"riot --output=nquads doc.trig"), which keeps every named graph.

Exit codes:
  0 - Artifact written
  1 - Query or export failed
  2 - Command error (bad arguments, invalid config, unreadable input)

Examples:
  provgraph derive provenance.nq
  provgraph derive provenance.nq --output web/graph_data.js --indent
  provgraph derive provenance.nq --config provgraph.cue --graph-filter nidash`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to CUE config file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "artifact path (default graph_data.js)")
	cmd.Flags().StringVar(&opts.Variable, "variable", "", "JavaScript variable name (default graph_data)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default in-memory)")
	cmd.Flags().StringVar(&opts.GraphFilter, "graph-filter", "", "keep only graphs whose name contains this substring")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (nquads|ntriples|turtle)")
	cmd.Flags().BoolVar(&opts.Indent, "indent", false, "pretty-print the artifact JSON")

	return cmd
}

func runDerive(opts *DeriveOptions, document string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}
	applyDeriveFlags(&cfg, opts, cmd, document)

	if _, err := os.Stat(document); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("document not found: %s", document), err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	eng := engine.New(cfg,
		engine.WithRunIDGenerator(opts.runIDGenerator()),
		engine.WithLogger(logger),
	)
	if err := eng.Validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	formatter.VerboseLog("Deriving graph from %s", document)
	result, err := eng.Run(ctx, document)
	if err != nil {
		exitCode, code := phaseExit(err)
		return formatter.Fail(exitCode, code, "derivation failed", err)
	}

	return formatter.Success(DeriveSummary{
		RunID:            result.RunID,
		Output:           result.OutputPath,
		Nodes:            result.Graph.Len(),
		StatementsRead:   result.Load.Read,
		StatementsStored: result.Load.Stored,
		Filtered:         result.Load.Filtered,
		Inputs:           result.Derive.Inputs,
		Outputs:          result.Derive.Outputs,
		ResolvedInputs:   result.Derive.ResolvedInputs,
		UnresolvedInputs: result.Derive.UnresolvedInputs,
		SkippedBindings:  result.Derive.SkippedBindings,
		MissingLabels:    result.Derive.MissingLabels,
	})
}

// resolveConfig loads path, or the defaults when path is empty.
func resolveConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// applyDeriveFlags overrides config values with explicitly set flags.
func applyDeriveFlags(cfg *config.Config, opts *DeriveOptions, cmd *cobra.Command, document string) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = opts.Output
	}
	if flags.Changed("variable") {
		cfg.Output.Variable = opts.Variable
	}
	if flags.Changed("indent") {
		cfg.Output.Indent = opts.Indent
	}
	if flags.Changed("db") {
		cfg.Store.Path = opts.Database
	}
	if flags.Changed("graph-filter") {
		cfg.Input.GraphFilter = opts.GraphFilter
	}
	switch {
	case flags.Changed("input-format"):
		cfg.Input.Format = opts.InputFormat
	case opts.Config == "":
		if f, ok := rdfload.FormatForPath(document); ok {
			cfg.Input.Format = string(f)
		}
	}
}

// signalContext returns the command context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
