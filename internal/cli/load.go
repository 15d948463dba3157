package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/provgraph/internal/engine"
	"github.com/roach88/provgraph/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database    string
	Config      string
	GraphFilter string
	InputFormat string
}

// LoadSummary is the result printed by the load command.
type LoadSummary struct {
	RunID    string `json:"run_id"`
	Database string `json:"database"`
	Read     int64  `json:"read"`
	Stored   int64  `json:"stored"`
	Filtered int64  `json:"filtered"`
}

func (s LoadSummary) String() string {
	return fmt.Sprintf("Loaded into %s: %d read, %d stored, %d filtered", s.Database, s.Read, s.Stored, s.Filtered)
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <document>",
		Short: "Load a provenance document into a persistent store",
		Long: `Load a provenance document into a SQLite quad store without deriving a
graph. Statements already in the store are ignored, so loading the same
document twice stores it once.

Examples:
  provgraph load provenance.nq --db ./prov.db
  provgraph load labels.ttl --db ./prov.db --input-format turtle`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to CUE config file")
	cmd.Flags().StringVar(&opts.GraphFilter, "graph-filter", "", "keep only graphs whose name contains this substring")
	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (nquads|ntriples|turtle)")

	return cmd
}

func runLoad(opts *LoadOptions, document string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := resolveConfig(opts.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}
	applyDeriveFlags(&cfg, &DeriveOptions{
		RootOptions: opts.RootOptions,
		Config:      opts.Config,
		GraphFilter: opts.GraphFilter,
		InputFormat: opts.InputFormat,
	}, cmd, document)
	cfg.Store.Path = opts.Database

	if _, err := os.Stat(document); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("document not found: %s", document), err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	eng := engine.New(cfg,
		engine.WithRunIDGenerator(opts.runIDGenerator()),
		engine.WithLogger(logger),
	)

	ctx, stop := signalContext(cmd)
	defer stop()

	runID, stats, err := eng.Load(ctx, st, document)
	if err != nil {
		exitCode, code := phaseExit(err)
		return formatter.Fail(exitCode, code, "load failed", err)
	}

	return formatter.Success(LoadSummary{
		RunID:    runID,
		Database: opts.Database,
		Read:     stats.Read,
		Stored:   stats.Stored,
		Filtered: stats.Filtered,
	})
}
