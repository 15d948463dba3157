package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/provgraph/internal/config"
	"github.com/roach88/provgraph/internal/executor"
	"github.com/roach88/provgraph/internal/export"
	"github.com/roach88/provgraph/internal/provgraph"
	"github.com/roach88/provgraph/internal/rdfload"
	"github.com/roach88/provgraph/internal/store"
	"github.com/roach88/provgraph/internal/vocab"
)

// Engine runs derivations with a fixed configuration.
type Engine struct {
	cfg         config.Config
	runIDs      RunIDGenerator
	logger      *slog.Logger
	wrapQueries func(executor.QueryExecutor) executor.QueryExecutor
}

// Option configures an Engine.
type Option func(*Engine)

// WithRunIDGenerator sets the run id source. Default: UUIDv7Generator.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = gen
	}
}

// WithLogger sets the base logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithExecutorWrapper wraps the store-backed query executor of each run.
// Result.Queries counts only the queries that reach the store executor.
func WithExecutorWrapper(wrap func(executor.QueryExecutor) executor.QueryExecutor) Option {
	return func(e *Engine) {
		e.wrapQueries = wrap
	}
}

// New creates an Engine for cfg.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		runIDs: UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Load       rdfload.Stats
	Derive     provgraph.Stats
	Queries    int
	Graph      *provgraph.Graph
	OutputPath string
}

// Validate checks the options a run depends on.
func (e *Engine) Validate() error {
	if _, err := rdfload.ParseFormat(e.cfg.Input.Format); err != nil {
		return err
	}
	if err := export.ValidateVariable(e.cfg.Output.Variable); err != nil {
		return err
	}
	if err := e.cfg.Namespaces().Validate(); err != nil {
		return err
	}
	return e.cfg.DerivePolicy().WithDefaults().Validate()
}

// Run loads document, derives the graph and writes the artifact.
//
// The store is opened at the configured path, or in memory when the path
// is empty, and closed before Run returns. Errors are *PhaseError.
func (e *Engine) Run(ctx context.Context, document string) (*Result, error) {
	runID := e.runIDs.Generate()
	logger := e.logger.With("run_id", runID)

	if err := e.Validate(); err != nil {
		return nil, phaseError(PhaseConfig, runID, err)
	}

	logger.Info("run starting", "document", document, "store", storeLabel(e.cfg.Store.Path))

	st, err := store.Open(e.cfg.Store.Path)
	if err != nil {
		return nil, phaseError(PhaseLoad, runID, err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing store", "error", closeErr)
		}
	}()

	loadStats, err := e.load(ctx, st, document, runID, logger)
	if err != nil {
		return nil, phaseError(PhaseLoad, runID, err)
	}

	sqlExec := executor.NewSQLExecutor(st).WithLogger(logger)
	var exec executor.QueryExecutor = sqlExec
	if e.wrapQueries != nil {
		exec = e.wrapQueries(sqlExec)
	}
	shapes := vocab.BuildShapes(e.cfg.Namespaces())

	logger.Info("deriving graph")
	graph, deriveStats, err := provgraph.Derive(ctx, exec, shapes, e.cfg.DerivePolicy(), provgraph.WithLogger(logger))
	if err != nil {
		return nil, phaseError(PhaseQuery, runID, err)
	}
	if deriveStats.SkippedBindings > 0 || deriveStats.MissingLabels > 0 {
		logger.Warn("incomplete linkage data",
			"skipped_bindings", deriveStats.SkippedBindings,
			"missing_labels", deriveStats.MissingLabels)
	}

	path := e.cfg.Output.Path
	if path == "" {
		path = export.DefaultPath
	}
	opts := export.Options{Variable: e.cfg.Output.Variable, Indent: e.cfg.Output.Indent}
	if err := export.Write(path, graph, opts); err != nil {
		return nil, phaseError(PhaseExport, runID, err)
	}

	logger.Info("artifact written", "path", path, "nodes", graph.Len())

	return &Result{
		RunID:      runID,
		Load:       loadStats,
		Derive:     deriveStats,
		Queries:    sqlExec.Executed(),
		Graph:      graph,
		OutputPath: path,
	}, nil
}

// Load loads document into st and records the load.
// Used by callers that keep a persistent store between runs.
func (e *Engine) Load(ctx context.Context, st *store.Store, document string) (string, rdfload.Stats, error) {
	runID := e.runIDs.Generate()
	logger := e.logger.With("run_id", runID)

	if _, err := rdfload.ParseFormat(e.cfg.Input.Format); err != nil {
		return runID, rdfload.Stats{}, phaseError(PhaseConfig, runID, err)
	}

	stats, err := e.load(ctx, st, document, runID, logger)
	if err != nil {
		return runID, stats, phaseError(PhaseLoad, runID, err)
	}
	return runID, stats, nil
}

func (e *Engine) load(ctx context.Context, st *store.Store, document, runID string, logger *slog.Logger) (rdfload.Stats, error) {
	format, err := rdfload.ParseFormat(e.cfg.Input.Format)
	if err != nil {
		return rdfload.Stats{}, err
	}

	f, err := os.Open(document)
	if err != nil {
		return rdfload.Stats{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	logger.Info("loading document", "path", document, "format", format)

	stats, err := rdfload.Load(ctx, st, f, rdfload.Options{
		Format:      format,
		GraphFilter: e.cfg.Input.GraphFilter,
		Logger:      logger,
	})
	if err != nil {
		return stats, err
	}

	seq, err := st.NextLoadSeq(ctx)
	if err != nil {
		return stats, err
	}
	if err := st.WriteLoad(ctx, store.LoadRecord{
		ID:       runID,
		Source:   document,
		Format:   string(format),
		Read:     stats.Read,
		Stored:   stats.Stored,
		Filtered: stats.Filtered,
		Seq:      seq,
	}); err != nil {
		return stats, err
	}

	logger.Info("document loaded",
		"read", stats.Read,
		"stored", stats.Stored,
		"filtered", stats.Filtered)

	return stats, nil
}

func storeLabel(path string) string {
	if path == "" {
		return store.MemoryPath
	}
	return path
}
