package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/provgraph/internal/executor"
	"github.com/roach88/provgraph/internal/export"
	"github.com/roach88/provgraph/internal/provgraph"
	"github.com/roach88/provgraph/internal/rdfload"
	"github.com/roach88/provgraph/internal/store"
	"github.com/roach88/provgraph/internal/vocab"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Errors lists failed assertions.
	Errors []string

	Load  rdfload.Stats
	Stats provgraph.Stats
	Graph *provgraph.Graph

	// Artifact is the rendered, indented artifact.
	Artifact []byte
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database. Logging is discarded.
// An error is returned only when the scenario cannot be executed; failed
// assertions are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	format := rdfload.FormatNQuads
	if scenario.Format != "" {
		f, err := rdfload.ParseFormat(scenario.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	loadStats, err := rdfload.Load(ctx, st, strings.NewReader(scenario.Document), rdfload.Options{
		Format:      format,
		GraphFilter: scenario.GraphFilter,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	exec := executor.NewSQLExecutor(st).WithLogger(logger)
	shapes := vocab.BuildShapes(vocab.Default())

	graph, stats, err := provgraph.Derive(ctx, exec, shapes, scenario.derivePolicy(), provgraph.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("derive graph: %w", err)
	}

	artifact, err := export.Render(graph, export.Options{Indent: true})
	if err != nil {
		return nil, fmt.Errorf("render artifact: %w", err)
	}

	result := &Result{
		Pass:     true,
		Errors:   []string{},
		Load:     loadStats,
		Stats:    stats,
		Graph:    graph,
		Artifact: artifact,
	}

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(graph, a); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}
