package provgraph

import (
	"context"
	"fmt"

	"github.com/roach88/provgraph/internal/executor"
	"github.com/roach88/provgraph/internal/vocab"
)

// Derive runs the linkage query and the three phases in order.
// opts are passed to every phase.
func Derive(ctx context.Context, exec executor.QueryExecutor, shapes vocab.Shapes, policy Policy, opts ...Option) (*Graph, Stats, error) {
	logger := newOptions(opts).logger
	policy = policy.WithDefaults()
	if err := policy.Validate(); err != nil {
		return nil, Stats{}, err
	}

	linkage, err := exec.ExecuteGlobal(ctx, shapes.Linkage)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("query linkage: %w", err)
	}

	built, stats := Build(linkage, opts...)

	resolved, resolveStats, err := Resolve(ctx, exec, shapes, built, policy, opts...)
	if err != nil {
		return nil, stats, err
	}
	stats = stats.Add(resolveStats)

	linked, linkStats := Link(resolved, policy, opts...)
	stats = stats.Add(linkStats)

	logger.Info("graph derived",
		"nodes", stats.Nodes,
		"inputs", stats.Inputs,
		"outputs", stats.Outputs,
		"unresolved_inputs", stats.UnresolvedInputs)

	return linked, stats, nil
}
