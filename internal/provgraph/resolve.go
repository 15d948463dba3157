package provgraph

import (
	"context"
	"fmt"

	"github.com/roach88/provgraph/internal/executor"
	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/vocab"
)

// Resolve attaches inputs and outputs to every node of g.
//
// For each node, in discovery order, the Inputs and Outputs shapes are run
// scoped to the node's identifier. Inputs are appended unresolved and
// duplicates are kept. Outputs are keyed by value id; repeated ids follow
// policy.OutputConflict.
//
// Only nodes already in g are queried. A query failure aborts resolution.
func Resolve(ctx context.Context, exec executor.QueryExecutor, shapes vocab.Shapes, g *Graph, policy Policy, opts ...Option) (*Graph, Stats, error) {
	logger := newOptions(opts).logger
	policy = policy.WithDefaults()
	out := g.Clone()
	var stats Stats

	for _, id := range out.order {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		node := out.mutable(id)

		inputs, err := exec.ExecuteScoped(ctx, shapes.Inputs, id)
		if err != nil {
			return nil, stats, fmt.Errorf("resolve inputs for %s: %w", id, err)
		}
		for _, b := range inputs {
			node.Inputs = append(node.Inputs, inputFromBinding(b))
			stats.Inputs++
		}

		outputs, err := exec.ExecuteScoped(ctx, shapes.Outputs, id)
		if err != nil {
			return nil, stats, fmt.Errorf("resolve outputs for %s: %w", id, err)
		}
		for _, b := range outputs {
			key := b.Get(vocab.VarOutID)
			if _, exists := node.Outputs[key]; exists {
				stats.DuplicateOutputs++
				if policy.OutputConflict == FirstWriteWins {
					continue
				}
			} else {
				stats.Outputs++
			}
			node.Outputs[key] = Output{
				Name:  b.Get(vocab.VarOutPort),
				Value: b.Get(vocab.VarOutValue),
			}
		}

		logger.Debug("node resolved",
			"node", id,
			"inputs", len(inputs),
			"outputs", len(node.Outputs))
	}

	stats.Nodes = out.Len()
	return out, stats, nil
}

func inputFromBinding(b ir.Binding) Input {
	return Input{
		InputID: b.Get(vocab.VarInID),
		Name:    b.Get(vocab.VarInPort),
		Value:   b.Get(vocab.VarInValue),
	}
}
