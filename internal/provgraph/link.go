package provgraph

// Link points each input at the parent that produced it.
//
// For every node N, every parent P of N in order, and every input of N
// whose InputID is an output key of P, the input's NodeID is set to P.
// When several parents qualify, policy.ParentTieBreak picks the winner.
// Inputs no parent produced keep a nil NodeID. No queries are run.
func Link(g *Graph, policy Policy, opts ...Option) (*Graph, Stats) {
	logger := newOptions(opts).logger
	policy = policy.WithDefaults()
	out := g.Clone()
	var stats Stats

	for _, id := range out.order {
		node := out.mutable(id)
		linked := make([]bool, len(node.Inputs))

		for _, parentID := range node.Parents {
			parent := out.mutable(parentID)
			if parent == nil {
				continue
			}
			for i := range node.Inputs {
				in := &node.Inputs[i]
				if _, ok := parent.Outputs[in.InputID]; !ok {
					continue
				}
				if linked[i] && policy.ParentTieBreak == FirstParentWins {
					continue
				}
				pid := parentID
				in.NodeID = &pid
				linked[i] = true
			}
		}

		for i, in := range node.Inputs {
			if linked[i] {
				stats.ResolvedInputs++
				continue
			}
			in.NodeID = nil
			node.Inputs[i] = in
			stats.UnresolvedInputs++
		}
	}

	stats.Nodes = out.Len()
	if stats.UnresolvedInputs > 0 {
		logger.Warn("inputs without a producing parent",
			"unresolved", stats.UnresolvedInputs,
			"resolved", stats.ResolvedInputs)
	}

	return out, stats
}
