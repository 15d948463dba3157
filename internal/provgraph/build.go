package provgraph

import (
	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/vocab"
)

// Build creates the graph skeleton from linkage bindings.
//
// Each binding names a child activity (a_id, alabel) that was started by a
// parent activity (b_id, blabel). Both nodes are created on first sight
// with the label from that binding; later bindings never relabel them.
// The parent is appended to the child's parents unless already present.
//
// Bindings without a_id or b_id are skipped and counted.
func Build(bindings []ir.Binding, opts ...Option) (*Graph, Stats) {
	logger := newOptions(opts).logger
	g := NewGraph()
	var stats Stats

	for i, b := range bindings {
		childID, okChild := b.Lookup(vocab.VarChildID)
		parentID, okParent := b.Lookup(vocab.VarParentID)
		if !okChild || !okParent || childID == "" || parentID == "" {
			stats.SkippedBindings++
			logger.Warn("skipping linkage binding without identifiers",
				"index", i,
				"a_id", childID,
				"b_id", parentID)
			continue
		}

		child, created := g.getOrCreate(childID, b.Get(vocab.VarChildLabel))
		if created && child.Label == "" {
			stats.MissingLabels++
		}

		parent, created := g.getOrCreate(parentID, b.Get(vocab.VarParentLabel))
		if created && parent.Label == "" {
			stats.MissingLabels++
		}

		if !child.HasParent(parent.ID) {
			child.Parents = append(child.Parents, parent.ID)
		}
	}

	stats.Nodes = g.Len()
	logger.Debug("graph built",
		"bindings", len(bindings),
		"nodes", stats.Nodes,
		"skipped", stats.SkippedBindings)

	return g, stats
}
