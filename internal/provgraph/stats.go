package provgraph

// Stats counts data-quality findings during derivation. None of them are
// fatal.
type Stats struct {
	Nodes            int // Nodes in the final graph
	SkippedBindings  int // Linkage bindings missing a child or parent id
	MissingLabels    int // Nodes created without a label
	Inputs           int
	Outputs          int
	DuplicateOutputs int // Output bindings that hit an existing value id
	ResolvedInputs   int
	UnresolvedInputs int
}

// Add returns the field-wise sum of s and o. Nodes is taken as the larger
// of the two.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Nodes:            max(s.Nodes, o.Nodes),
		SkippedBindings:  s.SkippedBindings + o.SkippedBindings,
		MissingLabels:    s.MissingLabels + o.MissingLabels,
		Inputs:           s.Inputs + o.Inputs,
		Outputs:          s.Outputs + o.Outputs,
		DuplicateOutputs: s.DuplicateOutputs + o.DuplicateOutputs,
		ResolvedInputs:   s.ResolvedInputs + o.ResolvedInputs,
		UnresolvedInputs: s.UnresolvedInputs + o.UnresolvedInputs,
	}
}
