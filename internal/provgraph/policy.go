package provgraph

import "fmt"

// OutputConflict decides which output wins when a node reports the same
// value id more than once.
type OutputConflict string

const (
	LastWriteWins  OutputConflict = "last_write_wins"
	FirstWriteWins OutputConflict = "first_write_wins"
)

// ParentTieBreak decides which parent an input links to when several
// parents produced the same value id.
type ParentTieBreak string

const (
	LastParentWins  ParentTieBreak = "last_parent_wins"
	FirstParentWins ParentTieBreak = "first_parent_wins"
)

// Policy holds the ordering rules applied during derivation.
type Policy struct {
	OutputConflict OutputConflict
	ParentTieBreak ParentTieBreak
}

// DefaultPolicy returns last-write-wins outputs and last-parent-wins links.
func DefaultPolicy() Policy {
	return Policy{
		OutputConflict: LastWriteWins,
		ParentTieBreak: LastParentWins,
	}
}

// WithDefaults fills empty fields from DefaultPolicy.
func (p Policy) WithDefaults() Policy {
	d := DefaultPolicy()
	if p.OutputConflict == "" {
		p.OutputConflict = d.OutputConflict
	}
	if p.ParentTieBreak == "" {
		p.ParentTieBreak = d.ParentTieBreak
	}
	return p
}

// Validate checks that every field names a known rule.
func (p Policy) Validate() error {
	switch p.OutputConflict {
	case LastWriteWins, FirstWriteWins:
	default:
		return fmt.Errorf("unknown output conflict policy %q", p.OutputConflict)
	}
	switch p.ParentTieBreak {
	case LastParentWins, FirstParentWins:
	default:
		return fmt.Errorf("unknown parent tie-break policy %q", p.ParentTieBreak)
	}
	return nil
}
