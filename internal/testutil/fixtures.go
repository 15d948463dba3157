package testutil

import (
	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/vocab"
)

// Linkage returns a linkage binding: child a started by parent b.
func Linkage(aID, aLabel, bID, bLabel string) ir.Binding {
	return ir.Binding{
		vocab.VarChildID:     aID,
		vocab.VarChildLabel:  aLabel,
		vocab.VarParentID:    bID,
		vocab.VarParentLabel: bLabel,
	}
}

// InputBinding returns an inputs-shape binding.
func InputBinding(port, value, id string) ir.Binding {
	return ir.Binding{
		vocab.VarInPort:  port,
		vocab.VarInValue: value,
		vocab.VarInID:    id,
	}
}

// OutputBinding returns an outputs-shape binding.
func OutputBinding(port, value, id string) ir.Binding {
	return ir.Binding{
		vocab.VarOutPort:  port,
		vocab.VarOutValue: value,
		vocab.VarOutID:    id,
	}
}

// TwoStepExecutor returns the canonical two-activity scenario: a is started
// by b, a consumes val1 and val2, and b produces val1.
func TwoStepExecutor() *FakeExecutor {
	return NewFakeExecutor().
		SetGlobal(vocab.ShapeLinkage, Linkage("a", "A", "b", "B")).
		SetScoped(vocab.ShapeInputs, "a",
			InputBinding("port_x", "5", "val1"),
			InputBinding("port_z", "7", "val2")).
		SetScoped(vocab.ShapeOutputs, "b",
			OutputBinding("port_y", "5", "val1"))
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
