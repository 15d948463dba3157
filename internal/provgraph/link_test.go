package provgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/testutil"
	"github.com/roach88/provgraph/internal/vocab"
)

func resolvedGraph(t *testing.T, exec *testutil.FakeExecutor, linkage ...ir.Binding) *Graph {
	t.Helper()
	built, _ := Build(linkage)
	resolved, _, err := Resolve(context.Background(), exec, defaultShapes(), built, DefaultPolicy())
	require.NoError(t, err)
	return resolved
}

func TestLink_ResolvesFromParentOutput(t *testing.T) {
	g := resolvedGraph(t, testutil.TwoStepExecutor(), testutil.Linkage("a", "A", "b", "B"))

	linked, stats := Link(g, DefaultPolicy())

	a, _ := linked.Node("a")
	require.Len(t, a.Inputs, 2)
	require.NotNil(t, a.Inputs[0].NodeID)
	assert.Equal(t, "b", *a.Inputs[0].NodeID)
	assert.Nil(t, a.Inputs[1].NodeID)

	assert.Equal(t, 1, stats.ResolvedInputs)
	assert.Equal(t, 1, stats.UnresolvedInputs)
}

func TestLink_DoesNotMutateInput(t *testing.T) {
	g := resolvedGraph(t, testutil.TwoStepExecutor(), testutil.Linkage("a", "A", "b", "B"))

	_, _ = Link(g, DefaultPolicy())

	a, _ := g.Node("a")
	for _, in := range a.Inputs {
		assert.Nil(t, in.NodeID)
	}
}

func TestLink_OnlyDeclaredParents(t *testing.T) {
	// c produces val1 but is not a parent of a.
	exec := testutil.NewFakeExecutor().
		SetScoped(vocab.ShapeInputs, "a", testutil.InputBinding("port_x", "5", "val1")).
		SetScoped(vocab.ShapeOutputs, "c", testutil.OutputBinding("port_y", "5", "val1"))

	g := resolvedGraph(t, exec,
		testutil.Linkage("a", "A", "b", "B"),
		testutil.Linkage("b", "B", "c", "C"))

	linked, _ := Link(g, DefaultPolicy())

	a, _ := linked.Node("a")
	assert.Nil(t, a.Inputs[0].NodeID)
}

func TestLink_ParentTieBreak(t *testing.T) {
	exec := testutil.NewFakeExecutor().
		SetScoped(vocab.ShapeInputs, "a", testutil.InputBinding("port_x", "5", "val1")).
		SetScoped(vocab.ShapeOutputs, "b", testutil.OutputBinding("port_y", "5", "val1")).
		SetScoped(vocab.ShapeOutputs, "c", testutil.OutputBinding("port_w", "5", "val1"))

	g := resolvedGraph(t, exec,
		testutil.Linkage("a", "A", "b", "B"),
		testutil.Linkage("a", "A", "c", "C"))

	tests := []struct {
		name   string
		policy ParentTieBreak
		want   string
	}{
		{"last parent wins", LastParentWins, "c"},
		{"first parent wins", FirstParentWins, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linked, _ := Link(g, Policy{ParentTieBreak: tt.policy})
			a, _ := linked.Node("a")
			require.NotNil(t, a.Inputs[0].NodeID)
			assert.Equal(t, tt.want, *a.Inputs[0].NodeID)
		})
	}
}

func TestLink_ResolutionSoundness(t *testing.T) {
	exec := testutil.NewFakeExecutor().
		SetScoped(vocab.ShapeInputs, "a",
			testutil.InputBinding("x", "1", "v1"),
			testutil.InputBinding("y", "2", "v2"),
			testutil.InputBinding("z", "3", "v3")).
		SetScoped(vocab.ShapeInputs, "b", testutil.InputBinding("w", "4", "v4")).
		SetScoped(vocab.ShapeOutputs, "b", testutil.OutputBinding("o1", "1", "v1")).
		SetScoped(vocab.ShapeOutputs, "c",
			testutil.OutputBinding("o2", "2", "v2"),
			testutil.OutputBinding("o4", "4", "v4"))

	g := resolvedGraph(t, exec,
		testutil.Linkage("a", "A", "b", "B"),
		testutil.Linkage("a", "A", "c", "C"),
		testutil.Linkage("b", "B", "c", "C"))

	linked, _ := Link(g, DefaultPolicy())

	for _, n := range linked.Nodes() {
		for _, in := range n.Inputs {
			if in.NodeID == nil {
				continue
			}
			assert.Contains(t, n.Parents, *in.NodeID)
			producer, ok := linked.Node(*in.NodeID)
			require.True(t, ok)
			assert.Contains(t, producer.Outputs, in.InputID)
		}
	}

	// Completeness: every input a parent produced is linked.
	a, _ := linked.Node("a")
	assert.Equal(t, "b", *a.Inputs[0].NodeID)
	assert.Equal(t, "c", *a.Inputs[1].NodeID)
	assert.Nil(t, a.Inputs[2].NodeID)
	b, _ := linked.Node("b")
	assert.Equal(t, "c", *b.Inputs[0].NodeID)
}

func TestLink_Rerun(t *testing.T) {
	g := resolvedGraph(t, testutil.TwoStepExecutor(), testutil.Linkage("a", "A", "b", "B"))

	once, _ := Link(g, DefaultPolicy())
	twice, _ := Link(once, DefaultPolicy())

	assert.Equal(t, once.Nodes(), twice.Nodes())
}
