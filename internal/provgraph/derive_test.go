package provgraph

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/testutil"
	"github.com/roach88/provgraph/internal/vocab"
)

func TestDerive_TwoStepScenario(t *testing.T) {
	g, stats, err := Derive(context.Background(), testutil.TwoStepExecutor(), defaultShapes(), DefaultPolicy())
	require.NoError(t, err)

	want := []Node{
		{
			ID:      "a",
			Label:   "A",
			Parents: []string{"b"},
			Inputs: []Input{
				{NodeID: testutil.StrPtr("b"), InputID: "val1", Name: "port_x", Value: "5"},
				{NodeID: nil, InputID: "val2", Name: "port_z", Value: "7"},
			},
			Outputs: map[string]Output{},
		},
		{
			ID:      "b",
			Label:   "B",
			Parents: []string{},
			Inputs:  []Input{},
			Outputs: map[string]Output{"val1": {Name: "port_y", Value: "5"}},
		},
	}

	if diff := cmp.Diff(want, g.Nodes()); diff != "" {
		t.Errorf("derived graph mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, Stats{
		Nodes:            2,
		Inputs:           2,
		Outputs:          1,
		ResolvedInputs:   1,
		UnresolvedInputs: 1,
	}, stats)
}

func TestDerive_Deterministic(t *testing.T) {
	first, _, err := Derive(context.Background(), testutil.TwoStepExecutor(), defaultShapes(), DefaultPolicy())
	require.NoError(t, err)
	second, _, err := Derive(context.Background(), testutil.TwoStepExecutor(), defaultShapes(), DefaultPolicy())
	require.NoError(t, err)

	if diff := cmp.Diff(first.Nodes(), second.Nodes()); diff != "" {
		t.Errorf("re-derivation differs (-first +second):\n%s", diff)
	}
}

func TestDerive_EmptyLinkage(t *testing.T) {
	g, stats, err := Derive(context.Background(), testutil.NewFakeExecutor(), defaultShapes(), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, Stats{}, stats)
}

func TestDerive_LinkageFailure(t *testing.T) {
	boom := errors.New("boom")
	exec := testutil.NewFakeExecutor().FailOn(vocab.ShapeLinkage, "", boom)

	_, _, err := Derive(context.Background(), exec, defaultShapes(), DefaultPolicy())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "query linkage")
}

func TestDerive_InvalidPolicy(t *testing.T) {
	_, _, err := Derive(context.Background(), testutil.TwoStepExecutor(), defaultShapes(),
		Policy{OutputConflict: "random"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output conflict")
}

func TestDerive_LogsThroughInjectedLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})).With("run_id", "run-1")

	_, _, err := Derive(context.Background(), testutil.TwoStepExecutor(), defaultShapes(), DefaultPolicy(), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="graph built"`)
	assert.Contains(t, out, `msg="node resolved"`)
	assert.Contains(t, out, `msg="inputs without a producing parent"`)
	assert.Contains(t, out, `msg="graph derived"`)

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.Contains(t, line, "run_id=run-1", "line: %s", line)
	}
}

func TestWithLogger_NilKeepsDefault(t *testing.T) {
	o := newOptions([]Option{WithLogger(nil)})
	assert.Same(t, slog.Default(), o.logger)
}
