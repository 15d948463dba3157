package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/ir"
)

func TestQuery_Linkage(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "query", "linkage", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, code)

	resp := decodeResponse(t, stdout)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "linkage", data["shape"])
	assert.Equal(t, []interface{}{"alabel", "a_id", "blabel", "b_id"}, data["vars"])

	bindings, ok := data["bindings"].([]interface{})
	require.True(t, ok)
	require.Len(t, bindings, 1)
	assert.Equal(t, map[string]interface{}{
		"a_id":   "http://example.org/bundle/a",
		"alabel": "A",
		"b_id":   "http://example.org/bundle/b",
		"blabel": "B",
	}, bindings[0])
}

func TestQuery_ScopedInputs(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "query", "inputs", "--db", db, "--scope", "http://example.org/bundle/a")
	require.Equal(t, ExitSuccess, code)

	want := QueryResult{
		Vars: []string{"in_port", "val", "in"},
		Bindings: []ir.Binding{
			{"in_port": "port_x", "val": "5", "in": "http://example.org/val1"},
			{"in_port": "port_z", "val": "7", "in": "http://example.org/val2"},
		},
	}.String()
	assert.Equal(t, want+"\n", stdout)
	assert.Contains(t, stdout, "(2 bindings)")
}

func TestQuery_ScopeIsolation(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "query", "outputs", "--db", db, "--scope", "http://example.org/bundle/a")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "(0 bindings)")
}

func TestQuery_ScopeValidation(t *testing.T) {
	db := seedStore(t)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"scoped shape without scope", []string{"query", "inputs", "--db", db}, "requires --scope"},
		{"global shape with scope", []string{"query", "linkage", "--db", db, "--scope", "x"}, "does not take --scope"},
		{"unknown shape", []string{"query", "everything", "--db", db}, "unknown query shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, code := runCLI(t, append(tt.args, "--format", "json")...)
			assert.Equal(t, ExitCommandError, code)

			resp := decodeResponse(t, stdout)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeConfig, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMsg)
		})
	}
}
