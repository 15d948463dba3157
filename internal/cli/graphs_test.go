package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/store"
)

func TestGraphs_ListsInFirstAppearanceOrder(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "graphs", "--db", db, "--format", "json")
	require.Equal(t, ExitSuccess, code)

	resp := decodeResponse(t, stdout)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(26), data["statements"])

	graphs, ok := data["graphs"].([]interface{})
	require.True(t, ok)
	require.Len(t, graphs, 3)
	assert.Equal(t, map[string]interface{}{"name": "http://example.org/run", "statements": float64(8)}, graphs[0])
	assert.Equal(t, map[string]interface{}{"name": "http://example.org/bundle/a", "statements": float64(11)}, graphs[1])
	assert.Equal(t, map[string]interface{}{"name": "http://example.org/bundle/b", "statements": float64(7)}, graphs[2])

	loads, ok := data["loads"].([]interface{})
	require.True(t, ok)
	assert.Len(t, loads, 1)
}

func TestGraphsResult_String(t *testing.T) {
	assert.Equal(t, "No statements loaded.", GraphsResult{}.String())

	r := GraphsResult{
		Graphs: []store.GraphInfo{
			{Name: "", Statements: 2},
			{Name: "http://example.org/run", Statements: 8},
		},
		Statements: 10,
		Loads:      []store.LoadRecord{{ID: "run-1"}},
	}
	want := "10 statements in 2 graphs\n" +
		"         2  (default graph)\n" +
		"         8  http://example.org/run\n" +
		"1 loads"
	assert.Equal(t, want, r.String())
}

func TestGraphs_MissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing.db")

	stdout, _, code := runCLI(t, "graphs", "--db", db, "--format", "json")
	assert.Equal(t, ExitCommandError, code)

	resp := decodeResponse(t, stdout)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeStore, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "database not found")
}

func TestGraphs_ShowStatements(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "graphs", "--db", db, "--show", "http://example.org/run")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "<http://example.org/act/a> <http://www.w3.org/2000/01/rdf-schema#label> \"A\" .\n")
	assert.Contains(t, stdout, "_:start_a <http://www.w3.org/ns/prov#starter> <http://example.org/act/b> .\n")
	assert.Contains(t, stdout, "(8 statements)")
}

func TestGraphs_ShowUnknownGraph(t *testing.T) {
	db := seedStore(t)

	stdout, _, code := runCLI(t, "graphs", "--db", db, "--show", "http://example.org/none", "--format", "json")
	require.Equal(t, ExitSuccess, code)

	resp := decodeResponse(t, stdout)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http://example.org/none", data["graph"])
	assert.Equal(t, []interface{}{}, data["statements"])
}

func TestFormatTerm(t *testing.T) {
	assert.Equal(t, "<urn:x>", formatTerm(ir.NewIRI("urn:x")))
	assert.Equal(t, "_:b0", formatTerm(ir.NewBlank("_:b0")))
	assert.Equal(t, `"A"`, formatTerm(ir.NewLiteral("A")))
	assert.Equal(t, `"B"@en`, formatTerm(ir.NewLangLiteral("B", "en")))
	assert.Equal(t, `"3"^^<http://www.w3.org/2001/XMLSchema#integer>`, formatTerm(ir.NewTypedLiteral("3", "http://www.w3.org/2001/XMLSchema#integer")))
}
