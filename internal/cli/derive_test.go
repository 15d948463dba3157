package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/engine"
)

var twoStepDocument = filepath.Join("..", "rdfload", "testdata", "two_step.nq")

// runCLI executes the root command with a fixed run id generator.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{RunIDs: engine.NewFixedGenerator("run-1", "run-2", "run-3")})
	code = execute(context.Background(), cmd, args, out, errOut)
	return out.String(), errOut.String(), code
}

func decodeResponse(t *testing.T, stdout string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), "stdout: %s", stdout)
	return resp
}

func TestDerive_WritesArtifact(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph_data.js")

	stdout, _, code := runCLI(t, "derive", twoStepDocument, "-o", output, "--format", "json")
	require.Equal(t, ExitSuccess, code, stdout)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "run-1", data["run_id"])
	assert.Equal(t, output, data["output"])
	assert.Equal(t, float64(2), data["nodes"])
	assert.Equal(t, float64(26), data["statements_read"])
	assert.Equal(t, float64(1), data["resolved_inputs"])
	assert.Equal(t, float64(1), data["unresolved_inputs"])

	artifact, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(artifact), "var graph_data = {"))
	assert.Contains(t, string(artifact), `"parents":["http://example.org/bundle/b"]`)
}

func TestDerive_TextSummary(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph_data.js")

	stdout, _, code := runCLI(t, "derive", twoStepDocument, "--output", output)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Wrote "+output+" (2 nodes)")
	assert.Contains(t, stdout, "statements: 26 read, 26 stored, 0 filtered")
	assert.Contains(t, stdout, "inputs: 2 (1 resolved, 1 unresolved)")
	assert.NotContains(t, stdout, "warnings")
}

func TestDerive_VariableAndIndent(t *testing.T) {
	output := filepath.Join(t.TempDir(), "prov.js")

	_, _, code := runCLI(t, "derive", twoStepDocument, "-o", output, "--variable", "provenance", "--indent")
	require.Equal(t, ExitSuccess, code)

	artifact, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(artifact), "var provenance = {\n  \""))
}

func TestDerive_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "from_config.js")
	cfgPath := filepath.Join(dir, "provgraph.cue")
	cfg := "output: {\n\tpath: \"" + output + "\"\n\tvariable: \"prov\"\n}\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, code := runCLI(t, "derive", twoStepDocument, "-c", cfgPath)
	require.Equal(t, ExitSuccess, code)

	artifact, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(artifact), "var prov = {"))
}

func TestDerive_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "provgraph.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`output: variable: "prov"`+"\n"), 0o644))
	output := filepath.Join(dir, "graph_data.js")

	_, _, code := runCLI(t, "derive", twoStepDocument, "-c", cfgPath, "-o", output, "--variable", "graph")
	require.Equal(t, ExitSuccess, code)

	artifact, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(artifact), "var graph = {"))
}

func TestDerive_GraphFilter(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph_data.js")

	stdout, _, code := runCLI(t, "derive", twoStepDocument, "-o", output, "--graph-filter", "bundle")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "(0 nodes)")
	assert.Contains(t, stdout, "8 filtered")

	artifact, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "var graph_data = {}\n", string(artifact))
}

func TestDerive_Errors(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(badConfig, []byte(`policy: output_conflict: "random"`+"\n"), 0o644))
	malformed := filepath.Join(dir, "bad.nq")
	require.NoError(t, os.WriteFile(malformed, []byte("<http://a> <http://b> \"unterminated .\n"), 0o644))

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{
			name:     "missing document",
			args:     []string{"derive", filepath.Join(dir, "missing.nq"), "-o", filepath.Join(dir, "a.js")},
			wantExit: ExitCommandError,
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "invalid config",
			args:     []string{"derive", twoStepDocument, "-c", badConfig},
			wantExit: ExitCommandError,
			wantCode: ErrCodeConfig,
		},
		{
			name:     "invalid variable",
			args:     []string{"derive", twoStepDocument, "-o", filepath.Join(dir, "b.js"), "--variable", "not a name"},
			wantExit: ExitCommandError,
			wantCode: ErrCodeConfig,
		},
		{
			name:     "unknown input format",
			args:     []string{"derive", twoStepDocument, "-o", filepath.Join(dir, "c.js"), "--input-format", "trig"},
			wantExit: ExitCommandError,
			wantCode: ErrCodeConfig,
		},
		{
			name:     "malformed document",
			args:     []string{"derive", malformed, "-o", filepath.Join(dir, "d.js")},
			wantExit: ExitCommandError,
			wantCode: ErrCodeInput,
		},
		{
			name:     "unwritable output",
			args:     []string{"derive", twoStepDocument, "-o", filepath.Join(dir, "missing", "e.js")},
			wantExit: ExitFailure,
			wantCode: ErrCodeExport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, code := runCLI(t, append(tt.args, "--format", "json")...)
			assert.Equal(t, tt.wantExit, code)

			resp := decodeResponse(t, stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestDerive_NoArtifactOnFailure(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.nq")
	require.NoError(t, os.WriteFile(malformed, []byte("not rdf at all\n"), 0o644))
	output := filepath.Join(dir, "graph_data.js")

	_, _, code := runCLI(t, "derive", malformed, "-o", output)
	assert.Equal(t, ExitCommandError, code)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestDerive_VerboseLogsToStderr(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph_data.js")

	stdout, stderr, code := runCLI(t, "derive", twoStepDocument, "-o", output, "-v", "--format", "json")
	require.Equal(t, ExitSuccess, code)
	decodeResponse(t, stdout)
	assert.Contains(t, stderr, "Deriving graph from")
	assert.Contains(t, stderr, "run_id=run-1")

	var sawBuilt bool
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, `msg="graph built"`) {
			sawBuilt = true
			assert.Contains(t, line, "run_id=run-1")
		}
	}
	assert.True(t, sawBuilt, "debug lines from the derivation phases reach --verbose output")
}

func TestDerive_QuietHidesDebug(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph_data.js")

	_, stderr, code := runCLI(t, "derive", twoStepDocument, "-o", output)
	require.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stderr, `msg="graph built"`)
	assert.Contains(t, stderr, `msg="graph derived"`)
}
