package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/engine"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(LoadSummary{Database: "prov.db", Read: 3, Stored: 2})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]interface{}{
		"run_id":   "",
		"database": "prov.db",
		"read":     float64(3),
		"stored":   float64(2),
		"filtered": float64(0),
	}, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	require.NoError(t, formatter.Error(ErrCodeQuery, "query failed", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "query failed", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccessUsesStringer(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success(LoadSummary{Database: "prov.db", Read: 3, Stored: 2, Filtered: 1}))
	assert.Equal(t, "Loaded into prov.db: 3 read, 2 stored, 1 filtered\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	require.NoError(t, formatter.Error(ErrCodeConfig, "invalid configuration", "details hidden"))
	assert.Contains(t, buf.String(), "Error [E002]: invalid configuration")
	assert.NotContains(t, buf.String(), "Details:")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error(ErrCodeConfig, "invalid configuration", "output.variable"))
	assert.Contains(t, buf.String(), "Details: output.variable")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Deriving graph from %s", "prov.nq")

			assert.Empty(t, out.String(), "verbose logs never go to the JSON writer")
			if tt.wantLog {
				assert.Contains(t, errOut.String(), "Deriving graph from prov.nq")
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}
	cause := errors.New("disk full")

	err := formatter.Fail(ExitFailure, ErrCodeExport, "derivation failed", cause)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, cause)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeExport, resp.Error.Code)
	assert.Equal(t, "disk full", resp.Error.Details)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "bad"))))
}

func TestPhaseExit(t *testing.T) {
	tests := []struct {
		phase    engine.Phase
		wantExit int
		wantCode string
	}{
		{engine.PhaseConfig, ExitCommandError, ErrCodeConfig},
		{engine.PhaseLoad, ExitCommandError, ErrCodeInput},
		{engine.PhaseQuery, ExitFailure, ErrCodeQuery},
		{engine.PhaseExport, ExitFailure, ErrCodeExport},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			exit, code := phaseExit(&engine.PhaseError{Phase: tt.phase, Err: errors.New("x")})
			assert.Equal(t, tt.wantExit, exit)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	exit, code := phaseExit(errors.New("other"))
	assert.Equal(t, ExitFailure, exit)
	assert.Equal(t, ErrCodeGeneric, code)
}

func TestNewLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	newLogger(buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(buf, true).Debug("shown", "run_id", "r1")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "run_id=r1")
}
