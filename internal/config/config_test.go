package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/provgraph/internal/provgraph"
	"github.com/roach88/provgraph/internal/vocab"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Input:  Input{Format: "nquads", GraphFilter: ""},
		Output: Output{Path: "graph_data.js", Variable: "graph_data", Indent: false},
		Vocabulary: Vocabulary{
			Prov:   vocab.DefaultProv,
			RDFS:   vocab.DefaultRDFS,
			RDF:    vocab.DefaultRDF,
			Nipype: vocab.DefaultNipype,
		},
		Policy: Policy{OutputConflict: "last_write_wins", ParentTieBreak: "last_parent_wins"},
		Store:  Store{Path: ""},
	}, cfg)

	assert.Equal(t, provgraph.DefaultPolicy(), cfg.DerivePolicy())
	assert.Equal(t, vocab.Default(), cfg.Namespaces())
}

func TestLoad_Full(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "full.cue"))
	require.NoError(t, err)

	assert.Equal(t, "turtle", cfg.Input.Format)
	assert.Equal(t, "nidash", cfg.Input.GraphFilter)
	assert.Equal(t, "out/provenance.js", cfg.Output.Path)
	assert.Equal(t, "provenance", cfg.Output.Variable)
	assert.True(t, cfg.Output.Indent)
	assert.Equal(t, "http://example.org/nipype#", cfg.Vocabulary.Nipype)
	assert.Equal(t, vocab.DefaultProv, cfg.Vocabulary.Prov)
	assert.Equal(t, "prov.db", cfg.Store.Path)
	assert.Equal(t, provgraph.Policy{
		OutputConflict: provgraph.FirstWriteWins,
		ParentTieBreak: provgraph.FirstParentWins,
	}, cfg.DerivePolicy())
}

func TestLoad_PartialFillsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.cue"))
	require.NoError(t, err)

	assert.Equal(t, "graph", cfg.Output.Variable)
	assert.Equal(t, "graph_data.js", cfg.Output.Path)
	assert.Equal(t, "nquads", cfg.Input.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown format", `input: format: "trig"`},
		{"bad variable", `output: variable: "graph-data"`},
		{"unknown policy", `policy: output_conflict: "random"`},
		{"unknown field", `extra: true`},
		{"wrong type", `output: indent: "yes"`},
		{"syntax error", `output: {`},
		{"namespace without scheme", `vocabulary: prov: "prov"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.src), "test.cue")
			assert.Error(t, err)
		})
	}
}
