// Package config loads run configuration from CUE files.
//
// A config file is unified with an embedded schema that supplies defaults
// and rejects unknown fields, so an empty file yields the default
// configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/provgraph/internal/provgraph"
	"github.com/roach88/provgraph/internal/vocab"
)

//go:embed schema.cue
var schemaSource string

// Config is the complete run configuration.
type Config struct {
	Input      Input      `json:"input"`
	Output     Output     `json:"output"`
	Vocabulary Vocabulary `json:"vocabulary"`
	Policy     Policy     `json:"policy"`
	Store      Store      `json:"store"`
}

type Input struct {
	Format      string `json:"format"`
	GraphFilter string `json:"graph_filter"`
}

type Output struct {
	Path     string `json:"path"`
	Variable string `json:"variable"`
	Indent   bool   `json:"indent"`
}

type Vocabulary struct {
	Prov   string `json:"prov"`
	RDFS   string `json:"rdfs"`
	RDF    string `json:"rdf"`
	Nipype string `json:"nipype"`
}

type Policy struct {
	OutputConflict string `json:"output_conflict"`
	ParentTieBreak string `json:"parent_tie_break"`
}

type Store struct {
	Path string `json:"path"`
}

// Namespaces returns the vocabulary as query namespaces.
func (c Config) Namespaces() vocab.Namespaces {
	return vocab.Namespaces{
		Prov:   c.Vocabulary.Prov,
		RDFS:   c.Vocabulary.RDFS,
		RDF:    c.Vocabulary.RDF,
		Nipype: c.Vocabulary.Nipype,
	}
}

// DerivePolicy returns the derivation policy.
func (c Config) DerivePolicy() provgraph.Policy {
	return provgraph.Policy{
		OutputConflict: provgraph.OutputConflict(c.Policy.OutputConflict),
		ParentTieBreak: provgraph.ParentTieBreak(c.Policy.ParentTieBreak),
	}
}

// Default returns the configuration defined by the schema defaults.
func Default() (Config, error) {
	return LoadBytes(nil, "default.cue")
}

// Load reads and validates the CUE config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(data, path)
}

// LoadBytes validates CUE source data against the schema. filename is
// used in error positions.
func LoadBytes(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(data, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %s", filename, details(err))
	}

	value := def.Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %s", filename, details(err))
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %s", filename, details(err))
	}

	if err := cfg.Namespaces().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

func details(err error) string {
	return cueerrors.Details(err, nil)
}
