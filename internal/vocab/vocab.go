// Package vocab defines the provenance vocabulary provgraph understands and
// the three query shapes derived from it.
package vocab

import (
	"fmt"
	"strings"

	"github.com/roach88/provgraph/internal/queryir"
)

// Default namespace IRIs.
const (
	DefaultProv   = "http://www.w3.org/ns/prov#"
	DefaultRDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	DefaultRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DefaultNipype = "http://nipy.org/nipype/terms/"
)

// Namespaces holds the namespace IRIs the query shapes are built from.
type Namespaces struct {
	Prov   string `json:"prov"`
	RDFS   string `json:"rdfs"`
	RDF    string `json:"rdf"`
	Nipype string `json:"nipype"`
}

// Default returns the standard namespaces.
func Default() Namespaces {
	return Namespaces{
		Prov:   DefaultProv,
		RDFS:   DefaultRDFS,
		RDF:    DefaultRDF,
		Nipype: DefaultNipype,
	}
}

// WithDefaults fills empty namespaces from Default.
func (n Namespaces) WithDefaults() Namespaces {
	d := Default()
	if n.Prov == "" {
		n.Prov = d.Prov
	}
	if n.RDFS == "" {
		n.RDFS = d.RDFS
	}
	if n.RDF == "" {
		n.RDF = d.RDF
	}
	if n.Nipype == "" {
		n.Nipype = d.Nipype
	}
	return n
}

// Validate checks that every namespace is an absolute IRI prefix.
func (n Namespaces) Validate() error {
	for name, ns := range map[string]string{
		"prov":   n.Prov,
		"rdfs":   n.RDFS,
		"rdf":    n.RDF,
		"nipype": n.Nipype,
	} {
		if !strings.Contains(ns, ":") {
			return fmt.Errorf("namespace %s: %q is not an absolute IRI", name, ns)
		}
	}
	return nil
}

func (n Namespaces) prov(local string) queryir.IRI   { return queryir.IRI(n.Prov + local) }
func (n Namespaces) rdfs(local string) queryir.IRI   { return queryir.IRI(n.RDFS + local) }
func (n Namespaces) rdf(local string) queryir.IRI    { return queryir.IRI(n.RDF + local) }
func (n Namespaces) nipype(local string) queryir.IRI { return queryir.IRI(n.Nipype + local) }
