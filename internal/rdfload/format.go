package rdfload

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"
)

// Format names a supported input serialization.
type Format string

const (
	FormatNQuads   Format = "nquads"
	FormatNTriples Format = "ntriples"
	FormatTurtle   Format = "turtle"
)

// ValidFormats lists the accepted format names.
var ValidFormats = []Format{FormatNQuads, FormatNTriples, FormatTurtle}

// ParseFormat converts a user-supplied name to a Format.
// Common file extensions are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "nquads", "nq", "n-quads":
		return FormatNQuads, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	default:
		return "", fmt.Errorf("unsupported input format %q: must be one of %v", name, ValidFormats)
	}
}

// FormatForPath guesses the format from a file extension.
// Returns ok=false when the extension is not recognized.
func FormatForPath(path string) (Format, bool) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return "", false
	}
	f, err := ParseFormat(path[idx+1:])
	if err != nil {
		return "", false
	}
	return f, true
}

// isQuadFormat reports whether the format carries graph names.
func (f Format) isQuadFormat() bool {
	return f == FormatNQuads
}

// rdfFormat maps to the decoder library's format constant.
func (f Format) rdfFormat() rdf.Format {
	switch f {
	case FormatNTriples:
		return rdf.NTriples
	case FormatTurtle:
		return rdf.Turtle
	default:
		return rdf.NQuads
	}
}
