// Package export writes a derived graph as a JavaScript artifact.
//
// The artifact is a single assignment, "var <variable> = <json>", that a
// browser page can load with a script tag. The JSON object maps node
// identifiers to their label, parents and info collections.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/roach88/provgraph/internal/provgraph"
)

const (
	// DefaultVariable is the JavaScript variable the graph is assigned to.
	DefaultVariable = "graph_data"

	// DefaultPath is the artifact file name.
	DefaultPath = "graph_data.js"
)

var variablePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Options controls rendering.
type Options struct {
	Variable string // JavaScript identifier, DefaultVariable when empty
	Indent   bool   // pretty-print the JSON
}

type artifactNode struct {
	Label           string          `json:"label"`
	Parents         []string        `json:"parents"`
	InfoCollections infoCollections `json:"info_collections"`
}

type infoCollections struct {
	Inputs  []artifactInput           `json:"inputs"`
	Outputs map[string]artifactOutput `json:"outputs"`
}

type artifactInput struct {
	NodeID  *string `json:"node_id"`
	InputID string  `json:"input_id"`
	Name    string  `json:"name"`
	Value   string  `json:"value"`
}

type artifactOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ValidateVariable checks that name is a plain JavaScript identifier.
func ValidateVariable(name string) error {
	if !variablePattern.MatchString(name) {
		return fmt.Errorf("invalid variable name %q: must match %s", name, variablePattern.String())
	}
	return nil
}

// Render returns the artifact bytes for g.
//
// Object keys are emitted in sorted order, so equal graphs render to
// identical bytes. Parents and inputs are always arrays and outputs is
// always an object, even when empty. Unresolved inputs carry a null
// node_id.
func Render(g *provgraph.Graph, opts Options) ([]byte, error) {
	variable := opts.Variable
	if variable == "" {
		variable = DefaultVariable
	}
	if err := ValidateVariable(variable); err != nil {
		return nil, err
	}

	doc := make(map[string]artifactNode, g.Len())
	for _, n := range g.Nodes() {
		doc[n.ID] = toArtifact(n)
	}

	var (
		body []byte
		err  error
	)
	if opts.Indent {
		body, err = json.MarshalIndent(doc, "", "  ")
	} else {
		body, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(variable) + 8)
	buf.WriteString("var ")
	buf.WriteString(variable)
	buf.WriteString(" = ")
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func toArtifact(n provgraph.Node) artifactNode {
	out := artifactNode{
		Label:   n.Label,
		Parents: append([]string{}, n.Parents...),
		InfoCollections: infoCollections{
			Inputs:  make([]artifactInput, 0, len(n.Inputs)),
			Outputs: make(map[string]artifactOutput, len(n.Outputs)),
		},
	}
	for _, in := range n.Inputs {
		out.InfoCollections.Inputs = append(out.InfoCollections.Inputs, artifactInput{
			NodeID:  in.NodeID,
			InputID: in.InputID,
			Name:    in.Name,
			Value:   in.Value,
		})
	}
	for id, o := range n.Outputs {
		out.InfoCollections.Outputs[id] = artifactOutput{Name: o.Name, Value: o.Value}
	}
	return out
}

// Write renders g and writes it to path.
//
// The artifact is written to a temporary file in the same directory and
// renamed into place, so path either keeps its old content or holds the
// complete new artifact.
func Write(path string, g *provgraph.Graph, opts Options) error {
	if path == "" {
		path = DefaultPath
	}

	data, err := Render(g, opts)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
