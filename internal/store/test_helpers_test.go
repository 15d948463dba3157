package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/provgraph/internal/ir"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestQuad creates a statement with IRI subject and predicate.
func createTestQuad(graph, subject, predicate string, object ir.Term) ir.Quad {
	return ir.Quad{
		Graph:     graph,
		Subject:   ir.NewIRI(subject),
		Predicate: ir.NewIRI(predicate),
		Object:    object,
	}
}
