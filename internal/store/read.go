package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/provgraph/internal/ir"
)

// GraphInfo summarizes one named graph.
type GraphInfo struct {
	Name       string `json:"name"`
	Statements int64  `json:"statements"`
}

// CountQuads returns the number of stored statements.
func (s *Store) CountQuads(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quads: %w", err)
	}
	return n, nil
}

// ListGraphs returns every graph with its statement count, ordered by the
// first appearance of the graph in the store.
//
// The default graph is reported with an empty name when it holds statements.
func (s *Store) ListGraphs(ctx context.Context) ([]GraphInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT graph, COUNT(*)
		FROM quads
		GROUP BY graph
		ORDER BY MIN(seq) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query graphs: %w", err)
	}
	defer rows.Close()

	graphs := []GraphInfo{}
	for rows.Next() {
		var g GraphInfo
		if err := rows.Scan(&g.Name, &g.Statements); err != nil {
			return nil, fmt.Errorf("scan graph: %w", err)
		}
		graphs = append(graphs, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate graphs: %w", err)
	}

	return graphs, nil
}

// ReadGraph returns all statements in one graph in document order.
// Returns an empty slice (not nil) if the graph holds no statements.
func (s *Store) ReadGraph(ctx context.Context, graph string) ([]ir.Quad, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT graph, subject, subject_kind, predicate, object, object_kind, datatype, lang
		FROM quads
		WHERE graph = ?
		ORDER BY seq ASC
	`, graph)
	if err != nil {
		return nil, fmt.Errorf("query graph: %w", err)
	}
	defer rows.Close()

	quads := []ir.Quad{}
	for rows.Next() {
		q, err := scanQuad(rows)
		if err != nil {
			return nil, err
		}
		quads = append(quads, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quads: %w", err)
	}

	return quads, nil
}

// ReadLoads returns all load records ordered by seq.
func (s *Store) ReadLoads(ctx context.Context) ([]LoadRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, format, read, stored, filtered, seq
		FROM loads
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query loads: %w", err)
	}
	defer rows.Close()

	loads := []LoadRecord{}
	for rows.Next() {
		var rec LoadRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Format, &rec.Read, &rec.Stored, &rec.Filtered, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		loads = append(loads, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loads: %w", err)
	}

	return loads, nil
}

// NextLoadSeq returns the sequence number for the next load record.
func (s *Store) NextLoadSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM loads`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next load seq: %w", err)
	}
	return seq.Int64 + 1, nil
}

// scanQuad scans a row into a Quad.
func scanQuad(rows *sql.Rows) (ir.Quad, error) {
	var q ir.Quad
	var subjectKind, objectKind string

	if err := rows.Scan(
		&q.Graph,
		&q.Subject.Value, &subjectKind,
		&q.Predicate.Value,
		&q.Object.Value, &objectKind,
		&q.Object.Datatype, &q.Object.Lang,
	); err != nil {
		return ir.Quad{}, fmt.Errorf("scan quad: %w", err)
	}

	q.Subject.Kind = ir.TermKind(subjectKind)
	q.Predicate.Kind = ir.KindIRI
	q.Object.Kind = ir.TermKind(objectKind)

	return q, nil
}
