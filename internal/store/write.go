package store

import (
	"context"
	"fmt"

	"github.com/roach88/provgraph/internal/ir"
)

// LoadRecord describes one document load.
type LoadRecord struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Format   string `json:"format"`
	Read     int64  `json:"read"`
	Stored   int64  `json:"stored"`
	Filtered int64  `json:"filtered"`
	Seq      int64  `json:"seq"`
}

// WriteQuads inserts statements in a single transaction.
// Uses ON CONFLICT DO NOTHING for set semantics - duplicate statements are
// silently ignored. Returns the number of newly stored statements.
//
// Statements with an invalid term kind fail the whole batch.
func (s *Store) WriteQuads(ctx context.Context, quads []ir.Quad) (int64, error) {
	if len(quads) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write quads: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quads
		(graph, subject, subject_kind, predicate, object, object_kind, datatype, lang)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("write quads: prepare: %w", err)
	}
	defer stmt.Close()

	var stored int64
	for i, q := range quads {
		if err := validateQuad(q); err != nil {
			return 0, fmt.Errorf("write quads: statement %d: %w", i, err)
		}

		result, err := stmt.ExecContext(ctx,
			q.Graph,
			q.Subject.Value,
			string(q.Subject.Kind),
			q.Predicate.Value,
			q.Object.Value,
			string(q.Object.Kind),
			q.Object.Datatype,
			q.Object.Lang,
		)
		if err != nil {
			return 0, fmt.Errorf("write quads: statement %d: %w", i, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("write quads: rows affected: %w", err)
		}
		stored += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write quads: commit: %w", err)
	}

	return stored, nil
}

// WriteLoad records a document load.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteLoad(ctx context.Context, rec LoadRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loads (id, source, format, read, stored, filtered, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Source,
		rec.Format,
		rec.Read,
		rec.Stored,
		rec.Filtered,
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("write load: %w", err)
	}
	return nil
}

// validateQuad rejects statements the schema cannot represent.
func validateQuad(q ir.Quad) error {
	switch q.Subject.Kind {
	case ir.KindIRI, ir.KindBlank:
	default:
		return fmt.Errorf("invalid subject kind %q", q.Subject.Kind)
	}
	if q.Predicate.Kind != ir.KindIRI {
		return fmt.Errorf("invalid predicate kind %q", q.Predicate.Kind)
	}
	if !ir.ValidTermKinds[q.Object.Kind] {
		return fmt.Errorf("invalid object kind %q", q.Object.Kind)
	}
	return nil
}
