package rdfload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/store"
)

// DefaultBatchSize is the number of statements written per transaction.
const DefaultBatchSize = 1000

// Options controls how a document is loaded.
type Options struct {
	// Format is the input serialization. Defaults to FormatNQuads.
	Format Format

	// GraphFilter keeps only statements whose graph name contains this
	// substring. Empty keeps everything. Default-graph statements never
	// match a non-empty filter.
	GraphFilter string

	// TargetGraph names the graph that triple formats are loaded into.
	// Ignored for N-Quads.
	TargetGraph string

	// BatchSize overrides DefaultBatchSize when positive.
	BatchSize int

	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Stats summarizes a load.
type Stats struct {
	Read     int64 `json:"read"`
	Stored   int64 `json:"stored"`
	Filtered int64 `json:"filtered"`
}

// DecodeError reports a statement the decoder could not parse.
type DecodeError struct {
	// Statement is the 1-based index of the failing statement.
	Statement int64
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode statement %d: %v", e.Statement, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Load decodes r and writes its statements to st.
//
// Statements are written in batches; a decode failure aborts the load and
// returns a *DecodeError. Batches already committed stay in the store, so
// callers wanting all-or-nothing behavior should load into a fresh store.
func Load(ctx context.Context, st *store.Store, r io.Reader, opts Options) (Stats, error) {
	if opts.Format == "" {
		opts.Format = FormatNQuads
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reader := newStatementReader(r, opts.Format, opts.TargetGraph)

	var stats Stats
	batch := make([]ir.Quad, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := st.WriteQuads(ctx, batch)
		if err != nil {
			return err
		}
		stats.Stored += n
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		q, err := reader.next()
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Read++
		if err != nil {
			return stats, &DecodeError{Statement: stats.Read, Err: err}
		}

		if !keepGraph(q.Graph, opts.GraphFilter) {
			stats.Filtered++
			continue
		}

		batch = append(batch, q)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	logger.Debug("document loaded",
		"format", opts.Format,
		"read", stats.Read,
		"stored", stats.Stored,
		"filtered", stats.Filtered)

	return stats, nil
}

// keepGraph applies the graph filter.
func keepGraph(graph, filter string) bool {
	if filter == "" {
		return true
	}
	if graph == "" {
		return false
	}
	return strings.Contains(graph, filter)
}
