// Package executor evaluates query shapes against the quad store.
//
// QueryExecutor is the only capability the graph derivation needs from a
// triple store: run a query over every graph, or run it inside one named
// graph. SQLExecutor implements it on top of the SQLite store.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/queryir"
	"github.com/roach88/provgraph/internal/querysql"
	"github.com/roach88/provgraph/internal/store"
)

// QueryExecutor runs query shapes and returns ordered bindings.
//
// Bindings map each projected variable to the string form of its value.
// An empty result is valid and not an error.
type QueryExecutor interface {
	ExecuteGlobal(ctx context.Context, q queryir.Select) ([]ir.Binding, error)
	ExecuteScoped(ctx context.Context, q queryir.Select, scope string) ([]ir.Binding, error)
}

// QueryError reports a failed query execution.
type QueryError struct {
	Shape string // Query shape name
	Scope string // Graph scope, empty for global queries
	Err   error
}

func (e *QueryError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("query %s (scope=%s): %v", e.Shape, e.Scope, e.Err)
	}
	return fmt.Sprintf("query %s: %v", e.Shape, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// SQLExecutor executes queries by compiling them to SQL over a store.
type SQLExecutor struct {
	store    *store.Store
	compiler *querysql.SQLCompiler
	logger   *slog.Logger
	executed int
}

// NewSQLExecutor creates an executor over st.
func NewSQLExecutor(st *store.Store) *SQLExecutor {
	return &SQLExecutor{
		store:    st,
		compiler: querysql.NewSQLCompiler(),
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger used for query tracing.
func (e *SQLExecutor) WithLogger(logger *slog.Logger) *SQLExecutor {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// Executed returns the number of queries run so far.
func (e *SQLExecutor) Executed() int {
	return e.executed
}

// ExecuteGlobal runs q across the union of all graphs.
func (e *SQLExecutor) ExecuteGlobal(ctx context.Context, q queryir.Select) ([]ir.Binding, error) {
	sqlStr, params, err := e.compiler.Compile(q)
	if err != nil {
		return nil, &QueryError{Shape: q.Name, Err: fmt.Errorf("compile: %w", err)}
	}

	bindings, err := e.run(ctx, sqlStr, params)
	if err != nil {
		return nil, &QueryError{Shape: q.Name, Err: err}
	}

	e.logger.Debug("query executed", "shape", q.Name, "bindings", len(bindings))
	return bindings, nil
}

// ExecuteScoped runs q inside the named graph scope.
func (e *SQLExecutor) ExecuteScoped(ctx context.Context, q queryir.Select, scope string) ([]ir.Binding, error) {
	sqlStr, params, err := e.compiler.CompileScoped(q, scope)
	if err != nil {
		return nil, &QueryError{Shape: q.Name, Scope: scope, Err: fmt.Errorf("compile: %w", err)}
	}

	bindings, err := e.run(ctx, sqlStr, params)
	if err != nil {
		return nil, &QueryError{Shape: q.Name, Scope: scope, Err: err}
	}

	e.logger.Debug("query executed", "shape", q.Name, "scope", scope, "bindings", len(bindings))
	return bindings, nil
}

func (e *SQLExecutor) run(ctx context.Context, sqlStr string, params []any) ([]ir.Binding, error) {
	e.executed++

	rows, err := e.store.Query(ctx, sqlStr, params...)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	bindings := []ir.Binding{}
	for rows.Next() {
		binding, err := scanBinding(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		bindings = append(bindings, binding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return bindings, nil
}

// scanBinding scans one row into a binding. NULL columns are left unbound.
func scanBinding(rows *sql.Rows, columns []string) (ir.Binding, error) {
	values := make([]sql.NullString, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	binding := make(ir.Binding, len(columns))
	for i, col := range columns {
		if values[i].Valid {
			binding[col] = values[i].String
		}
	}
	return binding, nil
}
