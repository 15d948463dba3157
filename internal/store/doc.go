// Package store provides SQLite-backed storage for provenance statements.
//
// The store holds one row per statement (quad) and acts as the triple store
// the query executor evaluates compiled patterns against:
//   - Quads: graph, subject, predicate, object with term kinds
//   - Loads: one record per document load for auditing
//
// # Critical Patterns
//
// Set semantics
//   - UNIQUE over every term column; duplicate statements are ignored
//
// Document order
//   - seq INTEGER AUTOINCREMENT records insertion order
//   - All reads ORDER BY seq so results follow the source document
//
// # Database Configuration
//
//   - WAL mode for file databases
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - One open connection, so ":memory:" databases stay coherent
package store
