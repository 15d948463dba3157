// Package provgraph derives an activity graph from provenance query results.
//
// Derivation runs as three phases, each taking the previous phase's graph
// and returning a new one:
//
//   - Build creates nodes and parent edges from the linkage bindings.
//   - Resolve attaches each node's inputs and outputs using scoped queries.
//   - Link points every input at the parent whose output it consumed.
//
// A graph returned by one phase is never modified by a later phase.
// Derive runs all three in order.
package provgraph
