// Package engine runs one provenance-to-graph derivation.
//
// A run opens a quad store, loads the input document into it, derives the
// activity graph through the store-backed query executor, and writes the
// artifact. Each run is tagged with a run id that appears in every log
// line it emits.
//
// Failures are wrapped in a *PhaseError naming the phase that failed:
//
//	config  → options rejected before any work is done
//	load    → the document could not be read or decoded
//	query   → a linkage, inputs or outputs query failed
//	export  → the artifact could not be written
//
// The artifact is written only after every earlier phase succeeded.
package engine
