// Package harness runs derivation scenarios written in YAML.
//
// A scenario embeds a small provenance document, optionally a policy and
// graph filter, and a list of assertions about the derived graph. The
// harness loads the document into a fresh in-memory store, derives the
// graph with the real query executor, renders the artifact and evaluates
// the assertions.
//
// # Scenario Format
//
//	name: two_step
//	description: "b starts a; a consumes the value b produced"
//	format: nquads
//	graph_filter: ""
//	policy:
//	  output_conflict: last_write_wins
//	  parent_tie_break: first_parent_wins
//	document: |
//	  <http://example.org/bundle/a> <...> <...> <http://example.org/run> .
//	assertions:
//	  - type: node_count
//	    count: 2
//	  - type: parents
//	    node: http://example.org/bundle/a
//	    parents: [http://example.org/bundle/b]
//
// # Assertion Types
//
//   - node_count: the graph has exactly count nodes
//   - node_label: node has label
//   - parents: node's parents equal parents, in order
//   - input_count: node has exactly count inputs
//   - input_linked: input of node links to producer
//   - input_unresolved: input of node has no producer
//   - output: node has an output keyed output with name and value
//
// # Golden Files
//
// RunWithGolden compares the rendered artifact against
// testdata/golden/<scenario>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
