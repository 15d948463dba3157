// Package queryir provides a typed query intermediate representation (IR)
// for conjunctive triple-pattern queries.
//
// QueryIR is the boundary between the fixed provenance query shapes and the
// backend that evaluates them. The vocab package builds queries; the
// querysql package compiles them for the SQLite quad store.
//
//	[vocab shapes] → [Query IR] → [SQL Backend]
//
// SUPPORTED FRAGMENT:
//
//   - Select(vars, patterns, scoped) - a basic graph pattern with projection
//   - Pattern positions: Var, IRI, Literal
//   - Implicit inner joins on shared variables
//   - Optional scope: every pattern is matched inside one named graph whose
//     identifier is supplied at execution time as a bound parameter
//
// The fragment EXCLUDES OPTIONAL, UNION, FILTER expressions, aggregation and
// property paths. Blank-node shorthand in a query is written as a plain
// variable that is not projected.
//
// SEALED INTERFACES:
//
// Query and Term are sealed interfaces using the marker method pattern.
// Only types in this package implement them, which keeps type switches in
// the backend exhaustive:
//
//	switch t := term.(type) {
//	case Var:
//	case IRI:
//	case Literal:
//	}
//
// SCOPE AS DATA:
//
// A scoped query never has its graph identifier spliced into query text.
// The scope travels beside the query and is bound as a parameter by the
// backend, so identifiers containing quotes, angle brackets or other
// special characters need no escaping.
package queryir
