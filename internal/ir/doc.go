// Package ir provides the foundational value types for provgraph.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the statement and
// binding types at the bottom of the dependency graph.
//
// Key design constraints:
//   - Every identifier and literal is NFC normalized on construction so that
//     string equality is a stable comparison across documents
//   - Blank node labels are stored without the "_:" prefix
//   - The default graph is the empty string
//   - All JSON tags use snake_case
package ir
