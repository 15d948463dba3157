// Package rdfload decodes provenance documents and writes their statements
// to the quad store.
//
// Supported serializations are N-Quads (named graphs, the usual carrier for
// provenance bundles), N-Triples and Turtle. Triple formats land in the
// default graph unless a target graph is given.
//
// Every term is normalized through the ir constructors before it is stored,
// so identifiers from different documents compare by plain string equality.
package rdfload
