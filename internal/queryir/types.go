package queryir

// Query represents an abstract query in the QueryIR.
//
// This is a sealed interface - only types in this package implement it.
type Query interface {
	queryNode()
}

// Term is a position in a triple pattern.
//
// This is a sealed interface - only Var, IRI and Literal implement it.
type Term interface {
	termNode()
}

// Var is a query variable. The name excludes any "?" prefix.
type Var string

func (Var) termNode() {}

// IRI is a constant IRI in a pattern.
type IRI string

func (IRI) termNode() {}

// Literal is a constant plain literal in a pattern.
// Matching compares the lexical form only.
type Literal string

func (Literal) termNode() {}

// Pattern is a single triple pattern.
type Pattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Triple is shorthand for constructing a Pattern.
func Triple(s, p, o Term) Pattern {
	return Pattern{Subject: s, Predicate: p, Object: o}
}

// Vars returns the variables used in the pattern, in position order.
func (p Pattern) Vars() []Var {
	var vars []Var
	for _, t := range []Term{p.Subject, p.Predicate, p.Object} {
		if v, ok := t.(Var); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Select represents a basic graph pattern query with projection.
//
// Semantics:
//
//	SELECT <Vars> WHERE { [GRAPH <scope>] { <Patterns> } }
//
// Each solution is one combination of statements satisfying all patterns
// with consistent variable assignments. Solutions are not deduplicated:
// two distinct matches that project to the same values yield two bindings.
//
// When Scoped is true the query must be executed with a scope identifier and
// every pattern is matched inside that named graph. Otherwise patterns are
// matched against the union of all graphs, and different patterns may match
// statements from different graphs.
//
// Example:
//
//	Select{
//	  Name: "labels",
//	  Vars: []string{"act", "label"},
//	  Patterns: []Pattern{
//	    Triple(Var("act"), IRI(rdfsLabel), Var("label")),
//	  },
//	}
type Select struct {
	Name     string    // Shape name used in diagnostics (e.g., "linkage")
	Vars     []string  // Projected variables, in output order
	Patterns []Pattern // Conjunctive triple patterns
	Scoped   bool      // Requires a scope identifier at execution time
}

func (Select) queryNode() {}

// PatternVars returns every variable mentioned by the query's patterns,
// in first-occurrence order.
func (s Select) PatternVars() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.Patterns {
		for _, v := range p.Vars() {
			if !seen[string(v)] {
				seen[string(v)] = true
				out = append(out, string(v))
			}
		}
	}
	return out
}
