package queryir

import (
	"fmt"
	"regexp"
)

var varNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationResult contains the structural analysis of a query.
type ValidationResult struct {
	// Valid indicates the query can be compiled by a backend.
	Valid bool

	// Problems lists every rule the query violates. Empty when Valid.
	Problems []string
}

// Validate checks a query against the supported fragment.
//
// Rules:
//  1. At least one pattern
//  2. At least one projected variable; projected names unique
//  3. Variable names match [A-Za-z_][A-Za-z0-9_]*
//  4. Every projected variable occurs in some pattern
//  5. Subjects and predicates are never literals
//  6. No nil pattern positions
//
// Validate is a pure function with no side effects.
func Validate(query Query) ValidationResult {
	v := &validator{problems: []string{}}
	v.validateQuery(query)

	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addProblem("nil query")
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.addProblem("nil query")
			return
		}
		v.validateSelect(*query)
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if len(sel.Patterns) == 0 {
		v.addProblem("query %q has no patterns", sel.Name)
	}
	if len(sel.Vars) == 0 {
		v.addProblem("query %q projects no variables", sel.Name)
	}

	for i, p := range sel.Patterns {
		v.validatePattern(i, p)
	}

	inPatterns := make(map[string]bool)
	for _, name := range sel.PatternVars() {
		inPatterns[name] = true
	}

	projected := make(map[string]bool)
	for _, name := range sel.Vars {
		if !varNamePattern.MatchString(name) {
			v.addProblem("invalid variable name %q", name)
			continue
		}
		if projected[name] {
			v.addProblem("variable %q projected twice", name)
		}
		projected[name] = true
		if !inPatterns[name] {
			v.addProblem("projected variable %q does not occur in any pattern", name)
		}
	}
}

func (v *validator) validatePattern(i int, p Pattern) {
	positions := []struct {
		name string
		term Term
	}{
		{"subject", p.Subject},
		{"predicate", p.Predicate},
		{"object", p.Object},
	}
	for _, pos := range positions {
		switch t := pos.term.(type) {
		case nil:
			v.addProblem("pattern %d: %s is nil", i, pos.name)
		case Var:
			if !varNamePattern.MatchString(string(t)) {
				v.addProblem("pattern %d: invalid variable name %q", i, string(t))
			}
		case Literal:
			if pos.name != "object" {
				v.addProblem("pattern %d: literal in %s position", i, pos.name)
			}
		}
	}
}
