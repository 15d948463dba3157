package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/queryir"
)

// DefaultTable is the quad table created by the store schema.
const DefaultTable = "quads"

// SQLCompiler compiles QueryIR to parameterized SQL for SQLite.
//
// Each triple pattern becomes one alias of the quad table; shared variables
// become join equalities. Every constant and the scope identifier are
// passed as parameters and never interpolated into the SQL text.
// Every query carries an ORDER BY over statement sequence numbers so the
// binding order follows document order.
type SQLCompiler struct {
	// Table is the quad table name. Defaults to DefaultTable.
	Table string
}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Table: DefaultTable}
}

// Compile converts an unscoped query to parameterized SQL.
// Returns (sql, params, error). Patterns match across all graphs.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	sel, err := c.selectOf(q)
	if err != nil {
		return "", nil, err
	}
	if sel.Scoped {
		return "", nil, fmt.Errorf("query %q is scoped: use CompileScoped", sel.Name)
	}
	return c.compileSelect(sel, nil)
}

// CompileScoped converts a scoped query to parameterized SQL with every
// pattern constrained to the named graph scope.
func (c *SQLCompiler) CompileScoped(q queryir.Query, scope string) (string, []any, error) {
	sel, err := c.selectOf(q)
	if err != nil {
		return "", nil, err
	}
	if !sel.Scoped {
		return "", nil, fmt.Errorf("query %q is not scoped: use Compile", sel.Name)
	}
	return c.compileSelect(sel, &scope)
}

func (c *SQLCompiler) selectOf(q queryir.Query) (queryir.Select, error) {
	if q == nil {
		return queryir.Select{}, fmt.Errorf("cannot compile nil query")
	}

	var sel queryir.Select
	switch query := q.(type) {
	case queryir.Select:
		sel = query
	case *queryir.Select:
		if query == nil {
			return queryir.Select{}, fmt.Errorf("cannot compile nil query")
		}
		sel = *query
	default:
		return queryir.Select{}, fmt.Errorf("unsupported query type: %T", q)
	}

	if result := queryir.Validate(sel); !result.Valid {
		return queryir.Select{}, fmt.Errorf("invalid query %q: %s", sel.Name, strings.Join(result.Problems, "; "))
	}
	return sel, nil
}

// column identifies where a variable was first bound.
// kind is empty for the predicate position, which is always an IRI.
type column struct {
	value string
	kind  string
}

// aliasClause collects the conditions contributed by one pattern alias.
type aliasClause struct {
	conds  []string
	params []any
}

func (a *aliasClause) add(cond string, params ...any) {
	a.conds = append(a.conds, cond)
	a.params = append(a.params, params...)
}

func (c *SQLCompiler) compileSelect(sel queryir.Select, scope *string) (string, []any, error) {
	table := c.Table
	if table == "" {
		table = DefaultTable
	}

	first := make(map[string]column)
	clauses := make([]aliasClause, len(sel.Patterns))

	for i, p := range sel.Patterns {
		alias := fmt.Sprintf("q%d", i)
		clause := &clauses[i]

		if scope != nil {
			if i == 0 {
				clause.add(alias+".graph = ?", *scope)
			} else {
				clause.add(alias + ".graph = q0.graph")
			}
		}

		positions := []struct {
			term queryir.Term
			col  column
		}{
			{p.Subject, column{alias + ".subject", alias + ".subject_kind"}},
			{p.Predicate, column{alias + ".predicate", ""}},
			{p.Object, column{alias + ".object", alias + ".object_kind"}},
		}

		for _, pos := range positions {
			if err := compileTerm(clause, first, pos.term, pos.col); err != nil {
				return "", nil, fmt.Errorf("pattern %d: %w", i, err)
			}
		}
	}

	// Assemble in text order: SELECT, FROM q0, JOIN qN ON ..., WHERE (q0).
	var sb strings.Builder
	var params []any

	sb.WriteString("SELECT ")
	for i, name := range sel.Vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s AS %q", first[name].value, name)
	}

	fmt.Fprintf(&sb, " FROM %s AS q0", table)
	for i := 1; i < len(clauses); i++ {
		on := "1 = 1"
		if len(clauses[i].conds) > 0 {
			on = strings.Join(clauses[i].conds, " AND ")
		}
		fmt.Fprintf(&sb, " INNER JOIN %s AS q%d ON %s", table, i, on)
		params = append(params, clauses[i].params...)
	}

	if len(clauses[0].conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses[0].conds, " AND "))
		params = append(params, clauses[0].params...)
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(stableOrderKey(len(sel.Patterns)))

	return sb.String(), params, nil
}

// compileTerm adds the conditions for one pattern position.
func compileTerm(clause *aliasClause, first map[string]column, term queryir.Term, col column) error {
	switch t := term.(type) {
	case queryir.IRI:
		clause.add(col.value+" = ?", ir.NormalizeIdentifier(string(t)))
		if col.kind != "" {
			clause.add(col.kind+" = ?", string(ir.KindIRI))
		}
	case queryir.Literal:
		if col.kind == "" {
			return fmt.Errorf("literal %q in predicate position", string(t))
		}
		clause.add(col.value+" = ?", ir.NormalizeLiteral(string(t)))
		clause.add(col.kind+" = ?", string(ir.KindLiteral))
	case queryir.Var:
		name := string(t)
		prev, seen := first[name]
		if !seen {
			first[name] = col
			return nil
		}
		clause.add(col.value + " = " + prev.value)
		switch {
		case prev.kind != "" && col.kind != "":
			clause.add(col.kind + " = " + prev.kind)
		case prev.kind != "":
			clause.add(prev.kind+" = ?", string(ir.KindIRI))
		case col.kind != "":
			clause.add(col.kind+" = ?", string(ir.KindIRI))
		}
	default:
		return fmt.Errorf("unsupported term type: %T", term)
	}
	return nil
}

// stableOrderKey returns the ORDER BY clause body for n pattern aliases.
// Statement sequence numbers are unique, so the order is total.
func stableOrderKey(n int) string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("q%d.seq ASC", i)
	}
	return strings.Join(keys, ", ")
}
