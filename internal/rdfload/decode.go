package rdfload

import (
	"fmt"
	"io"

	"github.com/knakk/rdf"

	"github.com/roach88/provgraph/internal/ir"
)

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// statementReader yields statements one at a time and returns io.EOF at the end.
type statementReader interface {
	next() (ir.Quad, error)
}

type quadReader struct {
	dec *rdf.QuadDecoder
}

func (r *quadReader) next() (ir.Quad, error) {
	q, err := r.dec.Decode()
	if err != nil {
		return ir.Quad{}, err
	}
	return convertTriple(graphName(q.Ctx), q.Triple)
}

type tripleReader struct {
	dec   rdf.TripleDecoder
	graph string
}

func (r *tripleReader) next() (ir.Quad, error) {
	t, err := r.dec.Decode()
	if err != nil {
		return ir.Quad{}, err
	}
	return convertTriple(r.graph, t)
}

// newStatementReader selects the decoder for a format.
// targetGraph names the graph triple formats are placed in.
func newStatementReader(r io.Reader, f Format, targetGraph string) statementReader {
	if f.isQuadFormat() {
		dec := rdf.NewQuadDecoder(r, f.rdfFormat())
		// The decoder otherwise names the default graph "_:defaultGraph".
		dec.DefaultGraph = nil
		return &quadReader{dec: dec}
	}
	return &tripleReader{
		dec:   rdf.NewTripleDecoder(r, f.rdfFormat()),
		graph: ir.NormalizeIdentifier(targetGraph),
	}
}

// graphName returns the string form of a quad's graph term.
// A missing context is the default graph.
func graphName(ctx rdf.Context) string {
	if ctx == nil {
		return ""
	}
	switch c := ctx.(type) {
	case rdf.IRI:
		return ir.NormalizeIdentifier(c.String())
	case rdf.Blank:
		return ir.NewBlank(c.String()).Value
	default:
		return ir.NormalizeIdentifier(ctx.String())
	}
}

func convertTriple(graph string, t rdf.Triple) (ir.Quad, error) {
	subj, err := convertTerm(t.Subj)
	if err != nil {
		return ir.Quad{}, fmt.Errorf("subject: %w", err)
	}
	pred, err := convertTerm(t.Pred)
	if err != nil {
		return ir.Quad{}, fmt.Errorf("predicate: %w", err)
	}
	obj, err := convertTerm(t.Obj)
	if err != nil {
		return ir.Quad{}, fmt.Errorf("object: %w", err)
	}

	return ir.Quad{
		Graph:     graph,
		Subject:   subj,
		Predicate: pred,
		Object:    obj,
	}, nil
}

func convertTerm(term rdf.Term) (ir.Term, error) {
	switch t := term.(type) {
	case rdf.IRI:
		return ir.NewIRI(t.String()), nil
	case rdf.Blank:
		return ir.NewBlank(t.String()), nil
	case rdf.Literal:
		if lang := t.Lang(); lang != "" {
			return ir.NewLangLiteral(t.String(), lang), nil
		}
		datatype := t.DataType.String()
		if datatype == "" || datatype == xsdString {
			return ir.NewLiteral(t.String()), nil
		}
		return ir.NewTypedLiteral(t.String(), datatype), nil
	case nil:
		return ir.Term{}, fmt.Errorf("missing term")
	default:
		return ir.Term{}, fmt.Errorf("unsupported term type %T", term)
	}
}
