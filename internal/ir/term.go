package ir

// TermKind identifies the lexical category of an RDF term.
type TermKind string

const (
	KindIRI     TermKind = "iri"
	KindLiteral TermKind = "literal"
	KindBlank   TermKind = "blank"
)

// ValidTermKinds defines allowed term kinds.
var ValidTermKinds = map[TermKind]bool{
	KindIRI:     true,
	KindLiteral: true,
	KindBlank:   true,
}

// Term is an RDF term in its stored form.
//
// Value holds the lexical form: the IRI itself, the literal's lexical
// value, or the blank node label. Datatype and Lang are only meaningful
// for literals.
type Term struct {
	Kind     TermKind `json:"kind"`
	Value    string   `json:"value"`
	Datatype string   `json:"datatype,omitempty"`
	Lang     string   `json:"lang,omitempty"`
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: NormalizeIdentifier(iri)}
}

// NewLiteral creates a plain literal term.
func NewLiteral(value string) Term {
	return Term{Kind: KindLiteral, Value: NormalizeLiteral(value)}
}

// NewTypedLiteral creates a literal with a datatype IRI.
func NewTypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: NormalizeLiteral(value), Datatype: NormalizeIdentifier(datatype)}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: NormalizeLiteral(value), Lang: lang}
}

// NewBlank creates a blank node term. A leading "_:" is stripped.
func NewBlank(label string) Term {
	if len(label) > 2 && label[:2] == "_:" {
		label = label[2:]
	}
	return Term{Kind: KindBlank, Value: NormalizeIdentifier(label)}
}

// String returns the lexical form of the term.
// Bindings carry this form, so identifiers compare by string equality.
func (t Term) String() string {
	return t.Value
}

// Quad is a single statement with its named graph.
// Graph is "" for statements in the default graph.
type Quad struct {
	Graph     string `json:"graph"`
	Subject   Term   `json:"subject"`
	Predicate Term   `json:"predicate"`
	Object    Term   `json:"object"`
}
