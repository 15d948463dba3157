package vocab

import (
	"github.com/roach88/provgraph/internal/queryir"
)

// Shape names used in diagnostics and on the command line.
const (
	ShapeLinkage = "linkage"
	ShapeInputs  = "inputs"
	ShapeOutputs = "outputs"
)

// Linkage query variables.
const (
	VarChildID     = "a_id"
	VarChildLabel  = "alabel"
	VarParentID    = "b_id"
	VarParentLabel = "blabel"
)

// Input and output query variables.
const (
	VarInPort   = "in_port"
	VarInValue  = "val"
	VarInID     = "in"
	VarOutPort  = "out_port"
	VarOutValue = "val"
	VarOutID    = "out"
)

// Shapes holds the three query shapes for one vocabulary.
type Shapes struct {
	Linkage queryir.Select
	Inputs  queryir.Select
	Outputs queryir.Select
}

// BuildShapes constructs the query shapes for the given namespaces.
func BuildShapes(ns Namespaces) Shapes {
	ns = ns.WithDefaults()
	return Shapes{
		Linkage: Linkage(ns),
		Inputs:  Inputs(ns),
		Outputs: Outputs(ns),
	}
}

// ByName returns the shape with the given name.
func (s Shapes) ByName(name string) (queryir.Select, bool) {
	switch name {
	case ShapeLinkage:
		return s.Linkage, true
	case ShapeInputs:
		return s.Inputs, true
	case ShapeOutputs:
		return s.Outputs, true
	default:
		return queryir.Select{}, false
	}
}

func variable(name string) queryir.Var {
	return queryir.Var(name)
}

// Linkage finds every activity whose start was triggered by another
// activity, together with the bundles generated by both.
//
// The child activity a has a qualified start whose starter is the parent
// activity b; each is identified by the bundle it generated.
//
//	?a prov:qualifiedStart ?start . ?start prov:starter ?b .
//	?a_id a prov:Bundle ; prov:wasGeneratedBy ?a .
//	?b_id a prov:Bundle ; prov:wasGeneratedBy ?b .
//	?a rdfs:label ?alabel . ?b rdfs:label ?blabel .
func Linkage(ns Namespaces) queryir.Select {
	return queryir.Select{
		Name: ShapeLinkage,
		Vars: []string{VarChildLabel, VarChildID, VarParentLabel, VarParentID},
		Patterns: []queryir.Pattern{
			queryir.Triple(variable("a"), ns.prov("qualifiedStart"), variable("start")),
			queryir.Triple(variable("start"), ns.prov("starter"), variable("b")),
			queryir.Triple(variable(VarChildID), ns.rdf("type"), ns.prov("Bundle")),
			queryir.Triple(variable(VarChildID), ns.prov("wasGeneratedBy"), variable("a")),
			queryir.Triple(variable(VarParentID), ns.rdf("type"), ns.prov("Bundle")),
			queryir.Triple(variable(VarParentID), ns.prov("wasGeneratedBy"), variable("b")),
			queryir.Triple(variable("a"), ns.rdfs("label"), variable(VarChildLabel)),
			queryir.Triple(variable("b"), ns.rdfs("label"), variable(VarParentLabel)),
		},
	}
}

// Inputs finds the values an activity consumed, scoped to its bundle.
//
//	?ic a nipype:Inputs ; prov:hadMember ?in .
//	?in prov:value ?val .
//	?act prov:qualifiedUsage ?qual .
//	?qual nipype:inPort ?in_port ; prov:entity ?in .
func Inputs(ns Namespaces) queryir.Select {
	return queryir.Select{
		Name:   ShapeInputs,
		Scoped: true,
		Vars:   []string{VarInPort, VarInValue, VarInID},
		Patterns: []queryir.Pattern{
			queryir.Triple(variable("ic"), ns.rdf("type"), ns.nipype("Inputs")),
			queryir.Triple(variable("ic"), ns.prov("hadMember"), variable(VarInID)),
			queryir.Triple(variable(VarInID), ns.prov("value"), variable(VarInValue)),
			queryir.Triple(variable("act"), ns.prov("qualifiedUsage"), variable("qual")),
			queryir.Triple(variable("qual"), ns.nipype("inPort"), variable(VarInPort)),
			queryir.Triple(variable("qual"), ns.prov("entity"), variable(VarInID)),
		},
	}
}

// Outputs finds the values an activity produced, scoped to its bundle.
//
//	?oc a nipype:Outputs ; prov:hadMember ?out ; prov:wasGeneratedBy ?act .
//	?out prov:value ?val .
//	?out prov:qualifiedGeneration ?qual .
//	?qual nipype:outPort ?out_port ; prov:activity ?act .
func Outputs(ns Namespaces) queryir.Select {
	return queryir.Select{
		Name:   ShapeOutputs,
		Scoped: true,
		Vars:   []string{VarOutPort, VarOutValue, VarOutID},
		Patterns: []queryir.Pattern{
			queryir.Triple(variable("oc"), ns.rdf("type"), ns.nipype("Outputs")),
			queryir.Triple(variable("oc"), ns.prov("hadMember"), variable(VarOutID)),
			queryir.Triple(variable("oc"), ns.prov("wasGeneratedBy"), variable("act")),
			queryir.Triple(variable(VarOutID), ns.prov("value"), variable(VarOutValue)),
			queryir.Triple(variable(VarOutID), ns.prov("qualifiedGeneration"), variable("qual")),
			queryir.Triple(variable("qual"), ns.nipype("outPort"), variable(VarOutPort)),
			queryir.Triple(variable("qual"), ns.prov("activity"), variable("act")),
		},
	}
}
