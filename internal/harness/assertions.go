package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/provgraph/internal/provgraph"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Node     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Node != "" {
		fmt.Fprintf(&buf, " (node %s)", e.Node)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

func evaluateAssertion(g *provgraph.Graph, a Assertion) error {
	if a.Type == AssertNodeCount {
		if g.Len() != a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d nodes", a.Count),
				Actual:   fmt.Sprintf("%d nodes %v", g.Len(), g.IDs()),
			}
		}
		return nil
	}

	node, ok := g.Node(a.Node)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Node:     a.Node,
			Expected: "node exists",
			Actual:   fmt.Sprintf("not found among %v", g.IDs()),
		}
	}

	switch a.Type {
	case AssertNodeLabel:
		return assertLabel(node, a)
	case AssertParents:
		return assertParents(node, a)
	case AssertInputCount:
		return assertInputCount(node, a)
	case AssertInputLinked:
		if !g.Has(a.Producer) {
			return &AssertionError{
				Type:     a.Type,
				Node:     node.ID,
				Expected: fmt.Sprintf("producer %s is a node", a.Producer),
				Actual:   fmt.Sprintf("not found among %v", g.IDs()),
			}
		}
		return assertInputLinked(node, a)
	case AssertInputUnresolved:
		return assertInputUnresolved(node, a)
	case AssertOutput:
		return assertOutput(node, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertLabel(n provgraph.Node, a Assertion) error {
	if n.Label != a.Label {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("label %q", a.Label),
			Actual:   fmt.Sprintf("label %q", n.Label),
		}
	}
	return nil
}

func assertParents(n provgraph.Node, a Assertion) error {
	want := a.Parents
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(n.Parents, want) {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("parents %v", want),
			Actual:   fmt.Sprintf("parents %v", n.Parents),
		}
	}
	return nil
}

func assertInputCount(n provgraph.Node, a Assertion) error {
	if len(n.Inputs) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("%d inputs", a.Count),
			Actual:   fmt.Sprintf("%d inputs", len(n.Inputs)),
		}
	}
	return nil
}

// findInputs returns every input of n with the given value id.
func findInputs(n provgraph.Node, inputID string) []provgraph.Input {
	var found []provgraph.Input
	for _, in := range n.Inputs {
		if in.InputID == inputID {
			found = append(found, in)
		}
	}
	return found
}

func assertInputLinked(n provgraph.Node, a Assertion) error {
	inputs := findInputs(n, a.Input)
	if len(inputs) == 0 {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("input %s", a.Input),
			Actual:   "no such input",
		}
	}
	for _, in := range inputs {
		if in.NodeID == nil || *in.NodeID != a.Producer {
			return &AssertionError{
				Type:     a.Type,
				Node:     n.ID,
				Expected: fmt.Sprintf("input %s produced by %s", a.Input, a.Producer),
				Actual:   fmt.Sprintf("produced by %s", describeProducer(in)),
			}
		}
	}
	return nil
}

func assertInputUnresolved(n provgraph.Node, a Assertion) error {
	inputs := findInputs(n, a.Input)
	if len(inputs) == 0 {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("input %s", a.Input),
			Actual:   "no such input",
		}
	}
	for _, in := range inputs {
		if in.Resolved() {
			return &AssertionError{
				Type:     a.Type,
				Node:     n.ID,
				Expected: fmt.Sprintf("input %s unresolved", a.Input),
				Actual:   fmt.Sprintf("produced by %s", describeProducer(in)),
			}
		}
	}
	return nil
}

func assertOutput(n provgraph.Node, a Assertion) error {
	out, ok := n.Outputs[a.Output]
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("output %s", a.Output),
			Actual:   "no such output",
		}
	}
	if out.Name != a.Name || out.Value != a.Value {
		return &AssertionError{
			Type:     a.Type,
			Node:     n.ID,
			Expected: fmt.Sprintf("output %s = {name: %q, value: %q}", a.Output, a.Name, a.Value),
			Actual:   fmt.Sprintf("{name: %q, value: %q}", out.Name, out.Value),
		}
	}
	return nil
}

func describeProducer(in provgraph.Input) string {
	if in.NodeID == nil {
		return "nothing"
	}
	return *in.NodeID
}
