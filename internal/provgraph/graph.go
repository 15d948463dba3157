package provgraph

// Input is a value consumed by an activity.
//
// NodeID names the parent activity that produced the value, or is nil
// when no parent's outputs contain InputID.
type Input struct {
	NodeID  *string
	InputID string
	Name    string
	Value   string
}

// Resolved reports whether the input has been linked to a producer.
func (in Input) Resolved() bool {
	return in.NodeID != nil
}

// Output is a value produced by an activity, keyed by value id in Node.Outputs.
type Output struct {
	Name  string
	Value string
}

// Node is one activity in the graph.
type Node struct {
	ID      string
	Label   string
	Parents []string
	Inputs  []Input
	Outputs map[string]Output
}

// HasParent reports whether id is already one of the node's parents.
func (n *Node) HasParent(id string) bool {
	for _, p := range n.Parents {
		if p == id {
			return true
		}
	}
	return false
}

func (n *Node) clone() *Node {
	c := &Node{
		ID:      n.ID,
		Label:   n.Label,
		Parents: append([]string{}, n.Parents...),
		Inputs:  make([]Input, len(n.Inputs)),
		Outputs: make(map[string]Output, len(n.Outputs)),
	}
	for i, in := range n.Inputs {
		if in.NodeID != nil {
			id := *in.NodeID
			in.NodeID = &id
		}
		c.Inputs[i] = in
	}
	for k, v := range n.Outputs {
		c.Outputs[k] = v
	}
	return c
}

// Graph maps activity identifiers to nodes.
//
// Identifiers are unique. Discovery order is kept for deterministic
// iteration; it carries no meaning in the exported artifact.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// IDs returns node identifiers in discovery order.
func (g *Graph) IDs() []string {
	return append([]string{}, g.order...)
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n.clone(), true
}

// Has reports whether the graph contains id.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns copies of all nodes in discovery order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id].clone())
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make(map[string]*Node, len(g.nodes)),
		order: append([]string{}, g.order...),
	}
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	return c
}

// getOrCreate returns the node for id, creating it with label if absent.
// The label of an existing node is never changed.
func (g *Graph) getOrCreate(id, label string) (*Node, bool) {
	if n, ok := g.nodes[id]; ok {
		return n, false
	}
	n := &Node{
		ID:      id,
		Label:   label,
		Parents: []string{},
		Inputs:  []Input{},
		Outputs: make(map[string]Output),
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n, true
}

func (g *Graph) mutable(id string) *Node {
	return g.nodes[id]
}
