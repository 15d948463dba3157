package ir

// Binding maps a query variable name to the string form of its bound term.
//
// Query results are ordered sequences of Bindings. Variables that were not
// bound in a solution are absent from the map.
type Binding map[string]string

// Get returns the value bound to name, or "" when unbound.
func (b Binding) Get(name string) string {
	return b[name]
}

// Lookup returns the value bound to name and whether it was bound.
func (b Binding) Lookup(name string) (string, bool) {
	v, ok := b[name]
	return v, ok
}

// Clone returns a copy of the binding.
func (b Binding) Clone() Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
