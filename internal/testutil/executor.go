package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/provgraph/internal/ir"
	"github.com/roach88/provgraph/internal/queryir"
)

// Call records one query issued to a FakeExecutor.
type Call struct {
	Shape string
	Scope string // empty for global queries
}

// FakeExecutor serves canned bindings keyed by shape name and scope.
//
// Queries with no canned result return an empty slice. Errors registered
// with FailOn are returned instead of results. Every call is recorded so
// tests can assert which queries ran and in what order.
//
// Thread-safety: all methods are safe for concurrent use.
type FakeExecutor struct {
	mu       sync.Mutex
	global   map[string][]ir.Binding
	scoped   map[string]map[string][]ir.Binding
	failures map[Call]error
	calls    []Call
}

// NewFakeExecutor creates an executor with no canned results.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		global:   make(map[string][]ir.Binding),
		scoped:   make(map[string]map[string][]ir.Binding),
		failures: make(map[Call]error),
	}
}

// SetGlobal sets the result of a global query for shape.
func (f *FakeExecutor) SetGlobal(shape string, bindings ...ir.Binding) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.global[shape] = bindings
	return f
}

// SetScoped sets the result of shape scoped to scope.
func (f *FakeExecutor) SetScoped(shape, scope string, bindings ...ir.Binding) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scoped[shape] == nil {
		f.scoped[shape] = make(map[string][]ir.Binding)
	}
	f.scoped[shape][scope] = bindings
	return f
}

// FailOn makes the query for shape and scope return err.
// An empty scope targets the global query.
func (f *FakeExecutor) FailOn(shape, scope string, err error) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[Call{Shape: shape, Scope: scope}] = err
	return f
}

// Calls returns the queries issued so far, in order.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// ExecuteGlobal returns the canned global result for q.Name.
func (f *FakeExecutor) ExecuteGlobal(ctx context.Context, q queryir.Select) ([]ir.Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Shape: q.Name}
	f.calls = append(f.calls, call)
	if err, ok := f.failures[call]; ok {
		return nil, err
	}
	return cloneBindings(f.global[q.Name]), nil
}

// ExecuteScoped returns the canned result for q.Name in scope.
func (f *FakeExecutor) ExecuteScoped(ctx context.Context, q queryir.Select, scope string) ([]ir.Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scope == "" {
		return nil, fmt.Errorf("scoped query %s: empty scope", q.Name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Shape: q.Name, Scope: scope}
	f.calls = append(f.calls, call)
	if err, ok := f.failures[call]; ok {
		return nil, err
	}
	return cloneBindings(f.scoped[q.Name][scope]), nil
}

func cloneBindings(in []ir.Binding) []ir.Binding {
	out := make([]ir.Binding, 0, len(in))
	for _, b := range in {
		out = append(out, b.Clone())
	}
	return out
}
